package utils

import (
	"context"
	"fmt"

	"github.com/harshitSingh1/SentinelShe/internal/database"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/jackc/pgx/v5"
)

// savedStatFields compteur de user_stats ajusté pour chaque type d'élément
var savedStatFields = map[model.ItemType]model.StatField{
	model.ItemTip:     model.StatTipsSaved,
	model.ItemMove:    model.StatMovesLearned,
	model.ItemProduct: model.StatProductsSaved,
}

// ToggleSavedItem enregistre ou retire un élément pour l'utilisateur. Pour
// une histoire, saved_count est ajusté; pour les éléments du catalogue, le
// compteur de score correspondant l'est, dans la même transaction.
func ToggleSavedItem(ctx context.Context, userID string, itemType model.ItemType, itemID string) (*model.ToggleResult, error) {
	result := &model.ToggleResult{ItemType: itemType, ItemID: itemID}

	err := database.WithTx(ctx, func(tx pgx.Tx) error {
		if itemType == model.ItemStory {
			var savedCount int
			err := tx.QueryRow(ctx,
				`SELECT saved_count FROM stories WHERE id = $1 FOR UPDATE`, itemID,
			).Scan(&savedCount)
			if err != nil {
				return DBError(err, "story")
			}
		}

		var present bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM saved_items
				WHERE user_id = $1 AND item_type = $2 AND item_id = $3
			)`, userID, itemType, itemID,
		).Scan(&present); err != nil {
			return fmt.Errorf("check saved item: %w", err)
		}

		active, delta, err := toggleMembership(ctx, tx, present, itemID,
			`INSERT INTO saved_items (user_id, item_type, item_id) VALUES ($1, $2, $3)
			 ON CONFLICT (user_id, item_type, item_id) DO NOTHING`,
			`DELETE FROM saved_items WHERE user_id = $1 AND item_type = $2 AND item_id = $3`,
			userID, itemType, itemID,
		)
		if err != nil {
			return fmt.Errorf("toggle saved item: %w", err)
		}
		result.Active = active

		if itemType == model.ItemStory {
			return tx.QueryRow(ctx,
				`UPDATE stories SET saved_count = GREATEST(saved_count + $1, 0) WHERE id = $2 RETURNING saved_count`,
				delta, itemID,
			).Scan(&result.Total)
		}

		if field, ok := savedStatFields[itemType]; ok && delta != 0 {
			if _, err := AdjustStat(ctx, tx, userID, field, delta); err != nil {
				return err
			}
		}

		return tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM saved_items WHERE item_type = $1 AND item_id = $2`,
			itemType, itemID,
		).Scan(&result.Total)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// IsSaved indique si l'utilisateur a enregistré l'élément
func IsSaved(ctx context.Context, userID string, itemType model.ItemType, itemID string) (bool, error) {
	var saved bool
	err := database.DB.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM saved_items
			WHERE user_id = $1 AND item_type = $2 AND item_id = $3
		)`, userID, itemType, itemID,
	).Scan(&saved)
	return saved, err
}

// GetSavedItems liste les éléments enregistrés d'un type, les plus récents d'abord
func GetSavedItems(ctx context.Context, userID string, itemType model.ItemType, limit int) ([]model.SavedItem, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT user_id, item_type, item_id, created_at
		FROM saved_items
		WHERE user_id = $1 AND item_type = $2
		ORDER BY created_at DESC
		LIMIT $3`, userID, itemType, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.SavedItem{}
	for rows.Next() {
		var it model.SavedItem
		if err := rows.Scan(&it.UserID, &it.ItemType, &it.ItemID, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetSavedCounts compte les éléments enregistrés par type
func GetSavedCounts(ctx context.Context, userID string) (map[model.ItemType]int, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT item_type, COUNT(*)
		FROM saved_items
		WHERE user_id = $1
		GROUP BY item_type`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[model.ItemType]int{}
	for rows.Next() {
		var t model.ItemType
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		counts[t] = n
	}
	return counts, rows.Err()
}
