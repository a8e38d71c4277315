package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harshitSingh1/SentinelShe/internal/database"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/scoring"
	"github.com/jackc/pgx/v5"
)

const statsColumns = `tips_saved, moves_learned, checklists_completed, stories_authored, reports_filed, products_saved`

var statFields = map[model.StatField]bool{
	model.StatTipsSaved:           true,
	model.StatMovesLearned:        true,
	model.StatChecklistsCompleted: true,
	model.StatStoriesAuthored:     true,
	model.StatReportsFiled:        true,
	model.StatProductsSaved:       true,
}

func scanInputs(row pgx.Row, extra ...any) (scoring.ScoreInputs, error) {
	var in scoring.ScoreInputs
	dest := []any{
		&in.TipsSaved, &in.MovesLearned, &in.ChecklistsCompleted,
		&in.StoriesAuthored, &in.ReportsFiled, &in.ProductsSaved,
	}
	err := row.Scan(append(dest, extra...)...)
	return in, err
}

// AdjustStat ajoute delta au compteur field de l'utilisateur et met à jour
// son safety_score. q doit être la transaction de l'action comptée.
func AdjustStat(ctx context.Context, q database.Querier, userID string, field model.StatField, delta int) (int, error) {
	if !statFields[field] {
		return 0, fmt.Errorf("unknown stat field %q", field)
	}

	query := fmt.Sprintf(`
		INSERT INTO user_stats (user_id, %[1]s, updated_at)
		VALUES ($1, GREATEST($2, 0), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET %[1]s = GREATEST(user_stats.%[1]s + $2, 0), updated_at = NOW()
		RETURNING %[2]s`, field, statsColumns)

	in, err := scanInputs(q.QueryRow(ctx, query, userID, delta))
	if err != nil {
		return 0, fmt.Errorf("adjust %s: %w", field, err)
	}

	score := scoring.Compute(in)
	if _, err := q.Exec(ctx,
		`UPDATE users SET safety_score = $1, updated_at = NOW() WHERE id = $2`,
		score, userID,
	); err != nil {
		return 0, fmt.Errorf("update safety score: %w", err)
	}
	return score, nil
}

// GetUserStats retourne les compteurs de l'utilisateur; un utilisateur sans
// ligne user_stats a tous ses compteurs à zéro
func GetUserStats(ctx context.Context, userID string) (*model.UserStats, error) {
	stats := &model.UserStats{UserID: userID}
	in, err := scanInputs(database.DB.QueryRow(ctx,
		`SELECT `+statsColumns+`, updated_at FROM user_stats WHERE user_id = $1`, userID,
	), &stats.UpdatedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, DBError(err, "user stats")
	}
	stats.Inputs = in
	stats.SafetyScore = scoring.Compute(in)
	return stats, nil
}

// RecomputeUserStats reconstruit les compteurs depuis les tables sources.
// checklistSizes donne le nombre d'éléments de chaque checklist du catalogue.
func RecomputeUserStats(ctx context.Context, userID string, checklistSizes map[string]int) (*model.UserStats, error) {
	stats := &model.UserStats{UserID: userID}

	err := database.WithTx(ctx, func(tx pgx.Tx) error {
		var in scoring.ScoreInputs
		err := tx.QueryRow(ctx, `
			SELECT
				(SELECT COUNT(*) FROM saved_items WHERE user_id = $1 AND item_type = 'tip'),
				(SELECT COUNT(*) FROM saved_items WHERE user_id = $1 AND item_type = 'move'),
				(SELECT COUNT(*) FROM stories WHERE user_id = $1),
				(SELECT COUNT(*) FROM reports WHERE user_id = $1),
				(SELECT COUNT(*) FROM saved_items WHERE user_id = $1 AND item_type = 'product')`,
			userID,
		).Scan(&in.TipsSaved, &in.MovesLearned, &in.StoriesAuthored, &in.ReportsFiled, &in.ProductsSaved)
		if err != nil {
			return fmt.Errorf("count actions: %w", err)
		}

		checked, err := checkedCounts(ctx, tx, userID)
		if err != nil {
			return err
		}
		for id, n := range checked {
			if size, ok := checklistSizes[id]; ok && isComplete(n, size) {
				in.ChecklistsCompleted++
			}
		}

		now := time.Now()
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_stats (user_id, `+statsColumns+`, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id) DO UPDATE SET
				tips_saved = EXCLUDED.tips_saved,
				moves_learned = EXCLUDED.moves_learned,
				checklists_completed = EXCLUDED.checklists_completed,
				stories_authored = EXCLUDED.stories_authored,
				reports_filed = EXCLUDED.reports_filed,
				products_saved = EXCLUDED.products_saved,
				updated_at = EXCLUDED.updated_at`,
			userID, in.TipsSaved, in.MovesLearned, in.ChecklistsCompleted,
			in.StoriesAuthored, in.ReportsFiled, in.ProductsSaved, now,
		); err != nil {
			return fmt.Errorf("store stats: %w", err)
		}

		stats.Inputs = in
		stats.SafetyScore = scoring.Compute(in)
		stats.UpdatedAt = now

		if _, err := tx.Exec(ctx,
			`UPDATE users SET safety_score = $1, updated_at = NOW() WHERE id = $2`,
			stats.SafetyScore, userID,
		); err != nil {
			return fmt.Errorf("update safety score: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
