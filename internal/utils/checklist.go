package utils

import (
	"context"
	"fmt"
	"sort"

	"github.com/harshitSingh1/SentinelShe/internal/database"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/jackc/pgx/v5"
)

// isComplete une checklist est terminée quand tous ses éléments sont cochés
func isComplete(checked, size int) bool {
	return size > 0 && checked >= size
}

// completionDelta variation de checklists_completed quand l'état passe de before à after
func completionDelta(before, after bool) int {
	switch {
	case !before && after:
		return 1
	case before && !after:
		return -1
	default:
		return 0
	}
}

func checkedCounts(ctx context.Context, q database.Querier, userID string) (map[string]int, error) {
	rows, err := q.Query(ctx, `
		SELECT checklist_id, COUNT(*)
		FROM checklist_progress
		WHERE user_id = $1
		GROUP BY checklist_id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("count checklist progress: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func checkedItems(ctx context.Context, q database.Querier, userID, checklistID string) ([]int, error) {
	rows, err := q.Query(ctx, `
		SELECT item_index
		FROM checklist_progress
		WHERE user_id = $1 AND checklist_id = $2
		ORDER BY item_index`, userID, checklistID,
	)
	if err != nil {
		return nil, fmt.Errorf("load checklist progress: %w", err)
	}
	defer rows.Close()

	checked := []int{}
	for rows.Next() {
		var i int
		if err := rows.Scan(&i); err != nil {
			return nil, err
		}
		checked = append(checked, i)
	}
	return checked, rows.Err()
}

// GetChecklistProgress retourne les éléments cochés par l'utilisateur
func GetChecklistProgress(ctx context.Context, userID, checklistID string, size int) (*model.ChecklistProgress, error) {
	checked, err := checkedItems(ctx, database.DB, userID, checklistID)
	if err != nil {
		return nil, err
	}
	return &model.ChecklistProgress{
		ChecklistID: checklistID,
		Checked:     checked,
		Total:       size,
		Completed:   isComplete(len(checked), size),
	}, nil
}

// ToggleChecklistItem coche ou décoche l'élément index. checklists_completed
// ne bouge que lorsque l'état terminé de la checklist change.
func ToggleChecklistItem(ctx context.Context, userID, checklistID string, index, size int) (*model.ChecklistProgress, error) {
	if index < 0 || index >= size {
		return nil, fmt.Errorf("%w: item index out of range", ErrInvalid)
	}

	progress := &model.ChecklistProgress{ChecklistID: checklistID, Total: size}

	err := database.WithTx(ctx, func(tx pgx.Tx) error {
		// sérialise les toggles concurrents du même utilisateur
		if _, err := tx.Exec(ctx,
			`SELECT pg_advisory_xact_lock(hashtext($1::text || ':' || $2::text))`, userID, checklistID,
		); err != nil {
			return fmt.Errorf("lock checklist: %w", err)
		}

		checked, err := checkedItems(ctx, tx, userID, checklistID)
		if err != nil {
			return err
		}
		before := isComplete(len(checked), size)

		present := false
		for _, i := range checked {
			if i == index {
				present = true
				break
			}
		}

		active, delta, err := toggleMembership(ctx, tx, present, fmt.Sprint(index),
			`INSERT INTO checklist_progress (user_id, checklist_id, item_index) VALUES ($1, $2, $3)
			 ON CONFLICT (user_id, checklist_id, item_index) DO NOTHING`,
			`DELETE FROM checklist_progress WHERE user_id = $1 AND checklist_id = $2 AND item_index = $3`,
			userID, checklistID, index,
		)
		if err != nil {
			return fmt.Errorf("toggle checklist item: %w", err)
		}

		if delta != 0 {
			if active {
				checked = append(checked, index)
				sort.Ints(checked)
			} else {
				checked = removeInt(checked, index)
			}
		}

		after := isComplete(len(checked), size)
		if d := completionDelta(before, after); d != 0 {
			if _, err := AdjustStat(ctx, tx, userID, model.StatChecklistsCompleted, d); err != nil {
				return err
			}
		}

		progress.Checked = checked
		progress.Completed = after
		return nil
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func removeInt(s []int, v int) []int {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
