package utils

import (
	"context"

	"github.com/harshitSingh1/SentinelShe/internal/database"
	"github.com/harshitSingh1/SentinelShe/internal/votes"
)

// toggleMembership bascule l'appartenance de id en exécutant insert ou
// remove. Le delta retourné vaut 0 si la ligne avait déjà été modifiée par
// une requête concurrente.
func toggleMembership(ctx context.Context, q database.Querier, present bool, id, insert, remove string, args ...any) (bool, int, error) {
	set := votes.NewSet()
	if present {
		set = votes.NewSet(id)
	}
	delta := set.Toggle(id)

	stmt := remove
	if set.Has(id) {
		stmt = insert
	}
	tag, err := q.Exec(ctx, stmt, args...)
	if err != nil {
		return false, 0, err
	}
	if tag.RowsAffected() == 0 {
		delta = 0
	}
	return set.Has(id), delta, nil
}
