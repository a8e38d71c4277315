package utils

import (
	"testing"

	"github.com/harshitSingh1/SentinelShe/internal/database"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

// newMock branche un pgxmock à la place du pool global
func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	prev := database.DB
	database.DB = mock
	t.Cleanup(func() {
		database.DB = prev
		require.NoError(t, mock.ExpectationsWereMet())
	})
	return mock
}

func statsRow(tips, moves, checklists, stories, reports, products int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"tips_saved", "moves_learned", "checklists_completed",
		"stories_authored", "reports_filed", "products_saved",
	}).AddRow(tips, moves, checklists, stories, reports, products)
}
