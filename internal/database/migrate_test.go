package database

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	prev := DB
	DB = mock
	t.Cleanup(func() {
		DB = prev
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return mock
}

var testMigrations = fstest.MapFS{
	"migrations/002_votes.sql": {Data: []byte("CREATE TABLE votes (id int)")},
	"migrations/001_users.sql": {Data: []byte("CREATE TABLE users (id int)")},
	"migrations/README.md":     {Data: []byte("ignored")},
}

func expectApplied(mock pgxmock.PgxPoolIface, name, sql string, exists bool) {
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(name).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
	if !exists {
		mock.ExpectExec(regexp.QuoteMeta(sql)).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs(name).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()
}

func TestMigrate_AppliesInOrder(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	expectApplied(mock, "migrations/001_users.sql", "CREATE TABLE users (id int)", false)
	expectApplied(mock, "migrations/002_votes.sql", "CREATE TABLE votes (id int)", false)

	require.NoError(t, migrate(context.Background(), testMigrations))
}

func TestMigrate_SkipsApplied(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	expectApplied(mock, "migrations/001_users.sql", "", true)
	expectApplied(mock, "migrations/002_votes.sql", "CREATE TABLE votes (id int)", false)

	require.NoError(t, migrate(context.Background(), testMigrations))
}

func TestMigrate_RollsBackFailedFile(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE users (id int)")).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err := migrate(context.Background(), testMigrations)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations/001_users.sql")
}

func TestMigrate_EmbeddedFiles(t *testing.T) {
	content, err := migrationFiles.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)
	for _, table := range []string{"users", "sessions", "reports", "stories", "comments", "votes", "saved_items", "checklist_progress", "user_stats"} {
		assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS "+table, table)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := WithTx(context.Background(), func(_ pgx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
}
