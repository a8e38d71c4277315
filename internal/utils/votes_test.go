package utils

import (
	"context"
	"testing"

	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/votes"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectReportLock(mock pgxmock.PgxPoolIface, up, down int) {
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT upvotes, downvotes FROM reports").
		WithArgs("r1").
		WillReturnRows(pgxmock.NewRows([]string{"upvotes", "downvotes"}).AddRow(up, down))
}

func expectCurrentVote(mock pgxmock.PgxPoolIface, kind votes.Direction) {
	rows := pgxmock.NewRows([]string{"kind"})
	if kind != "" {
		rows.AddRow(kind)
	}
	mock.ExpectQuery("SELECT kind FROM votes").WillReturnRows(rows)
}

func TestCastReportVote_UpFromNone(t *testing.T) {
	mock := newMock(t)
	expectReportLock(mock, 2, 1)
	expectCurrentVote(mock, "")
	mock.ExpectExec("INSERT INTO votes").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("UPDATE reports").
		WithArgs(1, 0, "r1").
		WillReturnRows(pgxmock.NewRows([]string{"upvotes", "downvotes"}).AddRow(3, 1))
	mock.ExpectCommit()

	res, err := CastReportVote(context.Background(), "u1", "r1", votes.Up)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Upvotes)
	assert.Equal(t, 1, res.Downvotes)
	assert.True(t, res.Upvoted)
	assert.False(t, res.Downvoted)
}

func TestCastReportVote_UpThenDownMovesVote(t *testing.T) {
	mock := newMock(t)
	expectReportLock(mock, 3, 1)
	expectCurrentVote(mock, votes.Up)
	mock.ExpectExec("DELETE FROM votes").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("INSERT INTO votes").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("UPDATE reports").
		WithArgs(-1, 1, "r1").
		WillReturnRows(pgxmock.NewRows([]string{"upvotes", "downvotes"}).AddRow(2, 2))
	mock.ExpectCommit()

	res, err := CastReportVote(context.Background(), "u1", "r1", votes.Down)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Upvotes)
	assert.Equal(t, 2, res.Downvotes)
	assert.False(t, res.Upvoted)
	assert.True(t, res.Downvoted)
}

func TestCastReportVote_SameDirectionRetracts(t *testing.T) {
	mock := newMock(t)
	expectReportLock(mock, 3, 0)
	expectCurrentVote(mock, votes.Up)
	mock.ExpectExec("DELETE FROM votes").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery("UPDATE reports").
		WithArgs(-1, 0, "r1").
		WillReturnRows(pgxmock.NewRows([]string{"upvotes", "downvotes"}).AddRow(2, 0))
	mock.ExpectCommit()

	res, err := CastReportVote(context.Background(), "u1", "r1", votes.Up)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Upvotes)
	assert.False(t, res.Upvoted)
	assert.False(t, res.Downvoted)
}

func TestCastReportVote_MatchesPureBallot(t *testing.T) {
	for _, from := range []votes.Direction{"", votes.Up, votes.Down} {
		for _, d := range []votes.Direction{votes.Up, votes.Down} {
			to, change := votes.Transition(from, d)

			mock := newMock(t)
			expectReportLock(mock, 5, 5)
			expectCurrentVote(mock, from)
			if from != "" {
				mock.ExpectExec("DELETE FROM votes").WillReturnResult(pgxmock.NewResult("DELETE", 1))
			}
			if to != "" {
				mock.ExpectExec("INSERT INTO votes").WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}
			mock.ExpectQuery("UPDATE reports").
				WithArgs(change.Up, change.Down, "r1").
				WillReturnRows(pgxmock.NewRows([]string{"upvotes", "downvotes"}).AddRow(5+change.Up, 5+change.Down))
			mock.ExpectCommit()

			res, err := CastReportVote(context.Background(), "u1", "r1", d)
			require.NoError(t, err)
			assert.Equal(t, 5+change.Up, res.Upvotes, "from %q vote %q", from, d)
			assert.Equal(t, 5+change.Down, res.Downvotes, "from %q vote %q", from, d)
			assert.Equal(t, to == votes.Up, res.Upvoted)
			assert.Equal(t, to == votes.Down, res.Downvoted)
			assert.False(t, res.Upvoted && res.Downvoted)
			require.NoError(t, mock.ExpectationsWereMet())
		}
	}
}

func TestCastReportVote_UnknownReport(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT upvotes, downvotes FROM reports").
		WillReturnRows(pgxmock.NewRows([]string{"upvotes", "downvotes"}))
	mock.ExpectRollback()

	_, err := CastReportVote(context.Background(), "u1", "missing", votes.Up)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReportBallot(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT entity_id, kind FROM votes").
		WillReturnRows(pgxmock.NewRows([]string{"entity_id", "kind"}).
			AddRow("r1", votes.Up).
			AddRow("r2", votes.Down).
			AddRow("r3", votes.Up))

	ballot, err := GetReportBallot(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r3"}, ballot.Upvoted.IDs())
	assert.Equal(t, []string{"r2"}, ballot.Downvoted.IDs())
}

func TestToggleUpvote_Story(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT upvotes FROM stories").
		WithArgs("story-1").
		WillReturnRows(pgxmock.NewRows([]string{"upvotes"}).AddRow(4))
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO votes").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("UPDATE stories SET upvotes").
		WithArgs(1, "story-1").
		WillReturnRows(pgxmock.NewRows([]string{"upvotes"}).AddRow(5))
	mock.ExpectCommit()

	upvoted, upvotes, err := ToggleUpvote(context.Background(), "u1", model.EntityTypeStory, "story-1")
	require.NoError(t, err)
	assert.True(t, upvoted)
	assert.Equal(t, 5, upvotes)
}

func TestToggleUpvote_ConcurrentToggleLeavesCounter(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT upvotes FROM comments").
		WillReturnRows(pgxmock.NewRows([]string{"upvotes"}).AddRow(1))
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	// la ligne a déjà été supprimée par une autre requête
	mock.ExpectExec("DELETE FROM votes").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	upvoted, upvotes, err := ToggleUpvote(context.Background(), "u1", model.EntityTypeComment, "c1")
	require.NoError(t, err)
	assert.False(t, upvoted)
	assert.Equal(t, 1, upvotes)
}

func TestToggleUpvote_RejectsReports(t *testing.T) {
	_, _, err := ToggleUpvote(context.Background(), "u1", model.EntityTypeReport, "r1")
	assert.ErrorIs(t, err, ErrInvalid)
}
