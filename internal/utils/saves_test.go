package utils

import (
	"context"
	"testing"

	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleSavedItem_TipAdjustsScore(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO saved_items").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("INSERT INTO user_stats").
		WithArgs("u1", 1).
		WillReturnRows(statsRow(1, 0, 0, 0, 0, 0))
	mock.ExpectExec("UPDATE users SET safety_score").
		WithArgs(105, "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectCommit()

	res, err := ToggleSavedItem(context.Background(), "u1", model.ItemTip, "1")
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Equal(t, 7, res.Total)
	assert.Equal(t, model.ItemTip, res.ItemType)
}

func TestToggleSavedItem_UnsaveProduct(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("DELETE FROM saved_items").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery("INSERT INTO user_stats").
		WithArgs("u1", -1).
		WillReturnRows(statsRow(0, 0, 0, 0, 0, 0))
	mock.ExpectExec("UPDATE users SET safety_score").
		WithArgs(100, "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	res, err := ToggleSavedItem(context.Background(), "u1", model.ItemProduct, "alarm-birdie-1")
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.Equal(t, 0, res.Total)
}

func TestToggleSavedItem_ConcurrentInsertSkipsStat(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO saved_items").WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	res, err := ToggleSavedItem(context.Background(), "u1", model.ItemMove, "1")
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Equal(t, 1, res.Total)
}

func TestToggleSavedItem_Story(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT saved_count FROM stories").
		WithArgs("story-1").
		WillReturnRows(pgxmock.NewRows([]string{"saved_count"}).AddRow(2))
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO saved_items").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("UPDATE stories SET saved_count").
		WithArgs(1, "story-1").
		WillReturnRows(pgxmock.NewRows([]string{"saved_count"}).AddRow(3))
	mock.ExpectCommit()

	res, err := ToggleSavedItem(context.Background(), "u1", model.ItemStory, "story-1")
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Equal(t, 3, res.Total)
}

func TestToggleSavedItem_MissingStory(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT saved_count FROM stories").
		WillReturnRows(pgxmock.NewRows([]string{"saved_count"}))
	mock.ExpectRollback()

	_, err := ToggleSavedItem(context.Background(), "u1", model.ItemStory, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSavedCounts(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("GROUP BY item_type").
		WillReturnRows(pgxmock.NewRows([]string{"item_type", "count"}).
			AddRow(model.ItemTip, 3).
			AddRow(model.ItemStory, 1))

	counts, err := GetSavedCounts(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, counts[model.ItemTip])
	assert.Equal(t, 1, counts[model.ItemStory])
	assert.Equal(t, 0, counts[model.ItemProduct])
}
