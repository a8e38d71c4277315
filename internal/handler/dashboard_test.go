package handler

import (
	"net/http"
	"testing"
	"time"

	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/scoring"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM user_stats").
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"t", "m", "c", "s", "r", "p", "updated_at"}).
			AddRow(2, 1, 0, 1, 1, 3, created))
	mock.ExpectQuery("GROUP BY item_type").
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"item_type", "count"}).
			AddRow(model.ItemProduct, 3).
			AddRow(model.ItemStory, 2))
	mock.ExpectQuery("ISODOW").
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"day", "count"}).AddRow(0, 2).AddRow(4, 1))

	w := serve(GetDashboardStats, request(http.MethodGet, "/dashboard/stats", "", nil, &alice))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats model.DashboardStats
	decode(t, w, &stats)
	assert.Equal(t, 171, stats.SafetyScore)
	assert.Equal(t, scoring.LevelFor(171), stats.Level)
	assert.Equal(t, 2, stats.TipsRead)
	assert.Equal(t, 3, stats.SavedProducts)
	assert.Equal(t, 2, stats.SavedStories)
	assert.Equal(t, 2, stats.Contributions)
	assert.Equal(t, [7]int{2, 0, 0, 0, 1, 0, 0}, stats.WeeklyActivity)
}

func TestGetDashboardStats_NoStatsRow(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM user_stats").
		WillReturnRows(pgxmock.NewRows([]string{"t", "m", "c", "s", "r", "p", "updated_at"}))
	mock.ExpectQuery("GROUP BY item_type").WillReturnRows(pgxmock.NewRows([]string{"item_type", "count"}))
	mock.ExpectQuery("ISODOW").WillReturnRows(pgxmock.NewRows([]string{"day", "count"}))

	w := serve(GetDashboardStats, request(http.MethodGet, "/dashboard/stats", "", nil, &alice))
	require.Equal(t, http.StatusOK, w.Code)

	var stats model.DashboardStats
	decode(t, w, &stats)
	assert.Equal(t, scoring.BaseScore, stats.SafetyScore)
	assert.Equal(t, [7]int{}, stats.WeeklyActivity)
}

func TestGetDashboardActivity(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("UNION ALL").
		WithArgs("u1", 2).
		WillReturnRows(pgxmock.NewRows([]string{"type", "id", "title", "status", "created_at"}).
			AddRow("report", "r1", "Broken streetlight", "PENDING", created.Add(time.Hour)).
			AddRow("story", "s1", "Walking home", "PENDING", created))

	w := serve(GetDashboardActivity, request(http.MethodGet, "/dashboard/activity?limit=2", "", nil, &alice))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var items []model.ActivityItem
	decode(t, w, &items)
	require.Len(t, items, 2)
	assert.Equal(t, "report", items[0].Type)
	assert.Equal(t, "s1", items[1].ID)
}

func TestGetDashboardSaved(t *testing.T) {
	mock := newMock(t)
	savedCols := []string{"user_id", "item_type", "item_id", "created_at"}
	mock.ExpectQuery("FROM saved_items").
		WithArgs("u1", model.ItemTip, 2).
		WillReturnRows(pgxmock.NewRows(savedCols).
			AddRow("u1", model.ItemTip, "fake-call", created.Add(3*time.Hour)).
			AddRow("u1", model.ItemTip, "removed-tip", created.Add(4*time.Hour)))
	mock.ExpectQuery("FROM saved_items").
		WithArgs("u1", model.ItemProduct, 2).
		WillReturnRows(pgxmock.NewRows(savedCols).
			AddRow("u1", model.ItemProduct, "tool-kubotan-1", created.Add(time.Hour)))
	mock.ExpectQuery("FROM saved_items").
		WithArgs("u1", model.ItemStory, 2).
		WillReturnRows(pgxmock.NewRows(savedCols).
			AddRow("u1", model.ItemStory, "s1", created.Add(2*time.Hour)))
	mock.ExpectQuery("SELECT title FROM stories").
		WithArgs("s1").
		WillReturnRows(pgxmock.NewRows([]string{"title"}).AddRow("Walking home"))

	w := serve(GetDashboardSaved, request(http.MethodGet, "/dashboard/saved", "", nil, &alice))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var previews []model.SavedPreview
	decode(t, w, &previews)
	ids := []string{}
	for _, p := range previews {
		ids = append(ids, p.ItemID)
	}
	// removed-tip n'existe plus dans le catalogue
	assert.Equal(t, []string{"fake-call", "s1", "tool-kubotan-1"}, ids)
	assert.Equal(t, "The Fake Call", previews[0].Title)
	assert.Equal(t, "Walking home", previews[1].Title)
}

func TestRecomputeStats_OtherUserRequiresAdmin(t *testing.T) {
	w := serve(RecomputeStats, request(http.MethodPost, "/dashboard/recompute?userId=a1", "", nil, &alice))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(RecomputeStats, request(http.MethodPost, "/dashboard/recompute", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
