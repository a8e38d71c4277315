package handler

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/harshitSingh1/SentinelShe/internal/catalog"
	"github.com/harshitSingh1/SentinelShe/internal/database"
	"github.com/harshitSingh1/SentinelShe/internal/logger"
	"github.com/harshitSingh1/SentinelShe/internal/middleware"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/scanner"
	"github.com/harshitSingh1/SentinelShe/internal/scoring"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
)

const (
	defaultActivityLimit = 5
	maxActivityLimit     = 50
	savedPreviewPerType  = 2
	savedPreviewLimit    = 4
)

// weeklyActivity histoires et signalements de l'utilisateur sur les 7 derniers
// jours, par jour de la semaine (lundi = 0)
func weeklyActivity(ctx context.Context, userID string) ([7]int, error) {
	var week [7]int
	rows, err := database.DB.Query(ctx, `
		SELECT EXTRACT(ISODOW FROM a.created_at)::int - 1 AS day, COUNT(*)
		FROM (
			SELECT created_at FROM stories WHERE user_id = $1
			UNION ALL
			SELECT created_at FROM reports WHERE user_id = $1
		) a
		WHERE a.created_at >= NOW() - INTERVAL '7 days'
		GROUP BY day`, userID,
	)
	if err != nil {
		return week, err
	}
	defer rows.Close()

	for rows.Next() {
		var day, n int
		if err := rows.Scan(&day, &n); err != nil {
			return week, err
		}
		if day >= 0 && day < len(week) {
			week[day] = n
		}
	}
	return week, rows.Err()
}

func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	stats, err := utils.GetUserStats(ctx, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to fetch stats", err)
		return
	}
	saved, err := utils.GetSavedCounts(ctx, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to fetch saved items", err)
		return
	}
	week, err := weeklyActivity(ctx, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to fetch activity", err)
		return
	}

	in := stats.Inputs
	utils.Success(w, model.DashboardStats{
		SafetyScore:         stats.SafetyScore,
		Level:               scoring.LevelFor(stats.SafetyScore),
		Progress:            scoring.Progress(stats.SafetyScore),
		TipsRead:            in.TipsSaved,
		MovesLearned:        in.MovesLearned,
		ChecklistsCompleted: in.ChecklistsCompleted,
		ReportsSubmitted:    in.ReportsFiled,
		StoriesShared:       in.StoriesAuthored,
		SavedProducts:       saved[model.ItemProduct],
		SavedStories:        saved[model.ItemStory],
		Contributions:       in.StoriesAuthored + in.ReportsFiled,
		WeeklyActivity:      week,
	})
}

// GetDashboardActivity dernières histoires et signalements de l'utilisateur
func GetDashboardActivity(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	limit := utils.QueryInt(r, "limit", defaultActivityLimit, 1, maxActivityLimit)

	rows, err := database.DB.Query(r.Context(), `
		SELECT type, id, title, status, created_at FROM (
			SELECT 'story' AS type, id, title, status, created_at FROM stories WHERE user_id = $1
			UNION ALL
			SELECT 'report' AS type, id, title, status, created_at FROM reports WHERE user_id = $1
		) a
		ORDER BY created_at DESC
		LIMIT $2`, user.ID, limit,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to fetch activity", err)
		return
	}
	defer rows.Close()

	items := []model.ActivityItem{}
	for rows.Next() {
		a, err := scanner.ScanActivity(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "failed to read activity", err)
			return
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to read activity", err)
		return
	}

	utils.Success(w, items)
}

// savedTitle titre d'un élément enregistré; vide si l'élément n'existe plus
func savedTitle(ctx context.Context, it model.SavedItem) string {
	if it.ItemType != model.ItemStory {
		title, _ := catalog.Default().Title(it.ItemType, it.ItemID)
		return title
	}
	var title string
	if err := database.DB.QueryRow(ctx, `SELECT title FROM stories WHERE id = $1`, it.ItemID).Scan(&title); err != nil {
		logger.Debug("Saved story %s: %v", it.ItemID, err)
		return ""
	}
	return title
}

// GetDashboardSaved aperçu des éléments enregistrés, au plus deux par type
func GetDashboardSaved(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	previews := []model.SavedPreview{}
	for _, t := range []model.ItemType{model.ItemTip, model.ItemProduct, model.ItemStory} {
		items, err := utils.GetSavedItems(ctx, user.ID, t, savedPreviewPerType)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, fmt.Sprintf("failed to fetch saved %ss", t), err)
			return
		}
		for _, it := range items {
			title := savedTitle(ctx, it)
			if title == "" {
				continue
			}
			previews = append(previews, model.SavedPreview{
				ItemType: it.ItemType,
				ItemID:   it.ItemID,
				Title:    title,
				SavedAt:  it.CreatedAt,
			})
		}
	}

	sort.SliceStable(previews, func(i, j int) bool {
		return previews[i].SavedAt.After(previews[j].SavedAt)
	})
	if len(previews) > savedPreviewLimit {
		previews = previews[:savedPreviewLimit]
	}

	utils.Success(w, previews)
}

// RecomputeStats reconstruit les compteurs depuis les tables. Un admin peut
// cibler un autre utilisateur avec ?userId=
func RecomputeStats(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	target := user.ID
	if id := r.URL.Query().Get("userId"); id != "" {
		if !middleware.IsOwnerOrAdmin(user, id) {
			utils.ErrorSimple(w, http.StatusForbidden, "only admins can recompute another user's stats")
			return
		}
		target = id
	}

	stats, err := utils.RecomputeUserStats(r.Context(), target, catalog.Default().ChecklistSizes())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to recompute stats", err)
		return
	}
	logger.Info("Stats recomputed for %s: score %d", target, stats.SafetyScore)
	utils.Success(w, stats)
}
