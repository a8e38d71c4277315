package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/harshitSingh1/SentinelShe/internal/database"
	"github.com/harshitSingh1/SentinelShe/internal/logger"
	"github.com/harshitSingh1/SentinelShe/internal/middleware"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/scanner"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const (
	defaultStoryLimit = 10
	maxStoryLimit     = 50
)

const storyFrom = ` FROM stories s INNER JOIN users u ON u.id = s.user_id`

func loadStory(ctx context.Context, id string) (*model.Story, error) {
	story, err := scanner.ScanStory(database.DB.QueryRow(ctx,
		`SELECT `+scanner.StoryColumns+storyFrom+` WHERE s.id = $1`, id,
	))
	if err != nil {
		return nil, utils.DBError(err, "story")
	}
	return story, nil
}

// normalizeTags supprime les doublons et les tags vides
func normalizeTags(tags []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// GetStories liste paginée, les plus récentes d'abord
func GetStories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.StoryFilter{
		Category: q.Get("category"),
		Tag:      strings.ToLower(strings.TrimSpace(q.Get("tag"))),
		Page:     utils.QueryInt(r, "page", 1, 1, 1<<20),
		Limit:    utils.QueryInt(r, "limit", defaultStoryLimit, 1, maxStoryLimit),
	}

	where := " WHERE TRUE"
	args := []interface{}{}
	if f.Category != "" {
		args = append(args, f.Category)
		where += fmt.Sprintf(" AND s.category = $%d", len(args))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		where += fmt.Sprintf(" AND $%d = ANY(s.tags)", len(args))
	}

	ctx := r.Context()
	var total int
	if err := database.DB.QueryRow(ctx, `SELECT COUNT(*) FROM stories s`+where, args...).Scan(&total); err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to count stories", err)
		return
	}

	pageArgs := append(args, f.Limit, (f.Page-1)*f.Limit)
	rows, err := database.DB.Query(ctx,
		`SELECT `+scanner.StoryColumns+storyFrom+where+
			fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2),
		pageArgs...,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to fetch stories", err)
		return
	}
	defer rows.Close()

	stories := []model.Story{}
	for rows.Next() {
		s, err := scanner.ScanStory(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "failed to read stories", err)
			return
		}
		stories = append(stories, *s)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to read stories", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"stories":    stories,
		"pagination": model.NewPagination(f.Page, f.Limit, total),
	})
}

func CreateStory(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.CreateStoryRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	id := uuid.NewString()
	err := database.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO stories (id, user_id, title, content, category, is_anonymous, tags, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, user.ID, strings.TrimSpace(req.Title), req.Content, req.Category,
			req.IsAnonymous, pq.Array(normalizeTags(req.Tags)), model.StoryPending,
		); err != nil {
			return fmt.Errorf("insert story: %w", err)
		}
		_, err := utils.AdjustStat(ctx, tx, user.ID, model.StatStoriesAuthored, 1)
		return err
	})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to submit story", err)
		return
	}
	logger.Info("Story %s submitted by %s", id, user.ID)

	story, err := loadStory(ctx, id)
	if err != nil {
		utils.FromError(w, err, "failed to load story")
		return
	}
	utils.Created(w, story)
}

// GetStory retourne l'histoire avec ses commentaires et incrémente les vues
func GetStory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	story, err := loadStory(ctx, id)
	if err != nil {
		utils.FromError(w, err, "failed to fetch story")
		return
	}

	if err := database.DB.QueryRow(ctx,
		`UPDATE stories SET views = views + 1 WHERE id = $1 RETURNING views`, id,
	).Scan(&story.Views); err != nil {
		logger.Warning("Could not increment views for story %s: %v", id, err)
	}

	comments, err := listComments(ctx, model.EntityTypeStory, id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to fetch comments", err)
		return
	}
	story.Comments = comments

	utils.Success(w, story)
}

// storyForOwner charge l'histoire et vérifie que l'utilisateur peut la modifier
func storyForOwner(w http.ResponseWriter, r *http.Request) (*model.Story, model.UserProfile, bool) {
	user, ok := requireUser(w, r)
	if !ok {
		return nil, user, false
	}

	story, err := loadStory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.FromError(w, err, "failed to fetch story")
		return nil, user, false
	}
	if !middleware.IsOwnerOrAdmin(user, story.UserID) {
		utils.ErrorSimple(w, http.StatusForbidden, "you can only modify your own stories")
		return nil, user, false
	}
	return story, user, true
}

func UpdateStory(w http.ResponseWriter, r *http.Request) {
	story, _, ok := storyForOwner(w, r)
	if !ok {
		return
	}

	var req model.UpdateStoryRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	var tags interface{}
	if req.Tags != nil {
		tags = pq.Array(normalizeTags(req.Tags))
	}

	_, err := database.DB.Exec(r.Context(), `
		UPDATE stories SET
			title = COALESCE($2, title),
			content = COALESCE($3, content),
			category = COALESCE($4, category),
			is_anonymous = COALESCE($5, is_anonymous),
			tags = COALESCE($6, tags),
			updated_at = NOW()
		WHERE id = $1`,
		story.ID, req.Title, req.Content, req.Category, req.IsAnonymous, tags,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to update story", err)
		return
	}

	updated, err := loadStory(r.Context(), story.ID)
	if err != nil {
		utils.FromError(w, err, "failed to load story")
		return
	}
	utils.Success(w, updated)
}

// DeleteStory supprime l'histoire, ses commentaires, votes et enregistrements,
// et décrémente stories_authored de l'auteur
func DeleteStory(w http.ResponseWriter, r *http.Request) {
	story, _, ok := storyForOwner(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	err := database.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM stories WHERE id = $1`, story.ID)
		if err != nil {
			return fmt.Errorf("delete story: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("story %w", utils.ErrNotFound)
		}

		// votes sur les commentaires avant les commentaires eux-mêmes
		if _, err := tx.Exec(ctx, `
			DELETE FROM votes
			WHERE entity_type = $1 AND entity_id IN (
				SELECT id FROM comments WHERE entity_type = $2 AND entity_id = $3
			)`, model.EntityTypeComment, model.EntityTypeStory, story.ID,
		); err != nil {
			return fmt.Errorf("delete comment votes: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM comments WHERE entity_type = $1 AND entity_id = $2`,
			model.EntityTypeStory, story.ID,
		); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM votes WHERE entity_type = $1 AND entity_id = $2`,
			model.EntityTypeStory, story.ID,
		); err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM saved_items WHERE item_type = $1 AND item_id = $2`,
			model.ItemStory, story.ID,
		); err != nil {
			return fmt.Errorf("delete saves: %w", err)
		}

		_, err = utils.AdjustStat(ctx, tx, story.UserID, model.StatStoriesAuthored, -1)
		return err
	})
	if err != nil {
		utils.FromError(w, err, "failed to delete story")
		return
	}

	utils.Message(w, "story deleted")
}

// StoryAction bascule upvote ou save
func StoryAction(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var req model.StoryActionRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	result := model.StoryActionResult{StoryID: id}
	if err := applyStoryAction(ctx, user.ID, id, req.Action, &result); err != nil {
		utils.FromError(w, err, "failed to "+req.Action+" story")
		return
	}

	// état complémentaire pour l'affichage
	story, err := loadStory(ctx, id)
	if err != nil {
		utils.FromError(w, err, "failed to load story")
		return
	}
	result.Upvotes, result.SavedCount = story.Upvotes, story.SavedCount
	if req.Action == "upvote" {
		if result.Saved, err = utils.IsSaved(ctx, user.ID, model.ItemStory, id); err != nil {
			logger.Warning("IsSaved(%s): %v", id, err)
		}
	} else {
		if result.Upvoted, err = hasUpvoted(ctx, user.ID, model.EntityTypeStory, id); err != nil {
			logger.Warning("hasUpvoted(%s): %v", id, err)
		}
	}

	utils.Success(w, result)
}

// applyStoryAction exécute le toggle demandé et remplit les champs de result
// qui le concernent
func applyStoryAction(ctx context.Context, userID, storyID, action string, result *model.StoryActionResult) error {
	switch action {
	case "upvote":
		upvoted, upvotes, err := utils.ToggleUpvote(ctx, userID, model.EntityTypeStory, storyID)
		if err != nil {
			return err
		}
		result.Upvoted, result.Upvotes = upvoted, upvotes
	case "save":
		toggle, err := utils.ToggleSavedItem(ctx, userID, model.ItemStory, storyID)
		if err != nil {
			return err
		}
		result.Saved, result.SavedCount = toggle.Active, toggle.Total
	default:
		return fmt.Errorf("%w: unknown story action %q", utils.ErrInvalid, action)
	}
	return nil
}

func hasUpvoted(ctx context.Context, userID string, entityType model.EntityType, entityID string) (bool, error) {
	var upvoted bool
	err := database.DB.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM votes
			WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3 AND kind = 'up'
		)`, userID, entityType, entityID,
	).Scan(&upvoted)
	return upvoted, err
}

// UploadStoryMedia ajoute une image à l'histoire (propriétaire ou admin)
func UploadStoryMedia(w http.ResponseWriter, r *http.Request) {
	if Media == nil {
		if _, ok := requireUser(w, r); ok {
			utils.ErrorSimple(w, http.StatusServiceUnavailable, "media uploads are not configured")
		}
		return
	}
	story, _, ok := storyForOwner(w, r)
	if !ok {
		return
	}

	url, ok := uploadImage(w, r, "stories", story.ID)
	if !ok {
		return
	}

	var mediaURLs []string
	if err := database.DB.QueryRow(r.Context(),
		`UPDATE stories SET media_urls = array_append(media_urls, $1), updated_at = NOW()
		 WHERE id = $2 RETURNING media_urls`,
		url, story.ID,
	).Scan(&mediaURLs); err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to attach media", err)
		return
	}

	utils.Success(w, map[string]interface{}{"mediaUrls": mediaURLs})
}
