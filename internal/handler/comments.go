package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/harshitSingh1/SentinelShe/internal/database"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/scanner"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
	"github.com/jackc/pgx/v5"
)

// commentTargets table de l'entité commentée
var commentTargets = map[model.EntityType]string{
	model.EntityTypeReport: "reports",
	model.EntityTypeStory:  "stories",
}

// listComments commentaires d'une entité, les plus récents d'abord
func listComments(ctx context.Context, entityType model.EntityType, entityID string) ([]model.Comment, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT `+scanner.CommentColumns+`
		FROM comments c
		INNER JOIN users u ON u.id = c.user_id
		WHERE c.entity_type = $1 AND c.entity_id = $2
		ORDER BY c.created_at DESC`,
		entityType, entityID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		c, err := scanner.ScanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// createComment insère le commentaire et incrémente comment_count de la
// cible dans la même transaction
func createComment(ctx context.Context, user model.UserProfile, entityType model.EntityType, entityID, content string) (*model.Comment, error) {
	table, ok := commentTargets[entityType]
	if !ok {
		return nil, fmt.Errorf("%w: cannot comment on %s", utils.ErrInvalid, entityType)
	}

	comment := &model.Comment{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		EntityType: entityType,
		EntityID:   entityID,
		Content:    content,
		User:       model.NewPublicAuthor(user.Name, user.IsAnonymous),
	}

	err := database.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE `+table+` SET comment_count = comment_count + 1 WHERE id = $1`, entityID,
		)
		if err != nil {
			return fmt.Errorf("update comment count: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%s %w", entityType, utils.ErrNotFound)
		}

		return tx.QueryRow(ctx, `
			INSERT INTO comments (id, user_id, entity_type, entity_id, content)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at`,
			comment.ID, user.ID, entityType, entityID, content,
		).Scan(&comment.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func getComments(entityType model.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comments, err := listComments(r.Context(), entityType, mux.Vars(r)["id"])
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "failed to fetch comments", err)
			return
		}
		utils.Success(w, map[string]interface{}{"comments": comments})
	}
}

func postComment(entityType model.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req model.CreateCommentRequest
		if err := utils.DecodeAndValidate(r, &req); err != nil {
			utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
			return
		}

		comment, err := createComment(r.Context(), user, entityType, mux.Vars(r)["id"], req.Content)
		if err != nil {
			utils.FromError(w, err, "failed to add comment")
			return
		}
		utils.Created(w, comment)
	}
}

var (
	GetReportComments   = getComments(model.EntityTypeReport)
	CreateReportComment = postComment(model.EntityTypeReport)
	GetStoryComments    = getComments(model.EntityTypeStory)
	CreateStoryComment  = postComment(model.EntityTypeStory)
)

// UpvoteComment bascule le vote positif de l'utilisateur sur un commentaire
func UpvoteComment(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	upvoted, upvotes, err := utils.ToggleUpvote(r.Context(), user.ID, model.EntityTypeComment, id)
	if err != nil {
		utils.FromError(w, err, "failed to upvote comment")
		return
	}
	utils.Success(w, map[string]interface{}{
		"commentId": id,
		"upvoted":   upvoted,
		"upvotes":   upvotes,
	})
}
