package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harshitSingh1/SentinelShe/internal/database"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/observability"
	"github.com/harshitSingh1/SentinelShe/internal/votes"
	"github.com/jackc/pgx/v5"
)

// upvoteTables tables dont le compteur upvotes est un simple toggle
var upvoteTables = map[model.EntityType]string{
	model.EntityTypeStory:   "stories",
	model.EntityTypeComment: "comments",
}

// CastReportVote applique un vote up/down sur un signalement. La ligne du
// signalement est verrouillée pendant toute la transaction.
func CastReportVote(ctx context.Context, userID, reportID string, d votes.Direction) (*model.ReportVoteResult, error) {
	result := &model.ReportVoteResult{ReportID: reportID}

	err := database.WithTx(ctx, func(tx pgx.Tx) error {
		var up, down int
		err := tx.QueryRow(ctx,
			`SELECT upvotes, downvotes FROM reports WHERE id = $1 FOR UPDATE`, reportID,
		).Scan(&up, &down)
		if err != nil {
			return DBError(err, "report")
		}

		var from votes.Direction
		err = tx.QueryRow(ctx, `
			SELECT kind FROM votes
			WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
			LIMIT 1`, userID, model.EntityTypeReport, reportID,
		).Scan(&from)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("load vote: %w", err)
		}

		to, change := votes.Transition(from, d)

		if from != "" {
			if _, err := tx.Exec(ctx, `
				DELETE FROM votes
				WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3`,
				userID, model.EntityTypeReport, reportID,
			); err != nil {
				return fmt.Errorf("clear vote: %w", err)
			}
		}
		if to != "" {
			if _, err := tx.Exec(ctx, `
				INSERT INTO votes (id, user_id, entity_type, entity_id, kind)
				VALUES ($1, $2, $3, $4, $5)`,
				uuid.NewString(), userID, model.EntityTypeReport, reportID, to,
			); err != nil {
				return fmt.Errorf("store vote: %w", err)
			}
		}

		result.Upvotes, result.Downvotes = up, down
		if !change.IsZero() {
			if err := tx.QueryRow(ctx, `
				UPDATE reports
				SET upvotes = GREATEST(upvotes + $1, 0), downvotes = GREATEST(downvotes + $2, 0), updated_at = NOW()
				WHERE id = $3
				RETURNING upvotes, downvotes`,
				change.Up, change.Down, reportID,
			).Scan(&result.Upvotes, &result.Downvotes); err != nil {
				return fmt.Errorf("update report counters: %w", err)
			}
		}

		result.Upvoted = to == votes.Up
		result.Downvoted = to == votes.Down
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.VotesCast.WithLabelValues(string(model.EntityTypeReport), string(d)).Inc()
	return result, nil
}

// GetReportBallot retourne les signalements votés par l'utilisateur
func GetReportBallot(ctx context.Context, userID string) (votes.Ballot, error) {
	var ballot votes.Ballot

	rows, err := database.DB.Query(ctx, `
		SELECT entity_id, kind FROM votes
		WHERE user_id = $1 AND entity_type = $2`, userID, model.EntityTypeReport,
	)
	if err != nil {
		return ballot, err
	}
	defer rows.Close()

	up, down := []string{}, []string{}
	for rows.Next() {
		var id string
		var kind votes.Direction
		if err := rows.Scan(&id, &kind); err != nil {
			return ballot, err
		}
		if kind == votes.Up {
			up = append(up, id)
		} else {
			down = append(down, id)
		}
	}
	if err := rows.Err(); err != nil {
		return ballot, err
	}

	ballot.Upvoted = votes.NewSet(up...)
	ballot.Downvoted = votes.NewSet(down...)
	return ballot, nil
}

// ToggleUpvote bascule le vote positif de l'utilisateur sur une histoire ou
// un commentaire et retourne le nouvel état et le compteur
func ToggleUpvote(ctx context.Context, userID string, entityType model.EntityType, entityID string) (bool, int, error) {
	table, ok := upvoteTables[entityType]
	if !ok {
		return false, 0, fmt.Errorf("%w: entity type %q cannot be upvoted", ErrInvalid, entityType)
	}

	var upvoted bool
	var upvotes int

	err := database.WithTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT upvotes FROM `+table+` WHERE id = $1 FOR UPDATE`, entityID,
		).Scan(&upvotes)
		if err != nil {
			return DBError(err, string(entityType))
		}

		var present bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM votes
				WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3 AND kind = 'up'
			)`, userID, entityType, entityID,
		).Scan(&present); err != nil {
			return fmt.Errorf("check vote: %w", err)
		}

		active, delta, err := toggleMembership(ctx, tx, present, entityID,
			`INSERT INTO votes (id, user_id, entity_type, entity_id, kind) VALUES (gen_random_uuid()::text, $1, $2, $3, 'up')
			 ON CONFLICT (user_id, entity_type, entity_id, kind) DO NOTHING`,
			`DELETE FROM votes WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3 AND kind = 'up'`,
			userID, entityType, entityID,
		)
		if err != nil {
			return fmt.Errorf("toggle vote: %w", err)
		}
		upvoted = active

		if delta == 0 {
			return nil
		}
		return tx.QueryRow(ctx,
			`UPDATE `+table+` SET upvotes = GREATEST(upvotes + $1, 0) WHERE id = $2 RETURNING upvotes`,
			delta, entityID,
		).Scan(&upvotes)
	})
	if err != nil {
		return false, 0, err
	}

	observability.VotesCast.WithLabelValues(string(entityType), string(votes.Up)).Inc()
	return upvoted, upvotes, nil
}
