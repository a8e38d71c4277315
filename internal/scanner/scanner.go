package scanner

import (
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/lib/pq"
)

// Row est satisfait par pgx.Row et pgx.Rows
type Row interface {
	Scan(dest ...interface{}) error
}

// ReportColumns colonnes attendues par ScanReport (alias r pour reports, u pour users)
const ReportColumns = `r.id, r.user_id, r.title, r.description, r.category, r.location,
	r.latitude, r.longitude, r.incident_date, r.is_anonymous, r.is_verified, r.status,
	r.media_urls, r.upvotes, r.downvotes, r.comment_count, r.created_at, r.updated_at,
	u.name, u.is_anonymous`

// ScanReport scanne une ligne SQL vers un Report
func ScanReport(row Row) (*model.Report, error) {
	var r model.Report
	var lat, lng pgtype.Float8
	var mediaURLs []string
	var authorName string
	var authorAnonymous bool

	err := row.Scan(
		&r.ID, &r.UserID, &r.Title, &r.Description, &r.Category, &r.Location,
		&lat, &lng, &r.IncidentDate, &r.IsAnonymous, &r.IsVerified, &r.Status,
		pq.Array(&mediaURLs), &r.Upvotes, &r.Downvotes, &r.CommentCount, &r.CreatedAt, &r.UpdatedAt,
		&authorName, &authorAnonymous,
	)
	if err != nil {
		return nil, err
	}

	r.Latitude = utils.Float8ToPointer(lat)
	r.Longitude = utils.Float8ToPointer(lng)
	r.MediaURLs = utils.NonNil(mediaURLs)
	r.User = model.NewPublicAuthor(authorName, r.IsAnonymous || authorAnonymous)

	return &r, nil
}

// StoryColumns colonnes attendues par ScanStory (alias s pour stories, u pour users)
const StoryColumns = `s.id, s.user_id, s.title, s.content, s.category, s.is_anonymous,
	s.is_verified, s.status, s.media_urls, s.tags, s.upvotes, s.views, s.comment_count,
	s.saved_count, s.created_at, s.updated_at, u.name, u.is_anonymous, u.safety_score`

// ScanStory scanne une ligne SQL vers une Story avec pq.Array pour les tags
func ScanStory(row Row) (*model.Story, error) {
	var s model.Story
	var mediaURLs, tags []string
	var authorName string
	var authorAnonymous bool
	var authorScore int

	err := row.Scan(
		&s.ID, &s.UserID, &s.Title, &s.Content, &s.Category, &s.IsAnonymous,
		&s.IsVerified, &s.Status, pq.Array(&mediaURLs), pq.Array(&tags), &s.Upvotes, &s.Views, &s.CommentCount,
		&s.SavedCount, &s.CreatedAt, &s.UpdatedAt, &authorName, &authorAnonymous, &authorScore,
	)
	if err != nil {
		return nil, err
	}

	s.MediaURLs = utils.NonNil(mediaURLs)
	s.Tags = utils.NonNil(tags)
	s.User = model.NewPublicAuthor(authorName, s.IsAnonymous || authorAnonymous)
	s.User.SafetyScore = &authorScore

	return &s, nil
}

// CommentColumns colonnes attendues par ScanComment (alias c pour comments, u pour users)
const CommentColumns = `c.id, c.user_id, c.entity_type, c.entity_id, c.content, c.upvotes, c.created_at,
	u.name, u.is_anonymous`

// ScanComment scanne une ligne SQL vers un Comment
func ScanComment(row Row) (*model.Comment, error) {
	var c model.Comment
	var authorName string
	var authorAnonymous bool

	err := row.Scan(
		&c.ID, &c.UserID, &c.EntityType, &c.EntityID, &c.Content, &c.Upvotes, &c.CreatedAt,
		&authorName, &authorAnonymous,
	)
	if err != nil {
		return nil, err
	}

	c.User = model.NewPublicAuthor(authorName, authorAnonymous)
	return &c, nil
}

// ScanActivity scanne une ligne (type, id, title, status, created_at)
func ScanActivity(row Row) (*model.ActivityItem, error) {
	var a model.ActivityItem
	if err := row.Scan(&a.Type, &a.ID, &a.Title, &a.Status, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
