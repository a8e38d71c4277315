package model

import (
	"time"

	"github.com/harshitSingh1/SentinelShe/internal/geo"
)

// ReportCategory catégorie d'un signalement
type ReportCategory string

const (
	ReportSuspiciousActivity ReportCategory = "SUSPICIOUS_ACTIVITY"
	ReportHarassment         ReportCategory = "HARASSMENT"
	ReportUnsafeCondition    ReportCategory = "UNSAFE_CONDITION"
	ReportAssault            ReportCategory = "ASSAULT"
	ReportStalking           ReportCategory = "STALKING"
	ReportOther              ReportCategory = "OTHER"
)

// ReportStatus statut de modération d'un signalement
type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportVerified  ReportStatus = "VERIFIED"
	ReportDismissed ReportStatus = "DISMISSED"
)

type Report struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Category     ReportCategory `json:"category"`
	Location     string         `json:"location"`
	Latitude     *float64       `json:"latitude"`
	Longitude    *float64       `json:"longitude"`
	IncidentDate time.Time      `json:"incidentDate"`
	IsAnonymous  bool           `json:"isAnonymous"`
	IsVerified   bool           `json:"isVerified"`
	Status       ReportStatus   `json:"status"`
	MediaURLs    []string       `json:"mediaUrls"`
	Upvotes      int            `json:"upvotes"`
	Downvotes    int            `json:"downvotes"`
	CommentCount int            `json:"commentCount"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	User         PublicAuthor   `json:"user"`
	Comments     []Comment      `json:"comments,omitempty"`
}

// Coordinates implémente geo.Locatable
func (r Report) Coordinates() (geo.GeoPoint, bool) {
	return geo.Point(r.Latitude, r.Longitude)
}

// Score net affiché dans la liste
func (r Report) Score() int {
	return r.Upvotes - r.Downvotes
}

type CreateReportRequest struct {
	Title        string     `json:"title" validate:"required,min=5,max=100"`
	Description  string     `json:"description" validate:"required,min=20,max=2000"`
	Category     string     `json:"category" validate:"required,oneof=SUSPICIOUS_ACTIVITY HARASSMENT UNSAFE_CONDITION ASSAULT STALKING OTHER"`
	Location     string     `json:"location" validate:"required,max=200"`
	Latitude     *float64   `json:"latitude" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude    *float64   `json:"longitude" validate:"required_with=Latitude,omitempty,longitude"`
	IncidentDate *time.Time `json:"incidentDate"`
	IsAnonymous  bool       `json:"isAnonymous"`
}

type ReportActionRequest struct {
	Action string `json:"action" validate:"required,oneof=verify dismiss upvote"`
}

type ReportVoteRequest struct {
	ReportID string `json:"reportId" validate:"required"`
	VoteType string `json:"voteType" validate:"required,oneof=up down upvote downvote"`
}

// ReportVoteResult état après un vote
type ReportVoteResult struct {
	ReportID  string `json:"reportId"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
	Upvoted   bool   `json:"upvoted"`
	Downvoted bool   `json:"downvoted"`
}

// ReportFilter paramètres de liste
type ReportFilter struct {
	Category string
	Status   string
	Limit    int
}
