package model

import "time"

// StoryCategory catégorie d'une histoire
type StoryCategory string

const (
	StoryPersonalExperience StoryCategory = "PERSONAL_EXPERIENCE"
	StorySafetyTip          StoryCategory = "SAFETY_TIP"
	StoryAwareness          StoryCategory = "AWARENESS"
	StorySuccessStory       StoryCategory = "SUCCESS_STORY"
	StoryQuestion           StoryCategory = "QUESTION"
)

// StoryStatus statut de modération
type StoryStatus string

const (
	StoryPending  StoryStatus = "PENDING"
	StoryApproved StoryStatus = "APPROVED"
	StoryRejected StoryStatus = "REJECTED"
)

type Story struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Category     StoryCategory `json:"category"`
	IsAnonymous  bool          `json:"isAnonymous"`
	IsVerified   bool          `json:"isVerified"`
	Status       StoryStatus   `json:"status"`
	MediaURLs    []string      `json:"mediaUrls"`
	Tags         []string      `json:"tags"`
	Upvotes      int           `json:"upvotes"`
	Views        int           `json:"views"`
	CommentCount int           `json:"commentCount"`
	SavedCount   int           `json:"savedCount"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	User         PublicAuthor  `json:"user"`
	Comments     []Comment     `json:"comments,omitempty"`
}

type CreateStoryRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=100"`
	Content     string   `json:"content" validate:"required,min=50,max=5000"`
	Category    string   `json:"category" validate:"required,oneof=PERSONAL_EXPERIENCE SAFETY_TIP AWARENESS SUCCESS_STORY QUESTION"`
	IsAnonymous bool     `json:"isAnonymous"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
}

type UpdateStoryRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=5,max=100"`
	Content     *string  `json:"content" validate:"omitempty,min=50,max=5000"`
	Category    *string  `json:"category" validate:"omitempty,oneof=PERSONAL_EXPERIENCE SAFETY_TIP AWARENESS SUCCESS_STORY QUESTION"`
	IsAnonymous *bool    `json:"isAnonymous"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
}

type StoryActionRequest struct {
	Action string `json:"action" validate:"required,oneof=upvote save"`
}

// StoryActionResult compteurs et état de l'utilisateur après une action
type StoryActionResult struct {
	StoryID    string `json:"storyId"`
	Upvotes    int    `json:"upvotes"`
	SavedCount int    `json:"savedCount"`
	Upvoted    bool   `json:"upvoted"`
	Saved      bool   `json:"saved"`
}

// StoryFilter paramètres de liste paginée
type StoryFilter struct {
	Category string
	Tag      string
	Page     int
	Limit    int
}

// Pagination informations de pagination
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination calcule le nombre de pages
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Comment commentaire sur une histoire ou un signalement
type Comment struct {
	ID         string       `json:"id"`
	UserID     string       `json:"userId"`
	EntityType EntityType   `json:"entityType"`
	EntityID   string       `json:"entityId"`
	Content    string       `json:"content"`
	Upvotes    int          `json:"upvotes"`
	CreatedAt  time.Time    `json:"createdAt"`
	User       PublicAuthor `json:"user"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
