package model

import (
	"time"

	"github.com/harshitSingh1/SentinelShe/internal/scoring"
)

// UserStats compteurs d'actions d'un utilisateur
type UserStats struct {
	UserID      string              `json:"userId"`
	Inputs      scoring.ScoreInputs `json:"inputs"`
	SafetyScore int                 `json:"safetyScore"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// StatField colonne de user_stats ajustée par une action
type StatField string

const (
	StatTipsSaved           StatField = "tips_saved"
	StatMovesLearned        StatField = "moves_learned"
	StatChecklistsCompleted StatField = "checklists_completed"
	StatStoriesAuthored     StatField = "stories_authored"
	StatReportsFiled        StatField = "reports_filed"
	StatProductsSaved       StatField = "products_saved"
)

// DashboardStats réponse de GET /dashboard/stats
type DashboardStats struct {
	SafetyScore         int           `json:"safetyScore"`
	Level               scoring.Level `json:"level"`
	Progress            float64       `json:"progress"`
	TipsRead            int           `json:"tipsRead"`
	MovesLearned        int           `json:"movesLearned"`
	ChecklistsCompleted int           `json:"checklistsCompleted"`
	ReportsSubmitted    int           `json:"reportsSubmitted"`
	StoriesShared       int           `json:"storiesShared"`
	SavedProducts       int           `json:"savedProducts"`
	SavedStories        int           `json:"savedStories"`
	Contributions       int           `json:"contributions"`
	WeeklyActivity      [7]int        `json:"weeklyActivity"`
}

// ActivityItem élément du fil d'activité récente
type ActivityItem struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// SavedPreview élément enregistré affiché sur le tableau de bord
type SavedPreview struct {
	ItemType ItemType  `json:"itemType"`
	ItemID   string    `json:"itemId"`
	Title    string    `json:"title"`
	SavedAt  time.Time `json:"savedAt"`
}
