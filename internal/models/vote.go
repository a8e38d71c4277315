package model

import "time"

// EntityType représente les types d'entités qui peuvent recevoir un vote
type EntityType string

const (
	EntityTypeReport  EntityType = "report"
	EntityTypeStory   EntityType = "story"
	EntityTypeComment EntityType = "comment"
)

// VoteKind type de vote stocké
type VoteKind string

const (
	VoteUp   VoteKind = "up"
	VoteDown VoteKind = "down"
)

// Vote représente un vote d'un utilisateur sur une entité
type Vote struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	Kind       VoteKind   `json:"kind"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ItemType types d'éléments qu'un utilisateur peut enregistrer
type ItemType string

const (
	ItemTip     ItemType = "tip"
	ItemMove    ItemType = "move"
	ItemProduct ItemType = "product"
	ItemStory   ItemType = "story"
)

// SavedItem élément enregistré par un utilisateur
type SavedItem struct {
	UserID    string    `json:"userId"`
	ItemType  ItemType  `json:"itemType"`
	ItemID    string    `json:"itemId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToggleResult résultat d'un toggle (save, practice, upvote)
type ToggleResult struct {
	ItemType ItemType `json:"itemType"`
	ItemID   string   `json:"itemId"`
	Active   bool     `json:"active"`
	Total    int      `json:"total"`
}
