package model

import (
	"time"
)

// Role d'un utilisateur
type Role string

const (
	RoleUser      Role = "USER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
	RoleExpert    Role = "EXPERT"
)

// ModeratorRoles rôles autorisés à vérifier ou rejeter des signalements
var ModeratorRoles = []Role{RoleModerator, RoleAdmin}

// DateFields contient les champs de date standard pour les entités
type DateFields struct {
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

type UserProfile struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	City        *string `json:"city,omitempty"`
	Country     *string `json:"country,omitempty"`
	IsAnonymous bool    `json:"isAnonymous"`
	SafetyScore int     `json:"safetyScore"`
	Role        Role    `json:"role"`
	DateFields
}

// IsAdmin indique si l'utilisateur est administrateur
func (u UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicAuthor est l'auteur tel qu'affiché publiquement (nom masqué si anonyme)
type PublicAuthor struct {
	Name        *string `json:"name"`
	IsAnonymous bool    `json:"isAnonymous"`
	SafetyScore *int    `json:"safetyScore,omitempty"`
}

// NewPublicAuthor construit l'auteur public; le nom est omis si le contenu ou le profil est anonyme
func NewPublicAuthor(name string, anonymous bool) PublicAuthor {
	if anonymous || name == "" {
		return PublicAuthor{IsAnonymous: anonymous}
	}
	return PublicAuthor{Name: &name, IsAnonymous: false}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=80"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	City        *string `json:"city" validate:"omitempty,max=80"`
	Country     *string `json:"country" validate:"omitempty,max=80"`
	IsAnonymous *bool   `json:"isAnonymous"`
}

// Session représente une session active
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse représente la réponse lors de l'authentification
type AuthResponse struct {
	User      *UserProfile `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}
