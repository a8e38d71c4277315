package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/harshitSingh1/SentinelShe/internal/logger"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
)

// Context keys
type contextKey string

const (
	userContextKey  = contextKey("user")
	tokenContextKey = contextKey("token")
)

// TokenValidator résout un token de session en utilisateur. Remplacé dans les tests.
var TokenValidator = utils.GetUserByToken

// AuthMiddleware valide le token et injecte l'utilisateur dans le contexte
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := GetUserFromContext(r); err == nil {
			next.ServeHTTP(w, r)
			return
		}

		token, err := utils.GetToken(r)
		if err != nil {
			utils.ErrorSimple(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, err := TokenValidator(r.Context(), token)
		if err != nil {
			logger.Debug("AuthMiddleware: %v", err)
			utils.ErrorSimple(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *user, token)))
	})
}

// OptionalAuth injecte l'utilisateur si un token valide est présent, sans
// jamais rejeter la requête
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := utils.GetToken(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := TokenValidator(r.Context(), token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *user, token)))
	})
}

// WithUser retourne un contexte portant l'utilisateur et son token
func WithUser(ctx context.Context, user model.UserProfile, token string) context.Context {
	ctx = context.WithValue(ctx, userContextKey, user)
	return context.WithValue(ctx, tokenContextKey, token)
}

// GetUserFromContext récupère l'utilisateur depuis le contexte de la requête
func GetUserFromContext(r *http.Request) (model.UserProfile, error) {
	user, ok := r.Context().Value(userContextKey).(model.UserProfile)
	if !ok {
		return model.UserProfile{}, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// GetTokenFromContext récupère le token depuis le contexte de la requête
func GetTokenFromContext(r *http.Request) (string, error) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in context")
	}
	return token, nil
}

// IsOwnerOrAdmin indique si l'utilisateur peut modifier une ressource de ownerID
func IsOwnerOrAdmin(user model.UserProfile, ownerID string) bool {
	return user.ID == ownerID || user.IsAdmin()
}

// RequireRole rejette les utilisateurs dont le rôle n'est pas dans roles
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := GetUserFromContext(r)
			if err != nil {
				utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.ErrorSimple(w, http.StatusForbidden, "insufficient privileges")
		})
	}
}
