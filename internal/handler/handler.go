package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/harshitSingh1/SentinelShe/internal/database"
	"github.com/harshitSingh1/SentinelShe/internal/geo"
	"github.com/harshitSingh1/SentinelShe/internal/middleware"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
)

// MediaUploader envoie un fichier et retourne son URL publique
type MediaUploader interface {
	UploadMedia(ctx context.Context, file io.Reader, kind, entityID string) (string, error)
}

// Media est nil quand Cloudinary n'est pas configuré
var Media MediaUploader

// DefaultRadiusKm rayon utilisé quand la requête n'en fournit pas de valide
var DefaultRadiusKm = geo.DefaultRadiusKm

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if database.DB == nil || database.DB.Ping(ctx) != nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	utils.Message(w, "ok")
}

// requireUser retourne l'utilisateur authentifié ou écrit une 401
func requireUser(w http.ResponseWriter, r *http.Request) (model.UserProfile, bool) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return model.UserProfile{}, false
	}
	return user, true
}
