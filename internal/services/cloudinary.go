package services

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/harshitSingh1/SentinelShe/internal/config"
)

const rootFolder = "sentinelshe"

// CloudinaryService gère l'envoi des médias des signalements et histoires
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService crée le service; erreur si les identifiants manquent
func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if !cfg.CloudinaryEnabled() {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

// UploadMedia envoie une image rattachée à une entité ("reports", "stories")
// et retourne l'URL sécurisée
func (s *CloudinaryService) UploadMedia(ctx context.Context, file io.Reader, kind, entityID string) (string, error) {
	overwrite := false

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       uuid.NewString(),
		Folder:         fmt.Sprintf("%s/%s/%s", rootFolder, kind, entityID),
		Overwrite:      &overwrite,
		ResourceType:   "image",
		Transformation: "c_limit,h_1600,w_1600,q_auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}

	return result.SecureURL, nil
}
