package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harshitSingh1/SentinelShe/internal/api"
	"github.com/harshitSingh1/SentinelShe/internal/catalog"
	"github.com/harshitSingh1/SentinelShe/internal/config"
	"github.com/harshitSingh1/SentinelShe/internal/database"
	"github.com/harshitSingh1/SentinelShe/internal/handler"
	"github.com/harshitSingh1/SentinelShe/internal/logger"
	"github.com/harshitSingh1/SentinelShe/internal/middleware"
	"github.com/harshitSingh1/SentinelShe/internal/services"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
)

const sessionPurgeInterval = time.Hour

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx); err != nil {
		logger.Error("Migrations failed: %v", err)
		os.Exit(1)
	}

	// Catalog embarqué: panique si les données sont invalides
	c := catalog.Default()
	logger.Info("Catalog loaded: %d tips, %d checklists, %d products", len(c.QuickTips), len(c.Checklists), len(c.Products))

	handler.DefaultRadiusKm = cfg.DefaultRadiusKm

	if cfg.CloudinaryEnabled() {
		media, err := services.NewCloudinaryService(cfg)
		if err != nil {
			logger.Error("Cloudinary init failed: %v", err)
			os.Exit(1)
		}
		handler.Media = media
	} else {
		logger.Warning("Cloudinary credentials missing, media uploads disabled")
	}

	go purgeSessions(ctx)

	// Initialize routes, wrapped with CORS
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORSMiddleware(cfg.CORSOrigins)(api.SetupRouter()),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		logger.Success("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

// purgeSessions supprime périodiquement les sessions expirées
func purgeSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := utils.PurgeExpiredSessions(ctx)
			if err != nil {
				logger.Warning("Session purge failed: %v", err)
				continue
			}
			if n > 0 {
				logger.Debug("Purged %d expired sessions", n)
			}
		}
	}
}
