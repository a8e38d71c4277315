package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harshitSingh1/SentinelShe/internal/database"
)

// SessionDuration durée de validité d'une session (24h)
const SessionDuration = 24 * time.Hour

// CreateSession crée une nouvelle session et retourne le token opaque
func CreateSession(ctx context.Context, userID, ipAddress, userAgent string) (string, time.Time, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(SessionDuration)

	_, err := database.DB.Exec(ctx,
		`INSERT INTO sessions (id, user_id, token, expires_at, ip_address, user_agent)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), userID, token, expiresAt, ipAddress, userAgent,
	)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("create session: %w", err)
	}

	return token, expiresAt, nil
}

// InvalidateSession supprime la session du token
func InvalidateSession(ctx context.Context, token string) error {
	res, err := database.DB.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("session %w", ErrNotFound)
	}
	return nil
}

// PurgeExpiredSessions supprime les sessions expirées
func PurgeExpiredSessions(ctx context.Context) (int64, error) {
	res, err := database.DB.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

// ExtractIPAndUserAgent extrait l'IP et le User-Agent depuis une requête HTTP
func ExtractIPAndUserAgent(r *http.Request) (string, string) {
	ip := r.RemoteAddr
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		ip = strings.TrimSpace(strings.Split(fwd, ",")[0])
	} else if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	return ip, r.UserAgent()
}
