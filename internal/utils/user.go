package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harshitSingh1/SentinelShe/internal/database"
	"github.com/harshitSingh1/SentinelShe/internal/logger"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/scoring"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `id, name, email, phone, city, country, is_anonymous, safety_score, role, created_at, updated_at`

// ScanUser lit les colonnes userColumns
func ScanUser(row pgx.Row, extra ...any) (*model.UserProfile, error) {
	var u model.UserProfile
	var phone, city, country pgtype.Text

	dest := []any{
		&u.ID, &u.Name, &u.Email, &phone, &city, &country,
		&u.IsAnonymous, &u.SafetyScore, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	u.Phone = TextToPointer(phone)
	u.City = TextToPointer(city)
	u.Country = TextToPointer(country)
	return &u, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindUserByEmailWithPassword recherche un utilisateur par email et retourne aussi le hash du mot de passe
func FindUserByEmailWithPassword(ctx context.Context, email string) (*model.UserProfile, string, error) {
	var hash string
	user, err := ScanUser(database.DB.QueryRow(ctx,
		`SELECT `+userColumns+`, password_hash FROM users WHERE email = $1 AND deleted_at IS NULL`,
		normalizeEmail(email),
	), &hash)
	if err != nil {
		return nil, "", DBError(err, "user")
	}
	return user, hash, nil
}

// GetUserByID récupère un utilisateur actif
func GetUserByID(ctx context.Context, id string) (*model.UserProfile, error) {
	user, err := ScanUser(database.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL`, id,
	))
	if err != nil {
		return nil, DBError(err, "user")
	}
	return user, nil
}

// CreateUser crée un utilisateur et sa ligne user_stats
func CreateUser(ctx context.Context, name, email, passwordHash string) (*model.UserProfile, error) {
	var user *model.UserProfile

	err := database.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		user, err = ScanUser(tx.QueryRow(ctx, `
			INSERT INTO users (id, name, email, password_hash, safety_score, role)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+userColumns,
			uuid.NewString(), strings.TrimSpace(name), normalizeEmail(email), passwordHash,
			scoring.BaseScore, model.RoleUser,
		))
		if err != nil {
			return DBError(err, "user")
		}

		_, err = tx.Exec(ctx, `INSERT INTO user_stats (user_id) VALUES ($1)`, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User created: %s", user.ID)
	return user, nil
}

// UpdateUserProfile applique les champs non nil de req
func UpdateUserProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.UserProfile, error) {
	user, err := ScanUser(database.DB.QueryRow(ctx, `
		UPDATE users SET
			name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			city = COALESCE($4, city),
			country = COALESCE($5, country),
			is_anonymous = COALESCE($6, is_anonymous),
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+userColumns,
		userID, req.Name, req.Phone, req.City, req.Country, req.IsAnonymous,
	))
	if err != nil {
		return nil, DBError(err, "user")
	}
	return user, nil
}

// GetUserByToken récupère l'utilisateur d'une session valide
func GetUserByToken(ctx context.Context, token string) (*model.UserProfile, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}

	user, err := ScanUser(database.DB.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.phone, u.city, u.country, u.is_anonymous,
			u.safety_score, u.role, u.created_at, u.updated_at
		FROM users u
		INNER JOIN sessions s ON u.id = s.user_id
		WHERE s.token = $1 AND s.expires_at > NOW() AND u.deleted_at IS NULL`,
		token,
	))
	if err != nil {
		return nil, DBError(err, "session")
	}
	return user, nil
}

// GetLeaderboard classe les utilisateurs par safety_score
func GetLeaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id, name, is_anonymous, safety_score
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY safety_score DESC, created_at ASC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		var name string
		var anonymous bool
		if err := rows.Scan(&e.UserID, &name, &anonymous, &e.Score); err != nil {
			return nil, err
		}
		e.Rank = len(entries) + 1
		e.UserName = model.NewPublicAuthor(name, anonymous).Name
		e.Level = scoring.LevelFor(e.Score)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
