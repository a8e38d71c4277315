package utils

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("already exists")
	ErrInvalid   = errors.New("invalid input")
)

// uniqueViolation code SQLSTATE de violation de contrainte unique
const uniqueViolation = "23505"

// DBError convertit les erreurs pgx connues en erreurs sentinelles.
// what décrit l'entité concernée, par exemple "report".
func DBError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s %w", what, ErrConflict)
	}
	return fmt.Errorf("%s: %w", what, err)
}
