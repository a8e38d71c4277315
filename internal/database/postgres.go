package database

import (
	"context"
	"fmt"
	"time"

	"github.com/harshitSingh1/SentinelShe/internal/config"
	"github.com/harshitSingh1/SentinelShe/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier est satisfait à la fois par le pool et par une pgx.Tx
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Pool est le sous-ensemble de *pgxpool.Pool utilisé par l'application.
// Les tests y branchent un pgxmock.
type Pool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var DB Pool

func ConnectPostgres(cfg *config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	logger.Success("Connected to PostgreSQL (%s:%s/%s)", cfg.DBHost, cfg.DBPort, cfg.DBName)

	DB = pool

	return pool, nil
}

// WithTx exécute fn dans une transaction, commit si fn réussit, rollback sinon
func WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
