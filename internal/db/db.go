package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a new pgx connection pool using the provided DSN.
// It pings the database to ensure the connection is valid.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	// Use a short-lived context for the initial ping.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// TableExists reports whether the given table is present in the connected
// database. Deployments are allowed to omit optional tables (the date-block
// tables), so callers probe once at startup instead of treating runtime
// query failures as "no data".
func TableExists(ctx context.Context, pool *pgxpool.Pool, table string) (bool, error) {
	const query = `SELECT to_regclass($1) IS NOT NULL`

	var exists bool
	if err := pool.QueryRow(ctx, query, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to probe table %s: %w", table, err)
	}
	return exists, nil
}
