package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxPoolConns      = 10
	poolConnLifetime  = 30 * time.Minute
	poolHealthCheckIn = time.Minute
)

// NewPostgresPool configures and returns a bounded PostgreSQL connection
// pool. Connections are checked out per query and released back to the pool
// by pgx; nothing in the application holds a connection across requests.
func NewPostgresPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, fmt.Errorf("database url is required")
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	cfg.MaxConns = maxPoolConns
	cfg.MaxConnLifetime = poolConnLifetime
	cfg.HealthCheckPeriod = poolHealthCheckIn

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}
