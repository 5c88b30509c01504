package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB owns the pgx connection pool shared by the engine's repositories.
type DB struct {
	Pool    *pgxpool.Pool
	PoolCfg *pgxpool.Config
}

// Config yields the connection string. Pool sizing travels in the DSN query
// parameters, which pgxpool.ParseConfig understands natively.
type Config interface {
	GetDSN() string
}

// New opens the pool and verifies connectivity before handing it out, so a
// bad database configuration fails at startup rather than on first query.
func New(ctx context.Context, config Config) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(config.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{
		Pool:    pool,
		PoolCfg: poolCfg,
	}, nil
}
