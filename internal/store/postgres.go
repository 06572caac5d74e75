// Package store is the persisted identity store: player accounts, credential
// verification and win/loss counters. The rest of the server treats it as a
// black box touched only at signup/login and at end of game.
package store

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"cardroom/internal/config"
)

type Postgres struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgres connects a pool and verifies the database is reachable.
func NewPostgres(ctx context.Context, cfg config.Config, log *slog.Logger) (*Postgres, error) {
	pc, err := pgxpool.ParseConfig(cfg.PGURL)
	if err != nil {
		return nil, err
	}
	if cfg.PGMaxConn > 0 {
		pc.MaxConns = int32(cfg.PGMaxConn)
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Postgres{pool: pool, log: log}, nil
}

func (p *Postgres) Close() { p.pool.Close() }
