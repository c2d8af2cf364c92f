// Package postgres implements the repositories on the dashboard's existing
// PostgreSQL schema (lecturas, sesiones, encuesta, eventos, estadisticas_diarias).
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type Store struct {
	pool *pgxpool.Pool
}

// New opens a connection pool and verifies it can reach the database.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create postgres pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// zoneName returns the IANA name Postgres uses for AT TIME ZONE. Go's Local
// has no such name, so it maps to UTC.
func zoneName(loc *time.Location) string {
	if loc == nil || loc == time.Local {
		return "UTC"
	}
	return loc.String()
}
