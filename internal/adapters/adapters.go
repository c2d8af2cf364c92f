// Package adapters opens the store backend selected by the configuration.
package adapters

import (
	"context"

	"envmonitor/internal/adapters/mongodb"
	"envmonitor/internal/adapters/postgres"
	"envmonitor/internal/config"
	"envmonitor/internal/ports"

	"github.com/pkg/errors"
)

// Store bundles the repositories of one backend.
type Store struct {
	Readings ports.ReadingRepository
	Journal  ports.JournalRepository
	Events   ports.EventRepository

	// NewSeeder prepares the backend for demo data. For mongo it drops
	// every collection first.
	NewSeeder func(ctx context.Context) (ports.Seeder, error)
	Close     func(ctx context.Context) error
}

func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pg, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Store{
			Readings: postgres.NewReadingRepository(pg),
			Journal:  postgres.NewJournalRepository(pg),
			Events:   postgres.NewEventRepository(pg),
			NewSeeder: func(ctx context.Context) (ports.Seeder, error) {
				return postgres.NewSeeder(ctx, pg)
			},
			Close: func(context.Context) error {
				pg.Close()
				return nil
			},
		}, nil

	case config.DriverMongo:
		db, err := mongodb.NewMongoDB(ctx, cfg.MongoDBURI, cfg.MongoDBName)
		if err != nil {
			return nil, err
		}
		return &Store{
			Readings: mongodb.NewReadingRepository(db),
			Journal:  mongodb.NewJournalRepository(db),
			Events:   mongodb.NewEventRepository(db),
			NewSeeder: func(ctx context.Context) (ports.Seeder, error) {
				return mongodb.NewSeeder(ctx, db)
			},
			Close: db.Close,
		}, nil
	}

	return nil, errors.Errorf("unknown store driver %q", cfg.StoreDriver)
}
