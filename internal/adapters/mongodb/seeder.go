package mongodb

import (
	"context"
	"time"

	"envmonitor/internal/domain"
	"envmonitor/internal/ports"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

type Seeder struct {
	db *MongoDB
}

// NewSeeder resets every collection before returning the seeder.
func NewSeeder(ctx context.Context, db *MongoDB) (ports.Seeder, error) {
	if err := SetUpCollections(ctx, db.Database); err != nil {
		return nil, err
	}
	return &Seeder{db: db}, nil
}

func (s *Seeder) CreateSession(ctx context.Context, startedAt time.Time) (int64, error) {
	id, err := s.db.nextID(ctx, SessionsCollection)
	if err != nil {
		return 0, err
	}
	session := domain.Session{ID: id, StartedAt: startedAt}
	if _, err := s.db.Database.Collection(SessionsCollection).InsertOne(ctx, session); err != nil {
		return 0, errors.Wrap(err, "failed to save session")
	}
	return id, nil
}

func (s *Seeder) InsertReadings(ctx context.Context, readings []domain.Reading) error {
	if len(readings) == 0 {
		return nil
	}
	docs := make([]interface{}, len(readings))
	for i, r := range readings {
		docs[i] = r
	}
	if _, err := s.db.Database.Collection(ReadingsCollection).InsertMany(ctx, docs); err != nil {
		return errors.Wrap(err, "failed to save readings")
	}
	return nil
}

func (s *Seeder) InsertEvents(ctx context.Context, events []domain.Event) error {
	for _, e := range events {
		id, err := s.db.nextID(ctx, EventsCollection)
		if err != nil {
			return err
		}
		doc := bson.M{"_id": id, "timestamp": e.Timestamp, "kind": e.Kind, "description": e.Description}
		if _, err := s.db.Database.Collection(EventsCollection).InsertOne(ctx, doc); err != nil {
			return errors.Wrap(err, "failed to save event")
		}
	}
	return nil
}
