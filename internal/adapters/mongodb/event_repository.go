package mongodb

import (
	"context"

	"envmonitor/internal/domain"
	"envmonitor/internal/ports"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepository struct {
	collection *mongo.Collection
}

func NewEventRepository(db *MongoDB) ports.EventRepository {
	return &EventRepository{
		collection: db.Database.Collection(EventsCollection),
	}
}

func (r *EventRepository) RecentEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find events")
	}
	defer cursor.Close(ctx)

	events := make([]domain.Event, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, errors.Wrap(err, "failed to decode events")
	}
	for i := range events {
		events[i].Kind = domain.EventKindFromStored(string(events[i].Kind))
		if events[i].Description == "" {
			events[i].Description = string(events[i].Kind) + " event"
		}
	}
	return events, nil
}
