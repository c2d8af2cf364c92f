package postgres

import (
	"context"

	"envmonitor/internal/domain"
	"envmonitor/internal/ports"

	"github.com/pkg/errors"
)

const recentEventsSQL = `
	SELECT id, timestamp, tipo, COALESCE(descripcion, '')
	FROM eventos
	ORDER BY timestamp DESC
	LIMIT $1`

type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) ports.EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) RecentEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	rows, err := r.store.pool.Query(ctx, recentEventsSQL, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch events")
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		var e domain.Event
		var kind string
		if err := rows.Scan(&e.ID, &e.Timestamp, &kind, &e.Description); err != nil {
			return nil, errors.Wrap(err, "failed to scan event")
		}
		e.Kind = domain.EventKindFromStored(kind)
		if e.Description == "" {
			e.Description = kind + " event"
		}
		events = append(events, e)
	}
	return events, errors.Wrap(rows.Err(), "failed to read events")
}
