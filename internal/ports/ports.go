package ports

import (
	"context"
	"envmonitor/internal/domain"
	"time"
)

// SeriesQuery describes a bucketed historical series request.
type SeriesQuery struct {
	Unit  string // minute, hour or day
	Since time.Time
	Limit int
}

type ReadingRepository interface {
	// ReadingsInWindow returns readings with start <= timestamp < end, oldest first.
	ReadingsInWindow(ctx context.Context, start, end time.Time) ([]domain.Reading, error)
	// LatestReading returns nil when no reading has been stored yet.
	LatestReading(ctx context.Context) (*domain.Reading, error)
	LatestReadingDate(ctx context.Context, loc *time.Location) (string, error)
	HistoricalSeries(ctx context.Context, q SeriesQuery) ([]domain.HistoricalPoint, error)
	DailySummaries(ctx context.Context, from, to time.Time, loc *time.Location) ([]domain.DailySummary, error)
	// RecentReadings returns readings newest first.
	RecentReadings(ctx context.Context, limit, offset int) ([]domain.Reading, error)
}

type JournalRepository interface {
	LatestSession(ctx context.Context) (domain.Session, error)
	InsertMood(ctx context.Context, sessionID int64, mood domain.MoodLevel) (int64, error)
	LatestMood(ctx context.Context) (*domain.MoodRecord, error)
	DailyMoods(ctx context.Context, from, to time.Time, loc *time.Location) (map[string]domain.MoodLevel, error)
	UpsertSleepRating(ctx context.Context, rating domain.SleepRating) (int64, error)
	SleepRatings(ctx context.Context, since time.Time) ([]domain.SleepRating, error)
}

type EventRepository interface {
	RecentEvents(ctx context.Context, limit int) ([]domain.Event, error)
}

// Seeder loads demo data into a store.
type Seeder interface {
	CreateSession(ctx context.Context, startedAt time.Time) (int64, error)
	InsertReadings(ctx context.Context, readings []domain.Reading) error
	InsertEvents(ctx context.Context, events []domain.Event) error
}
