package mocks

import (
	"context"
	"envmonitor/internal/domain"
	"envmonitor/internal/ports"
	"time"

	"github.com/stretchr/testify/mock"
)

type ReadingRepository struct {
	mock.Mock
}

func (m *ReadingRepository) ReadingsInWindow(ctx context.Context, start, end time.Time) ([]domain.Reading, error) {
	args := m.Called(ctx, start, end)
	readings, _ := args.Get(0).([]domain.Reading)
	return readings, args.Error(1)
}

func (m *ReadingRepository) LatestReading(ctx context.Context) (*domain.Reading, error) {
	args := m.Called(ctx)
	reading, _ := args.Get(0).(*domain.Reading)
	return reading, args.Error(1)
}

func (m *ReadingRepository) LatestReadingDate(ctx context.Context, loc *time.Location) (string, error) {
	args := m.Called(ctx, loc)
	return args.String(0), args.Error(1)
}

func (m *ReadingRepository) HistoricalSeries(ctx context.Context, q ports.SeriesQuery) ([]domain.HistoricalPoint, error) {
	args := m.Called(ctx, q)
	points, _ := args.Get(0).([]domain.HistoricalPoint)
	return points, args.Error(1)
}

func (m *ReadingRepository) DailySummaries(ctx context.Context, from, to time.Time, loc *time.Location) ([]domain.DailySummary, error) {
	args := m.Called(ctx, from, to, loc)
	days, _ := args.Get(0).([]domain.DailySummary)
	return days, args.Error(1)
}

func (m *ReadingRepository) RecentReadings(ctx context.Context, limit, offset int) ([]domain.Reading, error) {
	args := m.Called(ctx, limit, offset)
	readings, _ := args.Get(0).([]domain.Reading)
	return readings, args.Error(1)
}

type JournalRepository struct {
	mock.Mock
}

func (m *JournalRepository) LatestSession(ctx context.Context) (domain.Session, error) {
	args := m.Called(ctx)
	session, _ := args.Get(0).(domain.Session)
	return session, args.Error(1)
}

func (m *JournalRepository) InsertMood(ctx context.Context, sessionID int64, mood domain.MoodLevel) (int64, error) {
	args := m.Called(ctx, sessionID, mood)
	return args.Get(0).(int64), args.Error(1)
}

func (m *JournalRepository) LatestMood(ctx context.Context) (*domain.MoodRecord, error) {
	args := m.Called(ctx)
	record, _ := args.Get(0).(*domain.MoodRecord)
	return record, args.Error(1)
}

func (m *JournalRepository) DailyMoods(ctx context.Context, from, to time.Time, loc *time.Location) (map[string]domain.MoodLevel, error) {
	args := m.Called(ctx, from, to, loc)
	moods, _ := args.Get(0).(map[string]domain.MoodLevel)
	return moods, args.Error(1)
}

func (m *JournalRepository) UpsertSleepRating(ctx context.Context, rating domain.SleepRating) (int64, error) {
	args := m.Called(ctx, rating)
	return args.Get(0).(int64), args.Error(1)
}

func (m *JournalRepository) SleepRatings(ctx context.Context, since time.Time) ([]domain.SleepRating, error) {
	args := m.Called(ctx, since)
	ratings, _ := args.Get(0).([]domain.SleepRating)
	return ratings, args.Error(1)
}

type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) RecentEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]domain.Event)
	return events, args.Error(1)
}
