// Package journal records the user's subjective mood and sleep ratings.
package journal

import (
	"context"
	"time"

	"envmonitor/internal/domain"
	"envmonitor/internal/ports"
	"envmonitor/internal/sleep"

	"github.com/pkg/errors"
)

const (
	minRating = 1
	maxRating = 5
)

type Service struct {
	repo ports.JournalRepository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo ports.JournalRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// RecordMood stores a mood against the most recent session.
func (s *Service) RecordMood(ctx context.Context, mood domain.MoodLevel) (int64, error) {
	if !mood.Valid() {
		return 0, errors.Wrapf(domain.ErrInvalidMood, "mood %q", mood)
	}

	session, err := s.repo.LatestSession(ctx)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.InsertMood(ctx, session.ID, mood)
	if err != nil {
		return 0, errors.Wrap(err, "failed to record mood")
	}
	return id, nil
}

// RecordSleepQuality stores or replaces the rating for date in the most recent session.
func (s *Service) RecordSleepQuality(ctx context.Context, date string, rating int, notes *string) (int64, error) {
	if _, err := sleep.ParseDate(date, s.loc); err != nil {
		return 0, err
	}
	if rating < minRating || rating > maxRating {
		return 0, errors.Wrapf(domain.ErrInvalidRating, "rating %d", rating)
	}

	session, err := s.repo.LatestSession(ctx)
	if err != nil {
		return 0, err
	}

	if notes != nil && *notes == "" {
		notes = nil
	}

	id, err := s.repo.UpsertSleepRating(ctx, domain.SleepRating{
		SessionID:  session.ID,
		Date:       date,
		Rating:     rating,
		Notes:      notes,
		RecordedAt: s.now(),
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to record sleep quality")
	}
	return id, nil
}

// CurrentMood returns the latest recorded mood, or good when nothing has been recorded.
func (s *Service) CurrentMood(ctx context.Context) (domain.MoodRecord, error) {
	record, err := s.repo.LatestMood(ctx)
	if err != nil {
		return domain.MoodRecord{}, errors.Wrap(err, "failed to fetch mood")
	}
	if record == nil {
		return domain.MoodRecord{Mood: domain.MoodGood, Timestamp: s.now()}, nil
	}
	return *record, nil
}

// SleepQualityHistory returns ratings from the last days, oldest first.
func (s *Service) SleepQualityHistory(ctx context.Context, days int) ([]domain.SleepRating, error) {
	now := s.now().In(s.loc)
	y, m, d := now.Date()
	since := time.Date(y, m, d-days, 0, 0, 0, 0, s.loc)

	ratings, err := s.repo.SleepRatings(ctx, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch sleep ratings")
	}
	return ratings, nil
}
