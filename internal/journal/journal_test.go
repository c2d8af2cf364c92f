package journal

import (
	"context"
	"testing"
	"time"

	"envmonitor/internal/domain"
	"envmonitor/internal/mocks"
	"envmonitor/internal/sleep"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupService() (*Service, *mocks.JournalRepository) {
	repo := new(mocks.JournalRepository)
	svc := NewService(repo, time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC) }
	return svc, repo
}

func TestRecordMood(t *testing.T) {
	svc, repo := setupService()
	repo.On("LatestSession", mock.Anything).Return(domain.Session{ID: 7}, nil)
	repo.On("InsertMood", mock.Anything, int64(7), domain.MoodRegular).Return(int64(42), nil)

	id, err := svc.RecordMood(context.Background(), domain.MoodRegular)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	repo.AssertExpectations(t)
}

func TestRecordMood_InvalidMood(t *testing.T) {
	svc, repo := setupService()

	_, err := svc.RecordMood(context.Background(), domain.MoodLevel("ecstatic"))
	assert.True(t, errors.Is(err, domain.ErrInvalidMood))
	repo.AssertNotCalled(t, "LatestSession", mock.Anything)
}

func TestRecordMood_NoActiveSession(t *testing.T) {
	svc, repo := setupService()
	repo.On("LatestSession", mock.Anything).Return(domain.Session{}, domain.ErrNoActiveSession)

	_, err := svc.RecordMood(context.Background(), domain.MoodGood)
	assert.True(t, errors.Is(err, domain.ErrNoActiveSession))
	repo.AssertNotCalled(t, "InsertMood", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordSleepQuality(t *testing.T) {
	svc, repo := setupService()
	notes := "woke up once"
	repo.On("LatestSession", mock.Anything).Return(domain.Session{ID: 3}, nil)
	repo.On("UpsertSleepRating", mock.Anything, mock.MatchedBy(func(r domain.SleepRating) bool {
		return r.SessionID == 3 && r.Date == "2024-03-10" && r.Rating == 4 && r.Notes != nil && *r.Notes == notes
	})).Return(int64(11), nil)

	id, err := svc.RecordSleepQuality(context.Background(), "2024-03-10", 4, &notes)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	repo.AssertExpectations(t)
}

func TestRecordSleepQuality_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		date   string
		rating int
		expect error
	}{
		{name: "rating too low", date: "2024-03-10", rating: 0, expect: domain.ErrInvalidRating},
		{name: "rating too high", date: "2024-03-10", rating: 6, expect: domain.ErrInvalidRating},
		{name: "bad date", date: "10/03/2024", rating: 3, expect: sleep.ErrInvalidDateFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := setupService()
			_, err := svc.RecordSleepQuality(context.Background(), tc.date, tc.rating, nil)
			assert.True(t, errors.Is(err, tc.expect), "got %v", err)
			repo.AssertNotCalled(t, "UpsertSleepRating", mock.Anything, mock.Anything)
		})
	}
}

func TestRecordSleepQuality_NoActiveSession(t *testing.T) {
	svc, repo := setupService()
	repo.On("LatestSession", mock.Anything).Return(domain.Session{}, domain.ErrNoActiveSession)

	_, err := svc.RecordSleepQuality(context.Background(), "2024-03-10", 5, nil)
	assert.True(t, errors.Is(err, domain.ErrNoActiveSession))
}

func TestCurrentMood_DefaultsToGood(t *testing.T) {
	svc, repo := setupService()
	repo.On("LatestMood", mock.Anything).Return(nil, nil)

	record, err := svc.CurrentMood(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), record.ID)
	assert.Equal(t, domain.MoodGood, record.Mood)
}

func TestSleepQualityHistory(t *testing.T) {
	svc, repo := setupService()
	since := time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)
	ratings := []domain.SleepRating{{ID: 1, Date: "2024-03-01", Rating: 3}}
	repo.On("SleepRatings", mock.Anything, since).Return(ratings, nil)

	got, err := svc.SleepQualityHistory(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, ratings, got)
}
