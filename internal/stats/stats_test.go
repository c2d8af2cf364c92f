package stats

import (
	"testing"
	"time"

	"envmonitor/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	days := []domain.DailySummary{
		{Date: "2024-03-01", Quality: 70},
		{Date: "2024-03-02", Quality: 90},
		{Date: "2024-03-03", Quality: 55},
		{Date: "2024-03-04", Quality: 90},
	}

	overview := Summarize(days, "2024-03-01")
	assert.Equal(t, 76, overview.AverageQuality)
	assert.Equal(t, DayValue{Date: "2024-03-02", Value: 90}, overview.BestDay)
	assert.Equal(t, DayValue{Date: "2024-03-03", Value: 55}, overview.WorstDay)
}

func TestSummarize_Empty(t *testing.T) {
	overview := Summarize(nil, "2024-02-10")
	assert.Equal(t, 0, overview.AverageQuality)
	assert.Equal(t, "2024-02-10", overview.BestDay.Date)
	assert.Equal(t, "2024-02-10", overview.WorstDay.Date)
}

func TestAttachMoods(t *testing.T) {
	days := []domain.DailySummary{{Date: "2024-03-01"}, {Date: "2024-03-02"}}
	AttachMoods(days, map[string]domain.MoodLevel{"2024-03-02": domain.MoodBad})

	assert.Nil(t, days[0].Mood)
	if assert.NotNil(t, days[1].Mood) {
		assert.Equal(t, domain.MoodBad, *days[1].Mood)
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		name     string
		lookback time.Duration
		unit     string
		points   int
	}{
		{"6h", 6 * time.Hour, "minute", 360},
		{"24h", 24 * time.Hour, "hour", 24},
		{"7d", 168 * time.Hour, "hour", 84},
		{"30d", 720 * time.Hour, "day", 30},
		{"1y", 24 * time.Hour, "hour", 24},
	}

	for _, tc := range testCases {
		p := ParsePeriod(tc.name)
		assert.Equal(t, tc.lookback, p.Lookback, tc.name)
		assert.Equal(t, tc.unit, p.Unit, tc.name)
		assert.Equal(t, tc.points, p.MaxPoints, tc.name)
	}
}
