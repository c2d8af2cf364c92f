// Package stats computes the dashboard's daily aggregates and series periods.
package stats

import (
	"math"
	"time"

	"envmonitor/internal/domain"
)

// DayValue pairs a date with its daily quality.
type DayValue struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// Overview summarizes a range of daily summaries.
type Overview struct {
	AverageQuality int      `json:"average_quality"`
	BestDay        DayValue `json:"best_day"`
	WorstDay       DayValue `json:"worst_day"`
}

// Summarize returns the average daily quality along with the best and worst
// days. Ties go to the earliest day. With no days, both point at rangeStart.
func Summarize(days []domain.DailySummary, rangeStart string) Overview {
	if len(days) == 0 {
		return Overview{
			BestDay:  DayValue{Date: rangeStart},
			WorstDay: DayValue{Date: rangeStart},
		}
	}

	best, worst := days[0], days[0]
	total := 0
	for _, d := range days {
		total += d.Quality
		if d.Quality > best.Quality {
			best = d
		}
		if d.Quality < worst.Quality {
			worst = d
		}
	}

	return Overview{
		AverageQuality: int(math.Round(float64(total) / float64(len(days)))),
		BestDay:        DayValue{Date: best.Date, Value: best.Quality},
		WorstDay:       DayValue{Date: worst.Date, Value: worst.Quality},
	}
}

// AttachMoods sets each day's mood from moods keyed by date.
func AttachMoods(days []domain.DailySummary, moods map[string]domain.MoodLevel) {
	for i := range days {
		if mood, ok := moods[days[i].Date]; ok {
			m := mood
			days[i].Mood = &m
		}
	}
}

// Period describes the lookback and resolution of a historical series.
type Period struct {
	Name      string
	Lookback  time.Duration
	Unit      string
	MaxPoints int
}

var periods = map[string]Period{
	"6h":  {Name: "6h", Lookback: 6 * time.Hour, Unit: "minute", MaxPoints: 360},
	"24h": {Name: "24h", Lookback: 24 * time.Hour, Unit: "hour", MaxPoints: 24},
	"7d":  {Name: "7d", Lookback: 7 * 24 * time.Hour, Unit: "hour", MaxPoints: 84},
	"30d": {Name: "30d", Lookback: 30 * 24 * time.Hour, Unit: "day", MaxPoints: 30},
}

// ParsePeriod resolves a period name. Unknown names fall back to 24h.
func ParsePeriod(name string) Period {
	if p, ok := periods[name]; ok {
		return p
	}
	return periods["24h"]
}
