package sleep

import (
	"time"

	"envmonitor/internal/domain"
)

// Stats holds the range and mean of one measurement over the night.
type Stats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// Summary is the sleep analysis of one night.
type Summary struct {
	Date              string            `json:"date"`
	DurationHours     float64           `json:"duration_hours"`
	QualityScore      float64           `json:"quality_score"`
	InterruptionCount int               `json:"interruption_count"`
	TemperatureStats  Stats             `json:"temperature_stats"`
	HumidityStats     Stats             `json:"humidity_stats"`
	CO2Stats          Stats             `json:"co2_stats"`
	Timeline          []TimelineSegment `json:"timeline"`
}

type accumulator struct {
	min, max, sum float64
	n             int
}

func (a *accumulator) add(v float64) {
	if a.n == 0 || v < a.min {
		a.min = v
	}
	if a.n == 0 || v > a.max {
		a.max = v
	}
	a.sum += v
	a.n++
}

func (a *accumulator) stats() Stats {
	if a.n == 0 {
		return Stats{}
	}
	return Stats{Min: a.min, Max: a.max, Avg: a.sum / float64(a.n)}
}

// Aggregate summarizes readings already fetched for the night window of date.
// Readings are not re-filtered by timestamp. An empty slice is
// ErrNoDataForWindow, never a zeroed summary.
func Aggregate(readings []domain.Reading, date string, loc *time.Location) (Summary, error) {
	w, err := ComputeNightWindow(date, loc)
	if err != nil {
		return Summary{}, err
	}
	if len(readings) == 0 {
		return Summary{}, ErrNoDataForWindow
	}

	var temp, hum, co2 accumulator
	var qualitySum float64
	var qualityCount, interruptions int

	for _, r := range readings {
		temp.add(r.Temperature)
		hum.add(r.Humidity)
		// absent CO2 is averaged in as a zero reading
		co2.add(float64(r.CO2Value()))

		if r.Quality != nil {
			qualitySum += *r.Quality
			qualityCount++
		}
		if r.Interrupted() {
			interruptions++
		}
	}

	var quality float64
	if qualityCount > 0 {
		quality = qualitySum / float64(qualityCount)
	}

	return Summary{
		Date:              w.Date,
		DurationHours:     w.DurationHours(),
		QualityScore:      quality,
		InterruptionCount: interruptions,
		TemperatureStats:  temp.stats(),
		HumidityStats:     hum.stats(),
		CO2Stats:          co2.stats(),
		Timeline:          BuildTimeline(readings, w),
	}, nil
}
