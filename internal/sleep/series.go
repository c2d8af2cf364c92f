package sleep

import (
	"math"
	"time"

	"envmonitor/internal/domain"
)

// SeriesPoint averages the readings that share one wall-clock minute.
type SeriesPoint struct {
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	CO2         int     `json:"co2"`
}

// NightSeries is the minute-by-minute detail of one night, plotted next to its Summary.
type NightSeries struct {
	Date             string        `json:"date"`
	TemperatureStats Stats         `json:"temperature_stats"`
	HumidityStats    Stats         `json:"humidity_stats"`
	CO2Stats         Stats         `json:"co2_stats"`
	Points           []SeriesPoint `json:"points"`
}

type minuteBucket struct {
	label          string
	temp, hum, co2 accumulator
}

// BuildSeries groups readings of the night window of date by HH:MM in loc,
// keeping the order in which each minute first appears. Unlike Aggregate,
// readings without CO2 are left out of the CO2 figures. Empty input is
// ErrNoDataForWindow.
func BuildSeries(readings []domain.Reading, date string, loc *time.Location) (NightSeries, error) {
	w, err := ComputeNightWindow(date, loc)
	if err != nil {
		return NightSeries{}, err
	}
	if len(readings) == 0 {
		return NightSeries{}, ErrNoDataForWindow
	}
	loc = w.Start.Location()

	var temp, hum, co2 accumulator
	buckets := make([]*minuteBucket, 0)
	byLabel := make(map[string]*minuteBucket)

	for _, r := range readings {
		label := r.Timestamp.In(loc).Format("15:04")
		b, ok := byLabel[label]
		if !ok {
			b = &minuteBucket{label: label}
			byLabel[label] = b
			buckets = append(buckets, b)
		}

		temp.add(r.Temperature)
		hum.add(r.Humidity)
		b.temp.add(r.Temperature)
		b.hum.add(r.Humidity)
		if r.CO2 != nil {
			co2.add(float64(*r.CO2))
			b.co2.add(float64(*r.CO2))
		}
	}

	points := make([]SeriesPoint, len(buckets))
	for i, b := range buckets {
		points[i] = SeriesPoint{
			Time:        b.label,
			Temperature: b.temp.stats().Avg,
			Humidity:    b.hum.stats().Avg,
			CO2:         int(math.Round(b.co2.stats().Avg)),
		}
	}

	return NightSeries{
		Date:             w.Date,
		TemperatureStats: temp.stats(),
		HumidityStats:    hum.stats(),
		CO2Stats:         co2.stats(),
		Points:           points,
	}, nil
}
