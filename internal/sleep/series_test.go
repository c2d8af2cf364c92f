package sleep

import (
	"testing"
	"time"

	"envmonitor/internal/domain"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeries(t *testing.T) {
	readings := []domain.Reading{
		{Timestamp: at("2024-03-09", 23, 30), Temperature: 21, Humidity: 44, CO2: ptr(600)},
		{Timestamp: at("2024-03-09", 23, 30).Add(40 * time.Second), Temperature: 22, Humidity: 46, CO2: ptr(700)},
		{Timestamp: at("2024-03-10", 2, 0), Temperature: 19, Humidity: 55},
		{Timestamp: at("2024-03-10", 6, 15), Temperature: 20, Humidity: 51, CO2: ptr(801)},
	}

	series, err := BuildSeries(readings, "2024-03-10", bogota)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-10", series.Date)
	assert.Equal(t, []SeriesPoint{
		{Time: "23:30", Temperature: 21.5, Humidity: 45, CO2: 650},
		{Time: "02:00", Temperature: 19, Humidity: 55, CO2: 0},
		{Time: "06:15", Temperature: 20, Humidity: 51, CO2: 801},
	}, series.Points)

	assert.Equal(t, Stats{Min: 19, Max: 22, Avg: 20.5}, series.TemperatureStats)
	assert.Equal(t, Stats{Min: 44, Max: 55, Avg: 49}, series.HumidityStats)
	// readings without CO2 are skipped, not counted as zero
	assert.Equal(t, 600.0, series.CO2Stats.Min)
	assert.Equal(t, 801.0, series.CO2Stats.Max)
	assert.InDelta(t, 700.33, series.CO2Stats.Avg, 0.01)
}

func TestBuildSeries_Empty(t *testing.T) {
	_, err := BuildSeries(nil, "2024-03-10", bogota)
	assert.True(t, errors.Is(err, ErrNoDataForWindow))

	_, err = BuildSeries(nil, "10-03-2024", bogota)
	assert.True(t, errors.Is(err, ErrInvalidDateFormat))
}
