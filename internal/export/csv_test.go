package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"envmonitor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadings(t *testing.T) {
	co2 := 812
	light := 120.4
	quality := 87.5
	readings := []domain.Reading{
		{Timestamp: time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC), Temperature: 21.456, Humidity: 48.3, CO2: &co2, Light: &light, Quality: &quality, Motion: true},
		{Timestamp: time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC), Temperature: 20, Humidity: 50},
	}
	moods := map[string]domain.MoodLevel{"2024-03-09": domain.MoodBad}

	var buf bytes.Buffer
	require.NoError(t, WriteReadings(&buf, readings, moods, time.UTC))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, header, rows[0])
	assert.Equal(t, []string{"2024-03-09T23:00:00Z", "2024-03-09", "21.46", "48.3", "120", "812", "yes", "no", "87.5", "ALTO"}, rows[1])
	assert.Equal(t, []string{"2024-03-10T01:00:00Z", "2024-03-10", "20.00", "50.0", "", "", "no", "no", "", "N/A"}, rows[2])
}

func TestWriteReadings_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReadings(&buf, nil, nil, time.UTC))
	assert.Equal(t, "timestamp,date,temperature_c,humidity_pct,light_lux,co2_ppm,motion,noise,quality,mood\n", buf.String())
}

func TestReverse(t *testing.T) {
	a := domain.Reading{Temperature: 1}
	b := domain.Reading{Temperature: 2}
	c := domain.Reading{Temperature: 3}

	assert.Equal(t, []domain.Reading{c, b, a}, Reverse([]domain.Reading{a, b, c}))
	assert.Empty(t, Reverse(nil))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "envmonitor-export-2024-03-10-0905.csv", Filename(time.Date(2024, 3, 10, 9, 5, 0, 0, time.UTC)))
}
