// Package export serializes raw readings for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"envmonitor/internal/domain"

	"github.com/pkg/errors"
)

const (
	DefaultLimit = 1000
	MaxLimit     = 10000
)

var header = []string{
	"timestamp", "date", "temperature_c", "humidity_pct", "light_lux",
	"co2_ppm", "motion", "noise", "quality", "mood",
}

// Filename returns the attachment name for an export made at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("envmonitor-export-%s.csv", t.Format("2006-01-02-1504"))
}

// WriteReadings writes readings oldest first, each tagged with the mood
// recorded on its local date.
func WriteReadings(w io.Writer, readings []domain.Reading, moods map[string]domain.MoodLevel, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}

	for _, r := range readings {
		local := r.Timestamp.In(loc)
		date := local.Format("2006-01-02")

		mood := "N/A"
		if m, ok := moods[date]; ok {
			mood = strings.ToUpper(m.StressLevel())
		}

		record := []string{
			local.Format(time.RFC3339),
			date,
			strconv.FormatFloat(r.Temperature, 'f', 2, 64),
			strconv.FormatFloat(r.Humidity, 'f', 1, 64),
			"",
			"",
			yesNo(r.Motion),
			yesNo(r.Noise),
			"",
			mood,
		}
		if r.Light != nil {
			record[4] = strconv.FormatFloat(*r.Light, 'f', 0, 64)
		}
		if r.CO2 != nil {
			record[5] = strconv.Itoa(*r.CO2)
		}
		if r.Quality != nil {
			record[8] = strconv.FormatFloat(*r.Quality, 'f', -1, 64)
		}

		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "failed to write csv record")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush csv")
}

// Reverse returns readings in the opposite order; the store hands them back newest first.
func Reverse(readings []domain.Reading) []domain.Reading {
	out := make([]domain.Reading, len(readings))
	for i, r := range readings {
		out[len(readings)-1-i] = r
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
