// Package sleep computes night-window sleep summaries from sensor readings.
package sleep

import (
	"regexp"
	"time"

	"github.com/pkg/errors"
)

const (
	DateLayout = "2006-01-02"

	// Night windows always span 22:00 the previous day to 08:00 the requested
	// day, counted on the wall clock.
	windowStartHour = 22
	windowEndHour   = 8
	windowHours     = 10.0
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrNoDataForWindow   = errors.New("no data for this date")

	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Window is the night span [Start, End) for a calendar date.
type Window struct {
	Date  string
	Start time.Time
	End   time.Time
	day   time.Time // midnight of Date in the window's location
}

// DurationHours is the window length on the wall clock. It is constant and is
// not derived from Start and End, which may differ by 9 or 11 elapsed hours
// across a daylight saving change.
func (w Window) DurationHours() float64 {
	return windowHours
}

// ParseDate validates a YYYY-MM-DD string and returns midnight of that day in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if !datePattern.MatchString(date) {
		return time.Time{}, errors.Wrapf(ErrInvalidDateFormat, "date %q", date)
	}
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidDateFormat, "date %q", date)
	}
	return day, nil
}

// ComputeNightWindow returns the night window ending on the morning of date.
func ComputeNightWindow(date string, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := ParseDate(date, loc)
	if err != nil {
		return Window{}, err
	}

	y, m, d := day.Date()
	return Window{
		Date:  date,
		Start: time.Date(y, m, d-1, windowStartHour, 0, 0, 0, loc),
		End:   time.Date(y, m, d, windowEndHour, 0, 0, 0, loc),
		day:   day,
	}, nil
}

// hourBounds returns the one-hour bucket starting at clock hour h. Evening
// hours belong to the previous calendar day.
func (w Window) hourBounds(h int) (time.Time, time.Time) {
	y, m, d := w.day.Date()
	if h >= windowStartHour {
		d--
	}
	loc := w.day.Location()
	return time.Date(y, m, d, h, 0, 0, 0, loc), time.Date(y, m, d, h+1, 0, 0, 0, loc)
}
