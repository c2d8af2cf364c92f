package domain

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrNoActiveSession = errors.New("no active session")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidMood     = errors.New("invalid mood level")
)

// Reading represents one environmental sensor sample.
type Reading struct {
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
	Temperature float64   `json:"temperature" bson:"temperature"`
	Humidity    float64   `json:"humidity" bson:"humidity"`
	CO2         *int      `json:"co2,omitempty" bson:"co2,omitempty"`
	Light       *float64  `json:"light,omitempty" bson:"light,omitempty"`
	Motion      bool      `json:"motion" bson:"motion"`
	Noise       bool      `json:"noise" bson:"noise"`
	Quality     *float64  `json:"quality,omitempty" bson:"quality,omitempty"` // 0-100, attached by the store.
}

// Interrupted reports whether motion or noise was detected.
func (r Reading) Interrupted() bool {
	return r.Motion || r.Noise
}

// CO2Value returns the CO2 level, treating an absent value as 0.
func (r Reading) CO2Value() int {
	if r.CO2 == nil {
		return 0
	}
	return *r.CO2
}

// LightValue returns the light level, treating an absent value as 0.
func (r Reading) LightValue() float64 {
	if r.Light == nil {
		return 0
	}
	return *r.Light
}

// MoodLevel is the user's self-reported mood.
type MoodLevel string

const (
	MoodGood    MoodLevel = "good"
	MoodRegular MoodLevel = "regular"
	MoodBad     MoodLevel = "bad"
)

// Valid reports whether m is one of the known mood levels.
func (m MoodLevel) Valid() bool {
	switch m {
	case MoodGood, MoodRegular, MoodBad:
		return true
	}
	return false
}

// Moods are persisted as stress levels in the survey table.
const (
	StressLow    = "bajo"
	StressMedium = "medio"
	StressHigh   = "alto"
)

// StressLevel maps a mood to its stored stress level.
func (m MoodLevel) StressLevel() string {
	switch m {
	case MoodRegular:
		return StressMedium
	case MoodBad:
		return StressHigh
	default:
		return StressLow
	}
}

// MoodFromStress maps a stored stress level back to a mood. Unknown values read as good.
func MoodFromStress(stress string) MoodLevel {
	switch stress {
	case StressMedium:
		return MoodRegular
	case StressHigh:
		return MoodBad
	default:
		return MoodGood
	}
}

// MoodRecord is one stored mood entry.
type MoodRecord struct {
	ID        int64     `json:"id" bson:"_id"`
	Mood      MoodLevel `json:"mood" bson:"mood"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Session is a monitoring session. Only the most recent one is ever used.
type Session struct {
	ID        int64     `json:"id" bson:"_id"`
	StartedAt time.Time `json:"started_at" bson:"started_at"`
}

// SleepRating is the user's 1-5 rating of a night's sleep.
type SleepRating struct {
	ID         int64     `json:"id" bson:"_id"`
	SessionID  int64     `json:"session_id" bson:"session_id"`
	Date       string    `json:"date" bson:"date"`
	Rating     int       `json:"rating" bson:"rating"`
	Notes      *string   `json:"notes,omitempty" bson:"notes,omitempty"`
	RecordedAt time.Time `json:"recorded_at" bson:"recorded_at"`
}

// EventKind classifies a recorded event.
type EventKind string

const (
	EventMovement  EventKind = "movement"
	EventNoise     EventKind = "noise"
	EventThreshold EventKind = "threshold"
)

// EventKindFromStored maps a stored event type to its kind.
func EventKindFromStored(stored string) EventKind {
	switch stored {
	case "movimiento", "movement":
		return EventMovement
	case "ruido", "noise":
		return EventNoise
	default:
		return EventThreshold
	}
}

// Event is a notable sensor event (motion, noise, threshold crossing).
type Event struct {
	ID          int64     `json:"id" bson:"_id"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
	Kind        EventKind `json:"kind" bson:"kind"`
	Description string    `json:"description" bson:"description"`
}

// HistoricalPoint is one time bucket of averaged readings.
type HistoricalPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	CO2         int       `json:"co2"`
	Light       int       `json:"light"`
}

// DailySummary holds per-day averages along with the day's last mood, if any.
type DailySummary struct {
	Date           string     `json:"date"`
	Quality        int        `json:"quality"`
	AvgTemperature float64    `json:"avg_temperature"`
	AvgHumidity    float64    `json:"avg_humidity"`
	Mood           *MoodLevel `json:"mood"`
}
