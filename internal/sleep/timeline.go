package sleep

import (
	"fmt"

	"envmonitor/internal/domain"
)

// Condition classifies an hour of the night.
type Condition string

const (
	ConditionOptimal    Condition = "optimal"
	ConditionAcceptable Condition = "acceptable"
	ConditionPoor       Condition = "poor"
)

const (
	optimalThreshold    = 80.0
	acceptableThreshold = 60.0
)

// timelineHours is chronological across midnight, not numeric.
var timelineHours = []int{22, 23, 0, 1, 2, 3, 4, 5, 6, 7, 8}

// TimelineSegment is the classified condition of one hour.
type TimelineSegment struct {
	HourLabel string    `json:"hour_label"`
	Condition Condition `json:"condition"`
}

// Classify maps an average quality score to a condition. Lower bounds are inclusive.
func Classify(avgQuality float64) Condition {
	switch {
	case avgQuality >= optimalThreshold:
		return ConditionOptimal
	case avgQuality >= acceptableThreshold:
		return ConditionAcceptable
	default:
		return ConditionPoor
	}
}

// BuildTimeline buckets readings into the hours 22:00 through 08:00 and
// classifies each hour by its average quality. Hours without readings, or
// without any quality value, are optimal.
func BuildTimeline(readings []domain.Reading, w Window) []TimelineSegment {
	timeline := make([]TimelineSegment, 0, len(timelineHours))

	for _, h := range timelineHours {
		start, end := w.hourBounds(h)

		var sum float64
		var n int
		for _, r := range readings {
			if r.Timestamp.Before(start) || !r.Timestamp.Before(end) {
				continue
			}
			if r.Quality != nil {
				sum += *r.Quality
				n++
			}
		}

		condition := ConditionOptimal
		if n > 0 {
			condition = Classify(sum / float64(n))
		}

		timeline = append(timeline, TimelineSegment{
			HourLabel: fmt.Sprintf("%02d:00", h),
			Condition: condition,
		})
	}

	return timeline
}
