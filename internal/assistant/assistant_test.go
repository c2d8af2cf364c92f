package assistant

import (
	"testing"
	"time"

	"envmonitor/internal/domain"
	"envmonitor/internal/sleep"

	"github.com/stretchr/testify/assert"
)

func TestReply(t *testing.T) {
	co2 := 640
	light := 300.0
	current := &domain.Reading{Temperature: 21.36, Humidity: 47, CO2: &co2, Light: &light}
	history := []domain.HistoricalPoint{
		{Timestamp: time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC), Temperature: 18.2},
		{Timestamp: time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC), Temperature: 22.4},
		{Timestamp: time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC), Temperature: 25.1},
	}
	night := &sleep.Summary{
		Date:              "2024-03-10",
		QualityScore:      72,
		InterruptionCount: 2,
		TemperatureStats:  sleep.Stats{Min: 19, Max: 21.5},
		Timeline: []sleep.TimelineSegment{
			{HourLabel: "01:00", Condition: sleep.ConditionPoor},
			{HourLabel: "02:00", Condition: sleep.ConditionOptimal},
		},
	}
	full := Context{Current: current, History: history, LastNight: night}

	testCases := []struct {
		name     string
		message  string
		ctx      Context
		contains string
	}{
		{"greeting", "Hello there", full, "room assistant"},
		{"greeting short", "hi", full, "room assistant"},
		{"current", "How is it right now?", full, "21.4°C with 47% humidity. CO2 is at 640 ppm and there are 300 lux"},
		{"current without data", "what's the weather", Context{}, "don't have current readings"},
		{"best temperature", "What was the best temperature today?", full, "22.4°C at 14:00"},
		{"best temperature without history", "ideal temperature?", Context{}, "historical data"},
		{"humidity", "humidity please", full, "Humidity is currently 47%"},
		{"air", "is the AIR ok?", full, "640 ppm"},
		{"sleep", "How did I sleep?", full, "scored 72/100 with 2 interruptions"},
		{"sleep without data", "last night?", Context{}, "don't have sleep data"},
		{"fallback", "tell me a joke", full, "not sure"},
		{"air inside another word", "should I repair the chair", full, "not sure"},
		{"hi inside another word", "I had sushi for dinner", full, "not sure"},
		{"sleep before air", "how was the air while I slept", full, "scored 72/100"},
		{"co2 with punctuation", "co2?", full, "640 ppm"},
	}

	r := NewResponder(time.UTC)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, r.Reply(tc.message, tc.ctx), tc.contains)
		})
	}
}
