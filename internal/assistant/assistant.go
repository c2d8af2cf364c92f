// Package assistant answers questions about the room's conditions with keyword rules.
package assistant

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"envmonitor/internal/domain"
	"envmonitor/internal/sleep"
)

const idealTemperature = 22.0

// Context is the data available to answer a message. Any field may be empty.
type Context struct {
	Current   *domain.Reading
	History   []domain.HistoricalPoint
	LastNight *sleep.Summary
}

type rule struct {
	keywords []string
	answer   func(Context) string
}

type Responder struct {
	loc   *time.Location
	rules []rule
}

func NewResponder(loc *time.Location) *Responder {
	if loc == nil {
		loc = time.Local
	}
	r := &Responder{loc: loc}
	r.rules = []rule{
		{[]string{"hello", "hi", "hey", "good morning"}, greeting},
		{[]string{"weather", "how is it", "current", "right now"}, currentConditions},
		{[]string{"best temperature", "ideal temperature"}, r.bestTemperature},
		{[]string{"sleep", "slept", "last night"}, lastNight},
		{[]string{"humidity"}, humidity},
		{[]string{"air", "co2"}, airQuality},
	}
	return r
}

// Reply returns the answer of the first rule with a keyword in msg. Keywords
// match whole words, so "air" does not fire on "chair".
func (r *Responder) Reply(msg string, c Context) string {
	words := splitWords(msg)
	for _, rl := range r.rules {
		for _, kw := range rl.keywords {
			if containsPhrase(words, splitWords(kw)) {
				return rl.answer(c)
			}
		}
	}
	return "I'm not sure how to answer that. Try asking about the current conditions, the best temperature today or how you slept."
}

func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsPhrase reports whether phrase occurs in words as consecutive words.
func containsPhrase(words, phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	for i := 0; i+len(phrase) <= len(words); i++ {
		match := true
		for j, p := range phrase {
			if words[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func greeting(Context) string {
	return "Hi! I'm your room assistant. Ask me about the current conditions, the best temperature today, the air quality or last night's sleep."
}

func currentConditions(c Context) string {
	if c.Current == nil {
		return "I don't have current readings right now."
	}
	return fmt.Sprintf("It's %.1f°C with %.0f%% humidity. CO2 is at %d ppm and there are %.0f lux of light.",
		c.Current.Temperature, c.Current.Humidity, c.Current.CO2Value(), c.Current.LightValue())
}

func (r *Responder) bestTemperature(c Context) string {
	if len(c.History) == 0 {
		return "I don't have historical data to answer that."
	}
	best := c.History[0]
	for _, p := range c.History[1:] {
		if math.Abs(p.Temperature-idealTemperature) < math.Abs(best.Temperature-idealTemperature) {
			best = p
		}
	}
	return fmt.Sprintf("The reading closest to the ideal %.0f°C was %.1f°C at %s.",
		idealTemperature, best.Temperature, best.Timestamp.In(r.loc).Format("15:04"))
}

func humidity(c Context) string {
	if c.Current == nil {
		return "I don't have current readings."
	}
	return fmt.Sprintf("Humidity is currently %.0f%%.", c.Current.Humidity)
}

func airQuality(c Context) string {
	if c.Current == nil {
		return "I don't have current readings."
	}
	return fmt.Sprintf("Air quality is currently %d ppm of CO2.", c.Current.CO2Value())
}

func lastNight(c Context) string {
	if c.LastNight == nil {
		return "I don't have sleep data for last night."
	}
	s := c.LastNight
	poor := 0
	for _, seg := range s.Timeline {
		if seg.Condition == sleep.ConditionPoor {
			poor++
		}
	}
	return fmt.Sprintf("On the night ending %s the room scored %.0f/100 with %d interruptions. Temperature ranged %.1f-%.1f°C and %d hours had poor conditions.",
		s.Date, s.QualityScore, s.InterruptionCount, s.TemperatureStats.Min, s.TemperatureStats.Max, poor)
}
