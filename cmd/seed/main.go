package main

import (
	"context"
	"math"
	"math/rand"
	"time"

	"envmonitor/internal/adapters"
	"envmonitor/internal/config"
	"envmonitor/internal/domain"

	"go.uber.org/zap"
)

const (
	daysInPast      = 5
	readingInterval = 5 * time.Minute
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	log := logger.Sugar()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	store, err := adapters.Open(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to open store", "error", err)
	}
	defer store.Close(ctx)

	seeder, err := store.NewSeeder(ctx)
	if err != nil {
		log.Fatalw("failed to prepare store", "error", err)
	}

	loc := cfg.Location()
	now := time.Now().In(loc)
	y, m, d := now.Date()
	startDate := time.Date(y, m, d-daysInPast, 0, 0, 0, 0, loc)

	sessionID, err := seeder.CreateSession(ctx, startDate)
	if err != nil {
		log.Fatalw("failed to create session", "error", err)
	}

	var readings []domain.Reading
	var events []domain.Event
	for ts := startDate; ts.Before(now); ts = ts.Add(readingInterval) {
		r := simulateReading(ts.In(loc))
		readings = append(readings, r)

		switch {
		case r.Motion:
			events = append(events, domain.Event{Timestamp: ts, Kind: domain.EventMovement, Description: "movement detected"})
		case r.Noise:
			events = append(events, domain.Event{Timestamp: ts, Kind: domain.EventNoise, Description: "noise above threshold"})
		case *r.CO2 > 1200:
			events = append(events, domain.Event{Timestamp: ts, Kind: domain.EventThreshold, Description: "CO2 above 1200 ppm"})
		}
	}

	if err := seeder.InsertReadings(ctx, readings); err != nil {
		log.Fatalw("failed to add readings", "error", err)
	}
	if err := seeder.InsertEvents(ctx, events); err != nil {
		log.Fatalw("failed to add events", "error", err)
	}

	for day := 1; day <= daysInPast; day++ {
		date := startDate.AddDate(0, 0, day).Format("2006-01-02")
		_, err := store.Journal.UpsertSleepRating(ctx, domain.SleepRating{
			SessionID:  sessionID,
			Date:       date,
			Rating:     rand.Intn(5) + 1,
			RecordedAt: time.Now(),
		})
		if err != nil {
			log.Fatalw("failed to add sleep rating", "date", date, "error", err)
		}
	}

	moods := []domain.MoodLevel{domain.MoodGood, domain.MoodRegular, domain.MoodBad}
	if _, err := store.Journal.InsertMood(ctx, sessionID, moods[rand.Intn(len(moods))]); err != nil {
		log.Fatalw("failed to add mood", "error", err)
	}

	log.Infof("Seeded session %d with %d readings and %d events over %d days", sessionID, len(readings), len(events), daysInPast)
}

// simulateReading produces a plausible bedroom sample: cooler and darker at
// night, with occasional motion and noise.
func simulateReading(ts time.Time) domain.Reading {
	hour := float64(ts.Hour()) + float64(ts.Minute())/60
	night := ts.Hour() >= 22 || ts.Hour() < 8

	temperature := 21 + 2.5*math.Sin((hour-9)/24*2*math.Pi) + rand.Float64() - 0.5
	humidity := 48 + 6*math.Cos(hour/24*2*math.Pi) + 2*rand.Float64()
	co2 := 450 + rand.Intn(300)
	light := 250 + 150*rand.Float64()
	if night {
		co2 += 400
		light = 5 * rand.Float64()
	}

	motion := rand.Float64() < 0.05
	noise := rand.Float64() < 0.03

	quality := 100.0
	quality -= math.Abs(temperature-20) * 6
	quality -= math.Max(0, math.Abs(humidity-50)-10) * 2
	quality -= math.Max(0, float64(co2-800)) / 20
	if motion || noise {
		quality -= 15
	}
	quality = math.Round(math.Max(0, math.Min(100, quality))*10) / 10

	return domain.Reading{
		Timestamp:   ts,
		Temperature: math.Round(temperature*100) / 100,
		Humidity:    math.Round(humidity*10) / 10,
		CO2:         &co2,
		Light:       &light,
		Motion:      motion,
		Noise:       noise,
		Quality:     &quality,
	}
}
