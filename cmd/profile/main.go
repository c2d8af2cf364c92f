package main

import (
	"context"
	"fmt"
	"time"

	"envmonitor/internal/adapters"
	"envmonitor/internal/config"
	"envmonitor/internal/sleep"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const nights = 30

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

	loc := cfg.Location()
	latest, err := store.Readings.LatestReadingDate(ctx, loc)
	if err != nil {
		log.Fatalw("failed to find latest reading date", "error", err)
	}
	last, err := sleep.ParseDate(latest, loc)
	if err != nil {
		log.Fatalw("bad latest date", "date", latest, "error", err)
	}

	fmt.Println("date\t\tno\tquality\tfetch-aggregate")

	for i := nights - 1; i >= 0; i-- {
		date := last.AddDate(0, 0, -i).Format(sleep.DateLayout)

		window, err := sleep.ComputeNightWindow(date, loc)
		if err != nil {
			log.Fatalw("failed to compute window", "date", date, "error", err)
		}

		startTime := time.Now()
		readings, err := store.Readings.ReadingsInWindow(ctx, window.Start, window.End)
		fetchTime := time.Since(startTime)
		if err != nil {
			log.Fatalw("failed to fetch readings", "date", date, "error", err)
		}

		startTime = time.Now()
		summary, err := sleep.Aggregate(readings, date, loc)
		aggregateTime := time.Since(startTime)
		if errors.Is(err, sleep.ErrNoDataForWindow) {
			fmt.Printf("%s\t0\t-\t%s-%s\n", date, fetchTime, aggregateTime)
			continue
		}
		if err != nil {
			log.Fatalw("failed to aggregate", "date", date, "error", err)
		}

		fmt.Printf("%s\t%d\t%.1f\t%s-%s\n", date, len(readings), summary.QualityScore, fetchTime, aggregateTime)
	}
}
