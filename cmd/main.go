package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"envmonitor/internal/adapters"
	"envmonitor/internal/api"
	"envmonitor/internal/config"
	"envmonitor/internal/live"

	"go.uber.org/zap"
)

func newLogger(level string) *zap.SugaredLogger {
	var logger *zap.Logger
	if level == "debug" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	return logger.Sugar()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		zap.NewExample().Sugar().Fatalw("failed to load config", "error", err)
	}

	log := newLogger(cfg.LogLevel)
	defer log.Sync()

	store, err := adapters.Open(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer store.Close(context.Background())

	hub := live.NewHub(log)
	poller := &live.Poller{
		Interval: cfg.PollInterval,
		Fetch: func(ctx context.Context) (any, error) {
			reading, err := store.Readings.LatestReading(ctx)
			if err != nil || reading == nil {
				return nil, err
			}
			return api.NewCurrentReading(*reading), nil
		},
		Publish: hub.Broadcast,
		Log:     log,
	}
	go poller.Run(ctx)

	mainAPI := api.NewAPI(log, store.Readings, store.Journal, store.Events, api.Options{
		Location:          cfg.Location(),
		ChatRatePerMinute: cfg.ChatRatePerMinute,
		CORSOrigins:       cfg.CORSOrigins,
		Live:              hub,
	})

	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: mainAPI.Routes(),
	}

	// Listen for syscall signals for process to interrupt/quit
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		// Shutdown signal with grace period of 30 seconds
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit")
			}
		}()

		hub.Close()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatal(err)
		}
		cancel()
	}()

	log.Infow("starting server", "addr", cfg.ServerPort, "store", cfg.StoreDriver, "timezone", cfg.Timezone)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	// Wait for server context to be stopped
	<-ctx.Done()
}
