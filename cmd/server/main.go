// Package main is the entry point for the market calendar service.
// It registers the built-in exchange calendars, keeps their holiday
// caches warm on a cron schedule and serves schedules over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aristath/marketcal/internal/config"
	"github.com/aristath/marketcal/internal/database"
	"github.com/aristath/marketcal/internal/modules/market_hours"
	"github.com/aristath/marketcal/internal/scheduler"
	"github.com/aristath/marketcal/internal/server"
	"github.com/aristath/marketcal/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting market calendar service")

	factory := market_hours.NewCalendarFactory(log)
	if err := factory.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to register calendars")
	}
	service := market_hours.NewService(factory, log)

	if _, err := factory.Get(cfg.DefaultCalendar); err != nil {
		log.Fatal().Err(err).Str("calendar", cfg.DefaultCalendar).Msg("Unknown default calendar")
	}
	if status, err := service.GetMarketStatus(cfg.DefaultCalendar, time.Now()); err == nil {
		log.Info().
			Str("calendar", status.Calendar).
			Bool("open", status.Open).
			Msg("Default calendar status")
	}

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()
	if err := cacheDB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate cache database")
	}
	history := scheduler.NewJobHistory(cacheDB)

	// Cache warm-up runs once at startup, then on the configured schedule
	sched := scheduler.New(log)
	sched.SetHistory(history)
	warmJob := scheduler.NewWarmCacheJob(factory, cfg.HolidayWindowStart, cfg.HolidayWindowEnd, log)
	if err := sched.RunNow(warmJob); err != nil {
		log.Error().Err(err).Msg("Initial cache warm-up failed")
	}
	if err := sched.AddJob(cfg.CacheWarmSchedule, warmJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule cache warm-up")
	}
	if err := sched.AddJob("@hourly", scheduler.NewWALCheckpointJob(cacheDB, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule WAL checkpoint")
	}
	sched.Start()

	srv := server.New(server.Config{
		Log:          log,
		Port:         cfg.Port,
		DevMode:      cfg.DevMode,
		Service:      service,
		WarmCacheJob: warmJob,
		JobHistory:   history,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
