package scheduler

import (
	"fmt"
	"time"

	"github.com/aristath/marketcal/internal/modules/market_hours"
	"github.com/rs/zerolog"
)

// WarmCacheJob materializes the holiday and special time caches of every
// registered calendar over a rolling window.
type WarmCacheJob struct {
	factory *market_hours.CalendarFactory
	start   time.Time
	end     time.Time
	log     zerolog.Logger
}

// NewWarmCacheJob creates a WarmCacheJob for [start, end]
func NewWarmCacheJob(factory *market_hours.CalendarFactory, start, end time.Time, log zerolog.Logger) *WarmCacheJob {
	return &WarmCacheJob{
		factory: factory,
		start:   start,
		end:     end,
		log:     log.With().Str("job", "warm_calendar_cache").Logger(),
	}
}

// Name returns the job name
func (j *WarmCacheJob) Name() string {
	return "warm_calendar_cache"
}

// Run executes the cache warm-up
func (j *WarmCacheJob) Run() error {
	started := time.Now()
	total := 0
	for _, name := range j.factory.Calendars() {
		cal, err := j.factory.Get(name)
		if err != nil {
			return fmt.Errorf("failed to warm %s: %w", name, err)
		}
		n := cal.WarmCache(j.start, j.end)
		j.log.Debug().Str("calendar", name).Int("dates", n).Msg("Calendar cache warmed")
		total += n
	}

	j.log.Info().
		Int("calendars", len(j.factory.Calendars())).
		Int("dates", total).
		Dur("duration", time.Since(started)).
		Msg("Calendar caches warmed")
	return nil
}
