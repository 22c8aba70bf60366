package market_hours

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aristath/marketcal/internal/frame"
	"github.com/aristath/marketcal/internal/holidays"
	"github.com/aristath/marketcal/internal/offsets"
	"github.com/rs/zerolog"
)

// lookaround bounds the schedule built around a query time. It covers
// overnight sessions and long holiday weekends.
const lookaround = 10 * 24 * time.Hour

// MarketHoursService answers open/closed queries for registered calendars
type MarketHoursService struct {
	factory     *CalendarFactory
	frequencies *offsets.Registry
	holidayCals *holidays.Registry
	log         zerolog.Logger
}

// NewService creates a new market hours service with the built-in frequency
// codes and holiday calendars registered.
func NewService(factory *CalendarFactory, log zerolog.Logger) *MarketHoursService {
	frequencies := offsets.NewRegistry()
	frequencies.Init()
	holidayCalendars := holidays.NewRegistry(log)
	holidayCalendars.Init()

	return &MarketHoursService{
		factory:     factory,
		frequencies: frequencies,
		holidayCals: holidayCalendars,
		log:         log.With().Str("service", "market_hours").Logger(),
	}
}

// Factory returns the calendar factory backing the service.
func (s *MarketHoursService) Factory() *CalendarFactory { return s.factory }

// Frequencies returns the registry resolving frequency strings such as "3B".
func (s *MarketHoursService) Frequencies() *offsets.Registry { return s.frequencies }

// HolidayCalendars returns the registry of standalone holiday calendars.
func (s *MarketHoursService) HolidayCalendars() *holidays.Registry { return s.holidayCals }

// DateRange resolves freq and generates the trading-day labelled range of
// the named calendar. An empty freq steps one trading day.
func (s *MarketHoursService) DateRange(name, freq string, opts HTFOptions) (frame.Index, error) {
	cal, err := s.factory.Get(name)
	if err != nil {
		return nil, err
	}
	if freq != "" {
		offset, err := s.frequencies.Parse(freq)
		if err != nil {
			return nil, err
		}
		opts.Frequency = offset
	}
	return cal.DateRangeHTF(opts)
}

func (s *MarketHoursService) scheduleAround(cal *MarketCalendar, t time.Time) (*frame.Frame, error) {
	return cal.Schedule(t.Add(-lookaround), t.Add(lookaround), ScheduleOptions{})
}

// IsMarketOpen checks if a market is trading at t. Unknown calendars are
// reported as closed.
func (s *MarketHoursService) IsMarketOpen(name string, t time.Time) bool {
	cal, err := s.factory.Get(name)
	if err != nil {
		return false
	}
	open, err := s.isOpen(cal, t)
	if err != nil {
		s.log.Debug().Err(err).Str("calendar", name).Msg("Open check failed")
		return false
	}
	return open
}

func (s *MarketHoursService) isOpen(cal *MarketCalendar, t time.Time) (bool, error) {
	sched, err := s.scheduleAround(cal, t)
	if err != nil {
		return false, err
	}
	open, err := cal.OpenAtTime(sched, t, false)
	if errors.Is(err, ErrNotCovered) {
		return false, nil
	}
	return open, err
}

// GetOpenMarkets returns the canonical names of calendars trading at t
func (s *MarketHoursService) GetOpenMarkets(t time.Time) []string {
	open := make([]string, 0)
	for _, name := range s.factory.Calendars() {
		if s.IsMarketOpen(name, t) {
			open = append(open, name)
		}
	}
	sort.Strings(open)
	return open
}

// GetMarketStatus returns detailed status for a calendar
func (s *MarketHoursService) GetMarketStatus(name string, t time.Time) (*MarketStatus, error) {
	cal, err := s.factory.Get(name)
	if err != nil {
		return nil, err
	}
	sched, err := s.scheduleAround(cal, t)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule for %s: %w", name, err)
	}
	isOpen, err := cal.OpenAtTime(sched, t, false)
	if err != nil && !errors.Is(err, ErrNotCovered) {
		return nil, err
	}

	local := t.In(cal.Location())
	status := &MarketStatus{
		Calendar: cal.Name(),
		Open:     isOpen,
		Timezone: cal.Location().String(),
	}

	opens, _ := sched.Column(MarketOpen.String())
	closes, _ := sched.Column(MarketClose.String())
	if isOpen {
		for i := len(opens) - 1; i >= 0; i-- {
			if !opens[i].IsZero() && !opens[i].After(t) {
				status.ClosesAt = closes[i].In(cal.Location()).Format("15:04")
				break
			}
		}
		return status, nil
	}

	if next := nextSessionOpen(opens, closes, t); !next.IsZero() {
		next = next.In(cal.Location())
		status.OpensAt = next.Format("15:04")
		if next.YearDay() != local.YearDay() || next.Year() != local.Year() {
			status.OpensDate = next.Format("2006-01-02")
		}
	}
	return status, nil
}

// nextSessionOpen finds the first session open after t. Break ends are not
// considered.
func nextSessionOpen(opens, closes []time.Time, t time.Time) time.Time {
	for i, o := range opens {
		if o.After(t) && !closes[i].IsZero() {
			return o
		}
	}
	return time.Time{}
}
