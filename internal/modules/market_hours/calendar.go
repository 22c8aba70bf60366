// Package market_hours builds trading schedules for exchange calendars and
// answers open/closed queries against them.
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

// ErrEmptyCalendarName is returned by New for an unnamed calendar.
var ErrEmptyCalendarName = errors.New("market calendar name must not be empty")

// MarketCalendar combines regular session times, holidays and special times
// of one exchange. Regular times change only through AddTime, ChangeTime and
// RemoveTime.
type MarketCalendar struct {
	opts         Options
	loc          *time.Location
	regular      map[MarketTimeType][]MarketTime
	openClose    map[MarketTimeType]bool
	customized   map[MarketTimeType]bool
	discontinued map[MarketTimeType]bool
	marketTimes  []MarketTimeType
	businessDay  offsets.CustomBusinessDay
	log          zerolog.Logger

	// Exchange specific behaviour, set by the calendar constructors.
	validDaysFn func(c *MarketCalendar, start, end time.Time) (frame.Index, error)
	adjustFn    func(c *MarketCalendar, typ MarketTimeType, days frame.Index, out []time.Time)
	htfGuard    func(start time.Time) error
}

// New builds a calendar. openTime and closeTime, when given, replace the
// regular MarketOpen and MarketClose regimes.
func New(opts Options, openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	if opts.Name == "" {
		return nil, ErrEmptyCalendarName
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	var err error
	if opts.SpecialOpens, err = compileSpecialTimes(opts.SpecialOpens); err != nil {
		return nil, err
	}
	if opts.SpecialCloses, err = compileSpecialTimes(opts.SpecialCloses); err != nil {
		return nil, err
	}

	c := &MarketCalendar{
		opts:         opts,
		loc:          loc,
		regular:      make(map[MarketTimeType][]MarketTime, len(opts.RegularMarketTimes)),
		openClose:    DefaultOpenCloseMap(),
		customized:   make(map[MarketTimeType]bool),
		discontinued: make(map[MarketTimeType]bool),
		log:          log.With().Str("component", "market_calendar").Str("calendar", opts.Name).Logger(),
	}
	for typ, times := range opts.RegularMarketTimes {
		c.regular[typ] = append([]MarketTime(nil), times...)
	}
	for typ, opens := range opts.OpenCloseMap {
		c.openClose[typ] = opens
	}

	if openTime != nil {
		if err := c.ChangeTime(MarketOpen, []MarketTime{*openTime}, OpenCloseDefault); err != nil {
			return nil, err
		}
	}
	if closeTime != nil {
		if err := c.ChangeTime(MarketClose, []MarketTime{*closeTime}, OpenCloseDefault); err != nil {
			return nil, err
		}
	}
	c.prepare()

	cbd := offsets.CustomBusinessDayOptions{Weekmask: opts.Weekmask, Holidays: opts.AdhocHolidays}
	if opts.RegularHolidays != nil {
		cbd.Calendar = opts.RegularHolidays
	}
	c.businessDay = offsets.CustomBusinessDays(1, cbd)
	return c, nil
}

// prepare sorts every regime list by cutoff date, records discontinued types
// and orders the active types by their current time of day.
func (c *MarketCalendar) prepare() {
	c.discontinued = make(map[MarketTimeType]bool)
	active := make([]MarketTimeType, 0, len(c.regular))
	for typ, times := range c.regular {
		if len(times) == 0 {
			continue
		}
		sort.SliceStable(times, func(i, j int) bool { return times[i].Date.Before(times[j].Date) })
		if times[len(times)-1].Time == nil {
			c.discontinued[typ] = true
			c.log.Warn().
				Str("market_time", typ.String()).
				Time("since", times[len(times)-1].Date).
				Msg("Market time is discontinued")
			continue
		}
		active = append(active, typ)
	}
	sort.Slice(active, func(i, j int) bool {
		di := c.regular[active[i]][len(c.regular[active[i]])-1].delta()
		dj := c.regular[active[j]][len(c.regular[active[j]])-1].delta()
		if di != dj {
			return di < dj
		}
		return active[i] < active[j]
	})
	c.marketTimes = active
}

func (c *MarketCalendar) setTime(typ MarketTimeType, times []MarketTime, oc OpenClose) {
	c.regular[typ] = append([]MarketTime(nil), times...)
	switch oc {
	case Opens:
		c.openClose[typ] = true
	case Closes:
		c.openClose[typ] = false
	default:
		if opens, ok := DefaultOpenCloseMap()[typ]; ok {
			c.openClose[typ] = opens
		} else {
			delete(c.openClose, typ)
		}
	}
	c.customized[typ] = true
	c.prepare()
}

// AddTime adds a new market time type.
func (c *MarketCalendar) AddTime(typ MarketTimeType, times []MarketTime, oc OpenClose) error {
	if _, ok := c.regular[typ]; ok {
		return fmt.Errorf("%s %w", typ, ErrAlreadyInRegularTimes)
	}
	c.setTime(typ, times, oc)
	return nil
}

// ChangeTime replaces the regimes of an existing market time type.
func (c *MarketCalendar) ChangeTime(typ MarketTimeType, times []MarketTime, oc OpenClose) error {
	if _, ok := c.regular[typ]; !ok {
		return fmt.Errorf("%s %w", typ, ErrNotInRegularTimes)
	}
	c.setTime(typ, times, oc)
	return nil
}

// RemoveTime drops a market time type.
func (c *MarketCalendar) RemoveTime(typ MarketTimeType) {
	delete(c.regular, typ)
	delete(c.customized, typ)
	c.prepare()
}

// IsCustom reports whether typ was set through a mutator or constructor override.
func (c *MarketCalendar) IsCustom(typ MarketTimeType) bool { return c.customized[typ] }

// IsDiscontinued reports whether the latest regime of typ ends the type.
func (c *MarketCalendar) IsDiscontinued(typ MarketTimeType) bool { return c.discontinued[typ] }

// HasDiscontinued reports whether any market time type is discontinued.
func (c *MarketCalendar) HasDiscontinued() bool { return len(c.discontinued) > 0 }

func (c *MarketCalendar) missingTime(typ MarketTimeType) error {
	switch typ {
	case BreakStart, BreakEnd:
		return nil
	case MarketOpen, MarketClose:
		return ErrMarketTimesNotSet
	default:
		return fmt.Errorf("market time %s %w", typ, ErrNotInRegularTimes)
	}
}

// GetTimes returns every regime of typ ordered by cutoff date. Missing break
// types yield nil without error.
func (c *MarketCalendar) GetTimes(typ MarketTimeType) ([]MarketTime, error) {
	times, ok := c.regular[typ]
	if !ok {
		return nil, c.missingTime(typ)
	}
	return append([]MarketTime(nil), times...), nil
}

// GetTime returns the time of day of the most recent regime of typ. It is
// nil for a discontinued type or a missing break type.
func (c *MarketCalendar) GetTime(typ MarketTimeType) (*offsets.TimeOfDay, error) {
	times, ok := c.regular[typ]
	if !ok || len(times) == 0 {
		return nil, c.missingTime(typ)
	}
	return times[len(times)-1].Time, nil
}

// GetTimeOn returns the time of day of typ in effect on day.
func (c *MarketCalendar) GetTimeOn(typ MarketTimeType, day time.Time) (*offsets.TimeOfDay, error) {
	times, ok := c.regular[typ]
	if !ok {
		return nil, c.missingTime(typ)
	}
	r, ok := regimeOn(times, day)
	if !ok {
		return nil, nil
	}
	return r.Time, nil
}

// GetOffset returns the day offset of the most recent regime of typ.
func (c *MarketCalendar) GetOffset(typ MarketTimeType) (int, error) {
	times, ok := c.regular[typ]
	if !ok || len(times) == 0 {
		return 0, c.missingTime(typ)
	}
	return times[len(times)-1].DayOffset, nil
}

// regimeOn picks the regime with the latest cutoff on or before day.
func regimeOn(times []MarketTime, day time.Time) (MarketTime, bool) {
	n := offsets.DayNumber(day)
	var found MarketTime
	ok := false
	for _, t := range times {
		if t.Date.IsZero() || offsets.DayNumber(t.Date) <= n {
			found, ok = t, true
		}
	}
	return found, ok
}

// Name returns the calendar name.
func (c *MarketCalendar) Name() string { return c.opts.Name }

// Aliases returns the registry names of the calendar.
func (c *MarketCalendar) Aliases() []string { return append([]string(nil), c.opts.Aliases...) }

// Location returns the exchange time zone.
func (c *MarketCalendar) Location() *time.Location { return c.loc }

// Weekmask returns the potentially valid trading weekdays.
func (c *MarketCalendar) Weekmask() offsets.Weekmask { return c.businessDay.Weekmask() }

// RegularHolidays returns the rule based holiday calendar, or nil.
func (c *MarketCalendar) RegularHolidays() *holidays.Calendar { return c.opts.RegularHolidays }

// AdhocHolidays returns the one-off closures.
func (c *MarketCalendar) AdhocHolidays() []time.Time {
	return append([]time.Time(nil), c.opts.AdhocHolidays...)
}

// BusinessDay returns the one-day business day step of the calendar.
func (c *MarketCalendar) BusinessDay() offsets.CustomBusinessDay { return c.businessDay }

// MarketTimes returns the active market time types ordered by time of day.
func (c *MarketCalendar) MarketTimes() []MarketTimeType {
	return append([]MarketTimeType(nil), c.marketTimes...)
}

// MarketTimesBetween returns the active types from start through end.
func (c *MarketCalendar) MarketTimesBetween(start, end MarketTimeType) ([]MarketTimeType, error) {
	lo, hi := -1, -1
	for i, typ := range c.marketTimes {
		if typ == start {
			lo = i
		}
		if typ == end {
			hi = i
		}
	}
	if lo < 0 || hi < 0 || lo > hi {
		return nil, ErrMarketTimesNotSet
	}
	return append([]MarketTimeType(nil), c.marketTimes[lo:hi+1]...), nil
}

// Opens reports whether typ opens trading.
func (c *MarketCalendar) Opens(typ MarketTimeType) bool { return c.openClose[typ] }

// Interruptions returns the configured trading halts.
func (c *MarketCalendar) Interruptions() []Interruption {
	return append([]Interruption(nil), c.opts.Interruptions...)
}

// dateOf returns t's calendar date at midnight UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidDays returns the trading days in [start, end]. A non-nil loc labels
// the days with midnight in that zone.
func (c *MarketCalendar) ValidDays(start, end time.Time, loc *time.Location) (frame.Index, error) {
	var (
		days frame.Index
		err  error
	)
	if c.validDaysFn != nil {
		days, err = c.validDaysFn(c, start, end)
	} else {
		days, err = businessDays(c.businessDay, start, end)
	}
	if err != nil || loc == nil {
		return days, err
	}
	out := make([]time.Time, len(days))
	for i, d := range days {
		y, m, dd := d.Date()
		out[i] = time.Date(y, m, dd, 0, 0, 0, 0, loc)
	}
	return frame.NewIndex(out), nil
}

func businessDays(bd offsets.CustomBusinessDay, start, end time.Time) (frame.Index, error) {
	s, e := dateOf(start), dateOf(end)
	if s.After(e) {
		return frame.Index{}, nil
	}
	days, err := offsets.DateRange(offsets.DateRangeOptions{Start: s, End: e, Offset: bd})
	if err != nil {
		return nil, err
	}
	return frame.NewIndex(days), nil
}

// IsValidDay reports whether day's calendar date is a trading day.
func (c *MarketCalendar) IsValidDay(day time.Time) bool {
	days, err := c.ValidDays(day, day, nil)
	return err == nil && len(days) == 1
}

// DaysAtTime places tod on every day in the calendar location, shifted by
// dayOffset calendar days. Each result follows the UTC offset in force on
// its own date.
func (c *MarketCalendar) DaysAtTime(days []time.Time, tod offsets.TimeOfDay, dayOffset int) []time.Time {
	out := make([]time.Time, len(days))
	for i, d := range days {
		out[i] = c.atWallClock(d, tod, dayOffset)
	}
	return out
}

func (c *MarketCalendar) atWallClock(day time.Time, tod offsets.TimeOfDay, dayOffset int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+dayOffset, tod.Hour, tod.Minute, tod.Second, 0, c.loc).UTC()
}

// DaysAtMarketTime materializes typ on every day using the regime in force
// on that day. Days before the first regime or after a discontinuation hold
// zero values.
func (c *MarketCalendar) DaysAtMarketTime(days frame.Index, typ MarketTimeType) ([]time.Time, error) {
	out := make([]time.Time, len(days))
	times, ok := c.regular[typ]
	if !ok {
		if err := c.missingTime(typ); err != nil {
			return nil, err
		}
		return out, nil
	}
	for i, d := range days {
		r, ok := regimeOn(times, d)
		if !ok || r.Time == nil {
			continue
		}
		out[i] = c.atWallClock(d, *r.Time, r.DayOffset)
	}
	if c.adjustFn != nil {
		c.adjustFn(c, typ, days, out)
	}
	return out, nil
}

// HolidayDates returns the regular and ad hoc closures in [start, end].
func (c *MarketCalendar) HolidayDates(start, end time.Time) frame.Index {
	s, e := dateOf(start), dateOf(end)
	var out []time.Time
	if c.opts.RegularHolidays != nil {
		out = append(out, c.opts.RegularHolidays.Holidays(s, e)...)
	}
	for _, d := range c.opts.AdhocHolidays {
		d = dateOf(d)
		if !d.Before(s) && !d.After(e) {
			out = append(out, d)
		}
	}
	return frame.NewIndex(out)
}

// WarmCache materializes the holiday and special time calendars over
// [start, end].
func (c *MarketCalendar) WarmCache(start, end time.Time) int {
	s, e := dateOf(start), dateOf(end)
	n := 0
	if c.opts.RegularHolidays != nil {
		n += len(c.opts.RegularHolidays.Holidays(s, e))
	}
	for _, set := range [][]SpecialTime{c.opts.SpecialOpens, c.opts.SpecialCloses} {
		for _, st := range set {
			if st.Calendar != nil {
				n += len(st.Calendar.Holidays(s, e))
			}
		}
	}
	return n
}

// SessionBounds returns the open and close of the session labelled day.
func (c *MarketCalendar) SessionBounds(day time.Time) (time.Time, time.Time, bool) {
	d := dateOf(day)
	if !c.IsValidDay(d) {
		return time.Time{}, time.Time{}, false
	}
	f, err := c.ScheduleFromDays([]time.Time{d}, ScheduleOptions{MarketTimes: []MarketTimeType{MarketOpen, MarketClose}})
	if err != nil || f.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	row := f.Row(0)
	opens, closes := row[MarketOpen.String()], row[MarketClose.String()]
	if opens.IsZero() || closes.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return opens.In(c.loc), closes.In(c.loc), true
}
