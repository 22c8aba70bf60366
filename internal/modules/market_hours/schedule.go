package market_hours

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aristath/marketcal/internal/frame"
	"github.com/aristath/marketcal/internal/holidays"
	"github.com/aristath/marketcal/internal/offsets"
)

const (
	interruptionStartPrefix = "interruption_start_"
	interruptionEndPrefix   = "interruption_end_"
)

// Schedule returns one row per trading day in [start, end] with a column per
// requested market time. Values are UTC instants unless opts.Location is set.
func (c *MarketCalendar) Schedule(start, end time.Time, opts ScheduleOptions) (*frame.Frame, error) {
	if dateOf(start).After(dateOf(end)) {
		return nil, ErrInvalidRange
	}
	days, err := c.ValidDays(start, end, nil)
	if err != nil {
		return nil, err
	}
	return c.ScheduleFromDays(days, opts)
}

// ScheduleFromDays builds the schedule for pre-selected trading days.
func (c *MarketCalendar) ScheduleFromDays(days []time.Time, opts ScheduleOptions) (*frame.Frame, error) {
	normalized := make([]time.Time, len(days))
	for i, d := range days {
		normalized[i] = dateOf(d)
	}
	idx := frame.NewIndex(normalized)

	types, err := c.scheduleTypes(opts)
	if err != nil {
		return nil, err
	}
	cols := make(map[MarketTimeType][]time.Time, len(types))
	for _, typ := range types {
		col, err := c.DaysAtMarketTime(idx, typ)
		if err != nil {
			return nil, err
		}
		cols[typ] = col
	}

	if opts.ForceSpecialTimes != IgnoreSpecialTimes && len(idx) > 0 {
		force := opts.ForceSpecialTimes == ForceSpecialTimes
		c.overlaySpecialTimes(MarketOpen, idx, types, cols, force)
		c.overlaySpecialTimes(MarketClose, idx, types, cols, force)
	}

	f := frame.New(idx)
	for _, typ := range types {
		if err := f.Assign(typ.String(), cols[typ]); err != nil {
			return nil, err
		}
	}
	if opts.Interruptions && len(c.opts.Interruptions) > 0 {
		ir := c.InterruptionsFrame().Loc(idx)
		for _, name := range ir.Columns() {
			v, _ := ir.Column(name)
			if err := f.Assign(name, v); err != nil {
				return nil, err
			}
		}
	}
	if opts.Location != nil {
		f = f.ConvertTZ(opts.Location)
	}
	return f, nil
}

func (c *MarketCalendar) scheduleTypes(opts ScheduleOptions) ([]MarketTimeType, error) {
	switch {
	case len(opts.MarketTimes) > 0:
		return append([]MarketTimeType(nil), opts.MarketTimes...), nil
	case opts.AllMarketTimes:
		return c.MarketTimes(), nil
	}

	start, end := MarketOpen, MarketClose
	if opts.Start != nil {
		start = *opts.Start
	}
	if opts.End != nil {
		end = *opts.End
	}
	return c.MarketTimesBetween(start, end)
}

// overlaySpecialTimes writes the special times of typ into its column. With
// force, the other columns of an affected row are clamped so that nothing
// happens before a special open or after a special close.
func (c *MarketCalendar) overlaySpecialTimes(typ MarketTimeType, idx frame.Index, types []MarketTimeType, cols map[MarketTimeType][]time.Time, force bool) {
	col, ok := cols[typ]
	if !ok {
		return
	}
	dates, values := c.specialDates(typ, idx[0], idx[len(idx)-1])
	if len(dates) == 0 {
		return
	}
	special := make(map[int64]time.Time, len(dates))
	for i, d := range dates {
		special[offsets.DayNumber(d)] = values[i]
	}
	opens := c.openClose[typ]
	for i, d := range idx {
		t, ok := special[offsets.DayNumber(d)]
		if !ok {
			continue
		}
		col[i] = t
		if !force {
			continue
		}
		for _, other := range types {
			if other == typ {
				continue
			}
			v := cols[other]
			switch {
			case v[i].IsZero():
			case opens && v[i].Before(t):
				v[i] = t
			case !opens && v[i].After(t):
				v[i] = t
			}
		}
	}
}

// SpecialDates returns the days in [start, end] on which a special time
// replaces typ, with the special instant in a column named after typ. With
// filterHolidays only trading days are kept.
func (c *MarketCalendar) SpecialDates(typ MarketTimeType, start, end time.Time, filterHolidays bool) (*frame.Frame, error) {
	if dateOf(start).After(dateOf(end)) {
		return nil, ErrInvalidRange
	}
	dates, values := c.specialDates(typ, start, end)
	if filterHolidays {
		valid, err := c.ValidDays(start, end, nil)
		if err != nil {
			return nil, err
		}
		kd, kv := dates[:0], values[:0]
		for i, d := range dates {
			if valid.Contains(d) {
				kd = append(kd, d)
				kv = append(kv, values[i])
			}
		}
		dates, values = kd, kv
	}
	f := frame.New(frame.Index(dates))
	if err := f.Assign(typ.String(), values); err != nil {
		return nil, err
	}
	return f, nil
}

// specialDates resolves rule based special times first and ad hoc ones
// second, so an ad hoc entry replaces a rule based one on the same day.
func (c *MarketCalendar) specialDates(typ MarketTimeType, start, end time.Time) ([]time.Time, []time.Time) {
	var (
		rules []SpecialTime
		adhoc []SpecialTimeAdhoc
	)
	switch typ {
	case MarketOpen:
		rules, adhoc = c.opts.SpecialOpens, c.opts.SpecialOpensAdhoc
	case MarketClose:
		rules, adhoc = c.opts.SpecialCloses, c.opts.SpecialClosesAdhoc
	default:
		return nil, nil
	}

	s, e := dateOf(start), dateOf(end)
	byDay := make(map[int64]time.Time)
	for _, st := range rules {
		if st.Calendar == nil {
			continue
		}
		for _, d := range specialCalendarDates(st.Calendar, s, e) {
			byDay[offsets.DayNumber(d)] = c.atWallClock(d, st.Time, st.DayOffset)
		}
	}
	for _, st := range adhoc {
		for _, d := range st.Dates {
			d = dateOf(d)
			if d.Before(s) || d.After(e) {
				continue
			}
			byDay[offsets.DayNumber(d)] = c.atWallClock(d, st.Time, st.DayOffset)
		}
	}

	keys := make([]int64, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	dates := make([]time.Time, len(keys))
	values := make([]time.Time, len(keys))
	for i, k := range keys {
		y, m, d := offsets.FromDayNumber(k)
		dates[i] = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		values[i] = byDay[k]
	}
	return dates, values
}

// specialCalendarDates uses the pinned rule dates directly when every rule
// of cal covers a single day.
func specialCalendarDates(cal *holidays.Calendar, s, e time.Time) []time.Time {
	single, ok := cal.SingleDates()
	if !ok {
		return cal.Holidays(s, e)
	}
	var out []time.Time
	for _, d := range single {
		d = dateOf(d)
		if !d.Before(s) && !d.After(e) {
			out = append(out, d)
		}
	}
	return out
}

// ColName labels the n-th interruption column, counting from 1: odd n is a
// start and even n an end.
func ColName(n int) string {
	if n%2 == 1 {
		return fmt.Sprintf("%s%d", interruptionStartPrefix, n/2+1)
	}
	return fmt.Sprintf("%s%d", interruptionEndPrefix, n/2)
}

// InterruptionsFrame returns the interruptions indexed by date with paired
// start and end columns. A day with fewer halts than the busiest day has
// zero values in the trailing columns.
func (c *MarketCalendar) InterruptionsFrame() *frame.Frame {
	byDay := make(map[int64][]Interruption)
	var dates []time.Time
	widest := 0
	for _, ir := range c.opts.Interruptions {
		d := dateOf(ir.Date)
		k := offsets.DayNumber(d)
		if _, seen := byDay[k]; !seen {
			dates = append(dates, d)
		}
		byDay[k] = append(byDay[k], ir)
		if n := len(byDay[k]); n > widest {
			widest = n
		}
	}
	idx := frame.NewIndex(dates)
	f := frame.New(idx)
	for n := 1; n <= 2*widest; n++ {
		values := make([]time.Time, len(idx))
		for i, d := range idx {
			irs := byDay[offsets.DayNumber(d)]
			k := (n - 1) / 2
			if k >= len(irs) {
				continue
			}
			mt := irs[k].Start
			if n%2 == 0 {
				mt = irs[k].End
			}
			if mt.Time != nil {
				values[i] = c.atWallClock(d, *mt.Time, mt.DayOffset)
			}
		}
		_ = f.Assign(ColName(n), values)
	}
	return f
}

// columnOpens classifies a schedule column as opening or closing trading.
func (c *MarketCalendar) columnOpens(name string) bool {
	switch {
	case strings.HasPrefix(name, interruptionStartPrefix):
		return false
	case strings.HasPrefix(name, interruptionEndPrefix):
		return true
	}
	typ, err := ParseMarketTimeType(name)
	if err != nil {
		return false
	}
	return c.openClose[typ]
}

// OpenAtTime reports whether the market is trading at t according to
// schedule. The session is the last row whose MarketOpen is at or before t;
// its columns are replayed in time order. With includeClose a timestamp equal
// to a closing time still counts as open.
func (c *MarketCalendar) OpenAtTime(schedule *frame.Frame, t time.Time, includeClose bool) (bool, error) {
	opens, ok := schedule.Column(MarketOpen.String())
	if !ok {
		return false, fmt.Errorf("%w: %s", frame.ErrColumnNotFound, MarketOpen)
	}
	closes, ok := schedule.Column(MarketClose.String())
	if !ok {
		return false, fmt.Errorf("%w: %s", frame.ErrColumnNotFound, MarketClose)
	}
	n := schedule.Len()
	if n == 0 || t.Before(opens[0]) || t.After(closes[n-1]) {
		return false, ErrNotCovered
	}

	row := -1
	for i, o := range opens {
		if !o.IsZero() && !o.After(t) {
			row = i
		}
	}
	if row < 0 {
		return false, nil
	}

	type event struct {
		at    time.Time
		opens bool
	}
	var events []event
	for name, v := range schedule.Row(row) {
		if v.IsZero() {
			continue
		}
		events = append(events, event{at: v, opens: c.columnOpens(name)})
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].at.Equal(events[j].at) {
			return !events[i].opens && events[j].opens
		}
		return events[i].at.Before(events[j].at)
	})

	open := false
	for _, ev := range events {
		if ev.at.Before(t) || (!includeClose && ev.at.Equal(t)) {
			open = ev.opens
		}
	}
	return open, nil
}

// HTFOptions configures DateRangeHTF. A nil Frequency steps one trading day.
// Closed "left" rolls each step forward onto a trading day; any other value
// rolls it back.
type HTFOptions struct {
	Frequency offsets.Offset
	Start     time.Time
	End       time.Time
	Periods   int
	Closed    string
}

// DateRangeHTF generates a higher timeframe range whose labels are trading
// days.
func (c *MarketCalendar) DateRangeHTF(opts HTFOptions) (frame.Index, error) {
	if c.htfGuard != nil {
		if err := c.htfGuard(opts.Start); err != nil {
			return nil, err
		}
	}
	s := dateOf(opts.Start)
	var e time.Time
	if !opts.End.IsZero() {
		e = dateOf(opts.End)
	}

	if opts.Frequency == nil {
		days, err := offsets.DateRange(offsets.DateRangeOptions{Start: s, End: e, Periods: opts.Periods, Offset: c.businessDay})
		if err != nil {
			return nil, err
		}
		return frame.NewIndex(days), nil
	}

	rangeOpts := offsets.DateRangeOptions{Start: s, End: e, Offset: opts.Frequency}
	if e.IsZero() {
		rangeOpts.Periods = opts.Periods
	}
	steps, err := offsets.DateRange(rangeOpts)
	if err != nil {
		return nil, err
	}
	var out []time.Time
	for _, t := range steps {
		d := dateOf(t)
		var rolled time.Time
		if opts.Closed == "left" {
			rolled, err = c.businessDay.Rollforward(d)
		} else {
			rolled, err = c.businessDay.Rollback(d)
		}
		if err != nil {
			return nil, err
		}
		if rolled.Before(s) || (!e.IsZero() && rolled.After(e)) {
			continue
		}
		out = append(out, rolled)
	}
	idx := frame.NewIndex(out)
	if opts.Periods > 0 && len(idx) > opts.Periods {
		idx = idx[:opts.Periods]
	}
	return idx, nil
}
