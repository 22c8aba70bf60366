package holidays

import (
	"sort"
	"sync"
	"time"

	"github.com/aristath/marketcal/internal/offsets"
)

var (
	// DefaultWindowStart is the first day of the default holiday window.
	DefaultWindowStart = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	// DefaultWindowEnd is the last day of the default holiday window.
	DefaultWindowEnd = time.Date(2200, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// Calendar is a named set of holiday rules. Materialized dates are cached
// per instance; a request outside the cached window recomputes and replaces
// the cache.
type Calendar struct {
	name        string
	windowStart time.Time
	windowEnd   time.Time

	mu       sync.Mutex
	holidays []*Holiday
	cache    *holidayCache
}

type holidayCache struct {
	start, end int64
	dates      []NamedDate
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithWindow sets the range used when Holidays is called with zero bounds.
func WithWindow(start, end time.Time) Option {
	return func(c *Calendar) {
		c.windowStart = start
		c.windowEnd = end
	}
}

// NewCalendar builds a calendar from rules.
func NewCalendar(name string, rules []Rule, opts ...Option) (*Calendar, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(rules) == 0 {
		return nil, ErrNoRules
	}
	hs, err := compile(rules)
	if err != nil {
		return nil, err
	}
	c := &Calendar{
		name:        name,
		windowStart: DefaultWindowStart,
		windowEnd:   DefaultWindowEnd,
		holidays:    hs,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func compile(rules []Rule) ([]*Holiday, error) {
	hs := make([]*Holiday, 0, len(rules))
	for _, r := range rules {
		h, err := NewHoliday(r)
		if err != nil {
			return nil, err
		}
		hs = append(hs, h)
	}
	return hs, nil
}

// Name returns the calendar name.
func (c *Calendar) Name() string { return c.name }

// Window returns the default query range.
func (c *Calendar) Window() (time.Time, time.Time) { return c.windowStart, c.windowEnd }

// Rules returns a copy of the calendar's rules.
func (c *Calendar) Rules() []Rule {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Rule, len(c.holidays))
	for i, h := range c.holidays {
		out[i] = h.rule
	}
	return out
}

// RuleFromName returns the first rule with the given name.
func (c *Calendar) RuleFromName(name string) (Rule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range c.holidays {
		if h.rule.Name == name {
			return h.rule, true
		}
	}
	return Rule{}, false
}

// HolidaysWithNames returns the named holiday dates in [start, end], sorted,
// at midnight in start's location. Zero bounds fall back to the window.
func (c *Calendar) HolidaysWithNames(start, end time.Time) []NamedDate {
	if start.IsZero() {
		start = c.windowStart
	}
	if end.IsZero() {
		end = c.windowEnd
	}
	loc := start.Location()
	lo, hi := offsets.DayNumber(start), offsets.DayNumber(end)
	if lo > hi {
		return nil
	}

	c.mu.Lock()
	if c.cache == nil || lo < c.cache.start || hi > c.cache.end {
		c.cache = c.materialize(lo, hi)
	}
	cached := c.cache.dates
	c.mu.Unlock()

	first := sort.Search(len(cached), func(i int) bool { return offsets.DayNumber(cached[i].Date) >= lo })
	var out []NamedDate
	for _, nd := range cached[first:] {
		if offsets.DayNumber(nd.Date) > hi {
			break
		}
		d := nd.Date
		out = append(out, NamedDate{Date: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc), Name: nd.Name})
	}
	return out
}

func (c *Calendar) materialize(lo, hi int64) *holidayCache {
	y, m, d := offsets.FromDayNumber(lo)
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = offsets.FromDayNumber(hi)
	end := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var dates []NamedDate
	for _, h := range c.holidays {
		dates = append(dates, h.DatesWithName(start, end)...)
	}
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].Date.Before(dates[j].Date) })
	return &holidayCache{start: lo, end: hi, dates: dates}
}

// Holidays returns the distinct holiday dates in [start, end].
func (c *Calendar) Holidays(start, end time.Time) []time.Time {
	named := c.HolidaysWithNames(start, end)
	out := make([]time.Time, 0, len(named))
	for _, nd := range named {
		if n := len(out); n > 0 && out[n-1].Equal(nd.Date) {
			continue
		}
		out = append(out, nd.Date)
	}
	return out
}

// SingleDates returns the rule dates directly when every rule is pinned to
// a single day (StartDate equal to EndDate).
func (c *Calendar) SingleDates() ([]time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Time, 0, len(c.holidays))
	for _, h := range c.holidays {
		r := h.rule
		if r.StartDate.IsZero() || !r.StartDate.Equal(r.EndDate) {
			return nil, false
		}
		out = append(out, r.StartDate)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, true
}

// Merge returns the union of both rule sets. Rules of other whose name is
// already used by this calendar are skipped.
func (c *Calendar) Merge(other *Calendar) []Rule {
	base := c.Rules()
	seen := make(map[string]struct{}, len(base))
	for _, r := range base {
		seen[r.Name] = struct{}{}
	}
	merged := base
	for _, r := range other.Rules() {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		merged = append(merged, r)
	}
	return merged
}

// MergeInPlace replaces this calendar's rules with Merge(other) and drops
// the cache.
func (c *Calendar) MergeInPlace(other *Calendar) error {
	hs, err := compile(c.Merge(other))
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.holidays = hs
	c.cache = nil
	return nil
}

// Clone returns a calendar with the same rules and an empty cache.
func (c *Calendar) Clone() *Calendar {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Calendar{
		name:        c.name,
		windowStart: c.windowStart,
		windowEnd:   c.windowEnd,
		holidays:    append([]*Holiday(nil), c.holidays...),
	}
}
