// Package holidays expands declarative holiday rules into concrete dates and
// groups them into named, cached holiday calendars.
package holidays

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aristath/marketcal/internal/offsets"
)

var (
	// ErrOffsetAndObservance is returned for a rule that sets both an offset chain and an observance.
	ErrOffsetAndObservance = errors.New("cannot use both offset and observance")
	// ErrEmptyName is returned for an unnamed holiday calendar.
	ErrEmptyName = errors.New("holiday calendar name must not be empty")
	// ErrNoRules is returned for a holiday calendar without rules.
	ErrNoRules = errors.New("holiday calendar needs at least one rule")
	// ErrCalendarNotFound is returned by registry lookups of unknown names.
	ErrCalendarNotFound = errors.New("calendar not found")
)

// Rule declares a holiday: a fixed month and day (or a single date when Year
// is set), adjusted by either an offset chain or an observance.
type Rule struct {
	Name       string
	Year       int
	Month      time.Month
	Day        int
	Offsets    []offsets.Offset
	Observance Observance
	DaysOfWeek []time.Weekday
	StartDate  time.Time
	EndDate    time.Time
}

// NamedDate is a holiday date with the name of the rule that produced it.
type NamedDate struct {
	Date time.Time
	Name string
}

// Holiday evaluates a Rule.
type Holiday struct {
	rule Rule
	days offsets.Weekmask
}

// NewHoliday validates rule.
func NewHoliday(rule Rule) (*Holiday, error) {
	if len(rule.Offsets) > 0 && rule.Observance != nil {
		return nil, fmt.Errorf("%s: %w", rule.Name, ErrOffsetAndObservance)
	}
	h := &Holiday{rule: rule}
	if len(rule.DaysOfWeek) > 0 {
		h.days = offsets.NewWeekmask(rule.DaysOfWeek...)
	}
	return h, nil
}

// Rule returns the rule definition.
func (h *Holiday) Rule() Rule { return h.rule }

// Name returns the rule name.
func (h *Holiday) Name() string { return h.rule.Name }

// Dates returns the holiday dates inside [start, end] at midnight in
// start's location.
func (h *Holiday) Dates(start, end time.Time) []time.Time {
	loc := start.Location()
	lo, hi := offsets.DayNumber(start), offsets.DayNumber(end)
	if !h.rule.StartDate.IsZero() {
		if d := offsets.DayNumber(h.rule.StartDate); d > lo {
			lo = d
		}
	}
	if !h.rule.EndDate.IsZero() {
		if d := offsets.DayNumber(h.rule.EndDate); d < hi {
			hi = d
		}
	}
	if lo > hi {
		return nil
	}

	var candidates []time.Time
	if h.rule.Year != 0 {
		candidates = append(candidates, time.Date(h.rule.Year, h.rule.Month, h.rule.Day, 0, 0, 0, 0, time.UTC))
	} else {
		y0, _, _ := offsets.FromDayNumber(lo)
		y1, _, _ := offsets.FromDayNumber(hi)
		for y := y0 - 1; y <= y1+1; y++ {
			candidates = append(candidates, time.Date(y, h.rule.Month, h.rule.Day, 0, 0, 0, 0, time.UTC))
		}
	}

	var out []time.Time
	for _, c := range candidates {
		d, ok := h.adjust(c)
		if !ok {
			continue
		}
		if !h.days.IsEmpty() && !h.days[d.Weekday()] {
			continue
		}
		if n := offsets.DayNumber(d); n < lo || n > hi {
			continue
		}
		out = append(out, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	// Observances that jump years can map two reference dates to one day.
	uniq := out[:0]
	for _, d := range out {
		if n := len(uniq); n > 0 && d.Equal(uniq[n-1]) {
			continue
		}
		uniq = append(uniq, d)
	}
	return uniq
}

func (h *Holiday) adjust(d time.Time) (time.Time, bool) {
	if h.rule.Observance != nil {
		return h.rule.Observance(d)
	}
	for _, o := range h.rule.Offsets {
		d = o.Add(d)
	}
	return d, true
}

// DatesWithName pairs Dates with the rule name.
func (h *Holiday) DatesWithName(start, end time.Time) []NamedDate {
	dates := h.Dates(start, end)
	out := make([]NamedDate, len(dates))
	for i, d := range dates {
		out[i] = NamedDate{Date: d, Name: h.rule.Name}
	}
	return out
}
