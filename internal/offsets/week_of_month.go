package offsets

import (
	"fmt"
	"time"
)

// WeekOfMonth anchors on a weekday in a given week of the month, e.g. the
// third Friday (week 2).
type WeekOfMonth struct {
	n       int
	week    int
	weekday time.Weekday
}

// NewWeekOfMonth returns n steps anchored on weekday in week 0..3.
func NewWeekOfMonth(n, week int, weekday time.Weekday) (WeekOfMonth, error) {
	if week < 0 || week > 3 {
		return WeekOfMonth{}, ErrInvalidWeek
	}
	return WeekOfMonth{n: n, week: week, weekday: weekday}, nil
}

func (o WeekOfMonth) offsetDay(year int, month time.Month) int {
	first := weekdayIndex(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	return 1 + mod(indexOfWeekday(o.weekday)-first, 7) + o.week*7
}

func (o WeekOfMonth) N() int { return o.n }

func (o WeekOfMonth) WithN(n int) Offset {
	o.n = n
	return o
}

func (o WeekOfMonth) Add(t time.Time) time.Time {
	months := rollConvention(t.Day(), o.n, o.offsetDay(t.Year(), t.Month()))
	shifted := shiftMonth(t, months, dayStart)
	return withDate(shifted, shifted.Year(), shifted.Month(), o.offsetDay(shifted.Year(), shifted.Month()))
}

func (o WeekOfMonth) Rsub(t time.Time) (time.Time, error) { return rsub(o, t) }

func (o WeekOfMonth) Rollforward(t time.Time) (time.Time, error) { return rollforward(o, t) }

func (o WeekOfMonth) Rollback(t time.Time) (time.Time, error) { return rollback(o, t) }

func (o WeekOfMonth) IsOnOffset(t time.Time) bool {
	return t.Day() == o.offsetDay(t.Year(), t.Month())
}

func (o WeekOfMonth) Name() string { return name(o.n, o.Code()) }

func (o WeekOfMonth) Code() string {
	return fmt.Sprintf("WOM-%d%s", o.week+1, weekdayCode(o.weekday))
}

// LastWeekOfMonth anchors on the last occurrence of a weekday in the month.
type LastWeekOfMonth struct {
	n       int
	weekday time.Weekday
}

// NewLastWeekOfMonth returns n steps anchored on the month's last weekday.
func NewLastWeekOfMonth(n int, weekday time.Weekday) LastWeekOfMonth {
	return LastWeekOfMonth{n: n, weekday: weekday}
}

func (o LastWeekOfMonth) offsetDay(year int, month time.Month) int {
	dim := DaysInMonth(year, month)
	last := weekdayIndex(time.Date(year, month, dim, 0, 0, 0, 0, time.UTC))
	return dim - mod(last-indexOfWeekday(o.weekday), 7)
}

func (o LastWeekOfMonth) N() int { return o.n }

func (o LastWeekOfMonth) WithN(n int) Offset {
	o.n = n
	return o
}

func (o LastWeekOfMonth) Add(t time.Time) time.Time {
	months := rollConvention(t.Day(), o.n, o.offsetDay(t.Year(), t.Month()))
	shifted := shiftMonth(t, months, dayStart)
	return withDate(shifted, shifted.Year(), shifted.Month(), o.offsetDay(shifted.Year(), shifted.Month()))
}

func (o LastWeekOfMonth) Rsub(t time.Time) (time.Time, error) { return rsub(o, t) }

func (o LastWeekOfMonth) Rollforward(t time.Time) (time.Time, error) { return rollforward(o, t) }

func (o LastWeekOfMonth) Rollback(t time.Time) (time.Time, error) { return rollback(o, t) }

func (o LastWeekOfMonth) IsOnOffset(t time.Time) bool {
	return t.Day() == o.offsetDay(t.Year(), t.Month())
}

func (o LastWeekOfMonth) Name() string { return name(o.n, o.Code()) }

func (o LastWeekOfMonth) Code() string { return "LWOM-" + weekdayCode(o.weekday) }
