package offsets

import (
	"time"
)

// BusinessDay steps over Monday to Friday, ignoring holidays.
type BusinessDay struct {
	n     int
	delta time.Duration
}

// BusinessDays returns a step of n weekdays.
func BusinessDays(n int) BusinessDay { return BusinessDay{n: n} }

// BusinessDaysWithDelta returns a step of n weekdays followed by delta.
func BusinessDaysWithDelta(n int, delta time.Duration) BusinessDay {
	return BusinessDay{n: n, delta: delta}
}

func (o BusinessDay) N() int { return o.n }

func (o BusinessDay) WithN(n int) Offset {
	o.n = n
	return o
}

func (o BusinessDay) Add(t time.Time) time.Time {
	wday := weekdayIndex(t)
	weeks := floorDiv(o.n, 5)
	days := o.adjustDays(wday, weeks)
	return t.AddDate(0, 0, 7*weeks+days).Add(o.delta)
}

func (o BusinessDay) adjustDays(wday, weeks int) int {
	n := o.n
	if n <= 0 && wday > 4 {
		n++
	}
	n -= 5 * weeks

	switch {
	case n == 0 && wday > 4:
		return 4 - wday
	case wday > 4:
		return 7 - wday + n - 1
	case wday+n <= 4:
		return n
	default:
		return n + 2
	}
}

func (o BusinessDay) Rsub(t time.Time) (time.Time, error) {
	back := BusinessDay{n: -o.n}
	return back.Add(t.Add(-o.delta)), nil
}

func (o BusinessDay) Rollforward(t time.Time) (time.Time, error) { return rollforward(o, t) }

func (o BusinessDay) Rollback(t time.Time) (time.Time, error) { return rollback(o, t) }

func (o BusinessDay) IsOnOffset(t time.Time) bool { return weekdayIndex(t) < 5 }

func (o BusinessDay) Name() string { return name(o.n, o.Code()) }

func (o BusinessDay) Code() string { return "B" }

// Weekmask marks the weekdays that are valid business days, indexed by time.Weekday.
type Weekmask [7]bool

// NewWeekmask builds a mask with the given days set.
func NewWeekmask(days ...time.Weekday) Weekmask {
	var m Weekmask
	for _, d := range days {
		m[d] = true
	}
	return m
}

var (
	// MondayToFriday is the standard five day trading week.
	MondayToFriday = NewWeekmask(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	// MondayToSaturday includes Saturday sessions.
	MondayToSaturday = NewWeekmask(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday)
	// EveryDay includes weekends.
	EveryDay = NewWeekmask(time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday)
)

// IsEmpty reports whether no day is set.
func (m Weekmask) IsEmpty() bool {
	return m == Weekmask{}
}

// Days returns the set weekdays in Sunday-first order.
func (m Weekmask) Days() []time.Weekday {
	var out []time.Weekday
	for d, ok := range m {
		if ok {
			out = append(out, time.Weekday(d))
		}
	}
	return out
}

// HolidaySource yields holiday dates in a range. Zero bounds select the
// source's own default window.
type HolidaySource interface {
	Holidays(start, end time.Time) []time.Time
}

// CustomBusinessDayOptions configures a CustomBusinessDay.
type CustomBusinessDayOptions struct {
	Weekmask Weekmask
	Holidays []time.Time
	Calendar HolidaySource
	Delta    time.Duration
}

// busdayCalendar is shared between copies produced by WithN.
type busdayCalendar struct {
	weekmask Weekmask
	holidays map[int64]struct{}
}

func (c *busdayCalendar) valid(day int64) bool {
	if !c.weekmask[time.Weekday(mod64(day+4, 7))] {
		return false
	}
	_, holiday := c.holidays[day]
	return !holiday
}

// CustomBusinessDay steps over the days allowed by a weekmask, skipping holidays.
type CustomBusinessDay struct {
	n     int
	cal   *busdayCalendar
	delta time.Duration
}

// CustomBusinessDays builds a custom business day step. An empty weekmask
// defaults to Monday to Friday. Holidays from the calendar are materialized
// over its default window.
func CustomBusinessDays(n int, opts CustomBusinessDayOptions) CustomBusinessDay {
	mask := opts.Weekmask
	if mask.IsEmpty() {
		mask = MondayToFriday
	}
	cal := &busdayCalendar{weekmask: mask, holidays: make(map[int64]struct{}, len(opts.Holidays))}
	for _, h := range opts.Holidays {
		cal.holidays[DayNumber(h)] = struct{}{}
	}
	if opts.Calendar != nil {
		for _, h := range opts.Calendar.Holidays(time.Time{}, time.Time{}) {
			cal.holidays[DayNumber(h)] = struct{}{}
		}
	}
	return CustomBusinessDay{n: n, cal: cal, delta: opts.Delta}
}

func (o CustomBusinessDay) N() int { return o.n }

func (o CustomBusinessDay) WithN(n int) Offset {
	o.n = n
	return o
}

// Weekmask returns the valid weekdays.
func (o CustomBusinessDay) Weekmask() Weekmask { return o.cal.weekmask }

// IsBusinessDay reports whether t's calendar date is a valid day.
func (o CustomBusinessDay) IsBusinessDay(t time.Time) bool {
	return o.cal.valid(DayNumber(t))
}

func (o CustomBusinessDay) Add(t time.Time) time.Time {
	day := o.offsetDay(DayNumber(t), o.n)
	y, m, d := FromDayNumber(day)
	return withDate(t, y, m, d).Add(o.delta)
}

// offsetDay rolls day onto a valid day (forward for n <= 0, backward for
// n > 0) and then counts n valid days.
func (o CustomBusinessDay) offsetDay(day int64, n int) int64 {
	step := int64(1)
	if n > 0 {
		step = -1
	}
	for !o.cal.valid(day) {
		day += step
	}
	for n > 0 {
		day++
		if o.cal.valid(day) {
			n--
		}
	}
	for n < 0 {
		day--
		if o.cal.valid(day) {
			n++
		}
	}
	return day
}

func (o CustomBusinessDay) Rsub(t time.Time) (time.Time, error) {
	back := CustomBusinessDay{n: -o.n, cal: o.cal}
	return back.Add(t.Add(-o.delta)), nil
}

func (o CustomBusinessDay) Rollforward(t time.Time) (time.Time, error) { return rollforward(o, t) }

func (o CustomBusinessDay) Rollback(t time.Time) (time.Time, error) { return rollback(o, t) }

func (o CustomBusinessDay) IsOnOffset(t time.Time) bool { return o.IsBusinessDay(t) }

func (o CustomBusinessDay) Name() string { return name(o.n, o.Code()) }

func (o CustomBusinessDay) Code() string { return "C" }

// DayNumber returns the count of days between 1970-01-01 and t's calendar date.
func DayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// FromDayNumber is the inverse of DayNumber.
func FromDayNumber(day int64) (int, time.Month, int) {
	return time.Unix(day*86400, 0).UTC().Date()
}

func mod64(a, b int64) int64 {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
