package offsets

import "time"

// NthWeekday targets the nth occurrence of a weekday counted from the date
// being adjusted. Positive N searches forward (the date itself counts as the
// first match), negative N searches backward. Zero behaves like 1.
type NthWeekday struct {
	Weekday time.Weekday
	N       int
}

// MO returns the nth Monday relative to a date.
func MO(n int) *NthWeekday { return &NthWeekday{Weekday: time.Monday, N: n} }

// TU returns the nth Tuesday relative to a date.
func TU(n int) *NthWeekday { return &NthWeekday{Weekday: time.Tuesday, N: n} }

// WE returns the nth Wednesday relative to a date.
func WE(n int) *NthWeekday { return &NthWeekday{Weekday: time.Wednesday, N: n} }

// TH returns the nth Thursday relative to a date.
func TH(n int) *NthWeekday { return &NthWeekday{Weekday: time.Thursday, N: n} }

// FR returns the nth Friday relative to a date.
func FR(n int) *NthWeekday { return &NthWeekday{Weekday: time.Friday, N: n} }

// SA returns the nth Saturday relative to a date.
func SA(n int) *NthWeekday { return &NthWeekday{Weekday: time.Saturday, N: n} }

// SU returns the nth Sunday relative to a date.
func SU(n int) *NthWeekday { return &NthWeekday{Weekday: time.Sunday, N: n} }

// RelativeDeltaOptions are the components of a relative date adjustment.
type RelativeDeltaOptions struct {
	Years   int
	Months  int
	Weeks   int
	Days    int
	Weekday *NthWeekday
}

// RelativeDelta applies years and months (clamping the day to the month
// length), then weeks and days, then an optional nth-weekday jump. The whole
// adjustment is applied n times; a negative n subtracts the calendar
// components but keeps the weekday search as configured.
type RelativeDelta struct {
	n    int
	opts RelativeDeltaOptions
}

// NewRelativeDelta returns n applications of opts.
func NewRelativeDelta(n int, opts RelativeDeltaOptions) RelativeDelta {
	return RelativeDelta{n: n, opts: opts}
}

// DateOffset returns a single application of opts.
func DateOffset(opts RelativeDeltaOptions) RelativeDelta {
	return NewRelativeDelta(1, opts)
}

func (o RelativeDelta) N() int { return o.n }

func (o RelativeDelta) WithN(n int) Offset {
	o.n = n
	return o
}

func (o RelativeDelta) Add(t time.Time) time.Time {
	for i := 0; i < abs(o.n); i++ {
		if o.n > 0 {
			t = o.apply(t, 1)
		} else {
			t = o.apply(t, -1)
		}
	}
	return t
}

func (o RelativeDelta) apply(t time.Time, sign int) time.Time {
	total := int(t.Month()) - 1 + sign*o.opts.Months
	year := t.Year() + sign*o.opts.Years + floorDiv(total, 12)
	month := time.Month(mod(total, 12) + 1)
	t = withDate(t, year, month, dayOfMonth(year, month, dayKeep, t.Day()))
	t = t.AddDate(0, 0, sign*(o.opts.Days+7*o.opts.Weeks))

	if o.opts.Weekday == nil {
		return t
	}
	nth := o.opts.Weekday.N
	if nth == 0 {
		nth = 1
	}
	wd := weekdayIndex(t)
	target := indexOfWeekday(o.opts.Weekday.Weekday)
	jump := (abs(nth) - 1) * 7
	if nth > 0 {
		jump += mod(target-wd, 7)
	} else {
		jump = -(jump + mod(wd-target, 7))
	}
	return t.AddDate(0, 0, jump)
}

func (o RelativeDelta) Rsub(t time.Time) (time.Time, error) { return rsub(o, t) }

func (o RelativeDelta) Rollforward(t time.Time) (time.Time, error) { return rollforward(o, t) }

func (o RelativeDelta) Rollback(t time.Time) (time.Time, error) { return rollback(o, t) }

func (o RelativeDelta) IsOnOffset(t time.Time) bool {
	return o.opts.Weekday == nil || t.Weekday() == o.opts.Weekday.Weekday
}

func (o RelativeDelta) Name() string { return name(o.n, o.Code()) }

func (o RelativeDelta) Code() string { return "RD" }
