package offsets

import "time"

// Week steps by calendar weeks, optionally anchored on a weekday.
type Week struct {
	n        int
	anchored bool
	weekday  time.Weekday
}

// Weeks returns an unanchored step of n weeks.
func Weeks(n int) Week { return Week{n: n} }

// WeeksOn returns a step of n weeks anchored on weekday.
func WeeksOn(n int, weekday time.Weekday) Week {
	return Week{n: n, anchored: true, weekday: weekday}
}

func (o Week) N() int { return o.n }

func (o Week) WithN(n int) Offset {
	o.n = n
	return o
}

func (o Week) Add(t time.Time) time.Time {
	if !o.anchored {
		return t.AddDate(0, 0, 7*o.n)
	}
	k := o.n
	if t.Weekday() != o.weekday {
		t = t.AddDate(0, 0, mod(int(o.weekday)-int(t.Weekday()), 7))
		if k > 0 {
			k--
		}
	}
	return t.AddDate(0, 0, 7*k)
}

func (o Week) Rsub(t time.Time) (time.Time, error) { return rsub(o, t) }

func (o Week) Rollforward(t time.Time) (time.Time, error) { return rollforward(o, t) }

func (o Week) Rollback(t time.Time) (time.Time, error) { return rollback(o, t) }

func (o Week) IsOnOffset(t time.Time) bool {
	return !o.anchored || t.Weekday() == o.weekday
}

func (o Week) Name() string { return name(o.n, o.Code()) }

func (o Week) Code() string {
	if !o.anchored {
		return "W"
	}
	return "W-" + weekdayCode(o.weekday)
}
