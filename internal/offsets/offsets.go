// Package offsets implements calendar-aware date arithmetic: fixed ticks,
// anchored calendar periods, business-day counting and trading-session anchors.
package offsets

import (
	"errors"
	"fmt"
	"time"
)

// Offset is a step of n units applied to a timestamp.
//
// Add moves forward by n units (backward for negative n). Rsub is the inverse
// step. Rollforward and Rollback move a timestamp onto the offset only when it
// is not already on it.
type Offset interface {
	N() int
	WithN(n int) Offset
	Add(t time.Time) time.Time
	Rsub(t time.Time) (time.Time, error)
	Rollforward(t time.Time) (time.Time, error)
	Rollback(t time.Time) (time.Time, error)
	IsOnOffset(t time.Time) bool
	// Name is the frequency string with its multiplier, e.g. "3B".
	Name() string
	// Code is the frequency string without a multiplier, e.g. "B".
	Code() string
}

var (
	// ErrUnknownOffset is returned when a frequency string has no registered constructor.
	ErrUnknownOffset = errors.New("unknown offset")
	// ErrInvalidWeek is returned for a WeekOfMonth week outside 0..3.
	ErrInvalidWeek = errors.New("Week must be in range 0..3 for WeekOfMonth")
)

// UnsupportedOperationError reports an operation an offset cannot perform.
type UnsupportedOperationError struct {
	Op string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("SessionAnchorOffsetHandler::%s is not supported for SessionAnchor offsets. Use add()/base() semantics instead.", e.Op)
}

// rsub, rollforward and rollback are the generic implementations shared by
// every offset whose inverse is a negated step. rollback goes through the
// offset's own Rsub so that offsets carrying a delta undo it in both.
func rsub(o Offset, t time.Time) (time.Time, error) {
	return o.WithN(-o.N()).Add(t), nil
}

func rollforward(o Offset, t time.Time) (time.Time, error) {
	if o.IsOnOffset(t) {
		return t, nil
	}
	return o.WithN(1).Add(t), nil
}

func rollback(o Offset, t time.Time) (time.Time, error) {
	if o.IsOnOffset(t) {
		return t, nil
	}
	return o.WithN(1).Rsub(t)
}

func name(n int, code string) string {
	return fmt.Sprintf("%d%s", n, code)
}

// weekdayIndex numbers weekdays from Monday=0 to Sunday=6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func indexOfWeekday(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// withDate replaces the calendar date of t, keeping its wall clock and location.
func withDate(t time.Time, year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// Midnight returns the start of t's calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayOpt selects which day of the target month shiftMonth lands on.
type dayOpt int

const (
	dayKeep dayOpt = iota
	dayStart
	dayEnd
	dayBusinessStart
	dayBusinessEnd
)

func dayOfMonth(year int, month time.Month, opt dayOpt, current int) int {
	dim := DaysInMonth(year, month)
	switch opt {
	case dayStart:
		return 1
	case dayEnd:
		return dim
	case dayBusinessStart:
		wd := weekdayIndex(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
		if wd > 4 {
			return 1 + 7 - wd
		}
		return 1
	case dayBusinessEnd:
		wd := weekdayIndex(time.Date(year, month, dim, 0, 0, 0, 0, time.UTC))
		if wd > 4 {
			return dim - (wd - 4)
		}
		return dim
	default:
		if current > dim {
			return dim
		}
		return current
	}
}

func shiftMonth(t time.Time, months int, opt dayOpt) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + floorDiv(total, 12)
	month := time.Month(mod(total, 12) + 1)
	return withDate(t, year, month, dayOfMonth(year, month, opt, t.Day()))
}

// rollConvention adjusts n when t has not yet reached (or already passed)
// the anchor day of its own period.
func rollConvention(day, n, compare int) int {
	if n > 0 && day < compare {
		return n - 1
	}
	if n <= 0 && day > compare {
		return n + 1
	}
	return n
}

func rollQtrday(t time.Time, n int, month time.Month, opt dayOpt, modby int) int {
	var monthsSince int
	if modby != 12 {
		monthsSince = int(t.Month())%modby - int(month)%modby
	} else {
		monthsSince = int(t.Month()) - int(month)
	}
	edge := dayOfMonth(t.Year(), t.Month(), opt, t.Day())
	if n > 0 {
		if monthsSince < 0 || (monthsSince == 0 && t.Day() < edge) {
			n--
		}
	} else if monthsSince > 0 || (monthsSince == 0 && t.Day() > edge) {
		n++
	}
	return n
}

var weekdayCodes = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

var monthCodes = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

func weekdayCode(wd time.Weekday) string {
	return weekdayCodes[wd]
}

func monthCode(m time.Month) string {
	return monthCodes[m-1]
}
