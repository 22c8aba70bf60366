package offsets

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay builds a TimeOfDay from hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// ParseTimeOfDay parses "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

// On places the time of day on day's calendar date in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, t.Second, 0, loc)
}

// Duration returns the time elapsed since midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute + time.Duration(t.Second)*time.Second
}

func (t TimeOfDay) String() string {
	if t.Second != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Session describes the trading session for a calendar day.
type Session interface {
	Location() *time.Location
	// SessionBounds returns the open and close of the session labelled with
	// day's calendar date. ok is false when there is no session that day.
	SessionBounds(day time.Time) (open, close time.Time, ok bool)
}

// SessionRange is a session that runs every day between two wall clock
// times. A close at or before the open ends on the following day.
type SessionRange struct {
	Open  TimeOfDay
	Close TimeOfDay
	Loc   *time.Location
}

func (s SessionRange) Location() *time.Location {
	if s.Loc == nil {
		return time.UTC
	}
	return s.Loc
}

func (s SessionRange) SessionBounds(day time.Time) (time.Time, time.Time, bool) {
	loc := s.Location()
	open := s.Open.On(day, loc)
	closeDay := day
	if s.Close.Duration() <= s.Open.Duration() {
		closeDay = Midnight(day).AddDate(0, 0, 1)
	}
	return open, s.Close.On(closeDay, loc), true
}

// AnchorWhich picks which session boundary a SessionAnchor tracks.
type AnchorWhich int

const (
	AfterOpen AnchorWhich = iota
	BeforeClose
)

// maxSessionScan bounds the search for session days.
const maxSessionScan = 3700

// SessionAnchor steps between points at a fixed distance after each
// session open or before each session close.
type SessionAnchor struct {
	n       int
	session Session
	which   AnchorWhich
	delta   time.Duration
}

// NewSessionAnchor returns n steps between anchors of session.
func NewSessionAnchor(session Session, which AnchorWhich, delta time.Duration, n int) SessionAnchor {
	return SessionAnchor{n: n, session: session, which: which, delta: delta}
}

func (o SessionAnchor) anchorFor(day time.Time) (time.Time, bool) {
	open, closeAt, ok := o.session.SessionBounds(day)
	if !ok {
		return time.Time{}, false
	}
	if o.which == AfterOpen {
		return open.Add(o.delta), true
	}
	return closeAt.Add(-o.delta), true
}

func (o SessionAnchor) N() int { return o.n }

func (o SessionAnchor) WithN(n int) Offset {
	o.n = n
	return o
}

// Add returns, for n > 0, the nth anchor strictly after t; for n < 0 the
// |n|th anchor strictly before t; for n == 0 the latest anchor at or before
// t. When no session day is found t is returned unchanged.
func (o SessionAnchor) Add(t time.Time) time.Time {
	day := Midnight(t.In(o.session.Location()))
	count := 0
	if o.n > 0 {
		for i := -1; i <= maxSessionScan; i++ {
			a, ok := o.anchorFor(day.AddDate(0, 0, i))
			if !ok || !a.After(t) {
				continue
			}
			count++
			if count == o.n {
				return a
			}
		}
		return t
	}
	for i := 1; i >= -maxSessionScan; i-- {
		a, ok := o.anchorFor(day.AddDate(0, 0, i))
		if !ok {
			continue
		}
		if o.n == 0 {
			if !a.After(t) {
				return a
			}
			continue
		}
		if !a.Before(t) {
			continue
		}
		count++
		if count == -o.n {
			return a
		}
	}
	return t
}

func (o SessionAnchor) Rsub(time.Time) (time.Time, error) {
	return time.Time{}, &UnsupportedOperationError{Op: "rsub"}
}

func (o SessionAnchor) Rollforward(time.Time) (time.Time, error) {
	return time.Time{}, &UnsupportedOperationError{Op: "rollforward"}
}

func (o SessionAnchor) Rollback(time.Time) (time.Time, error) {
	return time.Time{}, &UnsupportedOperationError{Op: "rollback"}
}

// IsOnOffset compares t with the anchors of the neighbouring session days
// at minute resolution.
func (o SessionAnchor) IsOnOffset(t time.Time) bool {
	day := Midnight(t.In(o.session.Location()))
	target := t.Truncate(time.Minute)
	for i := -1; i <= 1; i++ {
		a, ok := o.anchorFor(day.AddDate(0, 0, i))
		if ok && a.Truncate(time.Minute).Equal(target) {
			return true
		}
	}
	return false
}

func (o SessionAnchor) Name() string { return name(o.n, o.Code()) }

func (o SessionAnchor) Code() string {
	if o.which == AfterOpen {
		return "SA-OPEN"
	}
	return "SA-CLOSE"
}
