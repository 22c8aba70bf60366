package offsets

import "time"

// Tick is a fixed-length step. Day ticks are exactly 24 hours and ignore
// daylight saving transitions; use RelativeDelta for calendar days.
type Tick struct {
	n    int
	unit time.Duration
	code string
}

func newTick(n int, unit time.Duration, code string) Tick {
	return Tick{n: n, unit: unit, code: code}
}

// Nanos returns a tick of n nanoseconds.
func Nanos(n int) Tick { return newTick(n, time.Nanosecond, "ns") }

// Micros returns a tick of n microseconds.
func Micros(n int) Tick { return newTick(n, time.Microsecond, "us") }

// Millis returns a tick of n milliseconds.
func Millis(n int) Tick { return newTick(n, time.Millisecond, "ms") }

// Seconds returns a tick of n seconds.
func Seconds(n int) Tick { return newTick(n, time.Second, "S") }

// Minutes returns a tick of n minutes.
func Minutes(n int) Tick { return newTick(n, time.Minute, "Min") }

// Hours returns a tick of n hours.
func Hours(n int) Tick { return newTick(n, time.Hour, "H") }

// Days returns a tick of n fixed 24 hour days.
func Days(n int) Tick { return newTick(n, 24*time.Hour, "D") }

// Duration returns the total length of the tick.
func (o Tick) Duration() time.Duration { return time.Duration(o.n) * o.unit }

func (o Tick) N() int { return o.n }

func (o Tick) WithN(n int) Offset { return newTick(n, o.unit, o.code) }

func (o Tick) Add(t time.Time) time.Time { return t.Add(o.Duration()) }

func (o Tick) Rsub(t time.Time) (time.Time, error) { return rsub(o, t) }

func (o Tick) Rollforward(t time.Time) (time.Time, error) { return t, nil }

func (o Tick) Rollback(t time.Time) (time.Time, error) { return t, nil }

func (o Tick) IsOnOffset(time.Time) bool { return true }

func (o Tick) Name() string { return name(o.n, o.code) }

func (o Tick) Code() string { return o.code }
