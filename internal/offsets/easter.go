package offsets

import "time"

// EasterMethod selects the computus used for Easter dates.
type EasterMethod int

const (
	// Western is the Gregorian computus used by Catholic and Protestant churches.
	Western EasterMethod = iota
	// Orthodox is the Julian computus, returned as a Gregorian date.
	Orthodox
)

// EasterDate returns Easter Sunday for year at midnight in loc.
func EasterDate(year int, method EasterMethod, loc *time.Location) time.Time {
	var month time.Month
	var day int
	if method == Orthodox {
		month, day = julianEaster(year)
	} else {
		month, day = gregorianEaster(year)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// gregorianEaster uses the anonymous Gregorian computus.
func gregorianEaster(year int) (time.Month, int) {
	// Golden Number (position in 19-year Metonic cycle)
	a := year % 19

	// Century
	b := year / 100
	c := year % 100

	// Corrections
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1
	return time.Month(month), day
}

// julianEaster computes Easter in the Julian calendar and shifts it by the
// Julian to Gregorian drift of the year's century.
func julianEaster(year int) (time.Month, int) {
	a := year % 19
	b := year % 4
	c := year % 7
	d := (19*a + 15) % 30
	e := (2*b + 4*c + 6*d + 6) % 7

	drift := year/100 - year/400 - 2
	t := time.Date(year, time.March, 22+d+e+drift, 0, 0, 0, 0, time.UTC)
	return t.Month(), t.Day()
}

// Easter steps between Easter Sundays, keeping the time of day.
type Easter struct {
	n      int
	method EasterMethod
}

// EasterOffset returns n Western Easter steps.
func EasterOffset(n int) Easter { return Easter{n: n} }

// OrthodoxEasterOffset returns n Orthodox Easter steps.
func OrthodoxEasterOffset(n int) Easter { return Easter{n: n, method: Orthodox} }

func (o Easter) N() int { return o.n }

func (o Easter) WithN(n int) Offset {
	o.n = n
	return o
}

func (o Easter) Add(t time.Time) time.Time {
	current := DayNumber(EasterDate(t.Year(), o.method, time.UTC))
	today := DayNumber(t)
	n := o.n
	if n >= 0 && today < current {
		n--
	} else if n < 0 && today > current {
		n++
	}
	e := EasterDate(t.Year()+n, o.method, time.UTC)
	return withDate(t, e.Year(), e.Month(), e.Day())
}

func (o Easter) Rsub(t time.Time) (time.Time, error) { return rsub(o, t) }

func (o Easter) Rollforward(t time.Time) (time.Time, error) { return rollforward(o, t) }

func (o Easter) Rollback(t time.Time) (time.Time, error) { return rollback(o, t) }

func (o Easter) IsOnOffset(t time.Time) bool {
	return DayNumber(t) == DayNumber(EasterDate(t.Year(), o.method, time.UTC))
}

func (o Easter) Name() string { return name(o.n, o.Code()) }

func (o Easter) Code() string { return "Easter" }
