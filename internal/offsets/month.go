package offsets

import "time"

// Edge selects the start or the end of an anchored period.
type Edge int

const (
	Start Edge = iota
	End
)

func (e Edge) calendarDay() dayOpt {
	if e == End {
		return dayEnd
	}
	return dayStart
}

func (e Edge) businessDay() dayOpt {
	if e == End {
		return dayBusinessEnd
	}
	return dayBusinessStart
}

func edgeSuffix(e Edge) string {
	if e == End {
		return "E"
	}
	return "S"
}

// Month anchors on the first or last calendar day of a month.
type Month struct {
	n    int
	edge Edge
}

// MonthStart returns n month-begin steps.
func MonthStart(n int) Month { return Month{n: n, edge: Start} }

// MonthEnd returns n month-end steps.
func MonthEnd(n int) Month { return Month{n: n, edge: End} }

func (o Month) N() int { return o.n }

func (o Month) WithN(n int) Offset {
	o.n = n
	return o
}

func (o Month) Add(t time.Time) time.Time {
	return addMonths(t, o.n, o.edge.calendarDay())
}

func addMonths(t time.Time, n int, opt dayOpt) time.Time {
	compare := dayOfMonth(t.Year(), t.Month(), opt, t.Day())
	return shiftMonth(t, rollConvention(t.Day(), n, compare), opt)
}

func (o Month) Rsub(t time.Time) (time.Time, error) { return rsub(o, t) }

func (o Month) Rollforward(t time.Time) (time.Time, error) { return rollforward(o, t) }

func (o Month) Rollback(t time.Time) (time.Time, error) { return rollback(o, t) }

func (o Month) IsOnOffset(t time.Time) bool {
	return t.Day() == dayOfMonth(t.Year(), t.Month(), o.edge.calendarDay(), t.Day())
}

func (o Month) Name() string { return name(o.n, o.Code()) }

func (o Month) Code() string { return "M" + edgeSuffix(o.edge) }

// BusinessMonth anchors on the first or last weekday of a month.
type BusinessMonth struct {
	n    int
	edge Edge
}

// BusinessMonthStart returns n business-month-begin steps.
func BusinessMonthStart(n int) BusinessMonth { return BusinessMonth{n: n, edge: Start} }

// BusinessMonthEnd returns n business-month-end steps.
func BusinessMonthEnd(n int) BusinessMonth { return BusinessMonth{n: n, edge: End} }

func (o BusinessMonth) N() int { return o.n }

func (o BusinessMonth) WithN(n int) Offset {
	o.n = n
	return o
}

func (o BusinessMonth) Add(t time.Time) time.Time {
	return addMonths(t, o.n, o.edge.businessDay())
}

func (o BusinessMonth) Rsub(t time.Time) (time.Time, error) { return rsub(o, t) }

func (o BusinessMonth) Rollforward(t time.Time) (time.Time, error) { return rollforward(o, t) }

func (o BusinessMonth) Rollback(t time.Time) (time.Time, error) { return rollback(o, t) }

func (o BusinessMonth) IsOnOffset(t time.Time) bool {
	return t.Day() == dayOfMonth(t.Year(), t.Month(), o.edge.businessDay(), t.Day())
}

func (o BusinessMonth) Name() string { return name(o.n, o.Code()) }

func (o BusinessMonth) Code() string { return "BM" + edgeSuffix(o.edge) }

// Quarter anchors on the first or last day of quarters that begin or end in
// startingMonth and every third month after it.
type Quarter struct {
	n             int
	edge          Edge
	startingMonth time.Month
}

// DefaultQuarterMonth is the starting month used when none is given.
const DefaultQuarterMonth = time.March

// QuarterStart returns n quarter-begin steps. A zero startingMonth means March.
func QuarterStart(n int, startingMonth time.Month) Quarter {
	return newQuarter(n, Start, startingMonth)
}

// QuarterEnd returns n quarter-end steps. A zero startingMonth means March.
func QuarterEnd(n int, startingMonth time.Month) Quarter {
	return newQuarter(n, End, startingMonth)
}

func newQuarter(n int, edge Edge, startingMonth time.Month) Quarter {
	if startingMonth == 0 {
		startingMonth = DefaultQuarterMonth
	}
	return Quarter{n: n, edge: edge, startingMonth: startingMonth}
}

func (o Quarter) N() int { return o.n }

func (o Quarter) WithN(n int) Offset {
	o.n = n
	return o
}

func (o Quarter) Add(t time.Time) time.Time {
	opt := o.edge.calendarDay()
	monthsSince := int(t.Month())%3 - int(o.startingMonth)%3
	qtrs := rollQtrday(t, o.n, o.startingMonth, opt, 3)
	return shiftMonth(t, qtrs*3-monthsSince, opt)
}

func (o Quarter) Rsub(t time.Time) (time.Time, error) { return rsub(o, t) }

func (o Quarter) Rollforward(t time.Time) (time.Time, error) { return rollforward(o, t) }

func (o Quarter) Rollback(t time.Time) (time.Time, error) { return rollback(o, t) }

func (o Quarter) IsOnOffset(t time.Time) bool {
	if mod(int(t.Month())-int(o.startingMonth), 3) != 0 {
		return false
	}
	return t.Day() == dayOfMonth(t.Year(), t.Month(), o.edge.calendarDay(), t.Day())
}

func (o Quarter) Name() string { return name(o.n, o.Code()) }

func (o Quarter) Code() string {
	return "Q" + edgeSuffix(o.edge) + "-" + monthCode(o.startingMonth)
}

// Year anchors on the first or last day of a fixed month each year.
type Year struct {
	n     int
	edge  Edge
	month time.Month
}

// YearStart returns n year-begin steps. A zero month means January.
func YearStart(n int, month time.Month) Year {
	if month == 0 {
		month = time.January
	}
	return Year{n: n, edge: Start, month: month}
}

// YearEnd returns n year-end steps. A zero month means December.
func YearEnd(n int, month time.Month) Year {
	if month == 0 {
		month = time.December
	}
	return Year{n: n, edge: End, month: month}
}

func (o Year) N() int { return o.n }

func (o Year) WithN(n int) Offset {
	o.n = n
	return o
}

func (o Year) Add(t time.Time) time.Time {
	opt := o.edge.calendarDay()
	years := rollQtrday(t, o.n, o.month, opt, 12)
	months := years*12 + int(o.month) - int(t.Month())
	return shiftMonth(t, months, opt)
}

func (o Year) Rsub(t time.Time) (time.Time, error) { return rsub(o, t) }

func (o Year) Rollforward(t time.Time) (time.Time, error) { return rollforward(o, t) }

func (o Year) Rollback(t time.Time) (time.Time, error) { return rollback(o, t) }

func (o Year) IsOnOffset(t time.Time) bool {
	return t.Month() == o.month && t.Day() == dayOfMonth(t.Year(), t.Month(), o.edge.calendarDay(), t.Day())
}

func (o Year) Name() string { return name(o.n, o.Code()) }

func (o Year) Code() string {
	return "Y" + edgeSuffix(o.edge) + "-" + monthCode(o.month)
}
