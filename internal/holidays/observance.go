package holidays

import "time"

// Observance moves a holiday to the day it is observed. Returning false
// drops the holiday for that year.
type Observance func(time.Time) (time.Time, bool)

func days(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// NextMonday moves Saturday and Sunday holidays to Monday.
func NextMonday(t time.Time) (time.Time, bool) {
	switch t.Weekday() {
	case time.Saturday:
		return days(t, 2), true
	case time.Sunday:
		return days(t, 1), true
	}
	return t, true
}

// NextMondayOrTuesday moves Saturday to Monday and Sunday or Monday to
// Tuesday, for holidays that follow one another.
func NextMondayOrTuesday(t time.Time) (time.Time, bool) {
	switch t.Weekday() {
	case time.Saturday:
		return days(t, 2), true
	case time.Sunday, time.Monday:
		return days(t, 1), true
	}
	return t, true
}

// PreviousFriday moves Saturday and Sunday holidays to Friday.
func PreviousFriday(t time.Time) (time.Time, bool) {
	switch t.Weekday() {
	case time.Saturday:
		return days(t, -1), true
	case time.Sunday:
		return days(t, -2), true
	}
	return t, true
}

// SundayToMonday moves Sunday holidays to Monday.
func SundayToMonday(t time.Time) (time.Time, bool) {
	if t.Weekday() == time.Sunday {
		return days(t, 1), true
	}
	return t, true
}

// WeekendToMonday moves Saturday and Sunday holidays to Monday.
func WeekendToMonday(t time.Time) (time.Time, bool) {
	return NextMonday(t)
}

// NearestWorkday moves Saturday to Friday and Sunday to Monday.
func NearestWorkday(t time.Time) (time.Time, bool) {
	switch t.Weekday() {
	case time.Saturday:
		return days(t, -1), true
	case time.Sunday:
		return days(t, 1), true
	}
	return t, true
}

// NextWorkday returns the next weekday after t.
func NextWorkday(t time.Time) (time.Time, bool) {
	t = days(t, 1)
	for isWeekend(t) {
		t = days(t, 1)
	}
	return t, true
}

// PreviousWorkday returns the last weekday before t.
func PreviousWorkday(t time.Time) (time.Time, bool) {
	t = days(t, -1)
	for isWeekend(t) {
		t = days(t, -1)
	}
	return t, true
}

// BeforeNearestWorkday returns the workday before the nearest workday.
func BeforeNearestWorkday(t time.Time) (time.Time, bool) {
	n, _ := NearestWorkday(t)
	return PreviousWorkday(n)
}

// AfterNearestWorkday returns the workday after the nearest workday.
func AfterNearestWorkday(t time.Time) (time.Time, bool) {
	n, _ := NearestWorkday(t)
	return NextWorkday(n)
}
