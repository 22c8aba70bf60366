package holidays

import "time"

// goodFridayUnlessChristmasNYEFriday closes on Good Friday except in years
// where the observed Christmas or New Year's Day falls on a Friday.
func goodFridayUnlessChristmasNYEFriday(t time.Time) (time.Time, bool) {
	y := t.Year()
	christmas, ok := Christmas.Observance(day(y, time.December, 25))
	if !ok {
		return time.Time{}, false
	}
	newYear, ok := USNewYearsDay.Observance(day(y, time.January, 1))
	if !ok {
		return time.Time{}, false
	}
	if christmas.Weekday() == time.Friday || newYear.Weekday() == time.Friday {
		return time.Time{}, false
	}
	d := day(y, time.January, 1)
	for _, o := range GoodFridayOffsets() {
		d = o.Add(d)
	}
	return d, true
}

// GoodFridayUnlessChristmasNYEFriday is the CBOE futures Good Friday rule.
var GoodFridayUnlessChristmasNYEFriday = Rule{
	Name:       "Good Friday CFE",
	Month:      time.January,
	Day:        1,
	Observance: goodFridayUnlessChristmasNYEFriday,
}

// CBOERegularHolidays is the holiday set shared by the CBOE calendars.
func CBOERegularHolidays() []Rule {
	return []Rule{
		USNewYearsDay,
		USMartinLutherKingJrAfter1998,
		USPresidentsDay,
		GoodFridayUnlessChristmasNYEFriday,
		USJuneteenthAfter2022,
		USIndependenceDay,
		USMemorialDay,
		USLaborDay,
		USThanksgivingDay,
		Christmas,
	}
}
