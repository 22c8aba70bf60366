package holidays

import (
	"time"

	"github.com/aristath/marketcal/internal/offsets"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dates(ymd ...[3]int) []time.Time {
	out := make([]time.Time, len(ymd))
	for i, v := range ymd {
		out[i] = day(v[0], time.Month(v[1]), v[2])
	}
	return out
}

func nth(wd *offsets.NthWeekday) offsets.Offset {
	return offsets.DateOffset(offsets.RelativeDeltaOptions{Weekday: wd})
}

// Weekdays is the Monday to Friday days-of-week filter.
var Weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// WeekdaysAndSaturday includes the Saturday sessions of early exchanges.
var WeekdaysAndSaturday = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}

var mondayToThursday = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday}

// GoodFridayOffsets resolves January 1st to the Friday before Easter.
func GoodFridayOffsets() []offsets.Offset {
	return []offsets.Offset{offsets.EasterOffset(1), offsets.Days(-2)}
}

// US federal and market holiday rules.
var (
	USNewYearsDay = Rule{
		Name:       "New Year's Day",
		Month:      time.January,
		Day:        1,
		Observance: SundayToMonday,
	}
	USMartinLutherKingJrAfter1998 = Rule{
		Name:      "Dr. Martin Luther King Jr. Day",
		Month:     time.January,
		Day:       1,
		Offsets:   []offsets.Offset{nth(offsets.MO(3))},
		StartDate: day(1998, time.January, 1),
	}
	USPresidentsDay = Rule{
		Name:      "President's Day",
		Month:     time.February,
		Day:       1,
		Offsets:   []offsets.Offset{nth(offsets.MO(3))},
		StartDate: day(1971, time.January, 1),
	}
	GoodFriday = Rule{
		Name:      "Good Friday",
		Month:     time.January,
		Day:       1,
		Offsets:   GoodFridayOffsets(),
		StartDate: day(1908, time.January, 1),
	}
	USMemorialDay = Rule{
		Name:      "Memorial Day",
		Month:     time.May,
		Day:       31,
		Offsets:   []offsets.Offset{nth(offsets.MO(-1))},
		StartDate: day(1971, time.January, 1),
	}
	USJuneteenthAfter2022 = Rule{
		Name:       "Juneteenth",
		Month:      time.June,
		Day:        19,
		StartDate:  day(2022, time.June, 19),
		Observance: NearestWorkday,
	}
	USIndependenceDay = Rule{
		Name:       "July 4th",
		Month:      time.July,
		Day:        4,
		StartDate:  day(1954, time.January, 1),
		Observance: NearestWorkday,
	}
	USLaborDay = Rule{
		Name:      "Labor Day",
		Month:     time.September,
		Day:       1,
		Offsets:   []offsets.Offset{nth(offsets.MO(1))},
		StartDate: day(1887, time.January, 1),
	}
	USColumbusDay = Rule{
		Name:      "Columbus Day",
		Month:     time.October,
		Day:       1,
		Offsets:   []offsets.Offset{nth(offsets.MO(2))},
		StartDate: day(1971, time.January, 1),
	}
	USVeteransDay = Rule{
		Name:       "Veterans Day",
		Month:      time.November,
		Day:        11,
		Observance: NearestWorkday,
	}
	USThanksgivingDay = Rule{
		Name:      "Thanksgiving Day",
		Month:     time.November,
		Day:       1,
		Offsets:   []offsets.Offset{nth(offsets.TH(4))},
		StartDate: day(1942, time.January, 1),
	}
	Christmas = Rule{
		Name:       "Christmas",
		Month:      time.December,
		Day:        25,
		Observance: NearestWorkday,
	}
	USElectionDay1968to1980 = Rule{
		Name:       "Election Day",
		Month:      time.November,
		Day:        2,
		StartDate:  day(1968, time.January, 1),
		EndDate:    day(1980, time.December, 31),
		Observance: followingTuesdayEveryFourYears,
	}
)

// Early-close rules shared by the US exchanges.
var (
	USBlackFridayInOrAfter1993 = Rule{
		Name:      "Black Friday",
		Month:     time.November,
		Day:       1,
		Offsets:   []offsets.Offset{nth(offsets.TH(4)), offsets.Days(1)},
		StartDate: day(1993, time.January, 1),
	}
	ChristmasEveBefore1993 = Rule{
		Name:       "Christmas Eve",
		Month:      time.December,
		Day:        24,
		EndDate:    day(1993, time.January, 1),
		DaysOfWeek: mondayToThursday,
	}
	ChristmasEveInOrAfter1993 = Rule{
		Name:       "Christmas Eve",
		Month:      time.December,
		Day:        24,
		StartDate:  day(1993, time.January, 1),
		DaysOfWeek: mondayToThursday,
	}
	MonTuesThursBeforeIndependenceDay = Rule{
		Name:       "Mondays, Tuesdays, and Thursdays Before Independence Day",
		Month:      time.July,
		Day:        3,
		StartDate:  day(1995, time.January, 1),
		DaysOfWeek: []time.Weekday{time.Monday, time.Tuesday, time.Thursday},
	}
	FridayAfterIndependenceDayPre2013 = Rule{
		Name:       "Fridays after Independence Day prior to 2013",
		Month:      time.July,
		Day:        5,
		StartDate:  day(1996, time.January, 1),
		EndDate:    day(2012, time.December, 31),
		DaysOfWeek: []time.Weekday{time.Friday},
	}
	WednesdayBeforeIndependenceDayPost2013 = Rule{
		Name:       "Wednesdays Before Independence Day including and after 2013",
		Month:      time.July,
		Day:        3,
		StartDate:  day(2013, time.January, 1),
		DaysOfWeek: []time.Weekday{time.Wednesday},
	}
)

// followingTuesdayEveryFourYears moves a November 2nd reference date to the
// next presidential election Tuesday.
func followingTuesdayEveryFourYears(t time.Time) (time.Time, bool) {
	o := offsets.DateOffset(offsets.RelativeDeltaOptions{
		Years:   (4 - t.Year()%4) % 4,
		Weekday: offsets.TU(1),
	})
	return o.Add(t), true
}

// Ad hoc closings shared by the US exchanges.
var (
	USNationalDaysOfMourning = dates(
		[3]int{1963, 11, 25}, // President John F. Kennedy
		[3]int{1968, 4, 9},   // Martin Luther King
		[3]int{1969, 3, 31},  // President Dwight D. Eisenhower
		[3]int{1972, 12, 28}, // President Harry S. Truman
		[3]int{1973, 1, 25},  // President Lyndon B. Johnson
		[3]int{1994, 4, 27},  // President Richard Nixon
		[3]int{2004, 6, 11},  // President Ronald W. Reagan
		[3]int{2007, 1, 2},   // President Gerald R. Ford
		[3]int{2018, 12, 5},  // President George H.W. Bush
	)
	September11Closings    = dates([3]int{2001, 9, 11}, [3]int{2001, 9, 12}, [3]int{2001, 9, 13}, [3]int{2001, 9, 14})
	HurricaneSandyClosings = dates([3]int{2012, 10, 29}, [3]int{2012, 10, 30})
)

// USFederalHolidayCalendarName is the registry name of the federal calendar.
const USFederalHolidayCalendarName = "USFederalHolidayCalendar"

// USFederalHolidayCalendar returns the observed US federal holidays.
func USFederalHolidayCalendar() (*Calendar, error) {
	return NewCalendar(USFederalHolidayCalendarName, []Rule{
		USNewYearsDay,
		USMartinLutherKingJrAfter1998,
		USPresidentsDay,
		USMemorialDay,
		USJuneteenthAfter2022,
		USIndependenceDay,
		USLaborDay,
		USColumbusDay,
		USVeteransDay,
		USThanksgivingDay,
		Christmas,
	})
}
