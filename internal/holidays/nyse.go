package holidays

import (
	"time"

	"github.com/aristath/marketcal/internal/offsets"
)

// NYSESaturdayEnd is the first day without Saturday trading on the NYSE.
var NYSESaturdayEnd = day(1952, time.September, 29)

// NYSEStartDate is the first day covered by the NYSE calendar.
var NYSEStartDate = day(1885, time.January, 1)

// NYSE regular holidays, split into the eras their observance changed.
var (
	NYSENewYearsDayPost1952 = Rule{
		Name:       "New Years Day",
		Month:      time.January,
		Day:        1,
		StartDate:  NYSESaturdayEnd,
		Observance: SundayToMonday,
		DaysOfWeek: Weekdays,
	}
	NYSENewYearsDayPre1952 = Rule{
		Name:       "New Years Day Before Saturday Trading Ceased",
		Month:      time.January,
		Day:        1,
		EndDate:    day(1952, time.September, 28),
		Observance: SundayToMonday,
		DaysOfWeek: WeekdaysAndSaturday,
	}
	NYSEMartinLutherKingJrAfter1998 = Rule{
		Name:       "Dr. Martin Luther King Jr. Day",
		Month:      time.January,
		Day:        1,
		Offsets:    []offsets.Offset{nth(offsets.MO(3))},
		StartDate:  day(1998, time.January, 1),
		DaysOfWeek: Weekdays,
	}
	NYSEPresidentsDay = Rule{
		Name:       "President's Day",
		Month:      time.February,
		Day:        1,
		Offsets:    []offsets.Offset{nth(offsets.MO(3))},
		StartDate:  day(1971, time.January, 1),
		DaysOfWeek: Weekdays,
	}
	NYSEWashingtonsBirthDayBefore1952 = Rule{
		Name:       "Washington's Birthday",
		Month:      time.February,
		Day:        22,
		EndDate:    day(1952, time.September, 28),
		Observance: SundayToMonday,
		DaysOfWeek: WeekdaysAndSaturday,
	}
	NYSEWashingtonsBirthDay1952to1963 = Rule{
		Name:       "Washington's Birthday 1952 to 1963",
		Month:      time.February,
		Day:        22,
		StartDate:  NYSESaturdayEnd,
		EndDate:    day(1963, time.December, 31),
		Observance: SundayToMonday,
		DaysOfWeek: Weekdays,
	}
	NYSEWashingtonsBirthDay1964to1970 = Rule{
		Name:       "Washington's Birthday 1964 to 1970",
		Month:      time.February,
		Day:        22,
		StartDate:  day(1964, time.January, 1),
		EndDate:    day(1970, time.December, 31),
		Observance: NearestWorkday,
	}
	NYSELincolnsBirthDayBefore1954 = Rule{
		Name:       "Lincoln's Birthday",
		Month:      time.February,
		Day:        12,
		StartDate:  day(1896, time.January, 1),
		EndDate:    day(1953, time.December, 31),
		Observance: SundayToMonday,
	}
	NYSEGoodFridayPre1898 = Rule{
		Name:      "Good Friday Before 1898",
		Month:     time.January,
		Day:       1,
		Offsets:   GoodFridayOffsets(),
		StartDate: NYSEStartDate,
		EndDate:   day(1897, time.December, 31),
	}
	NYSEGoodFriday1899to1905 = Rule{
		Name:      "Good Friday 1899 to 1905",
		Month:     time.January,
		Day:       1,
		Offsets:   GoodFridayOffsets(),
		StartDate: day(1899, time.January, 1),
		EndDate:   day(1905, time.December, 31),
	}
	NYSEMemorialDay = Rule{
		Name:       "Memorial Day",
		Month:      time.May,
		Day:        25,
		Offsets:    []offsets.Offset{nth(offsets.MO(1))},
		StartDate:  day(1971, time.January, 1),
		DaysOfWeek: Weekdays,
	}
	NYSEMemorialDayBefore1952 = Rule{
		Name:       "Memorial Day Before 1952",
		Month:      time.May,
		Day:        30,
		EndDate:    day(1952, time.September, 28),
		Observance: SundayToMonday,
		DaysOfWeek: WeekdaysAndSaturday,
	}
	NYSEMemorialDay1952to1964 = Rule{
		Name:       "Memorial Day 1952 to 1964",
		Month:      time.May,
		Day:        30,
		StartDate:  NYSESaturdayEnd,
		EndDate:    day(1963, time.December, 31),
		Observance: SundayToMonday,
		DaysOfWeek: Weekdays,
	}
	NYSEMemorialDay1964to1969 = Rule{
		Name:       "Memorial Day 1964 to 1969",
		Month:      time.May,
		Day:        30,
		StartDate:  day(1964, time.January, 1),
		EndDate:    day(1969, time.December, 31),
		Observance: NearestWorkday,
	}
	NYSEIndependenceDay = Rule{
		Name:       "Independence Day",
		Month:      time.July,
		Day:        4,
		StartDate:  day(1954, time.January, 1),
		Observance: NearestWorkday,
		DaysOfWeek: Weekdays,
	}
	NYSEIndependenceDayPre1952 = Rule{
		Name:       "Independence Day Before 1952",
		Month:      time.July,
		Day:        4,
		EndDate:    day(1952, time.September, 28),
		Observance: SundayToMonday,
		DaysOfWeek: WeekdaysAndSaturday,
	}
	NYSEIndependenceDay1952to1954 = Rule{
		Name:       "Independence Day 1952 to 1954",
		Month:      time.July,
		Day:        4,
		StartDate:  NYSESaturdayEnd,
		EndDate:    day(1953, time.December, 31),
		Observance: SundayToMonday,
		DaysOfWeek: Weekdays,
	}
	NYSEColumbusDayBefore1954 = Rule{
		Name:       "Columbus Day",
		Month:      time.October,
		Day:        12,
		StartDate:  day(1909, time.January, 1),
		EndDate:    day(1953, time.December, 31),
		Observance: SundayToMonday,
	}
	NYSEElectionDay1848to1967 = Rule{
		Name:      "Election Day",
		Month:     time.November,
		Day:       2,
		Offsets:   []offsets.Offset{nth(offsets.TU(1))},
		StartDate: day(1848, time.January, 1),
		EndDate:   day(1967, time.December, 31),
	}
	NYSEVeteransDay1934to1953 = Rule{
		Name:       "Veteran Day",
		Month:      time.November,
		Day:        11,
		StartDate:  day(1934, time.January, 1),
		EndDate:    day(1953, time.December, 31),
		Observance: SundayToMonday,
	}
	NYSEThanksgivingDayBefore1939 = Rule{
		Name:      "Thanksgiving Before 1939",
		Month:     time.November,
		Day:       30,
		Offsets:   []offsets.Offset{nth(offsets.TH(-1))},
		StartDate: day(1864, time.January, 1),
		EndDate:   day(1938, time.December, 31),
	}
	NYSEThanksgivingDay1939to1941 = Rule{
		Name:      "Thanksgiving 1939 to 1941",
		Month:     time.November,
		Day:       30,
		Offsets:   []offsets.Offset{nth(offsets.TH(-2))},
		StartDate: day(1939, time.January, 1),
		EndDate:   day(1941, time.December, 31),
	}
	NYSEChristmas = Rule{
		Name:       "Christmas",
		Month:      time.December,
		Day:        25,
		StartDate:  day(1954, time.January, 1),
		Observance: NearestWorkday,
	}
	NYSEChristmasBefore1954 = Rule{
		Name:       "Christmas Before 1954",
		Month:      time.December,
		Day:        25,
		EndDate:    day(1953, time.December, 31),
		Observance: SundayToMonday,
	}
)

// NYSE early-close rules.
var (
	NYSEDayAfterThanksgiving1pmEarlyClose = Rule{
		Name:      "Black Friday",
		Month:     time.November,
		Day:       1,
		Offsets:   []offsets.Offset{nth(offsets.TH(4)), offsets.Days(1)},
		StartDate: day(1993, time.January, 1),
	}
	NYSEChristmasEve1pmEarlyClose = Rule{
		Name:       "Mondays, Tuesdays, Wednesdays, and Thursdays Before Christmas",
		Month:      time.December,
		Day:        24,
		StartDate:  day(1999, time.January, 1),
		DaysOfWeek: mondayToThursday,
	}
)

// NYSE ad hoc full-day closings since the end of Saturday trading.
var (
	NYSEElectionDay1968to1980Adhoc = dates(
		[3]int{1968, 11, 5}, [3]int{1972, 11, 7}, [3]int{1976, 11, 2}, [3]int{1980, 11, 4},
	)
	NYSEPaperworkCrisis1968 = dates(
		[3]int{1968, 6, 12}, [3]int{1968, 6, 19}, [3]int{1968, 6, 26}, [3]int{1968, 7, 10},
		[3]int{1968, 7, 17}, [3]int{1968, 7, 24}, [3]int{1968, 7, 31}, [3]int{1968, 8, 7},
		[3]int{1968, 8, 14}, [3]int{1968, 8, 21}, [3]int{1968, 8, 28}, [3]int{1968, 9, 11},
		[3]int{1968, 9, 18}, [3]int{1968, 9, 25}, [3]int{1968, 10, 2}, [3]int{1968, 10, 9},
		[3]int{1968, 10, 16}, [3]int{1968, 10, 23}, [3]int{1968, 10, 30}, [3]int{1968, 11, 11},
		[3]int{1968, 11, 20}, [3]int{1968, 12, 4}, [3]int{1968, 12, 11}, [3]int{1968, 12, 18},
		[3]int{1968, 12, 25},
	)
	NYSEIrregularClosings = dates(
		[3]int{1956, 12, 24}, // Christmas Eve
		[3]int{1958, 12, 26}, // Day after Christmas
		[3]int{1961, 5, 29},  // Day before Decoration Day
		[3]int{1968, 2, 12},  // Lincoln's Birthday
		[3]int{1968, 7, 5},   // Day after Independence Day
		[3]int{1969, 2, 10},  // Snow
		[3]int{1969, 7, 21},  // First lunar landing
		[3]int{1977, 7, 14},  // New York City blackout
		[3]int{1985, 9, 27},  // Hurricane Gloria
		[3]int{2025, 1, 9},   // President Jimmy Carter
	)
	// NYSE1pmEarlyCloseAdhoc lists one-off 1pm closes.
	NYSE1pmEarlyCloseAdhoc = dates(
		[3]int{1997, 7, 3}, [3]int{1997, 12, 24}, [3]int{1997, 12, 26},
		[3]int{1998, 12, 24}, [3]int{2003, 12, 26}, [3]int{2013, 7, 3},
	)
	// NYSETroopsInGulf931LateOpens1991 lists the 9:31am late opens of 1991.
	NYSETroopsInGulf931LateOpens1991 = dates([3]int{1991, 1, 17}, [3]int{1991, 2, 25})
)

func pinned(name string, y int, m time.Month, d int) Rule {
	on := day(y, m, d)
	return Rule{Name: name, Month: m, Day: d, StartDate: on, EndDate: on}
}

// One-day NYSE schedule changes.
var (
	NYSECircuitBreaker330pmEarlyClose1997 = pinned("Circuit Breaker Triggered 3:30pm Early Close", 1997, time.October, 27)
	NYSESystemProb356pmEarlyClose2005     = pinned("System Communication Problem 3:56pm Early Close", 2005, time.June, 1)

	NYSEFire11amLateOpen1989                 = pinned("Electrical Fire 11am Late Open", 1989, time.November, 10)
	NYSESnow11amLateOpen1996                 = pinned("Snowstorm 11am Late Open", 1996, time.January, 8)
	NYSEComputer1030LateOpen1995             = pinned("Computer System Troubles 10:30am Late Open", 1995, time.December, 18)
	NYSEConEdXformer931amLateOpen1990        = pinned("Con Edison Transformer Explosion 9:31am Late Open", 1990, time.December, 27)
	NYSEEnduringFreedom931amLateOpen2001     = pinned("Moment of Silence for Operation Enduring Freedom", 2001, time.October, 8)
	NYSEIraqiFreedom932amLateOpen2003        = pinned("Moment of Silence for Operation Iraqi Freedom", 2003, time.March, 20)
	NYSEReaganMomentSilence932amLateOpen2004 = pinned("Moment of Silence for Former President Ronald Reagan", 2004, time.June, 7)
	NYSEFordMomentSilence932amLateOpen2006   = pinned("Moment of Silence for Former President Gerald Ford", 2006, time.December, 27)
)

// NYSEAdhocHolidays returns every NYSE ad hoc closing.
func NYSEAdhocHolidays() []time.Time {
	var out []time.Time
	for _, set := range [][]time.Time{
		NYSEElectionDay1968to1980Adhoc,
		NYSEPaperworkCrisis1968,
		NYSEIrregularClosings,
		USNationalDaysOfMourning,
		September11Closings,
		HurricaneSandyClosings,
	} {
		out = append(out, set...)
	}
	return out
}

// NYSERegularHolidays is the NYSE rule set.
func NYSERegularHolidays() []Rule {
	return []Rule{
		NYSENewYearsDayPost1952,
		NYSENewYearsDayPre1952,
		NYSEMartinLutherKingJrAfter1998,
		NYSEPresidentsDay,
		NYSEWashingtonsBirthDayBefore1952,
		NYSEWashingtonsBirthDay1952to1963,
		NYSEWashingtonsBirthDay1964to1970,
		NYSELincolnsBirthDayBefore1954,
		GoodFriday,
		NYSEGoodFridayPre1898,
		NYSEGoodFriday1899to1905,
		NYSEMemorialDay,
		NYSEMemorialDayBefore1952,
		NYSEMemorialDay1952to1964,
		NYSEMemorialDay1964to1969,
		NYSEIndependenceDay,
		NYSEIndependenceDayPre1952,
		NYSEIndependenceDay1952to1954,
		USLaborDay,
		NYSEColumbusDayBefore1954,
		NYSEElectionDay1848to1967,
		NYSEVeteransDay1934to1953,
		USThanksgivingDay,
		NYSEThanksgivingDayBefore1939,
		NYSEThanksgivingDay1939to1941,
		NYSEChristmas,
		NYSEChristmasBefore1954,
		USJuneteenthAfter2022,
	}
}

// NYSEHolidayCalendarName is the registry name of the NYSE calendar.
const NYSEHolidayCalendarName = "NYSEHolidayCalendar"

// NYSEHolidayCalendar returns the NYSE regular holidays from 1885.
func NYSEHolidayCalendar() (*Calendar, error) {
	return NewCalendar(NYSEHolidayCalendarName, NYSERegularHolidays(), WithWindow(NYSEStartDate, DefaultWindowEnd))
}
