package holidays

import (
	"time"

	"github.com/aristath/marketcal/internal/offsets"
)

func goodFridayRule(start, end time.Time) Rule {
	return Rule{Name: "Good Friday", Month: time.January, Day: 1, Offsets: GoodFridayOffsets(), StartDate: start, EndDate: end}
}

func yearEnd(y int) time.Time { return day(y, time.December, 31) }

func yearStart(y int) time.Time { return day(y, time.January, 1) }

func monthOffsets(wds ...*offsets.NthWeekday) []offsets.Offset {
	out := make([]offsets.Offset, len(wds))
	for i, wd := range wds {
		out[i] = nth(wd)
	}
	return out
}

// previousWorkdayIfJuly4thIsTueToFri observes July 3rd when Independence Day
// falls Tuesday to Friday, and drops the year otherwise.
func previousWorkdayIfJuly4thIsTueToFri(t time.Time) (time.Time, bool) {
	july4 := time.Date(t.Year(), time.July, 4, 0, 0, 0, 0, t.Location())
	switch july4.Weekday() {
	case time.Tuesday, time.Wednesday, time.Thursday, time.Friday:
		return days(july4, -1), true
	}
	return time.Time{}, false
}

// fridayAfterFourthThursday maps November 1st to the day after Thanksgiving.
func fridayAfterFourthThursday(t time.Time) (time.Time, bool) {
	toThursday := (int(time.Thursday) - int(t.Weekday()) + 7) % 7
	return days(t, toThursday+22), true
}

func goodFridayUnlessYears(skip ...int) Observance {
	return func(t time.Time) (time.Time, bool) {
		for _, y := range skip {
			if t.Year() == y {
				return time.Time{}, false
			}
		}
		d := t
		for _, o := range GoodFridayOffsets() {
			d = o.Add(d)
		}
		return d, true
	}
}

// CME futures holiday and early-close rules, split at the dates the exchange
// changed its holiday schedules.
var (
	CMEMartinLutherKingJrAfter1998Before2022 = Rule{
		Name: "Dr. Martin Luther King Jr. Day", Month: time.January, Day: 1,
		Offsets: monthOffsets(offsets.MO(3)), StartDate: yearStart(1998), EndDate: yearEnd(2021),
	}
	CMEMartinLutherKingJrAfter1998Before2015 = Rule{
		Name: "Dr. Martin Luther King Jr. Day", Month: time.January, Day: 1,
		Offsets: monthOffsets(offsets.MO(3)), StartDate: yearStart(1998), EndDate: yearEnd(2014),
	}
	CMEMartinLutherKingJrAfter2015 = Rule{
		Name: "Dr. Martin Luther King Jr. Day", Month: time.January, Day: 1,
		Offsets: monthOffsets(offsets.MO(3)), StartDate: yearStart(2015),
	}
	CMEMartinLutherKingJrBefore2016FridayBefore = Rule{
		Name: "Dr. Martin Luther King Jr. Day", Month: time.January, Day: 1,
		Offsets: monthOffsets(offsets.MO(3), offsets.FR(-1)), StartDate: yearStart(1998), EndDate: yearEnd(2015),
	}

	CMEPresidentsDayBefore2022 = Rule{
		Name: "President's Day", Month: time.February, Day: 1,
		Offsets: monthOffsets(offsets.MO(3)), StartDate: yearStart(1971), EndDate: yearEnd(2021),
	}
	CMEPresidentsDayBefore2015 = Rule{
		Name: "President's Day", Month: time.February, Day: 1,
		Offsets: monthOffsets(offsets.MO(3)), StartDate: yearStart(1971), EndDate: yearEnd(2014),
	}
	CMEPresidentsDayAfter2015 = Rule{
		Name: "President's Day", Month: time.February, Day: 1,
		Offsets: monthOffsets(offsets.MO(3)), StartDate: yearStart(2015),
	}
	CMEPresidentsDayBefore2016FridayBefore = Rule{
		Name: "President's Day", Month: time.February, Day: 1,
		Offsets: monthOffsets(offsets.MO(3), offsets.FR(-1)), StartDate: yearStart(1971), EndDate: yearEnd(2015),
	}

	CMEGoodFridayBefore2021 = goodFridayRule(time.Time{}, yearEnd(2020))
	// CMEGoodFridayBefore2021NotEarlyClose skips the years the exchange
	// opened with an early close instead.
	CMEGoodFridayBefore2021NotEarlyClose = Rule{
		Name: "Good Friday", Month: time.January, Day: 1,
		EndDate: yearEnd(2020), Observance: goodFridayUnlessYears(2010, 2012, 2015),
	}
	CMEGoodFriday2009 = Rule{
		Name: "Good Friday", Month: time.January, Day: 1,
		Offsets: []offsets.Offset{offsets.EasterOffset(1), offsets.Days(-3)}, StartDate: yearStart(2009), EndDate: yearEnd(2009),
	}
	CMEGoodFriday2010      = goodFridayRule(yearStart(2010), yearEnd(2010))
	CMEGoodFriday2012      = goodFridayRule(yearStart(2012), yearEnd(2012))
	CMEGoodFriday2015      = goodFridayRule(yearStart(2015), yearEnd(2015))
	CMEGoodFriday2021      = goodFridayRule(yearStart(2021), yearEnd(2021))
	CMEGoodFridayAfter2021 = goodFridayRule(yearStart(2022), time.Time{})
	CMEGoodFriday2022      = goodFridayRule(yearStart(2022), yearEnd(2022))
	CMEGoodFridayAfter2022 = goodFridayRule(yearStart(2023), time.Time{})

	CMEMemorialDay2021AndPrior = Rule{
		Name: "Memorial Day", Month: time.May, Day: 25,
		Offsets: monthOffsets(offsets.MO(1)), StartDate: yearStart(1971), EndDate: yearEnd(2021),
	}
	CMEMemorialDay2013AndPrior = Rule{
		Name: "Memorial Day", Month: time.May, Day: 25,
		Offsets: monthOffsets(offsets.MO(1)), StartDate: yearStart(1971), EndDate: yearEnd(2013),
	}
	CMEMemorialDayAfter2013 = Rule{
		Name: "Memorial Day", Month: time.May, Day: 25,
		Offsets: monthOffsets(offsets.MO(1)), StartDate: yearStart(2014),
	}
	CMEMemorialDay2015AndPriorFridayBefore = Rule{
		Name: "Memorial Day", Month: time.May, Day: 25,
		Offsets: monthOffsets(offsets.MO(1), offsets.FR(-1)), StartDate: yearStart(1971), EndDate: yearEnd(2015),
	}

	CMEIndependenceDayBefore2022 = Rule{
		Name: "July 4th", Month: time.July, Day: 4,
		StartDate: yearStart(1954), EndDate: yearEnd(2021), Observance: NearestWorkday,
	}
	CMEIndependenceDayBefore2014 = Rule{
		Name: "July 4th", Month: time.July, Day: 4,
		StartDate: yearStart(1954), EndDate: yearEnd(2013), Observance: NearestWorkday,
	}
	CMEIndependenceDayAfter2014 = Rule{
		Name: "July 4th", Month: time.July, Day: 4,
		StartDate: yearStart(2014), Observance: NearestWorkday,
	}
	CMEIndependenceDayBefore2022PreviousDay = Rule{
		Name: "July 4th", Month: time.July, Day: 4,
		StartDate: yearStart(1954), Observance: previousWorkdayIfJuly4thIsTueToFri,
	}

	CMELaborDayBefore2022 = Rule{
		Name: "Labor Day", Month: time.September, Day: 1,
		Offsets: monthOffsets(offsets.MO(1)), StartDate: yearStart(1887), EndDate: yearEnd(2021),
	}
	CMELaborDayBefore2014 = Rule{
		Name: "Labor Day", Month: time.September, Day: 1,
		Offsets: monthOffsets(offsets.MO(1)), StartDate: yearStart(1887), EndDate: yearEnd(2013),
	}
	CMELaborDayBefore2015FridayBefore = Rule{
		Name: "Labor Day", Month: time.September, Day: 1,
		Offsets: monthOffsets(offsets.MO(1), offsets.FR(-1)), StartDate: yearStart(1887), EndDate: yearEnd(2014),
	}
	CMELaborDayAfter2014 = Rule{
		Name: "Labor Day", Month: time.September, Day: 1,
		Offsets: monthOffsets(offsets.MO(1)), StartDate: yearStart(2014),
	}

	CMEThanksgivingBefore2022 = Rule{
		Name: "ThanksgivingFriday", Month: time.November, Day: 1,
		Offsets: monthOffsets(offsets.TH(4)), StartDate: yearStart(1942), EndDate: yearEnd(2021),
	}
	CMEThanksgivingBefore2014 = Rule{
		Name: "ThanksgivingFriday", Month: time.November, Day: 1,
		Offsets: monthOffsets(offsets.TH(4)), StartDate: yearStart(1942), EndDate: yearEnd(2013),
	}
	CMEThanksgivingAfter2014 = Rule{
		Name: "ThanksgivingFriday", Month: time.November, Day: 1,
		Offsets: monthOffsets(offsets.TH(4)), StartDate: yearStart(2014),
	}
	CMEThanksgivingFriday = Rule{
		Name: "ThanksgivingFriday", Month: time.November, Day: 1,
		StartDate: yearStart(1942), Observance: fridayAfterFourthThursday,
	}
	CMEThanksgivingFriday2022AndAfter = Rule{
		Name: "ThanksgivingFriday", Month: time.November, Day: 1,
		StartDate: yearStart(2022), Observance: fridayAfterFourthThursday,
	}
)

// CME Globex rules. The Pre2022 variants carry early closes on the old
// schedule; the From2022 variants the halts that replaced them.
var (
	GlobexNewYearsDay = Rule{
		Name: "New Years Day", Month: time.January, Day: 1,
		StartDate: NYSESaturdayEnd, DaysOfWeek: Weekdays,
	}
	GlobexMartinLutherKingJrFrom2022 = Rule{
		Name: "Dr. Martin Luther King Jr. Day", Month: time.January, Day: 1,
		Offsets: monthOffsets(offsets.MO(3)), StartDate: yearStart(2022), DaysOfWeek: Weekdays,
	}
	GlobexMartinLutherKingJrPre2022 = Rule{
		Name: "Dr. Martin Luther King Jr. Day", Month: time.January, Day: 1,
		Offsets: monthOffsets(offsets.MO(3)), StartDate: yearStart(1998), EndDate: yearEnd(2021),
	}
	GlobexPresidentsDayFrom2022 = Rule{
		Name: "President's Day", Month: time.February, Day: 1,
		Offsets: monthOffsets(offsets.MO(3)), StartDate: yearStart(2022),
	}
	GlobexPresidentsDayPre2022 = Rule{
		Name: "President's Day", Month: time.February, Day: 1,
		Offsets: monthOffsets(offsets.MO(3)), EndDate: yearEnd(2021),
	}
	GlobexMemorialDayFrom2022 = Rule{
		Name: "Memorial Day", Month: time.May, Day: 25,
		Offsets: monthOffsets(offsets.MO(1)), StartDate: yearStart(2022),
	}
	GlobexMemorialDayPre2022 = Rule{
		Name: "Memorial Day", Month: time.May, Day: 25,
		Offsets: monthOffsets(offsets.MO(1)), EndDate: yearEnd(2021),
	}
	GlobexJuneteenthFrom2022 = Rule{
		Name: "Juneteenth Starting at 2022", Month: time.June, Day: 19,
		StartDate: day(2022, time.June, 19), Observance: NearestWorkday,
	}
	GlobexIndependenceDayFrom2022 = Rule{
		Name: "July 4th", Month: time.July, Day: 4,
		StartDate: yearStart(2022), Observance: NearestWorkday,
	}
	GlobexIndependenceDayPre2022 = Rule{
		Name: "July 4th", Month: time.July, Day: 4,
		EndDate: yearEnd(2021), Observance: NearestWorkday,
	}
	GlobexLaborDayFrom2022 = Rule{
		Name: "Labor Day", Month: time.September, Day: 1,
		Offsets: monthOffsets(offsets.MO(1)), StartDate: yearStart(2022),
	}
	GlobexLaborDayPre2022 = Rule{
		Name: "Labor Day", Month: time.September, Day: 1,
		Offsets: monthOffsets(offsets.MO(1)), EndDate: yearEnd(2021),
	}
	GlobexThanksgivingDayFrom2022 = Rule{
		Name: "Thanksgiving", Month: time.November, Day: 1,
		Offsets: monthOffsets(offsets.TH(4)), StartDate: yearStart(2022),
	}
	GlobexThanksgivingDayPre2022 = Rule{
		Name: "Thanksgiving", Month: time.November, Day: 1,
		Offsets: monthOffsets(offsets.TH(4)), EndDate: yearEnd(2021),
	}
	GlobexFridayAfterThanksgiving = Rule{
		Name: "Friday after Thanksgiving", Month: time.November, Day: 1,
		Offsets: []offsets.Offset{nth(offsets.TH(4)), offsets.Days(1)},
	}
	GlobexThanksgivingFridayFrom2021 = Rule{
		Name: "Thanksgiving Friday", Month: time.November, Day: 1,
		Offsets: []offsets.Offset{nth(offsets.TH(4)), offsets.Days(1)}, StartDate: yearStart(2021),
	}
	GlobexThanksgivingFridayPre2021 = Rule{
		Name: "Thanksgiving Friday", Month: time.November, Day: 1,
		Offsets: []offsets.Offset{nth(offsets.TH(4)), offsets.Days(1)}, EndDate: yearEnd(2020),
	}
	ChristmasCME = Rule{
		Name: "Christmas", Month: time.December, Day: 25,
		StartDate: yearStart(1999), Observance: NearestWorkday,
	}
)

// BondsGoodFridayClosed lists the Good Fridays on which CME interest rate
// futures did not trade.
var BondsGoodFridayClosed = dates(
	[3]int{1970, 3, 27}, [3]int{1971, 4, 9}, [3]int{1972, 3, 31}, [3]int{1973, 4, 20},
	[3]int{1974, 4, 12}, [3]int{1975, 3, 28}, [3]int{1976, 4, 16}, [3]int{1977, 4, 8},
	[3]int{1978, 3, 24}, [3]int{1979, 4, 13}, [3]int{1981, 4, 17}, [3]int{1982, 4, 9},
	[3]int{1984, 4, 20}, [3]int{1986, 3, 28}, [3]int{1987, 4, 17}, [3]int{1989, 3, 24},
	[3]int{1990, 4, 13}, [3]int{1991, 3, 29}, [3]int{1992, 4, 17}, [3]int{1993, 4, 9},
	[3]int{1995, 4, 14}, [3]int{1997, 3, 28}, [3]int{1998, 4, 10}, [3]int{2000, 4, 21},
	[3]int{2001, 4, 13}, [3]int{2002, 3, 29}, [3]int{2003, 4, 18}, [3]int{2004, 4, 9},
	[3]int{2005, 3, 25}, [3]int{2006, 4, 14}, [3]int{2008, 3, 21}, [3]int{2009, 4, 10},
	[3]int{2011, 4, 22}, [3]int{2013, 3, 29}, [3]int{2014, 4, 18}, [3]int{2016, 3, 25},
	[3]int{2017, 4, 14}, [3]int{2018, 3, 30}, [3]int{2019, 4, 19}, [3]int{2020, 4, 10},
	[3]int{2022, 4, 15}, [3]int{2024, 3, 29}, [3]int{2025, 4, 18},
)

// BondsGoodFridayOpen lists the Good Fridays with a shortened bond session.
var BondsGoodFridayOpen = dates(
	[3]int{1980, 4, 4}, [3]int{1983, 4, 1}, [3]int{1985, 4, 5}, [3]int{1988, 4, 1},
	[3]int{1994, 4, 1}, [3]int{1996, 4, 5}, [3]int{1999, 4, 2}, [3]int{2007, 4, 6},
	[3]int{2010, 4, 2}, [3]int{2012, 4, 6}, [3]int{2015, 4, 3}, [3]int{2021, 4, 2},
	[3]int{2023, 4, 7},
)

// CMEHolidayCalendarName is the registry name of the CME Globex base calendar.
const CMEHolidayCalendarName = "CMEHolidayCalendar"

// CMEHolidayCalendar returns the full-day closures shared by every CME
// Globex product.
func CMEHolidayCalendar() (*Calendar, error) {
	return NewCalendar(CMEHolidayCalendarName, []Rule{USNewYearsDay, GoodFriday, Christmas})
}
