package market_hours

import (
	"fmt"
	"time"

	"github.com/aristath/marketcal/internal/frame"
	"github.com/aristath/marketcal/internal/holidays"
	"github.com/aristath/marketcal/internal/offsets"
	"github.com/rs/zerolog"
)

// NYSEName is the canonical name of the New York Stock Exchange calendar.
const NYSEName = "NYSE"

var nyseAliases = []string{"NYSE", "stock", "NASDAQ", "BATS", "DJIA", "DOW"}

// saturdayClose is the close of the Saturday sessions held until 1952.
var saturdayClose = tod(12, 0)

func nyseOptions() (Options, error) {
	regular, err := holidays.NYSEHolidayCalendar()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Name:     NYSEName,
		Location: newYork,
		RegularMarketTimes: map[MarketTimeType][]MarketTime{
			Pre:        single(At(4, 0)),
			MarketOpen: {At(10, 0), At(9, 30).Since(1985, time.January, 1)},
			MarketClose: {
				At(15, 0),
				At(15, 30).Since(1952, time.September, 29),
				At(16, 0).Since(1974, time.January, 16),
			},
			Post: single(At(20, 0)),
		},
		RegularHolidays: regular,
		AdhocHolidays:   holidays.NYSEAdhocHolidays(),
		Aliases:         nyseAliases,
		Weekmask:        offsets.MondayToFriday,
		SpecialOpens: []SpecialTime{
			special(11, 0, "NYSE 11am late opens",
				holidays.NYSEFire11amLateOpen1989, holidays.NYSESnow11amLateOpen1996),
			special(10, 30, "NYSE 10:30am late opens", holidays.NYSEComputer1030LateOpen1995),
			special(9, 31, "NYSE 9:31am late opens",
				holidays.NYSEConEdXformer931amLateOpen1990, holidays.NYSEEnduringFreedom931amLateOpen2001),
			special(9, 32, "NYSE 9:32am late opens",
				holidays.NYSEIraqiFreedom932amLateOpen2003,
				holidays.NYSEReaganMomentSilence932amLateOpen2004,
				holidays.NYSEFordMomentSilence932amLateOpen2006),
		},
		SpecialOpensAdhoc: []SpecialTimeAdhoc{
			adhoc(9, 31, holidays.NYSETroopsInGulf931LateOpens1991...),
			adhoc(11, 0, date(1933, time.March, 15)),
			adhoc(12, 0, date(1929, time.October, 31), date(1933, time.July, 24), date(1933, time.July, 25)),
		},
		SpecialCloses: []SpecialTime{
			special(13, 0, "NYSE 1pm early closes",
				holidays.MonTuesThursBeforeIndependenceDay,
				holidays.FridayAfterIndependenceDayPre2013,
				holidays.WednesdayBeforeIndependenceDayPost2013,
				holidays.NYSEDayAfterThanksgiving1pmEarlyClose,
				holidays.NYSEChristmasEve1pmEarlyClose),
			special(15, 30, "NYSE 3:30pm early closes", holidays.NYSECircuitBreaker330pmEarlyClose1997),
			special(15, 56, "NYSE 3:56pm early closes", holidays.NYSESystemProb356pmEarlyClose2005),
		},
		SpecialClosesAdhoc: []SpecialTimeAdhoc{
			adhoc(13, 0, holidays.NYSE1pmEarlyCloseAdhoc...),
		},
	}, nil
}

// NewNYSE builds the NYSE calendar. Before 1952-09-29 the exchange also
// traded on Saturdays, closing at noon.
func NewNYSE(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	opts, err := nyseOptions()
	if err != nil {
		return nil, err
	}
	c, err := New(opts, openTime, closeTime, log)
	if err != nil {
		return nil, err
	}

	saturdayEra := offsets.CustomBusinessDays(1, offsets.CustomBusinessDayOptions{
		Weekmask: offsets.MondayToSaturday,
		Holidays: opts.AdhocHolidays,
		Calendar: opts.RegularHolidays,
	})
	c.validDaysFn = func(cal *MarketCalendar, start, end time.Time) (frame.Index, error) {
		return nyseValidDays(cal.businessDay, saturdayEra, start, end)
	}
	c.adjustFn = nyseSaturdayCloses
	c.htfGuard = func(start time.Time) error {
		if !dateOf(start).After(holidays.NYSESaturdayEnd) {
			return fmt.Errorf("date_range_htf %w for dates before 1952", ErrNotImplemented)
		}
		return nil
	}
	return c, nil
}

func nyseValidDays(modern, saturdayEra offsets.CustomBusinessDay, start, end time.Time) (frame.Index, error) {
	s, e := dateOf(start), dateOf(end)
	if !s.Before(holidays.NYSESaturdayEnd) {
		return businessDays(modern, s, e)
	}
	preEnd := e
	if !preEnd.Before(holidays.NYSESaturdayEnd) {
		preEnd = holidays.NYSESaturdayEnd.AddDate(0, 0, -1)
	}
	pre, err := businessDays(saturdayEra, s, preEnd)
	if err != nil {
		return nil, err
	}
	if e.Before(holidays.NYSESaturdayEnd) {
		return pre, nil
	}
	post, err := businessDays(modern, holidays.NYSESaturdayEnd, e)
	if err != nil {
		return nil, err
	}
	return pre.Union(post), nil
}

func nyseSaturdayCloses(c *MarketCalendar, typ MarketTimeType, days frame.Index, out []time.Time) {
	if typ != MarketClose || c.IsCustom(MarketClose) {
		return
	}
	for i, d := range days {
		if d.Weekday() == time.Saturday && !out[i].IsZero() {
			out[i] = c.atWallClock(d, saturdayClose, 0)
		}
	}
}
