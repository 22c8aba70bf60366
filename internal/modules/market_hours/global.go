package market_hours

import (
	"time"

	"github.com/aristath/marketcal/internal/holidays"
	"github.com/aristath/marketcal/internal/offsets"
	"github.com/rs/zerolog"
)

// NewICE builds the ICE US futures calendar.
func NewICE(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := holidays.NewCalendar("ICE holidays",
		[]holidays.Rule{holidays.USNewYearsDay, holidays.GoodFriday, holidays.Christmas}, since1900)
	if err != nil {
		return nil, err
	}
	return New(Options{
		Name:     "ICE",
		Location: newYork,
		RegularMarketTimes: map[MarketTimeType][]MarketTime{
			MarketOpen:  single(dayBefore(20, 1)),
			MarketClose: single(At(18, 0)),
		},
		RegularHolidays: regular,
		// Only the first day of Hurricane Sandy closed ICE.
		AdhocHolidays: chain(holidays.USNationalDaysOfMourning, []time.Time{date(2012, time.October, 29)}),
		Aliases:       []string{"ICE", "ICEUS", "NYFE"},
		Weekmask:      offsets.MondayToFriday,
		SpecialCloses: []SpecialTime{
			special(13, 0, "ICE early closes",
				holidays.USMartinLutherKingJrAfter1998,
				holidays.USPresidentsDay,
				holidays.USMemorialDay,
				holidays.USIndependenceDay,
				holidays.USLaborDay,
				holidays.USThanksgivingDay),
		},
	}, openTime, closeTime, log)
}

// NewFX builds the spot currency calendar: the week opens Sunday 17:00 New
// York time and closes Friday 17:00.
func NewFX(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := holidays.NewCalendar("FX holidays", []holidays.Rule{holidays.Christmas, holidays.USNewYearsDay})
	if err != nil {
		return nil, err
	}
	return New(Options{
		Name:     "FX",
		Location: newYork,
		RegularMarketTimes: map[MarketTimeType][]MarketTime{
			MarketOpen:  single(dayBefore(17, 0)),
			MarketClose: single(At(17, 0)),
		},
		RegularHolidays: regular,
		Aliases:         []string{"FX", "Forex", "FX_Market", "Currency"},
		Weekmask:        offsets.MondayToFriday,
	}, openTime, closeTime, log)
}

// NewCrypto builds the around-the-clock cryptocurrency calendar. Every day is
// one session from midnight to midnight UTC.
func NewCrypto(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	return New(Options{
		Name:     "Crypto",
		Location: time.UTC,
		RegularMarketTimes: map[MarketTimeType][]MarketTime{
			MarketOpen:  single(At(0, 0)),
			MarketClose: single(At(0, 0).WithDayOffset(1)),
		},
		Aliases:  []string{"Crypto", "Cryptocurrency", "Digital_Assets", "Bitcoin", "BTC"},
		Weekmask: offsets.EveryDay,
	}, openTime, closeTime, log)
}
