package market_hours

import (
	"github.com/aristath/marketcal/internal/holidays"
	"github.com/aristath/marketcal/internal/offsets"
	"github.com/rs/zerolog"
)

// NewCMEEquity builds the CME equity futures pit calendar.
func NewCMEEquity(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := holidays.NewCalendar("CME_Equity holidays",
		[]holidays.Rule{holidays.USNewYearsDay, holidays.GoodFriday, holidays.Christmas})
	if err != nil {
		return nil, err
	}
	return New(Options{
		Name:     "CME_Equity",
		Location: chicago,
		RegularMarketTimes: map[MarketTimeType][]MarketTime{
			MarketOpen:  single(dayBefore(17, 0)),
			MarketClose: single(At(16, 0)),
			BreakStart:  single(At(15, 15)),
			BreakEnd:    single(At(15, 30)),
		},
		RegularHolidays: regular,
		AdhocHolidays:   holidays.USNationalDaysOfMourning,
		Aliases:         []string{"CME_Equity", "CBOT_Equity"},
		Weekmask:        offsets.MondayToFriday,
		SpecialCloses: []SpecialTime{
			special(12, 0, "CME_Equity noon closes",
				holidays.USMartinLutherKingJrAfter1998,
				holidays.USPresidentsDay,
				holidays.USMemorialDay,
				holidays.USLaborDay,
				holidays.USJuneteenthAfter2022,
				holidays.USIndependenceDay,
				holidays.USThanksgivingDay,
				holidays.USBlackFridayInOrAfter1993,
				holidays.ChristmasEveBefore1993,
				holidays.ChristmasEveInOrAfter1993),
		},
	}, openTime, closeTime, log)
}

// NewCMEAgriculture builds the CME agricultural futures calendar.
func NewCMEAgriculture(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := holidays.NewCalendar("CME_Agriculture holidays", []holidays.Rule{
		holidays.USNewYearsDay,
		holidays.USMartinLutherKingJrAfter1998,
		holidays.USPresidentsDay,
		holidays.GoodFriday,
		holidays.USMemorialDay,
		holidays.USJuneteenthAfter2022,
		holidays.USIndependenceDay,
		holidays.USLaborDay,
		holidays.USThanksgivingDay,
		holidays.Christmas,
	})
	if err != nil {
		return nil, err
	}
	return New(Options{
		Name:     "CME_Agriculture",
		Location: chicago,
		RegularMarketTimes: map[MarketTimeType][]MarketTime{
			MarketOpen:  single(dayBefore(17, 1)),
			MarketClose: single(At(17, 0)),
		},
		RegularHolidays: regular,
		AdhocHolidays:   holidays.USNationalDaysOfMourning,
		Aliases:         []string{"CME_Agriculture", "CBOT_Agriculture", "COMEX_Agriculture", "NYMEX_Agriculture"},
		Weekmask:        offsets.MondayToFriday,
		SpecialCloses: []SpecialTime{
			special(12, 0, "CME_Agriculture noon closes",
				holidays.USBlackFridayInOrAfter1993,
				holidays.ChristmasEveBefore1993,
				holidays.ChristmasEveInOrAfter1993),
		},
	}, openTime, closeTime, log)
}

// NewCMEBond builds the CME interest rate futures calendar. Good Friday is
// decided per year: some years closed, others a shortened session.
func NewCMEBond(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := holidays.NewCalendar("CME_Bond holidays",
		[]holidays.Rule{holidays.USNewYearsDay, holidays.Christmas})
	if err != nil {
		return nil, err
	}
	return New(Options{
		Name:     "CME_Bond",
		Location: chicago,
		RegularMarketTimes: map[MarketTimeType][]MarketTime{
			MarketOpen:  single(dayBefore(17, 0)),
			MarketClose: single(At(16, 0)),
		},
		RegularHolidays: regular,
		AdhocHolidays:   chain(holidays.USNationalDaysOfMourning, holidays.BondsGoodFridayClosed),
		Aliases:         []string{"CME_Rate", "CBOT_Rate", "CME_InterestRate", "CBOT_InterestRate", "CME_Bond", "CBOT_Bond"},
		Weekmask:        offsets.MondayToFriday,
		SpecialCloses: []SpecialTime{
			special(12, 0, "CME_Bond noon closes",
				holidays.USMartinLutherKingJrAfter1998,
				holidays.USPresidentsDay,
				holidays.USMemorialDay,
				holidays.USIndependenceDay,
				holidays.USLaborDay,
				holidays.USThanksgivingDay),
			special(12, 15, "CME_Bond 12:15pm closes",
				holidays.USBlackFridayInOrAfter1993,
				holidays.ChristmasEveBefore1993,
				holidays.ChristmasEveInOrAfter1993),
		},
		SpecialClosesAdhoc: []SpecialTimeAdhoc{
			adhoc(10, 0, holidays.BondsGoodFridayOpen...),
		},
	}, openTime, closeTime, log)
}
