package market_hours

import (
	"time"

	"github.com/aristath/marketcal/internal/holidays"
	"github.com/aristath/marketcal/internal/offsets"
	"github.com/rs/zerolog"
)

// globexSession is the Sunday evening to Friday afternoon Globex week.
func globexSession(openHour, closeHour int) map[MarketTimeType][]MarketTime {
	return map[MarketTimeType][]MarketTime{
		MarketOpen:  single(dayBefore(openHour, 0)),
		MarketClose: single(At(closeHour, 0)),
	}
}

func globexAgriculturalHolidays(name string) (*holidays.Calendar, error) {
	return holidays.NewCalendar(name, []holidays.Rule{
		holidays.USNewYearsDay,
		holidays.USMartinLutherKingJrAfter1998,
		holidays.USPresidentsDay,
		holidays.GoodFriday,
		holidays.USMemorialDay,
		holidays.USIndependenceDay,
		holidays.USLaborDay,
		holidays.USThanksgivingDay,
		holidays.Christmas,
	})
}

// NewCMEGlobexFX builds the CME Globex currency futures calendar.
func NewCMEGlobexFX(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := holidays.NewCalendar("CMEGlobex_FX holidays", []holidays.Rule{
		holidays.USNewYearsDay, holidays.CMEGoodFridayBefore2021, holidays.CMEGoodFriday2022, holidays.Christmas,
	})
	if err != nil {
		return nil, err
	}
	return New(Options{
		Name:               "CMEGlobex_FX",
		Location:           chicago,
		RegularMarketTimes: globexSession(17, 16),
		RegularHolidays:    regular,
		Aliases:            []string{"CMEGlobex_FX", "CME_FX", "CME_Currency"},
		Weekmask:           offsets.MondayToFriday,
		SpecialCloses: []SpecialTime{
			special(10, 15, "CMEGlobex_FX Good Friday closes",
				holidays.CMEGoodFridayAfter2022, holidays.CMEGoodFriday2021),
			special(12, 0, "CMEGlobex_FX noon closes",
				holidays.CMEMartinLutherKingJrAfter1998Before2022,
				holidays.CMEPresidentsDayBefore2022,
				holidays.CMEMemorialDay2021AndPrior,
				holidays.CMEIndependenceDayBefore2022,
				holidays.CMELaborDayBefore2022,
				holidays.CMEThanksgivingBefore2022),
			special(12, 15, "CMEGlobex_FX 12:15pm closes",
				holidays.CMEThanksgivingFriday, holidays.ChristmasEveInOrAfter1993),
		},
	}, openTime, closeTime, log)
}

// NewCMEGlobexCrypto builds the CME Globex cryptocurrency futures calendar,
// which pauses for an hour every afternoon.
func NewCMEGlobexCrypto(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := holidays.NewCalendar("CME Globex Crypto holidays", []holidays.Rule{
		holidays.CMEGoodFridayBefore2021, holidays.CMEGoodFriday2022, holidays.ChristmasCME, holidays.USNewYearsDay,
	})
	if err != nil {
		return nil, err
	}
	times := globexSession(17, 16)
	times[BreakStart] = single(At(16, 0))
	times[BreakEnd] = single(At(17, 0))
	return New(Options{
		Name:               "CME Globex Crypto",
		Location:           chicago,
		RegularMarketTimes: times,
		RegularHolidays:    regular,
		Aliases:            []string{"CME Globex Cryptocurrencies", "CME Globex Crypto"},
		Weekmask:           offsets.MondayToFriday,
		SpecialCloses: []SpecialTime{
			special(8, 15, "CME Globex Crypto 8:15am closes", holidays.CMEGoodFriday2021),
			special(10, 15, "CME Globex Crypto 10:15am closes", holidays.CMEGoodFridayAfter2022),
			special(12, 0, "CME Globex Crypto noon closes",
				holidays.GlobexMartinLutherKingJrPre2022,
				holidays.GlobexPresidentsDayPre2022,
				holidays.GlobexMemorialDayPre2022,
				holidays.GlobexIndependenceDayPre2022,
				holidays.GlobexLaborDayPre2022,
				holidays.GlobexThanksgivingDayPre2022),
			special(12, 15, "CME Globex Crypto 12:15pm closes",
				holidays.ChristmasEveInOrAfter1993,
				holidays.CMEIndependenceDayBefore2022PreviousDay,
				holidays.GlobexThanksgivingFridayPre2021),
			special(12, 45, "CME Globex Crypto 12:45pm closes", holidays.GlobexThanksgivingFridayFrom2021),
			special(16, 0, "CME Globex Crypto holiday closes",
				holidays.GlobexMartinLutherKingJrFrom2022,
				holidays.GlobexPresidentsDayFrom2022,
				holidays.GlobexMemorialDayFrom2022,
				holidays.GlobexJuneteenthFrom2022,
				holidays.GlobexIndependenceDayFrom2022,
				holidays.GlobexLaborDayFrom2022,
				holidays.GlobexThanksgivingDayFrom2022),
		},
	}, openTime, closeTime, log)
}

// NewCMEGlobexEquities builds the CME Globex equity index futures calendar.
func NewCMEGlobexEquities(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := holidays.NewCalendar("CME Globex Equities holidays", []holidays.Rule{
		holidays.USNewYearsDay, holidays.CMEGoodFridayBefore2021NotEarlyClose, holidays.CMEGoodFriday2022, holidays.Christmas,
	})
	if err != nil {
		return nil, err
	}
	return New(Options{
		Name:               "CME Globex Equities",
		Location:           chicago,
		RegularMarketTimes: globexSession(17, 16),
		RegularHolidays:    regular,
		Aliases:            []string{"CME Globex Equities", "CME Globex Equity"},
		Weekmask:           offsets.MondayToFriday,
		SpecialCloses: []SpecialTime{
			special(10, 30, "CME Globex Equities 10:30am closes",
				holidays.CMEMartinLutherKingJrAfter1998Before2015,
				holidays.CMEPresidentsDayBefore2015,
				holidays.CMEMemorialDay2013AndPrior,
				holidays.CMEIndependenceDayBefore2014,
				holidays.CMELaborDayBefore2014,
				holidays.CMEThanksgivingBefore2014),
			special(12, 15, "CME Globex Equities 12:15pm closes",
				holidays.CMEIndependenceDayBefore2022PreviousDay,
				holidays.CMEThanksgivingFriday,
				holidays.ChristmasEveInOrAfter1993),
			special(12, 0, "CME Globex Equities noon closes",
				holidays.CMEMartinLutherKingJrAfter2015,
				holidays.CMEPresidentsDayAfter2015,
				holidays.CMEMemorialDayAfter2013,
				holidays.CMEIndependenceDayAfter2014,
				holidays.CMELaborDayAfter2014,
				holidays.CMEThanksgivingAfter2014,
				holidays.USJuneteenthAfter2022),
			special(8, 15, "CME Globex Equities Good Friday closes",
				holidays.CMEGoodFriday2010,
				holidays.CMEGoodFriday2012,
				holidays.CMEGoodFriday2015,
				holidays.CMEGoodFriday2021,
				holidays.CMEGoodFridayAfter2022),
		},
	}, openTime, closeTime, log)
}

// NewCMEGlobexLivestock builds the CME Globex livestock futures calendar.
func NewCMEGlobexLivestock(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := globexAgriculturalHolidays("CMEGlobex_Livestock holidays")
	if err != nil {
		return nil, err
	}
	return New(Options{
		Name:     "CMEGlobex_Livestock",
		Location: chicago,
		RegularMarketTimes: map[MarketTimeType][]MarketTime{
			MarketOpen:  single(At(8, 30)),
			MarketClose: single(At(13, 5)),
		},
		RegularHolidays: regular,
		Aliases: []string{
			"CMEGlobex_Livestock", "CMEGlobex_Live_Cattle", "CMEGlobex_Feeder_Cattle",
			"CMEGlobex_Lean_Hog", "CMEGlobex_Port_Cutout",
		},
		Weekmask: offsets.MondayToFriday,
		SpecialCloses: []SpecialTime{
			special(12, 5, "CMEGlobex_Livestock early closes",
				holidays.USBlackFridayInOrAfter1993,
				holidays.ChristmasEveBefore1993,
				holidays.ChristmasEveInOrAfter1993),
		},
	}, openTime, closeTime, log)
}

// NewCMEGlobexGrains builds the CME Globex grains and oilseeds calendar with
// its morning pause.
func NewCMEGlobexGrains(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := globexAgriculturalHolidays("CMEGlobex_GrainsAndOilseeds holidays")
	if err != nil {
		return nil, err
	}
	return New(Options{
		Name:     "CMEGlobex_GrainsAndOilseeds",
		Location: chicago,
		RegularMarketTimes: map[MarketTimeType][]MarketTime{
			MarketOpen:  single(dayBefore(19, 0)),
			MarketClose: single(At(13, 20)),
			BreakStart:  single(At(7, 45)),
			BreakEnd:    single(At(8, 30)),
		},
		RegularHolidays: regular,
		Aliases:         []string{"CMEGlobex_GrainsAndOilseeds", "CMEGlobex_Grains", "CMEGlobex_Oilseeds"},
		Weekmask:        offsets.MondayToFriday,
	}, openTime, closeTime, log)
}

// NewCMEGlobexFixedIncome builds the CME Globex interest rate products calendar.
func NewCMEGlobexFixedIncome(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := holidays.NewCalendar("CME Globex Fixed Income holidays", []holidays.Rule{
		holidays.USNewYearsDay, holidays.CMEGoodFridayBefore2021NotEarlyClose, holidays.CMEGoodFriday2022, holidays.Christmas,
	})
	if err != nil {
		return nil, err
	}
	return New(Options{
		Name:               "CME Globex Fixed Income",
		Location:           chicago,
		RegularMarketTimes: globexSession(18, 17),
		RegularHolidays:    regular,
		Aliases:            []string{"CME Globex Fixed Income", "CME Globex Interest Rate Products"},
		Weekmask:           offsets.MondayToFriday,
		SpecialCloses: []SpecialTime{
			special(12, 0, "CME Globex Fixed Income noon closes",
				holidays.CMEMartinLutherKingJrAfter1998Before2015,
				holidays.CMEMartinLutherKingJrAfter2015,
				holidays.CMEPresidentsDayBefore2015,
				holidays.CMEPresidentsDayAfter2015,
				holidays.CMEMemorialDay2013AndPrior,
				holidays.CMEMemorialDayAfter2013,
				holidays.CMEIndependenceDayBefore2014,
				holidays.CMEIndependenceDayAfter2014,
				holidays.CMELaborDayBefore2014,
				holidays.CMELaborDayAfter2014,
				holidays.CMEThanksgivingBefore2014,
				holidays.CMEThanksgivingAfter2014,
				holidays.USJuneteenthAfter2022),
			special(15, 15, "CME Globex Fixed Income 3:15pm closes",
				holidays.CMEMartinLutherKingJrBefore2016FridayBefore,
				holidays.CMEPresidentsDayBefore2016FridayBefore,
				holidays.CMEGoodFriday2009,
				holidays.CMEMemorialDay2015AndPriorFridayBefore,
				holidays.CMELaborDayBefore2015FridayBefore),
			special(12, 15, "CME Globex Fixed Income 12:15pm closes",
				holidays.CMEThanksgivingFriday, holidays.ChristmasEveInOrAfter1993),
			special(10, 15, "CME Globex Fixed Income Good Friday closes",
				holidays.CMEGoodFriday2010,
				holidays.CMEGoodFriday2012,
				holidays.CMEGoodFriday2015,
				holidays.CMEGoodFriday2021,
				holidays.CMEGoodFridayAfter2022),
		},
		SpecialClosesAdhoc: []SpecialTimeAdhoc{
			adhoc(15, 15, date(2010, time.July, 2), date(2011, time.July, 1)),
			adhoc(12, 15, date(2010, time.December, 31)),
		},
	}, openTime, closeTime, log)
}

var energyAndMetalsAliases = []string{
	"CMEGlobex_EnergyAndMetals", "CMEGlobex_Energy", "CMEGlobex_CrudeAndRefined", "CMEGlobex_NYHarbor",
	"CMEGlobex_HO", "HO", "CMEGlobex_Crude", "CMEGlobex_CL", "CL", "CMEGlobex_Gas", "CMEGlobex_RB", "RB",
	"CMEGlobex_MicroCrude", "CMEGlobex_MCL", "MCL", "CMEGlobex_NatGas", "CMEGlobex_NG", "NG",
	"CMEGlobex_Dutch_NatGas", "CMEGlobex_TTF", "TTF", "CMEGlobex_LastDay_NatGas", "CMEGlobex_NN", "NN",
	"CMEGlobex_CarbonOffset", "CMEGlobex_CGO", "CGO", "C-GEO", "CMEGlobex_NGO", "NGO", "CMEGlobex_GEO", "GEO",
	"CMEGlobex_Metals", "CMEGlobex_PreciousMetals", "CMEGlobex_Gold", "CMEGlobex_GC", "GC",
	"CMEGlobex_Silver", "CMEGlobex_SI", "SI", "CMEGlobex_Platinum", "CMEGlobex_PL", "PL",
	"CMEGlobex_BaseMetals", "CMEGlobex_Copper", "CMEGlobex_HG", "HG", "CMEGlobex_Aluminum", "CMEGlobex_ALI", "ALI",
	"CMEGlobex_QC", "QC", "CMEGlobex_FerrousMetals", "CMEGlobex_HRC", "HRC", "CMEGlobex_BUS", "BUS",
	"CMEGlobex_TIO", "TIO",
}

// NewCMEGlobexEnergyAndMetals builds the CME Globex energy and metals calendar.
func NewCMEGlobexEnergyAndMetals(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := holidays.NewCalendar("CMEGlobex_EnergyAndMetals holidays", []holidays.Rule{
		holidays.USNewYearsDay, holidays.GoodFriday, holidays.ChristmasCME,
	})
	if err != nil {
		return nil, err
	}
	return New(Options{
		Name:               "CMEGlobex_EnergyAndMetals",
		Location:           chicago,
		RegularMarketTimes: globexSession(17, 16),
		RegularHolidays:    regular,
		Aliases:            energyAndMetalsAliases,
		Weekmask:           offsets.MondayToFriday,
		SpecialCloses: []SpecialTime{
			special(12, 0, "CMEGlobex_EnergyAndMetals noon closes",
				holidays.GlobexMartinLutherKingJrPre2022,
				holidays.GlobexPresidentsDayPre2022,
				holidays.GlobexMemorialDayPre2022,
				holidays.GlobexIndependenceDayPre2022,
				holidays.GlobexLaborDayPre2022,
				holidays.GlobexThanksgivingDayPre2022),
			special(12, 45, "CMEGlobex_EnergyAndMetals Thanksgiving Friday closes",
				holidays.GlobexFridayAfterThanksgiving),
			special(13, 30, "CMEGlobex_EnergyAndMetals holiday closes",
				holidays.GlobexMartinLutherKingJrFrom2022,
				holidays.GlobexPresidentsDayFrom2022,
				holidays.GlobexMemorialDayFrom2022,
				holidays.GlobexJuneteenthFrom2022,
				holidays.GlobexIndependenceDayFrom2022,
				holidays.GlobexThanksgivingDayFrom2022),
		},
	}, openTime, closeTime, log)
}
