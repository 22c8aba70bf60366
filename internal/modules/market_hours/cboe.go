package market_hours

import (
	"github.com/aristath/marketcal/internal/holidays"
	"github.com/aristath/marketcal/internal/offsets"
	"github.com/rs/zerolog"
)

// cboeCalendar builds a CBOE calendar that opens at 8:30 Chicago time.
func cboeCalendar(name string, aliases []string, closeHour, closeMinute int, openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	regular, err := holidays.NewCalendar(name+" holidays", holidays.CBOERegularHolidays(), since1900)
	if err != nil {
		return nil, err
	}
	return New(Options{
		Name:     name,
		Location: chicago,
		RegularMarketTimes: map[MarketTimeType][]MarketTime{
			MarketOpen:  single(At(8, 30)),
			MarketClose: single(At(closeHour, closeMinute)),
		},
		RegularHolidays: regular,
		AdhocHolidays:   chain(holidays.HurricaneSandyClosings, holidays.USNationalDaysOfMourning),
		Aliases:         aliases,
		Weekmask:        offsets.MondayToFriday,
		SpecialCloses: []SpecialTime{
			special(12, 15, name+" early closes", holidays.USBlackFridayInOrAfter1993),
		},
	}, openTime, closeTime, log)
}

// NewCFE builds the CBOE Futures Exchange calendar.
func NewCFE(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	return cboeCalendar("CFE", []string{"CFE", "CBOE_Futures"}, 15, 15, openTime, closeTime, log)
}

// NewCBOEEquityOptions builds the CBOE equity options calendar.
func NewCBOEEquityOptions(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	return cboeCalendar("CBOE_Equity_Options", []string{"CBOE_Equity_Options"}, 15, 0, openTime, closeTime, log)
}

// NewCBOEIndexOptions builds the CBOE index options calendar.
func NewCBOEIndexOptions(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error) {
	return cboeCalendar("CBOE_Index_Options", []string{"CBOE_Index_Options"}, 15, 15, openTime, closeTime, log)
}
