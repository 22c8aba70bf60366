package market_hours

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/aristath/marketcal/internal/holidays"
	"github.com/aristath/marketcal/internal/offsets"
)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

var (
	newYork = mustLoadLocation("America/New_York")
	chicago = mustLoadLocation("America/Chicago")
)

var since1900 = holidays.WithWindow(time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC), holidays.DefaultWindowEnd)

func tod(hour, minute int) offsets.TimeOfDay { return offsets.NewTimeOfDay(hour, minute) }

// dayBefore builds a regime that starts the session the previous evening.
func dayBefore(hour, minute int) MarketTime { return At(hour, minute).WithDayOffset(-1) }

func single(mt MarketTime) []MarketTime { return []MarketTime{mt} }

func special(hour, minute int, name string, rules ...holidays.Rule) SpecialTime {
	return SpecialTime{Time: tod(hour, minute), Name: name, Rules: rules}
}

// compileSpecialTimes returns a copy of sts with every rule-based entry
// compiled into a holiday calendar.
func compileSpecialTimes(sts []SpecialTime) ([]SpecialTime, error) {
	out := make([]SpecialTime, len(sts))
	for i, st := range sts {
		if st.Calendar == nil && len(st.Rules) > 0 {
			cal, err := holidays.NewCalendar(st.Name, st.Rules, since1900)
			if err != nil {
				return nil, fmt.Errorf("special times %q: %w", st.Name, err)
			}
			st.Calendar = cal
		}
		out[i] = st
	}
	return out, nil
}

func adhoc(hour, minute int, dates ...time.Time) SpecialTimeAdhoc {
	return SpecialTimeAdhoc{Time: tod(hour, minute), Dates: dates}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func chain(sets ...[]time.Time) []time.Time {
	var out []time.Time
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
