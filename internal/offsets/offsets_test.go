package offsets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOffsetAdd(t *testing.T) {
	wom, err := NewWeekOfMonth(1, 2, time.Friday)
	require.NoError(t, err)

	tests := []struct {
		name     string
		offset   Offset
		input    time.Time
		expected time.Time
	}{
		{"business day friday to monday", BusinessDays(1), date(2024, 1, 5), date(2024, 1, 8)},
		{"business day saturday forward", BusinessDays(1), date(2024, 1, 6), date(2024, 1, 8)},
		{"business day saturday backward", BusinessDays(-1), date(2024, 1, 6), date(2024, 1, 5)},
		{"business day across weekend", BusinessDays(3), date(2024, 1, 10), date(2024, 1, 15)},
		{"business day monday back to friday", BusinessDays(-1), date(2024, 1, 8), date(2024, 1, 5)},
		{"business day ten forward", BusinessDays(10), date(2024, 1, 8), date(2024, 1, 22)},
		{"business day five from saturday", BusinessDays(5), date(2024, 1, 6), date(2024, 1, 12)},
		{"business day ten from sunday", BusinessDays(10), date(2024, 1, 7), date(2024, 1, 19)},
		{"month end mid month", MonthEnd(1), date(2024, 1, 15), date(2024, 1, 31)},
		{"month end leap february", MonthEnd(1), date(2024, 1, 31), date(2024, 2, 29)},
		{"month start forward", MonthStart(1), date(2024, 1, 15), date(2024, 2, 1)},
		{"month start backward", MonthStart(-1), date(2024, 1, 15), date(2024, 1, 1)},
		{"quarter end", QuarterEnd(1, 0), date(2024, 2, 15), date(2024, 3, 31)},
		{"quarter end on anchor", QuarterEnd(1, 0), date(2024, 3, 31), date(2024, 6, 30)},
		{"quarter end backward", QuarterEnd(-1, 0), date(2024, 4, 15), date(2024, 3, 31)},
		{"quarter start january", QuarterStart(1, time.January), date(2024, 2, 15), date(2024, 4, 1)},
		{"year end", YearEnd(1, 0), date(2024, 6, 15), date(2024, 12, 31)},
		{"year start", YearStart(1, 0), date(2024, 6, 15), date(2025, 1, 1)},
		{"business month end skips weekend", BusinessMonthEnd(1), date(2024, 8, 15), date(2024, 8, 30)},
		{"business month start skips weekend", BusinessMonthStart(1), date(2024, 5, 15), date(2024, 6, 3)},
		{"third monday", DateOffset(RelativeDeltaOptions{Weekday: MO(3)}), date(2024, 1, 1), date(2024, 1, 15)},
		{"fourth thursday", DateOffset(RelativeDeltaOptions{Weekday: TH(4)}), date(2024, 11, 1), date(2024, 11, 28)},
		{"last monday", DateOffset(RelativeDeltaOptions{Weekday: MO(-1)}), date(2024, 5, 31), date(2024, 5, 27)},
		{"month clamps day", DateOffset(RelativeDeltaOptions{Months: 1}), date(2024, 1, 31), date(2024, 2, 29)},
		{"years and days", DateOffset(RelativeDeltaOptions{Years: 1, Days: 1}), date(2023, 2, 28), date(2024, 2, 29)},
		{"easter before", EasterOffset(1), date(2024, 1, 10), date(2024, 3, 31)},
		{"easter on anchor", EasterOffset(1), date(2024, 3, 31), date(2025, 4, 20)},
		{"easter backward", EasterOffset(-1), date(2024, 5, 1), date(2024, 3, 31)},
		{"third friday", wom, date(2024, 1, 1), date(2024, 1, 19)},
		{"third friday next month", wom, date(2024, 1, 19), date(2024, 2, 16)},
		{"last friday", NewLastWeekOfMonth(1, time.Friday), date(2024, 1, 1), date(2024, 1, 26)},
		{"anchored week", WeeksOn(1, time.Monday), date(2024, 1, 10), date(2024, 1, 15)},
		{"anchored week on anchor", WeeksOn(1, time.Monday), date(2024, 1, 15), date(2024, 1, 22)},
		{"plain week", Weeks(2), date(2024, 1, 10), date(2024, 1, 24)},
		{"two day tick", Days(-2), date(2024, 3, 31), date(2024, 3, 29)},
		{"hour tick", Hours(3), date(2024, 3, 31), time.Date(2024, 3, 31, 3, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.offset.Add(tt.input))
		})
	}
}

func TestOffsetAdd_KeepsTimeOfDay(t *testing.T) {
	in := time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 8, 14, 30, 0, 0, time.UTC), BusinessDays(1).Add(in))
	assert.Equal(t, time.Date(2024, 1, 31, 14, 30, 0, 0, time.UTC), MonthEnd(1).Add(in))
	assert.Equal(t, time.Date(2024, 3, 31, 14, 30, 0, 0, time.UTC), EasterOffset(1).Add(in))
}

func TestOffsetRsubInvertsAdd(t *testing.T) {
	tests := []struct {
		name   string
		offset Offset
		input  time.Time
	}{
		{"business day", BusinessDays(3), date(2024, 1, 10)},
		{"business day with delta", BusinessDaysWithDelta(2, time.Hour), date(2024, 1, 10)},
		{"month end", MonthEnd(2), date(2024, 1, 31)},
		{"quarter start", QuarterStart(1, time.January), date(2024, 4, 1)},
		{"year end", YearEnd(3, 0), date(2020, 12, 31)},
		{"relative delta", NewRelativeDelta(2, RelativeDeltaOptions{Months: 1, Days: 2}), date(2024, 1, 10)},
		{"easter", EasterOffset(2), date(2024, 3, 31)},
		{"tick", Minutes(90), date(2024, 1, 10)},
		{"anchored week", WeeksOn(2, time.Wednesday), date(2024, 1, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back, err := tt.offset.Rsub(tt.offset.Add(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.input, back)
		})
	}
}

func TestRollforwardAndRollback(t *testing.T) {
	mid := date(2024, 2, 10)

	fwd, err := MonthEnd(3).Rollforward(mid)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 29), fwd)

	back, err := MonthEnd(3).Rollback(mid)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 31), back)

	onAnchor, err := MonthEnd(3).Rollforward(date(2024, 2, 29))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 29), onAnchor)

	sat := date(2024, 1, 6)
	fwd, err = BusinessDays(5).Rollforward(sat)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 8), fwd)

	back, err = BusinessDays(5).Rollback(sat)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 5), back)
}

func TestRollbackMatchesRsub(t *testing.T) {
	satMorning := time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		offset Offset
		back   time.Time
		fwd    time.Time
	}{
		{"business day", BusinessDays(1), time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)},
		{"business day with delta", BusinessDaysWithDelta(1, 2*time.Hour), time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC), time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)},
		{
			"custom business day with delta",
			CustomBusinessDays(1, CustomBusinessDayOptions{Delta: 2 * time.Hour}),
			time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back, err := tt.offset.Rollback(satMorning)
			require.NoError(t, err)
			assert.Equal(t, tt.back, back)

			viaRsub, err := tt.offset.WithN(1).Rsub(satMorning)
			require.NoError(t, err)
			assert.Equal(t, back, viaRsub)

			fwd, err := tt.offset.Rollforward(satMorning)
			require.NoError(t, err)
			assert.Equal(t, tt.fwd, fwd)

			roundTrip, err := tt.offset.Rsub(tt.offset.Add(back))
			require.NoError(t, err)
			assert.Equal(t, back, roundTrip)
		})
	}
}

func TestIsOnOffset(t *testing.T) {
	assert.True(t, MonthEnd(1).IsOnOffset(date(2024, 2, 29)))
	assert.False(t, MonthEnd(1).IsOnOffset(date(2024, 2, 28)))
	assert.True(t, QuarterEnd(1, time.December).IsOnOffset(date(2024, 9, 30)))
	assert.False(t, QuarterEnd(1, time.December).IsOnOffset(date(2024, 8, 31)))
	assert.True(t, YearStart(1, 0).IsOnOffset(date(2024, 1, 1)))
	assert.True(t, BusinessDays(1).IsOnOffset(date(2024, 1, 5)))
	assert.False(t, BusinessDays(1).IsOnOffset(date(2024, 1, 6)))
	assert.True(t, EasterOffset(1).IsOnOffset(time.Date(2025, 4, 20, 10, 0, 0, 0, time.UTC)))
	assert.True(t, DateOffset(RelativeDeltaOptions{Weekday: MO(1)}).IsOnOffset(date(2024, 1, 8)))
	assert.True(t, DateOffset(RelativeDeltaOptions{Days: 3}).IsOnOffset(date(2024, 1, 6)))
	assert.True(t, Hours(1).IsOnOffset(date(2024, 1, 6)))
}

func TestNameAndCode(t *testing.T) {
	wom, err := NewWeekOfMonth(2, 0, time.Monday)
	require.NoError(t, err)

	tests := []struct {
		offset Offset
		name   string
		code   string
	}{
		{BusinessDays(3), "3B", "B"},
		{MonthEnd(1), "1ME", "ME"},
		{MonthStart(-2), "-2MS", "MS"},
		{QuarterEnd(1, 0), "1QE-MAR", "QE-MAR"},
		{YearStart(1, 0), "1YS-JAN", "YS-JAN"},
		{BusinessMonthEnd(1), "1BME", "BME"},
		{WeeksOn(1, time.Monday), "1W-MON", "W-MON"},
		{Weeks(1), "1W", "W"},
		{wom, "2WOM-1MON", "WOM-1MON"},
		{NewLastWeekOfMonth(1, time.Friday), "1LWOM-FRI", "LWOM-FRI"},
		{EasterOffset(1), "1Easter", "Easter"},
		{Minutes(5), "5Min", "Min"},
		{CustomBusinessDays(1, CustomBusinessDayOptions{}), "1C", "C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.offset.Name())
			assert.Equal(t, tt.code, tt.offset.Code())
		})
	}
}

func TestWeekOfMonthRejectsInvalidWeek(t *testing.T) {
	_, err := NewWeekOfMonth(1, 4, time.Friday)
	assert.EqualError(t, err, "Week must be in range 0..3 for WeekOfMonth")

	_, err = NewWeekOfMonth(1, -1, time.Friday)
	assert.ErrorIs(t, err, ErrInvalidWeek)
}

func TestEasterDate(t *testing.T) {
	tests := []struct {
		year     int
		expected time.Time
	}{
		{2024, date(2024, 3, 31)},
		{2025, date(2025, 4, 20)},
		{2026, date(2026, 4, 5)},
		{2027, date(2027, 3, 28)},
		{2028, date(2028, 4, 16)},
		{2029, date(2029, 4, 1)},
		{2030, date(2030, 4, 21)},
	}

	for _, tt := range tests {
		got := EasterDate(tt.year, Western, time.UTC)
		if !got.Equal(tt.expected) {
			t.Errorf("EasterDate(%d) = %v, want %v", tt.year, got, tt.expected)
		}
		if got.Weekday() != time.Sunday {
			t.Errorf("EasterDate(%d) is a %v, want Sunday", tt.year, got.Weekday())
		}
	}

	assert.Equal(t, date(2024, 5, 5), EasterDate(2024, Orthodox, time.UTC))
	assert.Equal(t, date(2025, 4, 20), EasterDate(2025, Orthodox, time.UTC))
}

func TestCustomBusinessDay(t *testing.T) {
	cbd := CustomBusinessDays(1, CustomBusinessDayOptions{Holidays: []time.Time{date(2024, 1, 15)}})

	assert.Equal(t, date(2024, 1, 16), cbd.Add(date(2024, 1, 12)))
	assert.Equal(t, date(2024, 1, 12), cbd.WithN(-1).Add(date(2024, 1, 13)))
	assert.Equal(t, date(2024, 1, 16), cbd.WithN(0).Add(date(2024, 1, 13)))
	assert.False(t, cbd.IsOnOffset(date(2024, 1, 15)))
	assert.True(t, cbd.IsOnOffset(date(2024, 1, 16)))

	saturdays := CustomBusinessDays(1, CustomBusinessDayOptions{Weekmask: MondayToSaturday})
	assert.Equal(t, date(2024, 1, 6), saturdays.Add(date(2024, 1, 5)))
	assert.Equal(t, date(2024, 1, 8), saturdays.Add(date(2024, 1, 6)))
}

type fixedHolidays []time.Time

func (f fixedHolidays) Holidays(time.Time, time.Time) []time.Time { return f }

func TestCustomBusinessDay_HolidaySource(t *testing.T) {
	cbd := CustomBusinessDays(2, CustomBusinessDayOptions{
		Calendar: fixedHolidays{date(2024, 12, 25)},
		Holidays: []time.Time{date(2024, 12, 26)},
	})

	assert.Equal(t, date(2024, 12, 30), cbd.Add(date(2024, 12, 24)))
	back, err := cbd.Rsub(date(2024, 12, 30))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 12, 24), back)
}

func TestDayNumberRoundTrip(t *testing.T) {
	for _, d := range []time.Time{date(1885, 1, 1), date(1969, 12, 31), date(1970, 1, 1), date(2200, 12, 31)} {
		y, m, day := FromDayNumber(DayNumber(d))
		assert.Equal(t, d, date(y, m, day))
	}
	assert.Equal(t, int64(0), DayNumber(date(1970, 1, 1)))
	assert.Equal(t, int64(-1), DayNumber(date(1969, 12, 31)))
}
