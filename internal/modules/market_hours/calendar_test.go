package market_hours

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/marketcal/internal/holidays"
	"github.com/aristath/marketcal/internal/offsets"
)

var _ offsets.Session = (*MarketCalendar)(nil)

func utc(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func build(t *testing.T, ctor Constructor) *MarketCalendar {
	t.Helper()
	cal, err := ctor(nil, nil, zerolog.Nop())
	require.NoError(t, err)
	return cal
}

func column(t *testing.T, cal *MarketCalendar, start, end time.Time, typ MarketTimeType) []time.Time {
	t.Helper()
	sched, err := cal.Schedule(start, end, ScheduleOptions{})
	require.NoError(t, err)
	col, ok := sched.Column(typ.String())
	require.True(t, ok)
	return col
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{}, nil, nil, zerolog.Nop())
	assert.ErrorIs(t, err, ErrEmptyCalendarName)

	override := At(9, 0)
	_, err = New(Options{Name: "NoTimes"}, &override, nil, zerolog.Nop())
	assert.ErrorIs(t, err, ErrNotInRegularTimes)
	assert.EqualError(t, err, "MarketOpen is not in regular market times")
}

func TestNew_SpecialTimeRules(t *testing.T) {
	opts := func(st SpecialTime) Options {
		return Options{
			Name: "Rules",
			RegularMarketTimes: map[MarketTimeType][]MarketTime{
				MarketOpen:  single(At(9, 0)),
				MarketClose: single(At(17, 0)),
			},
			Weekmask:      offsets.MondayToFriday,
			SpecialCloses: []SpecialTime{st},
		}
	}

	cal, err := New(opts(special(13, 0, "Christmas early close", holidays.Christmas)), nil, nil, zerolog.Nop())
	require.NoError(t, err)
	closes := column(t, cal, utc(2024, time.December, 24, 0, 0), utc(2024, time.December, 25, 0, 0), MarketClose)
	assert.Equal(t, []time.Time{utc(2024, time.December, 24, 17, 0), utc(2024, time.December, 25, 13, 0)}, closes)

	_, err = New(opts(special(13, 0, "", holidays.Christmas)), nil, nil, zerolog.Nop())
	assert.ErrorIs(t, err, holidays.ErrEmptyName)
}

func TestMarketCalendar_TimeMutators(t *testing.T) {
	cal := build(t, NewFX)

	err := cal.AddTime(MarketOpen, single(At(8, 0)), OpenCloseDefault)
	assert.EqualError(t, err, "MarketOpen is already in regular market times")

	err = cal.ChangeTime(Pre, single(At(8, 0)), OpenCloseDefault)
	assert.EqualError(t, err, "Pre is not in regular market times")

	require.NoError(t, cal.AddTime(Post, single(At(18, 0)), OpenCloseDefault))
	assert.True(t, cal.IsCustom(Post))
	assert.False(t, cal.Opens(Post))
	assert.Equal(t, []MarketTimeType{MarketOpen, MarketClose, Post}, cal.MarketTimes())

	require.NoError(t, cal.ChangeTime(Post, single(At(18, 0)), Opens))
	assert.True(t, cal.Opens(Post))

	cal.RemoveTime(Post)
	assert.Equal(t, []MarketTimeType{MarketOpen, MarketClose}, cal.MarketTimes())
	assert.False(t, cal.IsCustom(Post))
}

func TestMarketCalendar_GetTimeErrors(t *testing.T) {
	cal := build(t, NewFX)

	tests := []struct {
		name    string
		typ     MarketTimeType
		wantErr string
	}{
		{"break types are optional", BreakStart, ""},
		{"pre market is not set", Pre, "market time Pre is not in regular market times"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cal.GetTime(tt.typ)
			assert.Nil(t, got)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}

	cal.RemoveTime(MarketOpen)
	_, err := cal.GetTime(MarketOpen)
	assert.ErrorIs(t, err, ErrMarketTimesNotSet)

	offset, err := cal.GetOffset(MarketClose)
	require.NoError(t, err)
	assert.Zero(t, offset)
}

func TestMarketCalendar_Regimes(t *testing.T) {
	cal := build(t, NewNYSE)

	tests := []struct {
		name string
		typ  MarketTimeType
		day  time.Time
		want offsets.TimeOfDay
	}{
		{"open before 1985", MarketOpen, utc(1980, time.January, 2, 0, 0), tod(10, 0)},
		{"open on cutoff", MarketOpen, utc(1985, time.January, 1, 0, 0), tod(9, 30)},
		{"close 1900", MarketClose, utc(1900, time.June, 1, 0, 0), tod(15, 0)},
		{"close 1960", MarketClose, utc(1960, time.June, 1, 0, 0), tod(15, 30)},
		{"close 2024", MarketClose, utc(2024, time.June, 3, 0, 0), tod(16, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cal.GetTimeOn(tt.typ, tt.day)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	times, err := cal.GetTimes(MarketClose)
	require.NoError(t, err)
	assert.Len(t, times, 3)

	latest, err := cal.GetTime(MarketOpen)
	require.NoError(t, err)
	assert.Equal(t, tod(9, 30), *latest)
	assert.Equal(t, []MarketTimeType{Pre, MarketOpen, MarketClose, Post}, cal.MarketTimes())
}

func TestMarketCalendar_Discontinued(t *testing.T) {
	cal, err := New(Options{
		Name: "Discontinued",
		RegularMarketTimes: map[MarketTimeType][]MarketTime{
			MarketOpen:  single(At(9, 0)),
			MarketClose: single(At(17, 0)),
			Post:        {At(18, 0), Discontinued(2020, time.January, 1)},
		},
		Weekmask: offsets.MondayToFriday,
	}, nil, nil, zerolog.Nop())
	require.NoError(t, err)

	assert.True(t, cal.IsDiscontinued(Post))
	assert.True(t, cal.HasDiscontinued())
	assert.Equal(t, []MarketTimeType{MarketOpen, MarketClose}, cal.MarketTimes())

	got, err := cal.GetTime(Post)
	require.NoError(t, err)
	assert.Nil(t, got)

	days, err := cal.ValidDays(utc(2019, time.December, 31, 0, 0), utc(2020, time.January, 2, 0, 0), nil)
	require.NoError(t, err)
	post, err := cal.DaysAtMarketTime(days, Post)
	require.NoError(t, err)
	require.Len(t, post, 3)
	assert.Equal(t, utc(2019, time.December, 31, 18, 0), post[0])
	assert.True(t, post[1].IsZero())
	assert.True(t, post[2].IsZero())
}

func TestNYSE_Week(t *testing.T) {
	cal := build(t, NewNYSE)

	sched, err := cal.Schedule(utc(2024, time.January, 8, 0, 0), utc(2024, time.January, 12, 0, 0), ScheduleOptions{})
	require.NoError(t, err)
	require.Equal(t, 5, sched.Len())
	assert.Equal(t, []string{"MarketOpen", "MarketClose"}, sched.Columns())

	row := sched.Row(0)
	assert.Equal(t, utc(2024, time.January, 8, 14, 30), row["MarketOpen"])
	assert.Equal(t, utc(2024, time.January, 8, 21, 0), row["MarketClose"])
}

func TestNYSE_DaylightSaving(t *testing.T) {
	cal := build(t, NewNYSE)

	opens := column(t, cal, utc(2024, time.March, 8, 0, 0), utc(2024, time.March, 11, 0, 0), MarketOpen)
	require.Len(t, opens, 2)
	assert.Equal(t, utc(2024, time.March, 8, 14, 30), opens[0])
	assert.Equal(t, utc(2024, time.March, 11, 13, 30), opens[1])
}

func TestNYSE_ValidDays2024(t *testing.T) {
	cal := build(t, NewNYSE)

	days, err := cal.ValidDays(utc(2024, time.January, 1, 0, 0), utc(2024, time.December, 31, 0, 0), nil)
	require.NoError(t, err)
	assert.Len(t, days, 252)

	for _, holiday := range []time.Time{
		utc(2024, time.January, 1, 0, 0),
		utc(2024, time.January, 15, 0, 0),
		utc(2024, time.March, 29, 0, 0),
		utc(2024, time.June, 19, 0, 0),
		utc(2024, time.July, 4, 0, 0),
		utc(2024, time.November, 28, 0, 0),
		utc(2024, time.December, 25, 0, 0),
	} {
		assert.False(t, days.Contains(holiday), holiday.Format("2006-01-02"))
		assert.False(t, cal.IsValidDay(holiday))
	}
	assert.True(t, cal.HolidayDates(utc(2024, time.July, 1, 0, 0), utc(2024, time.July, 31, 0, 0)).Contains(utc(2024, time.July, 4, 0, 0)))

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	local, err := cal.ValidDays(utc(2024, time.January, 2, 0, 0), utc(2024, time.January, 2, 0, 0), ny)
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, ny), local[0])
}

func TestNYSE_EarlyCloses(t *testing.T) {
	cal := build(t, NewNYSE)

	tests := []struct {
		name string
		day  time.Time
		want time.Time
	}{
		{"day before independence day", utc(2024, time.July, 3, 0, 0), utc(2024, time.July, 3, 17, 0)},
		{"black friday", utc(2024, time.November, 29, 0, 0), utc(2024, time.November, 29, 18, 0)},
		{"christmas eve", utc(2024, time.December, 24, 0, 0), utc(2024, time.December, 24, 18, 0)},
		{"regular day", utc(2024, time.December, 23, 0, 0), utc(2024, time.December, 23, 21, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closes := column(t, cal, tt.day, tt.day, MarketClose)
			require.Len(t, closes, 1)
			assert.Equal(t, tt.want, closes[0])
		})
	}

	special, err := cal.SpecialDates(MarketClose, utc(2024, time.January, 1, 0, 0), utc(2024, time.December, 31, 0, 0), true)
	require.NoError(t, err)
	assert.Equal(t, 3, special.Len())
}

func TestNYSE_SaturdayEra(t *testing.T) {
	cal := build(t, NewNYSE)

	sched, err := cal.Schedule(utc(1950, time.January, 9, 0, 0), utc(1950, time.January, 14, 0, 0), ScheduleOptions{})
	require.NoError(t, err)
	require.Equal(t, 6, sched.Len())

	saturday := sched.Row(5)
	assert.Equal(t, time.Saturday, sched.Index()[5].Weekday())
	assert.Equal(t, utc(1950, time.January, 14, 15, 0), saturday["MarketOpen"])
	assert.Equal(t, utc(1950, time.January, 14, 17, 0), saturday["MarketClose"])
	assert.Equal(t, utc(1950, time.January, 13, 20, 0), sched.Row(4)["MarketClose"])

	modern, err := cal.ValidDays(utc(1952, time.October, 4, 0, 0), utc(1952, time.October, 5, 0, 0), nil)
	require.NoError(t, err)
	assert.Empty(t, modern)
}

func TestNYSE_OpenOverride(t *testing.T) {
	open := At(10, 0)
	cal, err := NewNYSE(&open, nil, zerolog.Nop())
	require.NoError(t, err)

	assert.True(t, cal.IsCustom(MarketOpen))
	opens := column(t, cal, utc(2024, time.January, 8, 0, 0), utc(2024, time.January, 8, 0, 0), MarketOpen)
	assert.Equal(t, []time.Time{utc(2024, time.January, 8, 15, 0)}, opens)
}

func TestFX_Week(t *testing.T) {
	cal := build(t, NewFX)

	sched, err := cal.Schedule(utc(2024, time.January, 8, 0, 0), utc(2024, time.January, 12, 0, 0), ScheduleOptions{})
	require.NoError(t, err)
	require.Equal(t, 5, sched.Len())
	assert.Equal(t, utc(2024, time.January, 7, 22, 0), sched.Row(0)["MarketOpen"])
	assert.Equal(t, utc(2024, time.January, 12, 22, 0), sched.Row(4)["MarketClose"])

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	local, err := cal.Schedule(utc(2024, time.January, 8, 0, 0), utc(2024, time.January, 8, 0, 0), ScheduleOptions{Location: ny})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 7, 17, 0, 0, 0, ny), local.Row(0)["MarketOpen"])
}

func TestFX_ValidDaysSkipWeekend(t *testing.T) {
	cal := build(t, NewFX)

	days, err := cal.ValidDays(utc(2024, time.January, 6, 0, 0), utc(2024, time.January, 14, 0, 0), nil)
	require.NoError(t, err)
	require.Len(t, days, 5)
	assert.Equal(t, utc(2024, time.January, 8, 0, 0), days[0])
	assert.Equal(t, utc(2024, time.January, 12, 0, 0), days[4])
	for _, d := range days {
		assert.NotEqual(t, time.Saturday, d.Weekday(), d.Format("2006-01-02"))
		assert.NotEqual(t, time.Sunday, d.Weekday(), d.Format("2006-01-02"))
	}
}

func TestCrypto_EveryDay(t *testing.T) {
	cal := build(t, NewCrypto)

	sched, err := cal.Schedule(utc(2024, time.January, 1, 0, 0), utc(2024, time.January, 7, 0, 0), ScheduleOptions{})
	require.NoError(t, err)
	require.Equal(t, 7, sched.Len())
	for i := 0; i < sched.Len(); i++ {
		row := sched.Row(i)
		assert.Equal(t, 24*time.Hour, row["MarketClose"].Sub(row["MarketOpen"]))
	}
	assert.Equal(t, utc(2024, time.January, 6, 0, 0), sched.Row(5)["MarketOpen"])
}

func TestCMEEquity_Breaks(t *testing.T) {
	cal := build(t, NewCMEEquity)

	sched, err := cal.Schedule(utc(2024, time.January, 9, 0, 0), utc(2024, time.January, 9, 0, 0), ScheduleOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"MarketOpen", "BreakStart", "BreakEnd", "MarketClose"}, sched.Columns())

	row := sched.Row(0)
	assert.Equal(t, utc(2024, time.January, 8, 23, 0), row["MarketOpen"])
	assert.Equal(t, utc(2024, time.January, 9, 21, 15), row["BreakStart"])
	assert.Equal(t, utc(2024, time.January, 9, 21, 30), row["BreakEnd"])
	assert.Equal(t, utc(2024, time.January, 9, 22, 0), row["MarketClose"])
}

func TestCMEEquity_ForceSpecialTimes(t *testing.T) {
	cal := build(t, NewCMEEquity)
	day := utc(2024, time.November, 29, 0, 0)
	noon := utc(2024, time.November, 29, 18, 0)

	tests := []struct {
		name       string
		mode       SpecialTimesMode
		closeAt    time.Time
		breakStart time.Time
	}{
		{"force clamps the break", ForceSpecialTimes, noon, noon},
		{"column only", SpecialTimesColumnOnly, noon, utc(2024, time.November, 29, 21, 15)},
		{"ignore", IgnoreSpecialTimes, utc(2024, time.November, 29, 22, 0), utc(2024, time.November, 29, 21, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched, err := cal.Schedule(day, day, ScheduleOptions{ForceSpecialTimes: tt.mode})
			require.NoError(t, err)
			row := sched.Row(0)
			assert.Equal(t, tt.closeAt, row["MarketClose"])
			assert.Equal(t, tt.breakStart, row["BreakStart"])
		})
	}
}

func TestNYSE_ScheduleColumnSelection(t *testing.T) {
	cal := build(t, NewNYSE)
	day := utc(2024, time.November, 29, 0, 0)
	early := utc(2024, time.November, 29, 18, 0)

	tests := []struct {
		name    string
		opts    ScheduleOptions
		columns []string
		row     map[string]time.Time
	}{
		{
			name:    "default open through close",
			opts:    ScheduleOptions{},
			columns: []string{"MarketOpen", "MarketClose"},
			row:     map[string]time.Time{"MarketOpen": utc(2024, time.November, 29, 14, 30), "MarketClose": early},
		},
		{
			name:    "pre through post",
			opts:    TypeRange(Pre, Post),
			columns: []string{"Pre", "MarketOpen", "MarketClose", "Post"},
			row: map[string]time.Time{
				"Pre":         utc(2024, time.November, 29, 9, 0),
				"MarketOpen":  utc(2024, time.November, 29, 14, 30),
				"MarketClose": early,
				"Post":        early,
			},
		},
		{
			name:    "open through post",
			opts:    TypeRange(MarketOpen, Post),
			columns: []string{"MarketOpen", "MarketClose", "Post"},
			row:     map[string]time.Time{"MarketOpen": utc(2024, time.November, 29, 14, 30), "MarketClose": early, "Post": early},
		},
		{
			name:    "all market times",
			opts:    ScheduleOptions{AllMarketTimes: true},
			columns: []string{"Pre", "MarketOpen", "MarketClose", "Post"},
			row:     map[string]time.Time{"Pre": utc(2024, time.November, 29, 9, 0), "Post": early},
		},
		{
			name:    "explicit list wins over range",
			opts:    ScheduleOptions{MarketTimes: []MarketTimeType{MarketClose, Post}, AllMarketTimes: true},
			columns: []string{"MarketClose", "Post"},
			row:     map[string]time.Time{"MarketClose": early, "Post": early},
		},
		{
			name:    "post unclamped without force",
			opts:    ScheduleOptions{AllMarketTimes: true, ForceSpecialTimes: SpecialTimesColumnOnly},
			columns: []string{"Pre", "MarketOpen", "MarketClose", "Post"},
			row:     map[string]time.Time{"MarketClose": early, "Post": utc(2024, time.November, 30, 1, 0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched, err := cal.Schedule(day, day, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.columns, sched.Columns())
			require.Equal(t, 1, sched.Len())
			row := sched.Row(0)
			for col, want := range tt.row {
				assert.Equal(t, want, row[col], col)
			}
		})
	}
}

func TestSchedule_TypeRangeErrors(t *testing.T) {
	cal := build(t, NewNYSE)
	day := utc(2024, time.November, 29, 0, 0)

	_, err := cal.Schedule(day, day, TypeRange(Post, Pre))
	assert.ErrorIs(t, err, ErrMarketTimesNotSet)

	_, err = cal.Schedule(day, day, TypeRange(BreakStart, BreakEnd))
	assert.ErrorIs(t, err, ErrMarketTimesNotSet)
}

func TestCFE_BlackFriday(t *testing.T) {
	cal := build(t, NewCFE)

	closes := column(t, cal, utc(2024, time.November, 29, 0, 0), utc(2024, time.November, 29, 0, 0), MarketClose)
	assert.Equal(t, []time.Time{utc(2024, time.November, 29, 18, 15)}, closes)
}

func TestMarketCalendar_SessionBounds(t *testing.T) {
	cal := build(t, NewNYSE)

	open, closeAt, ok := cal.SessionBounds(utc(2024, time.January, 8, 0, 0))
	require.True(t, ok)
	assert.Equal(t, "09:30", open.Format("15:04"))
	assert.Equal(t, "16:00", closeAt.Format("15:04"))
	assert.Equal(t, cal.Location(), open.Location())

	_, _, ok = cal.SessionBounds(utc(2024, time.January, 13, 0, 0))
	assert.False(t, ok)
}
