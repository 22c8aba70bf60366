package market_hours

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/marketcal/internal/frame"
	"github.com/aristath/marketcal/internal/offsets"
)

func haltedCalendar(t *testing.T) *MarketCalendar {
	t.Helper()
	cal, err := New(Options{
		Name: "Halts",
		RegularMarketTimes: map[MarketTimeType][]MarketTime{
			MarketOpen:  single(At(9, 0)),
			MarketClose: single(At(17, 0)),
		},
		Weekmask: offsets.MondayToFriday,
		Interruptions: []Interruption{
			{Date: utc(2024, time.January, 9, 0, 0), Start: At(10, 0), End: At(11, 0)},
			{Date: utc(2024, time.January, 9, 0, 0), Start: At(13, 0), End: At(13, 30)},
			{Date: utc(2024, time.January, 10, 0, 0), Start: At(12, 0), End: At(12, 15)},
		},
	}, nil, nil, zerolog.Nop())
	require.NoError(t, err)
	return cal
}

func TestColName(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "interruption_start_1"},
		{2, "interruption_end_1"},
		{3, "interruption_start_2"},
		{4, "interruption_end_2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColName(tt.n))
	}
}

func TestSchedule_Interruptions(t *testing.T) {
	cal := haltedCalendar(t)

	ir := cal.InterruptionsFrame()
	assert.Equal(t, 2, ir.Len())
	assert.Equal(t, []string{ColName(1), ColName(2), ColName(3), ColName(4)}, ir.Columns())

	sched, err := cal.Schedule(utc(2024, time.January, 8, 0, 0), utc(2024, time.January, 10, 0, 0), ScheduleOptions{Interruptions: true})
	require.NoError(t, err)
	require.Equal(t, 3, sched.Len())
	assert.Len(t, sched.Columns(), 6)

	monday := sched.Row(0)
	assert.True(t, monday[ColName(1)].IsZero())
	tuesday := sched.Row(1)
	assert.Equal(t, utc(2024, time.January, 9, 10, 0), tuesday[ColName(1)])
	assert.Equal(t, utc(2024, time.January, 9, 13, 30), tuesday[ColName(4)])
	wednesday := sched.Row(2)
	assert.Equal(t, utc(2024, time.January, 10, 12, 15), wednesday[ColName(2)])
	assert.True(t, wednesday[ColName(3)].IsZero())

	plain, err := cal.Schedule(utc(2024, time.January, 8, 0, 0), utc(2024, time.January, 10, 0, 0), ScheduleOptions{})
	require.NoError(t, err)
	assert.Len(t, plain.Columns(), 2)
}

func TestSchedule_InvalidRange(t *testing.T) {
	cal := haltedCalendar(t)

	_, err := cal.Schedule(utc(2024, time.January, 10, 0, 0), utc(2024, time.January, 8, 0, 0), ScheduleOptions{})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestOpenAtTime(t *testing.T) {
	cal := haltedCalendar(t)
	sched, err := cal.Schedule(utc(2024, time.January, 8, 0, 0), utc(2024, time.January, 10, 0, 0), ScheduleOptions{Interruptions: true})
	require.NoError(t, err)

	tests := []struct {
		name         string
		at           time.Time
		includeClose bool
		want         bool
	}{
		{"at the open", utc(2024, time.January, 9, 9, 0), false, true},
		{"during a halt", utc(2024, time.January, 9, 10, 30), false, false},
		{"after a halt", utc(2024, time.January, 9, 11, 30), false, true},
		{"second halt", utc(2024, time.January, 9, 13, 15), false, false},
		{"at the close", utc(2024, time.January, 9, 17, 0), false, false},
		{"at the close inclusive", utc(2024, time.January, 9, 17, 0), true, true},
		{"overnight", utc(2024, time.January, 9, 20, 0), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cal.OpenAtTime(sched, tt.at, tt.includeClose)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = cal.OpenAtTime(sched, utc(2024, time.January, 7, 12, 0), false)
	assert.ErrorIs(t, err, ErrNotCovered)

	noClose, err := sched.Select(MarketOpen.String())
	require.NoError(t, err)
	_, err = cal.OpenAtTime(noClose, utc(2024, time.January, 9, 12, 0), false)
	assert.ErrorIs(t, err, frame.ErrColumnNotFound)
}

func TestDateRangeHTF(t *testing.T) {
	cal := build(t, NewNYSE)

	daily, err := cal.DateRangeHTF(HTFOptions{Start: utc(2024, time.January, 12, 0, 0), End: utc(2024, time.January, 19, 0, 0)})
	require.NoError(t, err)
	assert.Equal(t, frame.Index{
		utc(2024, time.January, 12, 0, 0),
		utc(2024, time.January, 16, 0, 0),
		utc(2024, time.January, 17, 0, 0),
		utc(2024, time.January, 18, 0, 0),
		utc(2024, time.January, 19, 0, 0),
	}, daily)

	weekly := HTFOptions{
		Frequency: offsets.Days(7),
		Start:     utc(2024, time.January, 14, 0, 0),
		End:       utc(2024, time.February, 4, 0, 0),
	}
	right, err := cal.DateRangeHTF(weekly)
	require.NoError(t, err)
	assert.Equal(t, frame.Index{
		utc(2024, time.January, 19, 0, 0),
		utc(2024, time.January, 26, 0, 0),
		utc(2024, time.February, 2, 0, 0),
	}, right)

	weekly.Closed = "left"
	left, err := cal.DateRangeHTF(weekly)
	require.NoError(t, err)
	assert.Equal(t, frame.Index{
		utc(2024, time.January, 16, 0, 0),
		utc(2024, time.January, 22, 0, 0),
		utc(2024, time.January, 29, 0, 0),
	}, left)

	weekly.Periods = 2
	capped, err := cal.DateRangeHTF(weekly)
	require.NoError(t, err)
	assert.Len(t, capped, 2)

	_, err = cal.DateRangeHTF(HTFOptions{Start: utc(1950, time.January, 3, 0, 0), End: utc(1950, time.February, 1, 0, 0)})
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestMergeSchedules(t *testing.T) {
	nyse := build(t, NewNYSE)
	fx := build(t, NewFX)
	start, end := utc(2024, time.January, 15, 0, 0), utc(2024, time.January, 19, 0, 0)

	a, err := nyse.Schedule(start, end, ScheduleOptions{})
	require.NoError(t, err)
	b, err := fx.Schedule(start, end, ScheduleOptions{})
	require.NoError(t, err)

	outer, err := MergeSchedules([]*frame.Frame{a, b}, true)
	require.NoError(t, err)
	require.Equal(t, 5, outer.Len())
	tuesday := outer.Row(1)
	assert.Equal(t, utc(2024, time.January, 15, 22, 0), tuesday["MarketOpen"])
	assert.Equal(t, utc(2024, time.January, 16, 22, 0), tuesday["MarketClose"])

	inner, err := MergeSchedules([]*frame.Frame{a, b}, false)
	require.NoError(t, err)
	require.Equal(t, 4, inner.Len())
	assert.False(t, inner.Index().Contains(start))
	first := inner.Row(0)
	assert.Equal(t, utc(2024, time.January, 16, 14, 30), first["MarketOpen"])
	assert.Equal(t, utc(2024, time.January, 16, 21, 0), first["MarketClose"])

	_, err = MergeSchedules(nil, true)
	assert.ErrorIs(t, err, ErrNoSchedules)
}

func TestMergeSchedules_CommonColumns(t *testing.T) {
	cme := build(t, NewCMEEquity)
	nyse := build(t, NewNYSE)
	day := utc(2024, time.January, 9, 0, 0)

	a, err := cme.Schedule(day, day, ScheduleOptions{})
	require.NoError(t, err)
	b, err := nyse.Schedule(day, day, ScheduleOptions{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		outer   bool
		openAt  time.Time
		closeAt time.Time
	}{
		{"outer spans both sessions", true, utc(2024, time.January, 8, 23, 0), utc(2024, time.January, 9, 22, 0)},
		{"inner keeps the overlap", false, utc(2024, time.January, 9, 14, 30), utc(2024, time.January, 9, 21, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := MergeSchedules([]*frame.Frame{a, b}, tt.outer)
			require.NoError(t, err)
			assert.Equal(t, []string{"MarketOpen", "MarketClose"}, merged.Columns())
			assert.False(t, merged.HasColumn("BreakStart"))
			require.Equal(t, 1, merged.Len())
			row := merged.Row(0)
			assert.Equal(t, tt.openAt, row["MarketOpen"])
			assert.Equal(t, tt.closeAt, row["MarketClose"])
		})
	}
	assert.True(t, a.HasColumn("BreakStart"))
}

func TestComputeSessionStats(t *testing.T) {
	cal := build(t, NewNYSE)

	tests := []struct {
		name       string
		start, end time.Time
		sessions   int
		mean       float64
		stdDev     float64
		min, max   float64
	}{
		{"regular week", utc(2024, time.January, 8, 0, 0), utc(2024, time.January, 12, 0, 0), 5, 6.5, 0, 6.5, 6.5},
		{"thanksgiving week", utc(2024, time.November, 25, 0, 0), utc(2024, time.November, 29, 0, 0), 4, 5.75, 1.5, 3.5, 6.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched, err := cal.Schedule(tt.start, tt.end, ScheduleOptions{})
			require.NoError(t, err)
			stats, err := ComputeSessionStats(sched)
			require.NoError(t, err)
			assert.Equal(t, tt.sessions, stats.Sessions)
			assert.InDelta(t, tt.mean, stats.MeanHours, 1e-9)
			assert.InDelta(t, tt.stdDev, stats.StdDevHours, 1e-9)
			assert.InDelta(t, tt.min, stats.MinHours, 1e-9)
			assert.InDelta(t, tt.max, stats.MaxHours, 1e-9)
			assert.InDelta(t, float64(tt.sessions)*tt.mean, stats.TotalHours, 1e-9)
		})
	}
}

func TestComputeSessionStats_Breaks(t *testing.T) {
	cal := build(t, NewCMEEquity)
	day := utc(2024, time.January, 9, 0, 0)

	sched, err := cal.Schedule(day, day, ScheduleOptions{})
	require.NoError(t, err)
	stats, err := ComputeSessionStats(sched)
	require.NoError(t, err)
	assert.InDelta(t, 22.75, stats.TotalHours, 1e-9)

	empty, err := cal.Schedule(utc(2024, time.January, 13, 0, 0), utc(2024, time.January, 14, 0, 0), ScheduleOptions{})
	require.NoError(t, err)
	_, err = ComputeSessionStats(empty)
	assert.ErrorIs(t, err, ErrEmptySchedule)
}

func TestEncodeSchedule(t *testing.T) {
	cal := build(t, NewCrypto)
	sched, err := cal.Schedule(utc(2024, time.January, 1, 0, 0), utc(2024, time.January, 2, 0, 0), ScheduleOptions{})
	require.NoError(t, err)

	body, contentType, err := EncodeSchedule(sched, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Contains(t, string(body), `"date":"2024-01-01"`)

	body, contentType, err = EncodeSchedule(sched, FormatMsgpack)
	require.NoError(t, err)
	assert.Equal(t, "application/msgpack", contentType)
	rows, err := DecodeScheduleRows(body)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-02", rows[1].Date)
	assert.True(t, rows[1].Times["MarketClose"].Equal(utc(2024, time.January, 3, 0, 0)))

	_, _, err = EncodeSchedule(sched, "csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
