package market_hours

import (
	"errors"
	"fmt"
	"time"

	"github.com/aristath/marketcal/internal/holidays"
	"github.com/aristath/marketcal/internal/offsets"
)

// MarketTimeType identifies a session time column.
type MarketTimeType int

const (
	MarketOpen MarketTimeType = iota
	MarketClose
	BreakStart
	BreakEnd
	Pre
	Post
)

var marketTimeTypeNames = [...]string{"MarketOpen", "MarketClose", "BreakStart", "BreakEnd", "Pre", "Post"}

// String returns the schedule column label.
func (t MarketTimeType) String() string {
	if t < 0 || int(t) >= len(marketTimeTypeNames) {
		return fmt.Sprintf("MarketTimeType(%d)", int(t))
	}
	return marketTimeTypeNames[t]
}

// ParseMarketTimeType is the inverse of String.
func ParseMarketTimeType(s string) (MarketTimeType, error) {
	for i, name := range marketTimeTypeNames {
		if name == s {
			return MarketTimeType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownMarketTime, s)
}

// OpenClose states whether a market time opens or closes trading.
type OpenClose int

const (
	// OpenCloseDefault uses the built-in classification of the type.
	OpenCloseDefault OpenClose = iota
	Opens
	Closes
)

// DefaultOpenCloseMap classifies the built-in types; true marks an opening time.
func DefaultOpenCloseMap() map[MarketTimeType]bool {
	return map[MarketTimeType]bool{
		MarketOpen:  true,
		MarketClose: false,
		BreakStart:  false,
		BreakEnd:    true,
		Pre:         true,
		Post:        false,
	}
}

// MarketTime is a time of day valid from Date onward. A nil Time marks the
// type as discontinued from Date. DayOffset moves the time onto an earlier or
// later calendar day than the session label.
type MarketTime struct {
	Time      *offsets.TimeOfDay
	DayOffset int
	Date      time.Time
}

// At builds a MarketTime valid since the beginning.
func At(hour, minute int) MarketTime {
	tod := offsets.NewTimeOfDay(hour, minute)
	return MarketTime{Time: &tod}
}

// WithDayOffset returns m moved by n calendar days.
func (m MarketTime) WithDayOffset(n int) MarketTime {
	m.DayOffset = n
	return m
}

// Since returns m valid from the given date.
func (m MarketTime) Since(y int, month time.Month, d int) MarketTime {
	m.Date = time.Date(y, month, d, 0, 0, 0, 0, time.UTC)
	return m
}

// Discontinued returns a regime that ends a market time type on the given date.
func Discontinued(y int, month time.Month, d int) MarketTime {
	return MarketTime{Date: time.Date(y, month, d, 0, 0, 0, 0, time.UTC)}
}

// delta is the signed distance of the time from the session day's midnight.
func (m MarketTime) delta() time.Duration {
	if m.Time == nil {
		return 0
	}
	return m.Time.Duration() + time.Duration(m.DayOffset)*24*time.Hour
}

// SpecialTime replaces a regular time on the dates its calendar yields.
// When Calendar is nil, New compiles Rules into a calendar called Name.
type SpecialTime struct {
	Time      offsets.TimeOfDay
	Calendar  *holidays.Calendar
	Name      string
	Rules     []holidays.Rule
	DayOffset int
}

// SpecialTimeAdhoc replaces a regular time on explicit dates.
type SpecialTimeAdhoc struct {
	Time      offsets.TimeOfDay
	Dates     []time.Time
	DayOffset int
}

// Interruption is a one-off trading halt within a session.
type Interruption struct {
	Date  time.Time
	Start MarketTime
	End   MarketTime
}

// Options describes a market calendar. OpenCloseMap entries override
// DefaultOpenCloseMap.
type Options struct {
	Name               string
	RegularMarketTimes map[MarketTimeType][]MarketTime
	OpenCloseMap       map[MarketTimeType]bool
	Location           *time.Location
	RegularHolidays    *holidays.Calendar
	AdhocHolidays      []time.Time
	Aliases            []string
	Weekmask           offsets.Weekmask
	SpecialOpens       []SpecialTime
	SpecialOpensAdhoc  []SpecialTimeAdhoc
	SpecialCloses      []SpecialTime
	SpecialClosesAdhoc []SpecialTimeAdhoc
	Interruptions      []Interruption
}

// SpecialTimesMode controls how special opens and closes enter a schedule.
type SpecialTimesMode int

const (
	// ForceSpecialTimes overlays special times and clamps the other columns
	// of the affected rows into the shortened session.
	ForceSpecialTimes SpecialTimesMode = iota
	// SpecialTimesColumnOnly overlays special times on their own column.
	SpecialTimesColumnOnly
	// IgnoreSpecialTimes keeps the regular times.
	IgnoreSpecialTimes
)

// ScheduleOptions configures Schedule and ScheduleFromDays. Location
// converts the output columns (nil keeps UTC). MarketTimes lists the columns
// to produce. When it is nil, AllMarketTimes selects every regular time and
// otherwise the regular times from Start through End are produced, with a
// nil Start meaning MarketOpen and a nil End meaning MarketClose.
type ScheduleOptions struct {
	Location          *time.Location
	ForceSpecialTimes SpecialTimesMode
	MarketTimes       []MarketTimeType
	AllMarketTimes    bool
	Start             *MarketTimeType
	End               *MarketTimeType
	Interruptions     bool
}

// TypeRange returns options producing the regular times from start through end.
func TypeRange(start, end MarketTimeType) ScheduleOptions {
	return ScheduleOptions{Start: &start, End: &end}
}

var (
	// ErrNotInRegularTimes is returned when changing or querying an unknown market time.
	ErrNotInRegularTimes = errors.New("is not in regular market times")
	// ErrAlreadyInRegularTimes is returned when adding an existing market time.
	ErrAlreadyInRegularTimes = errors.New("is already in regular market times")
	// ErrMarketTimesNotSet is returned when the calendar lacks an open or close.
	ErrMarketTimesNotSet = errors.New("you need to set market_times")
	// ErrUnknownMarketTime is returned when parsing an unknown column label.
	ErrUnknownMarketTime = errors.New("unknown market time")
	// ErrInvalidRange is returned when a start date follows the end date.
	ErrInvalidRange = errors.New("start_date must be before or equal to end_date")
	// ErrNoSchedules is returned by MergeSchedules for an empty input.
	ErrNoSchedules = errors.New("no schedules to merge")
	// ErrNotCovered is returned by OpenAtTime outside the schedule.
	ErrNotCovered = errors.New("the provided timestamp is not covered by the schedule")
	// ErrCalendarNotFound is returned for an unknown calendar name.
	ErrCalendarNotFound = errors.New("calendar not found")
	// ErrNotImplemented is returned for ranges a calendar cannot serve.
	ErrNotImplemented = errors.New("not implemented")
)
