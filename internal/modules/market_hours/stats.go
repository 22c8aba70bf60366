package market_hours

import (
	"errors"
	"fmt"

	"github.com/aristath/marketcal/internal/frame"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptySchedule is returned when a schedule has no complete session.
var ErrEmptySchedule = errors.New("schedule has no complete sessions")

// SessionStats summarizes the trading hours of a schedule.
type SessionStats struct {
	Sessions    int     `json:"sessions" msgpack:"sessions"`
	TotalHours  float64 `json:"total_hours" msgpack:"total_hours"`
	MeanHours   float64 `json:"mean_hours" msgpack:"mean_hours"`
	StdDevHours float64 `json:"std_dev_hours" msgpack:"std_dev_hours"`
	MinHours    float64 `json:"min_hours" msgpack:"min_hours"`
	MaxHours    float64 `json:"max_hours" msgpack:"max_hours"`
}

// ComputeSessionStats measures every row with both MarketOpen and
// MarketClose. A break, when both of its columns are present, is not counted
// as trading time.
func ComputeSessionStats(schedule *frame.Frame) (*SessionStats, error) {
	opens, ok := schedule.Column(MarketOpen.String())
	if !ok {
		return nil, fmt.Errorf("%w: %s", frame.ErrColumnNotFound, MarketOpen)
	}
	closes, ok := schedule.Column(MarketClose.String())
	if !ok {
		return nil, fmt.Errorf("%w: %s", frame.ErrColumnNotFound, MarketClose)
	}
	breakStarts, hasBreakStart := schedule.Column(BreakStart.String())
	breakEnds, hasBreakEnd := schedule.Column(BreakEnd.String())

	hours := make([]float64, 0, len(opens))
	for i := range opens {
		if opens[i].IsZero() || closes[i].IsZero() {
			continue
		}
		d := closes[i].Sub(opens[i])
		if hasBreakStart && hasBreakEnd && !breakStarts[i].IsZero() && !breakEnds[i].IsZero() {
			d -= breakEnds[i].Sub(breakStarts[i])
		}
		hours = append(hours, d.Hours())
	}
	if len(hours) == 0 {
		return nil, ErrEmptySchedule
	}

	stats := &SessionStats{
		Sessions:   len(hours),
		TotalHours: floats.Sum(hours),
		MeanHours:  stat.Mean(hours, nil),
		MinHours:   floats.Min(hours),
		MaxHours:   floats.Max(hours),
	}
	if len(hours) > 1 {
		stats.StdDevHours = stat.StdDev(hours, nil)
	}
	return stats, nil
}
