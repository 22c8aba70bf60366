package market_hours

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/marketcal/internal/frame"
	"github.com/vmihailenco/msgpack/v5"
)

// Export formats.
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// ErrUnknownFormat is returned by EncodeSchedule for an unsupported format.
var ErrUnknownFormat = errors.New("unknown export format")

// ScheduleRows flattens a schedule. Zero values are omitted from Times.
func ScheduleRows(schedule *frame.Frame) []ScheduleRow {
	rows := make([]ScheduleRow, schedule.Len())
	for i, d := range schedule.Index() {
		times := make(map[string]time.Time)
		for name, v := range schedule.Row(i) {
			if !v.IsZero() {
				times[name] = v
			}
		}
		rows[i] = ScheduleRow{Date: d.Format("2006-01-02"), Times: times}
	}
	return rows
}

// EncodeSchedule serializes a schedule and returns the payload with its
// content type.
func EncodeSchedule(schedule *frame.Frame, format string) ([]byte, string, error) {
	rows := ScheduleRows(schedule)
	switch format {
	case "", FormatJSON:
		b, err := json.Marshal(rows)
		return b, "application/json", err
	case FormatMsgpack:
		b, err := msgpack.Marshal(rows)
		return b, "application/msgpack", err
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// DecodeScheduleRows reads rows written by EncodeSchedule in msgpack format.
func DecodeScheduleRows(b []byte) ([]ScheduleRow, error) {
	var rows []ScheduleRow
	if err := msgpack.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode schedule: %w", err)
	}
	return rows, nil
}
