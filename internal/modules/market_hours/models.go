package market_hours

import "time"

// MarketStatus represents the current status of a market
type MarketStatus struct {
	Calendar  string `json:"calendar" msgpack:"calendar"`
	Open      bool   `json:"open" msgpack:"open"`
	Timezone  string `json:"timezone" msgpack:"timezone"`
	ClosesAt  string `json:"closes_at,omitempty" msgpack:"closes_at,omitempty"`   // "15:04" in exchange time, when open
	OpensAt   string `json:"opens_at,omitempty" msgpack:"opens_at,omitempty"`     // "15:04" in exchange time, when closed
	OpensDate string `json:"opens_date,omitempty" msgpack:"opens_date,omitempty"` // Set when the next open is on another day
}

// ScheduleRow is one session of a schedule in export form
type ScheduleRow struct {
	Date  string               `json:"date" msgpack:"date"`
	Times map[string]time.Time `json:"times" msgpack:"times"`
}
