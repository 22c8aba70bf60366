// Package handlers provides HTTP handlers for market calendar operations.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/marketcal/internal/frame"
	"github.com/aristath/marketcal/internal/holidays"
	"github.com/aristath/marketcal/internal/modules/market_hours"
	"github.com/aristath/marketcal/internal/offsets"
)

const (
	dateLayout = "2006-01-02"
	maxPeriods = 10000
)

// Handler handles market hours HTTP requests
type Handler struct {
	service *market_hours.MarketHoursService
	log     zerolog.Logger
	now     func() time.Time
}

// NewHandler creates a new market hours handler
func NewHandler(
	service *market_hours.MarketHoursService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "market_hours").Logger(),
		now:     time.Now,
	}
}

// HandleListCalendars handles GET /api/market-hours/calendars
func (h *Handler) HandleListCalendars(w http.ResponseWriter, r *http.Request) {
	factory := h.service.Factory()
	h.writeData(w, map[string]interface{}{
		"calendars": factory.Calendars(),
		"names":     factory.Names(),
	})
}

// HandleGetStatus handles GET /api/market-hours/status
// Returns current market status for every registered calendar
func (h *Handler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	names := h.service.Factory().Calendars()
	markets := make([]*market_hours.MarketStatus, 0, len(names))
	for _, name := range names {
		status, err := h.service.GetMarketStatus(name, now)
		if err != nil {
			h.log.Warn().Err(err).Str("calendar", name).Msg("Failed to get market status")
			continue
		}
		markets = append(markets, status)
	}

	h.writeData(w, map[string]interface{}{
		"timestamp": now.Format(time.RFC3339),
		"markets":   markets,
	})
}

// HandleGetStatusByCalendar handles GET /api/market-hours/status/{calendar}
func (h *Handler) HandleGetStatusByCalendar(w http.ResponseWriter, r *http.Request, name string) {
	status, err := h.service.GetMarketStatus(name, h.now())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, status)
}

// HandleGetOpenMarkets handles GET /api/market-hours/open-markets
// Returns list of calendars trading right now
func (h *Handler) HandleGetOpenMarkets(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	openMarkets := h.service.GetOpenMarkets(now)

	h.writeData(w, map[string]interface{}{
		"timestamp":    now.Format(time.RFC3339),
		"open_markets": openMarkets,
		"count":        len(openMarkets),
	})
}

// HandleGetSchedule handles GET /api/market-hours/calendars/{calendar}/schedule
// Query: start, end (YYYY-MM-DD), tz (IANA zone), format (json|msgpack)
func (h *Handler) HandleGetSchedule(w http.ResponseWriter, r *http.Request, name string) {
	cal, err := h.service.Factory().Get(name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	start, end, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts := market_hours.ScheduleOptions{}
	if tz := r.URL.Query().Get("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid tz: %s", tz), http.StatusBadRequest)
			return
		}
		opts.Location = loc
	}

	sched, err := cal.Schedule(start, end, opts)
	if err != nil {
		h.writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == market_hours.FormatMsgpack {
		body, contentType, err := market_hours.EncodeSchedule(sched, format)
		if err != nil {
			h.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			h.log.Error().Err(err).Msg("Failed to write schedule")
		}
		return
	}
	if format != "" && format != market_hours.FormatJSON {
		http.Error(w, fmt.Sprintf("unknown format: %s", format), http.StatusBadRequest)
		return
	}

	h.writeData(w, map[string]interface{}{
		"calendar": cal.Name(),
		"columns":  sched.Columns(),
		"sessions": market_hours.ScheduleRows(sched),
	})
}

// HandleGetValidDays handles GET /api/market-hours/calendars/{calendar}/valid-days
func (h *Handler) HandleGetValidDays(w http.ResponseWriter, r *http.Request, name string) {
	cal, err := h.service.Factory().Get(name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	start, end, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	days, err := cal.ValidDays(start, end, nil)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, map[string]interface{}{
		"calendar": cal.Name(),
		"days":     formatDates(days),
		"count":    len(days),
	})
}

// HandleGetHolidays handles GET /api/market-hours/calendars/{calendar}/holidays
// Returns the closures of one year, defaulting to the current year
func (h *Handler) HandleGetHolidays(w http.ResponseWriter, r *http.Request, name string) {
	cal, err := h.service.Factory().Get(name)
	if err != nil {
		h.writeError(w, err)
		return
	}

	year := h.now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsedYear, err := strconv.Atoi(yearStr)
		if err != nil || parsedYear <= 0 {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = parsedYear
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	closures := make([]map[string]string, 0)
	if regular := cal.RegularHolidays(); regular != nil {
		for _, nd := range regular.HolidaysWithNames(start, end) {
			closures = append(closures, map[string]string{"date": nd.Date.Format(dateLayout), "name": nd.Name})
		}
	}
	adhoc := make([]string, 0)
	for _, d := range cal.AdhocHolidays() {
		if !d.Before(start) && !d.After(end) {
			adhoc = append(adhoc, d.Format(dateLayout))
		}
	}

	h.writeData(w, map[string]interface{}{
		"calendar": cal.Name(),
		"year":     year,
		"holidays": closures,
		"adhoc":    adhoc,
	})
}

// HandleGetDateRange handles GET /api/market-hours/calendars/{calendar}/date-range
// Query: start (YYYY-MM-DD, required), end or periods, freq (e.g. "W-FRI", "3B",
// default one trading day), closed (left|right)
func (h *Handler) HandleGetDateRange(w http.ResponseWriter, r *http.Request, name string) {
	q := r.URL.Query()
	opts := market_hours.HTFOptions{Closed: q.Get("closed")}
	if opts.Closed != "" && opts.Closed != "left" && opts.Closed != "right" {
		http.Error(w, "closed must be left or right", http.StatusBadRequest)
		return
	}

	var err error
	if opts.Start, err = time.Parse(dateLayout, q.Get("start")); err != nil {
		http.Error(w, "start parameter is required as YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if endStr := q.Get("end"); endStr != "" {
		if opts.End, err = time.Parse(dateLayout, endStr); err != nil {
			http.Error(w, fmt.Sprintf("invalid end: %v", err), http.StatusBadRequest)
			return
		}
	}
	if periodsStr := q.Get("periods"); periodsStr != "" {
		opts.Periods, err = strconv.Atoi(periodsStr)
		if err != nil || opts.Periods < 1 || opts.Periods > maxPeriods {
			http.Error(w, fmt.Sprintf("periods must be between 1 and %d", maxPeriods), http.StatusBadRequest)
			return
		}
	}
	if opts.End.IsZero() && opts.Periods == 0 {
		http.Error(w, "end or periods parameter is required", http.StatusBadRequest)
		return
	}

	freq := q.Get("freq")
	days, err := h.service.DateRange(name, freq, opts)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, map[string]interface{}{
		"calendar": name,
		"freq":     freq,
		"days":     formatDates(days),
		"count":    len(days),
	})
}

// HandleListFrequencies handles GET /api/market-hours/frequencies
func (h *Handler) HandleListFrequencies(w http.ResponseWriter, r *http.Request) {
	codes := h.service.Frequencies().Codes()
	h.writeData(w, map[string]interface{}{
		"frequencies": codes,
		"count":       len(codes),
	})
}

// HandleListHolidayCalendars handles GET /api/market-hours/holiday-calendars
func (h *Handler) HandleListHolidayCalendars(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, map[string]interface{}{
		"calendars": h.service.HolidayCalendars().Names(),
	})
}

// HandleGetHolidayCalendar handles GET /api/market-hours/holiday-calendars/{name}
// Returns the named holidays of one year, defaulting to the current year
func (h *Handler) HandleGetHolidayCalendar(w http.ResponseWriter, r *http.Request) {
	cal, err := h.service.HolidayCalendars().Get(chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	year := h.now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsedYear, err := strconv.Atoi(yearStr)
		if err != nil || parsedYear <= 0 {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = parsedYear
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	named := make([]map[string]string, 0)
	for _, nd := range cal.HolidaysWithNames(start, end) {
		named = append(named, map[string]string{"date": nd.Date.Format(dateLayout), "name": nd.Name})
	}
	h.writeData(w, map[string]interface{}{
		"calendar": cal.Name(),
		"year":     year,
		"rules":    len(cal.Rules()),
		"holidays": named,
	})
}

// HandleGetStats handles GET /api/market-hours/calendars/{calendar}/stats
func (h *Handler) HandleGetStats(w http.ResponseWriter, r *http.Request, name string) {
	cal, err := h.service.Factory().Get(name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	start, end, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sched, err := cal.Schedule(start, end, market_hours.ScheduleOptions{})
	if err != nil {
		h.writeError(w, err)
		return
	}
	stats, err := market_hours.ComputeSessionStats(sched)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, stats)
}

// HandleMerge handles GET /api/market-hours/merge
// Query: calendars (comma separated), start, end, how (outer|inner)
func (h *Handler) HandleMerge(w http.ResponseWriter, r *http.Request) {
	names := strings.Split(r.URL.Query().Get("calendars"), ",")
	if len(names) == 1 && names[0] == "" {
		http.Error(w, "calendars parameter is required", http.StatusBadRequest)
		return
	}
	start, end, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	how := r.URL.Query().Get("how")
	if how == "" {
		how = "outer"
	}
	if how != "outer" && how != "inner" {
		http.Error(w, "how must be outer or inner", http.StatusBadRequest)
		return
	}

	schedules := make([]*frame.Frame, 0, len(names))
	for _, name := range names {
		cal, err := h.service.Factory().Get(strings.TrimSpace(name))
		if err != nil {
			h.writeError(w, err)
			return
		}
		sched, err := cal.Schedule(start, end, market_hours.ScheduleOptions{})
		if err != nil {
			h.writeError(w, err)
			return
		}
		schedules = append(schedules, sched)
	}

	merged, err := market_hours.MergeSchedules(schedules, how == "outer")
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, map[string]interface{}{
		"how":      how,
		"columns":  merged.Columns(),
		"sessions": market_hours.ScheduleRows(merged),
	})
}

func parseRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	if q.Get("start") == "" || q.Get("end") == "" {
		return time.Time{}, time.Time{}, errors.New("start and end parameters are required")
	}
	start, err := time.Parse(dateLayout, q.Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start: %w", err)
	}
	end, err := time.Parse(dateLayout, q.Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end: %w", err)
	}
	return start, end, nil
}

func formatDates(days frame.Index) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format(dateLayout)
	}
	return out
}

// writeError maps domain errors onto status codes
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, market_hours.ErrCalendarNotFound),
		errors.Is(err, holidays.ErrCalendarNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, market_hours.ErrInvalidRange),
		errors.Is(err, market_hours.ErrEmptySchedule),
		errors.Is(err, market_hours.ErrUnknownFormat),
		errors.Is(err, offsets.ErrUnknownOffset),
		errors.Is(err, offsets.ErrRangeBounds),
		errors.Is(err, offsets.ErrZeroStep),
		errors.Is(err, strconv.ErrRange),
		errors.Is(err, strconv.ErrSyntax):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, market_hours.ErrNotImplemented):
		http.Error(w, err.Error(), http.StatusNotImplemented)
	default:
		h.log.Error().Err(err).Msg("Request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeData wraps data in the response envelope
func (h *Handler) writeData(w http.ResponseWriter, data interface{}) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": h.now().Format(time.RFC3339),
		},
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
