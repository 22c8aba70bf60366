package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type calendarHandler func(w http.ResponseWriter, r *http.Request, name string)

func withCalendar(fn calendarHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, chi.URLParam(r, "calendar"))
	}
}

// RegisterRoutes registers all market hours routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/market-hours", func(r chi.Router) {
		r.Get("/calendars", h.HandleListCalendars)
		r.Get("/calendars/{calendar}/schedule", withCalendar(h.HandleGetSchedule))
		r.Get("/calendars/{calendar}/valid-days", withCalendar(h.HandleGetValidDays))
		r.Get("/calendars/{calendar}/holidays", withCalendar(h.HandleGetHolidays))
		r.Get("/calendars/{calendar}/stats", withCalendar(h.HandleGetStats))
		r.Get("/calendars/{calendar}/date-range", withCalendar(h.HandleGetDateRange))
		r.Get("/frequencies", h.HandleListFrequencies)
		r.Get("/holiday-calendars", h.HandleListHolidayCalendars)
		r.Get("/holiday-calendars/{name}", h.HandleGetHolidayCalendar)
		r.Get("/status", h.HandleGetStatus)
		r.Get("/status/{calendar}", withCalendar(h.HandleGetStatusByCalendar))
		r.Get("/open-markets", h.HandleGetOpenMarkets)
		r.Get("/merge", h.HandleMerge)
		r.Get("/stream", h.HandleStatusStream)
	})
}
