package handlers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes(t *testing.T) {
	router, ok := newTestRouter(t).(*chi.Mux)
	require.True(t, ok)

	var patterns []string
	err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		patterns = append(patterns, method+" "+route)
		return nil
	})
	require.NoError(t, err)

	for _, want := range []string{
		"GET /api/market-hours/calendars",
		"GET /api/market-hours/calendars/{calendar}/schedule",
		"GET /api/market-hours/calendars/{calendar}/valid-days",
		"GET /api/market-hours/calendars/{calendar}/holidays",
		"GET /api/market-hours/calendars/{calendar}/stats",
		"GET /api/market-hours/calendars/{calendar}/date-range",
		"GET /api/market-hours/frequencies",
		"GET /api/market-hours/holiday-calendars",
		"GET /api/market-hours/holiday-calendars/{name}",
		"GET /api/market-hours/status",
		"GET /api/market-hours/status/{calendar}",
		"GET /api/market-hours/open-markets",
		"GET /api/market-hours/merge",
		"GET /api/market-hours/stream",
	} {
		assert.Contains(t, patterns, want)
	}
}
