package server

import (
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/aristath/marketcal/internal/modules/market_hours"
	"github.com/aristath/marketcal/internal/scheduler"
)

// SystemStatusResponse is the payload of GET /api/system/status
type SystemStatusResponse struct {
	Status         string  `json:"status"`
	Timestamp      string  `json:"timestamp"`
	Uptime         string  `json:"uptime"`
	Calendars      int     `json:"calendars"`
	Goroutines     int     `json:"goroutines"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryPercent  float64 `json:"memory_percent"`
	ProcessRSSMB   float64 `json:"process_rss_mb"`
	ProcessThreads int32   `json:"process_threads"`
}

// SystemHandlers handles system-wide monitoring and operations
type SystemHandlers struct {
	log          zerolog.Logger
	factory      *market_hours.CalendarFactory
	warmCacheJob scheduler.Job
	history      *scheduler.JobHistory
	startedAt    time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(
	log zerolog.Logger,
	factory *market_hours.CalendarFactory,
	warmCacheJob scheduler.Job,
	history *scheduler.JobHistory,
) *SystemHandlers {
	return &SystemHandlers{
		log:          log.With().Str("service", "system").Logger(),
		factory:      factory,
		warmCacheJob: warmCacheJob,
		history:      history,
		startedAt:    time.Now(),
	}
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()
	rss, threads := h.getProcessStats()

	h.writeJSON(w, http.StatusOK, SystemStatusResponse{
		Status:         "healthy",
		Timestamp:      time.Now().Format(time.RFC3339),
		Uptime:         time.Since(h.startedAt).Round(time.Second).String(),
		Calendars:      len(h.factory.Calendars()),
		Goroutines:     runtime.NumGoroutine(),
		CPUPercent:     cpuPercent,
		MemoryPercent:  memPercent,
		ProcessRSSMB:   rss,
		ProcessThreads: threads,
	})
}

// HandleTriggerWarmCache triggers the calendar cache warm-up immediately
// POST /api/jobs/warm-cache
func (h *SystemHandlers) HandleTriggerWarmCache(w http.ResponseWriter, r *http.Request) {
	if h.warmCacheJob == nil {
		h.log.Warn().Msg("Warm cache job not registered")
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "Warm cache job not registered",
		})
		return
	}

	if err := h.warmCacheJob.Run(); err != nil {
		h.log.Error().Err(err).Msg("Warm cache job failed")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "success",
		"job":    h.warmCacheJob.Name(),
	})
}

// HandleJobHistory returns recent job runs
// GET /api/jobs/history?job=&limit=
func (h *SystemHandlers) HandleJobHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "Job history not configured",
		})
		return
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 500 {
			http.Error(w, "limit must be between 1 and 500", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	runs, err := h.history.Recent(r.Context(), r.URL.Query().Get("job"), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load job history")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// getSystemStats returns host CPU and RAM usage percentages
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// getProcessStats returns the resident memory in MB and thread count of this process
func (h *SystemHandlers) getProcessStats() (float64, int32) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to inspect process")
		return 0, 0
	}

	var rss float64
	if info, err := proc.MemoryInfo(); err == nil {
		rss = float64(info.RSS) / 1024 / 1024
	}
	threads, err := proc.NumThreads()
	if err != nil {
		threads = 0
	}
	return rss, threads
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
