// Package config provides configuration management functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const dateLayout = "2006-01-02"

var (
	// ErrInvalidPort is returned for a port outside 1..65535.
	ErrInvalidPort = errors.New("port must be between 1 and 65535")
	// ErrInvalidWindow is returned when the holiday window ends before it starts.
	ErrInvalidWindow = errors.New("holiday window end is before its start")
)

// Config holds application configuration
type Config struct {
	LogLevel           string
	LogPretty          bool
	Port               int
	DevMode            bool
	HolidayWindowStart time.Time // First day pre-computed by the cache warm-up
	HolidayWindowEnd   time.Time
	CacheWarmSchedule  string // Cron spec with seconds, e.g. "0 0 3 * * *"
	DefaultCalendar    string
	DataDir            string // Holds cache.db (job run history)
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	now := time.Now().UTC()
	start, err := getEnvAsDate("HOLIDAY_WINDOW_START", time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}
	end, err := getEnvAsDate("HOLIDAY_WINDOW_END", time.Date(now.Year()+2, time.December, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPretty:          getEnvAsBool("LOG_PRETTY", false),
		Port:               getEnvAsInt("PORT", 8001),
		DevMode:            getEnvAsBool("DEV_MODE", false),
		HolidayWindowStart: start,
		HolidayWindowEnd:   end,
		CacheWarmSchedule:  getEnv("CACHE_WARM_SCHEDULE", "0 0 3 * * *"),
		DefaultCalendar:    getEnv("DEFAULT_CALENDAR", "NYSE"),
		DataDir:            getEnv("DATA_DIR", "data"),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	if c.HolidayWindowEnd.Before(c.HolidayWindowStart) {
		return ErrInvalidWindow
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(c.CacheWarmSchedule); err != nil {
		return fmt.Errorf("invalid CACHE_WARM_SCHEDULE %q: %w", c.CacheWarmSchedule, err)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDate(key string, defaultValue time.Time) (time.Time, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return t, nil
}
