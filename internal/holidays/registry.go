package holidays

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Factory builds a holiday calendar.
type Factory func() (*Calendar, error)

// Registry maps calendar names to factories. Populate it with Init before
// serving lookups.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	log       zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		log:       log.With().Str("component", "holiday_registry").Logger(),
	}
}

// Init registers the built-in holiday calendars.
func (r *Registry) Init() {
	r.Register(USFederalHolidayCalendarName, USFederalHolidayCalendar)
	r.Register(NYSEHolidayCalendarName, NYSEHolidayCalendar)
	r.Register(CMEHolidayCalendarName, CMEHolidayCalendar)
}

// Register adds factory under name, replacing any existing entry.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		r.log.Debug().Str("calendar", name).Msg("Replacing holiday calendar")
	}
	r.factories[name] = factory
}

// Get builds the calendar registered under name.
func (r *Registry) Get(name string) (*Calendar, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, name)
	}
	cal, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday calendar %s: %w", name, err)
	}
	return cal, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
