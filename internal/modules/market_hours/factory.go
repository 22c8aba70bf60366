package market_hours

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Constructor builds a calendar with optional open and close overrides.
type Constructor func(openTime, closeTime *MarketTime, log zerolog.Logger) (*MarketCalendar, error)

type registration struct {
	canonical string
	ctor      Constructor
}

// CalendarFactory resolves calendar names and aliases. Prototypes built by
// Init are shared and must not be mutated; use Create for a private copy.
type CalendarFactory struct {
	mu         sync.RWMutex
	entries    map[string]registration
	prototypes map[string]*MarketCalendar
	log        zerolog.Logger
}

// NewCalendarFactory creates an empty factory.
func NewCalendarFactory(log zerolog.Logger) *CalendarFactory {
	return &CalendarFactory{
		entries:    make(map[string]registration),
		prototypes: make(map[string]*MarketCalendar),
		log:        log.With().Str("component", "calendar_factory").Logger(),
	}
}

var builtins = []Constructor{
	NewNYSE,
	NewCMEEquity,
	NewCMEAgriculture,
	NewCMEBond,
	NewCFE,
	NewCBOEEquityOptions,
	NewCBOEIndexOptions,
	NewCMEGlobexFX,
	NewCMEGlobexCrypto,
	NewCMEGlobexEquities,
	NewCMEGlobexLivestock,
	NewCMEGlobexGrains,
	NewCMEGlobexFixedIncome,
	NewCMEGlobexEnergyAndMetals,
	NewICE,
	NewFX,
	NewCrypto,
}

// Init registers and builds every built-in calendar.
func (f *CalendarFactory) Init() error {
	for _, ctor := range builtins {
		if _, err := f.Add(nil, ctor); err != nil {
			return err
		}
	}
	f.log.Info().Int("calendars", len(f.Calendars())).Msg("Calendars registered")
	return nil
}

// Add builds a prototype with ctor and registers it under its name, its own
// aliases and the extra aliases given.
func (f *CalendarFactory) Add(aliases []string, ctor Constructor) (*MarketCalendar, error) {
	proto, err := ctor(nil, nil, f.log)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar: %w", err)
	}
	names := append([]string{proto.Name()}, proto.Aliases()...)
	names = append(names, aliases...)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.prototypes[proto.Name()] = proto
	for _, name := range names {
		if prev, exists := f.entries[name]; exists && prev.canonical != proto.Name() {
			f.log.Debug().Str("alias", name).Str("previous", prev.canonical).Msg("Replacing calendar alias")
		}
		f.entries[name] = registration{canonical: proto.Name(), ctor: ctor}
	}
	f.log.Debug().Str("calendar", proto.Name()).Strs("aliases", names).Msg("Calendar registered")
	return proto, nil
}

// Get returns the shared prototype registered under name.
func (f *CalendarFactory) Get(name string) (*MarketCalendar, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, name)
	}
	return f.prototypes[e.canonical], nil
}

// Create builds a fresh calendar registered under name.
func (f *CalendarFactory) Create(name string, openTime, closeTime *MarketTime) (*MarketCalendar, error) {
	f.mu.RLock()
	e, ok := f.entries[name]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, name)
	}
	return e.ctor(openTime, closeTime, f.log)
}

// Names returns every registered name and alias in sorted order.
func (f *CalendarFactory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.entries))
	for name := range f.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calendars returns the canonical calendar names in sorted order.
func (f *CalendarFactory) Calendars() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.prototypes))
	for name := range f.prototypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
