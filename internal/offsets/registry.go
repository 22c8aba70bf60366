package offsets

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Constructor builds an offset with multiplier n.
type Constructor func(n int) Offset

// Registry maps frequency codes such as "B" or "QE-DEC" to constructors.
// Call Init once before resolving codes.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Init registers every built-in frequency code.
func (r *Registry) Init() {
	r.Register("ns", func(n int) Offset { return Nanos(n) })
	r.Register("us", func(n int) Offset { return Micros(n) })
	r.Register("ms", func(n int) Offset { return Millis(n) })
	r.Register("S", func(n int) Offset { return Seconds(n) })
	r.Register("Min", func(n int) Offset { return Minutes(n) })
	r.Register("H", func(n int) Offset { return Hours(n) })
	r.Register("D", func(n int) Offset { return Days(n) })
	r.Register("B", func(n int) Offset { return BusinessDays(n) })
	r.Register("C", func(n int) Offset { return CustomBusinessDays(n, CustomBusinessDayOptions{}) })
	r.Register("W", func(n int) Offset { return Weeks(n) })
	r.Register("MS", func(n int) Offset { return MonthStart(n) })
	r.Register("ME", func(n int) Offset { return MonthEnd(n) })
	r.Register("BMS", func(n int) Offset { return BusinessMonthStart(n) })
	r.Register("BME", func(n int) Offset { return BusinessMonthEnd(n) })
	r.Register("QS", func(n int) Offset { return QuarterStart(n, 0) })
	r.Register("QE", func(n int) Offset { return QuarterEnd(n, 0) })
	r.Register("YS", func(n int) Offset { return YearStart(n, 0) })
	r.Register("YE", func(n int) Offset { return YearEnd(n, 0) })
	r.Register("Easter", func(n int) Offset { return EasterOffset(n) })

	for d := time.Sunday; d <= time.Saturday; d++ {
		wd := d
		r.Register("W-"+weekdayCode(wd), func(n int) Offset { return WeeksOn(n, wd) })
		r.Register("LWOM-"+weekdayCode(wd), func(n int) Offset { return NewLastWeekOfMonth(n, wd) })
		for week := 0; week < 4; week++ {
			w := week
			r.Register(fmt.Sprintf("WOM-%d%s", w+1, weekdayCode(wd)), func(n int) Offset {
				return WeekOfMonth{n: n, week: w, weekday: wd}
			})
		}
	}
	for m := time.January; m <= time.December; m++ {
		month := m
		r.Register("QS-"+monthCode(month), func(n int) Offset { return QuarterStart(n, month) })
		r.Register("QE-"+monthCode(month), func(n int) Offset { return QuarterEnd(n, month) })
		r.Register("YS-"+monthCode(month), func(n int) Offset { return YearStart(n, month) })
		r.Register("YE-"+monthCode(month), func(n int) Offset { return YearEnd(n, month) })
	}
}

// Register adds or replaces the constructor for code.
func (r *Registry) Register(code string, c Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[code] = c
}

// Get builds the offset registered under code with multiplier n.
func (r *Registry) Get(code string, n int) (Offset, error) {
	r.mu.RLock()
	c, ok := r.constructors[code]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOffset, code)
	}
	return c(n), nil
}

// Parse resolves a frequency string with an optional signed multiplier,
// e.g. "B", "3B", "-2ME" or "QE-DEC".
func (r *Registry) Parse(freq string) (Offset, error) {
	s := strings.TrimSpace(freq)
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	prefix, code := s[:i], s[i:]
	n := 1
	switch prefix {
	case "", "+":
	case "-":
		n = -1
	default:
		v, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("invalid frequency %q: %w", freq, err)
		}
		n = v
	}
	return r.Get(code, n)
}

// Codes returns every registered code in sorted order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.constructors))
	for code := range r.constructors {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
