package market_hours

import (
	"strings"
	"time"

	"github.com/aristath/marketcal/internal/frame"
)

// isOpeningColumn classifies a column label without a calendar at hand.
func isOpeningColumn(name string) bool {
	if strings.HasPrefix(name, interruptionEndPrefix) {
		return true
	}
	typ, err := ParseMarketTimeType(name)
	if err != nil {
		return false
	}
	return DefaultOpenCloseMap()[typ]
}

// MergeSchedules combines the schedules of several calendars. Only the
// columns present in every schedule are kept. With outer the result covers
// the union of the trading days and spans the earliest opening and latest
// closing time of each day; otherwise it covers the common trading days and
// the overlapping part of the sessions.
func MergeSchedules(schedules []*frame.Frame, outer bool) (*frame.Frame, error) {
	if len(schedules) == 0 {
		return nil, ErrNoSchedules
	}

	idx := schedules[0].Index()
	common := schedules[0].Columns()
	for _, s := range schedules[1:] {
		if outer {
			idx = idx.Union(s.Index())
		} else {
			idx = idx.Intersection(s.Index())
		}
		kept := common[:0]
		for _, name := range common {
			if s.HasColumn(name) {
				kept = append(kept, name)
			}
		}
		common = kept
	}

	aligned := make([]*frame.Frame, len(schedules))
	for i, s := range schedules {
		aligned[i] = s.Loc(idx)
	}

	out := frame.New(idx)
	for _, name := range common {
		earliest := isOpeningColumn(name) == outer
		values := make([]time.Time, len(idx))
		for _, s := range aligned {
			col, _ := s.Column(name)
			for i, v := range col {
				switch {
				case v.IsZero():
				case values[i].IsZero():
					values[i] = v
				case earliest && v.Before(values[i]):
					values[i] = v
				case !earliest && v.After(values[i]):
					values[i] = v
				}
			}
		}
		if err := out.Assign(name, values); err != nil {
			return nil, err
		}
	}
	return out, nil
}
