package offsets

import (
	"errors"
	"time"
)

var (
	// ErrRangeBounds is returned when fewer than two of start, end and periods are given.
	ErrRangeBounds = errors.New("date range needs two of start, end and periods")
	// ErrZeroStep is returned for an offset that cannot advance a range.
	ErrZeroStep = errors.New("offset did not increment date")
)

// DateRangeOptions bounds a generated sequence. Exactly two of Start, End and
// Periods should be set; when all three are given Periods caps the length.
type DateRangeOptions struct {
	Start   time.Time
	End     time.Time
	Periods int
	Offset  Offset
}

// DateRange generates the on-offset timestamps between the bounds. The first
// element is the first on-offset point at or after Start (or, when only End
// and Periods are given, the sequence ends at the last on-offset point at or
// before End).
func DateRange(opts DateRangeOptions) ([]time.Time, error) {
	o := opts.Offset
	if o == nil || o.N() == 0 {
		return nil, ErrZeroStep
	}
	hasStart, hasEnd := !opts.Start.IsZero(), !opts.End.IsZero()

	switch {
	case hasStart && (hasEnd || opts.Periods > 0):
		cur, err := firstOnOrAfter(o, opts.Start)
		if err != nil {
			return nil, err
		}
		step := o.WithN(abs(o.N()))
		var out []time.Time
		for (!hasEnd || !cur.After(opts.End)) && (opts.Periods <= 0 || len(out) < opts.Periods) {
			out = append(out, cur)
			next := step.Add(cur)
			if !next.After(cur) {
				return nil, ErrZeroStep
			}
			cur = next
		}
		return out, nil
	case hasEnd && opts.Periods > 0:
		cur, err := lastOnOrBefore(o, opts.End)
		if err != nil {
			return nil, err
		}
		back := o.WithN(-abs(o.N()))
		out := make([]time.Time, opts.Periods)
		for i := opts.Periods - 1; i >= 0; i-- {
			out[i] = cur
			prev := back.Add(cur)
			if i > 0 && !prev.Before(cur) {
				return nil, ErrZeroStep
			}
			cur = prev
		}
		return out, nil
	default:
		return nil, ErrRangeBounds
	}
}

func firstOnOrAfter(o Offset, t time.Time) (time.Time, error) {
	if sa, ok := o.(SessionAnchor); ok {
		if latest := sa.WithN(0).Add(t); latest.Equal(t) {
			return t, nil
		}
		return sa.WithN(1).Add(t), nil
	}
	return o.Rollforward(t)
}

func lastOnOrBefore(o Offset, t time.Time) (time.Time, error) {
	if sa, ok := o.(SessionAnchor); ok {
		return sa.WithN(0).Add(t), nil
	}
	return o.Rollback(t)
}
