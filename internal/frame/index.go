// Package frame provides the ordered date index and time-valued table that
// schedules and date ranges are returned as.
package frame

import (
	"sort"
	"time"
)

// Index is an ordered set of instants. Construct it with NewIndex so the
// sorted and unique invariants hold.
type Index []time.Time

// NewIndex sorts ts and drops duplicate instants.
func NewIndex(ts []time.Time) Index {
	out := make(Index, len(ts))
	copy(out, ts)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	uniq := out[:0]
	for _, t := range out {
		if n := len(uniq); n > 0 && uniq[n-1].Equal(t) {
			continue
		}
		uniq = append(uniq, t)
	}
	return uniq
}

// Len returns the number of labels.
func (ix Index) Len() int { return len(ix) }

// Position returns the position of t, or -1.
func (ix Index) Position(t time.Time) int {
	i := sort.Search(len(ix), func(i int) bool { return !ix[i].Before(t) })
	if i < len(ix) && ix[i].Equal(t) {
		return i
	}
	return -1
}

// Contains reports whether t is a label of ix.
func (ix Index) Contains(t time.Time) bool { return ix.Position(t) >= 0 }

// Union returns the labels present in either index.
func (ix Index) Union(other Index) Index {
	out := make(Index, 0, len(ix)+len(other))
	i, j := 0, 0
	for i < len(ix) && j < len(other) {
		switch {
		case ix[i].Before(other[j]):
			out = append(out, ix[i])
			i++
		case other[j].Before(ix[i]):
			out = append(out, other[j])
			j++
		default:
			out = append(out, ix[i])
			i++
			j++
		}
	}
	out = append(out, ix[i:]...)
	return append(out, other[j:]...)
}

// Intersection returns the labels present in both indexes.
func (ix Index) Intersection(other Index) Index {
	var out Index
	i, j := 0, 0
	for i < len(ix) && j < len(other) {
		switch {
		case ix[i].Before(other[j]):
			i++
		case other[j].Before(ix[i]):
			j++
		default:
			out = append(out, ix[i])
			i++
			j++
		}
	}
	return out
}

// Slice returns the labels in [start, end].
func (ix Index) Slice(start, end time.Time) Index {
	lo := sort.Search(len(ix), func(i int) bool { return !ix[i].Before(start) })
	hi := sort.Search(len(ix), func(i int) bool { return ix[i].After(end) })
	if lo >= hi {
		return Index{}
	}
	return ix[lo:hi]
}

// In returns the labels expressed in loc.
func (ix Index) In(loc *time.Location) Index {
	out := make(Index, len(ix))
	for i, t := range ix {
		out[i] = t.In(loc)
	}
	return out
}

// Normalize returns the midnight of each label's civil date in loc, dropping
// duplicates.
func (ix Index) Normalize(loc *time.Location) Index {
	out := make([]time.Time, len(ix))
	for i, t := range ix {
		y, m, d := t.In(loc).Date()
		out[i] = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	return NewIndex(out)
}

// Equal reports whether both indexes hold the same instants.
func (ix Index) Equal(other Index) bool {
	if len(ix) != len(other) {
		return false
	}
	for i := range ix {
		if !ix[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
