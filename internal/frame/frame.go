package frame

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrLengthMismatch is returned when a column does not match the index length.
	ErrLengthMismatch = errors.New("column length does not match index length")
	// ErrColumnNotFound is returned for unknown column labels.
	ErrColumnNotFound = errors.New("column not found")
)

// Frame is a table of instants keyed by an Index. A zero time.Time marks a
// missing value.
type Frame struct {
	index   Index
	columns []string
	data    map[string][]time.Time
}

// New creates an empty frame over index.
func New(index Index) *Frame {
	return &Frame{index: index, data: make(map[string][]time.Time)}
}

// Index returns the row labels.
func (f *Frame) Index() Index { return f.index }

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.index) }

// Columns returns the column labels in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// HasColumn reports whether name is a column label.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.data[name]
	return ok
}

// Column returns the values of name.
func (f *Frame) Column(name string) ([]time.Time, bool) {
	v, ok := f.data[name]
	return v, ok
}

// Assign sets column name, appending it when new.
func (f *Frame) Assign(name string, values []time.Time) error {
	if len(values) != len(f.index) {
		return fmt.Errorf("%s: %w (%d != %d)", name, ErrLengthMismatch, len(values), len(f.index))
	}
	if _, ok := f.data[name]; !ok {
		f.columns = append(f.columns, name)
	}
	f.data[name] = values
	return nil
}

// Drop removes the named columns if present.
func (f *Frame) Drop(names ...string) {
	for _, name := range names {
		if _, ok := f.data[name]; !ok {
			continue
		}
		delete(f.data, name)
		for i, c := range f.columns {
			if c == name {
				f.columns = append(f.columns[:i], f.columns[i+1:]...)
				break
			}
		}
	}
}

// Select returns a frame holding only the named columns, in that order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := New(f.index)
	for _, name := range names {
		v, ok := f.data[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
		cp := make([]time.Time, len(v))
		copy(cp, v)
		out.columns = append(out.columns, name)
		out.data[name] = cp
	}
	return out, nil
}

// Loc reindexes the frame onto idx; labels absent from f get missing values.
func (f *Frame) Loc(idx Index) *Frame {
	out := New(idx)
	for _, name := range f.columns {
		src := f.data[name]
		dst := make([]time.Time, len(idx))
		for i, t := range idx {
			if p := f.index.Position(t); p >= 0 {
				dst[i] = src[p]
			}
		}
		out.columns = append(out.columns, name)
		out.data[name] = dst
	}
	return out
}

// Row returns the values of row i keyed by column.
func (f *Frame) Row(i int) map[string]time.Time {
	row := make(map[string]time.Time, len(f.columns))
	for _, name := range f.columns {
		row[name] = f.data[name][i]
	}
	return row
}

// ConvertTZ returns a copy with every value expressed in loc.
func (f *Frame) ConvertTZ(loc *time.Location) *Frame {
	out := New(f.index)
	for _, name := range f.columns {
		src := f.data[name]
		dst := make([]time.Time, len(src))
		for i, t := range src {
			if !t.IsZero() {
				dst[i] = t.In(loc)
			}
		}
		out.columns = append(out.columns, name)
		out.data[name] = dst
	}
	return out
}

// Equals reports whether both frames have the same index, column order and
// instants.
func (f *Frame) Equals(other *Frame) bool {
	if other == nil || !f.index.Equal(other.index) || len(f.columns) != len(other.columns) {
		return false
	}
	for i, name := range f.columns {
		if other.columns[i] != name {
			return false
		}
		a, b := f.data[name], other.data[name]
		for j := range a {
			if a[j].IsZero() != b[j].IsZero() || !a[j].Equal(b[j]) {
				return false
			}
		}
	}
	return true
}
