package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(day int) time.Time { return time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC) }

func TestIndex_SetOperations(t *testing.T) {
	a := NewIndex([]time.Time{d(3), d(1), d(2), d(1)})
	b := NewIndex([]time.Time{d(5), d(2), d(3), d(4)})

	assert.Equal(t, Index{d(1), d(2), d(3)}, a)
	assert.Equal(t, Index{d(1), d(2), d(3), d(4), d(5)}, a.Union(b))
	assert.Equal(t, Index{d(2), d(3)}, a.Intersection(b))
	assert.Empty(t, a.Intersection(Index{d(9)}))
	assert.True(t, a.Contains(d(2)))
	assert.False(t, a.Contains(d(4)))
	assert.Equal(t, -1, a.Position(d(4)))
	assert.Equal(t, Index{d(2), d(3)}, b.Slice(d(2), d(3)))
	assert.Empty(t, b.Slice(d(6), d(7)))
}

func TestIndex_Normalize(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	ix := Index{
		time.Date(2024, time.January, 2, 3, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 2, 14, 30, 0, 0, time.UTC),
	}
	got := ix.Normalize(ny)
	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, ny), got[0])
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, ny), got[1])
}

func TestFrame_AssignSelectLoc(t *testing.T) {
	f := New(NewIndex([]time.Time{d(1), d(2)}))
	require.NoError(t, f.Assign("MarketOpen", []time.Time{d(1).Add(9 * time.Hour), d(2).Add(9 * time.Hour)}))
	require.NoError(t, f.Assign("MarketClose", []time.Time{d(1).Add(16 * time.Hour), d(2).Add(16 * time.Hour)}))

	err := f.Assign("Bad", []time.Time{d(1)})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	assert.Equal(t, []string{"MarketOpen", "MarketClose"}, f.Columns())
	assert.Equal(t, 2, f.Len())

	sel, err := f.Select("MarketClose")
	require.NoError(t, err)
	assert.Equal(t, []string{"MarketClose"}, sel.Columns())

	_, err = f.Select("Post")
	assert.ErrorIs(t, err, ErrColumnNotFound)

	re := f.Loc(Index{d(2), d(3)})
	open, ok := re.Column("MarketOpen")
	require.True(t, ok)
	assert.Equal(t, d(2).Add(9*time.Hour), open[0])
	assert.True(t, open[1].IsZero())

	assert.Equal(t, d(1).Add(16*time.Hour), f.Row(0)["MarketClose"])

	f.Drop("MarketOpen", "Missing")
	assert.Equal(t, []string{"MarketClose"}, f.Columns())
	assert.False(t, f.HasColumn("MarketOpen"))
}

func TestFrame_EqualsAndConvert(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	a := New(Index{d(1)})
	require.NoError(t, a.Assign("MarketOpen", []time.Time{d(1).Add(14 * time.Hour)}))

	b := a.ConvertTZ(ny)
	v, _ := b.Column("MarketOpen")
	assert.Equal(t, ny, v[0].Location())
	assert.True(t, a.Equals(b))

	c := New(Index{d(1)})
	require.NoError(t, c.Assign("MarketOpen", []time.Time{{}}))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}
