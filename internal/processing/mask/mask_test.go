package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErase(t *testing.T, w, h int) *Erase {
	t.Helper()
	e, err := NewErase(w, h)
	require.NoError(t, err)
	return e
}

func TestNewEraseStartsEmpty(t *testing.T) {
	e := newErase(t, 8, 6)
	assert.Equal(t, 8, e.Width())
	assert.Equal(t, 6, e.Height())
	assert.Zero(t, e.Count())
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(0, 5)
	assert.Error(t, err)
	_, err = NewErase(5, 0)
	assert.Error(t, err)
}

func TestPaintCircleDisc(t *testing.T) {
	e := newErase(t, 21, 21)

	painted := e.PaintCircle(10, 10, 5)

	// Lattice points with x²+y² ≤ 25.
	assert.Equal(t, 81, painted)
	assert.Equal(t, 81, e.Count())
	assert.True(t, e.At(10, 5))
	assert.True(t, e.At(13, 14))
	assert.False(t, e.At(14, 14), "(4,4) lies outside radius 5")
	assert.False(t, e.At(4, 10))
}

func TestPaintCircleClipsAtEdges(t *testing.T) {
	e := newErase(t, 8, 8)

	painted := e.PaintCircle(0, 0, 5)

	// The quarter disc inside the mask: 6+5+5+5+4+1 cells per column.
	assert.Equal(t, 26, painted)
	assert.True(t, e.At(5, 0))
	assert.True(t, e.At(3, 4))
	assert.False(t, e.At(4, 4))
}

func TestPaintCircleOutOfBoundsCentreIsNoop(t *testing.T) {
	e := newErase(t, 10, 10)

	for _, c := range [][2]int{{-1, 5}, {5, -1}, {10, 5}, {5, 10}} {
		assert.Zero(t, e.PaintCircle(c[0], c[1], 5), "centre %v", c)
	}
	assert.Zero(t, e.Count())
}

func TestPaintCircleIdempotent(t *testing.T) {
	once := newErase(t, 30, 30)
	once.PaintCircle(12, 7, 5)

	twice := newErase(t, 30, 30)
	twice.PaintCircle(12, 7, 5)
	assert.Zero(t, twice.PaintCircle(12, 7, 5))

	assert.Equal(t, once.Snapshot().Bits, twice.Snapshot().Bits)
}

func TestPaintCircleMonotonic(t *testing.T) {
	a := newErase(t, 30, 30)
	a.PaintCircle(5, 5, 5)
	b := newErase(t, 30, 30)
	b.PaintCircle(9, 8, 5)

	both := newErase(t, 30, 30)
	both.PaintCircle(5, 5, 5)
	afterFirst := both.Snapshot()
	both.PaintCircle(9, 8, 5)
	after := both.Snapshot()

	assert.True(t, after.Contains(afterFirst))
	assert.True(t, after.Contains(a.Snapshot()))
	assert.True(t, after.Contains(b.Snapshot()))
}

func TestSnapshotIsIndependent(t *testing.T) {
	e := newErase(t, 5, 5)
	snap := e.Snapshot()
	e.PaintCircle(2, 2, 0)

	assert.False(t, snap.At(2, 2))
	assert.True(t, e.At(2, 2))
}

func TestCombine(t *testing.T) {
	threshold, err := New(3, 1)
	require.NoError(t, err)
	threshold.Set(0, 0, true)
	threshold.Set(1, 0, true)

	e := newErase(t, 3, 1)
	e.PaintCircle(1, 0, 0)
	e.PaintCircle(2, 0, 0)

	final, err := Combine(threshold, e)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, final.Bits)
	assert.True(t, threshold.At(1, 0), "threshold mask must not be modified")
}

func TestCombineDimensionMismatch(t *testing.T) {
	threshold, err := New(3, 3)
	require.NoError(t, err)

	_, err = Combine(threshold, newErase(t, 3, 4))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMaskAccessorsIgnoreOutOfBounds(t *testing.T) {
	m, err := New(2, 2)
	require.NoError(t, err)
	m.Set(5, 5, true)
	assert.Zero(t, m.Count())
	assert.False(t, m.At(-1, 0))
}
