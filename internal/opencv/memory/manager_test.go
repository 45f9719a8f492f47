//go:build opencv

package memory

import (
	"testing"

	"hsv-masker/internal/logger"
	"hsv-masker/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestReleasedMatIsReused(t *testing.T) {
	m := NewManager(logger.Nop(), 0, 2)
	defer m.Cleanup()

	first, err := m.GetMat(4, 6, gocv.MatTypeCV8UC3, "a")
	require.NoError(t, err)
	id := first.ID()
	assert.Equal(t, int64(4*6*3), m.GetStats().InUse())

	m.ReleaseMat(first)
	stats := m.GetStats()
	assert.Equal(t, int64(0), stats.ActiveMats)
	assert.Equal(t, int64(1), stats.PooledMats)

	second, err := m.GetMat(4, 6, gocv.MatTypeCV8UC3, "b")
	require.NoError(t, err)
	assert.Equal(t, id, second.ID())
	assert.Equal(t, int64(1), m.GetStats().PoolHits)

	m.ReleaseMat(second)
}

func TestDifferentShapeMisses(t *testing.T) {
	m := NewManager(logger.Nop(), 0, 2)
	defer m.Cleanup()

	a, err := m.GetMat(4, 6, gocv.MatTypeCV8UC3, "a")
	require.NoError(t, err)
	m.ReleaseMat(a)

	b, err := m.GetMat(6, 4, gocv.MatTypeCV8UC3, "b")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, int64(2), m.GetStats().PoolMisses)
	m.ReleaseMat(b)
}

func TestZeroPoolSizeCloses(t *testing.T) {
	m := NewManager(logger.Nop(), 0, 0)

	mat, err := m.GetMat(2, 2, gocv.MatTypeCV8UC1, "a")
	require.NoError(t, err)
	m.ReleaseMat(mat)

	assert.False(t, mat.IsValid())
	assert.Equal(t, int64(0), m.GetStats().PooledMats)
}

func TestLimitExceeded(t *testing.T) {
	m := NewManager(logger.Nop(), 10, 1)
	defer m.Cleanup()

	big, err := m.GetMat(4, 4, gocv.MatTypeCV8UC1, "big")
	require.NoError(t, err)

	_, err = m.GetMat(4, 4, gocv.MatTypeCV8UC1, "over")
	assert.Error(t, err)

	m.ReleaseMat(big)
}

func TestCleanupClosesLeakedMats(t *testing.T) {
	m := NewManager(logger.Nop(), 0, 1)

	leaked, err := m.GetMat(3, 3, gocv.MatTypeCV8UC3, "leak")
	require.NoError(t, err)
	m.Cleanup()

	assert.False(t, leaked.IsValid())
	assert.Equal(t, int64(0), m.GetStats().InUse())
}

func TestReleaseUntrackedCloses(t *testing.T) {
	m := NewManager(logger.Nop(), 0, 1)

	mat, err := safe.NewMat(2, 2, gocv.MatTypeCV8UC1, "outside")
	require.NoError(t, err)
	m.ReleaseMat(mat)

	assert.False(t, mat.IsValid())
}
