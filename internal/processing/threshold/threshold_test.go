package threshold

import (
	"testing"

	"hsv-masker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientHSV(t *testing.T) *models.HSVBuffer {
	t.Helper()
	buf, err := models.NewHSVBuffer(180, 2)
	require.NoError(t, err)
	for x := 0; x < 180; x++ {
		buf.Set(x, 0, models.HSV{H: uint8(x), S: 200, V: 200})
		buf.Set(x, 1, models.HSV{H: uint8(x), S: 10, V: 250})
	}
	return buf
}

func TestBuildFullRangeSelectsAll(t *testing.T) {
	buf := gradientHSV(t)

	m, err := Build(buf, models.FullRange())
	require.NoError(t, err)
	assert.Equal(t, buf.Width*buf.Height, m.Count())
}

func TestBuildInclusiveBounds(t *testing.T) {
	buf := gradientHSV(t)
	r := models.HSVRange{HMin: 20, HMax: 30, SMin: 200, SMax: 200, VMin: 0, VMax: 255}

	m, err := Build(buf, r)
	require.NoError(t, err)

	assert.Equal(t, 11, m.Count())
	assert.True(t, m.At(20, 0))
	assert.True(t, m.At(30, 0))
	assert.False(t, m.At(19, 0))
	assert.False(t, m.At(31, 0))
	assert.False(t, m.At(25, 1), "row 1 has saturation 10")
}

func TestBuildInvertedChannelSelectsNothing(t *testing.T) {
	buf := gradientHSV(t)

	for _, c := range []models.Component{models.HMin, models.SMin, models.VMin} {
		r, err := models.FullRange().With(c, c.Limit())
		require.NoError(t, err)
		r, err = r.With(c+1, 0)
		require.NoError(t, err)

		m, err := Build(buf, r)
		require.NoError(t, err, "%v", c)
		assert.Zero(t, m.Count(), "%v", c)
	}
}

func TestBuildDegenerateSingleValue(t *testing.T) {
	buf := gradientHSV(t)
	r := models.FullRange()
	r.HMin, r.HMax = 179, 179

	m, err := Build(buf, r)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Count())
}

func TestBuildNilBuffer(t *testing.T) {
	_, err := Build(nil, models.FullRange())
	assert.Error(t, err)
}
