package resample

import (
	"testing"

	"hsv-masker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeDimensions(t *testing.T) {
	img, err := models.NewImage(40, 30)
	require.NoError(t, err)

	tests := []struct {
		name          string
		width, height int
	}{
		{"shrink", 4, 3},
		{"enlarge", 100, 75},
		{"mixed", 80, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Resize(img, tt.width, tt.height)
			require.NoError(t, err)
			assert.Equal(t, tt.width, out.Width)
			assert.Equal(t, tt.height, out.Height)
			assert.Len(t, out.Pix, tt.width*tt.height*3)
		})
	}
}

func TestResizeUniformColourIsPreserved(t *testing.T) {
	img, err := models.NewImage(20, 20)
	require.NoError(t, err)
	img.Fill(30, 140, 250)

	for _, size := range []int{7, 20, 53} {
		out, err := Resize(img, size, size)
		require.NoError(t, err)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				b, g, r := out.BGRAt(x, y)
				require.Equal(t, [3]uint8{30, 140, 250}, [3]uint8{b, g, r}, "size %d at (%d,%d)", size, x, y)
			}
		}
	}
}

func TestResizeSameSizeCopies(t *testing.T) {
	img, err := models.NewImage(3, 2)
	require.NoError(t, err)
	img.SetBGR(1, 1, 9, 8, 7)

	out, err := Resize(img, 3, 2)
	require.NoError(t, err)
	assert.True(t, out.Equal(img))

	out.SetBGR(0, 0, 1, 1, 1)
	b, _, _ := img.BGRAt(0, 0)
	assert.Zero(t, b)
}

func TestResizeRejectsEmptyTarget(t *testing.T) {
	img, err := models.NewImage(3, 2)
	require.NoError(t, err)

	_, err = Resize(img, 0, 2)
	assert.ErrorIs(t, err, models.ErrInvalidDimensions)
}

func TestShrinkAveragesBlocks(t *testing.T) {
	img, err := models.NewImage(4, 2)
	require.NoError(t, err)
	// Left 2x2 block black, right 2x2 block white.
	for y := 0; y < 2; y++ {
		img.SetBGR(2, y, 255, 255, 255)
		img.SetBGR(3, y, 255, 255, 255)
	}

	out, err := Resize(img, 2, 1)
	require.NoError(t, err)

	b, g, r := out.BGRAt(0, 0)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{b, g, r})
	b, g, r = out.BGRAt(1, 0)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{b, g, r})
}
