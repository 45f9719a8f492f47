package models

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-3, 4}, {MaxDimension + 1, 1}} {
		_, err := NewImage(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimensions, "dims %v", dims)
	}
}

func TestNewImageFromBGRChecksLength(t *testing.T) {
	_, err := NewImageFromBGR(2, 2, make([]uint8, 11))
	assert.Error(t, err)

	img, err := NewImageFromBGR(2, 2, make([]uint8, 12))
	require.NoError(t, err)
	assert.Equal(t, 4, img.PixelCount())
}

func TestFromImageStoresBGR(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(1, 1, color.RGBA{R: 200, G: 10, B: 30, A: 255})

	img, err := FromImage(src)
	require.NoError(t, err)

	b, g, r := img.BGRAt(1, 1)
	assert.Equal(t, [3]uint8{30, 10, 200}, [3]uint8{b, g, r})
	assert.Equal(t, color.RGBA{R: 200, G: 10, B: 30, A: 255}, img.At(1, 1))
}

func TestFromImageOffsetBounds(t *testing.T) {
	parent := image.NewRGBA(image.Rect(0, 0, 4, 4))
	parent.SetRGBA(2, 2, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	sub := parent.SubImage(image.Rect(2, 2, 4, 4))

	img, err := FromImage(sub)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)

	b, g, r := img.BGRAt(0, 0)
	assert.Equal(t, [3]uint8{3, 2, 1}, [3]uint8{b, g, r})
}

func TestFromImageGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 1, 1))
	src.SetGray(0, 0, color.Gray{Y: 77})

	img, err := FromImage(src)
	require.NoError(t, err)

	b, g, r := img.BGRAt(0, 0)
	assert.Equal(t, [3]uint8{77, 77, 77}, [3]uint8{b, g, r})
}

func TestToRGBARoundTrip(t *testing.T) {
	img, err := NewImage(2, 1)
	require.NoError(t, err)
	img.SetBGR(0, 0, 1, 2, 3)
	img.SetBGR(1, 0, 250, 128, 0)

	back, err := FromImage(img.ToRGBA())
	require.NoError(t, err)
	assert.True(t, img.Equal(back))
}

func TestCloneIsIndependent(t *testing.T) {
	img, err := NewImage(1, 1)
	require.NoError(t, err)
	clone := img.Clone()
	clone.SetBGR(0, 0, 9, 9, 9)

	assert.False(t, img.Equal(clone))
	b, _, _ := img.BGRAt(0, 0)
	assert.Zero(t, b)
}
