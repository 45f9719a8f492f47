package colorspace

import (
	"testing"

	"hsv-masker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelToHSVKnownValues(t *testing.T) {
	tests := []struct {
		name    string
		b, g, r uint8
		want    models.HSV
	}{
		{"black", 0, 0, 0, models.HSV{H: 0, S: 0, V: 0}},
		{"white", 255, 255, 255, models.HSV{H: 0, S: 0, V: 255}},
		{"mid gray", 128, 128, 128, models.HSV{H: 0, S: 0, V: 128}},
		{"red", 0, 0, 255, models.HSV{H: 0, S: 255, V: 255}},
		{"dark red", 0, 0, 200, models.HSV{H: 0, S: 255, V: 200}},
		{"green", 0, 255, 0, models.HSV{H: 60, S: 255, V: 255}},
		{"blue", 255, 0, 0, models.HSV{H: 120, S: 255, V: 255}},
		{"teal", 128, 128, 64, models.HSV{H: 90, S: 128, V: 128}},
		{"red leaning magenta wraps", 10, 0, 200, models.HSV{H: 179, S: 255, V: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PixelToHSV(tt.b, tt.g, tt.r))
		})
	}
}

func TestPixelToHSVStaysInRange(t *testing.T) {
	for b := 0; b < 256; b += 5 {
		for g := 0; g < 256; g += 5 {
			for r := 0; r < 256; r += 5 {
				c := PixelToHSV(uint8(b), uint8(g), uint8(r))
				if c.H > models.HueMax {
					t.Fatalf("hue %d out of range for bgr(%d,%d,%d)", c.H, b, g, r)
				}
				if int(c.V) != max(b, g, r) {
					t.Fatalf("value %d != max channel for bgr(%d,%d,%d)", c.V, b, g, r)
				}
			}
		}
	}
}

func TestToHSVMatchesPerPixel(t *testing.T) {
	img, err := models.NewImage(3, 2)
	require.NoError(t, err)
	img.SetBGR(0, 0, 0, 0, 200)
	img.SetBGR(2, 1, 128, 128, 64)
	img.SetBGR(1, 0, 17, 99, 240)

	buf, err := ToHSV(img)
	require.NoError(t, err)
	assert.Equal(t, img.Width, buf.Width)
	assert.Equal(t, img.Height, buf.Height)

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			assert.Equal(t, PixelToHSV(img.BGRAt(x, y)), buf.At(x, y))
		}
	}
}

func TestToHSVIsDeterministic(t *testing.T) {
	img, err := models.NewImage(4, 4)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 37)
	}

	first, err := ToHSV(img)
	require.NoError(t, err)
	second, err := ToHSV(img)
	require.NoError(t, err)
	assert.Equal(t, first.Pix, second.Pix)
}
