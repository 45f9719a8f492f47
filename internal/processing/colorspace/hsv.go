// Package colorspace converts BGR rasters into the half-scale HSV model
// (H 0-179, S and V 0-255) used for thresholding.
//
// The arithmetic mirrors OpenCV's 8-bit COLOR_BGR2HSV path: fixed point with
// a 12-bit shift and rounded reciprocal tables, so results match cv::cvtColor
// bit for bit.
package colorspace

import (
	"math"

	"hsv-masker/internal/models"
)

const hsvShift = 12

var (
	sdivTable [256]int
	hdivTable [256]int
)

func init() {
	for i := 1; i < 256; i++ {
		sdivTable[i] = int(math.RoundToEven(float64(255<<hsvShift) / float64(i)))
		hdivTable[i] = int(math.RoundToEven(float64(180<<hsvShift) / (6 * float64(i))))
	}
}

// PixelToHSV converts a single BGR pixel.
func PixelToHSV(b, g, r uint8) models.HSV {
	bi, gi, ri := int(b), int(g), int(r)

	v := max(bi, gi, ri)
	vmin := min(bi, gi, ri)
	diff := v - vmin

	vr, vg := 0, 0
	if v == ri {
		vr = -1
	}
	if v == gi {
		vg = -1
	}

	s := (diff*sdivTable[v] + (1 << (hsvShift - 1))) >> hsvShift

	h := (vr & (gi - bi)) + (^vr & ((vg & (bi - ri + 2*diff)) + (^vg & (ri - gi + 4*diff))))
	h = (h*hdivTable[diff] + (1 << (hsvShift - 1))) >> hsvShift
	if h < 0 {
		h += 180
	}

	return models.HSV{H: uint8(h), S: uint8(s), V: uint8(v)}
}

// ToHSV converts the whole image. The result has the same shape.
func ToHSV(img *models.Image) (*models.HSVBuffer, error) {
	buf, err := models.NewHSVBuffer(img.Width, img.Height)
	if err != nil {
		return nil, err
	}

	src := img.Pix
	dst := buf.Pix
	for i := 0; i < len(src); i += 3 {
		c := PixelToHSV(src[i], src[i+1], src[i+2])
		dst[i] = c.H
		dst[i+1] = c.S
		dst[i+2] = c.V
	}

	return buf, nil
}
