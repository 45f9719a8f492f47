package models

import "fmt"

// Channel bounds for the half-scale hue convention.
const (
	HueMax        = 179
	SaturationMax = 255
	ValueMax      = 255
)

// HSV is a single pixel in the thresholding colour model.
type HSV struct {
	H, S, V uint8
}

// HSVBuffer holds the per-pixel HSV representation of an Image, same shape.
type HSVBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewHSVBuffer allocates a zeroed buffer.
func NewHSVBuffer(width, height int) (*HSVBuffer, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	return &HSVBuffer{Width: width, Height: height, Pix: make([]uint8, width*height*3)}, nil
}

// NewHSVBufferFrom wraps an existing H,S,V interleaved buffer.
func NewHSVBufferFrom(width, height int, pix []uint8) (*HSVBuffer, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if len(pix) != width*height*3 {
		return nil, fmt.Errorf("hsv buffer has %d bytes, want %d for %dx%d", len(pix), width*height*3, width, height)
	}
	return &HSVBuffer{Width: width, Height: height, Pix: pix}, nil
}

// At returns the HSV triple at (x, y). Coordinates must be in bounds.
func (b *HSVBuffer) At(x, y int) HSV {
	i := (y*b.Width + x) * 3
	return HSV{H: b.Pix[i], S: b.Pix[i+1], V: b.Pix[i+2]}
}

// Set writes the HSV triple at (x, y).
func (b *HSVBuffer) Set(x, y int, c HSV) {
	i := (y*b.Width + x) * 3
	b.Pix[i] = c.H
	b.Pix[i+1] = c.S
	b.Pix[i+2] = c.V
}
