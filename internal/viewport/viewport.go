// Package viewport maps between image pixels and the zoomed display.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

const (
	MinScale     = 0.1
	MaxScale     = 10.0
	ZoomInFactor = 1.1
	// ZoomOutFactor is not the inverse of ZoomInFactor; an in/out pair
	// leaves the scale at 0.99 of where it started.
	ZoomOutFactor = 0.9
)

var ErrDegenerate = errors.New("display size is degenerate")

// ToDisplay returns the rounded display size of a w x h image at scale.
func ToDisplay(scale float64, w, h int) (int, int, error) {
	dw := int(math.Round(float64(w) * scale))
	dh := int(math.Round(float64(h) * scale))
	if dw < 1 || dh < 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d at scale %g", ErrDegenerate, w, h, scale)
	}
	return dw, dh, nil
}

// ToImageCoords maps a display position back to the image pixel under it.
// Negative display positions map to negative image coordinates.
func ToImageCoords(dx, dy, scale float64) (int, int) {
	return int(math.Floor(dx / scale)), int(math.Floor(dy / scale))
}

func InBounds(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}

// Clamp limits scale to [MinScale, MaxScale].
func Clamp(scale float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, scale))
}

// View is the zoom state of one loaded image.
type View struct {
	Scale float64
}

func NewView() *View {
	return &View{Scale: 1.0}
}

func (v *View) Reset() {
	v.Scale = 1.0
}

// Zoom multiplies the scale by factor and clamps it. It returns false and
// keeps the previous scale when the display of a w x h image would vanish,
// or when the clamped scale is unchanged.
func (v *View) Zoom(factor float64, w, h int) bool {
	next := Clamp(v.Scale * factor)
	if next == v.Scale {
		return false
	}
	if _, _, err := ToDisplay(next, w, h); err != nil {
		return false
	}
	v.Scale = next
	return true
}

func (v *View) ZoomIn(w, h int) bool {
	return v.Zoom(ZoomInFactor, w, h)
}

func (v *View) ZoomOut(w, h int) bool {
	return v.Zoom(ZoomOutFactor, w, h)
}

// DisplaySize returns the size of a w x h image at the current scale.
func (v *View) DisplaySize(w, h int) (int, int, error) {
	return ToDisplay(v.Scale, w, h)
}

// ImageCoords maps a display position at the current scale.
func (v *View) ImageCoords(dx, dy float64) (int, int) {
	return ToImageCoords(dx, dy, v.Scale)
}
