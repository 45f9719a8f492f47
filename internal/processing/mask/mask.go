// Package mask holds the binary selection matrices: the recomputed threshold
// mask and the user's monotonic erase mask.
package mask

import (
	"errors"
	"fmt"

	"hsv-masker/internal/models"
)

var ErrDimensionMismatch = errors.New("mask dimensions do not match")

// Mask is a row-major boolean matrix of Width x Height cells.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// New allocates an all-false mask.
func New(width, height int) (*Mask, error) {
	if err := models.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	return &Mask{Width: width, Height: height, Bits: make([]bool, width*height)}, nil
}

func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Bits[y*m.Width+x]
}

func (m *Mask) Set(x, y int, value bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Bits[y*m.Width+x] = value
}

// Count returns the number of true cells.
func (m *Mask) Count() int {
	n := 0
	for _, bit := range m.Bits {
		if bit {
			n++
		}
	}
	return n
}

func (m *Mask) Clone() *Mask {
	bits := make([]bool, len(m.Bits))
	copy(bits, m.Bits)
	return &Mask{Width: m.Width, Height: m.Height, Bits: bits}
}

func (m *Mask) SameSize(other *Mask) bool {
	return m.Width == other.Width && m.Height == other.Height
}

// Contains reports whether every true cell of other is also true in m.
func (m *Mask) Contains(other *Mask) bool {
	if !m.SameSize(other) {
		return false
	}
	for i, bit := range other.Bits {
		if bit && !m.Bits[i] {
			return false
		}
	}
	return true
}

// Combine returns threshold AND NOT erased, cell by cell. Neither input is modified.
func Combine(threshold *Mask, erased *Erase) (*Mask, error) {
	if !threshold.SameSize(&erased.mask) {
		return nil, fmt.Errorf("%w: threshold %dx%d, erase %dx%d", ErrDimensionMismatch,
			threshold.Width, threshold.Height, erased.mask.Width, erased.mask.Height)
	}

	final := &Mask{Width: threshold.Width, Height: threshold.Height, Bits: make([]bool, len(threshold.Bits))}
	for i, selected := range threshold.Bits {
		final.Bits[i] = selected && !erased.mask.Bits[i]
	}
	return final, nil
}
