package mask

// Erase is the user-painted exclusion mask. Cells only ever go from false to
// true; the sole way to clear it is to allocate a new one for a new image.
type Erase struct {
	mask Mask
}

// NewErase allocates an all-false erase mask.
func NewErase(width, height int) (*Erase, error) {
	m, err := New(width, height)
	if err != nil {
		return nil, err
	}
	return &Erase{mask: *m}, nil
}

func (e *Erase) Width() int  { return e.mask.Width }
func (e *Erase) Height() int { return e.mask.Height }

func (e *Erase) At(x, y int) bool {
	return e.mask.At(x, y)
}

// Count returns the number of erased cells.
func (e *Erase) Count() int {
	return e.mask.Count()
}

// Snapshot returns an independent copy of the current cells.
func (e *Erase) Snapshot() *Mask {
	return e.mask.Clone()
}

// PaintCircle marks every cell within radius of (cx, cy), clipped to the
// mask. A centre outside the mask is a no-op. Returns how many cells were
// newly erased.
func (e *Erase) PaintCircle(cx, cy, radius int) int {
	w, h := e.mask.Width, e.mask.Height
	if cx < 0 || cy < 0 || cx >= w || cy >= h || radius < 0 {
		return 0
	}

	r2 := radius * radius
	painted := 0
	for y := max(cy-radius, 0); y <= min(cy+radius, h-1); y++ {
		dy := y - cy
		row := y * w
		for x := max(cx-radius, 0); x <= min(cx+radius, w-1); x++ {
			dx := x - cx
			if dx*dx+dy*dy > r2 {
				continue
			}
			if !e.mask.Bits[row+x] {
				e.mask.Bits[row+x] = true
				painted++
			}
		}
	}
	return painted
}
