package memory

import "hsv-masker/internal/opencv/safe"

// Pool is a bounded stack of idle Mats of one shape. It is not safe for
// concurrent use; Manager serialises access.
type Pool struct {
	idle  []*safe.Mat
	limit int
}

func NewPool(limit int) *Pool {
	return &Pool{idle: make([]*safe.Mat, 0, limit), limit: limit}
}

// Take pops the most recently returned usable Mat. Stale entries are closed
// and skipped; the second result counts them.
func (p *Pool) Take() (*safe.Mat, int) {
	dropped := 0
	for n := len(p.idle); n > 0; n = len(p.idle) {
		mat := p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]

		if mat.IsValid() && !mat.Empty() {
			return mat, dropped
		}
		mat.Close()
		dropped++
	}
	return nil, dropped
}

// Give stores mat unless the pool is full or mat is unusable.
func (p *Pool) Give(mat *safe.Mat) bool {
	if mat == nil || !mat.IsValid() || mat.Empty() || len(p.idle) >= p.limit {
		return false
	}
	p.idle = append(p.idle, mat)
	return true
}

func (p *Pool) Len() int {
	return len(p.idle)
}

// Drain closes every idle Mat and returns how many there were.
func (p *Pool) Drain() int {
	n := len(p.idle)
	for i, mat := range p.idle {
		mat.Close()
		p.idle[i] = nil
	}
	p.idle = p.idle[:0]
	return n
}
