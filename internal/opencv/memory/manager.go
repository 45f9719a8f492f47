package memory

import (
	"fmt"
	"sync"
	"time"

	"hsv-masker/internal/logger"
	"hsv-masker/internal/opencv/safe"

	"gocv.io/x/gocv"
)

const (
	// DefaultMaxBytes caps the bytes held by live, tracked Mats.
	DefaultMaxBytes int64 = 2 * 1024 * 1024 * 1024
	// DefaultPoolSize is the number of idle Mats kept per shape.
	DefaultPoolSize = 4
)

// Manager hands out destination Mats, recycles released ones by shape and
// keeps allocation statistics.
type Manager struct {
	pools       map[PoolKey]*Pool
	allocations map[uint64]*AllocationRecord
	poolSize    int
	mu          sync.Mutex
	stats       Stats
	logger      logger.Logger
}

type PoolKey struct {
	Rows    int
	Cols    int
	MatType gocv.MatType
}

type AllocationRecord struct {
	Mat       *safe.Mat
	Tag       string
	CreatedAt time.Time
	Size      int64
}

type Stats struct {
	TotalAllocated int64
	TotalReleased  int64
	ActiveMats     int64
	PooledMats     int64
	PoolHits       int64
	PoolMisses     int64
	MaxAllowed     int64
}

// InUse returns the bytes held by Mats that have not been released.
func (s Stats) InUse() int64 {
	return s.TotalAllocated - s.TotalReleased
}

func NewManager(log logger.Logger, maxBytes int64, poolSize int) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if poolSize < 0 {
		poolSize = 0
	}
	return &Manager{
		pools:       make(map[PoolKey]*Pool),
		allocations: make(map[uint64]*AllocationRecord),
		poolSize:    poolSize,
		stats:       Stats{MaxAllowed: maxBytes},
		logger:      log,
	}
}

// GetMat returns a Mat of the requested shape, reusing a pooled one when
// available. The contents of a reused Mat are undefined.
func (m *Manager) GetMat(rows, cols int, matType gocv.MatType, tag string) (*safe.Mat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := PoolKey{Rows: rows, Cols: cols, MatType: matType}
	if pool, exists := m.pools[key]; exists {
		mat, dropped := pool.Take()
		m.stats.PooledMats -= int64(dropped)
		if mat != nil {
			m.stats.PoolHits++
			m.stats.PooledMats--
			m.track(mat, tag)
			return mat, nil
		}
	}

	if m.stats.InUse() > m.stats.MaxAllowed {
		return nil, fmt.Errorf("memory limit exceeded: %d bytes allocated", m.stats.InUse())
	}

	m.stats.PoolMisses++
	mat, err := safe.NewMat(rows, cols, matType, tag)
	if err != nil {
		return nil, err
	}
	m.track(mat, tag)

	m.logger.Debug("MemoryManager", "allocated Mat", map[string]interface{}{
		"tag": tag, "rows": rows, "cols": cols,
	})
	return mat, nil
}

func (m *Manager) track(mat *safe.Mat, tag string) {
	size := mat.Size()
	m.allocations[mat.ID()] = &AllocationRecord{
		Mat:       mat,
		Tag:       tag,
		CreatedAt: time.Now(),
		Size:      size,
	}
	m.stats.TotalAllocated += size
	m.stats.ActiveMats++
}

// ReleaseMat returns mat to its shape's pool, or closes it when the pool is
// full. Mats not obtained from GetMat are closed.
func (m *Manager) ReleaseMat(mat *safe.Mat) {
	if mat == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.allocations[mat.ID()]
	if !exists {
		m.logger.Warning("MemoryManager", "releasing untracked Mat", nil)
		mat.Close()
		return
	}
	delete(m.allocations, mat.ID())
	m.stats.TotalReleased += record.Size
	m.stats.ActiveMats--

	key := PoolKey{Rows: mat.Rows(), Cols: mat.Cols(), MatType: mat.Type()}
	pool, exists := m.pools[key]
	if !exists && m.poolSize > 0 {
		pool = NewPool(m.poolSize)
		m.pools[key] = pool
	}
	if pool != nil && pool.Give(mat) {
		m.stats.PooledMats++
		return
	}

	mat.Close()
}

func (m *Manager) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Cleanup closes every pooled and every still tracked Mat.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	closed := 0
	for key, pool := range m.pools {
		closed += pool.Drain()
		delete(m.pools, key)
	}
	m.stats.PooledMats = 0

	leaked := 0
	for id, record := range m.allocations {
		m.logger.Warning("MemoryManager", "Mat still in use at cleanup", map[string]interface{}{
			"tag": record.Tag,
			"age": time.Since(record.CreatedAt).String(),
		})
		record.Mat.Close()
		m.stats.TotalReleased += record.Size
		delete(m.allocations, id)
		leaked++
	}
	m.stats.ActiveMats = 0

	m.logger.Info("MemoryManager", "cleanup completed", map[string]interface{}{
		"pooled_closed": closed,
		"leaked_closed": leaked,
		"pool_hits":     m.stats.PoolHits,
		"pool_misses":   m.stats.PoolMisses,
	})
}
