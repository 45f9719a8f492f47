package shutdown

import (
	"sync"
	"testing"
	"time"

	"hsv-masker/internal/logger"

	"github.com/stretchr/testify/assert"
)

func TestShutdownRunsInReverseOrderOnce(t *testing.T) {
	m := NewManager(logger.Nop(), time.Second)

	var mu sync.Mutex
	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		m.Register(name, Func(func() {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}))
	}

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"third", "second", "first"}, order)
	assert.Error(t, m.Context().Err())

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestShutdownSkipsPastSlowComponent(t *testing.T) {
	m := NewManager(logger.Nop(), 20*time.Millisecond)

	release := make(chan struct{})
	defer close(release)

	var ran bool
	m.Register("fast", Func(func() { ran = true }))
	m.Register("slow", Func(func() { <-release }))

	m.Shutdown()
	assert.True(t, ran)
}
