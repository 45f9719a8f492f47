package timing

import (
	"context"
	"sync"
	"time"
)

// DefaultHistory is how many samples are kept per operation.
const DefaultHistory = 128

type timingKey struct{}

type TimingInfo struct {
	Operation string
	StartTime time.Time
}

// Stats summarises the retained samples of one operation.
type Stats struct {
	Count   int
	Last    time.Duration
	Average time.Duration
	Max     time.Duration
}

type Tracker struct {
	timings map[string][]time.Duration
	history int
	mu      sync.RWMutex
	enabled bool
}

func NewTracker(history int) *Tracker {
	if history <= 0 {
		history = DefaultHistory
	}
	return &Tracker{
		timings: make(map[string][]time.Duration),
		history: history,
		enabled: true,
	}
}

func (tt *Tracker) isEnabled() bool {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return tt.enabled
}

func (tt *Tracker) StartTiming(operation string) context.Context {
	if !tt.isEnabled() {
		return context.Background()
	}

	return context.WithValue(context.Background(), timingKey{}, TimingInfo{
		Operation: operation,
		StartTime: time.Now(),
	})
}

// EndTiming records the elapsed time since the matching StartTiming and
// returns it. Contexts not produced by StartTiming are ignored.
func (tt *Tracker) EndTiming(ctx context.Context) time.Duration {
	timingInfo, ok := ctx.Value(timingKey{}).(TimingInfo)
	if !ok {
		return 0
	}

	duration := time.Since(timingInfo.StartTime)
	tt.Record(timingInfo.Operation, duration)
	return duration
}

// Record appends a sample, dropping the oldest once the history is full.
func (tt *Tracker) Record(operation string, duration time.Duration) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if !tt.enabled {
		return
	}

	samples := append(tt.timings[operation], duration)
	if len(samples) > tt.history {
		samples = samples[len(samples)-tt.history:]
	}
	tt.timings[operation] = samples
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) Summary(operation string) Stats {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return Stats{}
	}

	stats := Stats{Count: len(timings), Last: timings[len(timings)-1]}
	var total time.Duration
	for _, duration := range timings {
		total += duration
		if duration > stats.Max {
			stats.Max = duration
		}
	}
	stats.Average = total / time.Duration(len(timings))
	return stats
}

func (tt *Tracker) Operations() []string {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	ops := make([]string, 0, len(tt.timings))
	for op := range tt.timings {
		ops = append(ops, op)
	}
	return ops
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}
