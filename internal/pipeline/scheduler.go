// Package pipeline runs recompute jobs off the caller's goroutine with at
// most one job in flight and one waiting.
package pipeline

import (
	"fmt"
	"sync"

	"hsv-masker/internal/logger"
)

// Job is one unit of recompute work.
type Job func()

// Stats counts what happened to submitted jobs.
type Stats struct {
	Submitted  uint64
	Completed  uint64
	Superseded uint64
	Failed     uint64
}

// Scheduler is a single worker with a one-slot queue. A job submitted while
// another is waiting replaces it; the running job is never interrupted.
type Scheduler struct {
	mu      sync.Mutex
	idle    *sync.Cond
	pending Job
	name    string
	running bool
	closed  bool
	stats   Stats

	wake chan struct{}
	stop chan struct{}
	done chan struct{}

	logger logger.Logger
}

func NewScheduler(log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}

	s := &Scheduler{
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: log,
	}
	s.idle = sync.NewCond(&s.mu)

	go s.loop()
	return s
}

// Submit queues job under name. It returns false once the scheduler is closed.
func (s *Scheduler) Submit(name string, job Job) bool {
	if job == nil {
		return false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	if s.pending != nil {
		s.stats.Superseded++
		s.logger.Debug("Scheduler", "queued job superseded", map[string]interface{}{
			"dropped": s.name,
			"by":      name,
		})
	}
	s.pending = job
	s.name = name
	s.stats.Submitted++
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

// Flush blocks until no job is queued or running.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.pending != nil || s.running {
		s.idle.Wait()
	}
}

// Close rejects further jobs, runs the one still queued and stops the worker.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.stop)
	<-s.done
}

func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Scheduler) loop() {
	defer close(s.done)

	for {
		select {
		case <-s.wake:
			s.runPending()
		case <-s.stop:
			s.runPending()
			return
		}
	}
}

func (s *Scheduler) runPending() {
	s.mu.Lock()
	job, name := s.pending, s.name
	s.pending = nil
	if job == nil {
		s.idle.Broadcast()
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	err := s.run(job)

	s.mu.Lock()
	s.running = false
	if err != nil {
		s.stats.Failed++
	} else {
		s.stats.Completed++
	}
	s.idle.Broadcast()
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Scheduler", err, map[string]interface{}{"job": name})
	}
}

func (s *Scheduler) run(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	job()
	return nil
}
