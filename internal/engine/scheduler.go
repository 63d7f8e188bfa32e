// Package engine drives a simulation at a fixed rate. The simulation only
// exposes a tick function; the scheduler owns when, and whether, it runs.
package engine

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/astroidz/internal/core"
	"github.com/vovakirdan/astroidz/internal/games/asteroids"
)

// ErrStopped is returned by Run when the scheduler was already stopped.
var ErrStopped = errors.New("engine: scheduler stopped")

// Stepper advances one fixed tick and reports the resulting frame.
type Stepper interface {
	Tick(in core.InputFrame) asteroids.Snapshot
	Snapshot() asteroids.Snapshot
}

// InputSource supplies the held controls for the next tick.
type InputSource func() core.InputFrame

// SnapshotSink receives every published frame.
type SnapshotSink func(asteroids.Snapshot)

// Scheduler owns the stop and pause flags around a Stepper. A paused or
// stopped scheduler does not call the simulation at all.
type Scheduler struct {
	sim    Stepper
	logger *log.Logger

	mu      sync.Mutex
	paused  bool
	stopped bool
	ticks   uint64
	latest  asteroids.Snapshot
}

// New creates a running scheduler. A nil logger discards output.
func New(sim Stepper, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scheduler{
		sim:    sim,
		logger: logger,
		latest: sim.Snapshot(),
	}
}

// Step runs one tick unless paused or stopped. It returns the latest frame
// and whether a tick ran.
func (s *Scheduler) Step(in core.InputFrame) (asteroids.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused || s.stopped {
		return s.latest, false
	}
	s.latest = s.sim.Tick(in)
	s.ticks++
	return s.latest, true
}

// Latest returns the most recent frame.
func (s *Scheduler) Latest() asteroids.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Ticks returns how many ticks this scheduler has run.
func (s *Scheduler) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Pause stops invoking the simulation until Resume.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		s.paused = true
		s.logger.Debug("scheduler paused", "tick", s.ticks)
	}
}

// Resume continues after Pause.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		s.paused = false
		s.logger.Debug("scheduler resumed", "tick", s.ticks)
	}
}

// Paused reports whether the scheduler is paused.
func (s *Scheduler) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Stop ends the scheduler for good. Run returns shortly after.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.stopped = true
		s.logger.Debug("scheduler stopped", "tick", s.ticks)
	}
}

// Stopped reports whether Stop was called.
func (s *Scheduler) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Run drives ticks every interval until ctx is done or Stop is called.
// Each frame that ran is handed to sink, on the Run goroutine.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, source InputSource, sink SnapshotSink) error {
	if s.Stopped() {
		return ErrStopped
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("scheduler running", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return ctx.Err()
		case <-ticker.C:
			snap, ran := s.Step(source())
			if ran && sink != nil {
				sink(snap)
			}
			if s.Stopped() {
				return nil
			}
		}
	}
}

// Interval converts a tick rate to the time between ticks.
func Interval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}
