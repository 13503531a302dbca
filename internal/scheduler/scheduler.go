// Package scheduler runs a function periodically on a single goroutine.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the clock refresh period.
const DefaultInterval = time.Second

// ErrInvalidInterval is returned when the interval is not positive.
var ErrInvalidInterval = errors.New("interval must be positive")

// TickFunc is invoked once per tick. It receives the scheduler's context.
type TickFunc func(ctx context.Context)

// Scheduler calls a TickFunc immediately and then again interval after each
// call returns. The timer is re-armed only once the previous tick completes,
// so ticks never overlap and drift by the tick's own execution time.
type Scheduler struct {
	mu       sync.Mutex
	logger   *slog.Logger
	interval time.Duration

	// Control channels
	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// New creates a scheduler with the given interval.
func New(interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		logger:   logger,
		interval: interval,
	}
}

// Interval returns the configured interval.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// SetInterval changes the interval. It applies from the next re-arm.
func (s *Scheduler) SetInterval(interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = interval
	return nil
}

// Running reports whether the tick loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start launches the tick loop in a goroutine. Calling Start on a running
// scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context, fn TickFunc) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	if s.interval <= 0 {
		s.mu.Unlock()
		return ErrInvalidInterval
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	go func() {
		defer close(doneCh)
		s.loop(ctx, stopCh, fn)
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.logger.Debug("scheduler started", "interval", s.Interval())
	return nil
}

// Run starts the tick loop and blocks until ctx is cancelled or Stop is
// called.
func (s *Scheduler) Run(ctx context.Context, fn TickFunc) error {
	if err := s.Start(ctx, fn); err != nil {
		return err
	}
	s.mu.Lock()
	doneCh := s.doneCh
	s.mu.Unlock()

	<-doneCh
	return ctx.Err()
}

// Stop stops the tick loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running || s.stopCh == nil {
		s.mu.Unlock()
		return
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	doneCh := s.doneCh
	s.mu.Unlock()

	// Wait for goroutine to finish
	<-doneCh
	s.logger.Debug("scheduler stopped")
}

// loop is the self-rescheduling tick loop.
func (s *Scheduler) loop(ctx context.Context, stopCh <-chan struct{}, fn TickFunc) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-timer.C:
			s.tick(ctx, fn)
			timer.Reset(s.Interval())
		}
	}
}

// tick runs fn, recovering from panics so a broken tick never ends the loop.
func (s *Scheduler) tick(ctx context.Context, fn TickFunc) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tick panicked", "panic", r)
		}
	}()
	fn(ctx)
}
