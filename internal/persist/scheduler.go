// Package persist mirrors a changing in-memory value to durable storage using
// three independent triggers: a debounce after each change, a fixed-interval
// heartbeat, and an explicit flush on exit.
package persist

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultDebounce  = time.Second
	DefaultHeartbeat = 30 * time.Second
)

// WriteFunc persists the current snapshot. It is called at fire time, never
// with a value captured earlier, and must itself check whether there is still
// anything to write.
type WriteFunc func(ctx context.Context) error

// Scheduler owns the debounce timer and the heartbeat goroutine. Every write
// is a full overwrite so triggers may fire in any order.
type Scheduler struct {
	// Write is called by every trigger.
	Write WriteFunc
	// Debounce is the quiet period after the last Touch before writing.
	Debounce time.Duration
	// Heartbeat is the unconditional write interval while running.
	Heartbeat time.Duration
	// Logger receives write failures. They are not retried; the next trigger
	// tries again.
	Logger *slog.Logger

	// NewTicker creates the heartbeat ticker. If nil, time.NewTicker is used.
	NewTicker func(d time.Duration) (tick <-chan time.Time, stop func())

	mu       sync.Mutex
	debounce *time.Timer
	cancel   context.CancelFunc
	done     chan struct{}
}

// New returns a scheduler with the default intervals.
func New(write WriteFunc, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		Write:     write,
		Debounce:  DefaultDebounce,
		Heartbeat: DefaultHeartbeat,
		Logger:    logger,
	}
}

func (s *Scheduler) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

// Start begins the heartbeat. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.heartbeat(ctx, s.done)
}

func (s *Scheduler) heartbeat(ctx context.Context, done chan struct{}) {
	defer close(done)
	if s.Heartbeat <= 0 {
		<-ctx.Done()
		return
	}

	newTicker := s.NewTicker
	if newTicker == nil {
		newTicker = defaultNewTicker
	}
	ch, stop := newTicker(s.Heartbeat)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ch:
			s.fire(ctx, "heartbeat")
		}
	}
}

// Touch records a mutation and (re)starts the debounce timer.
func (s *Scheduler) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(s.Debounce, func() {
		s.fire(context.Background(), "debounce")
	})
}

// Flush performs one synchronous write attempt and returns its error.
func (s *Scheduler) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	s.mu.Unlock()
	return s.Write(ctx)
}

// Stop cancels the pending debounce and the heartbeat without writing, and
// waits for the heartbeat goroutine to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (s *Scheduler) fire(ctx context.Context, trigger string) {
	if err := s.Write(ctx); err != nil {
		s.logger().Warn("snapshot write failed", "trigger", trigger, "error", err)
	}
}

func defaultNewTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}
