// Package resttimer is the process-wide rest countdown started when a set is
// completed. Only start time and duration are persisted; remaining time is
// always derived from the clock, so a reload resumes the same countdown.
package resttimer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/slot"
)

const (
	DefaultDuration = 150 * time.Second
	TickInterval    = time.Second
)

type Timer struct {
	slot     *slot.Slot[models.RestTimerState]
	duration time.Duration
	now      func() time.Time
	log      *slog.Logger

	// OnExpire runs once when a running countdown reaches zero. It is a
	// best-effort alert (bell, vibration); it can't fail the timer.
	OnExpire func(models.RestTimerState)

	mu    sync.Mutex
	state models.RestTimerState
}

type Option func(*Timer)

func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Timer) { t.log = l }
}

// WithDuration overrides the rest length. Non-positive values are ignored.
func WithDuration(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.duration = d
		}
	}
}

func New(s *slot.Slot[models.RestTimerState], opts ...Option) *Timer {
	t := &Timer{
		slot:     s,
		duration: DefaultDuration,
		now:      time.Now,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load restores the persisted state. A countdown that ran out while nothing
// was watching is stopped without an alert.
func (t *Timer) Load(ctx context.Context) error {
	st, err := t.slot.Get(ctx)
	if err != nil {
		return fmt.Errorf("loading rest timer: %w", err)
	}
	t.mu.Lock()
	if st == nil {
		t.state = models.RestTimerState{}
	} else {
		t.state = *st
	}
	overdue := t.state.Active && t.remainingLocked() <= 0
	t.mu.Unlock()

	if overdue {
		return t.Stop(ctx)
	}
	return nil
}

// Start (re)starts the countdown, replacing any running one.
func (t *Timer) Start(ctx context.Context, exerciseID string, setNumber int) error {
	st := models.RestTimerState{
		Active:    true,
		StartTime: models.Millis(t.now()),
		Duration:  int(t.duration / time.Second),
	}
	if exerciseID != "" {
		st.ExerciseID = &exerciseID
	}
	if setNumber > 0 {
		st.SetNumber = &setNumber
	}

	t.mu.Lock()
	t.state = st
	t.mu.Unlock()
	return t.save(ctx, st)
}

// Skip ends the countdown early.
func (t *Timer) Skip(ctx context.Context) error {
	return t.Stop(ctx)
}

// Stop returns the timer to idle and persists the cleared state.
func (t *Timer) Stop(ctx context.Context) error {
	t.mu.Lock()
	st := t.idleLocked()
	t.mu.Unlock()
	return t.save(ctx, st)
}

func (t *Timer) idleLocked() models.RestTimerState {
	d := t.state.Duration
	if d == 0 {
		d = int(t.duration / time.Second)
	}
	t.state = models.RestTimerState{Duration: d}
	return t.state
}

func (t *Timer) save(ctx context.Context, st models.RestTimerState) error {
	if err := t.slot.Set(ctx, &st); err != nil {
		t.log.Warn("rest timer write failed", "active", st.Active, "error", err)
		return err
	}
	return nil
}

func (t *Timer) State() models.RestTimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Active
}

// Remaining is duration minus elapsed, floored at zero; zero when idle.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remainingLocked()
}

func (t *Timer) remainingLocked() time.Duration {
	if !t.state.Active {
		return 0
	}
	elapsed := t.now().Sub(time.UnixMilli(t.state.StartTime))
	left := time.Duration(t.state.Duration)*time.Second - elapsed
	return max(left, 0)
}

// Tick checks the countdown and stops the timer when it has run out, firing
// OnExpire. It reports whether this call expired the timer.
func (t *Timer) Tick(ctx context.Context) bool {
	t.mu.Lock()
	if !t.state.Active {
		t.mu.Unlock()
		return false
	}
	if t.remainingLocked() > 0 {
		t.mu.Unlock()
		return false
	}
	expired := t.state
	st := t.idleLocked()
	t.mu.Unlock()

	if err := t.save(ctx, st); err != nil {
		t.log.Warn("stopping expired rest timer failed", "error", err)
	}
	if t.OnExpire != nil {
		t.OnExpire(expired)
	}
	return true
}
