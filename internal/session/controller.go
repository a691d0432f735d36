// Package session tracks the single in-progress workout on this device.
//
// The controller owns the in-memory workout, mirrors it into the durable
// session slot through a persist.Scheduler, hands finished workouts to a
// completion Sink, and discards sessions that are too old to resume.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/persist"
	"github.com/misterclayt0n/ironlog/internal/slot"
	"github.com/misterclayt0n/ironlog/internal/workout"
)

// ExpiryThreshold is the maximum age of a session that can still be resumed.
const ExpiryThreshold = 6 * time.Hour

var (
	ErrSessionActive = errors.New("a workout is already in progress")
	ErrNoSession     = errors.New("no active workout")
	// ErrNotRecorded wraps a completion sink failure. The session is closed
	// locally regardless; the remote record may be missing.
	ErrNotRecorded = errors.New("workout finished but not recorded")
)

// Sink permanently records finished workouts.
type Sink interface {
	Submit(ctx context.Context, w *models.Workout) error
}

// History looks up the sets of the last completed exercise with a given name.
// It returns nil when there is none.
type History interface {
	PreviousSets(ctx context.Context, exerciseName string) ([]models.Set, error)
}

type Controller struct {
	slot    *slot.Slot[models.Workout]
	sink    Sink
	history History
	sched   *persist.Scheduler
	log     *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	workout  *models.Workout
	handlers []func(Event)
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func WithHistory(h History) Option {
	return func(c *Controller) { c.history = h }
}

// WithScheduler lets tests tune the debounce and heartbeat. The scheduler's
// Write is replaced with the controller's own.
func WithScheduler(s *persist.Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

func New(s *slot.Slot[models.Workout], sink Sink, opts ...Option) *Controller {
	c := &Controller{
		slot: s,
		sink: sink,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sched == nil {
		c.sched = persist.New(nil, c.log)
	}
	c.sched.Write = c.persist
	if c.sched.Logger == nil {
		c.sched.Logger = c.log
	}
	return c
}

// Subscribe registers fn for all future events. Handlers run synchronously
// after the controller has released its lock.
func (c *Controller) Subscribe(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, fn)
}

func (c *Controller) emit(events ...Event) {
	c.mu.Lock()
	handlers := slices.Clone(c.handlers)
	c.mu.Unlock()
	for _, e := range events {
		for _, h := range handlers {
			h(e)
		}
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.workout == nil {
		return NoSession
	}
	return Active
}

// Workout returns a copy of the active workout, or nil.
func (c *Controller) Workout() *models.Workout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.workout.Clone()
}

// persist writes whatever is current when it runs. With no active session it
// writes nothing, so a timer that fires after Complete or Cancel can't bring
// the cleared slot back.
func (c *Controller) persist(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.workout == nil {
		return nil
	}
	return c.slot.Set(ctx, c.workout)
}

// Load resumes the stored session, if any. A session older than
// ExpiryThreshold is discarded without being submitted, the slot is cleared
// and EventExpired is emitted; expired reports whether that happened.
func (c *Controller) Load(ctx context.Context) (expired bool, err error) {
	stored, err := c.slot.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("loading session: %w", err)
	}
	if stored == nil {
		return false, nil
	}

	age := c.now().Sub(stored.Started())
	if age > ExpiryThreshold {
		if err := c.slot.Clear(ctx); err != nil {
			return false, fmt.Errorf("clearing expired session: %w", err)
		}
		c.log.Warn("discarded expired session", "workout_id", stored.ID, "age", age.Round(time.Second))
		c.emit(Event{Kind: EventExpired, State: NoSession, Workout: stored})
		return true, nil
	}

	c.mu.Lock()
	if c.workout != nil {
		c.mu.Unlock()
		return false, ErrSessionActive
	}
	c.workout = stored
	snapshot := stored.Clone()
	c.mu.Unlock()

	c.sched.Start()
	c.emit(Event{Kind: EventStateChanged, State: Active, Workout: snapshot})
	return false, nil
}

// Start begins a new workout, empty or from tmpl, and writes it through to
// the slot immediately.
func (c *Controller) Start(ctx context.Context, tmpl *models.WorkoutTemplate) (*models.Workout, error) {
	c.mu.Lock()
	if c.workout != nil {
		c.mu.Unlock()
		return nil, ErrSessionActive
	}
	var w *models.Workout
	if tmpl != nil {
		w = workout.NewFromTemplate(*tmpl, c.now())
	} else {
		w = workout.NewEmpty(c.now())
	}
	if err := c.slot.Set(ctx, w); err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("saving new session: %w", err)
	}
	c.workout = w
	snapshot := w.Clone()
	c.mu.Unlock()

	c.sched.Start()
	c.emit(Event{Kind: EventStateChanged, State: Active, Workout: snapshot})
	return snapshot.Clone(), nil
}

// mutate applies fn to the active workout's exercise list. fn returns the new
// list and whether anything changed. Without a session it does nothing.
func (c *Controller) mutate(fn func([]models.Exercise) ([]models.Exercise, bool)) bool {
	c.mu.Lock()
	if c.workout == nil {
		c.mu.Unlock()
		return false
	}
	next, ok := fn(c.workout.Exercises)
	if ok {
		c.workout.Exercises = next
	}
	c.mu.Unlock()

	if ok {
		c.sched.Touch()
	}
	return ok
}

func indexOf(exs []models.Exercise, id string) int {
	for i, ex := range exs {
		if ex.ID == id {
			return i
		}
	}
	return -1
}

// AddExercise appends a new exercise with one blank set. Previous-session
// values are filled in when a History is configured.
func (c *Controller) AddExercise(ctx context.Context, name string) (models.Exercise, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Exercise{}, false
	}
	ex := workout.NewExercise(name, 1)
	if c.history != nil && c.State() == Active {
		prev, err := c.history.PreviousSets(ctx, name)
		if err != nil {
			c.log.Warn("previous sets lookup failed", "exercise", name, "error", err)
		}
		ex = workout.ApplyPrevious(ex, prev)
	}

	ok := c.mutate(func(exs []models.Exercise) ([]models.Exercise, bool) {
		next := append(cloneList(exs), ex)
		return next, true
	})
	if !ok {
		return models.Exercise{}, false
	}
	return ex.Clone(), true
}

// UpdateExercise replaces the exercise with the same id. A replacement with
// no sets is refused; set numbers are normalized.
func (c *Controller) UpdateExercise(id string, ex models.Exercise) bool {
	if len(ex.Sets) == 0 {
		return false
	}
	ex = ex.Clone()
	ex.ID = id
	ex.Sets = workout.Renumber(ex.Sets)
	return c.mutate(func(exs []models.Exercise) ([]models.Exercise, bool) {
		i := indexOf(exs, id)
		if i < 0 {
			return exs, false
		}
		next := cloneList(exs)
		next[i] = ex
		return next, true
	})
}

func (c *Controller) DeleteExercise(id string) bool {
	return c.mutate(func(exs []models.Exercise) ([]models.Exercise, bool) {
		next := make([]models.Exercise, 0, len(exs))
		for _, ex := range exs {
			if ex.ID != id {
				next = append(next, ex)
			}
		}
		return next, len(next) != len(exs)
	})
}

func (c *Controller) AddSet(exerciseID string) bool {
	return c.mutate(func(exs []models.Exercise) ([]models.Exercise, bool) {
		i := indexOf(exs, exerciseID)
		if i < 0 {
			return exs, false
		}
		next := cloneList(exs)
		next[i] = workout.AddSet(exs[i])
		return next, true
	})
}

// DeleteSet removes a set. Removing the last set of an exercise is refused.
func (c *Controller) DeleteSet(exerciseID, setID string) bool {
	return c.mutate(func(exs []models.Exercise) ([]models.Exercise, bool) {
		i := indexOf(exs, exerciseID)
		if i < 0 || len(exs[i].Sets) <= 1 || setIndex(exs[i], setID) < 0 {
			return exs, false
		}
		next := cloneList(exs)
		next[i] = workout.RemoveSet(exs[i], setID)
		return next, true
	})
}

// UpdateSet stores raw reps/weight input. Invalid input becomes 0.
func (c *Controller) UpdateSet(exerciseID, setID, reps, weight string) bool {
	r, w := workout.ParseNonNegative(reps), workout.ParseNonNegative(weight)
	return c.updateSet(exerciseID, setID, func(s models.Set) models.Set {
		s.CurrentReps, s.CurrentWeight = r, w
		return s
	})
}

// SetCompleted toggles a set. A false->true transition emits
// EventSetCompleted, which is what restarts the rest timer.
func (c *Controller) SetCompleted(exerciseID, setID string, done bool) bool {
	var fired *Event
	now := c.now()
	ok := c.updateSet(exerciseID, setID, func(s models.Set) models.Set {
		if done && !s.Completed {
			fired = &Event{Kind: EventSetCompleted, State: Active, ExerciseID: exerciseID, SetNumber: s.SetNumber}
		}
		return workout.MarkCompleted(s, done, now)
	})
	if ok && fired != nil {
		fired.Workout = c.Workout()
		c.emit(*fired)
	}
	return ok
}

func (c *Controller) updateSet(exerciseID, setID string, fn func(models.Set) models.Set) bool {
	return c.mutate(func(exs []models.Exercise) ([]models.Exercise, bool) {
		i := indexOf(exs, exerciseID)
		if i < 0 {
			return exs, false
		}
		j := setIndex(exs[i], setID)
		if j < 0 {
			return exs, false
		}
		next := cloneList(exs)
		next[i].Sets[j] = fn(next[i].Sets[j])
		return next, true
	})
}

func setIndex(ex models.Exercise, setID string) int {
	for j, s := range ex.Sets {
		if s.ID == setID {
			return j
		}
	}
	return -1
}

func cloneList(exs []models.Exercise) []models.Exercise {
	out := make([]models.Exercise, len(exs), len(exs)+1)
	for i, ex := range exs {
		out[i] = ex.Clone()
	}
	return out
}

// Complete stamps completedAt, submits the workout to the sink and clears the
// session. Callers must only offer it when the workout has an exercise.
//
// The session is closed even when the sink fails: the error wraps
// ErrNotRecorded and the remote record may be lost. There is no retry.
func (c *Controller) Complete(ctx context.Context) (*models.Workout, error) {
	c.mu.Lock()
	if c.workout == nil {
		c.mu.Unlock()
		return nil, ErrNoSession
	}
	done := c.workout
	at := models.Millis(c.now())
	done.CompletedAt = &at
	c.workout = nil
	c.mu.Unlock()

	c.sched.Stop()

	var sinkErr error
	if err := c.sink.Submit(ctx, done); err != nil {
		c.log.Error("completion sink failed, workout not recorded", "workout_id", done.ID, "error", err)
		sinkErr = fmt.Errorf("%w: %w", ErrNotRecorded, err)
	}
	if err := c.slot.Clear(ctx); err != nil {
		c.log.Warn("clearing session slot failed", "workout_id", done.ID, "error", err)
	}

	c.emit(Event{Kind: EventStateChanged, State: NoSession, Workout: done.Clone()})
	return done, sinkErr
}

// Cancel discards the active workout without submitting it. Confirmation is
// the caller's job.
func (c *Controller) Cancel(ctx context.Context) error {
	c.mu.Lock()
	if c.workout == nil {
		c.mu.Unlock()
		return ErrNoSession
	}
	dropped := c.workout
	c.workout = nil
	c.mu.Unlock()

	c.sched.Stop()
	if err := c.slot.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	c.emit(Event{Kind: EventStateChanged, State: NoSession, Workout: dropped})
	return nil
}

// Scheduler exposes the persistence scheduler, e.g. to install an exit hook.
func (c *Controller) Scheduler() *persist.Scheduler {
	return c.sched
}

// Close flushes the active workout one last time and stops the timers.
func (c *Controller) Close(ctx context.Context) error {
	err := c.sched.Flush(ctx)
	c.sched.Stop()
	return err
}
