package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/ironlog/internal/config"
	"github.com/misterclayt0n/ironlog/internal/kv"
	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/persist"
	"github.com/misterclayt0n/ironlog/internal/resttimer"
	"github.com/misterclayt0n/ironlog/internal/session"
	"github.com/misterclayt0n/ironlog/internal/slot"
	"github.com/misterclayt0n/ironlog/internal/storage"
)

// app is everything a command touches: the workout database, the local state
// store, the session controller and the rest timer. Each command opens it,
// resumes whatever was in progress and closes it on the way out.
type app struct {
	cfg   *config.Config
	db    *storage.Storage
	store kv.Store
	ctrl  *session.Controller
	rest  *resttimer.Timer

	stopSignals func()
}

func openStorage(ctx context.Context) (*config.Config, *storage.Storage, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to load config: %w", err)
	}
	st, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("database opened", "driver", cfg.DB.Driver)
	return cfg, st, nil
}

func openApp(ctx context.Context) (*app, error) {
	cfg, st, err := openStorage(ctx)
	if err != nil {
		return nil, err
	}

	store, err := kv.Open(cfg.State.Backend, cfg.State.Dir)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("Failed to open local state: %w", err)
	}

	a := &app{
		cfg:   cfg,
		db:    st,
		store: store,
		ctrl: session.New(slot.Workouts(store), st,
			session.WithHistory(st),
			session.WithLogger(logger),
		),
		rest: resttimer.New(slot.RestTimers(store),
			resttimer.WithDuration(time.Duration(cfg.Rest.DurationSeconds)*time.Second),
			resttimer.WithLogger(logger),
		),
	}

	a.rest.OnExpire = restAlert(os.Stdout)

	a.ctrl.Subscribe(func(ev session.Event) {
		switch ev.Kind {
		case session.EventSetCompleted:
			if err := a.rest.Start(ctx, ev.ExerciseID, ev.SetNumber); err != nil {
				logger.Warn("starting rest timer failed", "error", err)
			}
		case session.EventExpired:
			color.Yellow("⚠️  The last workout was started more than %s ago and has been discarded.",
				session.ExpiryThreshold)
		case session.EventStateChanged:
			logger.Debug("session state changed", "state", ev.State.String())
		}
	})

	if err := a.rest.Load(ctx); err != nil {
		logger.Warn("rest timer state unreadable, starting idle", "error", err)
	}
	if _, err := a.ctrl.Load(ctx); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("Failed to load session: %w", err)
	}

	a.stopSignals = persist.FlushOnSignal(a.ctrl.Scheduler(), func(os.Signal) {
		os.Exit(130)
	})
	return a, nil
}

// restAlert rings the terminal bell when a rest countdown runs out.
func restAlert(w io.Writer) func(models.RestTimerState) {
	return func(st models.RestTimerState) {
		if _, err := fmt.Fprint(w, "\a"); err != nil {
			logger.Debug("rest alert not delivered", "error", err)
		}
	}
}

// Close writes the session one last time and releases everything.
func (a *app) Close(ctx context.Context) {
	if a.stopSignals != nil {
		a.stopSignals()
	}
	flushCtx, cancel := context.WithTimeout(ctx, persist.ExitFlushTimeout)
	defer cancel()
	if err := a.ctrl.Close(flushCtx); err != nil {
		logger.Warn("final session write failed", "error", err)
	}
	if c, ok := a.store.(io.Closer); ok {
		c.Close()
	}
	a.db.Close()
}

// active returns the in-progress workout or session.ErrNoSession.
func (a *app) active() (*models.Workout, error) {
	w := a.ctrl.Workout()
	if w == nil {
		return nil, session.ErrNoSession
	}
	return w, nil
}

// exerciseAt resolves a 1-based exercise index argument.
func exerciseAt(w *models.Workout, arg string) (models.Exercise, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 {
		return models.Exercise{}, fmt.Errorf("Invalid exercise index. Must be a positive integer")
	}
	if idx > len(w.Exercises) {
		return models.Exercise{}, fmt.Errorf("Exercise index out of range")
	}
	return w.Exercises[idx-1], nil
}

// setAt resolves a 1-based set index argument.
func setAt(ex models.Exercise, arg string) (models.Set, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 {
		return models.Set{}, fmt.Errorf("Invalid set index. Must be a positive integer")
	}
	if idx > len(ex.Sets) {
		return models.Set{}, fmt.Errorf("Set index out of range")
	}
	return ex.Sets[idx-1], nil
}
