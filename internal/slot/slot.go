// Package slot stores a single JSON snapshot of a value under a fixed key.
// A write always overwrites the whole snapshot, an absent key means "none".
package slot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/misterclayt0n/ironlog/internal/kv"
	"github.com/misterclayt0n/ironlog/internal/models"
)

const (
	KeyActiveWorkout = "active_workout"
	KeyRestTimer     = "rest_timer"
)

type Slot[T any] struct {
	store kv.Store
	key   string
}

func New[T any](store kv.Store, key string) *Slot[T] {
	return &Slot[T]{store: store, key: key}
}

// Workouts returns the slot holding the active workout.
func Workouts(store kv.Store) *Slot[models.Workout] {
	return New[models.Workout](store, KeyActiveWorkout)
}

// RestTimers returns the slot holding the rest timer state.
func RestTimers(store kv.Store) *Slot[models.RestTimerState] {
	return New[models.RestTimerState](store, KeyRestTimer)
}

func (s *Slot[T]) Key() string {
	return s.key
}

// Get returns the stored value, or nil if the slot is empty.
func (s *Slot[T]) Get(ctx context.Context) (*T, error) {
	data, err := s.store.Read(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.key, err)
	}
	return &v, nil
}

// Set overwrites the slot with v. A nil v clears it.
func (s *Slot[T]) Set(ctx context.Context, v *T) error {
	if v == nil {
		return s.Clear(ctx)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.key, err)
	}
	if err := s.store.Write(ctx, s.key, data); err != nil {
		return fmt.Errorf("writing %s: %w", s.key, err)
	}
	return nil
}

func (s *Slot[T]) Clear(ctx context.Context) error {
	if err := s.store.Write(ctx, s.key, nil); err != nil {
		return fmt.Errorf("clearing %s: %w", s.key, err)
	}
	return nil
}
