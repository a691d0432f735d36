package slot

import (
	"context"
	"testing"
	"time"

	"github.com/misterclayt0n/ironlog/internal/kv"
	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutSlot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Workouts(kv.NewMemoryStore())

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	w := workout.NewEmpty(time.UnixMilli(1_700_000_000_000))
	ex := workout.NewExercise("Squat", 2)
	ex.Sets[0].CurrentReps, ex.Sets[0].CurrentWeight = 5, 100
	ex.Sets[0] = workout.MarkCompleted(ex.Sets[0], true, time.UnixMilli(1_700_000_060_000))
	w.Exercises = append(w.Exercises, ex)

	require.NoError(t, s.Set(ctx, w))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, w, got)

	require.NoError(t, s.Set(ctx, nil))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWorkoutSlot_JSONFieldNames(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	tmplID := "tmpl-1"
	w := &models.Workout{
		ID:         "w-1",
		StartTime:  1000,
		TemplateID: &tmplID,
		Exercises: []models.Exercise{{
			ID:   "e-1",
			Name: "Bench Press",
			Sets: []models.Set{{ID: "s-1", SetNumber: 1, CurrentReps: 8, CurrentWeight: 60}},
		}},
	}
	require.NoError(t, Workouts(store).Set(ctx, w))

	raw, err := store.Read(ctx, KeyActiveWorkout)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "w-1",
		"startTime": 1000,
		"templateId": "tmpl-1",
		"exercises": [{
			"id": "e-1",
			"name": "Bench Press",
			"sets": [{"id": "s-1", "setNumber": 1, "currentReps": 8, "currentWeight": 60, "completed": false}]
		}]
	}`, string(raw))
}

func TestSlot_CorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Write(ctx, KeyRestTimer, []byte("{not json")))

	_, err := RestTimers(store).Get(ctx)
	assert.Error(t, err)
}
