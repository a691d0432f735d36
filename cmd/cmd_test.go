package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workoutAt(t time.Time) models.Workout {
	return models.Workout{ID: t.String(), StartTime: t.UnixMilli()}
}

func TestComputeWeekStreak(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.Local) // Wednesday.

	tests := []struct {
		name     string
		workouts []models.Workout
		want     int
	}{
		{"none", nil, 0},
		{"this week only", []models.Workout{workoutAt(now.AddDate(0, 0, -1))}, 1},
		{"three weeks in a row", []models.Workout{
			workoutAt(now),
			workoutAt(now.AddDate(0, 0, -7)),
			workoutAt(now.AddDate(0, 0, -14)),
		}, 3},
		{"gap breaks the streak", []models.Workout{
			workoutAt(now),
			workoutAt(now.AddDate(0, 0, -14)),
		}, 1},
		{"nothing this week", []models.Workout{workoutAt(now.AddDate(0, 0, -7))}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeWeekStreak(tt.workouts, now))
		})
	}
}

func TestExerciseAndSetIndexes(t *testing.T) {
	w := workout.NewEmpty(time.Now())
	ex := workout.AddSet(workout.NewExercise("Bench Press", 1))
	w.Exercises = append(w.Exercises, ex)

	got, err := exerciseAt(w, "1")
	require.NoError(t, err)
	assert.Equal(t, "Bench Press", got.Name)

	for _, bad := range []string{"0", "2", "-1", "one"} {
		_, err := exerciseAt(w, bad)
		assert.Error(t, err, bad)
	}

	s, err := setAt(got, "2")
	require.NoError(t, err)
	assert.Equal(t, 2, s.SetNumber)

	_, err = setAt(got, "3")
	assert.Error(t, err)
}

func TestSummarizeSets(t *testing.T) {
	ex := workout.NewExercise("Row", 3)
	assert.Equal(t, "no completed sets", summarizeSets(ex))

	ex.Sets[0].CurrentWeight, ex.Sets[0].CurrentReps = 60, 8
	ex.Sets[0] = workout.MarkCompleted(ex.Sets[0], true, time.Now())
	ex.Sets[2].CurrentWeight, ex.Sets[2].CurrentReps = 62.5, 6
	ex.Sets[2] = workout.MarkCompleted(ex.Sets[2], true, time.Now())
	assert.Equal(t, "60kg × 8, 62.5kg × 6", summarizeSets(ex))
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  ab  ", centerText("ab", 6))
	assert.Equal(t, "toolong", centerText("toolong", 3))
}

func TestRestAlertRingsBell(t *testing.T) {
	var out bytes.Buffer
	alert := restAlert(&out)
	alert(models.RestTimerState{})
	assert.Equal(t, "\a", out.String())
}
