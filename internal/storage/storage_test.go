package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/misterclayt0n/ironlog/internal/config"
	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	st, err := Open(context.Background(), config.DBConfig{
		Driver:           config.DriverSQLite,
		ConnectionString: ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func finishedWorkout(start time.Time, name string, reps, weight float64) *models.Workout {
	w := workout.NewEmpty(start)
	ex := workout.NewExercise(name, 2)
	for i := range ex.Sets {
		ex.Sets[i].CurrentReps = reps
		ex.Sets[i].CurrentWeight = weight
		ex.Sets[i] = workout.MarkCompleted(ex.Sets[i], true, start.Add(time.Minute))
	}
	w.Exercises = append(w.Exercises, ex)
	done := start.Add(time.Hour).UnixMilli()
	w.CompletedAt = &done
	return w
}

func TestSubmitAndRecentWorkouts(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	older := finishedWorkout(base, "Bench Press", 8, 60)
	newer := finishedWorkout(base.Add(24*time.Hour), "Squat", 5, 100)
	tmplID := "tmpl-1"
	newer.TemplateID = &tmplID

	require.NoError(t, st.Submit(ctx, older))
	require.NoError(t, st.Submit(ctx, newer))

	got, err := st.RecentWorkouts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, newer.ID, got[0].ID)
	require.NotNil(t, got[0].TemplateID)
	assert.Equal(t, "tmpl-1", *got[0].TemplateID)
	require.Len(t, got[0].Exercises, 1)
	assert.Equal(t, "Squat", got[0].Exercises[0].Name)
	require.Len(t, got[0].Exercises[0].Sets, 2)
	assert.Equal(t, 1, got[0].Exercises[0].Sets[0].SetNumber)
	assert.True(t, got[0].Exercises[0].Sets[1].Completed)
	assert.NotNil(t, got[0].Exercises[0].Sets[1].CompletedAt)
	assert.Equal(t, 1000.0, workout.TotalVolume(&got[0]))

	assert.Equal(t, older.ID, got[1].ID)
	assert.Nil(t, got[1].TemplateID)

	limited, err := st.RecentWorkouts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSubmitTwiceKeepsOneRecord(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	w := finishedWorkout(time.Now(), "Deadlift", 3, 140)
	require.NoError(t, st.Submit(ctx, w))
	require.NoError(t, st.Submit(ctx, w))

	got, err := st.RecentWorkouts(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSubmitRejectsOpenWorkout(t *testing.T) {
	st := newTestStorage(t)
	err := st.Submit(context.Background(), workout.NewEmpty(time.Now()))
	assert.Error(t, err)
}

func TestPreviousSets(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	prev, err := st.PreviousSets(ctx, "Bench Press")
	require.NoError(t, err)
	assert.Nil(t, prev)

	require.NoError(t, st.Submit(ctx, finishedWorkout(base, "Bench Press", 8, 60)))
	require.NoError(t, st.Submit(ctx, finishedWorkout(base.Add(48*time.Hour), "Bench Press", 6, 70)))

	prev, err = st.PreviousSets(ctx, "bench press")
	require.NoError(t, err)
	require.Len(t, prev, 2)
	assert.Equal(t, 6.0, prev[0].CurrentReps)
	assert.Equal(t, 70.0, prev[0].CurrentWeight)
}

func TestTemplateCatalog(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	tmpl := models.WorkoutTemplate{
		ID:        "t1",
		Name:      "  Push ",
		CreatedAt: 1000,
		Exercises: []models.TemplateExercise{
			{Name: "Bench Press", DefaultSets: 3},
			{Name: "Dips", DefaultSets: 0},
			{Name: "  ", DefaultSets: 2},
		},
	}
	require.NoError(t, st.UpsertTemplate(ctx, tmpl))

	got, err := st.GetTemplate(ctx, "push")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, "Push", got.Name)
	assert.Equal(t, []models.TemplateExercise{
		{Name: "Bench Press", DefaultSets: 3},
		{Name: "Dips", DefaultSets: 1},
	}, got.Exercises)

	byID, err := st.GetTemplate(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Push", byID.Name)

	tmpl.Name = "Push Day"
	require.NoError(t, st.UpsertTemplate(ctx, tmpl))
	all, err := st.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Push Day", all[0].Name)
	assert.Equal(t, int64(1000), all[0].CreatedAt)

	require.NoError(t, st.UpsertTemplate(ctx, models.WorkoutTemplate{ID: "t2", Name: "   "}))
	all, err = st.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, st.DeleteTemplate(ctx, "t1"))
	assert.ErrorIs(t, st.DeleteTemplate(ctx, "t1"), ErrTemplateNotFound)
	_, err = st.GetTemplate(ctx, "t1")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestParseTemplatesTOML(t *testing.T) {
	now := time.UnixMilli(5000)

	single := []byte(`
name = "Legs"

[[exercise]]
name = "Squat"
sets = 5

[[exercise]]
name = "Leg Curl"

[[exercise]]
name = "  "
sets = 2
`)
	got, err := ParseTemplatesTOML(single, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Legs", got[0].Name)
	assert.Equal(t, int64(5000), got[0].CreatedAt)
	assert.Equal(t, []models.TemplateExercise{
		{Name: "Squat", DefaultSets: 5},
		{Name: "Leg Curl", DefaultSets: 1},
	}, got[0].Exercises)

	list := []byte(`
[[template]]
name = "Push"
[[template.exercise]]
name = "Bench Press"
sets = 3

[[template]]
name = "Pull"
[[template.exercise]]
name = "Row"
sets = 4
`)
	got, err = ParseTemplatesTOML(list, now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Pull", got[1].Name)
	assert.NotEqual(t, got[0].ID, got[1].ID)

	_, err = ParseTemplatesTOML([]byte(`[[exercise]]
name = "Squat"`), now)
	assert.Error(t, err)

	_, err = ParseTemplatesTOML([]byte(`name = `), now)
	assert.Error(t, err)
}

func TestTemplatesTOMLRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	dir := t.TempDir()

	in := filepath.Join(dir, "in.toml")
	require.NoError(t, os.WriteFile(in, []byte(`
[[template]]
name = "Push"
[[template.exercise]]
name = "Bench Press"
sets = 3
`), 0644))

	n, err := st.ImportTemplatesTOML(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	first, err := st.GetTemplate(ctx, "Push")
	require.NoError(t, err)

	// Importing again updates the existing template.
	n, err = st.ImportTemplatesTOML(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	again, err := st.GetTemplate(ctx, "Push")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	out := filepath.Join(dir, "out.toml")
	n, err = st.ExportTemplatesTOML(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	parsed, err := ParseTemplatesTOML(data, time.Now())
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Push", parsed[0].Name)
	assert.Equal(t, first.Exercises, parsed[0].Exercises)
}

func TestExerciseHistory(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	for i := range 3 {
		w := finishedWorkout(base.Add(time.Duration(i)*24*time.Hour), "Squat", 5, 100+float64(i)*5)
		require.NoError(t, st.Submit(ctx, w))
	}
	require.NoError(t, st.Submit(ctx, finishedWorkout(base, "Row", 10, 50)))

	got, err := st.ExerciseHistory(ctx, "SQUAT", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Squat", got[0].Name)
	assert.Equal(t, 110.0, got[0].Sets[0].CurrentWeight)
	assert.Equal(t, 105.0, got[1].Sets[0].CurrentWeight)
	assert.Greater(t, got[0].CompletedAt, got[1].CompletedAt)

	all, err := st.ExerciseHistory(ctx, "Squat", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := st.ExerciseHistory(ctx, "Curl", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
