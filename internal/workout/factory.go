package workout

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/ironlog/internal/models"
)

func newID() string {
	return uuid.New().String()
}

// NewEmpty creates a workout with no exercises started at now.
func NewEmpty(now time.Time) *models.Workout {
	return &models.Workout{
		ID:        newID(),
		StartTime: models.Millis(now),
		Exercises: []models.Exercise{},
	}
}

// NewFromTemplate creates a workout with one exercise per template entry, each
// holding DefaultSets blank sets. The template is copied, later edits to it
// don't reach the workout.
func NewFromTemplate(tmpl models.WorkoutTemplate, now time.Time) *models.Workout {
	w := NewEmpty(now)
	id := tmpl.ID
	w.TemplateID = &id
	for _, te := range tmpl.Exercises {
		w.Exercises = append(w.Exercises, NewExercise(te.Name, te.DefaultSets))
	}
	return w
}

// NewExercise creates an exercise with n blank sets. n is clamped to at least one.
func NewExercise(name string, n int) models.Exercise {
	if n < 1 {
		n = 1
	}
	ex := models.Exercise{
		ID:   newID(),
		Name: strings.TrimSpace(name),
		Sets: make([]models.Set, 0, n),
	}
	for i := range n {
		ex.Sets = append(ex.Sets, NewSet(i+1))
	}
	return ex
}

func NewSet(number int) models.Set {
	return models.Set{ID: newID(), SetNumber: number}
}

// AddSet returns a copy of ex with one blank set appended.
func AddSet(ex models.Exercise) models.Exercise {
	out := ex.Clone()
	out.Sets = append(out.Sets, NewSet(len(out.Sets)+1))
	return out
}

// RemoveSet returns a copy of ex without the set identified by setID and the
// remaining sets renumbered 1..N. Forbidding removal of the last set is the
// caller's job.
func RemoveSet(ex models.Exercise, setID string) models.Exercise {
	out := ex.Clone()
	sets := out.Sets[:0]
	for _, s := range out.Sets {
		if s.ID != setID {
			sets = append(sets, s)
		}
	}
	out.Sets = Renumber(sets)
	return out
}

// Renumber rewrites SetNumber so the sets form a contiguous 1..N sequence.
func Renumber(sets []models.Set) []models.Set {
	for i := range sets {
		sets[i].SetNumber = i + 1
	}
	return sets
}

// MarkCompleted sets the completion flag. CompletedAt is stamped on a
// false->true transition and cleared on true->false.
func MarkCompleted(s models.Set, done bool, now time.Time) models.Set {
	if s.Completed == done {
		return s
	}
	s.Completed = done
	if done {
		at := models.Millis(now)
		s.CompletedAt = &at
	} else {
		s.CompletedAt = nil
	}
	return s
}

// ApplyPrevious copies reps/weight from prev onto the matching set positions
// of ex. Extra positions on either side are left alone.
func ApplyPrevious(ex models.Exercise, prev []models.Set) models.Exercise {
	out := ex.Clone()
	for i := range out.Sets {
		if i >= len(prev) {
			break
		}
		reps, weight := prev[i].CurrentReps, prev[i].CurrentWeight
		out.Sets[i].PreviousReps = &reps
		out.Sets[i].PreviousWeight = &weight
	}
	return out
}

// TemplateFromWorkout projects each exercise of w to {name, len(sets)}.
// It reports false when name is blank.
func TemplateFromWorkout(name string, w *models.Workout, now time.Time) (models.WorkoutTemplate, bool) {
	name = strings.TrimSpace(name)
	if name == "" || w == nil {
		return models.WorkoutTemplate{}, false
	}
	tmpl := models.WorkoutTemplate{
		ID:        newID(),
		Name:      name,
		CreatedAt: models.Millis(now),
		Exercises: make([]models.TemplateExercise, 0, len(w.Exercises)),
	}
	for _, ex := range w.Exercises {
		tmpl.Exercises = append(tmpl.Exercises, models.TemplateExercise{
			Name:        ex.Name,
			DefaultSets: max(len(ex.Sets), 1),
		})
	}
	return tmpl, true
}
