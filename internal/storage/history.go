package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// PreviousSets returns the sets of the most recent completed workout that
// contains an exercise with this name (case-insensitive), or nil.
func (s *Storage) PreviousSets(ctx context.Context, exerciseName string) ([]models.Set, error) {
	var exerciseID string
	err := s.DB.QueryRowContext(ctx, `
        SELECT we.id
        FROM workout_exercises we
        JOIN workouts w ON w.id = we.workout_id
        WHERE we.name = ? COLLATE NOCASE
        ORDER BY w.completed_at DESC, we.position ASC
        LIMIT 1
    `, exerciseName).Scan(&exerciseID)
	if err == sql.ErrNoRows {
		return nil, nil // No previous session found.
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to find previous %q: %w", exerciseName, err)
	}
	return s.loadSets(ctx, exerciseID)
}

// RecentWorkouts returns up to limit completed workouts, newest first, with
// their exercises and sets. A limit <= 0 returns all of them.
func (s *Storage) RecentWorkouts(ctx context.Context, limit int) ([]models.Workout, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, template_id, start_time, completed_at
        FROM workouts
        ORDER BY completed_at DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("Failed to query workouts: %w", err)
	}

	var workouts []models.Workout
	for rows.Next() {
		var w models.Workout
		var templateID sql.NullString
		var completedAt int64
		if err := rows.Scan(&w.ID, &templateID, &w.StartTime, &completedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("Failed to scan workout: %w", err)
		}
		w.CompletedAt = &completedAt
		if templateID.Valid {
			w.TemplateID = &templateID.String
		}
		workouts = append(workouts, w)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range workouts {
		exs, err := s.loadExercises(ctx, workouts[i].ID)
		if err != nil {
			return nil, err
		}
		workouts[i].Exercises = exs
	}
	return workouts, nil
}

func (s *Storage) loadExercises(ctx context.Context, workoutID string) ([]models.Exercise, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, name
        FROM workout_exercises
        WHERE workout_id = ?
        ORDER BY position ASC`, workoutID)
	if err != nil {
		return nil, err
	}

	exercises := []models.Exercise{}
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("Failed to scan exercise: %w", err)
		}
		exercises = append(exercises, ex)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range exercises {
		// Load the sets for this exercise.
		sets, err := s.loadSets(ctx, exercises[i].ID)
		if err != nil {
			return nil, err
		}
		exercises[i].Sets = sets
	}
	return exercises, nil
}

// ExercisePerformance is one past occurrence of an exercise.
type ExercisePerformance struct {
	WorkoutID   string
	StartTime   int64
	CompletedAt int64
	Name        string
	Sets        []models.Set
}

// ExerciseHistory returns up to limit past performances of an exercise name
// (case-insensitive), newest first. A limit <= 0 returns all of them.
func (s *Storage) ExerciseHistory(ctx context.Context, exerciseName string, limit int) ([]ExercisePerformance, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.DB.QueryContext(ctx, `
        SELECT we.id, we.name, w.id, w.start_time, w.completed_at
        FROM workout_exercises we
        JOIN workouts w ON w.id = we.workout_id
        WHERE we.name = ? COLLATE NOCASE
        ORDER BY w.completed_at DESC, we.position ASC
        LIMIT ?
    `, exerciseName, limit)
	if err != nil {
		return nil, fmt.Errorf("Failed to query history of %q: %w", exerciseName, err)
	}

	var exerciseIDs []string
	var out []ExercisePerformance
	for rows.Next() {
		var p ExercisePerformance
		var exID string
		if err := rows.Scan(&exID, &p.Name, &p.WorkoutID, &p.StartTime, &p.CompletedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("Failed to scan history: %w", err)
		}
		exerciseIDs = append(exerciseIDs, exID)
		out = append(out, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range exerciseIDs {
		sets, err := s.loadSets(ctx, id)
		if err != nil {
			return nil, err
		}
		out[i].Sets = sets
	}
	return out, nil
}
