package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/utils"
	"github.com/misterclayt0n/ironlog/internal/workout"
)

// Submit permanently records a finished workout with all its exercises and
// sets. Submitting the same workout twice keeps the first record.
func (s *Storage) Submit(ctx context.Context, w *models.Workout) error {
	if w.CompletedAt == nil {
		return fmt.Errorf("workout %s is not completed", w.ID)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO workouts
		(id, template_id, start_time, completed_at, total_volume)
		VALUES (?, ?, ?, ?, ?)`,
		w.ID,
		nullString(w.TemplateID),
		w.StartTime,
		*w.CompletedAt,
		workout.TotalVolume(w),
	)
	if err != nil {
		return fmt.Errorf("Failed to create workout: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil // Already recorded.
	}

	for pos, ex := range w.Exercises {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO workout_exercises
            (id, workout_id, position, name)
            VALUES (?, ?, ?, ?)`,
			ex.ID,
			w.ID,
			pos,
			ex.Name,
		)
		if err != nil {
			return fmt.Errorf("Failed to save exercise %q: %w", ex.Name, err)
		}

		for _, set := range ex.Sets {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO workout_sets
                (id, exercise_id, set_number, reps, weight, completed, completed_at)
                VALUES (?, ?, ?, ?, ?, ?, ?)`,
				set.ID,
				ex.ID,
				set.SetNumber,
				set.CurrentReps,
				set.CurrentWeight,
				utils.BoolToInt(set.Completed),
				nullInt64(set.CompletedAt),
			)
			if err != nil {
				return fmt.Errorf("Failed to save set: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) loadSets(ctx context.Context, exerciseID string) ([]models.Set, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, set_number, reps, weight, completed, completed_at
		FROM workout_sets
		WHERE exercise_id = ?
		ORDER BY set_number ASC`,
		exerciseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []models.Set
	for rows.Next() {
		var set models.Set
		var completed int
		var completedAt sql.NullInt64
		if err := rows.Scan(&set.ID, &set.SetNumber, &set.CurrentReps, &set.CurrentWeight, &completed, &completedAt); err != nil {
			return nil, fmt.Errorf("Failed to scan set: %w", err)
		}
		set.Completed = completed != 0
		if completedAt.Valid {
			v := completedAt.Int64
			set.CompletedAt = &v
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
