package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// ListTemplates returns every template ordered by name.
func (s *Storage) ListTemplates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, name, created_at, exercises
        FROM templates
        ORDER BY name COLLATE NOCASE
    `)
	if err != nil {
		return nil, fmt.Errorf("Failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []models.WorkoutTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row scanner) (*models.WorkoutTemplate, error) {
	var t models.WorkoutTemplate
	var exercisesJSON string // NOTE: Temporary variable to hold the JSON string.
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &exercisesJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(exercisesJSON), &t.Exercises); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal exercises of %q: %w", t.Name, err)
	}
	return &t, nil
}

// GetTemplate looks a template up by id or, failing that, by name.
func (s *Storage) GetTemplate(ctx context.Context, idOrName string) (*models.WorkoutTemplate, error) {
	row := s.DB.QueryRowContext(ctx, `
        SELECT id, name, created_at, exercises
        FROM templates
        WHERE id = ? OR name = ? COLLATE NOCASE
        ORDER BY id = ? DESC
        LIMIT 1
    `, idOrName, idOrName, idOrName)

	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to load template: %w", err)
	}
	return t, nil
}

// UpsertTemplate inserts or replaces a template by id. A template with a
// blank name is ignored. Every exercise keeps at least one default set.
func (s *Storage) UpsertTemplate(ctx context.Context, t models.WorkoutTemplate) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil
	}
	exercises := make([]models.TemplateExercise, 0, len(t.Exercises))
	for _, ex := range t.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			continue
		}
		exercises = append(exercises, models.TemplateExercise{
			Name:        strings.TrimSpace(ex.Name),
			DefaultSets: max(ex.DefaultSets, 1),
		})
	}
	data, err := json.Marshal(exercises)
	if err != nil {
		return fmt.Errorf("Failed to marshal exercises: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO templates (id, name, created_at, exercises)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            exercises = excluded.exercises`,
		t.ID,
		t.Name,
		t.CreatedAt,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("Failed to save template %q: %w", t.Name, err)
	}
	return nil
}

// DeleteTemplate removes a template. Workouts that were started from it keep
// their templateId.
func (s *Storage) DeleteTemplate(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("Failed to delete template: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
