package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/misterclayt0n/ironlog/internal/models"
)

// ParseTemplatesTOML reads either a single template
//
//	name = "Push"
//	[[exercise]]
//	name = "Bench Press"
//	sets = 3
//
// or a list of them under [[template]].
func ParseTemplatesTOML(data []byte, now time.Time) ([]models.WorkoutTemplate, error) {
	var file models.TemplateFileTOML
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("Invalid TOML format: %w", err)
	}
	if len(file.Templates) == 0 {
		var single models.TemplateTOML
		if err := toml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("Invalid TOML format: %w", err)
		}
		file.Templates = []models.TemplateTOML{single}
	}

	var out []models.WorkoutTemplate
	for _, tt := range file.Templates {
		if strings.TrimSpace(tt.Name) == "" {
			return nil, fmt.Errorf("Template name not specified in TOML file")
		}
		t := models.WorkoutTemplate{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(tt.Name),
			CreatedAt: now.UnixMilli(),
		}
		for _, ex := range tt.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				continue
			}
			t.Exercises = append(t.Exercises, models.TemplateExercise{
				Name:        strings.TrimSpace(ex.Name),
				DefaultSets: max(ex.Sets, 1),
			})
		}
		out = append(out, t)
	}
	return out, nil
}

// ImportTemplatesTOML parses path and upserts every template in it. An
// existing template with the same name is updated in place.
func (s *Storage) ImportTemplatesTOML(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}
	templates, err := ParseTemplatesTOML(data, time.Now())
	if err != nil {
		return 0, err
	}
	for _, t := range templates {
		if existing, err := s.GetTemplate(ctx, t.Name); err == nil {
			t.ID, t.CreatedAt = existing.ID, existing.CreatedAt
		}
		if err := s.UpsertTemplate(ctx, t); err != nil {
			return 0, err
		}
	}
	return len(templates), nil
}

// ExportTemplatesTOML writes every template to outputPath in the format
// ParseTemplatesTOML reads.
func (s *Storage) ExportTemplatesTOML(ctx context.Context, outputPath string) (int, error) {
	templates, err := s.ListTemplates(ctx)
	if err != nil {
		return 0, err
	}

	var file models.TemplateFileTOML
	for _, t := range templates {
		tt := models.TemplateTOML{Name: t.Name}
		for _, ex := range t.Exercises {
			tt.Exercises = append(tt.Exercises, models.TemplateExerciseTOML{Name: ex.Name, Sets: ex.DefaultSets})
		}
		file.Templates = append(file.Templates, tt)
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(file); err != nil {
		return 0, fmt.Errorf("encoding TOML: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return len(templates), nil
}
