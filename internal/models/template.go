package models

type WorkoutTemplate struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	CreatedAt int64              `json:"createdAt"`
	Exercises []TemplateExercise `json:"exercises"`
}

type TemplateExercise struct {
	Name        string `json:"name"`
	DefaultSets int    `json:"defaultSets"`
}

//
// For TOML parsing only
//

type TemplateTOML struct {
	Name      string                 `toml:"name"`
	Exercises []TemplateExerciseTOML `toml:"exercise"`
}

type TemplateExerciseTOML struct {
	Name string `toml:"name"`
	Sets int    `toml:"sets"`
}

type TemplateFileTOML struct {
	Templates []TemplateTOML `toml:"template"`
}
