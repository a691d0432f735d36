package models

// RestTimerState is the persisted rest countdown. Remaining time is derived
// from StartTime and Duration, never stored.
type RestTimerState struct {
	Active     bool    `json:"active"`
	StartTime  int64   `json:"startTime"` // Unix ms, zero when idle.
	Duration   int     `json:"duration"`  // Seconds.
	ExerciseID *string `json:"exerciseId,omitempty"`
	SetNumber  *int    `json:"setNumber,omitempty"`
}
