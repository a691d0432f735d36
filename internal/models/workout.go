package models

import "time"

// Workout is one training session. Timestamps are Unix milliseconds so the
// persisted JSON matches what other clients of the same store expect.
type Workout struct {
	ID          string     `json:"id"`
	StartTime   int64      `json:"startTime"`
	CompletedAt *int64     `json:"completedAt,omitempty"`
	TemplateID  *string    `json:"templateId,omitempty"`
	Exercises   []Exercise `json:"exercises"`
}

// Started returns StartTime as a time.Time.
func (w *Workout) Started() time.Time {
	return time.UnixMilli(w.StartTime)
}

// Finished returns CompletedAt as a time.Time, or the zero time for an open workout.
func (w *Workout) Finished() time.Time {
	if w.CompletedAt == nil {
		return time.Time{}
	}
	return time.UnixMilli(*w.CompletedAt)
}

// Clone returns a deep copy so callers can't mutate controller state.
func (w *Workout) Clone() *Workout {
	if w == nil {
		return nil
	}
	out := *w
	if w.CompletedAt != nil {
		v := *w.CompletedAt
		out.CompletedAt = &v
	}
	if w.TemplateID != nil {
		v := *w.TemplateID
		out.TemplateID = &v
	}
	out.Exercises = make([]Exercise, len(w.Exercises))
	for i, ex := range w.Exercises {
		out.Exercises[i] = ex.Clone()
	}
	return &out
}

// Millis converts t to the Unix millisecond representation used by the models.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
