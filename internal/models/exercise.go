package models

type Exercise struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

type Set struct {
	ID            string  `json:"id"`
	SetNumber     int     `json:"setNumber"` // 1-based, contiguous within the exercise.
	CurrentReps   float64 `json:"currentReps"`
	CurrentWeight float64 `json:"currentWeight"`
	Completed     bool    `json:"completed"`
	CompletedAt   *int64  `json:"completedAt,omitempty"`

	// Values from the last completed workout at the same set position. Display only.
	PreviousReps   *float64 `json:"previousReps,omitempty"`
	PreviousWeight *float64 `json:"previousWeight,omitempty"`
}

// Clone returns a deep copy of the exercise.
func (e Exercise) Clone() Exercise {
	out := e
	out.Sets = make([]Set, len(e.Sets))
	for i, s := range e.Sets {
		out.Sets[i] = s.clone()
	}
	return out
}

func (s Set) clone() Set {
	out := s
	if s.CompletedAt != nil {
		v := *s.CompletedAt
		out.CompletedAt = &v
	}
	if s.PreviousReps != nil {
		v := *s.PreviousReps
		out.PreviousReps = &v
	}
	if s.PreviousWeight != nil {
		v := *s.PreviousWeight
		out.PreviousWeight = &v
	}
	return out
}
