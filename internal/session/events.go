package session

import "github.com/misterclayt0n/ironlog/internal/models"

type State int

const (
	NoSession State = iota
	Active
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	default:
		return "no-session"
	}
}

type EventKind int

const (
	// EventStateChanged fires on every NoSession <-> Active transition.
	EventStateChanged EventKind = iota
	// EventExpired fires when a stored session was discarded on load for
	// being older than the expiry threshold.
	EventExpired
	// EventSetCompleted fires when a set goes from not completed to completed.
	EventSetCompleted
)

type Event struct {
	Kind  EventKind
	State State
	// Workout is a copy of the affected workout, if any.
	Workout    *models.Workout
	ExerciseID string
	SetNumber  int
}
