package countdown

import "time"

// State represents the current controller mode.
type State string

const (
	StateIdle  State = "idle"
	StateArmed State = "armed"
)

// EventType defines the type of controller event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCompleted   EventType = "completed"
)

// Event represents a controller update for observers.
type Event struct {
	Type      EventType
	State     State
	Remaining int
	Progress  float64
	At        time.Time
}
