package model

import "fmt"

// Selection bounds for the duration picker.
const (
	MaxMinutes = 10
	MaxSeconds = 59
)

// Selection is a user-chosen countdown duration.
type Selection struct {
	Minutes int
	Seconds int
}

// DefaultSelection returns the fallback duration of one minute.
func DefaultSelection() Selection {
	return Selection{Minutes: 1, Seconds: 0}
}

// TotalSeconds converts the selection to whole seconds.
func (selection Selection) TotalSeconds() int {
	return selection.Minutes*60 + selection.Seconds
}

// Valid reports whether both parts are inside the picker bounds.
func (selection Selection) Valid() bool {
	return selection.Minutes >= 0 && selection.Minutes <= MaxMinutes &&
		selection.Seconds >= 0 && selection.Seconds <= MaxSeconds
}

// Normalize clamps both parts into the picker bounds.
func (selection Selection) Normalize() Selection {
	if selection.Minutes < 0 {
		selection.Minutes = 0
	}
	if selection.Minutes > MaxMinutes {
		selection.Minutes = MaxMinutes
	}
	if selection.Seconds < 0 {
		selection.Seconds = 0
	}
	if selection.Seconds > MaxSeconds {
		selection.Seconds = MaxSeconds
	}
	return selection
}

// FormatSeconds renders a whole-seconds value as mm:ss.
func FormatSeconds(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
