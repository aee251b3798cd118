package platform

import (
	"errors"
	"time"
)

// ErrHapticsUnsupported indicates no vibration device is available on this
// system.
var ErrHapticsUnsupported = errors.New("haptics unsupported")

// Vibrator triggers a short haptic pulse.
type Vibrator interface {
	Vibrate(duration time.Duration) error
}

// NewVibrator returns a platform-specific vibrator.
func NewVibrator() Vibrator {
	return newVibrator()
}
