package signal

import (
	"errors"
	"time"

	"sandglass/internal/platform"
)

// hapticPulse is the length of the completion vibration.
const hapticPulse = 300 * time.Millisecond

// Haptic vibrates on completion. The pulse is attempted only on mobile-class
// devices; everywhere else the channel is a quiet no-op.
type Haptic struct {
	vibrator platform.Vibrator
	mobile   func() bool
}

// NewHaptic creates a haptic channel. mobile reports the device class at the
// moment of the announcement.
func NewHaptic(vibrator platform.Vibrator, mobile func() bool) *Haptic {
	return &Haptic{vibrator: vibrator, mobile: mobile}
}

// Name identifies the channel in logs.
func (haptic *Haptic) Name() string {
	return "haptic"
}

// Announce triggers the vibration pulse when the device class allows it.
func (haptic *Haptic) Announce() error {
	if haptic.mobile != nil && !haptic.mobile() {
		return nil
	}
	if haptic.vibrator == nil {
		return nil
	}
	if err := haptic.vibrator.Vibrate(hapticPulse); err != nil {
		if errors.Is(err, platform.ErrHapticsUnsupported) {
			return nil
		}
		return err
	}
	return nil
}
