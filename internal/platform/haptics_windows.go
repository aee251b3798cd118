package platform

import "time"

type vibrator struct{}

func newVibrator() Vibrator {
	return &vibrator{}
}

func (provider *vibrator) Vibrate(time.Duration) error {
	return ErrHapticsUnsupported
}
