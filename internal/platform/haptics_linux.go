package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// timedOutputPath is the Android-style vibrator node exposed by most Linux
// phone kernels; writing a millisecond count pulses the motor.
const timedOutputPath = "/sys/class/timed_output/vibrator/enable"

type vibrator struct {
	enablePath string
	fbcliPath  string
}

type unsupportedVibrator struct{}

func newVibrator() Vibrator {
	if _, err := os.Stat(timedOutputPath); err == nil {
		return &vibrator{enablePath: timedOutputPath}
	}
	// feedbackd ships on phone-oriented distributions (e.g. Phosh).
	if path, err := exec.LookPath("fbcli"); err == nil {
		return &vibrator{fbcliPath: path}
	}
	return unsupportedVibrator{}
}

func (provider *vibrator) Vibrate(duration time.Duration) error {
	if provider.enablePath != "" {
		millis := strconv.FormatInt(duration.Milliseconds(), 10)
		if err := os.WriteFile(provider.enablePath, []byte(millis), 0o200); err != nil {
			return fmt.Errorf("write vibrator node: %w", err)
		}
		return nil
	}

	if err := exec.Command(provider.fbcliPath, "-E", "button-pressed").Run(); err != nil {
		return fmt.Errorf("fbcli: %w", err)
	}
	return nil
}

func (unsupportedVibrator) Vibrate(time.Duration) error {
	return ErrHapticsUnsupported
}
