package signal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sandglass/internal/platform"
)

// stubChannel records announcements and optionally fails.
type stubChannel struct {
	name      string
	err       error
	announced int
	silenced  int
	prepared  int
}

func (channel *stubChannel) Name() string { return channel.name }

func (channel *stubChannel) Announce() error {
	channel.announced++
	return channel.err
}

// silentChannel additionally implements Silencer and Preparer.
type silentChannel struct {
	stubChannel
}

func (channel *silentChannel) Silence() { channel.silenced++ }

func (channel *silentChannel) Prepare() error {
	channel.prepared++
	return channel.err
}

// stubVibrator records pulses.
type stubVibrator struct {
	pulses []time.Duration
	err    error
}

func (vibrator *stubVibrator) Vibrate(duration time.Duration) error {
	vibrator.pulses = append(vibrator.pulses, duration)
	return vibrator.err
}

func TestBroadcasterAnnouncesAllChannels(t *testing.T) {
	first := &stubChannel{name: "first"}
	second := &stubChannel{name: "second"}
	broadcaster := NewBroadcaster(first, second)

	broadcaster.Announce()

	assert.Equal(t, 1, first.announced)
	assert.Equal(t, 1, second.announced)
}

func TestBroadcasterToleratesFailingChannel(t *testing.T) {
	failing := &stubChannel{name: "failing", err: errors.New("no sound card")}
	healthy := &stubChannel{name: "healthy"}
	broadcaster := NewBroadcaster(failing, healthy)

	broadcaster.Announce()

	assert.Equal(t, 1, failing.announced)
	assert.Equal(t, 1, healthy.announced, "failure of one channel must not block the others")
}

func TestBroadcasterSilencesOnlySilencers(t *testing.T) {
	plain := &stubChannel{name: "plain"}
	silencer := &silentChannel{stubChannel: stubChannel{name: "silencer"}}
	broadcaster := NewBroadcaster(plain, silencer)

	broadcaster.Silence()

	assert.Equal(t, 1, silencer.silenced)
}

func TestBroadcasterPreparesOnlyPreparers(t *testing.T) {
	plain := &stubChannel{name: "plain"}
	preparer := &silentChannel{stubChannel: stubChannel{name: "preparer"}}
	broadcaster := NewBroadcaster(plain, preparer)

	broadcaster.Prepare()

	assert.Equal(t, 1, preparer.prepared)
}

func TestHapticPulsesOnMobileDevices(t *testing.T) {
	vibrator := &stubVibrator{}
	haptic := NewHaptic(vibrator, func() bool { return true })

	assert.NoError(t, haptic.Announce())

	assert.Equal(t, []time.Duration{hapticPulse}, vibrator.pulses)
}

func TestHapticSkipsDesktopDevices(t *testing.T) {
	vibrator := &stubVibrator{}
	haptic := NewHaptic(vibrator, func() bool { return false })

	assert.NoError(t, haptic.Announce())

	assert.Empty(t, vibrator.pulses)
}

func TestHapticToleratesUnsupportedPlatform(t *testing.T) {
	vibrator := &stubVibrator{err: platform.ErrHapticsUnsupported}
	haptic := NewHaptic(vibrator, func() bool { return true })

	assert.NoError(t, haptic.Announce())
}

func TestHapticReportsRealFailures(t *testing.T) {
	vibrator := &stubVibrator{err: errors.New("motor stuck")}
	haptic := NewHaptic(vibrator, func() bool { return true })

	assert.Error(t, haptic.Announce())
}

func TestHapticWithoutVibratorIsQuiet(t *testing.T) {
	haptic := NewHaptic(nil, func() bool { return true })

	assert.NoError(t, haptic.Announce())
}

func TestNotificationWithoutPosterFails(t *testing.T) {
	notification := NewNotification(nil, "Sandglass", "Time is up!")

	assert.Error(t, notification.Announce())
}

func TestAudioRejectsGarbageData(t *testing.T) {
	audio := NewAudio([]byte("definitely not a wav"))

	assert.Error(t, audio.Announce())
	// The decode failure is cached; a later attempt fails the same way.
	assert.Error(t, audio.Announce())
}

func TestAudioRejectsEmptyData(t *testing.T) {
	audio := NewAudio(nil)

	assert.Error(t, audio.Prepare())
}
