package signal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// alertVolume attenuates the alert below full scale (base-2 exponent).
const alertVolume = -1.0

// Audio plays the embedded alert sound. The speaker and decoded buffer are
// initialised lazily on the first Prepare or Announce and reused across runs.
type Audio struct {
	mu          sync.Mutex
	data        []byte
	buffer      *beep.Buffer
	initialized bool
	initErr     error
}

// NewAudio creates an audio channel from raw wav bytes.
func NewAudio(data []byte) *Audio {
	return &Audio{data: data}
}

// Name identifies the channel in logs.
func (audio *Audio) Name() string {
	return "audio"
}

// Prepare decodes the sound and opens the speaker ahead of the first alert.
func (audio *Audio) Prepare() error {
	return audio.ensureSpeaker()
}

// Announce plays the alert once at a fixed moderate volume.
func (audio *Audio) Announce() error {
	if err := audio.ensureSpeaker(); err != nil {
		return err
	}

	audio.mu.Lock()
	buffer := audio.buffer
	audio.mu.Unlock()

	shot := buffer.Streamer(0, buffer.Len())
	speaker.Play(&effects.Volume{
		Streamer: shot,
		Base:     2,
		Volume:   alertVolume,
	})
	return nil
}

// Silence stops any in-flight playback.
func (audio *Audio) Silence() {
	audio.mu.Lock()
	ready := audio.initialized && audio.initErr == nil
	audio.mu.Unlock()
	if ready {
		speaker.Clear()
	}
}

func (audio *Audio) ensureSpeaker() error {
	audio.mu.Lock()
	defer audio.mu.Unlock()

	if audio.initialized {
		return audio.initErr
	}
	audio.initialized = true

	if len(audio.data) == 0 {
		audio.initErr = errors.New("no alert sound data")
		return audio.initErr
	}

	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(audio.data)))
	if err != nil {
		audio.initErr = fmt.Errorf("decode alert sound: %w", err)
		return audio.initErr
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		_ = streamer.Close()
		audio.initErr = fmt.Errorf("open speaker: %w", err)
		return audio.initErr
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	_ = streamer.Close()
	audio.buffer = buffer
	return nil
}
