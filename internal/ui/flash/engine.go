// Package flash drives the pulsing highlight of the completion alert.
package flash

import (
	"context"
	"sync"
	"time"
)

// Config contains pulse timing values.
type Config struct {
	OnDuration  time.Duration
	OffDuration time.Duration
}

// DefaultConfig returns the standard alert pulse.
func DefaultConfig() Config {
	return Config{
		OnDuration:  450 * time.Millisecond,
		OffDuration: 350 * time.Millisecond,
	}
}

// Engine toggles a highlight callback on a steady beat. At most one pulse
// loop runs at a time; starting a new one cancels the previous.
type Engine struct {
	mu     sync.Mutex
	config Config
	update func(on bool)
	cancel context.CancelFunc
}

// New creates a pulse engine. update is called from the engine goroutine.
func New(config Config, update func(on bool)) *Engine {
	if config.OnDuration <= 0 {
		config.OnDuration = DefaultConfig().OnDuration
	}
	if config.OffDuration <= 0 {
		config.OffDuration = DefaultConfig().OffDuration
	}
	return &Engine{config: config, update: update}
}

// Start begins pulsing until the context is cancelled or Stop is called.
func (engine *Engine) Start(ctx context.Context) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.mu.Unlock()

	go engine.run(runCtx)
}

// Stop terminates any active pulse loop.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) run(ctx context.Context) {
	for {
		engine.update(true)
		if !sleepWithContext(ctx, engine.config.OnDuration) {
			engine.update(false)
			return
		}
		engine.update(false)
		if !sleepWithContext(ctx, engine.config.OffDuration) {
			return
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
