package countdown

import (
	"errors"
	"log"
	"sync"
	"time"

	"sandglass/internal/core/model"
)

// ErrZeroDuration indicates Start was called with an empty selection.
var ErrZeroDuration = errors.New("countdown: selected duration is zero")

// ErrAlreadyArmed indicates Start was called while a run is active.
var ErrAlreadyArmed = errors.New("countdown: already armed")

// ErrSelectionLocked indicates the selection cannot change while armed.
var ErrSelectionLocked = errors.New("countdown: selection locked while armed")

// unsetRemaining marks the controller as idle with no run in flight.
const unsetRemaining = -1

// Store persists the last chosen selection between sessions.
type Store interface {
	Load() (model.Selection, error)
	Save(selection model.Selection) error
}

// Notifier fires the completion signal bundle. All methods are best effort.
type Notifier interface {
	Prepare()
	Announce()
	Silence()
}

// Config contains runtime options for the Controller.
type Config struct {
	TickInterval time.Duration
}

// Controller is the countdown state machine. One ticker goroutine exists per
// armed run; it is cancelled on Stop, Close, or by reaching zero.
type Controller struct {
	mu        sync.Mutex
	options   Config
	store     Store
	notifier  Notifier
	selection model.Selection
	reference int
	remaining int
	armed     bool
	events    []chan Event
	stopCh    chan struct{}
	closed    bool
}

// New creates a Controller, restoring the persisted selection when a store is
// provided. A store failure falls back to the default selection.
func New(store Store, notifier Notifier, options Config) *Controller {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}

	controller := &Controller{
		options:   options,
		store:     store,
		notifier:  notifier,
		selection: model.DefaultSelection(),
		remaining: unsetRemaining,
	}
	if store != nil {
		loaded, err := store.Load()
		if err != nil {
			log.Printf("countdown: load selection: %v", err)
		}
		controller.selection = loaded.Normalize()
	}
	return controller
}

// Subscribe registers a new observer channel.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	controller.events = append(controller.events, ch)
	controller.mu.Unlock()
	return ch
}

// Selection returns the current duration selection.
func (controller *Controller) Selection() model.Selection {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.selection
}

// SetSelection updates the duration selection and writes it through the
// store. Rejected while armed.
func (controller *Controller) SetSelection(minutes, seconds int) error {
	controller.mu.Lock()
	if controller.armed {
		controller.mu.Unlock()
		return ErrSelectionLocked
	}
	selection := model.Selection{Minutes: minutes, Seconds: seconds}.Normalize()
	controller.selection = selection
	store := controller.store
	controller.mu.Unlock()

	if store != nil {
		if err := store.Save(selection); err != nil {
			log.Printf("countdown: save selection: %v", err)
		}
	}
	return nil
}

// Start arms the controller and launches the ticking loop.
func (controller *Controller) Start() error {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return ErrAlreadyArmed
	}
	if controller.armed {
		controller.mu.Unlock()
		return ErrAlreadyArmed
	}
	total := controller.selection.TotalSeconds()
	if total <= 0 {
		controller.mu.Unlock()
		return ErrZeroDuration
	}

	controller.reference = total
	controller.remaining = total
	controller.armed = true
	controller.stopCh = make(chan struct{})
	stopCh := controller.stopCh
	notifier := controller.notifier
	controller.emitLocked(Event{
		Type:      EventStateChange,
		State:     StateArmed,
		Remaining: total,
		Progress:  100,
		At:        time.Now(),
	})
	controller.mu.Unlock()

	if notifier != nil {
		notifier.Prepare()
	}
	go controller.run(stopCh)
	return nil
}

// Stop disarms the controller and silences any playing alert. Idempotent.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	notifier := controller.notifier
	if !controller.armed {
		controller.remaining = unsetRemaining
		controller.mu.Unlock()
		if notifier != nil {
			notifier.Silence()
		}
		return
	}

	controller.armed = false
	controller.remaining = unsetRemaining
	close(controller.stopCh)
	controller.stopCh = nil
	controller.emitLocked(Event{
		Type:     EventStateChange,
		State:    StateIdle,
		Progress: 100,
		At:       time.Now(),
	})
	controller.mu.Unlock()

	if notifier != nil {
		notifier.Silence()
	}
}

// Close cancels any active run and closes observer channels.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.closed = true
	if controller.armed {
		controller.armed = false
		controller.remaining = unsetRemaining
		close(controller.stopCh)
		controller.stopCh = nil
	}
	events := controller.events
	controller.events = nil
	notifier := controller.notifier
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	if notifier != nil {
		notifier.Silence()
	}
}

// Armed reports whether a run is active.
func (controller *Controller) Armed() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.armed
}

// Remaining returns the remaining whole seconds and whether they are set.
func (controller *Controller) Remaining() (int, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.remaining == unsetRemaining {
		return 0, false
	}
	return controller.remaining, true
}

// Progress returns the remaining fraction of the reference duration as a
// 0-100 value. Idle reads as 100.
func (controller *Controller) Progress() float64 {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.progressLocked()
}

func (controller *Controller) run(stopCh chan struct{}) {
	ticker := time.NewTicker(controller.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			if controller.tick(tickTime) {
				return
			}
		}
	}
}

// tick advances the countdown by one second. It reports true when the run is
// over and the tick source must stop.
func (controller *Controller) tick(tickTime time.Time) bool {
	controller.mu.Lock()
	if !controller.armed {
		controller.mu.Unlock()
		return true
	}

	controller.remaining--
	if controller.remaining > 0 {
		controller.emitLocked(Event{
			Type:      EventProgress,
			State:     StateArmed,
			Remaining: controller.remaining,
			Progress:  controller.progressLocked(),
			At:        tickTime,
		})
		controller.mu.Unlock()
		return false
	}

	controller.armed = false
	controller.remaining = unsetRemaining
	controller.stopCh = nil
	notifier := controller.notifier
	controller.emitLocked(Event{
		Type:      EventCompleted,
		State:     StateIdle,
		Remaining: 0,
		Progress:  0,
		At:        tickTime,
	})
	controller.mu.Unlock()

	if notifier != nil {
		notifier.Announce()
	}
	return true
}

func (controller *Controller) progressLocked() float64 {
	if !controller.armed || controller.remaining == unsetRemaining || controller.reference <= 0 {
		return 100
	}
	progress := float64(controller.remaining) / float64(controller.reference) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

func (controller *Controller) emitLocked(event Event) {
	events := append([]chan Event(nil), controller.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
