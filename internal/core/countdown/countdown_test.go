package countdown

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandglass/internal/core/model"
)

// stubStore records saves and serves a configurable load result.
type stubStore struct {
	mu        sync.Mutex
	selection model.Selection
	loadErr   error
	saved     []model.Selection
	saveErr   error
}

func (store *stubStore) Load() (model.Selection, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.loadErr != nil {
		return model.DefaultSelection(), store.loadErr
	}
	return store.selection, nil
}

func (store *stubStore) Save(selection model.Selection) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.saved = append(store.saved, selection)
	return store.saveErr
}

func (store *stubStore) savedSelections() []model.Selection {
	store.mu.Lock()
	defer store.mu.Unlock()
	result := make([]model.Selection, len(store.saved))
	copy(result, store.saved)
	return result
}

// stubNotifier counts capability calls.
type stubNotifier struct {
	mu        sync.Mutex
	prepares  int
	announces int
	silences  int
}

func (notifier *stubNotifier) Prepare() {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.prepares++
}

func (notifier *stubNotifier) Announce() {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.announces++
}

func (notifier *stubNotifier) Silence() {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.silences++
}

func (notifier *stubNotifier) counts() (int, int, int) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.prepares, notifier.announces, notifier.silences
}

// slowTick keeps the real ticker from firing during tick-driven tests.
var slowTick = Config{TickInterval: time.Hour}

func TestStartArmsController(t *testing.T) {
	notifier := &stubNotifier{}
	controller := New(nil, notifier, slowTick)
	require.NoError(t, controller.SetSelection(0, 5))

	require.NoError(t, controller.Start())

	assert.True(t, controller.Armed())
	remaining, set := controller.Remaining()
	assert.True(t, set)
	assert.Equal(t, 5, remaining)
	assert.Equal(t, float64(100), controller.Progress())

	prepares, announces, _ := notifier.counts()
	assert.Equal(t, 1, prepares)
	assert.Equal(t, 0, announces)

	controller.Close()
}

func TestStartRejectsZeroSelection(t *testing.T) {
	controller := New(nil, nil, slowTick)
	require.NoError(t, controller.SetSelection(0, 0))

	err := controller.Start()

	assert.ErrorIs(t, err, ErrZeroDuration)
	assert.False(t, controller.Armed())
	_, set := controller.Remaining()
	assert.False(t, set)
	controller.Close()
}

func TestStartRejectsWhileArmed(t *testing.T) {
	controller := New(nil, nil, slowTick)
	require.NoError(t, controller.SetSelection(1, 0))
	require.NoError(t, controller.Start())

	err := controller.Start()

	assert.ErrorIs(t, err, ErrAlreadyArmed)
	remaining, _ := controller.Remaining()
	assert.Equal(t, 60, remaining)
	controller.Close()
}

func TestTickCountsDownToCompletion(t *testing.T) {
	notifier := &stubNotifier{}
	controller := New(nil, notifier, slowTick)
	require.NoError(t, controller.SetSelection(0, 5))
	require.NoError(t, controller.Start())
	events := controller.Subscribe(16)

	for tick := 1; tick <= 4; tick++ {
		done := controller.tick(time.Now())
		assert.False(t, done, "tick %d should not end the run", tick)
		remaining, set := controller.Remaining()
		require.True(t, set)
		assert.Equal(t, 5-tick, remaining)
	}

	done := controller.tick(time.Now())
	assert.True(t, done)

	assert.False(t, controller.Armed())
	_, set := controller.Remaining()
	assert.False(t, set)
	assert.Equal(t, float64(100), controller.Progress())

	_, announces, _ := notifier.counts()
	assert.Equal(t, 1, announces, "exactly one completion")

	var completed []Event
	for len(events) > 0 {
		event := <-events
		if event.Type == EventCompleted {
			completed = append(completed, event)
		}
	}
	require.Len(t, completed, 1)
	assert.Equal(t, 0, completed[0].Remaining)
	assert.Equal(t, float64(0), completed[0].Progress)
	assert.Equal(t, StateIdle, completed[0].State)
	controller.Close()
}

func TestTickAfterCompletionIsNoop(t *testing.T) {
	notifier := &stubNotifier{}
	controller := New(nil, notifier, slowTick)
	require.NoError(t, controller.SetSelection(0, 1))
	require.NoError(t, controller.Start())

	assert.True(t, controller.tick(time.Now()))
	assert.True(t, controller.tick(time.Now()))

	_, announces, _ := notifier.counts()
	assert.Equal(t, 1, announces)
	controller.Close()
}

func TestProgressMonotonicWithinRun(t *testing.T) {
	controller := New(nil, nil, slowTick)
	require.NoError(t, controller.SetSelection(0, 10))
	require.NoError(t, controller.Start())

	previous := controller.Progress()
	for tick := 0; tick < 9; tick++ {
		controller.tick(time.Now())
		current := controller.Progress()
		assert.LessOrEqual(t, current, previous)
		assert.GreaterOrEqual(t, current, float64(0))
		previous = current
	}
	controller.Close()
}

func TestStopDisarmsAndClearsRemaining(t *testing.T) {
	notifier := &stubNotifier{}
	controller := New(nil, notifier, slowTick)
	require.NoError(t, controller.SetSelection(1, 0))
	require.NoError(t, controller.Start())

	for tick := 0; tick < 3; tick++ {
		controller.tick(time.Now())
	}
	controller.Stop()

	assert.False(t, controller.Armed())
	_, set := controller.Remaining()
	assert.False(t, set)
	assert.Equal(t, float64(100), controller.Progress())

	_, announces, silences := notifier.counts()
	assert.Equal(t, 0, announces, "no completion after stop")
	assert.Equal(t, 1, silences)
	controller.Close()
}

func TestStopIsIdempotent(t *testing.T) {
	controller := New(nil, &stubNotifier{}, slowTick)
	require.NoError(t, controller.SetSelection(0, 3))

	controller.Stop()
	require.NoError(t, controller.Start())
	controller.Stop()
	controller.Stop()

	assert.False(t, controller.Armed())
	controller.Close()
}

func TestSetSelectionPersistsImmediately(t *testing.T) {
	store := &stubStore{selection: model.DefaultSelection()}
	controller := New(store, nil, slowTick)

	require.NoError(t, controller.SetSelection(7, 30))

	assert.Equal(t, model.Selection{Minutes: 7, Seconds: 30}, controller.Selection())
	saved := store.savedSelections()
	require.Len(t, saved, 1)
	assert.Equal(t, model.Selection{Minutes: 7, Seconds: 30}, saved[0])
	controller.Close()
}

func TestSetSelectionRejectedWhileArmed(t *testing.T) {
	store := &stubStore{selection: model.Selection{Minutes: 0, Seconds: 30}}
	controller := New(store, nil, slowTick)
	require.NoError(t, controller.Start())

	err := controller.SetSelection(2, 0)

	assert.ErrorIs(t, err, ErrSelectionLocked)
	assert.Equal(t, model.Selection{Minutes: 0, Seconds: 30}, controller.Selection())
	assert.Empty(t, store.savedSelections())
	controller.Close()
}

func TestSetSelectionClampsOutOfRange(t *testing.T) {
	controller := New(nil, nil, slowTick)

	require.NoError(t, controller.SetSelection(99, 99))

	assert.Equal(t, model.Selection{Minutes: 10, Seconds: 59}, controller.Selection())
	controller.Close()
}

func TestNewFallsBackOnStoreFailure(t *testing.T) {
	store := &stubStore{loadErr: errors.New("disk on fire")}
	controller := New(store, nil, slowTick)

	assert.Equal(t, model.DefaultSelection(), controller.Selection())
	controller.Close()
}

func TestSaveFailureDoesNotBlockSelection(t *testing.T) {
	store := &stubStore{selection: model.DefaultSelection(), saveErr: errors.New("read-only fs")}
	controller := New(store, nil, slowTick)

	require.NoError(t, controller.SetSelection(3, 15))

	assert.Equal(t, model.Selection{Minutes: 3, Seconds: 15}, controller.Selection())
	controller.Close()
}

func TestRunLoopCompletesEndToEnd(t *testing.T) {
	notifier := &stubNotifier{}
	controller := New(nil, notifier, Config{TickInterval: 10 * time.Millisecond})
	require.NoError(t, controller.SetSelection(0, 3))
	events := controller.Subscribe(16)

	require.NoError(t, controller.Start())

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Type != EventCompleted {
				continue
			}
			assert.False(t, controller.Armed())
			_, set := controller.Remaining()
			assert.False(t, set)
			_, announces, _ := notifier.counts()
			assert.Equal(t, 1, announces)
			controller.Close()
			return
		case <-deadline:
			t.Fatal("countdown did not complete")
		}
	}
}

func TestCloseStopsRunAndClosesSubscribers(t *testing.T) {
	controller := New(nil, &stubNotifier{}, slowTick)
	events := controller.Subscribe(4)
	require.NoError(t, controller.SetSelection(0, 5))
	require.NoError(t, controller.Start())

	controller.Close()

	assert.False(t, controller.Armed())
	for {
		if _, open := <-events; !open {
			return
		}
	}
}
