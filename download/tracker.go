package download

import (
	"sync"
	"time"

	"github.com/truemediaorg/postgrab/model"
)

// DefaultDisplayWindow is how long a finished batch status stays visible
// before the tracker falls back to idle.
const DefaultDisplayWindow = 3 * time.Second

// Tracker holds the process-wide batch status:
// idle -> running -> succeeded|failed -> idle (after the display window).
type Tracker struct {
	mu            sync.Mutex
	status        model.BatchStatus
	displayWindow time.Duration
	// bumped by every Begin so a stale reset timer cannot clobber a newer run
	generation uint64
	resetTimer *time.Timer
}

func NewTracker(displayWindow time.Duration) *Tracker {
	return &Tracker{
		status:        model.BatchStatusIdle,
		displayWindow: displayWindow,
	}
}

func (t *Tracker) Status() model.BatchStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Begin moves the tracker to running. It returns false, changing nothing,
// when a batch is already running.
func (t *Tracker) Begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == model.BatchStatusRunning {
		return false
	}
	if t.resetTimer != nil {
		t.resetTimer.Stop()
		t.resetTimer = nil
	}
	t.generation++
	t.status = model.BatchStatusRunning
	return true
}

// Finish records the result of the running batch. Terminal statuses are
// shown for the display window and then reset to idle; anything else resets
// immediately.
func (t *Tracker) Finish(status model.BatchStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !status.IsTerminal() {
		t.status = model.BatchStatusIdle
		return
	}
	t.status = status
	generation := t.generation
	t.resetTimer = time.AfterFunc(t.displayWindow, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.generation == generation && t.status.IsTerminal() {
			t.status = model.BatchStatusIdle
			t.resetTimer = nil
		}
	})
}
