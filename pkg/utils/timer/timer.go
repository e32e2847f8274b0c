// Package timer tracks total and per-stage elapsed time for multi-stage CLI operations.
package timer

import (
	"sync"
	"time"
)

// Timer measures the elapsed time of a command and of its current stage.
type Timer interface {
	// Start resets the timer and begins measuring.
	Start()
	// NewStage marks the beginning of a new stage.
	NewStage()
	// GetTiming returns the total elapsed time and the elapsed time of the current stage.
	GetTiming() (time.Duration, time.Duration)
	// Stop freezes the timer at its current values.
	Stop()
}

type stageTimer struct {
	mu         sync.Mutex
	start      time.Time
	stageStart time.Time
	stoppedAt  time.Time
	now        func() time.Time
}

// New returns a Timer backed by the wall clock.
func New() Timer {
	return &stageTimer{now: time.Now}
}

// NewWithClock returns a Timer that reads time from the given clock.
func NewWithClock(now func() time.Time) Timer {
	return &stageTimer{now: now}
}

func (t *stageTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.start = t.now()
	t.stageStart = t.start
	t.stoppedAt = time.Time{}
}

func (t *stageTimer) NewStage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.start.IsZero() {
		t.start = t.now()
	}

	t.stageStart = t.now()
}

func (t *stageTimer) GetTiming() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.start.IsZero() {
		return 0, 0
	}

	end := t.stoppedAt
	if end.IsZero() {
		end = t.now()
	}

	return end.Sub(t.start), end.Sub(t.stageStart)
}

func (t *stageTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stoppedAt.IsZero() {
		t.stoppedAt = t.now()
	}
}
