// Package schedule runs a function once at a wall-clock time. A Task holds
// at most one armed run; arming again replaces it.
package schedule

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"
)

// State is the lifecycle of a Task.
type State int

const (
	Idle State = iota
	Armed
	Fired
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Fired:
		return "fired"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Task is a cancellable single-shot delayed call.
type Task struct {
	mu    sync.Mutex
	state State
	at    time.Time
	timer *time.Timer
	gen   uint64
	done  chan struct{}

	now func() time.Time
}

// New returns an idle Task.
func New() *Task {
	return &Task{now: time.Now, done: make(chan struct{})}
}

// Arm schedules fn to run once at at. A pending arm is cancelled first. A
// time in the past fires immediately.
func (t *Task) Arm(at time.Time, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()

	t.gen++
	gen := t.gen
	done := make(chan struct{})
	t.done = done
	t.at = at
	t.state = Armed

	t.timer = time.AfterFunc(at.Sub(t.now()), func() {
		t.mu.Lock()
		if t.gen != gen || t.state != Armed {
			t.mu.Unlock()
			return
		}
		t.state = Fired
		t.timer = nil
		t.mu.Unlock()

		defer close(done)
		fn()
	})
}

// Cancel disarms a pending run. It reports whether a run was pending.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopLocked()
}

// stopLocked cancels the armed timer, if any. Callers hold t.mu.
func (t *Task) stopLocked() bool {
	if t.state != Armed {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.state = Cancelled
	close(t.done)
	return true
}

// State returns the current state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// At returns the time of the last arm.
func (t *Task) At() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.at
}

// Done returns a channel closed when the current arm is cancelled or its
// function has returned.
func (t *Task) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// NextOccurrence returns the next time-of-day hour:minute:second in now's
// location: today if it is still ahead, otherwise tomorrow.
func NextOccurrence(now time.Time, hour, minute, second int) (time.Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return time.Time{}, eris.Errorf("schedule: invalid time %02d:%02d:%02d", hour, minute, second)
	}
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, second, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target, nil
}

// ParseClock parses "HH:MM" or "HH:MM:SS".
func ParseClock(s string) (hour, minute, second int, err error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, perr := time.Parse(layout, s); perr == nil {
			return t.Hour(), t.Minute(), t.Second(), nil
		}
	}
	return 0, 0, 0, eris.Errorf("schedule: invalid clock time %q (want HH:MM[:SS])", s)
}
