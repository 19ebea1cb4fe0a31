package timer

import "time"

// Handle is a pending one-shot callback.
type Handle interface {
	// Cancel prevents the callback from firing. It reports false if the callback has
	// already fired or was cancelled before.
	Cancel() bool
}

// Scheduler fires callbacks once after a delay. Callbacks run on their own goroutine.
type Scheduler interface {
	Once(delay time.Duration, cb func()) Handle
}

// Runtime is the Scheduler backed by runtime timers.
type Runtime struct{}

func (Runtime) Once(delay time.Duration, cb func()) Handle {
	return runtimeHandle{time.AfterFunc(delay, cb)}
}

type runtimeHandle struct {
	t *time.Timer
}

func (h runtimeHandle) Cancel() bool {
	return h.t.Stop()
}
