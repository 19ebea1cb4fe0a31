package timer

import (
	"sync/atomic"
	"time"
)

// clock contains the unix-time in milliseconds, refreshed every Resolution.
var clock = new(atomic.Int64)

// Resolution is how often the clock is refreshed. It's precise enough for I/O deadlines,
// which is the only thing it's meant for.
const Resolution = 500 * time.Millisecond

// Now returns the coarse current time without a syscall.
func Now() time.Time {
	return time.UnixMilli(clock.Load())
}

func init() {
	// the goroutine may start late, and deadlines must never be set against zero time
	clock.Store(time.Now().UnixMilli())

	go func() {
		for {
			time.Sleep(Resolution)
			clock.Store(time.Now().UnixMilli())
		}
	}()
}
