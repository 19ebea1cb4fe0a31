package timer

import (
	"sync"
	"time"
)

// Manual is a Scheduler which never fires on its own. Pending callbacks are fired
// explicitly, so timeouts can be tested deterministically.
type Manual struct {
	mu      sync.Mutex
	pending []*ManualHandle
}

func NewManual() *Manual {
	return new(Manual)
}

type ManualHandle struct {
	m        *Manual
	cb       func()
	Delay    time.Duration
	canceled bool
	fired    bool
}

func (h *ManualHandle) Cancel() bool {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()

	if h.canceled || h.fired {
		return false
	}

	h.canceled = true
	h.m.remove(h)
	return true
}

func (m *Manual) Once(delay time.Duration, cb func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := &ManualHandle{m: m, cb: cb, Delay: delay}
	m.pending = append(m.pending, h)
	return h
}

// Pending returns callbacks which were neither fired nor cancelled yet, oldest first.
func (m *Manual) Pending() []*ManualHandle {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*ManualHandle(nil), m.pending...)
}

// Fire fires the oldest pending callback and returns its handle, or nil if there's
// nothing pending. The callback runs on the calling goroutine.
func (m *Manual) Fire() *ManualHandle {
	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return nil
	}

	h := m.pending[0]
	m.pending = m.pending[1:]
	h.fired = true
	m.mu.Unlock()

	// the callback may schedule again, so the lock must be released by now
	h.cb()
	return h
}

func (m *Manual) remove(h *ManualHandle) {
	for i, p := range m.pending {
		if p == h {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}
