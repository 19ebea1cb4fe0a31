package transport

import (
	"errors"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/grapenut/pennhttp/internal/timer"
	"github.com/grapenut/pennhttp/settings"
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// TCP accepts connections and runs each one on its own goroutine.
type TCP struct {
	l    listener
	wg   *sync.WaitGroup
	stop *atomic.Bool
}

func NewTCP() *TCP {
	return &TCP{
		wg:   new(sync.WaitGroup),
		stop: new(atomic.Bool),
	}
}

func (t *TCP) Bind(addr string) error {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return err
	}

	t.l, err = net.ListenTCP("tcp", tcpaddr)
	return err
}

// Addr returns the bound address. Useful when bound to port 0.
func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

// Listen accepts connections until stopped. The accept loop is interrupted every
// AcceptLoopInterruptPeriod in order to notice the stop. Every connection is wrapped
// into a Client and closed as soon as the callback returns.
func (t *TCP) Listen(cfg settings.NET, cb func(client Client)) error {
	for !t.stop.Load() {
		err := t.l.SetDeadline(timer.Now().Add(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			return err
		}

		conn, err := t.l.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}

			return err
		}

		t.wg.Add(1)
		go func(conn net.Conn) {
			defer t.wg.Done()

			cb(NewClient(conn, cfg.ReadTimeout, make([]byte, cfg.ReadBuffer.Default)))
			_ = conn.Close()
		}(conn)
	}

	return nil
}

// Stop makes the accept loop quit at the next interruption.
func (t *TCP) Stop() {
	t.stop.Store(true)
}

func (t *TCP) Close() {
	_ = t.l.Close()
}

// Wait blocks until every accepted connection is done.
func (t *TCP) Wait() {
	t.wg.Wait()
}
