package transport

import (
	"net"
	"sync"
	"time"

	"github.com/grapenut/pennhttp/internal/timer"
)

// Client is a single accepted connection. Reads happen on the connection's own
// goroutine, while writes may come from anywhere, e.g. from a handler responding later.
type Client interface {
	Read() ([]byte, error)
	Write([]byte) (int, error)
	Remote() net.Addr
	Close() error
}

type client struct {
	mu      sync.Mutex
	conn    net.Conn
	buff    []byte
	timeout time.Duration
}

func NewClient(conn net.Conn, timeout time.Duration, buff []byte) Client {
	return &client{
		conn:    conn,
		buff:    buff,
		timeout: timeout,
	}
}

// Read reads data into the internal buffer and returns a piece of it back, which is valid
// until the next call. The idle timeout is renewed on every call.
func (c *client) Read() ([]byte, error) {
	if err := c.conn.SetReadDeadline(timer.Now().Add(c.timeout)); err != nil {
		return nil, err
	}

	n, err := c.conn.Read(c.buff)
	return c.buff[:n], err
}

// Write writes data into the underlying connection. Concurrent writes don't interleave.
func (c *client) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn.Write(b)
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection. A pending Read returns an error immediately.
func (c *client) Close() error {
	return c.conn.Close()
}
