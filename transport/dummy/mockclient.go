package dummy

import (
	"io"
	"net"
	"sync"

	"github.com/grapenut/pennhttp/transport"
)

var _ transport.Client = new(Client)

// Client returns the pieces of data it was initialised with, one per read, and io.EOF
// afterwards, unless looped. It also tracks all the written data, making it thereby a
// universal mock suitable for most of the tests.
type Client struct {
	mu      sync.Mutex
	closed  bool
	loop    bool
	pointer int
	written []byte
	data    [][]byte
	remote  net.Addr
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data:   data,
		remote: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4201},
	}
}

func (c *Client) Read() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, io.EOF
	}

	if c.pointer >= len(c.data) {
		if !c.loop || len(c.data) == 0 {
			return nil, io.EOF
		}

		c.pointer = 0
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

// Write journals the data. Writing into a closed client fails, like a real one would.
func (c *Client) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	c.written = append(c.written, p...)
	return len(p), nil
}

func (c *Client) Remote() net.Addr {
	return c.remote
}

func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	return nil
}

// LoopReads makes reads start over once all the data was returned.
func (c *Client) LoopReads() *Client {
	c.loop = true
	return c
}

// Closed reports whether Close was called.
func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

// Written returns everything written so far.
func (c *Client) Written() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return string(c.written)
}

// Reset forgets everything written so far.
func (c *Client) Reset() {
	c.mu.Lock()
	c.written = c.written[:0]
	c.mu.Unlock()
}
