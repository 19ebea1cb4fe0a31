package http

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/grapenut/pennhttp/http"
	"github.com/grapenut/pennhttp/http/method"
	"github.com/grapenut/pennhttp/http/status"
	"github.com/grapenut/pennhttp/internal/lines"
	"github.com/grapenut/pennhttp/internal/timer"
	"github.com/grapenut/pennhttp/internal/transport/http1"
)

// messages sent to the client within status documents
const (
	msgAllocation = "Unable to allocate http request."
	msgBadRequest = "Invalid request method."
	msgNotFound   = "File not found."
	msgTimeout    = "Unable to complete request."
)

// Transport is everything a connection needs from the socket beneath it.
type Transport interface {
	Write([]byte) (int, error)
	Close() error
	Remote() net.Addr
}

// Conn is a connection which turned out to carry an HTTP request. It owns the request,
// its response and the timer bounding the whole thing. All the events, be it incoming
// data, a timer firing or a handler responding, are serialized.
type Conn struct {
	mu         sync.Mutex
	id         uint64
	srv        *Server
	client     Transport
	lines      lines.Splitter
	parser     *http1.Parser
	serializer *http1.Serializer
	req        *http.Request
	timer      timer.Handle
	// gen is bumped on every re-arm, so a timer which fired right before being
	// cancelled does nothing.
	gen    uint64
	closed bool
}

// ID returns the connection id, which handlers use to respond.
func (c *Conn) ID() uint64 {
	return c.id
}

// Start processes the request line. It reports false if the connection is done already,
// which happens when there's nothing to serve or the line is malformed.
func (c *Conn) Start(line []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	if !c.srv.router.HasAnyHandler() {
		c.send(c.serializer.DefaultPage())
		c.close()
		return false
	}

	if !c.srv.registry.admit(c) {
		c.srv.logger.Printf("http: connection %d: %v", c.id, status.ErrAllocation)
		c.fail("", status.ErrAllocation, msgAllocation)
		c.close()
		return false
	}

	request, err := c.parser.TryStart(line)
	if err != nil {
		c.fail("", err, msgBadRequest)
		c.close()
		return false
	}

	request.ID = c.id
	request.Remote = remoteIP(c.client.Remote())
	c.req = request
	c.arm(c.srv.settings.Timeout.Normal)

	return true
}

// OnData consumes a chunk of the request. Lines may be split across chunks arbitrarily.
func (c *Conn) OnData(chunk []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.req == nil {
		return
	}

	for {
		line, rest, ok := c.lines.Next(chunk)
		if !ok {
			break
		}

		chunk = rest
		if !c.consume(line) {
			return
		}
	}

	// a body isn't necessarily terminated by a newline, so the tail completing it is
	// taken as is
	if c.req.State == http.Content && c.lines.Pending() > 0 &&
		c.req.Received+uint64(c.lines.Pending()) >= c.req.ContentLength {
		if !c.consume(c.lines.Drain()) {
			return
		}
	}

	c.arm(c.srv.settings.Timeout.Normal)
}

// Close terminates the connection. It's safe to call multiple times.
func (c *Conn) Close() {
	c.mu.Lock()
	c.close()
	c.mu.Unlock()
}

// Closed reports whether the connection was terminated.
func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

// consume feeds the line to the request in its current state. It reports false if
// the connection was terminated.
func (c *Conn) consume(line []byte) bool {
	request := c.req

	switch request.State {
	case http.Headers:
		if len(line) > 0 {
			c.parser.ConsumeHeaderLine(request, line)
			return true
		}

		if request.Method == method.GET {
			return c.dispatch()
		}

		request.Advance(http.Content)
		if request.ContentLength == 0 {
			return c.dispatch()
		}
	case http.Content:
		if c.parser.ConsumeBodyLine(request, line, c.lines.Cut()) {
			return c.dispatch()
		}
	}

	return true
}

func (c *Conn) dispatch() bool {
	c.req.Advance(http.Done)
	if c.srv.router.Dispatch(c.req.Route, c.req.Fields()) {
		return true
	}

	c.fail(c.req.Route, status.ErrNotFound, msgNotFound+` "`+c.req.Route+`"`)
	c.close()
	return false
}

// arm (re-)starts the timer bounding the request.
func (c *Conn) arm(timeout time.Duration) {
	if c.timer != nil {
		c.timer.Cancel()
	}

	c.gen++
	gen := c.gen
	c.timer = c.srv.scheduler.Once(timeout, func() {
		c.onTimeout(gen)
	})
}

func (c *Conn) onTimeout(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.req == nil || c.gen != gen {
		return
	}

	c.timer = nil
	request := c.req

	switch {
	case request.State < http.Done:
		// the client is slow, but maybe what we've got is already enough to serve
		if c.lines.Pending() > 0 {
			tail := c.lines.Drain()
			if request.State == http.Headers {
				c.parser.ConsumeHeaderLine(request, tail)
			} else {
				c.parser.ConsumeBodyLine(request, tail, c.lines.Cut())
			}
		}

		request.Advance(http.Done)
		if !c.srv.router.Dispatch(request.Route, request.Fields()) {
			c.fail(request.Route, status.ErrNotFound, msgNotFound)
			c.close()
			return
		}

		c.arm(c.srv.settings.Timeout.Grace)
	case request.State == http.Done:
		c.fail(request.Route, status.ErrRequestTimeout, msgTimeout)
		c.close()
	default:
		c.close()
	}
}

// fail sends the status document corresponding to the error.
func (c *Conn) fail(route string, err error, message string) {
	code := status.InternalServerError
	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
	}

	c.send(c.serializer.Status(route, code, message))
}

func (c *Conn) send(data []byte) {
	if len(data) == 0 {
		return
	}

	if _, err := c.client.Write(data); err != nil {
		c.srv.logger.Printf("http: connection %d: write: %v", c.id, err)
	}
}

func (c *Conn) close() {
	if c.closed {
		return
	}

	c.closed = true
	c.gen++
	if c.timer != nil {
		c.timer.Cancel()
		c.timer = nil
	}

	if c.req != nil {
		c.send(c.serializer.WrapperClose(c.req))
		c.req = nil
	}

	c.srv.registry.remove(c)
	_ = c.client.Close()
}

func remoteIP(addr net.Addr) string {
	if addr == nil {
		return ""
	}

	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}

	return host
}
