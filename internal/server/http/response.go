package http

import (
	"strings"

	"github.com/grapenut/pennhttp/http"
	"github.com/grapenut/pennhttp/http/mime"
	"github.com/grapenut/pennhttp/http/status"
	"github.com/indigo-web/utils/strcomp"
	json "github.com/json-iterator/go"
)

var _ http.Responder = Response{}

// Response shapes the response of the connection's request. Everything is validated, and
// every accepted call renews the request timeout, so a handler taking its time to
// respond isn't cut off as long as it keeps responding.
type Response struct {
	conn *Conn
}

func (r Response) Status(code status.Code) error {
	return r.conn.shape(func(request *http.Request) error {
		if !status.Known(code) {
			return status.ErrInvalidStatusCode
		}

		request.Status = code
		return nil
	})
}

func (r Response) Header(key, value string) error {
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if len(key) == 0 || strings.ContainsAny(key, ":\r\n") || strings.ContainsAny(value, "\r\n") {
		return status.ErrInvalidHeader
	}

	if strcomp.EqualFold(key, "content-length") || strcomp.EqualFold(key, "content-type") {
		return status.ErrReservedHeader
	}

	return r.conn.shape(func(request *http.Request) error {
		if !request.AddResponseHeader(key, value) {
			return status.ErrHeadersTooLarge
		}

		return nil
	})
}

func (r Response) ContentType(value string) error {
	value = strings.TrimSpace(value)
	if len(value) == 0 || strings.ContainsAny(value, "\r\n") {
		return status.ErrInvalidHeader
	}

	return r.conn.shape(func(request *http.Request) error {
		request.ContentTypeHeader = value
		return nil
	})
}

func (r Response) Wrap(flag bool) error {
	return r.conn.shape(func(request *http.Request) error {
		request.WrapHTML = flag
		return nil
	})
}

func (r Response) Write(content string) error {
	return r.conn.write(content)
}

// JSON encodes the model and writes it. If nothing was sent yet, the content type is
// set to application/json.
func (r Response) JSON(model any) error {
	data, err := json.ConfigDefault.Marshal(model)
	if err != nil {
		return err
	}

	return r.conn.writeAs(mime.JSON, string(data))
}

func (r Response) Finish(keepOpen bool) error {
	if err := r.conn.write(""); err != nil {
		return err
	}

	if !keepOpen {
		r.conn.Close()
	}

	return nil
}

// shape applies the change to the request, unless the headers are already sent.
func (c *Conn) shape(change func(request *http.Request) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return status.ErrClosed
	}

	if c.req.State == http.Started {
		return status.ErrHeadersSent
	}

	if err := change(c.req); err != nil {
		return err
	}

	c.arm(c.srv.settings.Timeout.Normal)
	return nil
}

// write sends the content. The first call also sends the head.
func (c *Conn) write(content string) error {
	return c.writeAs("", content)
}

// writeAs does the same as write does, but the head, if not sent yet, carries the
// given content type. An empty one leaves the content type as is.
func (c *Conn) writeAs(contentType, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return status.ErrClosed
	}

	if c.req.State < http.Done {
		return status.ErrNotDispatched
	}

	head := c.req.State != http.Started
	if head && len(contentType) > 0 {
		c.req.ContentTypeHeader = contentType
	}

	c.req.Advance(http.Started)
	c.send(c.serializer.Body(c.req, content, head))
	c.arm(c.srv.settings.Timeout.Normal)

	return nil
}
