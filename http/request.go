package http

import (
	"github.com/grapenut/pennhttp/http/method"
	"github.com/grapenut/pennhttp/http/mime"
	"github.com/grapenut/pennhttp/http/status"
	"github.com/grapenut/pennhttp/internal/buffer"
	"github.com/grapenut/pennhttp/settings"
)

// State of a request. It only ever moves forward.
type State uint8

const (
	// Headers is the initial state, right after the request line was recognized.
	Headers State = iota + 1
	// Content means the headers are over and the body is being accumulated. GET requests
	// never get here.
	Content
	// Done means the request was handed to its handler.
	Done
	// Started means the response headers were sent already.
	Started
)

func (s State) String() string {
	switch s {
	case Headers:
		return "headers"
	case Content:
		return "content"
	case Done:
		return "done"
	case Started:
		return "started"
	default:
		return "unknown"
	}
}

// Request represents a single HTTP request together with the response being shaped for
// it. There is at most one per connection.
type Request struct {
	// ID identifies the connection the request came from.
	ID uint64
	// Remote is the client address.
	Remote string
	Method method.Method
	// Route is the key the request is dispatched by, e.g. "HTTP`NEWS`TODAY".
	Route string
	// Path is the request path without the leading and trailing slashes.
	Path string
	// Query is the raw query string, possibly empty.
	Query string
	// ContentType and ContentLength are the values of corresponding request headers.
	ContentType   string
	ContentLength uint64
	// Received counts body bytes consumed so far.
	Received uint64
	State    State

	// Status is the response status code, 200 unless set otherwise.
	Status status.Code
	// ContentTypeHeader is the value of the response Content-Type header.
	ContentTypeHeader string
	// WrapHTML wraps the response into the HTML boilerplate if the content type is HTML.
	WrapHTML bool

	headers         buffer.Buffer
	body            buffer.Buffer
	responseHeaders buffer.Buffer
}

func NewRequest(s settings.Request) *Request {
	return &Request{
		Method:            method.Unknown,
		State:             Headers,
		Status:            status.OK,
		ContentTypeHeader: mime.Plain,
		headers:           buffer.New(s.Headers.Default, s.Headers.Maximal),
		body:              buffer.New(s.Body.Default, s.Body.Maximal),
		responseHeaders:   buffer.New(s.ResponseHeaders.Default, s.ResponseHeaders.Maximal),
	}
}

// Advance moves the request into the next state. A state behind the current one is
// refused, the request never regresses.
func (r *Request) Advance(to State) bool {
	if to < r.State {
		return false
	}

	r.State = to
	return true
}

// AppendHeaderLine keeps the raw header line, followed by a newline. Lines past the
// capacity are cut off.
func (r *Request) AppendHeaderLine(line []byte) {
	r.headers.Append(line)
	r.headers.AppendByte('\n')
}

// AppendBody keeps the body bytes. Bytes past the capacity are cut off.
func (r *Request) AppendBody(data []byte) {
	r.body.Append(data)
}

// Headers returns the raw header lines, each terminated by a newline.
func (r *Request) Headers() string {
	return r.headers.String()
}

// Body returns the accumulated body.
func (r *Request) Body() string {
	return r.body.String()
}

// AddResponseHeader appends the header to the response. Nothing is written and false
// is returned if it doesn't fit.
func (r *Request) AddResponseHeader(key, value string) bool {
	if !r.responseHeaders.Fits(len(key) + len(": ") + len(value) + len("\r\n")) {
		return false
	}

	r.responseHeaders.AppendString(key)
	r.responseHeaders.AppendString(": ")
	r.responseHeaders.AppendString(value)
	r.responseHeaders.AppendString("\r\n")
	return true
}

// ResponseHeaders returns the rendered response headers set so far.
func (r *Request) ResponseHeaders() []byte {
	return r.responseHeaders.Bytes()
}

// Fields returns a snapshot of everything a handler is dispatched with.
func (r *Request) Fields() Fields {
	return Fields{
		ID:            r.ID,
		Remote:        r.Remote,
		Method:        r.Method.String(),
		Path:          r.Path,
		Query:         r.Query,
		ContentType:   r.ContentType,
		ContentLength: r.ContentLength,
		Headers:       r.Headers(),
		Body:          r.Body(),
	}
}
