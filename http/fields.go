package http

import (
	"iter"
	"strings"

	"github.com/grapenut/pennhttp/http/status"
)

// Fields is what a request handler receives.
type Fields struct {
	// ID identifies the connection. Handlers use it to find the response to shape.
	ID     uint64 `json:"id"`
	Remote string `json:"remote"`
	// Method is the method label, including the trailing space, e.g. "GET ".
	Method        string `json:"method"`
	Path          string `json:"path"`
	Query         string `json:"query"`
	ContentType   string `json:"content_type"`
	ContentLength uint64 `json:"content_length"`
	// Headers are the raw header lines, newline-separated.
	Headers string `json:"headers"`
	// Body is the body reassembled out of lines, without the line terminators.
	Body string `json:"body"`
}

// HeaderLines iterates over the raw header lines.
func (f Fields) HeaderLines() iter.Seq[string] {
	return func(yield func(string) bool) {
		headers := f.Headers
		for len(headers) > 0 {
			line, rest, _ := strings.Cut(headers, "\n")
			if !yield(line) {
				return
			}

			headers = rest
		}
	}
}

// Responder shapes the response of a dispatched request. Every method may fail with a
// caller error, which is never reported to the client.
type Responder interface {
	// Status sets the status code. Unknown codes are refused.
	Status(code status.Code) error
	// Header adds a response header. Content-Length and Content-Type are refused.
	Header(key, value string) error
	// ContentType sets the value of the Content-Type header.
	ContentType(value string) error
	// Wrap toggles wrapping HTML responses into the boilerplate markup.
	Wrap(flag bool) error
	// Write sends the content. The first call sends the status line and the headers,
	// so nothing but the content can be shaped afterwards.
	Write(content string) error
	// JSON sends the model encoded as application/json.
	JSON(model any) error
	// Finish makes sure the headers are sent and closes the connection, unless asked
	// to keep it open.
	Finish(keepOpen bool) error
}
