package status

import "errors"

// HTTPError is a protocol-level failure. It always terminates the current request
// and is reported to the client as a status document carrying Code.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrMalformedRequestLine = NewError(BadRequest, "malformed request line")
	ErrPathTooLong          = NewError(BadRequest, "request path is too long")
	ErrNotFound             = NewError(NotFound, "no handler is bound to the route")
	ErrRequestTimeout       = NewError(RequestTimeout, "request timeout")
	ErrAllocation           = NewError(InternalServerError, "unable to allocate http request")
)

// Caller errors. They are returned to whoever shapes the response and never
// produce any traffic on the wire.
var (
	ErrInvalidStatusCode = errors.New("invalid HTTP status code")
	ErrReservedHeader    = errors.New("Content-Length and Content-Type may not be set manually")
	ErrInvalidHeader     = errors.New(`invalid format, expected "Header-Name: Value"`)
	ErrHeadersTooLarge   = errors.New("response headers are too large")
	ErrHeadersSent       = errors.New("response headers have already been sent")
	ErrNotDispatched     = errors.New("request has not been dispatched yet")
	ErrClosed            = errors.New("connection is closed")
	ErrNoSuchConnection  = errors.New("descriptor has not made an HTTP request")
	ErrShutdown          = errors.New("graceful shutdown")
)
