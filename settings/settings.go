package settings

import (
	"log"
	"time"
)

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type Setting[T number] struct {
	Default T // soft limit
	Maximal T // hard limit
}

type (
	// HeadersSize is responsible for the buffer keeping raw request header lines
	// Default value is an initial size of the buffer
	// Maximal value is its capacity. Lines past it are cut off
	HeadersSize Setting[int]

	// BodySize is responsible for the buffer accumulating request body lines
	// Default value is an initial size of the buffer
	// Maximal value is its capacity. Bytes past it are cut off, but still counted
	//         towards the received length
	BodySize Setting[int]

	// ResponseHeadersSize is responsible for the buffer with headers set by a handler
	// Default value is an initial size of the buffer
	// Maximal value is its capacity. Headers that don't fit are rejected
	ResponseHeadersSize Setting[int]

	// LineLength is responsible for the buffer holding an unterminated line between reads
	// Default value is an initial size of the buffer
	// Maximal value is a maximal length of a single line
	LineLength Setting[int]

	// ReadBufferSize is responsible for the socket read buffer
	// Default value is a size of buffer for reading from socket, also
	//         we can call this setting as a "how many bytes are read from
	//         socket at most"
	ReadBufferSize Setting[int]
)

type (
	Request struct {
		// PathLength is the capacity of the request target, the route key, the path and
		// the query. A request target that doesn't fit is rejected as a bad request.
		PathLength      int
		Line            LineLength
		Headers         HeadersSize
		Body            BodySize
		ResponseHeaders ResponseHeadersSize
	}

	Timeout struct {
		// Normal is re-armed on every progress of the request: incoming data and every
		// response-shaping call.
		Normal time.Duration
		// Grace bounds how long a handler may take to start responding once a stalled
		// request was forcibly dispatched.
		Grace time.Duration
	}

	// Site describes the game the server fronts for. It's rendered into the default
	// page and into the HTML wrapper.
	Site struct {
		Name string
		// URL is redirected to from the default page if it's an http(s) URL.
		URL string
	}

	NET struct {
		ReadBuffer ReadBufferSize
		// ReadTimeout controls the maximal lifetime of idle line-command sessions. HTTP
		// requests are bounded by Timeout instead.
		ReadTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration
		// MaxRequests limits HTTP requests in flight. Requests past it are answered with
		// 500 Internal Server Error.
		MaxRequests int
	}
)

type Settings struct {
	Request Request
	Timeout Timeout
	Site    Site
	NET     NET
	// Logger is used for failures nobody else can report. Defaults to log.Default().
	Logger *log.Logger
}

func Default() Settings {
	// Usually, Default field stands for size of pre-allocated something
	// and Maximal stands for maximal size of something

	return Settings{
		Request: Request{
			PathLength: 256,
			Line: LineLength{
				Default: 512,
				Maximal: 8192,
			},
			Headers: HeadersSize{
				Default: 1024,
				Maximal: 8192,
			},
			Body: BodySize{
				Default: 1024,
				Maximal: 8192,
			},
			ResponseHeaders: ResponseHeadersSize{
				Default: 256,
				Maximal: 4096,
			},
		},
		Timeout: Timeout{
			Normal: 5 * time.Second,
			Grace:  1 * time.Second,
		},
		Site: Site{
			Name: "PennMUSH",
		},
		NET: NET{
			ReadBuffer: ReadBufferSize{
				Default: 2048,
				Maximal: 2048,
			},
			ReadTimeout:               time.Hour,
			AcceptLoopInterruptPeriod: 5 * time.Second,
			MaxRequests:               1024,
		},
		Logger: log.Default(),
	}
}

// Fill takes some settings and fills it with default values
// everywhere where it is not filled
func Fill(original Settings) (modified Settings) {
	defaultSettings := Default()

	original.Request.PathLength = customOrDefault(
		original.Request.PathLength, defaultSettings.Request.PathLength,
	)
	original.Request.Line.Default = customOrDefault(
		original.Request.Line.Default, defaultSettings.Request.Line.Default,
	)
	original.Request.Line.Maximal = customOrDefault(
		original.Request.Line.Maximal, defaultSettings.Request.Line.Maximal,
	)
	original.Request.Headers.Default = customOrDefault(
		original.Request.Headers.Default, defaultSettings.Request.Headers.Default,
	)
	original.Request.Headers.Maximal = customOrDefault(
		original.Request.Headers.Maximal, defaultSettings.Request.Headers.Maximal,
	)
	original.Request.Body.Default = customOrDefault(
		original.Request.Body.Default, defaultSettings.Request.Body.Default,
	)
	original.Request.Body.Maximal = customOrDefault(
		original.Request.Body.Maximal, defaultSettings.Request.Body.Maximal,
	)
	original.Request.ResponseHeaders.Default = customOrDefault(
		original.Request.ResponseHeaders.Default, defaultSettings.Request.ResponseHeaders.Default,
	)
	original.Request.ResponseHeaders.Maximal = customOrDefault(
		original.Request.ResponseHeaders.Maximal, defaultSettings.Request.ResponseHeaders.Maximal,
	)
	original.Timeout.Normal = customOrDefault(
		original.Timeout.Normal, defaultSettings.Timeout.Normal,
	)
	original.Timeout.Grace = customOrDefault(
		original.Timeout.Grace, defaultSettings.Timeout.Grace,
	)
	if original.Site.Name == "" {
		original.Site.Name = defaultSettings.Site.Name
	}
	original.NET.ReadBuffer.Default = customOrDefault(
		original.NET.ReadBuffer.Default, defaultSettings.NET.ReadBuffer.Default,
	)
	original.NET.ReadBuffer.Maximal = customOrDefault(
		original.NET.ReadBuffer.Maximal, defaultSettings.NET.ReadBuffer.Maximal,
	)
	original.NET.ReadTimeout = customOrDefault(
		original.NET.ReadTimeout, defaultSettings.NET.ReadTimeout,
	)
	original.NET.AcceptLoopInterruptPeriod = customOrDefault(
		original.NET.AcceptLoopInterruptPeriod, defaultSettings.NET.AcceptLoopInterruptPeriod,
	)
	original.NET.MaxRequests = customOrDefault(
		original.NET.MaxRequests, defaultSettings.NET.MaxRequests,
	)
	if original.Logger == nil {
		original.Logger = defaultSettings.Logger
	}

	return original
}

func customOrDefault[T number](custom, defaultVal T) T {
	if custom == 0 {
		return defaultVal
	}

	return custom
}
