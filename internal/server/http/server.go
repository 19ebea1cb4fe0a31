package http

import (
	"io"
	"log"
	"sync/atomic"

	"github.com/grapenut/pennhttp/http/method"
	"github.com/grapenut/pennhttp/internal/lines"
	"github.com/grapenut/pennhttp/internal/timer"
	"github.com/grapenut/pennhttp/internal/transport/http1"
	"github.com/grapenut/pennhttp/router"
	"github.com/grapenut/pennhttp/settings"
	"github.com/grapenut/pennhttp/transport"
	"github.com/indigo-web/utils/uf"
)

// LineHandler serves a line of a regular, non-HTTP session. Returning false ends the
// session.
type LineHandler func(w io.Writer, line string) bool

type Server struct {
	router    router.Router
	registry  *Registry
	scheduler timer.Scheduler
	settings  settings.Settings
	logger    *log.Logger
	onLine    LineHandler
	ids       atomic.Uint64
}

func NewServer(
	r router.Router, s settings.Settings, scheduler timer.Scheduler, onLine LineHandler,
) *Server {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Server{
		router:    r,
		registry:  NewRegistry(s.NET.MaxRequests),
		scheduler: scheduler,
		settings:  s,
		logger:    logger,
		onLine:    onLine,
	}
}

// Registry returns the registry of connections with a request in flight.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Run serves the client until either side closes the connection. The session is a
// regular line-based one, unless the very line turns out to be an HTTP request line.
// In that case the rest of the connection belongs to the request.
func (s *Server) Run(client transport.Client) {
	splitter := lines.New(s.settings.Request.Line.Default, s.settings.Request.Line.Maximal)

	for {
		data, err := client.Read()

		for {
			line, rest, ok := splitter.Next(data)
			if !ok {
				break
			}

			data = rest
			if method.IsRequest(uf.B2S(line)) {
				conn := s.NewConn(client, splitter)
				if conn.Start(line) {
					conn.OnData(data)
					s.serve(conn, client)
				}

				return
			}

			if s.onLine == nil || !s.onLine(client, string(line)) {
				return
			}
		}

		if err != nil {
			return
		}
	}
}

// NewConn makes a connection for an HTTP request. The splitter may carry state of the
// line session preceding the request.
func (s *Server) NewConn(client Transport, splitter lines.Splitter) *Conn {
	return &Conn{
		id:         s.ids.Add(1),
		srv:        s,
		client:     client,
		lines:      splitter,
		parser:     http1.NewParser(s.settings.Request),
		serializer: http1.NewSerializer(make([]byte, 0, 1024), s.settings.Site),
	}
}

// Shutdown terminates all the requests in flight.
func (s *Server) Shutdown() {
	s.registry.each(func(conn *Conn) {
		conn.Close()
	})
}

func (s *Server) serve(conn *Conn, client transport.Client) {
	for !conn.Closed() {
		data, err := client.Read()
		if len(data) > 0 {
			conn.OnData(data)
		}

		if err != nil {
			break
		}
	}

	conn.Close()
}
