package http

import (
	"sync"

	"github.com/grapenut/pennhttp/http"
	"github.com/grapenut/pennhttp/http/status"
	"github.com/grapenut/pennhttp/router"
)

var _ router.Responders = new(Registry)

// Registry keeps track of connections with a request in flight, so handlers can find
// them by id. The number of such connections is limited.
type Registry struct {
	mu    sync.RWMutex
	conns map[uint64]*Conn
	limit int
}

func NewRegistry(limit int) *Registry {
	return &Registry{
		conns: make(map[uint64]*Conn),
		limit: limit,
	}
}

// Respond returns the response of the request in flight on the connection.
func (r *Registry) Respond(id uint64) (http.Responder, error) {
	r.mu.RLock()
	conn, found := r.conns[id]
	r.mu.RUnlock()

	if !found {
		return nil, status.ErrNoSuchConnection
	}

	return Response{conn: conn}, nil
}

// Len returns the number of requests in flight.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}

func (r *Registry) admit(conn *Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.conns) >= r.limit {
		return false
	}

	r.conns[conn.id] = conn
	return true
}

func (r *Registry) remove(conn *Conn) {
	r.mu.Lock()
	if r.conns[conn.id] == conn {
		delete(r.conns, conn.id)
	}
	r.mu.Unlock()
}

// each calls the function for every connection registered at the moment.
func (r *Registry) each(fn func(conn *Conn)) {
	r.mu.RLock()
	conns := make([]*Conn, 0, len(r.conns))
	for _, conn := range r.conns {
		conns = append(conns, conn)
	}
	r.mu.RUnlock()

	for _, conn := range conns {
		fn(conn)
	}
}
