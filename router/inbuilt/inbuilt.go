package inbuilt

import (
	"errors"
	"log"
	"sync"

	"github.com/grapenut/pennhttp/http"
	"github.com/grapenut/pennhttp/http/status"
	"github.com/grapenut/pennhttp/internal/route"
	"github.com/grapenut/pennhttp/router"
)

var _ router.Router = new(Router)

// Handler serves a dispatched request. It runs on its own goroutine and may respond
// whenever it likes, as long as the connection is alive.
type Handler func(resp http.Responder, fields http.Fields)

// Router is a built-in implementation of router.Router interface, keeping handlers
// in memory.
type Router struct {
	mu         sync.RWMutex
	routes     map[string]Handler
	responders router.Responders
}

// New constructs a new instance of inbuilt router
func New() *Router {
	return &Router{
		routes: make(map[string]Handler),
	}
}

// Route binds the handler to the route key the path resolves to, so "/news/" and
// "/NEWS" end up being the same route.
func (r *Router) Route(path string, handler Handler) *Router {
	return r.Bind(route.Key(path), handler)
}

// Bind binds the handler to the route key as is.
func (r *Router) Bind(key string, handler Handler) *Router {
	r.mu.Lock()
	r.routes[key] = handler
	r.mu.Unlock()

	return r
}

func (r *Router) OnStart(responders router.Responders) error {
	if responders == nil {
		return errors.New("inbuilt: no responders")
	}

	r.mu.Lock()
	r.responders = responders
	r.mu.Unlock()

	return nil
}

func (r *Router) HasAnyHandler() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.routes) > 0
}

func (r *Router) Dispatch(key string, fields http.Fields) bool {
	r.mu.RLock()
	handler, found := r.routes[key]
	responders := r.responders
	r.mu.RUnlock()

	if !found || responders == nil {
		return false
	}

	resp, err := responders.Respond(fields.ID)
	if err != nil {
		return false
	}

	go serve(handler, resp, fields)

	return true
}

// serve runs the handler. A panicking handler results in 500 Internal Server Error
// if nothing was sent yet, and in a closed connection anyway.
func serve(handler Handler, resp http.Responder, fields http.Fields) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("inbuilt: handler for connection %d panicked: %v", fields.ID, r)
			_ = resp.Status(status.InternalServerError)
			_ = resp.Finish(false)
		}
	}()

	handler(resp, fields)
}
