package router

import "github.com/grapenut/pennhttp/http"

// Responders finds the response of an in-flight request by its connection id.
type Responders interface {
	Respond(id uint64) (http.Responder, error)
}

// Router binds route keys to handlers. It's the only thing the server knows about
// application logic.
type Router interface {
	// OnStart is called once before serving, with the means to find responses of
	// dispatched requests later.
	OnStart(responders Responders) error
	// HasAnyHandler reports whether there's anything to serve at all. If there isn't,
	// browsers get the default page and no request is even parsed.
	HasAnyHandler() bool
	// Dispatch hands the request to the handler bound to the route key and reports
	// false if there's none. It must not shape the response before returning, the
	// handler is expected to run later.
	Dispatch(route string, fields http.Fields) bool
}
