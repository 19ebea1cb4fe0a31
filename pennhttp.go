package pennhttp

import (
	"net"

	"github.com/grapenut/pennhttp/http"
	"github.com/grapenut/pennhttp/http/method"
	"github.com/grapenut/pennhttp/http/status"
	"github.com/grapenut/pennhttp/internal/address"
	httpserver "github.com/grapenut/pennhttp/internal/server/http"
	"github.com/grapenut/pennhttp/internal/timer"
	"github.com/grapenut/pennhttp/router"
	"github.com/grapenut/pennhttp/router/inbuilt"
	"github.com/grapenut/pennhttp/settings"
	"github.com/grapenut/pennhttp/transport"
)

// LineHandler serves a line of a regular session, i.e. a connection which doesn't
// start with an HTTP request line. Returning false ends the session.
type LineHandler = httpserver.LineHandler

// App is a line-based server, which also understands HTTP requests knocking at the
// same port.
type App struct {
	addr     string
	settings settings.Settings
	onLine   LineHandler
	hooks    hooks
	tcp      *transport.TCP
	server   *httpserver.Server
	errCh    chan error
}

// New returns a new App instance. If only a port is given, e.g. ":4201", all the
// interfaces are listened on.
func New(addr string) *App {
	return &App{
		addr:     address.Normalize(addr),
		settings: settings.Default(),
		errCh:    make(chan error),
	}
}

// Tune replaces default settings.
func (a *App) Tune(s settings.Settings) *App {
	a.settings = settings.Fill(s)
	return a
}

// OnLine sets the handler of regular sessions. Without one, such connections are
// closed on the first line.
func (a *App) OnLine(handler LineHandler) *App {
	a.onLine = handler
	return a
}

// NotifyOnStart calls the callback at the moment the server is bound and about to
// accept connections.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment the server stopped accepting new
// connections and all the HTTP requests in flight were terminated.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve starts the application and blocks until it's stopped. If nil is passed instead
// of a router, empty inbuilt will be used, so every HTTP request gets the default page.
func (a *App) Serve(r router.Router) error {
	if r == nil {
		r = inbuilt.New()
	}

	a.server = httpserver.NewServer(r, a.settings, timer.Runtime{}, a.onLine)
	if err := r.OnStart(a.server.Registry()); err != nil {
		return err
	}

	a.tcp = transport.NewTCP()
	if err := a.tcp.Bind(a.addr); err != nil {
		return err
	}

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- a.tcp.Listen(a.settings.NET, a.server.Run)
	}()

	callIfNotNil(a.hooks.OnStart)

	var err error
	select {
	case err = <-listenErr:
	case err = <-a.errCh:
		a.tcp.Stop()
		<-listenErr
	}

	a.tcp.Close()
	a.server.Shutdown()
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Stop stops the application. Serve returns status.ErrShutdown as soon as the accept
// loop notices, which may take up to settings.NET.AcceptLoopInterruptPeriod.
func (a *App) Stop() {
	a.errCh <- status.ErrShutdown
}

// Addr returns the address the application is bound to. It's valid once the
// application is started.
func (a *App) Addr() net.Addr {
	return a.tcp.Addr()
}

// Respond returns the response of an HTTP request in flight by its connection id.
// That's how handlers, which were given nothing but the id, respond later.
func (a *App) Respond(id uint64) (http.Responder, error) {
	if a.server == nil {
		return nil, status.ErrNoSuchConnection
	}

	return a.server.Registry().Respond(id)
}

// IsHTTPRequest reports whether the line looks like an HTTP request line, judging by
// its method only.
func IsHTTPRequest(line string) bool {
	return method.IsRequest(line)
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
