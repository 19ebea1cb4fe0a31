package pennhttp

import (
	"bufio"
	"io"
	"net"
	"testing"
	"time"

	"github.com/grapenut/pennhttp/http"
	"github.com/grapenut/pennhttp/http/status"
	"github.com/grapenut/pennhttp/router"
	"github.com/grapenut/pennhttp/router/inbuilt"
	"github.com/grapenut/pennhttp/settings"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, r router.Router) *App {
	s := settings.Default()
	s.NET.AcceptLoopInterruptPeriod = 100 * time.Millisecond
	s.Site.Name = "TestMUSH"

	started := make(chan struct{})
	app := New("127.0.0.1:0").
		Tune(s).
		OnLine(func(w io.Writer, line string) bool {
			if line == "QUIT" {
				return false
			}

			_, _ = w.Write([]byte("Huh? " + line + "\r\n"))
			return true
		}).
		NotifyOnStart(func() {
			close(started)
		})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Serve(r)
	}()

	select {
	case <-started:
	case err := <-errCh:
		require.FailNow(t, "failed to start", err)
	}

	t.Cleanup(func() {
		app.Stop()
		require.ErrorIs(t, <-errCh, status.ErrShutdown)
	})

	return app
}

func exchange(t *testing.T, app *App, request string) string {
	conn, err := net.Dial("tcp", app.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetDeadline(time.Now().Add(10*time.Second)))
	_, err = conn.Write([]byte(request))
	require.NoError(t, err)

	response, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(response)
}

func TestApp(t *testing.T) {
	r := inbuilt.New().
		Route("/who", func(resp http.Responder, fields http.Fields) {
			_ = resp.ContentType("text/html")
			_ = resp.Wrap(true)
			_ = resp.Write("<p>" + fields.Query + "</p>")
			_ = resp.Finish(false)
		}).
		Route("/api/players", func(resp http.Responder, fields http.Fields) {
			_ = resp.Header("Cache-Control", "no-store")
			_ = resp.JSON(struct {
				Method string `json:"method"`
				Body   string `json:"body"`
			}{fields.Method, fields.Body})
			_ = resp.Finish(false)
		})
	app := runApp(t, r)

	t.Run("GET", func(t *testing.T) {
		response := exchange(t, app, "GET /who/?sort=idle HTTP/1.1\r\nHost: localhost\r\n\r\n")
		require.Equal(t,
			"HTTP/1.1 200 OK\r\n"+
				"Content-Type: text/html\r\n"+
				"\r\n"+
				"<!DOCTYPE html>\r\n<HTML><HEAD>\r\n<TITLE>TestMUSH</TITLE>\r\n</HEAD><BODY>\r\n"+
				"<p>sort=idle</p>\r\n"+
				"</BODY></HTML>\r\n",
			response,
		)
	})

	t.Run("POST", func(t *testing.T) {
		response := exchange(t, app,
			"POST /API/Players HTTP/1.1\r\nContent-Length: 8\r\n\r\nname=Foo",
		)
		require.Equal(t,
			"HTTP/1.1 200 OK\r\n"+
				"Cache-Control: no-store\r\n"+
				"Content-Type: application/json\r\n"+
				"\r\n"+
				`{"method":"POST ","body":"name=Foo"}`+"\r\n",
			response,
		)
	})

	t.Run("not found", func(t *testing.T) {
		response := exchange(t, app, "GET /nowhere HTTP/1.1\r\n\r\n")
		require.Contains(t, response, "HTTP/1.1 404 Not Found\r\n")
		require.Contains(t, response, "X-Route: HTTP`NOWHERE\r\n")
	})

	t.Run("bad request", func(t *testing.T) {
		response := exchange(t, app, "GET / HTTP/2\r\n\r\n")
		require.Contains(t, response, "HTTP/1.1 400 Bad Request\r\n")
	})

	t.Run("line session", func(t *testing.T) {
		conn, err := net.Dial("tcp", app.Addr().String())
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.SetDeadline(time.Now().Add(10*time.Second)))
		_, err = conn.Write([]byte("WHO\r\n"))
		require.NoError(t, err)

		reader := bufio.NewReader(conn)
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		require.Equal(t, "Huh? WHO\r\n", line)

		_, err = conn.Write([]byte("QUIT\r\n"))
		require.NoError(t, err)
		_, err = reader.ReadString('\n')
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("respond to unknown connection", func(t *testing.T) {
		_, err := app.Respond(1 << 40)
		require.ErrorIs(t, err, status.ErrNoSuchConnection)
	})
}

func TestApp_NoHandlers(t *testing.T) {
	app := runApp(t, nil)
	response := exchange(t, app, "GET / HTTP/1.1\r\n\r\n")
	require.Contains(t, response, "HTTP/1.1 200 OK\r\n")
	require.Contains(t, response, "<TITLE>Welcome to TestMUSH!</TITLE>")
}

func TestIsHTTPRequest(t *testing.T) {
	require.True(t, IsHTTPRequest("GET / HTTP/1.1"))
	require.True(t, IsHTTPRequest("DELETE /x HTTP/1.1"))
	require.False(t, IsHTTPRequest("connect guest"))
	require.False(t, IsHTTPRequest("GETTING"))
	require.False(t, IsHTTPRequest("get / HTTP/1.1"))
}
