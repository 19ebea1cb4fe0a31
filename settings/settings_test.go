package settings

import (
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	t.Run("AllNullValues", func(t *testing.T) {
		filled := Fill(Settings{})
		def := Default()

		require.Equal(t, def.Request, filled.Request)
		require.Equal(t, def.Timeout, filled.Timeout)
		require.Equal(t, def.Site, filled.Site)
		require.Equal(t, def.NET, filled.NET)
		require.NotNil(t, filled.Logger)
	})

	t.Run("SomeNonNull", func(t *testing.T) {
		logger := log.New(log.Writer(), "http: ", 0)
		filled := Fill(Settings{
			Request: Request{PathLength: 64},
			Timeout: Timeout{Grace: 3 * time.Second},
			Site:    Site{URL: "https://example.com"},
			Logger:  logger,
		})

		require.Equal(t, 64, filled.Request.PathLength)
		require.Equal(t, Default().Request.Headers, filled.Request.Headers)
		require.Equal(t, 5*time.Second, filled.Timeout.Normal)
		require.Equal(t, 3*time.Second, filled.Timeout.Grace)
		require.Equal(t, "PennMUSH", filled.Site.Name)
		require.Equal(t, "https://example.com", filled.Site.URL)
		require.Same(t, logger, filled.Logger)
	})
}

func TestDefault(t *testing.T) {
	s := Default()
	require.Less(t, s.Timeout.Grace, s.Timeout.Normal)
	require.LessOrEqual(t, s.Request.Headers.Default, s.Request.Headers.Maximal)
	require.LessOrEqual(t, s.Request.Body.Default, s.Request.Body.Maximal)
	require.LessOrEqual(t, s.Request.Line.Default, s.Request.Line.Maximal)
}
