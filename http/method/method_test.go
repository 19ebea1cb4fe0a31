package method

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("known", func(t *testing.T) {
		for _, m := range List {
			line := m.String() + "/x/y?z HTTP/1.1"
			require.Equal(t, m, Parse(line))
			require.True(t, IsRequest(line))
		}
	})

	t.Run("unknown", func(t *testing.T) {
		for _, line := range []string{
			"", "GET", "get / HTTP/1.1", "HEAD / HTTP/1.1", "GETS / HTTP/1.1",
			"OPTIONS * HTTP/1.1", " GET / HTTP/1.1", "connect Wizard password",
		} {
			require.Equal(t, Unknown, Parse(line), line)
			require.False(t, IsRequest(line), line)
		}
	})

	t.Run("labels", func(t *testing.T) {
		require.Equal(t, "GET ", GET.String())
		require.Equal(t, "DELETE ", DELETE.String())
		require.Equal(t, "UNKNOWN ", Unknown.String())
		require.Equal(t, "UNKNOWN ", Method(200).String())
		require.Equal(t, DELETE, Method(Count))
	})
}

func BenchmarkParse(b *testing.B) {
	var parsed Method

	for _, m := range List {
		b.Run(m.String(), func(b *testing.B) {
			line := m.String() + "/ HTTP/1.1"
			b.SetBytes(int64(len(line)))
			b.ResetTimer()

			for j := 0; j < b.N; j++ {
				parsed = Parse(line)
			}
		})
	}

	keepalive(parsed)
}

func keepalive(Method) {}
