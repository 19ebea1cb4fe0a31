package mime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsHTML(t *testing.T) {
	for _, tc := range []string{HTML, HTML + "; charset=utf-8"} {
		require.True(t, IsHTML(tc))
	}

	for _, tc := range []string{"", Plain, JSON, "text/htm"} {
		require.False(t, IsHTML(tc))
	}
}
