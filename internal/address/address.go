package address

import "net"

// DefaultHost is listened on when only a port is given.
const DefaultHost = "0.0.0.0"

// Normalize completes an address consisting of a port only, like ":4201", with the
// default host. Anything else is returned as is.
func Normalize(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || len(host) > 0 {
		return addr
	}

	return net.JoinHostPort(DefaultHost, port)
}
