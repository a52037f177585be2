package middleware

import (
	"net"
	"net/http"
	"strings"
)

// clientIP returns the client address from r.RemoteAddr only. Proxy headers
// are ignored because the server is expected to be reached directly.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return strings.TrimSpace(host)
}
