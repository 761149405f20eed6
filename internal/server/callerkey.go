package server

import (
	"net"
	"net/http"
	"strings"
)

// callerKey derives the session key for a request from its network origin.
// The first hop of X-Forwarded-For wins when a proxy supplies it; otherwise
// the remote address host is used.
func callerKey(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
