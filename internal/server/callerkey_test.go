package server

import (
	"net/http/httptest"
	"testing"
)

func TestCallerKey(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{name: "remote addr host", remoteAddr: "192.168.1.10:52000", want: "192.168.1.10"},
		{name: "forwarded single hop", remoteAddr: "127.0.0.1:52000", forwarded: "203.0.113.7", want: "203.0.113.7"},
		{name: "forwarded first hop wins", remoteAddr: "127.0.0.1:52000", forwarded: "203.0.113.7, 10.0.0.1", want: "203.0.113.7"},
		{name: "blank forwarded falls back", remoteAddr: "192.168.1.10:52000", forwarded: "   ", want: "192.168.1.10"},
		{name: "unparseable remote addr kept verbatim", remoteAddr: "not-an-addr", want: "not-an-addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/health", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := callerKey(req); got != tt.want {
				t.Fatalf("callerKey = %q, want %q", got, tt.want)
			}
		})
	}
}
