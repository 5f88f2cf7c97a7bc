package httputil

import (
	"net"
	"net/http"
	"strings"
)

// GetClientIP resolves the originating client address for a request.
// Proxy headers win over the socket address: the first entry of
// X-Forwarded-For, then X-Real-IP, then RemoteAddr with its port
// stripped.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
