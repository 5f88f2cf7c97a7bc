package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"X-Forwarded-For single", "203.0.113.5", "", "192.0.2.1:1234", "203.0.113.5"},
		{"X-Forwarded-For chain takes first", "198.51.100.7, 203.0.113.9", "", "192.0.2.1:1234", "198.51.100.7"},
		{"X-Forwarded-For with spaces", "  203.0.113.10  , 198.51.100.2", "", "192.0.2.1:1234", "203.0.113.10"},
		{"X-Forwarded-For IPv6", "2001:db8::1, 203.0.113.9", "", "192.0.2.1:1234", "2001:db8::1"},
		{"X-Forwarded-For beats X-Real-IP", "198.51.100.77", "203.0.113.200", "192.0.2.1:1234", "198.51.100.77"},
		{"X-Real-IP when no XFF", "", "203.0.113.12", "192.0.2.1:1234", "203.0.113.12"},
		{"RemoteAddr fallback strips port", "", "", "192.0.2.55:54321", "192.0.2.55"},
		{"RemoteAddr bracketed IPv6", "", "", "[2001:db8::5]:8443", "2001:db8::5"},
		{"malformed RemoteAddr returned raw", "", "", "not_an_ip_port", "not_an_ip_port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			r.RemoteAddr = tt.remoteAddr

			assert.Equal(t, tt.want, GetClientIP(r))
		})
	}
}
