package network

import (
	"net/http/httptest"
	"testing"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name          string
		xForwardedFor string
		xRealIP       string
		remoteAddr    string
		expectedIP    string
	}{
		{"X-Forwarded-For single IP", "192.168.1.1", "", "10.0.0.1:12345", "192.168.1.1"},
		{"X-Forwarded-For multiple IPs", "192.168.1.1, 10.0.0.2, 172.16.0.1", "", "10.0.0.1:12345", "192.168.1.1"},
		{"X-Forwarded-For with spaces", "  192.168.1.1  ", "", "10.0.0.1:12345", "192.168.1.1"},
		{"X-Forwarded-For empty first hop", " , 10.0.0.2", "10.0.0.3", "10.0.0.1:12345", "10.0.0.3"},
		{"X-Real-IP", "", "192.168.1.1", "10.0.0.1:12345", "192.168.1.1"},
		{"X-Forwarded-For takes precedence over X-Real-IP", "192.168.1.1", "10.0.0.2", "10.0.0.1:12345", "192.168.1.1"},
		{"RemoteAddr with port", "", "", "192.168.1.1:12345", "192.168.1.1"},
		{"RemoteAddr without port", "", "", "192.168.1.1", "192.168.1.1"},
		{"IPv6 RemoteAddr with port", "", "", "[::1]:12345", "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.xForwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.xForwardedFor)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}
			req.RemoteAddr = tt.remoteAddr

			if got := GetClientIP(req); got != tt.expectedIP {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.expectedIP)
			}
		})
	}
}
