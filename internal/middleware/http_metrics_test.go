package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/events", "/events"},
		{"/events/123", "/events/{id}"},
		{"/events/abc", "/events/{id}"},
		{"/events/", "/events/"},
		{"/events/123/extra", "/events/123/extra"},
		{"/search/events", "/search/events"},
		{"/search/live", "/search/live"},
		{"/recommendations", "/recommendations"},
		{"/health", "/health"},
		{"/ready", "/ready"},
		{"/metrics", "/metrics"},
		{"/unknown/route", "/unknown/route"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizePath(tt.path); got != tt.want {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
