package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, context.Background(), http.StatusNotFound, ErrCodeNotFound, "Event not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	resp := decodeError(t, rec)
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("code = %q, want %q", resp.Error.Code, ErrCodeNotFound)
	}
	if resp.Error.Message != "Event not found" {
		t.Errorf("message = %q", resp.Error.Message)
	}
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidURL, http.StatusBadRequest},
		{ErrCodeAuthFailed, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeSubmissionClosed, http.StatusServiceUnavailable},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"unknown_code", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := StatusCodeMapping(tt.code); got != tt.want {
				t.Errorf("StatusCodeMapping(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}
