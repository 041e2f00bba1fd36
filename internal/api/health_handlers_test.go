package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubChecker struct {
	err error
}

func (c stubChecker) HealthCheck(_ context.Context) error { return c.err }

func TestHealthAlwaysHealthy(t *testing.T) {
	h := NewHealthHandlers(map[string]Checker{
		"database": stubChecker{err: errors.New("down")},
	})

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, liveness ignores dependency state", rec.Code)
	}
}

func TestReadyAllHealthy(t *testing.T) {
	h := NewHealthHandlers(map[string]Checker{
		"database": stubChecker{},
		"redis":    stubChecker{},
	})

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ReadyResponse
	decodeJSON(t, rec, &resp)
	if resp.Status != "ready" {
		t.Errorf("status = %q, want ready", resp.Status)
	}
	if resp.Checks["database"] != "ok" || resp.Checks["redis"] != "ok" {
		t.Errorf("checks = %v", resp.Checks)
	}
}

func TestReadyDependencyDown(t *testing.T) {
	h := NewHealthHandlers(map[string]Checker{
		"database": stubChecker{},
		"redis":    stubChecker{err: errors.New("connection refused")},
	})

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var resp ReadyResponse
	decodeJSON(t, rec, &resp)
	if resp.Status != "not ready" {
		t.Errorf("status = %q, want not ready", resp.Status)
	}
	if resp.Checks["database"] != "ok" {
		t.Errorf("database check = %q, want ok", resp.Checks["database"])
	}
	if resp.Checks["redis"] != "unhealthy: connection refused" {
		t.Errorf("redis check = %q", resp.Checks["redis"])
	}
}

func TestReadyNoCheckers(t *testing.T) {
	h := NewHealthHandlers(nil)

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, no configured dependencies means ready", rec.Code)
	}
}
