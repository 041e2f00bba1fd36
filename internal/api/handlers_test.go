package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/eventscout/eventscout/internal/catalog"
	"github.com/eventscout/eventscout/internal/source"
)

// stubSource feeds fixed rows into the catalog for handler tests.
type stubSource struct {
	rows []map[string]string
	err  error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Rows(_ context.Context) ([]map[string]string, error) {
	return s.rows, s.err
}

// newTestCatalog builds an uncached catalog over the given rows.
func newTestCatalog(rows []map[string]string) *catalog.Service {
	return catalog.NewService([]source.Source{&stubSource{rows: rows}}, nil, nil, nil)
}

// newFailingCatalog builds a catalog whose only source always fails.
func newFailingCatalog(err error) *catalog.Service {
	return catalog.NewService([]source.Source{&stubSource{err: err}}, nil, nil, nil)
}

// sampleRows is a small catalog fixture shared across handler tests.
var sampleRows = []map[string]string{
	{"id": "1", "title": "Pitch Night Berlin", "location": "Berlin", "date": "2026-09-12", "featured": "true"},
	{"id": "2", "title": "AI Summit", "location": "Online", "date": "2026-10-01"},
	{"id": "3", "title": "Design Workshop", "location": "Lisbon", "date": "2026-09-12"},
}

// decodeJSON unmarshals a recorded response body, failing the test on error.
func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid JSON response %q: %v", rec.Body.String(), err)
	}
}

// decodeError unmarshals a standard error envelope.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	decodeJSON(t, rec, &resp)
	return resp
}
