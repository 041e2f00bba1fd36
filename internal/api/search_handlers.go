// Package api provides HTTP handlers for the EventScout API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/eventscout/eventscout/internal/catalog"
	"github.com/eventscout/eventscout/internal/event"
	"github.com/eventscout/eventscout/internal/middleware"
	"github.com/eventscout/eventscout/internal/search"
)

// SearchHandlers holds dependencies for search HTTP handlers.
type SearchHandlers struct {
	catalog *catalog.Service
}

// NewSearchHandlers creates a new SearchHandlers instance.
func NewSearchHandlers(catalogService *catalog.Service) *SearchHandlers {
	return &SearchHandlers{
		catalog: catalogService,
	}
}

// EventSearchResponse represents the response for event search.
type EventSearchResponse struct {
	Results []event.Record `json:"results"`
	Count   int            `json:"count"`
}

// MaxSearchLimit caps results per request.
const MaxSearchLimit = 50

// SearchEvents handles GET /search/events - keyword and filter search over the
// aggregated catalog.
func (h *SearchHandlers) SearchEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := search.Params{
		Query: strings.TrimSpace(query.Get("q")),
		Type:  query.Get("type"),
		Topic: query.Get("topic"),
		Date:  query.Get("date"),
		Limit: search.DefaultLimit,
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			ctx := middleware.SetErrorCode(r.Context(), ErrCodeValidation)
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "limit must be a positive integer")
			return
		}
		if limit > MaxSearchLimit {
			limit = MaxSearchLimit
		}
		params.Limit = limit
	}

	events, err := h.catalog.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load event snapshot", "error", err)
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeInternal)
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "Failed to search events")
		return
	}

	results := search.Search(events, params)
	if results == nil {
		results = []event.Record{}
	}

	WriteJSON(w, r, http.StatusOK, EventSearchResponse{
		Results: results,
		Count:   len(results),
	})
}
