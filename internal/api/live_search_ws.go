// Package api provides the WebSocket handler for live search subscriptions.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/eventscout/eventscout/internal/catalog"
	"github.com/eventscout/eventscout/internal/event"
	"github.com/eventscout/eventscout/internal/middleware"
	"github.com/eventscout/eventscout/internal/search"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is handled by the CORS middleware for the REST
		// surface; the WS endpoint accepts all origins for now.
		return true
	},
}

// LiveSearchHandlers holds dependencies for the live search WebSocket handler.
type LiveSearchHandlers struct {
	catalog *catalog.Service
}

// NewLiveSearchHandlers creates a new LiveSearchHandlers instance.
func NewLiveSearchHandlers(catalogService *catalog.Service) *LiveSearchHandlers {
	return &LiveSearchHandlers{
		catalog: catalogService,
	}
}

// liveSearchRequest is one search request over the socket. Fields mirror the
// GET /search/events query parameters.
type liveSearchRequest struct {
	Query string `json:"q"`
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Date  string `json:"date"`
	Limit int    `json:"limit"`
}

// liveSearchResponse is one search result frame.
type liveSearchResponse struct {
	Results []event.Record `json:"results"`
	Count   int            `json:"count"`
}

// liveSearchError is an error frame.
type liveSearchError struct {
	Error string `json:"error"`
}

// LiveSearch handles WebSocket connections for as-you-type search.
// GET /search/live
//
// The client sends JSON search requests and receives one result frame per
// request. Each request is evaluated against the current snapshot, so results
// pick up catalog changes between keystrokes.
func (h *LiveSearchHandlers) LiveSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upgrade websocket connection", "error", err)
		return
	}

	requestID := middleware.GetRequestID(ctx)
	slog.InfoContext(ctx, "live search client connected", "request_id", requestID)

	defer func() {
		conn.Close()
		slog.InfoContext(ctx, "live search client disconnected", "request_id", requestID)
	}()

	for {
		var req liveSearchRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.WarnContext(ctx, "websocket connection closed unexpectedly", "error", err)
			}
			break
		}

		limit := req.Limit
		if limit > MaxSearchLimit {
			limit = MaxSearchLimit
		}

		events, err := h.catalog.Snapshot(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load event snapshot", "error", err)
			if writeErr := conn.WriteJSON(liveSearchError{Error: "failed to search events"}); writeErr != nil {
				break
			}
			continue
		}

		results := search.Search(events, search.Params{
			Query: req.Query,
			Type:  req.Type,
			Topic: req.Topic,
			Date:  req.Date,
			Limit: limit,
		})
		if results == nil {
			results = []event.Record{}
		}

		if err := conn.WriteJSON(liveSearchResponse{Results: results, Count: len(results)}); err != nil {
			slog.WarnContext(ctx, "failed to write search results", "error", err)
			break
		}
	}
}
