package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eventscout/eventscout/internal/catalog"
	"github.com/eventscout/eventscout/internal/event"
	"github.com/eventscout/eventscout/internal/middleware"
	"github.com/eventscout/eventscout/internal/validate"
)

// Submission field constraints.
var (
	titleConstraints = validate.StringConstraints{
		MinLength: 3,
		MaxLength: 200,
		TrimSpace: true,
	}
	descriptionConstraints = validate.StringConstraints{
		MinLength: 10,
		MaxLength: 2000,
		TrimSpace: true,
	}
	locationConstraints = validate.StringConstraints{
		MinLength: 2,
		MaxLength: 200,
		TrimSpace: true,
	}
	dateConstraints = validate.StringConstraints{
		MaxLength:  100,
		AllowEmpty: true,
		TrimSpace:  true,
	}
)

// EventHandlers holds dependencies for event browse and submission handlers.
type EventHandlers struct {
	catalog *catalog.Service
	repo    event.Repository
}

// NewEventHandlers creates a new EventHandlers instance. repo may be nil when
// no database is configured; submissions are rejected in that mode.
func NewEventHandlers(catalogService *catalog.Service, repo event.Repository) *EventHandlers {
	return &EventHandlers{
		catalog: catalogService,
		repo:    repo,
	}
}

// EventListResponse represents the response for event browsing.
type EventListResponse struct {
	Results []event.Record `json:"results"`
	Count   int            `json:"count"`
}

// ListEvents handles GET /events - returns the aggregated catalog.
// Supports optional featured=true filtering and a limit parameter.
func (h *EventHandlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	events, err := h.catalog.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load event snapshot", "error", err)
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeInternal)
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "Failed to load events")
		return
	}

	if query.Get("featured") == "true" {
		featured := make([]event.Record, 0, len(events))
		for _, e := range events {
			if e.IsFeatured {
				featured = append(featured, e)
			}
		}
		events = featured
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			ctx := middleware.SetErrorCode(r.Context(), ErrCodeValidation)
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "limit must be a positive integer")
			return
		}
		if len(events) > limit {
			events = events[:limit]
		}
	}

	if events == nil {
		events = []event.Record{}
	}

	WriteJSON(w, r, http.StatusOK, EventListResponse{
		Results: events,
		Count:   len(events),
	})
}

// GetEvent handles GET /events/{id} - looks up one event in the aggregated
// catalog by its id.
func (h *EventHandlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/events/")
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeValidation)
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "Event id must be a positive integer")
		return
	}

	events, err := h.catalog.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load event snapshot", "error", err)
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeInternal)
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "Failed to load events")
		return
	}

	for _, e := range events {
		if e.ID == id {
			WriteJSON(w, r, http.StatusOK, e)
			return
		}
	}

	ctx := middleware.SetErrorCode(r.Context(), ErrCodeNotFound)
	WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "Event not found")
}

// SubmitEventRequest is the request body for event submission.
type SubmitEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Topic       string   `json:"topic"`
	Date        string   `json:"date"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
}

// SubmitEvent handles POST /events - stores a community-submitted event.
// Requires authentication. The stored event joins the catalog on the next
// snapshot rebuild.
func (h *EventHandlers) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeSubmissionClosed)
		WriteError(w, ctx, http.StatusServiceUnavailable, ErrCodeSubmissionClosed, "Event submissions are not available without a database")
		return
	}

	var req SubmitEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body")
		return
	}

	title, err := validate.String(req.Title, titleConstraints)
	if err != nil {
		writeValidationError(w, r, "title", err)
		return
	}
	description, err := validate.String(req.Description, descriptionConstraints)
	if err != nil {
		writeValidationError(w, r, "description", err)
		return
	}
	location, err := validate.String(req.Location, locationConstraints)
	if err != nil {
		writeValidationError(w, r, "location", err)
		return
	}
	date, err := validate.String(req.Date, dateConstraints)
	if err != nil {
		writeValidationError(w, r, "date", err)
		return
	}

	eventType, err := validate.InVocabulary(strings.TrimSpace(req.Type), validate.EventTypes)
	if err != nil {
		writeValidationError(w, r, "type", err)
		return
	}
	topic, err := validate.InVocabulary(strings.TrimSpace(req.Topic), validate.EventTopics)
	if err != nil {
		writeValidationError(w, r, "topic", err)
		return
	}

	url := ""
	if strings.TrimSpace(req.URL) != "" {
		normalized, ok := validate.EventURL(req.URL)
		if !ok {
			ctx := middleware.SetErrorCode(r.Context(), ErrCodeInvalidURL)
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeInvalidURL, "url is not a usable link")
			return
		}
		url = normalized
	}

	now := time.Now().UTC()
	rec := &event.Record{
		Title:       title,
		Description: description,
		Location:    location,
		Type:        eventType,
		Topic:       topic,
		Date:        date,
		URL:         url,
		Tags:        validate.FilterTags(req.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.repo.Insert(r.Context(), rec); err != nil {
		slog.ErrorContext(r.Context(), "failed to insert event",
			"error", err,
			"user_id", middleware.GetUserID(r.Context()),
		)
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeInternal)
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "Failed to store event")
		return
	}

	// The cached snapshot predates this submission
	h.catalog.Invalidate(r.Context())

	slog.InfoContext(r.Context(), "event submitted",
		"event_id", rec.ID,
		"user_id", middleware.GetUserID(r.Context()),
	)

	WriteJSON(w, r, http.StatusCreated, rec)
}

func writeValidationError(w http.ResponseWriter, r *http.Request, field string, err error) {
	msg := field + " is invalid"
	switch {
	case errors.Is(err, validate.ErrEmpty):
		msg = field + " is required"
	case errors.Is(err, validate.ErrStringTooShort):
		msg = field + " is too short"
	case errors.Is(err, validate.ErrStringTooLong):
		msg = field + " is too long"
	case errors.Is(err, validate.ErrNotInVocabulary):
		msg = field + " is not a recognized value"
	}
	ctx := middleware.SetErrorCode(r.Context(), ErrCodeValidation)
	WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, msg)
}
