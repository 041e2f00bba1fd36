package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/eventscout/eventscout/internal/catalog"
	"github.com/eventscout/eventscout/internal/middleware"
	"github.com/eventscout/eventscout/internal/recommend"
)

// RecommendHandlers holds dependencies for recommendation HTTP handlers.
type RecommendHandlers struct {
	catalog *catalog.Service
	engine  *recommend.Engine
}

// NewRecommendHandlers creates a new RecommendHandlers instance.
func NewRecommendHandlers(catalogService *catalog.Service, engine *recommend.Engine) *RecommendHandlers {
	return &RecommendHandlers{
		catalog: catalogService,
		engine:  engine,
	}
}

// RecommendationResponse represents the response for role-based recommendations.
type RecommendationResponse struct {
	Role     string                  `json:"role"`
	Insights recommend.RoleInsights  `json:"insights"`
	Results  []recommend.RankedEvent `json:"results"`
	Count    int                     `json:"count"`
}

// Recommendations handles GET /recommendations - scores the catalog for a
// user role and returns the top matches with personalization insights.
// Unknown roles are scored with the generic fallback behavior rather than
// rejected, matching how new roles roll out ahead of scoring support.
func (h *RecommendHandlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	role := strings.ToLower(strings.TrimSpace(query.Get("role")))
	if role == "" {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeValidation)
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "role query parameter is required")
		return
	}

	limit := recommend.DefaultLimit
	if limitStr := query.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			ctx := middleware.SetErrorCode(r.Context(), ErrCodeValidation)
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "limit must be a positive integer")
			return
		}
		if limit > MaxSearchLimit {
			limit = MaxSearchLimit
		}
	}

	events, err := h.catalog.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load event snapshot", "error", err)
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeInternal)
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "Failed to build recommendations")
		return
	}

	results := h.engine.Recommend(events, role, limit)
	if results == nil {
		results = []recommend.RankedEvent{}
	}

	WriteJSON(w, r, http.StatusOK, RecommendationResponse{
		Role:     role,
		Insights: recommend.InsightsForRole(role),
		Results:  results,
		Count:    len(results),
	})
}
