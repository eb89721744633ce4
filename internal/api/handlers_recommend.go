// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/learnrec/internal/models"
	"github.com/tomtom215/learnrec/internal/recommend"
)

type recommendFunc func(ctx context.Context, userID string, limit int) ([]recommend.Recommendation, error)

// strategies maps the strategy query parameter to an engine call.
func (h *Handler) strategies() map[string]recommendFunc {
	return map[string]recommendFunc{
		recommend.StrategyPersonalized:  h.engine.GetPersonalizedRecommendations,
		recommend.StrategyHybrid:        h.engine.GetHybridRecommendations,
		recommend.StrategyCollaborative: h.engine.GetCollaborativeRecommendations,
		recommend.StrategyContentBased:  h.engine.GetContentBasedRecommendations,
		recommend.StrategyPopular:       h.engine.GetPopularContent,
		recommend.StrategyTrending:      h.engine.GetTrendingContent,
	}
}

// Recommendations handles GET /api/v1/users/{userID}/recommendations.
// strategy defaults to personalized; limit <= 0 uses the engine default.
// @Summary Recommendations for a user
// @Tags Recommendations
// @Produce json
// @Param userID path string true "User ID"
// @Param strategy query string false "personalized, hybrid, collaborative, content-based, popular or trending"
// @Param limit query int false "Maximum results"
// @Success 200 {object} models.APIResponse{data=models.RecommendationsResponse}
// @Failure 400 {object} models.APIResponse
// @Router /users/{userID}/recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = recommend.StrategyPersonalized
	}
	fn, ok := h.strategies()[strategy]
	if !ok {
		respondError(w, r, http.StatusBadRequest, models.CodeBadRequest,
			fmt.Sprintf("Unknown strategy %q", sanitizeLogValue(strategy)), nil)
		return
	}
	h.serveRecommendations(w, r, strategy, chi.URLParam(r, "userID"), fn)
}

// Popular handles GET /api/v1/recommendations/popular. user_id is optional
// and excludes that user's seen items.
// @Summary Popular content
// @Tags Recommendations
// @Produce json
// @Param user_id query string false "Exclude this user's seen items"
// @Param limit query int false "Maximum results"
// @Success 200 {object} models.APIResponse{data=models.RecommendationsResponse}
// @Router /recommendations/popular [get]
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendations(w, r, recommend.StrategyPopular, r.URL.Query().Get("user_id"), h.engine.GetPopularContent)
}

// Trending handles GET /api/v1/recommendations/trending.
// @Summary Trending content
// @Description Popularity boosted for recently updated items
// @Tags Recommendations
// @Produce json
// @Param user_id query string false "Exclude this user's seen items"
// @Param limit query int false "Maximum results"
// @Success 200 {object} models.APIResponse{data=models.RecommendationsResponse}
// @Router /recommendations/trending [get]
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendations(w, r, recommend.StrategyTrending, r.URL.Query().Get("user_id"), h.engine.GetTrendingContent)
}

func (h *Handler) serveRecommendations(w http.ResponseWriter, r *http.Request, strategy, userID string, fn recommendFunc) {
	start := time.Now()

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	recs, err := fn(ctx, userID, getIntParam(r, "limit", 0))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, models.RecommendationsResponse{
		UserID:          userID,
		Strategy:        strategy,
		Count:           len(recs),
		Recommendations: recs,
	}, start)
}
