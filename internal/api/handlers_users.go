// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/learnrec/internal/models"
	"github.com/tomtom215/learnrec/internal/recommend"
)

// UpsertProfile handles PUT /api/v1/users/{userID}/profile.
// @Summary Create or update a profile
// @Tags Users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param profile body recommend.ProfilePatch true "Fields to set"
// @Success 200 {object} models.APIResponse{data=recommend.UserProfile}
// @Failure 400 {object} models.APIResponse
// @Router /users/{userID}/profile [put]
func (h *Handler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "userID")

	var patch recommend.ProfilePatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	profile, err := h.engine.UpsertProfile(ctx, userID, &patch)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, profile, start)
}

// GetProfile handles GET /api/v1/users/{userID}/profile.
// @Summary Get a profile
// @Tags Users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} models.APIResponse{data=recommend.UserProfile}
// @Failure 404 {object} models.APIResponse
// @Router /users/{userID}/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	profile, err := h.engine.GetProfile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, profile, start)
}

// RecordEvent handles POST /api/v1/users/{userID}/events.
// @Summary Record a behavior event
// @Description Applies a viewed, completed, favorited, searched or rated event and refreshes the user's similarity row
// @Tags Users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param event body models.BehaviorEventRequest true "Event"
// @Success 202 {object} models.APIResponse{data=recommend.UserProfile}
// @Failure 400 {object} models.APIResponse
// @Router /users/{userID}/events [post]
func (h *Handler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "userID")

	var req models.BehaviorEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	kind, err := recommend.ParseEventKind(req.Type)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	payload, err := recommend.DecodeEventPayload(kind, req.Data)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	profile, err := h.engine.RecordBehaviorEvent(ctx, userID, kind, payload)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusAccepted, profile, start)
}

// SimilarUsers handles GET /api/v1/users/{userID}/similar.
// @Summary Similar users
// @Tags Users
// @Produce json
// @Param userID path string true "User ID"
// @Param k query int false "Maximum neighbours"
// @Success 200 {object} models.APIResponse{data=models.NeighborsResponse}
// @Failure 404 {object} models.APIResponse
// @Router /users/{userID}/similar [get]
func (h *Handler) SimilarUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "userID")

	neighbors, err := h.engine.GetSimilarUsers(r.Context(), userID, getIntParam(r, "k", 0))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, models.NeighborsResponse{
		ID:        userID,
		Count:     len(neighbors),
		Neighbors: neighbors,
	}, start)
}

// Insights handles GET /api/v1/users/{userID}/insights. Unknown users get
// default insights rather than 404.
// @Summary Learner insights
// @Tags Users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} models.APIResponse{data=recommend.Insights}
// @Router /users/{userID}/insights [get]
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	insights := h.engine.GetRecommendationInsights(r.Context(), chi.URLParam(r, "userID"))
	respondSuccess(w, http.StatusOK, insights, start)
}
