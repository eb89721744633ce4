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

// RegisterContent handles POST /api/v1/content. Re-registering an id
// replaces the item.
// @Summary Register content
// @Description Inserts a catalog item or replaces the item with the same id, then refreshes its similarity row
// @Tags Content
// @Accept json
// @Produce json
// @Param item body recommend.ContentItem true "Content item"
// @Success 201 {object} models.APIResponse{data=recommend.ContentItem}
// @Failure 400 {object} models.APIResponse
// @Router /content [post]
func (h *Handler) RegisterContent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var item recommend.ContentItem
	if !decodeJSON(w, r, &item) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	stored, err := h.engine.RegisterContent(ctx, item)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusCreated, stored, start)
}

// ListContent handles GET /api/v1/content.
// @Summary List content
// @Tags Content
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ContentListResponse}
// @Router /content [get]
func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	items := h.engine.ListContent(r.Context())
	respondSuccess(w, http.StatusOK, models.ContentListResponse{Count: len(items), Items: items}, start)
}

// GetContent handles GET /api/v1/content/{contentID}.
// @Summary Get content
// @Tags Content
// @Produce json
// @Param contentID path string true "Content ID"
// @Success 200 {object} models.APIResponse{data=recommend.ContentItem}
// @Failure 404 {object} models.APIResponse
// @Router /content/{contentID} [get]
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	item, err := h.engine.GetContent(r.Context(), chi.URLParam(r, "contentID"))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, item, start)
}

// SimilarContent handles GET /api/v1/content/{contentID}/similar.
// @Summary Similar content
// @Description Items with positive similarity to the given item, best first
// @Tags Content
// @Produce json
// @Param contentID path string true "Content ID"
// @Param k query int false "Maximum neighbours"
// @Success 200 {object} models.APIResponse{data=models.NeighborsResponse}
// @Failure 404 {object} models.APIResponse
// @Router /content/{contentID}/similar [get]
func (h *Handler) SimilarContent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	contentID := chi.URLParam(r, "contentID")

	neighbors, err := h.engine.GetSimilarContent(r.Context(), contentID, getIntParam(r, "k", 0))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, models.NeighborsResponse{
		ID:        contentID,
		Count:     len(neighbors),
		Neighbors: neighbors,
	}, start)
}
