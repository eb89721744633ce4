// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/learnrec/internal/models"
)

// healthCheckTimeout bounds all readiness checks together.
const healthCheckTimeout = 5 * time.Second

// HealthLive handles GET /api/v1/health/live. It only proves the process
// serves HTTP.
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthResponse}
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Uptime:    time.Since(h.startTime).Seconds(),
		Timestamp: time.Now().UTC(),
	}, start)
}

// HealthReady handles GET /api/v1/health/ready. It runs every registered
// check and answers 503 when any fails.
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthResponse}
// @Failure 503 {object} models.APIResponse{data=models.HealthResponse}
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	h.checksMu.RLock()
	checks := make(map[string]HealthChecker, len(h.checks))
	for name, c := range h.checks {
		checks[name] = c
	}
	h.checksMu.RUnlock()

	resp := models.HealthResponse{
		Status:    "ready",
		Uptime:    time.Since(h.startTime).Seconds(),
		Checks:    make(map[string]models.HealthCheck, len(checks)),
		Timestamp: time.Now().UTC(),
	}
	stats := h.engine.Stats()
	resp.Profiles = stats.Profiles
	resp.Content = stats.Content

	status := http.StatusOK
	for name, check := range checks {
		if err := check(ctx); err != nil {
			resp.Checks[name] = models.HealthCheck{Healthy: false, Message: err.Error()}
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = models.HealthCheck{Healthy: true}
	}

	respondSuccess(w, status, resp, start)
}

// Stats handles GET /api/v1/stats.
// @Summary Engine statistics
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=recommend.Stats}
// @Router /stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, http.StatusOK, h.engine.Stats(), start)
}

// RebuildIndex handles POST /api/v1/index/rebuild. With a trigger wired it
// queues the rebuild and answers 202; otherwise it rebuilds before
// answering.
// @Summary Rebuild the similarity index
// @Description Recomputes every similarity pair from the current profiles and catalog
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.IndexRebuildResponse}
// @Success 202 {object} models.APIResponse{data=models.IndexRebuildResponse}
// @Failure 503 {object} models.APIResponse
// @Router /index/rebuild [post]
func (h *Handler) RebuildIndex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.rebuild != nil {
		status := "queued"
		if !h.rebuild.Trigger() {
			status = "already_queued"
		}
		h.logger.Info().Str("status", status).Msg("index rebuild requested")
		respondSuccess(w, http.StatusAccepted, models.IndexRebuildResponse{
			Status: status,
			Index:  h.engine.Stats().Index,
		}, start)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	if err := h.engine.RebuildIndex(ctx); err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, models.IndexRebuildResponse{
		Status: "completed",
		Index:  h.engine.Stats().Index,
	}, start)
}
