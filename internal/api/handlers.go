// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package api

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/learnrec/internal/recommend"
)

// HealthChecker reports the health of one dependency.
type HealthChecker func(ctx context.Context) error

// IndexRebuildTrigger queues an asynchronous similarity rebuild and
// reports whether the request was accepted.
type IndexRebuildTrigger interface {
	Trigger() bool
}

// Handler serves all API endpoints against one engine.
type Handler struct {
	engine         *recommend.Engine
	logger         zerolog.Logger
	startTime      time.Time
	requestTimeout time.Duration
	rebuild        IndexRebuildTrigger

	checksMu sync.RWMutex
	checks   map[string]HealthChecker
}

// NewHandler creates a handler. requestTimeout bounds each engine call;
// zero disables the bound.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(engine *recommend.Engine, requestTimeout time.Duration, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:         engine,
		logger:         logger.With().Str("component", "api").Logger(),
		startTime:      time.Now(),
		requestTimeout: requestTimeout,
		checks:         make(map[string]HealthChecker),
	}
}

// RegisterHealthCheck adds a readiness check, replacing one with the same
// name.
func (h *Handler) RegisterHealthCheck(name string, check HealthChecker) {
	h.checksMu.Lock()
	defer h.checksMu.Unlock()
	h.checks[name] = check
}

// SetIndexRebuildTrigger routes rebuild requests to t. Without one the
// rebuild runs inside the request.
func (h *Handler) SetIndexRebuildTrigger(t IndexRebuildTrigger) {
	h.rebuild = t
}

// withTimeout derives the per-request engine context.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.requestTimeout)
}
