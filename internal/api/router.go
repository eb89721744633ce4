// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/learnrec/internal/middleware"
	"github.com/tomtom215/learnrec/internal/models"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses the default middleware config.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, models.CodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, models.CodeBadRequest, "Method not allowed", nil)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// Health endpoints skip rate limiting so probes are never throttled.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/stats", router.handler.Stats)
		r.Post("/index/rebuild", router.handler.RebuildIndex)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Put("/profile", router.handler.UpsertProfile)
			r.Get("/profile", router.handler.GetProfile)
			r.Post("/events", router.handler.RecordEvent)
			r.Get("/recommendations", router.handler.Recommendations)
			r.Get("/insights", router.handler.Insights)
			r.Get("/similar", router.handler.SimilarUsers)
		})

		r.Route("/content", func(r chi.Router) {
			r.Post("/", router.handler.RegisterContent)
			r.Get("/", router.handler.ListContent)
			r.Get("/{contentID}", router.handler.GetContent)
			r.Get("/{contentID}/similar", router.handler.SimilarContent)
		})

		r.Get("/recommendations/popular", router.handler.Popular)
		r.Get("/recommendations/trending", router.handler.Trending)
	})

	return r
}
