// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

// Package metrics holds the Prometheus instruments for Learnrec. Metrics
// are registered on the default registry at init and served by the API at
// /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrec_recommend_requests_total",
			Help: "Recommendation requests by strategy",
		},
		[]string{"strategy"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "learnrec_recommend_duration_seconds",
			Help:    "Time to produce a recommendation list",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"strategy"},
	)

	RecommendEmpty = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrec_recommend_empty_total",
			Help: "Recommendation requests that produced no items",
		},
		[]string{"strategy"},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "learnrec_recommend_cache_hits_total",
			Help: "Recommendation responses served from cache",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "learnrec_recommend_cache_misses_total",
			Help: "Recommendation responses computed",
		},
	)

	ScorerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrec_scorer_errors_total",
			Help: "Scorer failures that degraded a response",
		},
		[]string{"scorer"},
	)

	// Store metrics
	BehaviorEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrec_behavior_events_total",
			Help: "Behavior events by kind and outcome",
		},
		[]string{"kind", "result"},
	)

	ContentRegistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrec_content_registrations_total",
			Help: "Content registrations by outcome",
		},
		[]string{"result"},
	)

	ProfilesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "learnrec_profiles",
			Help: "Number of stored profiles",
		},
	)

	ContentTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "learnrec_content_items",
			Help: "Number of registered content items",
		},
	)

	PersistErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrec_persist_errors_total",
			Help: "Failed snapshot writes by collection",
		},
		[]string{"collection"},
	)

	// Similarity index metrics
	SimilarityRecomputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "learnrec_similarity_recompute_duration_seconds",
			Help:    "Time to recompute one entity's similarity row",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"matrix"},
	)

	SimilarityPairs = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "learnrec_similarity_pairs",
			Help: "Stored pairs per similarity matrix",
		},
		[]string{"matrix"},
	)

	SimilarityStaleWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrec_similarity_stale_writes_total",
			Help: "Pair writes discarded because a newer computation was already stored",
		},
		[]string{"matrix"},
	)

	// Event bus metrics
	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrec_events_consumed_total",
			Help: "Bus messages consumed by topic and outcome",
		},
		[]string{"topic", "result"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrec_events_published_total",
			Help: "Bus messages published by topic and outcome",
		},
		[]string{"topic", "result"},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrec_api_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "learnrec_api_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordRecommend records one recommendation call.
func RecordRecommend(strategy string, duration time.Duration, results int) {
	RecommendRequests.WithLabelValues(strategy).Inc()
	RecommendDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if results == 0 {
		RecommendEmpty.WithLabelValues(strategy).Inc()
	}
}

// RecordBehaviorEvent records an ingested behavior event.
func RecordBehaviorEvent(kind string, err error) {
	BehaviorEvents.WithLabelValues(kind, resultLabel(err)).Inc()
}

// RecordContentRegistration records a content registration.
func RecordContentRegistration(err error) {
	ContentRegistrations.WithLabelValues(resultLabel(err)).Inc()
}

// RecordRecompute records one similarity row recompute.
func RecordRecompute(matrix string, duration time.Duration, pairs, stale int) {
	SimilarityRecomputeDuration.WithLabelValues(matrix).Observe(duration.Seconds())
	SimilarityPairs.WithLabelValues(matrix).Set(float64(pairs))
	if stale > 0 {
		SimilarityStaleWrites.WithLabelValues(matrix).Add(float64(stale))
	}
}

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordEventConsumed records one consumed bus message.
func RecordEventConsumed(topic string, err error) {
	EventsConsumed.WithLabelValues(topic, resultLabel(err)).Inc()
}

// RecordEventPublished records one publish attempt.
func RecordEventPublished(topic string, err error) {
	EventsPublished.WithLabelValues(topic, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
