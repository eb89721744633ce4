// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

/*
Package middleware provides HTTP middleware for request tracing and
Prometheus instrumentation.

Both middlewares use the http.HandlerFunc signature and are adapted to chi's
func(http.Handler) http.Handler form by the api package:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

PrometheusMetrics labels requests with the matched chi route pattern
(for example /api/v1/users/{userID}/recommendations) rather than the raw
path, which keeps label cardinality bounded by the number of routes.
*/
package middleware
