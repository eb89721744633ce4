// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package models

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/learnrec/internal/recommend"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidEvent     = "INVALID_EVENT"
	CodeInvalidContent   = "INVALID_CONTENT"
	CodeNotFound         = "NOT_FOUND"
	CodeBadRequest       = "BAD_REQUEST"
	CodeInternal         = "INTERNAL_ERROR"
	CodeRequestCancelled = "REQUEST_CANCELLED"
	CodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
)

// APIResponse is the envelope used by every HTTP endpoint.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error body.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// BehaviorEventRequest is the body of POST /api/v1/users/{userID}/events.
// Data is decoded according to Type.
type BehaviorEventRequest struct {
	Type string          `json:"type" validate:"required"`
	Data json.RawMessage `json:"data" validate:"required"`
}

// RecommendationsResponse is the data of every recommendation endpoint.
type RecommendationsResponse struct {
	UserID          string                     `json:"user_id,omitempty"`
	Strategy        string                     `json:"strategy"`
	Count           int                        `json:"count"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// NeighborsResponse is the data of the similar-content and similar-user
// endpoints.
type NeighborsResponse struct {
	ID        string               `json:"id"`
	Count     int                  `json:"count"`
	Neighbors []recommend.Neighbor `json:"neighbors"`
}

// ContentListResponse is the data of GET /api/v1/content.
type ContentListResponse struct {
	Count int                     `json:"count"`
	Items []recommend.ContentItem `json:"items"`
}

// HealthResponse is the data of the health endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Uptime    float64                `json:"uptime_seconds"`
	Profiles  int                    `json:"profiles"`
	Content   int                    `json:"content"`
	Checks    map[string]HealthCheck `json:"checks,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// HealthCheck is the state of one dependency.
type HealthCheck struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// IndexRebuildResponse is the data of POST /api/v1/index/rebuild. Status
// is "queued", "already_queued" or "completed".
type IndexRebuildResponse struct {
	Status string               `json:"status"`
	Index  recommend.IndexStats `json:"index"`
}
