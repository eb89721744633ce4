// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package recommend

import "errors"

var (
	// ErrNotFound is returned by direct lookups of an unknown user or item.
	// Recommendation and insight calls never return it.
	ErrNotFound = errors.New("not found")

	// ErrInvalidEvent is returned for unknown event kinds, payloads that do
	// not match their kind, and payloads or patches that fail validation.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrConcurrentMutation is reserved for lock implementations that reject
	// instead of serializing. The keyed lock used by Engine serializes, so
	// Engine itself never returns it.
	ErrConcurrentMutation = errors.New("concurrent mutation conflict")

	// ErrInvalidContent is returned when a content item fails validation.
	ErrInvalidContent = errors.New("invalid content")
)
