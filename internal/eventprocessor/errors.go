// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package eventprocessor

import "errors"

// ErrInvalidMessage is returned for envelopes that cannot be decoded or
// fail validation. Such messages are poisoned without retry.
var ErrInvalidMessage = errors.New("invalid message")

// ErrPublisherClosed is returned when publishing after Close.
var ErrPublisherClosed = errors.New("publisher is closed")

// ErrInvalidConfig is returned when configuration is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")
