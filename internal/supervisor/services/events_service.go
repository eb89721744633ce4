// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package services

import (
	"context"
	"fmt"
	"time"
)

// EventComponents is the lifecycle of the NATS connection, stream and
// publishers built in cmd/server.
type EventComponents interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context)
	IsRunning() bool
}

// EventComponentsService adapts EventComponents to suture: Start, wait
// for cancellation, then Shutdown with a fresh timeout context.
type EventComponentsService struct {
	components      EventComponents
	shutdownTimeout time.Duration
	name            string
}

// NewEventComponentsService wraps components. A non-positive
// shutdownTimeout becomes 10s.
func NewEventComponentsService(components EventComponents, shutdownTimeout time.Duration) *EventComponentsService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &EventComponentsService{
		components:      components,
		shutdownTimeout: shutdownTimeout,
		name:            "event-components",
	}
}

// Serve implements suture.Service. A Start failure is returned so suture
// retries with backoff.
func (s *EventComponentsService) Serve(ctx context.Context) error {
	if err := s.components.Start(ctx); err != nil {
		return fmt.Errorf("event components start failed: %w", err)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.components.Shutdown(shutdownCtx)

	return ctx.Err()
}

// String implements fmt.Stringer for suture logs.
func (s *EventComponentsService) String() string {
	return s.name
}
