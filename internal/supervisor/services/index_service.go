// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// IndexRebuilder is satisfied by *recommend.Engine.
type IndexRebuilder interface {
	RebuildIndex(ctx context.Context) error
}

// IndexRebuildConfig configures IndexRebuildService.
type IndexRebuildConfig struct {
	// Timeout bounds one rebuild. Non-positive values become 10m.
	Timeout time.Duration
}

// IndexRebuildService runs full similarity rebuilds on request. Requests
// that arrive while one is already pending are coalesced into it. There is
// no schedule; rebuilds happen only when an operator asks for one.
type IndexRebuildService struct {
	engine  IndexRebuilder
	config  IndexRebuildConfig
	logger  zerolog.Logger
	name    string
	pending chan struct{}
}

// NewIndexRebuildService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIndexRebuildService(engine IndexRebuilder, cfg IndexRebuildConfig, logger zerolog.Logger) *IndexRebuildService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	return &IndexRebuildService{
		engine:  engine,
		config:  cfg,
		logger:  logger.With().Str("service", "index-rebuild").Logger(),
		name:    "index-rebuild",
		pending: make(chan struct{}, 1),
	}
}

// Trigger queues a rebuild. It returns false when one is already queued.
func (s *IndexRebuildService) Trigger() bool {
	select {
	case s.pending <- struct{}{}:
		return true
	default:
		return false
	}
}

// Serve implements suture.Service. Rebuild failures are logged and the
// service keeps waiting for the next request.
func (s *IndexRebuildService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("timeout", s.config.Timeout).Msg("index rebuild service starting")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.pending:
			s.rebuild(ctx)
		}
	}
}

func (s *IndexRebuildService) rebuild(ctx context.Context) {
	rebuildCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.engine.RebuildIndex(rebuildCtx); err != nil {
		s.logger.Warn().Err(err).Msg("similarity index rebuild failed")
		return
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("similarity index rebuilt")
}

// String implements fmt.Stringer for suture logs.
func (s *IndexRebuildService) String() string {
	return s.name
}
