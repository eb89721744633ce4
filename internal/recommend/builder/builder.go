// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

// Package builder wires the engine, similarity index and scorers together.
// It lives apart from package recommend because the scorers and the index
// import recommend.
package builder

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/learnrec/internal/recommend"
	"github.com/tomtom215/learnrec/internal/recommend/algorithms"
	"github.com/tomtom215/learnrec/internal/recommend/similarity"
)

// NewEngine returns an engine with the similarity index and the
// collaborative, content-based, popular and trending scorers attached.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *recommend.Config, logger zerolog.Logger, opts ...recommend.Option) (*recommend.Engine, error) {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	engine, err := recommend.NewEngine(cfg, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	profiles, catalog := engine.Profiles(), engine.Catalog()
	index := similarity.NewIndex(profiles, catalog, logger)
	engine.SetSimilarityIndex(index)

	engine.RegisterScorer(algorithms.NewCollaborative(profiles, catalog, index, cfg.Collaborative))
	engine.RegisterScorer(algorithms.NewContentBased(profiles, catalog, index, cfg.ContentBased))
	engine.RegisterScorer(algorithms.NewPopular(profiles, catalog))
	engine.RegisterScorer(algorithms.NewTrending(profiles, catalog, cfg.Trending, engine.Now))
	return engine, nil
}
