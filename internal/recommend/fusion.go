// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package recommend

import (
	"context"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/metrics"
)

// Strategy names used for caching, logs and metrics.
const (
	StrategyPersonalized  = "personalized"
	StrategyHybrid        = "hybrid"
	StrategyCollaborative = "collaborative"
	StrategyContentBased  = "content-based"
	StrategyPopular       = "popular"
	StrategyTrending      = "trending"
)

// strategyFunc produces at most limit recommendations.
type strategyFunc func(ctx context.Context, userID string, limit int) ([]Recommendation, error)

// GetPersonalizedRecommendations is the primary entry point. It draws
// ceil(HybridShare*limit) hybrid results, then ceil(PopularShare*limit)
// popular and ceil(TrendingShare*limit) trending results, keeps the first
// occurrence of each item and truncates to limit. Sub-lists are not
// backfilled when duplicates are dropped.
func (e *Engine) GetPersonalizedRecommendations(ctx context.Context, userID string, limit int) ([]Recommendation, error) {
	return e.serve(ctx, StrategyPersonalized, userID, limit, e.personalized)
}

// GetHybridRecommendations fuses collaborative and content-based scores
// with the configured weights.
func (e *Engine) GetHybridRecommendations(ctx context.Context, userID string, limit int) ([]Recommendation, error) {
	return e.serve(ctx, StrategyHybrid, userID, limit, e.hybrid)
}

// GetCollaborativeRecommendations runs only the collaborative scorer.
func (e *Engine) GetCollaborativeRecommendations(ctx context.Context, userID string, limit int) ([]Recommendation, error) {
	return e.serve(ctx, StrategyCollaborative, userID, limit, e.single(CategoryCollaborative))
}

// GetContentBasedRecommendations runs only the content-based scorer.
func (e *Engine) GetContentBasedRecommendations(ctx context.Context, userID string, limit int) ([]Recommendation, error) {
	return e.serve(ctx, StrategyContentBased, userID, limit, e.single(CategoryContentBased))
}

// GetPopularContent ranks by popularity. userID may be empty; a known
// user's seen items are excluded.
func (e *Engine) GetPopularContent(ctx context.Context, userID string, limit int) ([]Recommendation, error) {
	return e.serve(ctx, StrategyPopular, userID, limit, e.single(CategoryPopular))
}

// GetTrendingContent ranks by popularity with a recency boost.
func (e *Engine) GetTrendingContent(ctx context.Context, userID string, limit int) ([]Recommendation, error) {
	return e.serve(ctx, StrategyTrending, userID, limit, e.single(CategoryTrending))
}

// serve clamps limit, consults the cache and records metrics. The result
// is never nil; an error is returned only when ctx is done.
func (e *Engine) serve(ctx context.Context, strategy, userID string, limit int, fn strategyFunc) ([]Recommendation, error) {
	start := time.Now()
	e.requestCount.Add(1)
	limit = e.config.clampLimit(limit)

	var key string
	if e.cache != nil {
		key = cacheKey(strategy, userID, limit, e.generation.Load())
		if recs, ok := e.cache.get(key, time.Now()); ok {
			metrics.RecordRecommend(strategy, time.Since(start), len(recs))
			return recs, nil
		}
	}

	recs, err := fn(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []Recommendation{}
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}

	if e.cache != nil {
		e.cache.put(key, recs, time.Now())
	}
	metrics.RecordRecommend(strategy, time.Since(start), len(recs))
	logging.Enrich(ctx, e.logger).Debug().
		Str("strategy", strategy).
		Str("user_id", userID).
		Int("limit", limit).
		Int("results", len(recs)).
		Dur("duration", time.Since(start)).
		Msg("recommendations served")
	return recs, nil
}

func (e *Engine) single(c Category) strategyFunc {
	return func(ctx context.Context, userID string, limit int) ([]Recommendation, error) {
		return e.runScorer(ctx, c, userID, limit)
	}
}

// fusedScore tracks the weighted contributions of one item.
type fusedScore struct {
	collab        float64
	content       float64
	collabReason  string
	contentReason string
}

// hybrid runs both personalized scorers concurrently at twice the limit and
// combines them as CollaborativeWeight*collab + ContentWeight*content. A
// scorer that does not rank an item contributes zero for it.
func (e *Engine) hybrid(ctx context.Context, userID string, limit int) ([]Recommendation, error) {
	var collab, content []Recommendation

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		collab, err = e.runScorer(gctx, CategoryCollaborative, userID, 2*limit)
		return err
	})
	g.Go(func() error {
		var err error
		content, err = e.runScorer(gctx, CategoryContentBased, userID, 2*limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	wc, wt := e.config.Fusion.CollaborativeWeight, e.config.Fusion.ContentWeight
	fused := make(map[string]*fusedScore, len(collab)+len(content))
	get := func(id string) *fusedScore {
		f, ok := fused[id]
		if !ok {
			f = &fusedScore{}
			fused[id] = f
		}
		return f
	}
	for _, r := range collab {
		f := get(r.ContentID)
		f.collab = wc * r.Score
		f.collabReason = r.Reason
	}
	for _, r := range content {
		f := get(r.ContentID)
		f.content = wt * r.Score
		f.contentReason = r.Reason
	}

	out := make([]Recommendation, 0, len(fused))
	for id, f := range fused {
		total := f.collab + f.content
		if total <= 0 {
			continue
		}
		rec := Recommendation{
			ContentID:  id,
			Score:      total,
			Confidence: math.Min(total/e.config.Fusion.ConfidenceScale, 1),
		}
		switch {
		case f.collab > 0 && f.content > 0:
			rec.Category = CategoryHybrid
		case f.collab > 0:
			rec.Category = CategoryCollaborative
		default:
			rec.Category = CategoryContentBased
		}
		if f.collab >= f.content {
			rec.Reason = f.collabReason
		} else {
			rec.Reason = f.contentReason
		}
		out = append(out, rec)
	}

	sortRecommendations(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// personalized mixes hybrid, popular and trending results.
func (e *Engine) personalized(ctx context.Context, userID string, limit int) ([]Recommendation, error) {
	f := e.config.Fusion
	var hybrid, popular, trending []Recommendation

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hybrid, err = e.hybrid(gctx, userID, share(limit, f.HybridShare))
		return err
	})
	g.Go(func() error {
		var err error
		popular, err = e.runScorer(gctx, CategoryPopular, userID, share(limit, f.PopularShare))
		return err
	})
	g.Go(func() error {
		var err error
		trending, err = e.runScorer(gctx, CategoryTrending, userID, share(limit, f.TrendingShare))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Recommendation, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, list := range [][]Recommendation{hybrid, popular, trending} {
		for _, r := range list {
			if len(out) == limit {
				return out, nil
			}
			if _, dup := seen[r.ContentID]; dup {
				continue
			}
			seen[r.ContentID] = struct{}{}
			out = append(out, r)
		}
	}
	return out, nil
}

// share returns ceil(limit*fraction), or 0 for a zero fraction. The
// epsilon keeps float noise such as 6.000000000000001 from rounding up.
func share(limit int, fraction float64) int {
	if fraction <= 0 {
		return 0
	}
	return int(math.Ceil(float64(limit)*fraction - 1e-9))
}

func sortRecommendations(recs []Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].ContentID < recs[j].ContentID
	})
}
