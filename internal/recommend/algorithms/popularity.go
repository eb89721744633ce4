// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package algorithms

import (
	"context"
	"time"

	"github.com/tomtom215/learnrec/internal/recommend"
)

// Popular ranks the whole catalog by raw popularity.
type Popular struct {
	profiles recommend.ProfileReader
	catalog  recommend.CatalogReader
}

var _ recommend.Scorer = (*Popular)(nil)

// NewPopular creates a popularity scorer.
func NewPopular(profiles recommend.ProfileReader, catalog recommend.CatalogReader) *Popular {
	return &Popular{profiles: profiles, catalog: catalog}
}

// Name returns "popular".
func (p *Popular) Name() string { return "popular" }

// Category returns recommend.CategoryPopular.
func (p *Popular) Category() recommend.Category { return recommend.CategoryPopular }

// Score ranks by popularity. An empty or unknown userID excludes nothing.
func (p *Popular) Score(ctx context.Context, userID string, limit int) ([]recommend.Recommendation, error) {
	return rankCatalog(ctx, p.profiles, p.catalog, userID, limit, p.Category(), recommend.ReasonPopular,
		func(item *recommend.ContentItem) float64 { return item.Popularity })
}

// Trending ranks by popularity, boosting items updated within Window.
type Trending struct {
	profiles recommend.ProfileReader
	catalog  recommend.CatalogReader
	cfg      recommend.TrendingConfig
	now      func() time.Time
}

var _ recommend.Scorer = (*Trending)(nil)

// NewTrending creates a trending scorer. now defaults to time.Now.
func NewTrending(
	profiles recommend.ProfileReader,
	catalog recommend.CatalogReader,
	cfg recommend.TrendingConfig,
	now func() time.Time,
) *Trending {
	if now == nil {
		now = time.Now
	}
	return &Trending{profiles: profiles, catalog: catalog, cfg: cfg, now: now}
}

// Name returns "trending".
func (t *Trending) Name() string { return "trending" }

// Category returns recommend.CategoryTrending.
func (t *Trending) Category() recommend.Category { return recommend.CategoryTrending }

// Score ranks by popularity x Boost for items whose LastUpdated lies within
// Window before now, and raw popularity otherwise.
func (t *Trending) Score(ctx context.Context, userID string, limit int) ([]recommend.Recommendation, error) {
	now := t.now()
	return rankCatalog(ctx, t.profiles, t.catalog, userID, limit, t.Category(), recommend.ReasonTrending,
		func(item *recommend.ContentItem) float64 {
			if IsRecent(item.Metadata.LastUpdated, now, t.cfg.Window) {
				return item.Popularity * t.cfg.Boost
			}
			return item.Popularity
		})
}

// IsRecent reports whether ts is within window before now.
func IsRecent(ts, now time.Time, window time.Duration) bool {
	if ts.IsZero() {
		return false
	}
	age := now.Sub(ts)
	return age >= 0 && age <= window
}

// rankCatalog scores every unseen item and normalizes confidence by the
// best score.
func rankCatalog(
	ctx context.Context,
	profiles recommend.ProfileReader,
	catalog recommend.CatalogReader,
	userID string,
	limit int,
	category recommend.Category,
	reason string,
	score func(*recommend.ContentItem) float64,
) ([]recommend.Recommendation, error) {
	var seen map[string]struct{}
	if userID != "" {
		if user, ok := profiles.Profile(userID); ok {
			seen = user.SeenItems()
		}
	}

	items := catalog.Items()
	out := make([]recommend.Recommendation, 0, len(items))
	var maxScore float64
	for i := range items {
		if _, ok := seen[items[i].ID]; ok {
			continue
		}
		s := score(&items[i])
		if s > maxScore {
			maxScore = s
		}
		out = append(out, recommend.Recommendation{
			ContentID: items[i].ID,
			Score:     s,
			Reason:    reason,
			Category:  category,
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out = sortAndTruncate(out, limit)
	for i := range out {
		if maxScore > 0 {
			out[i].Confidence = clamp01(out[i].Score / maxScore)
		}
	}
	return out, nil
}
