// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package algorithms

import (
	"context"
	"strings"

	"github.com/tomtom215/learnrec/internal/recommend"
)

// Preference-fit weights.
const (
	categoryFit   = 0.3
	difficultyFit = 0.2
	styleFit      = 0.2
	goalFit       = 0.3
)

// ContentBased recommends items similar to what the user rated highly and
// items that fit the user's stated preferences.
type ContentBased struct {
	profiles recommend.ProfileReader
	catalog  recommend.CatalogReader
	index    recommend.SimilarityIndex
	cfg      recommend.ContentBasedConfig
}

var _ recommend.Scorer = (*ContentBased)(nil)

// NewContentBased creates a content-based scorer.
func NewContentBased(
	profiles recommend.ProfileReader,
	catalog recommend.CatalogReader,
	index recommend.SimilarityIndex,
	cfg recommend.ContentBasedConfig,
) *ContentBased {
	return &ContentBased{profiles: profiles, catalog: catalog, index: index, cfg: cfg}
}

// Name returns "content-based".
func (c *ContentBased) Name() string { return "content-based" }

// Category returns recommend.CategoryContentBased.
func (c *ContentBased) Category() recommend.Category { return recommend.CategoryContentBased }

// Score sums two passes into one accumulator. The similarity pass adds the
// similarity of every neighbour above SimilarityThreshold of each highly
// rated completion. The preference pass scores every catalog item the user
// has not liked with PreferenceFit.
func (c *ContentBased) Score(ctx context.Context, userID string, limit int) ([]recommend.Recommendation, error) {
	user, ok := c.profiles.Profile(userID)
	if !ok {
		return nil, nil
	}

	acc := accumulator{}
	for _, done := range user.Behavior.Completed {
		if done.Rating < recommend.LikedRating {
			continue
		}
		for _, n := range c.index.TopSimilarContent(done.ContentID, c.cfg.Neighbors) {
			if n.Score > c.cfg.SimilarityThreshold {
				acc.add(n.ID, n.Score, recommend.ReasonSimilarContent)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	liked := user.LikedItems()
	for _, item := range c.catalog.Items() {
		if _, ok := liked[item.ID]; ok {
			continue
		}
		if fit := PreferenceFit(&user.Preferences, &item); fit > 0 {
			acc.add(item.ID, fit, recommend.ReasonMatchesPreferences)
		}
	}

	return acc.rank(limit, c.Category(), eligible(c.catalog, user.SeenItems()),
		func(score float64) float64 { return score }), nil
}

// PreferenceFit scores how well item matches stated preferences:
// category 0.3, difficulty 0.2, learning style 0.2 and goal/tag overlap up
// to 0.3.
func PreferenceFit(prefs *recommend.Preferences, item *recommend.ContentItem) float64 {
	var score float64
	for _, cat := range prefs.Categories {
		if cat == item.Category {
			score += categoryFit
			break
		}
	}
	if prefs.Difficulty == item.Difficulty {
		score += difficultyFit
	}
	if StyleMatches(prefs.LearningStyle, item) {
		score += styleFit
	}
	if ratio := goalTagRatio(prefs.Goals, item.Tags); ratio > 0 {
		score += goalFit * ratio
	}
	return score
}

// StyleMatches reports whether item suits a learning style.
func StyleMatches(style recommend.LearningStyle, item *recommend.ContentItem) bool {
	switch style {
	case recommend.StyleVisual:
		return item.Features.HasVideo || item.Type == recommend.TypeVideo
	case recommend.StyleAuditory:
		return item.Features.HasAudio
	case recommend.StyleKinesthetic:
		return item.Features.HasInteractive
	case recommend.StyleReading:
		return item.Type == recommend.TypeArticle || item.Type == recommend.TypeBlog
	}
	return false
}

// goalTagRatio is the share of tags that textually overlap any goal, case
// insensitive, with containment in either direction.
func goalTagRatio(goals, tags []string) float64 {
	if len(goals) == 0 || len(tags) == 0 {
		return 0
	}
	lowered := make([]string, 0, len(goals))
	for _, g := range goals {
		if g = strings.ToLower(strings.TrimSpace(g)); g != "" {
			lowered = append(lowered, g)
		}
	}

	matching := 0
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		for _, g := range lowered {
			if strings.Contains(g, t) || strings.Contains(t, g) {
				matching++
				break
			}
		}
	}
	return float64(matching) / float64(len(tags))
}
