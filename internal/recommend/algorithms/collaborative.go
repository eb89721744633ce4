// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package algorithms

import (
	"context"

	"github.com/tomtom215/learnrec/internal/recommend"
)

// Collaborative recommends what the most similar users rated highly or
// favorited.
type Collaborative struct {
	profiles recommend.ProfileReader
	catalog  recommend.CatalogReader
	index    recommend.SimilarityIndex
	cfg      recommend.CollaborativeConfig
}

var _ recommend.Scorer = (*Collaborative)(nil)

// NewCollaborative creates a collaborative scorer.
func NewCollaborative(
	profiles recommend.ProfileReader,
	catalog recommend.CatalogReader,
	index recommend.SimilarityIndex,
	cfg recommend.CollaborativeConfig,
) *Collaborative {
	return &Collaborative{profiles: profiles, catalog: catalog, index: index, cfg: cfg}
}

// Name returns "collaborative".
func (c *Collaborative) Name() string { return "collaborative" }

// Category returns recommend.CategoryCollaborative.
func (c *Collaborative) Category() recommend.Category { return recommend.CategoryCollaborative }

// Score ranks items liked by the user's nearest neighbours. Each
// completion rated at least recommend.LikedRating contributes
// similarity x rating and each favorite similarity x FavoriteWeight.
// Contributions are summed across neighbours.
func (c *Collaborative) Score(ctx context.Context, userID string, limit int) ([]recommend.Recommendation, error) {
	user, ok := c.profiles.Profile(userID)
	if !ok {
		return nil, nil
	}

	acc := accumulator{}
	for _, n := range c.index.TopSimilarUsers(userID, c.cfg.Neighbors) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		other, ok := c.profiles.Profile(n.ID)
		if !ok {
			continue
		}
		for _, done := range other.Behavior.Completed {
			if done.Rating >= recommend.LikedRating {
				acc.add(done.ContentID, n.Score*float64(done.Rating), recommend.ReasonSimilarUserRated)
			}
		}
		for _, fav := range other.Behavior.Favorited {
			acc.add(fav.ContentID, n.Score*c.cfg.FavoriteWeight, recommend.ReasonSimilarUserFavorited)
		}
	}

	scale := c.cfg.ConfidenceScale
	return acc.rank(limit, c.Category(), eligible(c.catalog, user.SeenItems()),
		func(score float64) float64 { return score / scale }), nil
}
