// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

// Package algorithms implements the ranking strategies used by the
// recommendation engine.
//
// Each scorer implements recommend.Scorer and reads the profile store, the
// catalog and, where needed, the similarity index. Scorers never recommend
// an item the user has viewed or completed, only emit items present in the
// catalog, and order results by score descending with ties broken by
// content id.
//
//   - Collaborative: sums similarity x rating over the completions and
//     favorites of the most similar users.
//   - ContentBased: sums item similarity to highly rated completions and a
//     preference-fit score for every other catalog item.
//   - Popular: raw popularity.
//   - Trending: popularity boosted for recently updated items.
package algorithms
