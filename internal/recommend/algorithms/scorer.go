// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package algorithms

import (
	"sort"

	"github.com/tomtom215/learnrec/internal/recommend"
)

// candidate accumulates contributions for one item. The reason of the
// largest single contribution wins.
type candidate struct {
	score  float64
	best   float64
	reason string
}

type accumulator map[string]*candidate

func (a accumulator) add(id string, contribution float64, reason string) {
	c, ok := a[id]
	if !ok {
		c = &candidate{}
		a[id] = c
	}
	c.score += contribution
	if contribution > c.best {
		c.best = contribution
		c.reason = reason
	}
}

// rank drops non-positive and excluded candidates, sorts the rest and
// truncates to limit. confidence maps a score into [0, 1].
func (a accumulator) rank(
	limit int,
	category recommend.Category,
	keep func(id string) bool,
	confidence func(score float64) float64,
) []recommend.Recommendation {
	out := make([]recommend.Recommendation, 0, len(a))
	for id, c := range a {
		if c.score <= 0 || !keep(id) {
			continue
		}
		out = append(out, recommend.Recommendation{
			ContentID:  id,
			Score:      c.score,
			Reason:     c.reason,
			Confidence: clamp01(confidence(c.score)),
			Category:   category,
		})
	}
	return sortAndTruncate(out, limit)
}

func sortAndTruncate(recs []recommend.Recommendation, limit int) []recommend.Recommendation {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].ContentID < recs[j].ContentID
	})
	if limit >= 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// eligible returns a filter that keeps catalog items the user has not seen.
func eligible(catalog recommend.CatalogReader, seen map[string]struct{}) func(string) bool {
	return func(id string) bool {
		if _, ok := seen[id]; ok {
			return false
		}
		_, ok := catalog.Item(id)
		return ok
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
