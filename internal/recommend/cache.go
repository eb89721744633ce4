// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/learnrec/internal/cache"
	"github.com/tomtom215/learnrec/internal/metrics"
)

// responseCache memoizes recommendation lists. Keys embed the engine
// generation, so entries from before a mutation are never served; they
// age out through TTL or LRU eviction.
type responseCache struct {
	lru *cache.LRU[[]Recommendation]
}

func newResponseCache(ttl time.Duration, maxEntries int) *responseCache {
	return &responseCache{lru: cache.NewLRU[[]Recommendation](maxEntries, ttl)}
}

func cacheKey(strategy, userID string, limit int, generation uint64) string {
	return fmt.Sprintf("%s|%d|%d|%s", strategy, generation, limit, userID)
}

func (c *responseCache) get(key string, now time.Time) ([]Recommendation, bool) {
	recs, ok := c.lru.Get(key, now)
	if !ok {
		metrics.RecommendCacheMisses.Inc()
		return nil, false
	}
	metrics.RecommendCacheHits.Inc()
	return cloneRecommendations(recs), true
}

func (c *responseCache) put(key string, recs []Recommendation, now time.Time) {
	c.lru.Add(key, cloneRecommendations(recs), now)
}

func (c *responseCache) stats() (hits, misses int64, entries int) {
	s := c.lru.Stats()
	return s.Hits, s.Misses, s.Size
}

func cloneRecommendations(in []Recommendation) []Recommendation {
	out := make([]Recommendation, len(in))
	copy(out, in)
	return out
}
