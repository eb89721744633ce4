// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

/*
Package cache provides a thread-safe LRU cache with per-entry TTL.

The recommendation engine memoizes ranked lists in it. Callers pass the
current time explicitly, so expiry is deterministic under an injected
clock.

# Usage

	c := cache.NewLRU[[]recommend.Recommendation](4096, 30*time.Second)
	c.Add(key, recs, time.Now())
	if recs, ok := c.Get(key, time.Now()); ok {
	    // serve recs
	}

# Complexity

Get, Add, Remove and eviction are O(1): a hash map indexes the nodes of a
doubly linked list ordered from most to least recently used. Expired
entries are removed lazily on access, or in bulk by CleanupExpired.
*/
package cache
