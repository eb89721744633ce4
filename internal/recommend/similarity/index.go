// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package similarity

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/metrics"
	"github.com/tomtom215/learnrec/internal/recommend"
)

// Matrix names used in logs and metrics.
const (
	MatrixUsers   = "users"
	MatrixContent = "content"
)

// pairKey identifies an unordered pair; lo < hi always.
type pairKey struct {
	lo, hi string
}

func keyOf(a, b string) pairKey {
	if a < b {
		return pairKey{lo: a, hi: b}
	}
	return pairKey{lo: b, hi: a}
}

// entry is one cached score with the versions of both endpoints it was
// computed from.
type entry struct {
	score float64
	loVer uint64
	hiVer uint64
}

// covers reports whether e was computed from data at least as new as o.
func (e entry) covers(o entry) bool {
	return e.loVer >= o.loVer && e.hiVer >= o.hiVer
}

// matrix stores each unordered pair once, which makes sim(a,b) == sim(b,a)
// hold by construction. Self pairs are never stored.
type matrix struct {
	pairs map[pairKey]entry
	adj   map[string]map[string]struct{}
}

func newMatrix() *matrix {
	return &matrix{
		pairs: make(map[pairKey]entry),
		adj:   make(map[string]map[string]struct{}),
	}
}

func (m *matrix) put(k pairKey, e entry) {
	m.pairs[k] = e
	m.link(k.lo, k.hi)
	m.link(k.hi, k.lo)
}

func (m *matrix) link(from, to string) {
	row, ok := m.adj[from]
	if !ok {
		row = make(map[string]struct{})
		m.adj[from] = row
	}
	row[to] = struct{}{}
}

// source abstracts one entity kind for the shared recompute logic.
type source[T any] struct {
	name    string
	get     func(id string) (T, bool)
	all     func() []T
	id      func(*T) string
	version func(*T) uint64
	score   func(a, b *T) float64
}

// Index caches user-user and content-content similarity.
//
// Writers compute a whole row outside the lock and install it under the
// write lock, so readers see either the previous row or the new one. Each
// stored pair remembers the endpoint versions it was computed from; a write
// based on older data than what is stored is discarded, and a write that is
// newer on one side but older on the other is recomputed from the current
// store contents.
type Index struct {
	mu      sync.RWMutex
	users   *matrix
	content *matrix

	userSrc    source[recommend.UserProfile]
	contentSrc source[recommend.ContentItem]

	logger zerolog.Logger
}

var _ recommend.SimilarityIndex = (*Index)(nil)

// NewIndex creates an empty index reading from the given stores. Call
// Rebuild after restoring stores from persistence.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIndex(profiles recommend.ProfileReader, catalog recommend.CatalogReader, logger zerolog.Logger) *Index {
	return &Index{
		users:   newMatrix(),
		content: newMatrix(),
		userSrc: source[recommend.UserProfile]{
			name:    MatrixUsers,
			get:     profiles.Profile,
			all:     profiles.Profiles,
			id:      func(p *recommend.UserProfile) string { return p.UserID },
			version: func(p *recommend.UserProfile) uint64 { return p.Version },
			score:   User,
		},
		contentSrc: source[recommend.ContentItem]{
			name:    MatrixContent,
			get:     catalog.Item,
			all:     catalog.Items,
			id:      func(c *recommend.ContentItem) string { return c.ID },
			version: func(c *recommend.ContentItem) uint64 { return c.Version },
			score:   Content,
		},
		logger: logger.With().Str("component", "similarity").Logger(),
	}
}

// RecomputeUser refreshes every pair involving userID.
func (x *Index) RecomputeUser(ctx context.Context, userID string) {
	recomputeRow(ctx, x, func() *matrix { return x.users }, &x.userSrc, userID)
}

// RecomputeContent refreshes every pair involving contentID.
func (x *Index) RecomputeContent(ctx context.Context, contentID string) {
	recomputeRow(ctx, x, func() *matrix { return x.content }, &x.contentSrc, contentID)
}

type staged struct {
	key   pairKey
	entry entry
}

func recomputeRow[T any](ctx context.Context, x *Index, pick func() *matrix, src *source[T], id string) {
	start := time.Now()
	self, ok := src.get(id)
	if !ok {
		return
	}
	selfVer := src.version(&self)

	others := src.all()
	rows := make([]staged, 0, len(others))
	for i := range others {
		other := &others[i]
		otherID := src.id(other)
		if otherID == id {
			continue
		}
		rows = append(rows, staged{
			key:   keyOf(id, otherID),
			entry: newEntry(id, selfVer, otherID, src.version(other), src.score(&self, other)),
		})
	}

	stale := 0
	x.mu.Lock()
	m := pick()
	for _, s := range rows {
		cur, exists := m.pairs[s.key]
		switch {
		case !exists || s.entry.covers(cur):
			m.put(s.key, s.entry)
		case cur.covers(s.entry):
			stale++
		default:
			if fresh, ok := freshEntry(src, s.key); ok && fresh.covers(cur) {
				m.put(s.key, fresh)
			} else {
				stale++
			}
		}
	}
	pairs := len(m.pairs)
	x.mu.Unlock()

	metrics.RecordRecompute(src.name, time.Since(start), pairs, stale)
	logging.Enrich(ctx, x.logger).Debug().
		Str("matrix", src.name).
		Str("id", id).
		Int("pairs_written", len(rows)-stale).
		Int("stale", stale).
		Dur("duration", time.Since(start)).
		Msg("similarity row recomputed")
}

// freshEntry recomputes one pair from the current store contents. It is
// called with the index lock held; stores never call back into the index,
// so this cannot deadlock.
func freshEntry[T any](src *source[T], k pairKey) (entry, bool) {
	lo, ok := src.get(k.lo)
	if !ok {
		return entry{}, false
	}
	hi, ok := src.get(k.hi)
	if !ok {
		return entry{}, false
	}
	return entry{
		score: src.score(&lo, &hi),
		loVer: src.version(&lo),
		hiVer: src.version(&hi),
	}, true
}

func newEntry(aID string, aVer uint64, bID string, bVer uint64, score float64) entry {
	if aID < bID {
		return entry{score: score, loVer: aVer, hiVer: bVer}
	}
	return entry{score: score, loVer: bVer, hiVer: aVer}
}

// Rebuild recomputes every pair from a snapshot of the stores and merges
// the result into the live matrices. Pairs written by a concurrent
// recompute after the snapshot are newer than the rebuilt ones and win
// under the same version rules as RecomputeUser. Entities that appeared
// after the snapshot get their rows recomputed before Rebuild returns.
func (x *Index) Rebuild(ctx context.Context) {
	start := time.Now()
	users, userIDs := rebuildMatrix(&x.userSrc)
	content, contentIDs := rebuildMatrix(&x.contentSrc)

	x.mu.Lock()
	userStale := mergeMatrix(&x.userSrc, x.users, users)
	contentStale := mergeMatrix(&x.contentSrc, x.content, content)
	x.users = users
	x.content = content
	x.mu.Unlock()

	late := recomputeMissing(ctx, x, func() *matrix { return x.users }, &x.userSrc, userIDs)
	late += recomputeMissing(ctx, x, func() *matrix { return x.content }, &x.contentSrc, contentIDs)

	stats := x.Stats()
	metrics.SimilarityPairs.WithLabelValues(MatrixUsers).Set(float64(stats.UserPairs))
	metrics.SimilarityPairs.WithLabelValues(MatrixContent).Set(float64(stats.ContentPairs))
	logging.Enrich(ctx, x.logger).Info().
		Int("user_pairs", stats.UserPairs).
		Int("content_pairs", stats.ContentPairs).
		Int("superseded", userStale+contentStale).
		Int("late_entities", late).
		Dur("duration", time.Since(start)).
		Msg("similarity index rebuilt")
}

// rebuildMatrix computes every pair of the current snapshot and returns the
// ids it saw.
func rebuildMatrix[T any](src *source[T]) (*matrix, map[string]struct{}) {
	m := newMatrix()
	all := src.all()
	seen := make(map[string]struct{}, len(all))
	for i := range all {
		a := &all[i]
		aID := src.id(a)
		seen[aID] = struct{}{}
		for j := i + 1; j < len(all); j++ {
			b := &all[j]
			bID := src.id(b)
			if aID == bID {
				continue
			}
			m.put(keyOf(aID, bID), newEntry(aID, src.version(a), bID, src.version(b), src.score(a, b)))
		}
	}
	return m, seen
}

// mergeMatrix folds the live entries of cur into rebuilt and returns how
// many rebuilt entries were superseded. Must be called with the index lock
// held.
func mergeMatrix[T any](src *source[T], cur, rebuilt *matrix) int {
	superseded := 0
	for k, live := range cur.pairs {
		fresh, ok := rebuilt.pairs[k]
		switch {
		case !ok:
			// Written after the snapshot for an entity it did not contain.
			rebuilt.put(k, live)
		case fresh.covers(live):
			// rebuilt entry stands
		case live.covers(fresh):
			rebuilt.put(k, live)
			superseded++
		default:
			if e, ok := freshEntry(src, k); ok && e.covers(live) && e.covers(fresh) {
				rebuilt.put(k, e)
			} else {
				rebuilt.put(k, live)
			}
			superseded++
		}
	}
	return superseded
}

// recomputeMissing refreshes the rows of entities the rebuild snapshot did
// not contain and returns how many there were.
func recomputeMissing[T any](ctx context.Context, x *Index, pick func() *matrix, src *source[T], seen map[string]struct{}) int {
	all := src.all()
	n := 0
	for i := range all {
		id := src.id(&all[i])
		if _, ok := seen[id]; ok {
			continue
		}
		recomputeRow(ctx, x, pick, src, id)
		n++
	}
	return n
}

// UserScore returns the cached similarity of two users. ok is false for a
// self pair or a pair that has never been computed.
func (x *Index) UserScore(a, b string) (float64, bool) {
	return x.lookup(func() *matrix { return x.users }, a, b)
}

// ContentScore returns the cached similarity of two items.
func (x *Index) ContentScore(a, b string) (float64, bool) {
	return x.lookup(func() *matrix { return x.content }, a, b)
}

func (x *Index) lookup(pick func() *matrix, a, b string) (float64, bool) {
	if a == b {
		return 0, false
	}
	x.mu.RLock()
	defer x.mu.RUnlock()
	e, ok := pick().pairs[keyOf(a, b)]
	return e.score, ok
}

// TopSimilarUsers returns up to k users with positive similarity to userID,
// best first. k <= 0 returns all of them.
func (x *Index) TopSimilarUsers(userID string, k int) []recommend.Neighbor {
	return x.top(func() *matrix { return x.users }, userID, k)
}

// TopSimilarContent returns up to k items with positive similarity to
// contentID, best first.
func (x *Index) TopSimilarContent(contentID string, k int) []recommend.Neighbor {
	return x.top(func() *matrix { return x.content }, contentID, k)
}

func (x *Index) top(pick func() *matrix, id string, k int) []recommend.Neighbor {
	x.mu.RLock()
	m := pick()
	row := m.adj[id]
	out := make([]recommend.Neighbor, 0, len(row))
	for other := range row {
		if e := m.pairs[keyOf(id, other)]; e.score > 0 {
			out = append(out, recommend.Neighbor{ID: other, Score: e.score})
		}
	}
	x.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// Stats returns the number of stored pairs per matrix.
func (x *Index) Stats() recommend.IndexStats {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return recommend.IndexStats{
		UserPairs:    len(x.users.pairs),
		ContentPairs: len(x.content.pairs),
	}
}
