// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/metrics"
	"github.com/tomtom215/learnrec/internal/validation"
)

// Persister stores committed profiles and content. Engine writes through it
// after every successful mutation and reads it back in Restore. Similarity
// is never persisted; it is rebuilt from the restored stores.
type Persister interface {
	SaveProfile(ctx context.Context, profile UserProfile) error
	SaveContent(ctx context.Context, entry CatalogEntry) error
	LoadProfiles(ctx context.Context) ([]UserProfile, error)
	LoadContent(ctx context.Context) ([]CatalogEntry, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now for profile timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithPersister enables write-through persistence.
func WithPersister(p Persister) Option {
	return func(e *Engine) { e.persister = p }
}

// Engine owns the profile store and catalog, keeps the similarity index
// current on every mutation, and fuses scorer output into recommendations.
// It is safe for concurrent use.
//
// Mutations of the same user or the same item are serialized, and the
// similarity recompute they trigger completes before the call returns.
// Reads never block on mutations of other entities.
type Engine struct {
	config *Config
	logger zerolog.Logger
	now    func() time.Time

	profiles  *ProfileStore
	catalog   *Catalog
	index     SimilarityIndex
	persister Persister

	scorers  map[Category]Scorer
	scorerMu sync.RWMutex

	userLocks    *keyedLock
	contentLocks *keyedLock

	// generation increases on every committed mutation; cache keys embed it.
	generation atomic.Uint64
	cache      *responseCache

	requestCount atomic.Int64
	scorerErrors atomic.Int64
}

// NewEngine creates an engine with empty stores. Attach a similarity index
// with SetSimilarityIndex and scorers with RegisterScorer before serving.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:       cfg.Clone(),
		logger:       logger.With().Str("component", "recommend").Logger(),
		now:          time.Now,
		profiles:     NewProfileStore(),
		catalog:      NewCatalog(),
		scorers:      make(map[Category]Scorer),
		userLocks:    newKeyedLock(),
		contentLocks: newKeyedLock(),
	}
	if cfg.Cache.Enabled {
		e.cache = newResponseCache(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Profiles exposes the profile store for read-only collaborators.
func (e *Engine) Profiles() *ProfileStore { return e.profiles }

// Catalog exposes the catalog for read-only collaborators.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config { return e.config.Clone() }

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time { return e.now() }

// SetSimilarityIndex attaches the index kept current by mutations.
func (e *Engine) SetSimilarityIndex(idx SimilarityIndex) {
	e.index = idx
}

// RegisterScorer installs s for its category, replacing any previous scorer.
func (e *Engine) RegisterScorer(s Scorer) {
	e.scorerMu.Lock()
	defer e.scorerMu.Unlock()

	e.scorers[s.Category()] = s
	e.logger.Info().
		Str("scorer", s.Name()).
		Str("category", string(s.Category())).
		Msg("registered scorer")
}

func (e *Engine) scorer(c Category) Scorer {
	e.scorerMu.RLock()
	defer e.scorerMu.RUnlock()
	return e.scorers[c]
}

// UpsertProfile merges patch into the user's profile, creating a default
// profile if none exists. It fails only for an invalid patch or a done ctx.
func (e *Engine) UpsertProfile(ctx context.Context, userID string, patch *ProfilePatch) (UserProfile, error) {
	if userID == "" {
		return UserProfile{}, fmt.Errorf("%w: user id is required", ErrInvalidEvent)
	}
	if err := patch.Validate(); err != nil {
		return UserProfile{}, err
	}

	unlock, err := e.userLocks.Lock(ctx, userID)
	if err != nil {
		return UserProfile{}, err
	}
	defer unlock()

	profile := e.profiles.Upsert(userID, patch, e.now())
	e.afterProfileMutation(ctx, profile)

	logging.Enrich(ctx, e.logger).Debug().
		Str("user_id", userID).
		Uint64("version", profile.Version).
		Msg("profile upserted")
	return profile, nil
}

// RecordBehaviorEvent appends one behavior record to the user's profile,
// creating the profile if needed. Unknown kinds and payloads that do not
// match kind or fail validation return ErrInvalidEvent.
func (e *Engine) RecordBehaviorEvent(ctx context.Context, userID string, kind EventKind, payload EventPayload) (UserProfile, error) {
	profile, err := e.recordBehaviorEvent(ctx, userID, kind, payload)
	metrics.RecordBehaviorEvent(string(kind), err)
	return profile, err
}

func (e *Engine) recordBehaviorEvent(ctx context.Context, userID string, kind EventKind, payload EventPayload) (UserProfile, error) {
	if userID == "" {
		return UserProfile{}, fmt.Errorf("%w: user id is required", ErrInvalidEvent)
	}
	if err := CheckEvent(kind, payload); err != nil {
		return UserProfile{}, err
	}

	unlock, err := e.userLocks.Lock(ctx, userID)
	if err != nil {
		return UserProfile{}, err
	}
	defer unlock()

	profile := e.profiles.Append(userID, payload, e.now())
	e.afterProfileMutation(ctx, profile)

	logging.Enrich(ctx, e.logger).Debug().
		Str("user_id", userID).
		Str("kind", string(kind)).
		Uint64("version", profile.Version).
		Msg("behavior event recorded")
	return profile, nil
}

// afterProfileMutation must run while the user's lock is held.
func (e *Engine) afterProfileMutation(ctx context.Context, profile UserProfile) {
	if e.index != nil {
		e.index.RecomputeUser(ctx, profile.UserID)
	}
	e.generation.Add(1)
	metrics.ProfilesTotal.Set(float64(e.profiles.Len()))

	if e.persister != nil {
		if err := e.persister.SaveProfile(ctx, profile); err != nil {
			metrics.PersistErrors.WithLabelValues("profiles").Inc()
			logging.Enrich(ctx, e.logger).Error().Err(err).
				Str("user_id", profile.UserID).
				Msg("failed to persist profile")
		}
	}
}

// RegisterContent inserts or replaces item by id and returns the stored
// item with its assigned version.
func (e *Engine) RegisterContent(ctx context.Context, item ContentItem) (ContentItem, error) {
	stored, err := e.registerContent(ctx, item)
	metrics.RecordContentRegistration(err)
	return stored, err
}

func (e *Engine) registerContent(ctx context.Context, item ContentItem) (ContentItem, error) {
	if verr := validation.ValidateStruct(item); verr != nil {
		return ContentItem{}, fmt.Errorf("%w: %w", ErrInvalidContent, verr)
	}

	unlock, err := e.contentLocks.Lock(ctx, item.ID)
	if err != nil {
		return ContentItem{}, err
	}
	defer unlock()

	entry := e.catalog.Register(item)
	if e.index != nil {
		e.index.RecomputeContent(ctx, item.ID)
	}
	e.generation.Add(1)
	metrics.ContentTotal.Set(float64(e.catalog.Len()))

	if e.persister != nil {
		if err := e.persister.SaveContent(ctx, entry); err != nil {
			metrics.PersistErrors.WithLabelValues("content").Inc()
			logging.Enrich(ctx, e.logger).Error().Err(err).
				Str("content_id", item.ID).
				Msg("failed to persist content")
		}
	}

	logging.Enrich(ctx, e.logger).Debug().
		Str("content_id", item.ID).
		Uint64("version", entry.Item.Version).
		Msg("content registered")
	return entry.Item, nil
}

// GetProfile returns the stored profile or ErrNotFound.
func (e *Engine) GetProfile(_ context.Context, userID string) (UserProfile, error) {
	p, ok := e.profiles.Profile(userID)
	if !ok {
		return UserProfile{}, fmt.Errorf("profile %q: %w", userID, ErrNotFound)
	}
	return p, nil
}

// GetContent returns the stored item or ErrNotFound.
func (e *Engine) GetContent(_ context.Context, id string) (ContentItem, error) {
	item, ok := e.catalog.Item(id)
	if !ok {
		return ContentItem{}, fmt.Errorf("content %q: %w", id, ErrNotFound)
	}
	return item, nil
}

// ListContent returns every item in insertion order.
func (e *Engine) ListContent(_ context.Context) []ContentItem {
	return e.catalog.Items()
}

// GetSimilarContent returns the items most similar to id. Unknown ids
// return ErrNotFound.
func (e *Engine) GetSimilarContent(ctx context.Context, id string, k int) ([]Neighbor, error) {
	if _, err := e.GetContent(ctx, id); err != nil {
		return nil, err
	}
	if e.index == nil {
		return []Neighbor{}, nil
	}
	return e.index.TopSimilarContent(id, e.clampNeighbors(k)), nil
}

// GetSimilarUsers returns the users most similar to userID. Unknown users
// return ErrNotFound.
func (e *Engine) GetSimilarUsers(ctx context.Context, userID string, k int) ([]Neighbor, error) {
	if _, err := e.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	if e.index == nil {
		return []Neighbor{}, nil
	}
	return e.index.TopSimilarUsers(userID, e.clampNeighbors(k)), nil
}

func (e *Engine) clampNeighbors(k int) int {
	if k <= 0 {
		k = e.config.Limits.DefaultLimit
	}
	if k > e.config.Limits.MaxNeighbors {
		k = e.config.Limits.MaxNeighbors
	}
	return k
}

// Restore loads persisted profiles and content into the stores and
// rebuilds the similarity index. Without a persister it does nothing.
func (e *Engine) Restore(ctx context.Context) error {
	if e.persister == nil {
		return nil
	}
	start := time.Now()

	profiles, err := e.persister.LoadProfiles(ctx)
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	content, err := e.persister.LoadContent(ctx)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	e.profiles.Restore(profiles)
	e.catalog.Restore(content)
	if e.index != nil {
		e.index.Rebuild(ctx)
	}
	e.generation.Add(1)
	metrics.ProfilesTotal.Set(float64(e.profiles.Len()))
	metrics.ContentTotal.Set(float64(e.catalog.Len()))

	logging.Enrich(ctx, e.logger).Info().
		Int("profiles", len(profiles)).
		Int("content", len(content)).
		Dur("duration", time.Since(start)).
		Msg("engine state restored")
	return nil
}

// RebuildIndex recomputes every similarity row from the current stores.
// Rows refreshed by concurrent mutations while it runs are kept.
func (e *Engine) RebuildIndex(ctx context.Context) error {
	if e.index == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e.index.Rebuild(ctx)
	e.generation.Add(1)
	return ctx.Err()
}

// Stats is a point-in-time summary of engine state.
type Stats struct {
	Profiles     int        `json:"profiles"`
	Content      int        `json:"content"`
	Index        IndexStats `json:"index"`
	Generation   uint64     `json:"generation"`
	Requests     int64      `json:"requests"`
	ScorerErrors int64      `json:"scorer_errors"`
	CacheHits    int64      `json:"cache_hits"`
	CacheMisses  int64      `json:"cache_misses"`
	CacheEntries int        `json:"cache_entries"`
}

// Stats returns current engine statistics.
func (e *Engine) Stats() Stats {
	s := Stats{
		Profiles:     e.profiles.Len(),
		Content:      e.catalog.Len(),
		Generation:   e.generation.Load(),
		Requests:     e.requestCount.Load(),
		ScorerErrors: e.scorerErrors.Load(),
	}
	if e.index != nil {
		s.Index = e.index.Stats()
	}
	if e.cache != nil {
		s.CacheHits, s.CacheMisses, s.CacheEntries = e.cache.stats()
	}
	return s
}

// runScorer runs the scorer registered for c. A missing scorer or a
// scorer failure yields an empty list; only ctx errors are returned.
func (e *Engine) runScorer(ctx context.Context, c Category, userID string, limit int) ([]Recommendation, error) {
	s := e.scorer(c)
	if s == nil {
		return nil, nil
	}
	recs, err := s.Score(ctx, userID, limit)
	if err == nil {
		return recs, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return nil, err
	}
	e.scorerErrors.Add(1)
	metrics.ScorerErrors.WithLabelValues(s.Name()).Inc()
	logging.Enrich(ctx, e.logger).Warn().Err(err).
		Str("scorer", s.Name()).
		Str("user_id", userID).
		Msg("scorer failed, degrading to empty result")
	return nil, nil
}
