// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package recommend

import (
	"fmt"
	"time"
)

// Config contains all tunables of the recommendation engine. The defaults
// are the production formulas; changing them changes ranking behavior.
type Config struct {
	// Collaborative configures user-neighbourhood scoring.
	Collaborative CollaborativeConfig `json:"collaborative" koanf:"collaborative"`

	// ContentBased configures item-similarity and preference scoring.
	ContentBased ContentBasedConfig `json:"content_based" koanf:"content_based"`

	// Trending configures the recency boost.
	Trending TrendingConfig `json:"trending" koanf:"trending"`

	// Fusion configures hybrid weights and the personalized split.
	Fusion FusionConfig `json:"fusion" koanf:"fusion"`

	// Limits bounds request sizes.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Cache configures the response cache.
	Cache CacheConfig `json:"cache" koanf:"cache"`
}

// CollaborativeConfig tunes collaborative filtering.
type CollaborativeConfig struct {
	// Neighbors is how many similar users are consulted.
	Neighbors int `json:"neighbors" koanf:"neighbors"`

	// FavoriteWeight is the rating-equivalent of a favorite.
	FavoriteWeight float64 `json:"favorite_weight" koanf:"favorite_weight"`

	// ConfidenceScale divides the accumulated score to obtain confidence.
	ConfidenceScale float64 `json:"confidence_scale" koanf:"confidence_scale"`
}

// ContentBasedConfig tunes content-based filtering.
type ContentBasedConfig struct {
	// Neighbors is how many similar items are pulled per liked item. Only
	// the best Neighbors items above SimilarityThreshold contribute, so an
	// item with more qualifying neighbours is capped; raise it to widen the
	// similarity pass.
	Neighbors int `json:"neighbors" koanf:"neighbors"`

	// SimilarityThreshold is the exclusive lower bound for a similar item
	// to contribute.
	SimilarityThreshold float64 `json:"similarity_threshold" koanf:"similarity_threshold"`
}

// TrendingConfig tunes the trending scorer.
type TrendingConfig struct {
	// Window is how recent LastUpdated must be for the boost.
	Window time.Duration `json:"window" koanf:"window"`

	// Boost multiplies popularity of recently updated items.
	Boost float64 `json:"boost" koanf:"boost"`
}

// FusionConfig tunes the fusion engine.
type FusionConfig struct {
	CollaborativeWeight float64 `json:"collaborative_weight" koanf:"collaborative_weight"`
	ContentWeight       float64 `json:"content_weight" koanf:"content_weight"`

	// HybridShare, PopularShare and TrendingShare split a personalized
	// request. Each share is rounded up.
	HybridShare   float64 `json:"hybrid_share" koanf:"hybrid_share"`
	PopularShare  float64 `json:"popular_share" koanf:"popular_share"`
	TrendingShare float64 `json:"trending_share" koanf:"trending_share"`

	// ConfidenceScale divides the hybrid total to obtain confidence.
	ConfidenceScale float64 `json:"confidence_scale" koanf:"confidence_scale"`
}

// LimitsConfig bounds request sizes.
type LimitsConfig struct {
	// DefaultLimit is used when a caller passes limit <= 0.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit clamps larger requests.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`

	// MaxNeighbors clamps similar-user and similar-content lookups.
	MaxNeighbors int `json:"max_neighbors" koanf:"max_neighbors"`
}

// CacheConfig configures the response cache. Entries are keyed by the
// engine's mutation generation, so any write makes older entries
// unreachable; TTL only bounds how long time-dependent results live.
type CacheConfig struct {
	Enabled    bool          `json:"enabled" koanf:"enabled"`
	TTL        time.Duration `json:"ttl" koanf:"ttl"`
	MaxEntries int           `json:"max_entries" koanf:"max_entries"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		Collaborative: CollaborativeConfig{
			Neighbors:       10,
			FavoriteWeight:  0.8,
			ConfidenceScale: 10,
		},
		ContentBased: ContentBasedConfig{
			Neighbors:           10,
			SimilarityThreshold: 0.5,
		},
		Trending: TrendingConfig{
			Window: 7 * 24 * time.Hour,
			Boost:  1.5,
		},
		Fusion: FusionConfig{
			CollaborativeWeight: 0.6,
			ContentWeight:       0.4,
			HybridShare:         0.6,
			PopularShare:        0.2,
			TrendingShare:       0.2,
			ConfidenceScale:     10,
		},
		Limits: LimitsConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
			MaxNeighbors: 50,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        time.Minute,
			MaxEntries: 10000,
		},
	}
}

// Validate returns the first invalid setting.
func (c *Config) Validate() error {
	if c.Collaborative.Neighbors < 1 {
		return fmt.Errorf("collaborative.neighbors must be positive, got %d", c.Collaborative.Neighbors)
	}
	if c.Collaborative.FavoriteWeight < 0 {
		return fmt.Errorf("collaborative.favorite_weight must be non-negative, got %f", c.Collaborative.FavoriteWeight)
	}
	if c.Collaborative.ConfidenceScale <= 0 {
		return fmt.Errorf("collaborative.confidence_scale must be positive, got %f", c.Collaborative.ConfidenceScale)
	}

	if c.ContentBased.Neighbors < 1 {
		return fmt.Errorf("content_based.neighbors must be positive, got %d", c.ContentBased.Neighbors)
	}
	if c.ContentBased.SimilarityThreshold < 0 || c.ContentBased.SimilarityThreshold > 1 {
		return fmt.Errorf("content_based.similarity_threshold must be in [0, 1], got %f", c.ContentBased.SimilarityThreshold)
	}

	if c.Trending.Window <= 0 {
		return fmt.Errorf("trending.window must be positive, got %v", c.Trending.Window)
	}
	if c.Trending.Boost < 1 {
		return fmt.Errorf("trending.boost must be at least 1, got %f", c.Trending.Boost)
	}

	f := c.Fusion
	if f.CollaborativeWeight < 0 || f.ContentWeight < 0 {
		return fmt.Errorf("fusion weights must be non-negative, got %f/%f", f.CollaborativeWeight, f.ContentWeight)
	}
	if f.HybridShare < 0 || f.PopularShare < 0 || f.TrendingShare < 0 {
		return fmt.Errorf("fusion shares must be non-negative, got %f/%f/%f", f.HybridShare, f.PopularShare, f.TrendingShare)
	}
	if f.HybridShare+f.PopularShare+f.TrendingShare <= 0 {
		return fmt.Errorf("fusion shares must not all be zero")
	}
	if f.ConfidenceScale <= 0 {
		return fmt.Errorf("fusion.confidence_scale must be positive, got %f", f.ConfidenceScale)
	}

	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit (%d) must be >= limits.default_limit (%d)", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.MaxNeighbors < 1 {
		return fmt.Errorf("limits.max_neighbors must be positive, got %d", c.Limits.MaxNeighbors)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive when cache is enabled, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a copy of the config. All fields are values.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// clampLimit applies DefaultLimit and MaxLimit.
func (c *Config) clampLimit(limit int) int {
	if limit <= 0 {
		return c.Limits.DefaultLimit
	}
	if limit > c.Limits.MaxLimit {
		return c.Limits.MaxLimit
	}
	return limit
}
