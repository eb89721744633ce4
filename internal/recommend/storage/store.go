// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

// Package storage persists profiles and catalog entries in BadgerDB so the
// engine can be restored after a restart. Similarity is not stored; it is
// rebuilt from the restored data.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/learnrec/internal/recommend"
)

// Key prefixes.
const (
	prefixProfile = "profile:"
	prefixContent = "content:"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Config configures the Badger store.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory keeps everything in memory; useful for tests.
	InMemory bool `koanf:"in_memory"`

	// SyncWrites fsyncs every write.
	SyncWrites bool `koanf:"sync_writes"`

	// Compression enables Snappy block compression.
	Compression bool `koanf:"compression"`

	// GCInterval is how often value-log GC runs while served. Zero disables it.
	GCInterval time.Duration `koanf:"gc_interval"`

	// GCRatio is the discard ratio passed to RunValueLogGC.
	GCRatio float64 `koanf:"gc_ratio"`
}

// DefaultConfig returns production settings.
func DefaultConfig() Config {
	return Config{
		Path:        "/data/learnrec",
		SyncWrites:  true,
		Compression: true,
		GCInterval:  10 * time.Minute,
		GCRatio:     0.5,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return fmt.Errorf("storage path is required unless in_memory is set")
	}
	if c.GCInterval < 0 {
		return fmt.Errorf("gc_interval must be non-negative, got %v", c.GCInterval)
	}
	if c.GCInterval > 0 && (c.GCRatio <= 0 || c.GCRatio >= 1) {
		return fmt.Errorf("gc_ratio must be in (0, 1), got %f", c.GCRatio)
	}
	return nil
}

// Store is a recommend.Persister backed by BadgerDB.
type Store struct {
	db     *badger.DB
	config Config
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

var _ recommend.Persister = (*Store)(nil)

// Open opens (or creates) the database.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage config: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	if cfg.Compression {
		opts.Compression = options.Snappy
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{
		db:     db,
		config: cfg,
		logger: logger.With().Str("component", "storage").Logger(),
	}
	s.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("store opened")
	return s, nil
}

// SaveProfile writes the profile under its user id.
func (s *Store) SaveProfile(ctx context.Context, profile recommend.UserProfile) error {
	return s.put(ctx, prefixProfile+profile.UserID, profile)
}

// SaveContent writes the catalog entry under its item id.
func (s *Store) SaveContent(ctx context.Context, entry recommend.CatalogEntry) error {
	return s.put(ctx, prefixContent+entry.Item.ID, entry)
}

// LoadProfiles returns every stored profile.
func (s *Store) LoadProfiles(ctx context.Context) ([]recommend.UserProfile, error) {
	var out []recommend.UserProfile
	err := s.scan(ctx, prefixProfile, func(val []byte) error {
		var p recommend.UserProfile
		if err := json.Unmarshal(val, &p); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

// LoadContent returns every stored catalog entry.
func (s *Store) LoadContent(ctx context.Context) ([]recommend.CatalogEntry, error) {
	var out []recommend.CatalogEntry
	err := s.scan(ctx, prefixContent, func(val []byte) error {
		var e recommend.CatalogEntry
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

func (s *Store) put(ctx context.Context, key string, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// scan calls fn for every value under prefix. Values that fail to decode
// are logged and skipped.
func (s *Store) scan(ctx context.Context, prefix string, fn func(val []byte) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := it.Item()
			if err := item.Value(fn); err != nil {
				s.logger.Warn().Err(err).Str("key", string(item.Key())).Msg("skipping undecodable record")
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", prefix, err)
	}
	return nil
}

// Serve runs periodic value-log GC until ctx is done. It satisfies
// suture.Service.
func (s *Store) Serve(ctx context.Context) error {
	if s.config.GCInterval <= 0 || s.config.InMemory {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.GCInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runGC()
		}
	}
}

func (s *Store) runGC() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	for {
		// RunValueLogGC rewrites at most one file per call.
		if err := s.db.RunValueLogGC(s.config.GCRatio); err != nil {
			if !errors.Is(err, badger.ErrNoRewrite) {
				s.logger.Warn().Err(err).Msg("value log GC failed")
			}
			return
		}
	}
}

// Ping reports whether the database accepts reads.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return s.db.View(func(*badger.Txn) error { return nil })
}

// String identifies the service in supervisor logs.
func (s *Store) String() string { return "badger-store" }

// Close flushes and closes the database. It is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	s.logger.Info().Msg("store closed")
	return nil
}
