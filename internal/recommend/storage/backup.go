// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package storage

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Snapshot file naming.
const (
	snapshotPrefix     = "learnrec-"
	snapshotSuffix     = ".bak.gz"
	snapshotTimeLayout = "20060102T150405Z"

	// loadMaxPendingWrites bounds memory while loading a backup.
	loadMaxPendingWrites = 256
)

// Backup writes a gzip-compressed full backup of the database to w and
// returns the version it covers.
func (s *Store) Backup(ctx context.Context, w io.Writer) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}

	gz := gzip.NewWriter(w)
	version, err := s.db.Backup(gz, 0)
	if err != nil {
		_ = gz.Close()
		return 0, fmt.Errorf("backup BadgerDB: %w", err)
	}
	if err := gz.Close(); err != nil {
		return 0, fmt.Errorf("flush backup: %w", err)
	}
	return version, nil
}

// LoadBackup merges a backup written by Backup into the database. Keys in
// the backup overwrite existing ones; the engine must be restored again
// afterwards to see the data.
func (s *Store) LoadBackup(ctx context.Context, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer gz.Close()

	if err := s.db.Load(gz, loadMaxPendingWrites); err != nil {
		return fmt.Errorf("load backup: %w", err)
	}
	s.logger.Info().Msg("backup loaded")
	return nil
}

// SnapshotConfig controls periodic snapshots.
type SnapshotConfig struct {
	// Dir receives snapshot files. Created if missing.
	Dir string

	// Interval between snapshots.
	Interval time.Duration

	// Keep is the number of newest snapshots always retained.
	Keep int

	// MaxAge removes snapshots older than this beyond the Keep newest.
	// Zero keeps them regardless of age.
	MaxAge time.Duration
}

// Validate checks the configuration.
func (c *SnapshotConfig) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("snapshot dir is required")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("snapshot interval must be positive, got %v", c.Interval)
	}
	if c.Keep < 1 {
		return fmt.Errorf("snapshot keep must be at least 1, got %d", c.Keep)
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("snapshot max age must be non-negative, got %v", c.MaxAge)
	}
	return nil
}

// Snapshotter writes periodic backups of a Store and prunes old ones. It
// is a suture.Service.
type Snapshotter struct {
	store  *Store
	config SnapshotConfig
	logger zerolog.Logger
	now    func() time.Time
}

// NewSnapshotter validates cfg and creates the snapshot directory.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotter(store *Store, cfg SnapshotConfig, logger zerolog.Logger) (*Snapshotter, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshotter requires a store")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &Snapshotter{
		store:  store,
		config: cfg,
		logger: logger.With().Str("component", "snapshotter").Logger(),
		now:    time.Now,
	}, nil
}

// Serve takes a snapshot every interval until ctx is done. Failures are
// logged and retried on the next tick.
func (s *Snapshotter) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Snapshot(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error().Err(err).Msg("snapshot failed")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (s *Snapshotter) String() string { return "store-snapshotter" }

// Snapshot writes one snapshot, then applies retention. It returns the
// path written.
func (s *Snapshotter) Snapshot(ctx context.Context) (string, error) {
	began := time.Now()
	name := snapshotPrefix + s.now().UTC().Format(snapshotTimeLayout) + snapshotSuffix
	final := filepath.Join(s.config.Dir, name)
	tmp := final + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	version, err := s.store.Backup(ctx, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("commit snapshot: %w", err)
	}

	removed, err := s.prune()
	if err != nil {
		s.logger.Warn().Err(err).Msg("snapshot retention failed")
	}
	s.logger.Info().
		Str("path", final).
		Uint64("version", version).
		Int("pruned", removed).
		Dur("duration", time.Since(began)).
		Msg("snapshot written")
	return final, nil
}

type snapshotFile struct {
	path    string
	takenAt time.Time
}

// List returns snapshots in the directory, newest first.
func (s *Snapshotter) List() ([]string, error) {
	files, err := listSnapshots(s.config.Dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.path
	}
	return out, nil
}

func (s *Snapshotter) prune() (int, error) {
	files, err := listSnapshots(s.config.Dir)
	if err != nil {
		return 0, err
	}
	victims := selectForDeletion(files, s.config.Keep, s.config.MaxAge, s.now())
	for _, f := range victims {
		if err := os.Remove(f.path); err != nil {
			return 0, fmt.Errorf("remove %s: %w", f.path, err)
		}
	}
	return len(victims), nil
}

// selectForDeletion keeps the keep newest files, plus any younger than
// maxAge when maxAge is set. files must be sorted newest first.
func selectForDeletion(files []snapshotFile, keep int, maxAge time.Duration, now time.Time) []snapshotFile {
	var out []snapshotFile
	for i, f := range files {
		if i < keep {
			continue
		}
		if maxAge > 0 && now.Sub(f.takenAt) <= maxAge {
			continue
		}
		out = append(out, f)
	}
	return out
}

func listSnapshots(dir string) ([]snapshotFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}
	var files []snapshotFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), snapshotSuffix)
		takenAt, err := time.Parse(snapshotTimeLayout, stamp)
		if err != nil {
			continue
		}
		files = append(files, snapshotFile{path: filepath.Join(dir, name), takenAt: takenAt})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].takenAt.After(files[j].takenAt) })
	return files, nil
}
