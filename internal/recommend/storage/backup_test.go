// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/learnrec/internal/recommend"
)

func TestStore_BackupAndLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := openTestStore(t, Config{InMemory: true})
	if err := src.SaveProfile(ctx, recommend.UserProfile{UserID: "alice"}); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if err := src.SaveContent(ctx, recommend.CatalogEntry{Item: recommend.ContentItem{ID: "go-101"}}); err != nil {
		t.Fatalf("SaveContent() error = %v", err)
	}

	var buf bytes.Buffer
	version, err := src.Backup(ctx, &buf)
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if version == 0 {
		t.Error("Backup() version should be non-zero after writes")
	}

	dst := openTestStore(t, Config{InMemory: true})
	if err := dst.LoadBackup(ctx, &buf); err != nil {
		t.Fatalf("LoadBackup() error = %v", err)
	}
	profiles, err := dst.LoadProfiles(ctx)
	if err != nil || len(profiles) != 1 || profiles[0].UserID != "alice" {
		t.Errorf("LoadProfiles() = %v, %v", profiles, err)
	}
	content, err := dst.LoadContent(ctx)
	if err != nil || len(content) != 1 || content[0].Item.ID != "go-101" {
		t.Errorf("LoadContent() = %v, %v", content, err)
	}
}

func TestStore_LoadBackupRejectsGarbage(t *testing.T) {
	t.Parallel()

	s := openTestStore(t, Config{InMemory: true})
	if err := s.LoadBackup(context.Background(), bytes.NewReader([]byte("not gzip"))); err == nil {
		t.Error("LoadBackup() should fail on non-gzip input")
	}
}

func TestStore_BackupClosed(t *testing.T) {
	t.Parallel()

	s, err := Open(Config{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	if _, err := s.Backup(context.Background(), &bytes.Buffer{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Backup() error = %v, want ErrClosed", err)
	}
	if err := s.LoadBackup(context.Background(), &bytes.Buffer{}); !errors.Is(err, ErrClosed) {
		t.Errorf("LoadBackup() error = %v, want ErrClosed", err)
	}
}

func TestSnapshotConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := SnapshotConfig{Dir: "/tmp/x", Interval: time.Hour, Keep: 3}
	tests := []struct {
		name    string
		mutate  func(*SnapshotConfig)
		wantErr bool
	}{
		{"valid", func(*SnapshotConfig) {}, false},
		{"missing dir", func(c *SnapshotConfig) { c.Dir = "" }, true},
		{"zero interval", func(c *SnapshotConfig) { c.Interval = 0 }, true},
		{"zero keep", func(c *SnapshotConfig) { c.Keep = 0 }, true},
		{"negative max age", func(c *SnapshotConfig) { c.MaxAge = -time.Hour }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotter_SnapshotAndRetention(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := openTestStore(t, Config{InMemory: true})
	if err := store.SaveProfile(ctx, recommend.UserProfile{UserID: "alice"}); err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(t.TempDir(), "snapshots")
	snap, err := NewSnapshotter(store, SnapshotConfig{Dir: dir, Interval: time.Hour, Keep: 2}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSnapshotter() error = %v", err)
	}

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	var paths []string
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		snap.now = func() time.Time { return at }
		p, err := snap.Snapshot(ctx)
		if err != nil {
			t.Fatalf("Snapshot() #%d error = %v", i, err)
		}
		paths = append(paths, p)
	}

	got, err := snap.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[0] != paths[2] || got[1] != paths[1] {
		t.Errorf("List() = %v, want newest two of %v", got, paths)
	}
	if _, err := os.Stat(paths[0]); !os.IsNotExist(err) {
		t.Errorf("oldest snapshot should be pruned, stat error = %v", err)
	}

	f, err := os.Open(paths[2])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	restored := openTestStore(t, Config{InMemory: true})
	if err := restored.LoadBackup(ctx, f); err != nil {
		t.Fatalf("LoadBackup(snapshot) error = %v", err)
	}
	if profiles, _ := restored.LoadProfiles(ctx); len(profiles) != 1 {
		t.Errorf("restored profiles = %d, want 1", len(profiles))
	}
}

func TestSelectForDeletion(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	files := []snapshotFile{
		{path: "d0", takenAt: now.Add(-1 * time.Hour)},
		{path: "d1", takenAt: now.Add(-24 * time.Hour)},
		{path: "d2", takenAt: now.Add(-48 * time.Hour)},
		{path: "d3", takenAt: now.Add(-96 * time.Hour)},
	}

	tests := []struct {
		name   string
		keep   int
		maxAge time.Duration
		want   []string
	}{
		{"keep count only", 2, 0, []string{"d2", "d3"}},
		{"age spares young files", 1, 50 * time.Hour, []string{"d3"}},
		{"keep all", 4, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := selectForDeletion(files, tt.keep, tt.maxAge, now)
			if len(got) != len(tt.want) {
				t.Fatalf("selectForDeletion() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].path != tt.want[i] {
					t.Errorf("[%d] = %s, want %s", i, got[i].path, tt.want[i])
				}
			}
		})
	}
}

func TestListSnapshots_IgnoresForeignFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{
		"learnrec-20260501T100000Z.bak.gz",
		"learnrec-garbage.bak.gz",
		"notes.txt",
		"learnrec-20260501T110000Z.bak.gz.tmp",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := listSnapshots(dir)
	if err != nil {
		t.Fatalf("listSnapshots() error = %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0].path) != "learnrec-20260501T100000Z.bak.gz" {
		t.Errorf("listSnapshots() = %v", files)
	}
}
