// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()

	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults"},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name:    "negative backup interval",
			mutate:  func(c *Config) { c.Storage.BackupInterval = -time.Minute },
			wantErr: "storage.backup_interval",
		},
		{
			name: "scheduled backups need a dir",
			mutate: func(c *Config) {
				c.Storage.BackupInterval = time.Hour
				c.Storage.BackupDir = ""
			},
			wantErr: "storage.backup_dir",
		},
		{
			name: "scheduled backups keep at least one",
			mutate: func(c *Config) {
				c.Storage.BackupInterval = time.Hour
				c.Storage.BackupKeep = 0
			},
			wantErr: "storage.backup_keep",
		},
		{
			name:    "negative index rebuild timeout",
			mutate:  func(c *Config) { c.Supervisor.IndexRebuildTimeout = -time.Second },
			wantErr: "supervisor.index_rebuild_timeout",
		},
		{
			name:    "storage path required",
			mutate:  func(c *Config) { c.Storage.Path = "" },
			wantErr: "storage.path",
		},
		{
			name: "in-memory storage needs no path",
			mutate: func(c *Config) {
				c.Storage.Path = ""
				c.Storage.InMemory = true
			},
		},
		{
			name: "events missing url",
			mutate: func(c *Config) {
				c.Events.Enabled = true
				c.Events.NATSURL = ""
			},
			wantErr: "events.nats_url",
		},
		{
			name: "events burst required with rate",
			mutate: func(c *Config) {
				c.Events.Enabled = true
				c.Events.IngestRate = 10
				c.Events.IngestBurst = 0
			},
			wantErr: "events.ingest_burst",
		},
		{
			name:    "recommend errors are prefixed",
			mutate:  func(c *Config) { c.Recommend.Limits.DefaultLimit = 0 },
			wantErr: "recommend: limits.default_limit",
		},
		{
			name:    "rate limit window",
			mutate:  func(c *Config) { c.Security.RateLimitWindow = 0 },
			wantErr: "security.rate_limit_window",
		},
		{
			name: "rate limit ignored when disabled",
			mutate: func(c *Config) {
				c.Security.RateLimitDisabled = true
				c.Security.RateLimitReqs = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"HTTP_PORT":               "server.port",
		"log_level":               "logging.level",
		"STORE_PATH":              "storage.path",
		"NATS_URL":                "events.nats_url",
		"RECOMMEND_DEFAULT_LIMIT": "recommend.limits.default_limit",
		"CORS_ORIGINS":            "security.cors_origins",
		"HOME":                    "",
		"PATH":                    "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

// Tests below use t.Setenv and cannot run in parallel.

func TestLoadFileLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
logging:
  level: debug
recommend:
  limits:
    default_limit: 20
  trending:
    window: 48h
storage:
  in_memory: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("env should override file: port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.Limits.DefaultLimit != 20 {
		t.Errorf("default_limit = %d, want 20", cfg.Recommend.Limits.DefaultLimit)
	}
	if cfg.Recommend.Limits.MaxLimit != 100 {
		t.Errorf("unset keys keep defaults: max_limit = %d, want 100", cfg.Recommend.Limits.MaxLimit)
	}
	if cfg.Recommend.Trending.Window != 48*time.Hour {
		t.Errorf("trending.window = %v, want 48h", cfg.Recommend.Trending.Window)
	}
	if !cfg.Storage.InMemory {
		t.Error("storage.in_memory should be true")
	}
	if got := cfg.Security.CORSOrigins; len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("cors_origins = %v", got)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("LoadFile() error = %v, want validation failure", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestFindConfigFileFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}
}
