// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

// Package config loads learnrec configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Storage    StorageConfig    `koanf:"storage"`
	Events     EventsConfig     `koanf:"events"`
	Recommend  recommend.Config `koanf:"recommend"`
	Security   SecurityConfig   `koanf:"security"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig configures the global zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// StorageConfig configures the Badger snapshot store.
type StorageConfig struct {
	// Enabled turns on write-through persistence and restore at startup.
	Enabled     bool          `koanf:"enabled"`
	Path        string        `koanf:"path"`
	InMemory    bool          `koanf:"in_memory"`
	SyncWrites  bool          `koanf:"sync_writes"`
	Compression bool          `koanf:"compression"`
	GCInterval  time.Duration `koanf:"gc_interval"`
	GCRatio     float64       `koanf:"gc_ratio"`

	// Periodic snapshots. BackupInterval zero disables them.
	BackupDir      string        `koanf:"backup_dir"`
	BackupInterval time.Duration `koanf:"backup_interval"`
	BackupKeep     int           `koanf:"backup_keep"`
	BackupMaxAge   time.Duration `koanf:"backup_max_age"`
}

// EventsConfig configures NATS ingestion of behavior and content events.
type EventsConfig struct {
	Enabled        bool   `koanf:"enabled"`
	NATSURL        string `koanf:"nats_url"`
	EmbeddedServer bool   `koanf:"embedded_server"`
	StoreDir       string `koanf:"store_dir"`
	MaxMemory      int64  `koanf:"max_memory"`
	MaxStore       int64  `koanf:"max_store"`

	BehaviorTopic string `koanf:"behavior_topic"`
	ContentTopic  string `koanf:"content_topic"`
	PoisonTopic   string `koanf:"poison_topic"`
	DurableName   string `koanf:"durable_name"`
	QueueGroup    string `koanf:"queue_group"`
	Subscribers   int    `koanf:"subscribers"`

	// Router middleware.
	RetryCount           int           `koanf:"retry_count"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	CloseTimeout         time.Duration `koanf:"close_timeout"`

	// IngestRate bounds applied events per second (and therefore similarity
	// recomputes). Zero means unlimited.
	IngestRate  float64 `koanf:"ingest_rate"`
	IngestBurst int     `koanf:"ingest_burst"`

	// Publisher circuit breaker.
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// SecurityConfig holds HTTP abuse protections. Authentication is out of
// scope.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// SupervisorConfig configures the suture tree.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`

	// IndexRebuildTimeout bounds one operator-requested similarity
	// rebuild.
	IndexRebuildTimeout time.Duration `koanf:"index_rebuild_timeout"`
}

// Validate returns the first invalid setting.
func (c *Config) Validate() error {
	if c.Supervisor.IndexRebuildTimeout < 0 {
		return fmt.Errorf("supervisor.index_rebuild_timeout must be non-negative, got %v", c.Supervisor.IndexRebuildTimeout)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	if c.Storage.Enabled && !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required when storage is enabled")
	}
	if c.Storage.BackupInterval < 0 {
		return fmt.Errorf("storage.backup_interval must be non-negative, got %v", c.Storage.BackupInterval)
	}
	if c.Storage.Enabled && c.Storage.BackupInterval > 0 {
		if c.Storage.BackupDir == "" {
			return fmt.Errorf("storage.backup_dir is required when backups are scheduled")
		}
		if c.Storage.BackupKeep < 1 {
			return fmt.Errorf("storage.backup_keep must be at least 1, got %d", c.Storage.BackupKeep)
		}
	}

	if err := c.Events.validate(); err != nil {
		return err
	}

	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %v", c.Security.RateLimitWindow)
		}
	}
	return nil
}

func (e *EventsConfig) validate() error {
	if !e.Enabled {
		return nil
	}
	if e.NATSURL == "" {
		return fmt.Errorf("events.nats_url is required when events are enabled")
	}
	if e.EmbeddedServer && e.StoreDir == "" {
		return fmt.Errorf("events.store_dir is required for the embedded server")
	}
	if e.BehaviorTopic == "" || e.ContentTopic == "" || e.PoisonTopic == "" {
		return fmt.Errorf("events topics must not be empty")
	}
	if e.Subscribers < 1 {
		return fmt.Errorf("events.subscribers must be positive, got %d", e.Subscribers)
	}
	if e.RetryCount < 0 {
		return fmt.Errorf("events.retry_count must be non-negative, got %d", e.RetryCount)
	}
	if e.IngestRate < 0 {
		return fmt.Errorf("events.ingest_rate must be non-negative, got %f", e.IngestRate)
	}
	if e.IngestRate > 0 && e.IngestBurst < 1 {
		return fmt.Errorf("events.ingest_burst must be positive when ingest_rate is set, got %d", e.IngestBurst)
	}
	return nil
}
