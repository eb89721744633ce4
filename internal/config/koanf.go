// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/learnrec/internal/recommend"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/learnrec/config.yaml",
	"/etc/learnrec/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. They are applied first and
// overridden by the config file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8087,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Storage: StorageConfig{
			Enabled:     true,
			Path:        "/data/learnrec",
			SyncWrites:  true,
			Compression: true,
			GCInterval:  10 * time.Minute,
			GCRatio:     0.5,
			BackupDir:   "/data/learnrec-backups",
			BackupKeep:  7,
		},
		Events: EventsConfig{
			Enabled:              false, // HTTP ingestion works without a broker
			NATSURL:              "nats://127.0.0.1:4222",
			EmbeddedServer:       true,
			StoreDir:             "/data/nats/jetstream",
			MaxMemory:            256 << 20,
			MaxStore:             1 << 30,
			BehaviorTopic:        "learning.behavior",
			ContentTopic:         "learning.content",
			PoisonTopic:          "learning.poison",
			DurableName:          "learnrec-ingest",
			QueueGroup:           "learnrec",
			Subscribers:          2,
			RetryCount:           3,
			RetryInitialInterval: 100 * time.Millisecond,
			CloseTimeout:         30 * time.Second,
			IngestRate:           0,
			IngestBurst:          50,
			BreakerMaxFailures:   5,
			BreakerTimeout:       30 * time.Second,
		},
		Recommend: *recommend.DefaultConfig(),
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Supervisor: SupervisorConfig{
			FailureThreshold:    5,
			FailureDecay:        30,
			FailureBackoff:      15 * time.Second,
			ShutdownTimeout:     10 * time.Second,
			IndexRebuildTimeout: 10 * time.Minute,
		},
	}
}

// Load reads configuration with layered sources:
//  1. built-in defaults
//  2. optional YAML config file
//  3. environment variables (highest priority)
func Load() (*Config, error) {
	return load(findConfigFile())
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf
// paths. Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Storage
	"store_enabled":     "storage.enabled",
	"store_path":        "storage.path",
	"store_in_memory":   "storage.in_memory",
	"store_sync_writes": "storage.sync_writes",
	"store_compression": "storage.compression",
	"store_gc_interval": "storage.gc_interval",
	"store_gc_ratio":    "storage.gc_ratio",
	"backup_dir":        "storage.backup_dir",
	"backup_interval":   "storage.backup_interval",
	"backup_keep":       "storage.backup_keep",
	"backup_max_age":    "storage.backup_max_age",

	// Events
	"events_enabled":             "events.enabled",
	"nats_url":                   "events.nats_url",
	"nats_embedded":              "events.embedded_server",
	"nats_store_dir":             "events.store_dir",
	"nats_max_memory":            "events.max_memory",
	"nats_max_store":             "events.max_store",
	"events_behavior_topic":      "events.behavior_topic",
	"events_content_topic":       "events.content_topic",
	"events_poison_topic":        "events.poison_topic",
	"nats_durable_name":          "events.durable_name",
	"nats_queue_group":           "events.queue_group",
	"nats_subscribers":           "events.subscribers",
	"nats_router_retry_count":    "events.retry_count",
	"nats_router_retry_interval": "events.retry_initial_interval",
	"nats_router_close_timeout":  "events.close_timeout",
	"events_ingest_rate":         "events.ingest_rate",
	"events_ingest_burst":        "events.ingest_burst",
	"nats_breaker_max_failures":  "events.breaker_max_failures",
	"nats_breaker_timeout":       "events.breaker_timeout",

	// Recommendation engine
	"recommend_default_limit":        "recommend.limits.default_limit",
	"recommend_max_limit":            "recommend.limits.max_limit",
	"recommend_max_neighbors":        "recommend.limits.max_neighbors",
	"recommend_collab_neighbors":     "recommend.collaborative.neighbors",
	"recommend_content_neighbors":    "recommend.content_based.neighbors",
	"recommend_similarity_threshold": "recommend.content_based.similarity_threshold",
	"recommend_trending_window":      "recommend.trending.window",
	"recommend_trending_boost":       "recommend.trending.boost",
	"recommend_cache_enabled":        "recommend.cache.enabled",
	"recommend_cache_ttl":            "recommend.cache.ttl",
	"recommend_cache_max_entries":    "recommend.cache.max_entries",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Supervisor
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
	"index_rebuild_timeout":        "supervisor.index_rebuild_timeout",
}

// envTransformFunc maps an environment variable name to a koanf path, or
// returns "" to skip it.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
