// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package eventprocessor

import (
	"fmt"
	"time"
)

// Default topic and stream names.
const (
	TopicBehavior = "learning.behavior"
	TopicContent  = "learning.content"
	TopicPoison   = "learning.poison"

	DefaultStreamName = "LEARNING"
)

// Topics names the subjects used for ingestion.
type Topics struct {
	Behavior string
	Content  string
	Poison   string
}

// DefaultTopics returns the standard subjects.
func DefaultTopics() Topics {
	return Topics{
		Behavior: TopicBehavior,
		Content:  TopicContent,
		Poison:   TopicPoison,
	}
}

// Validate reports missing subjects.
func (t Topics) Validate() error {
	if t.Behavior == "" || t.Content == "" || t.Poison == "" {
		return fmt.Errorf("%w: topics must not be empty", ErrInvalidConfig)
	}
	if t.Behavior == t.Content {
		return fmt.Errorf("%w: behavior and content topics must differ", ErrInvalidConfig)
	}
	return nil
}

// ServerConfig configures the embedded NATS server.
type ServerConfig struct {
	Host              string
	Port              int // -1 picks a random port
	StoreDir          string
	JetStreamMaxMem   int64
	JetStreamMaxStore int64
}

// StreamConfig configures the JetStream stream holding all topics.
type StreamConfig struct {
	Name            string
	Subjects        []string
	MaxAge          time.Duration
	MaxBytes        int64
	MaxMsgs         int64
	DuplicateWindow time.Duration
	Replicas        int
}

// DefaultStreamConfig returns a single-replica stream over learning.>.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Name:            DefaultStreamName,
		Subjects:        []string{"learning.>"},
		MaxAge:          7 * 24 * time.Hour,
		MaxBytes:        -1,
		MaxMsgs:         -1,
		DuplicateWindow: 2 * time.Minute,
		Replicas:        1,
	}
}

// PublisherConfig configures the NATS publisher connection.
type PublisherConfig struct {
	URL              string
	MaxReconnects    int
	ReconnectWait    time.Duration
	ReconnectBuffer  int
	EnableTrackMsgID bool
}

// DefaultPublisherConfig returns production defaults.
func DefaultPublisherConfig(url string) PublisherConfig {
	return PublisherConfig{
		URL:              url,
		MaxReconnects:    -1,
		ReconnectWait:    2 * time.Second,
		ReconnectBuffer:  8 * 1024 * 1024,
		EnableTrackMsgID: true,
	}
}

// SubscriberConfig configures the durable JetStream subscriber.
type SubscriberConfig struct {
	URL              string
	StreamName       string
	DurableName      string
	QueueGroup       string
	SubscribersCount int
	AckWaitTimeout   time.Duration
	CloseTimeout     time.Duration
	MaxDeliver       int
	MaxAckPending    int
	MaxReconnects    int
	ReconnectWait    time.Duration
}

// DefaultSubscriberConfig returns production defaults.
func DefaultSubscriberConfig(url string) SubscriberConfig {
	return SubscriberConfig{
		URL:              url,
		StreamName:       DefaultStreamName,
		DurableName:      "learnrec-ingest",
		QueueGroup:       "learnrec",
		SubscribersCount: 2,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     30 * time.Second,
		MaxDeliver:       5,
		MaxAckPending:    1000,
		MaxReconnects:    -1,
		ReconnectWait:    2 * time.Second,
	}
}

// CircuitBreakerConfig configures the publisher circuit breaker.
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultCircuitBreakerConfig opens after five consecutive failures and
// probes again after thirty seconds.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             "nats-publisher",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// IngestConfig configures the event ingestor.
type IngestConfig struct {
	Topics Topics
	Router RouterConfig

	// RatePerSecond bounds events applied to the engine. Zero disables the
	// limiter.
	RatePerSecond float64
	Burst         int
}

// DefaultIngestConfig returns defaults with no rate limit.
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		Topics: DefaultTopics(),
		Router: DefaultRouterConfig(),
		Burst:  50,
	}
}

// Validate returns the first invalid setting.
func (c *IngestConfig) Validate() error {
	if err := c.Topics.Validate(); err != nil {
		return err
	}
	if c.RatePerSecond < 0 {
		return fmt.Errorf("%w: rate must be non-negative, got %f", ErrInvalidConfig, c.RatePerSecond)
	}
	if c.RatePerSecond > 0 && c.Burst < 1 {
		return fmt.Errorf("%w: burst must be positive when rate is set, got %d", ErrInvalidConfig, c.Burst)
	}
	if c.Router.RetryMaxRetries < 0 {
		return fmt.Errorf("%w: retry count must be non-negative, got %d", ErrInvalidConfig, c.Router.RetryMaxRetries)
	}
	return nil
}
