// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/learnrec/internal/config"
	"github.com/tomtom215/learnrec/internal/eventprocessor"
	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/supervisor"
	"github.com/tomtom215/learnrec/internal/supervisor/services"
)

// defaultNATSPort is used when the configured URL has no port.
const defaultNATSPort = 4222

// EventComponents holds the NATS side of ingestion. The ingestor runs as
// its own supervised service; EventComponents owns the connection,
// stream, publisher and optional embedded server.
type EventComponents struct {
	server    *eventprocessor.EmbeddedServer
	natsConn  *natsgo.Conn
	streams   *eventprocessor.StreamManager
	publisher *eventprocessor.Publisher
	ingestor  *eventprocessor.Ingestor

	mu      sync.Mutex
	running bool
}

// InitEvents wires NATS ingestion into sink. It returns nil when events
// are disabled.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func InitEvents(ctx context.Context, cfg *config.Config, sink eventprocessor.Sink, logger zerolog.Logger) (*EventComponents, error) {
	if !cfg.Events.Enabled {
		logging.Info().Msg("NATS event ingestion disabled (EVENTS_ENABLED=false)")
		return nil, nil
	}

	logging.Info().Msg("Initializing NATS event ingestion...")
	components := &EventComponents{}
	natsURL := cfg.Events.NATSURL

	if cfg.Events.EmbeddedServer {
		server, err := eventprocessor.NewEmbeddedServer(&eventprocessor.ServerConfig{
			Host:              "127.0.0.1",
			Port:              natsPort(cfg.Events.NATSURL),
			StoreDir:          cfg.Events.StoreDir,
			JetStreamMaxMem:   cfg.Events.MaxMemory,
			JetStreamMaxStore: cfg.Events.MaxStore,
		})
		if err != nil {
			return nil, err
		}
		components.server = server
		natsURL = server.ClientURL()
		logging.Info().Str("url", natsURL).Msg("Embedded NATS server started")
	} else {
		logging.Info().Str("url", natsURL).Msg("Using external NATS server")
	}

	nc, err := natsgo.Connect(natsURL,
		natsgo.Name("learnrec"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2*time.Second),
	)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	components.natsConn = nc

	topics := eventTopics(&cfg.Events)
	streamCfg := eventprocessor.DefaultStreamConfig()
	streamCfg.Subjects = []string{topics.Behavior, topics.Content, topics.Poison}

	streams, err := eventprocessor.NewStreamManager(nc, &streamCfg)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, err
	}
	components.streams = streams
	if _, err := streams.EnsureStream(ctx); err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("ensure stream exists: %w", err)
	}
	logging.Info().
		Str("name", streamCfg.Name).
		Strs("subjects", streamCfg.Subjects).
		Msg("JetStream stream ready")

	wmLogger := logging.NewWatermillLogger(logger)
	rawPublisher, err := eventprocessor.NewNATSPublisher(eventprocessor.DefaultPublisherConfig(natsURL), wmLogger)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, err
	}
	breakerCfg := eventprocessor.DefaultCircuitBreakerConfig()
	if cfg.Events.BreakerMaxFailures > 0 {
		breakerCfg.FailureThreshold = cfg.Events.BreakerMaxFailures
	}
	if cfg.Events.BreakerTimeout > 0 {
		breakerCfg.Timeout = cfg.Events.BreakerTimeout
	}
	components.publisher = eventprocessor.NewPublisher(
		rawPublisher,
		eventprocessor.NewCircuitBreaker(breakerCfg, logger),
		topics,
	)

	subCfg := subscriberConfig(&cfg.Events, natsURL, streamCfg.Name)
	newSubscriber := func() (message.Subscriber, error) {
		return eventprocessor.NewNATSSubscriber(&subCfg, wmLogger)
	}

	ingestor, err := eventprocessor.NewIngestor(ingestConfig(&cfg.Events), newSubscriber, components.publisher.Watermill(), sink, logger)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("create ingestor: %w", err)
	}
	components.ingestor = ingestor

	logging.Info().
		Str("behavior_topic", topics.Behavior).
		Str("content_topic", topics.Content).
		Str("poison_topic", topics.Poison).
		Int("retries", cfg.Events.RetryCount).
		Float64("ingest_rate", cfg.Events.IngestRate).
		Msg("NATS event ingestion initialized")
	return components, nil
}

// Start re-ensures the stream so an external server restart is healed on
// service restart.
func (c *EventComponents) Start(ctx context.Context) error {
	if c == nil {
		return errors.New("event components not initialized")
	}
	if _, err := c.streams.EnsureStream(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.running = true
	c.mu.Unlock()
	return nil
}

// Shutdown closes the publisher, the connection and the embedded server in
// that order. It is safe on nil and partially built components.
func (c *EventComponents) Shutdown(ctx context.Context) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing NATS publisher")
		}
	}
	if c.natsConn != nil {
		c.natsConn.Close()
	}
	if c.server != nil {
		if err := c.server.Shutdown(ctx); err != nil {
			logging.Warn().Err(err).Msg("Embedded NATS server did not stop cleanly")
		}
	}
	c.running = false
	logging.Info().Msg("NATS event components stopped")
}

// IsRunning reports whether Start has succeeded and Shutdown has not run.
func (c *EventComponents) IsRunning() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// HealthCheck reports connection and stream availability.
func (c *EventComponents) HealthCheck(ctx context.Context) error {
	if c == nil || c.natsConn == nil {
		return errors.New("nats not initialized")
	}
	if !c.natsConn.IsConnected() {
		return fmt.Errorf("nats connection %s", c.natsConn.Status())
	}
	if _, err := c.streams.Info(ctx); err != nil {
		return err
	}
	return nil
}

// Ingestor returns the supervised consumer.
func (c *EventComponents) Ingestor() *eventprocessor.Ingestor {
	if c == nil {
		return nil
	}
	return c.ingestor
}

// AddEventsToSupervisor adds the components and the ingestor to the
// messaging layer. It is a no-op when events are disabled.
func AddEventsToSupervisor(tree *supervisor.SupervisorTree, events *EventComponents, shutdownTimeout time.Duration) {
	if events == nil {
		return
	}
	tree.AddMessagingService(services.NewEventComponentsService(events, shutdownTimeout))
	tree.AddMessagingService(events.Ingestor())
	logging.Info().Msg("NATS event ingestion added to supervisor tree (messaging layer)")
}

func eventTopics(cfg *config.EventsConfig) eventprocessor.Topics {
	topics := eventprocessor.DefaultTopics()
	if cfg.BehaviorTopic != "" {
		topics.Behavior = cfg.BehaviorTopic
	}
	if cfg.ContentTopic != "" {
		topics.Content = cfg.ContentTopic
	}
	if cfg.PoisonTopic != "" {
		topics.Poison = cfg.PoisonTopic
	}
	return topics
}

func ingestConfig(cfg *config.EventsConfig) eventprocessor.IngestConfig {
	ing := eventprocessor.DefaultIngestConfig()
	ing.Topics = eventTopics(cfg)
	ing.Router.RetryMaxRetries = cfg.RetryCount
	if cfg.RetryInitialInterval > 0 {
		ing.Router.RetryInitialInterval = cfg.RetryInitialInterval
		ing.Router.RetryMaxInterval = cfg.RetryInitialInterval * 10
	}
	if cfg.CloseTimeout > 0 {
		ing.Router.CloseTimeout = cfg.CloseTimeout
	}
	ing.RatePerSecond = cfg.IngestRate
	if cfg.IngestBurst > 0 {
		ing.Burst = cfg.IngestBurst
	}
	return ing
}

func subscriberConfig(cfg *config.EventsConfig, natsURL, streamName string) eventprocessor.SubscriberConfig {
	sub := eventprocessor.DefaultSubscriberConfig(natsURL)
	sub.StreamName = streamName
	if cfg.DurableName != "" {
		sub.DurableName = cfg.DurableName
	}
	if cfg.QueueGroup != "" {
		sub.QueueGroup = cfg.QueueGroup
	}
	if cfg.Subscribers > 0 {
		sub.SubscribersCount = cfg.Subscribers
	}
	if cfg.CloseTimeout > 0 {
		sub.CloseTimeout = cfg.CloseTimeout
	}
	return sub
}

// natsPort extracts the port from a nats:// URL.
func natsPort(raw string) int {
	u, err := url.Parse(raw)
	if err != nil || u.Port() == "" {
		return defaultNATSPort
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil || port < 1 || port > 65535 {
		return defaultNATSPort
	}
	return port
}
