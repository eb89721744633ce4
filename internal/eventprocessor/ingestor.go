// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package eventprocessor

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/learnrec/internal/logging"
)

// Handler names registered on the router.
const (
	HandlerBehavior = "learnrec-behavior"
	HandlerContent  = "learnrec-content"
)

// SubscriberFactory opens a subscriber. The Watermill router closes its
// subscribers on shutdown, so every Serve needs a new one.
type SubscriberFactory func() (message.Subscriber, error)

// Ingestor consumes the behavior and content topics into a Sink. It is a
// suture service: each Serve builds a fresh Watermill router and
// subscriber, so a restart after failure resubscribes cleanly.
type Ingestor struct {
	config        IngestConfig
	newSubscriber SubscriberFactory
	poison        message.Publisher
	handlers      *Handlers
	logger        zerolog.Logger

	ready chan struct{}
}

// NewIngestor wires handlers for sink. poison may be nil, in which case
// rejected events are only logged.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIngestor(cfg IngestConfig, newSubscriber SubscriberFactory, poison message.Publisher, sink Sink, logger zerolog.Logger) (*Ingestor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if newSubscriber == nil {
		return nil, fmt.Errorf("%w: subscriber factory is required", ErrInvalidConfig)
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst)
	}
	cfg.Router.PoisonQueueTopic = cfg.Topics.Poison

	return &Ingestor{
		config:        cfg,
		newSubscriber: newSubscriber,
		poison:        poison,
		handlers:      NewHandlers(sink, poison, cfg.Topics.Poison, limiter, logger),
		logger:        logger.With().Str("component", "eventprocessor").Logger(),
		ready:         make(chan struct{}),
	}, nil
}

// Serve runs the router until ctx is cancelled.
func (i *Ingestor) Serve(ctx context.Context) error {
	router, err := NewRouter(&i.config.Router, i.poison, logging.NewWatermillLogger(i.logger))
	if err != nil {
		return err
	}
	subscriber, err := i.newSubscriber()
	if err != nil {
		return fmt.Errorf("open subscriber: %w", err)
	}
	router.AddConsumerHandler(HandlerBehavior, i.config.Topics.Behavior, subscriber, i.handlers.HandleBehavior)
	router.AddConsumerHandler(HandlerContent, i.config.Topics.Content, subscriber, i.handlers.HandleContent)

	go func() {
		select {
		case <-router.Running():
			i.markReady()
		case <-ctx.Done():
		}
	}()

	i.logger.Info().
		Str("behavior_topic", i.config.Topics.Behavior).
		Str("content_topic", i.config.Topics.Content).
		Msg("event ingestor starting")

	if err := router.Run(ctx); err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	return ctx.Err()
}

// Ready closes once the first router is subscribed to both topics.
func (i *Ingestor) Ready() <-chan struct{} {
	return i.ready
}

func (i *Ingestor) markReady() {
	select {
	case <-i.ready:
	default:
		close(i.ready)
	}
}

// Stats returns handler counters.
func (i *Ingestor) Stats() HandlerStats {
	return i.handlers.Stats()
}

// String implements fmt.Stringer for suture logs.
func (i *Ingestor) String() string {
	return "event-ingestor"
}
