// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/metrics"
	"github.com/tomtom215/learnrec/internal/recommend"
)

// Message metadata keys.
const (
	metadataCorrelationID = "correlation_id"
	metadataEventType     = "event_type"
	metadataUserID        = "user_id"
	metadataContentID     = "content_id"
	metadataOriginalUUID  = "original_uuid"
)

// Sink receives decoded events. *recommend.Engine implements it.
type Sink interface {
	RecordBehaviorEvent(ctx context.Context, userID string, kind recommend.EventKind, payload recommend.EventPayload) (recommend.UserProfile, error)
	RegisterContent(ctx context.Context, item recommend.ContentItem) (recommend.ContentItem, error)
}

// HandlerStats counts handler outcomes.
type HandlerStats struct {
	Applied  int64 `json:"applied"`
	Poisoned int64 `json:"poisoned"`
	Failed   int64 `json:"failed"`
}

// Handlers applies bus messages to a Sink.
type Handlers struct {
	sink        Sink
	poison      message.Publisher
	poisonTopic string
	limiter     *rate.Limiter
	logger      zerolog.Logger

	applied  atomic.Int64
	poisoned atomic.Int64
	failed   atomic.Int64
}

// NewHandlers creates the handlers. poison and limiter may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandlers(sink Sink, poison message.Publisher, poisonTopic string, limiter *rate.Limiter, logger zerolog.Logger) *Handlers {
	return &Handlers{
		sink:        sink,
		poison:      poison,
		poisonTopic: poisonTopic,
		limiter:     limiter,
		logger:      logger.With().Str("component", "eventprocessor").Logger(),
	}
}

// HandleBehavior applies one BehaviorEvent.
func (h *Handlers) HandleBehavior(msg *message.Message) error {
	ctx := h.messageContext(msg)
	topic := metadataTopic(msg, TopicBehavior)

	event, err := UnmarshalBehaviorEvent(msg.Payload)
	if err != nil {
		return h.reject(ctx, msg, topic, err)
	}
	kind, payload, err := event.Payload()
	if err != nil {
		return h.reject(ctx, msg, topic, err)
	}
	if err := h.wait(ctx); err != nil {
		return h.fail(ctx, topic, err)
	}
	if _, err := h.sink.RecordBehaviorEvent(ctx, event.UserID, kind, payload); err != nil {
		if isPermanent(err) {
			return h.reject(ctx, msg, topic, err)
		}
		return h.fail(ctx, topic, err)
	}

	h.applied.Add(1)
	metrics.RecordEventConsumed(topic, nil)
	logging.Enrich(ctx, h.logger).Debug().
		Str("event_id", event.EventID).
		Str("user_id", event.UserID).
		Str("type", event.Type).
		Msg("behavior event applied")
	return nil
}

// HandleContent applies one ContentEvent.
func (h *Handlers) HandleContent(msg *message.Message) error {
	ctx := h.messageContext(msg)
	topic := metadataTopic(msg, TopicContent)

	event, err := UnmarshalContentEvent(msg.Payload)
	if err != nil {
		return h.reject(ctx, msg, topic, err)
	}
	if err := h.wait(ctx); err != nil {
		return h.fail(ctx, topic, err)
	}
	if _, err := h.sink.RegisterContent(ctx, event.Item); err != nil {
		if isPermanent(err) {
			return h.reject(ctx, msg, topic, err)
		}
		return h.fail(ctx, topic, err)
	}

	h.applied.Add(1)
	metrics.RecordEventConsumed(topic, nil)
	logging.Enrich(ctx, h.logger).Debug().
		Str("event_id", event.EventID).
		Str("content_id", event.Item.ID).
		Msg("content event applied")
	return nil
}

// Stats returns handler counters.
func (h *Handlers) Stats() HandlerStats {
	return HandlerStats{
		Applied:  h.applied.Load(),
		Poisoned: h.poisoned.Load(),
		Failed:   h.failed.Load(),
	}
}

func (h *Handlers) wait(ctx context.Context) error {
	if h.limiter == nil {
		return nil
	}
	return h.limiter.Wait(ctx)
}

// reject forwards msg to the poison topic and acknowledges it. If the
// forward fails the error is returned so the message is redelivered.
func (h *Handlers) reject(ctx context.Context, msg *message.Message, topic string, cause error) error {
	metrics.RecordEventConsumed(topic, cause)
	logging.Enrich(ctx, h.logger).Warn().Err(cause).
		Str("message_uuid", msg.UUID).
		Str("topic", topic).
		Msg("rejecting invalid event")

	if h.poison == nil || h.poisonTopic == "" {
		h.poisoned.Add(1)
		return nil
	}

	poisoned := msg.Copy()
	poisoned.Metadata.Set(middleware.ReasonForPoisonedKey, cause.Error())
	poisoned.Metadata.Set(middleware.PoisonedTopicKey, topic)
	if err := h.poison.Publish(h.poisonTopic, poisoned); err != nil {
		h.failed.Add(1)
		return fmt.Errorf("forward to poison topic: %w", err)
	}
	h.poisoned.Add(1)
	return nil
}

func (h *Handlers) fail(ctx context.Context, topic string, err error) error {
	h.failed.Add(1)
	metrics.RecordEventConsumed(topic, err)
	logging.Enrich(ctx, h.logger).Warn().Err(err).Str("topic", topic).Msg("event processing failed")
	return err
}

// messageContext carries the producer's correlation ID into logs.
func (h *Handlers) messageContext(msg *message.Message) context.Context {
	ctx := msg.Context()
	if id := msg.Metadata.Get(metadataCorrelationID); id != "" {
		ctx = logging.ContextWithCorrelationID(ctx, id)
	}
	return ctx
}

// isPermanent reports errors that no retry can fix.
func isPermanent(err error) bool {
	return errors.Is(err, ErrInvalidMessage) ||
		errors.Is(err, recommend.ErrInvalidEvent) ||
		errors.Is(err, recommend.ErrInvalidContent)
}

// metadataTopic returns the subscribed topic recorded by the router, or
// fallback when absent.
func metadataTopic(msg *message.Message, fallback string) string {
	if t := message.SubscribeTopicFromCtx(msg.Context()); t != "" {
		return t
	}
	return fallback
}
