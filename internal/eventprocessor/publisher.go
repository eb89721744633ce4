// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package eventprocessor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/metrics"
)

// NewNATSPublisher creates a JetStream publisher. The stream must already
// exist; see StreamManager.
func NewNATSPublisher(cfg PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.ReconnectBufSize(cfg.ReconnectBuffer),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS publisher disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS publisher reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false,
			TrackMsgId:    cfg.EnableTrackMsgID,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}
	return pub, nil
}

// Publisher publishes learnrec envelopes through a circuit breaker.
type Publisher struct {
	publisher      message.Publisher
	circuitBreaker *gobreaker.CircuitBreaker[interface{}]
	topics         Topics

	mu     sync.RWMutex
	closed bool
}

// NewPublisher wraps pub. cb may be nil.
func NewPublisher(pub message.Publisher, cb *gobreaker.CircuitBreaker[interface{}], topics Topics) *Publisher {
	return &Publisher{
		publisher:      pub,
		circuitBreaker: cb,
		topics:         topics,
	}
}

// Publish sends msg to topic. The message UUID doubles as the JetStream
// Nats-Msg-Id for broker-side deduplication.
func (p *Publisher) Publish(ctx context.Context, topic string, msg *message.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	if msg.Metadata.Get(natsgo.MsgIdHdr) == "" {
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set(metadataCorrelationID, id)
	}
	msg.SetContext(ctx)

	var err error
	if p.circuitBreaker != nil {
		_, err = p.circuitBreaker.Execute(func() (interface{}, error) {
			return nil, p.publisher.Publish(topic, msg)
		})
	} else {
		err = p.publisher.Publish(topic, msg)
	}

	metrics.RecordEventPublished(topic, err)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// PublishBehavior publishes a behavior envelope.
func (p *Publisher) PublishBehavior(ctx context.Context, event *BehaviorEvent) error {
	data, err := MarshalEvent(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set(metadataEventType, event.Type)
	msg.Metadata.Set(metadataUserID, event.UserID)
	return p.Publish(ctx, p.topics.Behavior, msg)
}

// PublishContent publishes a content envelope.
func (p *Publisher) PublishContent(ctx context.Context, event *ContentEvent) error {
	data, err := MarshalEvent(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set(metadataContentID, event.Item.ID)
	return p.Publish(ctx, p.topics.Content, msg)
}

// Close shuts down the underlying publisher. It is safe to call twice.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}

// Watermill returns p as a message.Publisher for router output such as
// poison forwarding, so those publishes also pass the circuit breaker.
// Each forwarded message gets a fresh UUID, with the source UUID kept
// under original_uuid; JetStream would otherwise drop it as a duplicate
// of the message it was copied from. Closing the adapter closes p.
func (p *Publisher) Watermill() message.Publisher {
	return watermillPublisher{p: p}
}

type watermillPublisher struct {
	p *Publisher
}

func (w watermillPublisher) Publish(topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		fwd := message.NewMessage(watermill.NewUUID(), msg.Payload)
		for k, v := range msg.Metadata {
			if k != natsgo.MsgIdHdr {
				fwd.Metadata.Set(k, v)
			}
		}
		fwd.Metadata.Set(metadataOriginalUUID, msg.UUID)
		if err := w.p.Publish(msg.Context(), topic, fwd); err != nil {
			return err
		}
	}
	return nil
}

func (w watermillPublisher) Close() error {
	return w.p.Close()
}
