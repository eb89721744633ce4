// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package eventprocessor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/recommend"
)

func TestPublisher_PublishBehaviorMetadata(t *testing.T) {
	t.Parallel()

	rec := newRecordingPublisher()
	pub := NewPublisher(rec, nil, DefaultTopics())

	event, err := NewBehaviorEvent("alice", recommend.ViewedPayload{ContentID: "go-101"}, "test")
	if err != nil {
		t.Fatalf("NewBehaviorEvent error: %v", err)
	}
	ctx := logging.ContextWithCorrelationID(context.Background(), "corr-1")
	if err := pub.PublishBehavior(ctx, event); err != nil {
		t.Fatalf("PublishBehavior error: %v", err)
	}

	msgs := rec.messages[TopicBehavior]
	if len(msgs) != 1 {
		t.Fatalf("published = %d, want 1", len(msgs))
	}
	msg := msgs[0]
	if msg.UUID != event.EventID {
		t.Errorf("UUID = %s, want event id %s", msg.UUID, event.EventID)
	}
	if got := msg.Metadata.Get(natsgo.MsgIdHdr); got != event.EventID {
		t.Errorf("%s = %q, want %q", natsgo.MsgIdHdr, got, event.EventID)
	}
	if got := msg.Metadata.Get(metadataCorrelationID); got != "corr-1" {
		t.Errorf("correlation id = %q, want corr-1", got)
	}
	if got := msg.Metadata.Get(metadataUserID); got != "alice" {
		t.Errorf("user id = %q, want alice", got)
	}
	if got := msg.Metadata.Get(metadataEventType); got != "viewed" {
		t.Errorf("event type = %q, want viewed", got)
	}
}

func TestPublisher_Closed(t *testing.T) {
	t.Parallel()

	pub := NewPublisher(newRecordingPublisher(), nil, DefaultTopics())
	if err := pub.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}
	err := pub.PublishContent(context.Background(), NewContentEvent(recommend.ContentItem{ID: "x"}, "test"))
	if !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("error = %v, want ErrPublisherClosed", err)
	}
}

func TestPublisher_CircuitBreakerOpens(t *testing.T) {
	t.Parallel()

	rec := newRecordingPublisher()
	rec.err = errors.New("nats: connection closed")

	cfg := DefaultCircuitBreakerConfig()
	cfg.FailureThreshold = 2
	cfg.Timeout = time.Minute
	cb := NewCircuitBreaker(cfg, zerolog.Nop())
	pub := NewPublisher(rec, cb, DefaultTopics())

	for i := 0; i < 2; i++ {
		msg := message.NewMessage(watermill.NewUUID(), []byte("{}"))
		if err := pub.Publish(context.Background(), TopicContent, msg); err == nil {
			t.Fatal("expected publish error")
		}
	}
	if got := CircuitBreakerState(cb); got != "open" {
		t.Errorf("state = %q, want open", got)
	}
}

func TestPublisher_WatermillAdapter(t *testing.T) {
	t.Parallel()

	rec := newRecordingPublisher()
	adapter := NewPublisher(rec, nil, DefaultTopics()).Watermill()

	msgs := []*message.Message{
		message.NewMessage(watermill.NewUUID(), []byte("a")),
		message.NewMessage(watermill.NewUUID(), []byte("b")),
	}
	if err := adapter.Publish(TopicPoison, msgs...); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if rec.count(TopicPoison) != 2 {
		t.Fatalf("published = %d, want 2", rec.count(TopicPoison))
	}
	for i, fwd := range rec.messages[TopicPoison] {
		if fwd.UUID == msgs[i].UUID {
			t.Error("forwarded message should get a fresh UUID")
		}
		if fwd.Metadata.Get(metadataOriginalUUID) != msgs[i].UUID {
			t.Errorf("original_uuid = %q, want %q", fwd.Metadata.Get(metadataOriginalUUID), msgs[i].UUID)
		}
		if fwd.Metadata.Get(natsgo.MsgIdHdr) != fwd.UUID {
			t.Errorf("%s = %q, want the new UUID", natsgo.MsgIdHdr, fwd.Metadata.Get(natsgo.MsgIdHdr))
		}
	}
	if err := adapter.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if err := adapter.Publish(TopicPoison, msgs[0]); !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("error after close = %v, want ErrPublisherClosed", err)
	}
}
