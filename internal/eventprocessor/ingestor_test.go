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
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/learnrec/internal/recommend"
	"github.com/tomtom215/learnrec/internal/recommend/builder"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestNewIngestor_Validation(t *testing.T) {
	t.Parallel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	factory := func() (message.Subscriber, error) { return pubSub, nil }

	if _, err := NewIngestor(DefaultIngestConfig(), nil, nil, &fakeSink{}, zerolog.Nop()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil subscriber error = %v, want ErrInvalidConfig", err)
	}

	cfg := DefaultIngestConfig()
	cfg.Topics.Poison = ""
	if _, err := NewIngestor(cfg, factory, pubSub, &fakeSink{}, zerolog.Nop()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("empty topic error = %v, want ErrInvalidConfig", err)
	}

	ing, err := NewIngestor(DefaultIngestConfig(), factory, pubSub, &fakeSink{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewIngestor error: %v", err)
	}
	if ing.String() != "event-ingestor" {
		t.Errorf("String() = %q", ing.String())
	}
}

func TestIngestor_EndToEnd(t *testing.T) {
	t.Parallel()

	engine, err := builder.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, watermill.NopLogger{})
	defer pubSub.Close()

	cfg := DefaultIngestConfig()
	cfg.Router.CloseTimeout = time.Second
	cfg.Router.RetryMaxRetries = 0
	factory := func() (message.Subscriber, error) { return pubSub, nil }
	ing, err := NewIngestor(cfg, factory, pubSub, engine, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewIngestor error: %v", err)
	}

	poisoned, err := pubSub.Subscribe(context.Background(), TopicPoison)
	if err != nil {
		t.Fatalf("Subscribe poison error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ing.Serve(ctx) }()

	select {
	case <-ing.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("ingestor did not become ready")
	}

	publisher := NewPublisher(pubSub, nil, DefaultTopics())
	items := []recommend.ContentItem{
		{ID: "go-101", Category: "programming", Difficulty: recommend.DifficultyBeginner, Type: recommend.TypeCourse, Popularity: 10},
		{ID: "go-201", Category: "programming", Difficulty: recommend.DifficultyIntermediate, Type: recommend.TypeCourse, Popularity: 5},
	}
	for _, item := range items {
		if err := publisher.PublishContent(ctx, NewContentEvent(item, "test")); err != nil {
			t.Fatalf("PublishContent error: %v", err)
		}
	}
	event, err := NewBehaviorEvent("alice", recommend.CompletedPayload{ContentID: "go-101", Rating: 5}, "test")
	if err != nil {
		t.Fatalf("NewBehaviorEvent error: %v", err)
	}
	if err := publisher.PublishBehavior(ctx, event); err != nil {
		t.Fatalf("PublishBehavior error: %v", err)
	}

	bad := message.NewMessage(watermill.NewUUID(), []byte(`{"event_id":"x","user_id":"bob","type":"completed","data":{"content_id":"go-101","rating":0}}`))
	if err := pubSub.Publish(TopicBehavior, bad); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	waitFor(t, 5*time.Second, func() bool {
		s := engine.Stats()
		return s.Content == 2 && s.Profiles == 1
	})

	select {
	case msg := <-poisoned:
		msg.Ack()
		if msg.UUID != bad.UUID {
			t.Errorf("poisoned UUID = %s, want %s", msg.UUID, bad.UUID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("invalid event was not poisoned")
	}

	profile, err := engine.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if len(profile.Behavior.Completed) != 1 {
		t.Errorf("completed = %d, want 1", len(profile.Behavior.Completed))
	}
	if _, err := engine.GetProfile(ctx, "bob"); !errors.Is(err, recommend.ErrNotFound) {
		t.Errorf("bob profile error = %v, want ErrNotFound", err)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	stats := ing.Stats()
	if stats.Applied != 3 || stats.Poisoned != 1 {
		t.Errorf("Stats = %+v, want 3 applied and 1 poisoned", stats)
	}
}
