// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package eventprocessor

import (
	"errors"
	"testing"

	"github.com/tomtom215/learnrec/internal/recommend"
)

func TestNewBehaviorEvent_RoundTrip(t *testing.T) {
	t.Parallel()

	event, err := NewBehaviorEvent("alice", recommend.CompletedPayload{ContentID: "go-101", Rating: 5}, "test")
	if err != nil {
		t.Fatalf("NewBehaviorEvent error: %v", err)
	}
	if event.EventID == "" {
		t.Error("EventID should be set")
	}
	if event.Type != string(recommend.EventCompleted) {
		t.Errorf("Type = %q, want %q", event.Type, recommend.EventCompleted)
	}

	data, err := MarshalEvent(event)
	if err != nil {
		t.Fatalf("MarshalEvent error: %v", err)
	}
	decoded, err := UnmarshalBehaviorEvent(data)
	if err != nil {
		t.Fatalf("UnmarshalBehaviorEvent error: %v", err)
	}

	kind, payload, err := decoded.Payload()
	if err != nil {
		t.Fatalf("Payload error: %v", err)
	}
	if kind != recommend.EventCompleted {
		t.Errorf("kind = %q, want completed", kind)
	}
	completed, ok := payload.(recommend.CompletedPayload)
	if !ok {
		t.Fatalf("payload type = %T, want CompletedPayload", payload)
	}
	if completed.ContentID != "go-101" || completed.Rating != 5 {
		t.Errorf("payload = %+v", completed)
	}
}

func TestNewBehaviorEvent_NilPayload(t *testing.T) {
	t.Parallel()

	if _, err := NewBehaviorEvent("alice", nil, "test"); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("error = %v, want ErrInvalidMessage", err)
	}
}

func TestUnmarshalBehaviorEvent_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing user", `{"event_id":"e1","type":"viewed","data":{"content_id":"a"}}`},
		{"missing event id", `{"user_id":"u","type":"viewed","data":{"content_id":"a"}}`},
		{"missing data", `{"event_id":"e1","user_id":"u","type":"viewed"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := UnmarshalBehaviorEvent([]byte(tt.data)); !errors.Is(err, ErrInvalidMessage) {
				t.Errorf("error = %v, want ErrInvalidMessage", err)
			}
		})
	}
}

func TestBehaviorEvent_PayloadUnknownKind(t *testing.T) {
	t.Parallel()

	event, err := UnmarshalBehaviorEvent([]byte(`{"event_id":"e1","user_id":"u","type":"shared","data":{}}`))
	if err != nil {
		t.Fatalf("UnmarshalBehaviorEvent error: %v", err)
	}
	if _, _, err := event.Payload(); !errors.Is(err, recommend.ErrInvalidEvent) {
		t.Errorf("Payload error = %v, want ErrInvalidEvent", err)
	}
}

func TestBehaviorEvent_PayloadValidated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"rating above range", `{"event_id":"e1","user_id":"u","type":"completed","data":{"content_id":"a","rating":9}}`},
		{"rating missing", `{"event_id":"e1","user_id":"u","type":"completed","data":{"content_id":"a"}}`},
		{"content id missing", `{"event_id":"e1","user_id":"u","type":"viewed","data":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			event, err := UnmarshalBehaviorEvent([]byte(tt.data))
			if err != nil {
				t.Fatalf("UnmarshalBehaviorEvent error: %v", err)
			}
			if _, _, err := event.Payload(); !errors.Is(err, recommend.ErrInvalidEvent) {
				t.Errorf("Payload error = %v, want ErrInvalidEvent", err)
			}
		})
	}
}

func TestContentEvent_RoundTrip(t *testing.T) {
	t.Parallel()

	item := recommend.ContentItem{
		ID:         "go-101",
		Title:      "Go Basics",
		Category:   "programming",
		Difficulty: recommend.DifficultyBeginner,
		Type:       recommend.TypeCourse,
	}
	data, err := MarshalEvent(NewContentEvent(item, "test"))
	if err != nil {
		t.Fatalf("MarshalEvent error: %v", err)
	}
	decoded, err := UnmarshalContentEvent(data)
	if err != nil {
		t.Fatalf("UnmarshalContentEvent error: %v", err)
	}
	if decoded.Item.ID != "go-101" || decoded.Item.Category != "programming" {
		t.Errorf("Item = %+v", decoded.Item)
	}
}

func TestUnmarshalContentEvent_MissingID(t *testing.T) {
	t.Parallel()

	if _, err := UnmarshalContentEvent([]byte(`{"item":{"id":"x"}}`)); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("error = %v, want ErrInvalidMessage", err)
	}
}
