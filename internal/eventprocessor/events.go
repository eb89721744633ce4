// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package eventprocessor

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/learnrec/internal/recommend"
	"github.com/tomtom215/learnrec/internal/validation"
)

// BehaviorEvent is the envelope published on the behavior topic. Data is
// the JSON payload for Type.
type BehaviorEvent struct {
	EventID    string          `json:"event_id" validate:"required,max=64"`
	UserID     string          `json:"user_id" validate:"required,max=256"`
	Type       string          `json:"type" validate:"required"`
	Data       json.RawMessage `json:"data" validate:"required"`
	OccurredAt time.Time       `json:"occurred_at"`
	Source     string          `json:"source,omitempty"`
}

// NewBehaviorEvent wraps payload for userID with a fresh event ID.
func NewBehaviorEvent(userID string, payload recommend.EventPayload, source string) (*BehaviorEvent, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: nil payload", ErrInvalidMessage)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", payload.Kind(), err)
	}
	return &BehaviorEvent{
		EventID:    uuid.NewString(),
		UserID:     userID,
		Type:       string(payload.Kind()),
		Data:       data,
		OccurredAt: time.Now().UTC(),
		Source:     source,
	}, nil
}

// Payload decodes and validates the typed payload. Errors wrap
// recommend.ErrInvalidEvent.
func (e *BehaviorEvent) Payload() (recommend.EventKind, recommend.EventPayload, error) {
	kind, err := recommend.ParseEventKind(e.Type)
	if err != nil {
		return "", nil, err
	}
	payload, err := recommend.DecodeEventPayload(kind, e.Data)
	if err != nil {
		return "", nil, err
	}
	if err := recommend.CheckEvent(kind, payload); err != nil {
		return "", nil, err
	}
	return kind, payload, nil
}

// ContentEvent is the envelope published on the content topic.
type ContentEvent struct {
	EventID    string                `json:"event_id" validate:"required,max=64"`
	Item       recommend.ContentItem `json:"item"`
	OccurredAt time.Time             `json:"occurred_at"`
	Source     string                `json:"source,omitempty"`
}

// NewContentEvent wraps item with a fresh event ID.
func NewContentEvent(item recommend.ContentItem, source string) *ContentEvent {
	return &ContentEvent{
		EventID:    uuid.NewString(),
		Item:       item,
		OccurredAt: time.Now().UTC(),
		Source:     source,
	}
}

// MarshalEvent encodes an envelope.
func MarshalEvent(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// UnmarshalBehaviorEvent decodes and validates a behavior envelope.
func UnmarshalBehaviorEvent(data []byte) (*BehaviorEvent, error) {
	var e BehaviorEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: decode behavior event: %w", ErrInvalidMessage, err)
	}
	if verr := validation.ValidateStruct(&e); verr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMessage, verr)
	}
	return &e, nil
}

// UnmarshalContentEvent decodes a content envelope. The item itself is
// validated by the engine.
func UnmarshalContentEvent(data []byte) (*ContentEvent, error) {
	var e ContentEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: decode content event: %w", ErrInvalidMessage, err)
	}
	if e.EventID == "" {
		return nil, fmt.Errorf("%w: missing event_id", ErrInvalidMessage)
	}
	return &e, nil
}
