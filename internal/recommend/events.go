// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/learnrec/internal/validation"
)

// EventKind is the closed set of behavior events a profile accepts.
type EventKind string

// Event kinds.
const (
	EventViewed     EventKind = "viewed"
	EventCompleted  EventKind = "completed"
	EventFavorited  EventKind = "favorited"
	EventSearched   EventKind = "searched"
	EventInteracted EventKind = "interacted"
)

// EventKinds lists every accepted kind.
var EventKinds = []EventKind{EventViewed, EventCompleted, EventFavorited, EventSearched, EventInteracted}

// Valid reports whether k is a known event kind.
func (k EventKind) Valid() bool {
	switch k {
	case EventViewed, EventCompleted, EventFavorited, EventSearched, EventInteracted:
		return true
	}
	return false
}

// ParseEventKind converts s into an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	k := EventKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown event kind %q", ErrInvalidEvent, s)
	}
	return k, nil
}

// EventPayload is implemented only by the payload types in this file.
type EventPayload interface {
	Kind() EventKind
	appendTo(b *Behavior, now time.Time)
}

// ViewedPayload records a content view.
type ViewedPayload struct {
	ContentID    string    `json:"content_id" validate:"required,max=256"`
	DwellSeconds int       `json:"dwell_seconds" validate:"gte=0"`
	Timestamp    time.Time `json:"timestamp"`
}

// CompletedPayload records a finished item.
type CompletedPayload struct {
	ContentID string    `json:"content_id" validate:"required,max=256"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Timestamp time.Time `json:"timestamp"`
}

// FavoritedPayload records a favorite.
type FavoritedPayload struct {
	ContentID string    `json:"content_id" validate:"required,max=256"`
	Timestamp time.Time `json:"timestamp"`
}

// SearchedPayload records a search and the results that were opened.
type SearchedPayload struct {
	Query          string    `json:"query" validate:"required,max=1024"`
	ClickedResults []string  `json:"clicked_results" validate:"omitempty,dive,required"`
	Timestamp      time.Time `json:"timestamp"`
}

// InteractedPayload records a social interaction with an item.
type InteractedPayload struct {
	ContentID string    `json:"content_id" validate:"required,max=256"`
	Action    string    `json:"kind" validate:"required,max=64"`
	Timestamp time.Time `json:"timestamp"`
}

func (ViewedPayload) Kind() EventKind     { return EventViewed }
func (CompletedPayload) Kind() EventKind  { return EventCompleted }
func (FavoritedPayload) Kind() EventKind  { return EventFavorited }
func (SearchedPayload) Kind() EventKind   { return EventSearched }
func (InteractedPayload) Kind() EventKind { return EventInteracted }

func stamp(ts, now time.Time) time.Time {
	if ts.IsZero() {
		return now
	}
	return ts
}

func (p ViewedPayload) appendTo(b *Behavior, now time.Time) {
	b.Viewed = append(b.Viewed, ViewRecord{
		ContentID:    p.ContentID,
		Timestamp:    stamp(p.Timestamp, now),
		DwellSeconds: p.DwellSeconds,
	})
}

func (p CompletedPayload) appendTo(b *Behavior, now time.Time) {
	b.Completed = append(b.Completed, CompletionRecord{
		ContentID: p.ContentID,
		Timestamp: stamp(p.Timestamp, now),
		Rating:    p.Rating,
	})
}

func (p FavoritedPayload) appendTo(b *Behavior, now time.Time) {
	b.Favorited = append(b.Favorited, FavoriteRecord{
		ContentID: p.ContentID,
		Timestamp: stamp(p.Timestamp, now),
	})
}

func (p SearchedPayload) appendTo(b *Behavior, now time.Time) {
	b.Searches = append(b.Searches, SearchRecord{
		Query:          p.Query,
		Timestamp:      stamp(p.Timestamp, now),
		ClickedResults: cloneStrings(p.ClickedResults),
	})
}

func (p InteractedPayload) appendTo(b *Behavior, now time.Time) {
	b.Interactions = append(b.Interactions, InteractionRecord{
		ContentID: p.ContentID,
		Kind:      p.Action,
		Timestamp: stamp(p.Timestamp, now),
	})
}

// CheckEvent verifies that payload belongs to kind and passes validation.
func CheckEvent(kind EventKind, payload EventPayload) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown event kind %q", ErrInvalidEvent, kind)
	}
	if payload == nil {
		return fmt.Errorf("%w: missing payload for %s", ErrInvalidEvent, kind)
	}
	if payload.Kind() != kind {
		return fmt.Errorf("%w: %s payload sent as %s", ErrInvalidEvent, payload.Kind(), kind)
	}
	if verr := validation.ValidateStruct(payload); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, verr)
	}
	return nil
}

// DecodeEventPayload parses the JSON payload of an event of the given kind.
func DecodeEventPayload(kind EventKind, raw []byte) (EventPayload, error) {
	var (
		payload EventPayload
		err     error
	)
	switch kind {
	case EventViewed:
		var p ViewedPayload
		err = json.Unmarshal(raw, &p)
		payload = p
	case EventCompleted:
		var p CompletedPayload
		err = json.Unmarshal(raw, &p)
		payload = p
	case EventFavorited:
		var p FavoritedPayload
		err = json.Unmarshal(raw, &p)
		payload = p
	case EventSearched:
		var p SearchedPayload
		err = json.Unmarshal(raw, &p)
		payload = p
	case EventInteracted:
		var p InteractedPayload
		err = json.Unmarshal(raw, &p)
		payload = p
	default:
		return nil, fmt.Errorf("%w: unknown event kind %q", ErrInvalidEvent, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s payload: %w", ErrInvalidEvent, kind, err)
	}
	return payload, nil
}

// ProfilePatch is a partial profile. Nil fields leave the stored value
// untouched.
type ProfilePatch struct {
	Preferences  *PreferencesPatch `json:"preferences,omitempty"`
	Demographics *Demographics     `json:"demographics,omitempty"`
}

// PreferencesPatch is a partial Preferences. A nil slice leaves the stored
// set untouched; an empty non-nil slice clears it.
type PreferencesPatch struct {
	Categories     []string        `json:"categories,omitempty" validate:"omitempty,dive,required,max=128"`
	Difficulty     *Difficulty     `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	LearningStyle  *LearningStyle  `json:"learning_style,omitempty" validate:"omitempty,oneof=visual auditory kinesthetic reading"`
	TimeCommitment *TimeCommitment `json:"time_commitment,omitempty" validate:"omitempty,oneof=low medium high"`
	Goals          []string        `json:"goals,omitempty" validate:"omitempty,dive,required,max=256"`
}

// Validate checks enum values and bounds.
func (p *ProfilePatch) Validate() error {
	if p == nil {
		return nil
	}
	if verr := validation.ValidateStruct(p); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, verr)
	}
	return nil
}

// apply merges the patch into prof.
func (p *ProfilePatch) apply(prof *UserProfile) {
	if p == nil {
		return
	}
	if pp := p.Preferences; pp != nil {
		if pp.Categories != nil {
			prof.Preferences.Categories = dedupe(pp.Categories)
		}
		if pp.Difficulty != nil {
			prof.Preferences.Difficulty = *pp.Difficulty
		}
		if pp.LearningStyle != nil {
			prof.Preferences.LearningStyle = *pp.LearningStyle
		}
		if pp.TimeCommitment != nil {
			prof.Preferences.TimeCommitment = *pp.TimeCommitment
		}
		if pp.Goals != nil {
			prof.Preferences.Goals = dedupe(pp.Goals)
		}
	}
	if d := p.Demographics; d != nil {
		merged := d.clone()
		if merged.Age == nil {
			merged.Age = prof.Demographics.Age
		}
		if merged.Location == nil {
			merged.Location = prof.Demographics.Location
		}
		if merged.Education == nil {
			merged.Education = prof.Demographics.Education
		}
		if merged.Profession == nil {
			merged.Profession = prof.Demographics.Profession
		}
		if merged.ExperienceYears == nil {
			merged.ExperienceYears = prof.Demographics.ExperienceYears
		}
		prof.Demographics = merged
	}
}

// dedupe keeps the first occurrence of each string.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
