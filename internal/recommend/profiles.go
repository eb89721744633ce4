// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package recommend

import (
	"sort"
	"sync"
	"time"
)

// ProfileStore owns one profile per user. Stored profiles are immutable
// snapshots; every write installs a new snapshot, so readers never observe
// a partially applied mutation.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*UserProfile
}

var _ ProfileReader = (*ProfileStore)(nil)

// NewProfileStore creates an empty store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string]*UserProfile)}
}

// Profile returns a copy of the stored profile.
func (s *ProfileStore) Profile(userID string) (UserProfile, bool) {
	s.mu.RLock()
	p, ok := s.profiles[userID]
	s.mu.RUnlock()
	if !ok {
		return UserProfile{}, false
	}
	return p.Clone(), true
}

// Profiles returns copies of every profile ordered by user id.
func (s *ProfileStore) Profiles() []UserProfile {
	s.mu.RLock()
	snaps := make([]*UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		snaps = append(snaps, p)
	}
	s.mu.RUnlock()

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].UserID < snaps[j].UserID })
	out := make([]UserProfile, len(snaps))
	for i, p := range snaps {
		out[i] = p.Clone()
	}
	return out
}

// Len returns the number of profiles.
func (s *ProfileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// Upsert merges patch into the user's profile, creating a default profile
// first if needed. The patch must already be validated.
func (s *ProfileStore) Upsert(userID string, patch *ProfilePatch, now time.Time) UserProfile {
	return s.mutate(userID, now, func(p *UserProfile) { patch.apply(p) })
}

// Append adds one behavior record, creating a default profile if needed.
// The payload must already be validated.
func (s *ProfileStore) Append(userID string, payload EventPayload, now time.Time) UserProfile {
	return s.mutate(userID, now, func(p *UserProfile) { payload.appendTo(&p.Behavior, now) })
}

func (s *ProfileStore) mutate(userID string, now time.Time, fn func(*UserProfile)) UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next UserProfile
	if cur, ok := s.profiles[userID]; ok {
		next = cur.Clone()
	} else {
		next = UserProfile{
			UserID:      userID,
			Preferences: DefaultPreferences(),
			CreatedAt:   now,
		}
	}
	fn(&next)
	next.Version++
	next.UpdatedAt = now

	stored := next.Clone()
	s.profiles[userID] = &stored
	return next
}

// Restore replaces the store contents with previously persisted profiles.
func (s *ProfileStore) Restore(profiles []UserProfile) {
	fresh := make(map[string]*UserProfile, len(profiles))
	for i := range profiles {
		p := profiles[i].Clone()
		fresh[p.UserID] = &p
	}
	s.mu.Lock()
	s.profiles = fresh
	s.mu.Unlock()
}
