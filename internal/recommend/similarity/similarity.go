// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

// Package similarity computes pairwise similarity between learners and
// between content items, and caches it in a symmetric index that is kept
// current as profiles and items change.
//
// All scores are in [0, 1]. Overlap ratios divide by max(|A|, |B|, 1), so
// two empty sets score 0 rather than being skipped.
package similarity

import (
	"math"
	"strings"

	"github.com/tomtom215/learnrec/internal/recommend"
)

// User similarity weights.
const (
	PreferenceWeight  = 0.3
	BehaviorWeight    = 0.4
	DemographicWeight = 0.3
)

// User returns the similarity of two learners. The demographic term only
// counts when at least one demographic field is known on both sides, and
// the result is divided by the weight actually applied.
func User(a, b *recommend.UserProfile) float64 {
	total := PreferenceWeight*Preference(&a.Preferences, &b.Preferences) +
		BehaviorWeight*Behavior(&a.Behavior, &b.Behavior)
	applied := PreferenceWeight + BehaviorWeight

	if d, ok := Demographic(&a.Demographics, &b.Demographics); ok {
		total += DemographicWeight * d
		applied += DemographicWeight
	}
	return clamp01(total / applied)
}

// Preference compares stated preferences.
func Preference(a, b *recommend.Preferences) float64 {
	score := 0.4 * Overlap(a.Categories, b.Categories)
	if a.Difficulty == b.Difficulty {
		score += 0.2
	}
	if a.LearningStyle == b.LearningStyle {
		score += 0.2
	}
	score += 0.2 * Overlap(a.Goals, b.Goals)
	return score
}

// Behavior compares activity: viewed ids, completed ids and search queries
// (case-insensitive).
func Behavior(a, b *recommend.Behavior) float64 {
	return 0.3*Overlap(viewedIDs(a), viewedIDs(b)) +
		0.4*Overlap(completedIDs(a), completedIDs(b)) +
		0.3*Overlap(queries(a), queries(b))
}

// Demographic compares the fields known on both sides. ok is false when no
// field is shared.
func Demographic(a, b *recommend.Demographics) (score float64, ok bool) {
	var total, applied float64

	if a.Age != nil && b.Age != nil {
		total += 0.3 * math.Max(0, 1-math.Abs(float64(*a.Age-*b.Age))/50)
		applied += 0.3
	}
	if a.Location != nil && b.Location != nil {
		if *a.Location == *b.Location {
			total += 0.3
		}
		applied += 0.3
	}
	if a.Education != nil && b.Education != nil {
		if *a.Education == *b.Education {
			total += 0.2
		}
		applied += 0.2
	}
	if a.ExperienceYears != nil && b.ExperienceYears != nil {
		total += 0.2 * math.Max(0, 1-math.Abs(float64(*a.ExperienceYears-*b.ExperienceYears))/10)
		applied += 0.2
	}

	if applied == 0 {
		return 0, false
	}
	return total / applied, true
}

// Content returns the similarity of two items from category, tags,
// difficulty and type.
func Content(a, b *recommend.ContentItem) float64 {
	var score float64
	if a.Category == b.Category {
		score += 0.3
	}
	score += 0.3 * Overlap(a.Tags, b.Tags)
	if a.Difficulty == b.Difficulty {
		score += 0.2
	}
	if a.Type == b.Type {
		score += 0.2
	}
	return clamp01(score)
}

// Overlap returns |A ∩ B| / max(|A|, |B|, 1) over de-duplicated sets.
func Overlap(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)

	small, large := setA, setB
	if len(small) > len(large) {
		small, large = large, small
	}
	shared := 0
	for s := range small {
		if _, ok := large[s]; ok {
			shared++
		}
	}

	denom := len(setA)
	if len(setB) > denom {
		denom = len(setB)
	}
	if denom < 1 {
		denom = 1
	}
	return float64(shared) / float64(denom)
}

func toSet(in []string) map[string]struct{} {
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		set[s] = struct{}{}
	}
	return set
}

func viewedIDs(b *recommend.Behavior) []string {
	ids := make([]string, len(b.Viewed))
	for i, v := range b.Viewed {
		ids[i] = v.ContentID
	}
	return ids
}

func completedIDs(b *recommend.Behavior) []string {
	ids := make([]string, len(b.Completed))
	for i, c := range b.Completed {
		ids[i] = c.ContentID
	}
	return ids
}

func queries(b *recommend.Behavior) []string {
	qs := make([]string, len(b.Searches))
	for i, s := range b.Searches {
		qs[i] = strings.ToLower(s.Query)
	}
	return qs
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
