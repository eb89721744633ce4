// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package recommend

import (
	"context"
	"sort"
)

// maxTopCategories bounds Insights.TopCategories.
const maxTopCategories = 3

// GetRecommendationInsights summarizes a learner. Unknown users get the
// default preferences and zero rates rather than an error.
func (e *Engine) GetRecommendationInsights(_ context.Context, userID string) Insights {
	user, ok := e.profiles.Profile(userID)
	if !ok {
		defaults := DefaultPreferences()
		return Insights{
			TopCategories:       []string{},
			PreferredDifficulty: defaults.Difficulty,
			LearningStyle:       defaults.LearningStyle,
		}
	}
	return buildInsights(&user, e.catalog)
}

func buildInsights(user *UserProfile, catalog CatalogReader) Insights {
	out := Insights{
		TopCategories:       topCategories(user.Behavior.Completed, catalog),
		PreferredDifficulty: user.Preferences.Difficulty,
		LearningStyle:       user.Preferences.LearningStyle,
	}

	completed := user.Behavior.Completed
	if n := len(completed); n > 0 {
		sum, liked := 0, 0
		for _, c := range completed {
			sum += c.Rating
			if c.Rating >= LikedRating {
				liked++
			}
		}
		out.AverageCompletedRating = float64(sum) / float64(n)
		out.RecommendationAccuracy = float64(liked) / float64(n) * 100
	}
	if views := len(user.Behavior.Viewed); views > 0 {
		out.CompletionRate = float64(len(completed)) / float64(views) * 100
	}
	return out
}

// topCategories ranks the catalog categories of completed items by count,
// then by name.
func topCategories(completed []CompletionRecord, catalog CatalogReader) []string {
	counts := make(map[string]int)
	for _, c := range completed {
		item, ok := catalog.Item(c.ContentID)
		if !ok || item.Category == "" {
			continue
		}
		counts[item.Category]++
	}

	cats := make([]string, 0, len(counts))
	for cat := range counts {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return cats[i] < cats[j]
	})
	if len(cats) > maxTopCategories {
		cats = cats[:maxTopCategories]
	}
	return cats
}
