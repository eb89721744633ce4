// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/tomtom215/learnrec/internal/recommend"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRecommendations(ctx context.Context, w io.Writer, engine *recommend.Engine, recs []recommend.Recommendation) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "no recommendations")
		return err
	}
	titles := make(map[string]string, len(recs))
	for _, item := range engine.ListContent(ctx) {
		titles[item.ID] = item.Title
	}
	return formatRecommendations(w, recs, titles)
}

func formatRecommendations(w io.Writer, recs []recommend.Recommendation, titles map[string]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCONTENT\tTITLE\tSCORE\tCONF\tCATEGORY\tREASON")
	for i, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.3f\t%.2f\t%s\t%s\n",
			i+1, r.ContentID, titles[r.ContentID], r.Score, r.Confidence, r.Category, r.Reason)
	}
	return tw.Flush()
}

func writeInsights(w io.Writer, userID string, in *recommend.Insights) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	categories := "-"
	if len(in.TopCategories) > 0 {
		categories = strings.Join(in.TopCategories, ", ")
	}
	fmt.Fprintf(tw, "User\t%s\n", userID)
	fmt.Fprintf(tw, "Top categories\t%s\n", categories)
	fmt.Fprintf(tw, "Preferred difficulty\t%s\n", in.PreferredDifficulty)
	fmt.Fprintf(tw, "Learning style\t%s\n", in.LearningStyle)
	fmt.Fprintf(tw, "Average rating\t%.2f\n", in.AverageCompletedRating)
	fmt.Fprintf(tw, "Completion rate\t%.1f%%\n", in.CompletionRate)
	fmt.Fprintf(tw, "Recommendation accuracy\t%.1f%%\n", in.RecommendationAccuracy)
	return tw.Flush()
}
