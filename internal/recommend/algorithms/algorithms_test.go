// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package algorithms

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/learnrec/internal/recommend"
	"github.com/tomtom215/learnrec/internal/recommend/similarity"
)

const eps = 1e-9

type fixture struct {
	profiles *recommend.ProfileStore
	catalog  *recommend.Catalog
	index    *similarity.Index
	cfg      *recommend.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	profiles := recommend.NewProfileStore()
	catalog := recommend.NewCatalog()
	return &fixture{
		profiles: profiles,
		catalog:  catalog,
		index:    similarity.NewIndex(profiles, catalog, zerolog.Nop()),
		cfg:      recommend.DefaultConfig(),
	}
}

func (f *fixture) addItems(items ...recommend.ContentItem) {
	for _, it := range items {
		f.catalog.Register(it)
		f.index.RecomputeContent(context.Background(), it.ID)
	}
}

func (f *fixture) record(userID string, payloads ...recommend.EventPayload) {
	now := time.Unix(1_700_000_000, 0)
	for _, p := range payloads {
		f.profiles.Append(userID, p, now)
	}
	f.index.RecomputeUser(context.Background(), userID)
}

func course(id, category string, tags ...string) recommend.ContentItem {
	return recommend.ContentItem{
		ID:         id,
		Category:   category,
		Tags:       tags,
		Difficulty: recommend.DifficultyBeginner,
		Type:       recommend.TypeCourse,
	}
}

func ids(recs []recommend.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ContentID
	}
	return out
}

func find(recs []recommend.Recommendation, id string) (recommend.Recommendation, bool) {
	for _, r := range recs {
		if r.ContentID == id {
			return r, true
		}
	}
	return recommend.Recommendation{}, false
}

func checkConfidence(t *testing.T, recs []recommend.Recommendation) {
	t.Helper()
	for _, r := range recs {
		if r.Confidence < 0 || r.Confidence > 1 {
			t.Errorf("%s confidence = %v, want within [0, 1]", r.ContentID, r.Confidence)
		}
	}
}

func TestCollaborative_Score(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.addItems(course("shared", "go"), course("rated", "go"), course("fav", "go"), course("meh", "go"))

	f.record("u1", recommend.ViewedPayload{ContentID: "shared"})
	f.record("u2",
		recommend.ViewedPayload{ContentID: "shared"},
		recommend.CompletedPayload{ContentID: "rated", Rating: 5},
		recommend.CompletedPayload{ContentID: "meh", Rating: 3},
		recommend.CompletedPayload{ContentID: "ghost", Rating: 5},
		recommend.FavoritedPayload{ContentID: "fav"},
	)

	sim, ok := f.index.UserScore("u1", "u2")
	if !ok || sim <= 0 {
		t.Fatalf("UserScore(u1,u2) = %v, %v; want positive", sim, ok)
	}

	scorer := NewCollaborative(f.profiles, f.catalog, f.index, f.cfg.Collaborative)
	recs, err := scorer.Score(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	got := ids(recs)
	want := []string{"rated", "fav"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Score() ids = %v, want %v", got, want)
	}

	rated, _ := find(recs, "rated")
	if math.Abs(rated.Score-sim*5) > eps {
		t.Errorf("rated score = %v, want %v", rated.Score, sim*5)
	}
	if rated.Reason != recommend.ReasonSimilarUserRated {
		t.Errorf("rated reason = %q", rated.Reason)
	}
	if rated.Category != recommend.CategoryCollaborative {
		t.Errorf("rated category = %q", rated.Category)
	}
	if math.Abs(rated.Confidence-math.Min(sim*5/10, 1)) > eps {
		t.Errorf("rated confidence = %v", rated.Confidence)
	}

	fav, _ := find(recs, "fav")
	if math.Abs(fav.Score-sim*0.8) > eps || fav.Reason != recommend.ReasonSimilarUserFavorited {
		t.Errorf("fav = %+v, want score %v", fav, sim*0.8)
	}
	checkConfidence(t, recs)
}

func TestCollaborative_UnknownUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.addItems(course("a", "go"))
	scorer := NewCollaborative(f.profiles, f.catalog, f.index, f.cfg.Collaborative)

	recs, err := scorer.Score(context.Background(), "nobody", 10)
	if err != nil || len(recs) != 0 {
		t.Errorf("Score(unknown) = %v, %v; want empty, nil", recs, err)
	}
}

func TestContentBased_SimilarityAndPreferences(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	done := course("done", "Data Science", "python", "ml")
	near := course("close", "Data Science", "python")
	edge := course("edge", "Data Science")
	edge.Type = recommend.TypeArticle
	far := recommend.ContentItem{
		ID: "far", Category: "Web", Tags: []string{"css"},
		Difficulty: recommend.DifficultyAdvanced, Type: recommend.TypeVideo,
	}
	f.addItems(done, near, edge, far)
	f.record("u1", recommend.CompletedPayload{ContentID: "done", Rating: 5})

	scorer := NewContentBased(f.profiles, f.catalog, f.index, f.cfg.ContentBased)
	recs, err := scorer.Score(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if _, ok := find(recs, "done"); ok {
		t.Error("completed item was recommended")
	}

	tests := []struct {
		id     string
		score  float64
		reason string
	}{
		// 0.85 similarity plus 0.2 for matching difficulty.
		{"close", 1.05, recommend.ReasonSimilarContent},
		// similarity is exactly 0.5, which does not pass the threshold.
		{"edge", 0.2, recommend.ReasonMatchesPreferences},
		// video suits the default visual style.
		{"far", 0.2, recommend.ReasonMatchesPreferences},
	}
	for _, tt := range tests {
		r, ok := find(recs, tt.id)
		if !ok {
			t.Errorf("%s missing from %v", tt.id, ids(recs))
			continue
		}
		if math.Abs(r.Score-tt.score) > eps {
			t.Errorf("%s score = %v, want %v", tt.id, r.Score, tt.score)
		}
		if r.Reason != tt.reason {
			t.Errorf("%s reason = %q, want %q", tt.id, r.Reason, tt.reason)
		}
	}
	if recs[0].ContentID != "close" || recs[0].Confidence != 1 {
		t.Errorf("top = %+v, want close with confidence 1", recs[0])
	}
	checkConfidence(t, recs)
}

func TestContentBased_Limit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.addItems(course("a", "x"), course("b", "x"), course("c", "x"))
	f.record("u1", recommend.SearchedPayload{Query: "anything"})

	scorer := NewContentBased(f.profiles, f.catalog, f.index, f.cfg.ContentBased)
	recs, err := scorer.Score(context.Background(), "u1", 2)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	// Equal scores order by id.
	if got := ids(recs); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Score() = %v, want [a b]", got)
	}
}

func TestContentBased_NeighborCap(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.addItems(
		course("done", "Data Science", "python", "ml"),
		course("twin", "Data Science", "python", "ml"),
		course("close", "Data Science", "python"),
	)
	f.record("u1", recommend.CompletedPayload{ContentID: "done", Rating: 5})

	tests := []struct {
		name      string
		neighbors int
		close     float64
	}{
		// twin is the single best neighbour; close keeps its difficulty fit.
		{"capped at one", 1, 0.2},
		{"default cap", 10, 1.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := f.cfg.ContentBased
			cfg.Neighbors = tt.neighbors
			recs, err := NewContentBased(f.profiles, f.catalog, f.index, cfg).Score(context.Background(), "u1", 10)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			twin, ok := find(recs, "twin")
			if !ok || math.Abs(twin.Score-1.2) > eps {
				t.Errorf("twin = %+v, want score 1.2", twin)
			}
			r, ok := find(recs, "close")
			if !ok || math.Abs(r.Score-tt.close) > eps {
				t.Errorf("close = %+v, want score %v", r, tt.close)
			}
		})
	}
}

func TestPreferenceFit(t *testing.T) {
	t.Parallel()

	item := recommend.ContentItem{
		Category:   "Data Science",
		Tags:       []string{"Python", "statistics", "pandas", "ml"},
		Difficulty: recommend.DifficultyIntermediate,
		Type:       recommend.TypeArticle,
	}

	tests := []struct {
		name  string
		prefs recommend.Preferences
		want  float64
	}{
		{"nothing matches", recommend.Preferences{Difficulty: recommend.DifficultyBeginner, LearningStyle: recommend.StyleVisual}, 0},
		{"category", recommend.Preferences{Categories: []string{"Web", "Data Science"}}, 0.3},
		{"difficulty and reading style", recommend.Preferences{
			Difficulty: recommend.DifficultyIntermediate, LearningStyle: recommend.StyleReading,
		}, 0.4},
		// python and ml are contained in a goal; two of four tags match.
		{"goal containment", recommend.Preferences{Goals: []string{"Learn Python", "learn ml"}}, 0.3 * 0.5},
		{"everything", recommend.Preferences{
			Categories:    []string{"Data Science"},
			Difficulty:    recommend.DifficultyIntermediate,
			LearningStyle: recommend.StyleReading,
			Goals:         []string{"python", "statistics", "pandas", "ml"},
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PreferenceFit(&tt.prefs, &item); math.Abs(got-tt.want) > eps {
				t.Errorf("PreferenceFit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStyleMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		style recommend.LearningStyle
		item  recommend.ContentItem
		want  bool
	}{
		{recommend.StyleVisual, recommend.ContentItem{Type: recommend.TypeVideo}, true},
		{recommend.StyleVisual, recommend.ContentItem{Type: recommend.TypeCourse, Features: recommend.Features{HasVideo: true}}, true},
		{recommend.StyleVisual, recommend.ContentItem{Type: recommend.TypeCourse}, false},
		{recommend.StyleAuditory, recommend.ContentItem{Features: recommend.Features{HasAudio: true}}, true},
		{recommend.StyleAuditory, recommend.ContentItem{Type: recommend.TypeVideo}, false},
		{recommend.StyleKinesthetic, recommend.ContentItem{Features: recommend.Features{HasInteractive: true}}, true},
		{recommend.StyleReading, recommend.ContentItem{Type: recommend.TypeBlog}, true},
		{recommend.StyleReading, recommend.ContentItem{Type: recommend.TypeArticle}, true},
		{recommend.StyleReading, recommend.ContentItem{Type: recommend.TypeExternalResource}, false},
	}
	for _, tt := range tests {
		if got := StyleMatches(tt.style, &tt.item); got != tt.want {
			t.Errorf("StyleMatches(%s, %+v) = %v, want %v", tt.style, tt.item, got, tt.want)
		}
	}
}

func popularItems(now time.Time) []recommend.ContentItem {
	mk := func(id string, pop float64, updated time.Time) recommend.ContentItem {
		it := course(id, "x")
		it.Popularity = pop
		it.Metadata.LastUpdated = updated
		return it
	}
	return []recommend.ContentItem{
		mk("old-hit", 40, now.Add(-30*24*time.Hour)),
		mk("fresh", 30, now.Add(-2*24*time.Hour)),
		mk("boundary", 10, now.Add(-7*24*time.Hour)),
		mk("niche", 5, time.Time{}),
	}
}

func TestPopular_Score(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(t)
	f.addItems(popularItems(now)...)
	f.record("u1", recommend.ViewedPayload{ContentID: "old-hit"})

	scorer := NewPopular(f.profiles, f.catalog)

	anon, err := scorer.Score(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got := ids(anon); len(got) != 4 || got[0] != "old-hit" || got[3] != "niche" {
		t.Errorf("anonymous popular = %v", got)
	}
	if anon[0].Confidence != 1 || anon[0].Reason != recommend.ReasonPopular {
		t.Errorf("top = %+v, want confidence 1 and popular reason", anon[0])
	}

	recs, err := scorer.Score(context.Background(), "u1", 2)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got := ids(recs); len(got) != 2 || got[0] != "fresh" || got[1] != "boundary" {
		t.Errorf("popular for u1 = %v, want [fresh boundary]", got)
	}
	checkConfidence(t, recs)
}

func TestTrending_Boost(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(t)
	f.addItems(popularItems(now)...)

	scorer := NewTrending(f.profiles, f.catalog, f.cfg.Trending, func() time.Time { return now })
	recs, err := scorer.Score(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	want := []struct {
		id    string
		score float64
	}{
		{"fresh", 45},
		{"old-hit", 40},
		{"boundary", 15},
		{"niche", 5},
	}
	if len(recs) != len(want) {
		t.Fatalf("Score() = %v", ids(recs))
	}
	for i, w := range want {
		if recs[i].ContentID != w.id || math.Abs(recs[i].Score-w.score) > eps {
			t.Errorf("position %d = %s/%v, want %s/%v", i, recs[i].ContentID, recs[i].Score, w.id, w.score)
		}
		if recs[i].Category != recommend.CategoryTrending {
			t.Errorf("%s category = %q", recs[i].ContentID, recs[i].Category)
		}
	}
	checkConfidence(t, recs)
}

func TestIsRecent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	window := 7 * 24 * time.Hour

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"zero", time.Time{}, false},
		{"now", now, true},
		{"inside", now.Add(-time.Hour), true},
		{"boundary", now.Add(-window), true},
		{"outside", now.Add(-window - time.Second), false},
		{"future", now.Add(time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsRecent(tt.ts, now, window); got != tt.want {
				t.Errorf("IsRecent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScorers_CancelledContext(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.addItems(course("a", "x"))
	f.record("u1", recommend.ViewedPayload{ContentID: "zzz"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scorers := []recommend.Scorer{
		NewContentBased(f.profiles, f.catalog, f.index, f.cfg.ContentBased),
		NewPopular(f.profiles, f.catalog),
		NewTrending(f.profiles, f.catalog, f.cfg.Trending, nil),
	}
	for _, s := range scorers {
		if _, err := s.Score(ctx, "u1", 5); err == nil {
			t.Errorf("%s: Score() with cancelled context returned nil error", s.Name())
		}
	}
}
