// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package recommend

import (
	"context"
	"time"
)

// Difficulty is the level a learner prefers or an item targets.
type Difficulty string

// Difficulty levels.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// LearningStyle is how a learner prefers to consume material.
type LearningStyle string

// Learning styles.
const (
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleKinesthetic LearningStyle = "kinesthetic"
	StyleReading     LearningStyle = "reading"
)

// Valid reports whether s is a known learning style.
func (s LearningStyle) Valid() bool {
	switch s {
	case StyleVisual, StyleAuditory, StyleKinesthetic, StyleReading:
		return true
	}
	return false
}

// TimeCommitment is how much time a learner expects to spend.
type TimeCommitment string

// Time commitments.
const (
	CommitmentLow    TimeCommitment = "low"
	CommitmentMedium TimeCommitment = "medium"
	CommitmentHigh   TimeCommitment = "high"
)

// Valid reports whether c is a known time commitment.
func (c TimeCommitment) Valid() bool {
	switch c {
	case CommitmentLow, CommitmentMedium, CommitmentHigh:
		return true
	}
	return false
}

// ContentType is the kind of recommendable unit.
type ContentType string

// Content types.
const (
	TypeCourse           ContentType = "course"
	TypeExternalResource ContentType = "external-resource"
	TypeBlog             ContentType = "blog"
	TypeVideo            ContentType = "video"
	TypeArticle          ContentType = "article"
)

// Valid reports whether t is a known content type.
func (t ContentType) Valid() bool {
	switch t {
	case TypeCourse, TypeExternalResource, TypeBlog, TypeVideo, TypeArticle:
		return true
	}
	return false
}

// Category identifies which scorer (or combination) produced a recommendation.
type Category string

// Recommendation categories.
const (
	CategoryCollaborative Category = "collaborative"
	CategoryContentBased  Category = "content-based"
	CategoryHybrid        Category = "hybrid"
	CategoryPopular       Category = "popular"
	CategoryTrending      Category = "trending"
)

// Reasons attached to recommendations.
const (
	ReasonSimilarUserRated     = "Similar user rated this highly"
	ReasonSimilarUserFavorited = "Similar user favorited this"
	ReasonSimilarContent       = "Similar to content you rated highly"
	ReasonMatchesPreferences   = "Matches your learning preferences"
	ReasonPopular              = "Popular with learners"
	ReasonTrending             = "Trending this week"
)

// LikedRating is the minimum completion rating that counts as a like.
const LikedRating = 4

// Preferences are the stated tastes of a learner. Categories and Goals are
// sets; order carries no meaning.
type Preferences struct {
	Categories     []string       `json:"categories"`
	Difficulty     Difficulty     `json:"difficulty"`
	LearningStyle  LearningStyle  `json:"learning_style"`
	TimeCommitment TimeCommitment `json:"time_commitment"`
	Goals          []string       `json:"goals"`
}

// ViewRecord is one content view.
type ViewRecord struct {
	ContentID    string    `json:"content_id"`
	Timestamp    time.Time `json:"timestamp"`
	DwellSeconds int       `json:"dwell_seconds"`
}

// CompletionRecord is one finished item with the learner's rating.
type CompletionRecord struct {
	ContentID string    `json:"content_id"`
	Timestamp time.Time `json:"timestamp"`
	Rating    int       `json:"rating"`
}

// FavoriteRecord is one favorited item.
type FavoriteRecord struct {
	ContentID string    `json:"content_id"`
	Timestamp time.Time `json:"timestamp"`
}

// SearchRecord is one search query and the results the learner opened.
type SearchRecord struct {
	Query          string    `json:"query"`
	Timestamp      time.Time `json:"timestamp"`
	ClickedResults []string  `json:"clicked_results,omitempty"`
}

// InteractionRecord is a social interaction (comment, share, like) on an item.
type InteractionRecord struct {
	ContentID string    `json:"content_id"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// Behavior holds the append-only activity logs of a learner.
type Behavior struct {
	Viewed       []ViewRecord        `json:"viewed"`
	Completed    []CompletionRecord  `json:"completed"`
	Favorited    []FavoriteRecord    `json:"favorited"`
	Searches     []SearchRecord      `json:"searches"`
	Interactions []InteractionRecord `json:"interactions"`
}

// Demographics are optional; a nil field means unknown.
type Demographics struct {
	Age             *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Location        *string `json:"location,omitempty"`
	Education       *string `json:"education,omitempty"`
	Profession      *string `json:"profession,omitempty"`
	ExperienceYears *int    `json:"experience_years,omitempty" validate:"omitempty,gte=0,lte=80"`
}

// Empty reports whether no demographic field is known.
func (d Demographics) Empty() bool {
	return d.Age == nil && d.Location == nil && d.Education == nil &&
		d.Profession == nil && d.ExperienceYears == nil
}

// UserProfile is everything the engine knows about one learner.
// Version increases on every mutation.
type UserProfile struct {
	UserID       string       `json:"user_id"`
	Preferences  Preferences  `json:"preferences"`
	Behavior     Behavior     `json:"behavior"`
	Demographics Demographics `json:"demographics"`
	Version      uint64       `json:"version"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// DefaultPreferences are assigned to profiles created implicitly.
func DefaultPreferences() Preferences {
	return Preferences{
		Categories:     []string{},
		Difficulty:     DifficultyBeginner,
		LearningStyle:  StyleVisual,
		TimeCommitment: CommitmentMedium,
		Goals:          []string{},
	}
}

// Clone returns a deep copy so callers can never alias store internals.
func (p *UserProfile) Clone() UserProfile {
	out := *p
	out.Preferences.Categories = cloneStrings(p.Preferences.Categories)
	out.Preferences.Goals = cloneStrings(p.Preferences.Goals)
	out.Behavior.Viewed = append([]ViewRecord(nil), p.Behavior.Viewed...)
	out.Behavior.Completed = append([]CompletionRecord(nil), p.Behavior.Completed...)
	out.Behavior.Favorited = append([]FavoriteRecord(nil), p.Behavior.Favorited...)
	out.Behavior.Searches = make([]SearchRecord, len(p.Behavior.Searches))
	for i, s := range p.Behavior.Searches {
		s.ClickedResults = cloneStrings(s.ClickedResults)
		out.Behavior.Searches[i] = s
	}
	out.Behavior.Interactions = append([]InteractionRecord(nil), p.Behavior.Interactions...)
	out.Demographics = p.Demographics.clone()
	return out
}

func (d Demographics) clone() Demographics {
	out := Demographics{}
	if d.Age != nil {
		v := *d.Age
		out.Age = &v
	}
	if d.Location != nil {
		v := *d.Location
		out.Location = &v
	}
	if d.Education != nil {
		v := *d.Education
		out.Education = &v
	}
	if d.Profession != nil {
		v := *d.Profession
		out.Profession = &v
	}
	if d.ExperienceYears != nil {
		v := *d.ExperienceYears
		out.ExperienceYears = &v
	}
	return out
}

// SeenItems returns the ids the learner viewed or completed. These are never
// recommended back.
func (p *UserProfile) SeenItems() map[string]struct{} {
	seen := make(map[string]struct{}, len(p.Behavior.Viewed)+len(p.Behavior.Completed))
	for _, v := range p.Behavior.Viewed {
		seen[v.ContentID] = struct{}{}
	}
	for _, c := range p.Behavior.Completed {
		seen[c.ContentID] = struct{}{}
	}
	return seen
}

// LikedItems returns the ids the learner completed with a rating of at
// least LikedRating or favorited.
func (p *UserProfile) LikedItems() map[string]struct{} {
	liked := make(map[string]struct{})
	for _, c := range p.Behavior.Completed {
		if c.Rating >= LikedRating {
			liked[c.ContentID] = struct{}{}
		}
	}
	for _, f := range p.Behavior.Favorited {
		liked[f.ContentID] = struct{}{}
	}
	return liked
}

// Features are the capabilities of a content item.
type Features struct {
	HasVideo       bool `json:"has_video"`
	HasAudio       bool `json:"has_audio"`
	HasInteractive bool `json:"has_interactive"`
	HasCertificate bool `json:"has_certificate"`
	IsFree         bool `json:"is_free"`
}

// ContentMetadata is descriptive data that does not drive similarity,
// except LastUpdated which drives trending.
type ContentMetadata struct {
	Instructor       string    `json:"instructor,omitempty"`
	LastUpdated      time.Time `json:"last_updated"`
	Prerequisites    []string  `json:"prerequisites,omitempty"`
	LearningOutcomes []string  `json:"learning_outcomes,omitempty"`
}

// ContentItem is one recommendable unit. Version is assigned by the catalog.
type ContentItem struct {
	ID              string          `json:"id" validate:"required,max=256"`
	Title           string          `json:"title" validate:"max=512"`
	Description     string          `json:"description"`
	Category        string          `json:"category" validate:"max=128"`
	Tags            []string        `json:"tags"`
	Difficulty      Difficulty      `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	DurationMinutes int             `json:"duration_minutes" validate:"gte=0"`
	Type            ContentType     `json:"type" validate:"required,oneof=course external-resource blog video article"`
	Language        string          `json:"language"`
	Rating          float64         `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount     int             `json:"review_count" validate:"gte=0"`
	Popularity      float64         `json:"popularity" validate:"gte=0"`
	Features        Features        `json:"features"`
	Metadata        ContentMetadata `json:"metadata"`
	Version         uint64          `json:"version"`
}

// Clone returns a deep copy of the item.
func (c *ContentItem) Clone() ContentItem {
	out := *c
	out.Tags = cloneStrings(c.Tags)
	out.Metadata.Prerequisites = cloneStrings(c.Metadata.Prerequisites)
	out.Metadata.LearningOutcomes = cloneStrings(c.Metadata.LearningOutcomes)
	return out
}

// Recommendation is one ranked item with its provenance.
// Score has no fixed range; Confidence is always within [0, 1].
type Recommendation struct {
	ContentID  string   `json:"content_id"`
	Score      float64  `json:"score"`
	Reason     string   `json:"reason"`
	Confidence float64  `json:"confidence"`
	Category   Category `json:"category"`
}

// Insights summarize a learner's taste profile.
type Insights struct {
	TopCategories          []string      `json:"top_categories"`
	PreferredDifficulty    Difficulty    `json:"preferred_difficulty"`
	LearningStyle          LearningStyle `json:"learning_style"`
	AverageCompletedRating float64       `json:"average_completed_rating"`
	CompletionRate         float64       `json:"completion_rate"`
	RecommendationAccuracy float64       `json:"recommendation_accuracy"`
}

// Neighbor is one entry of a similarity ranking.
type Neighbor struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// IndexStats reports the size of the similarity matrices.
type IndexStats struct {
	UserPairs    int `json:"user_pairs"`
	ContentPairs int `json:"content_pairs"`
}

// Scorer is one ranking strategy. Implementations must exclude items the
// user has viewed or completed and return at most limit results ordered by
// score descending, then content id ascending.
type Scorer interface {
	// Name identifies the scorer in logs and metrics.
	Name() string

	// Category is the provenance tag stamped on every result.
	Category() Category

	// Score ranks content for userID. An unknown user is not an error.
	Score(ctx context.Context, userID string, limit int) ([]Recommendation, error)
}

// ProfileReader is read access to stored profiles.
type ProfileReader interface {
	Profile(userID string) (UserProfile, bool)
	Profiles() []UserProfile
}

// CatalogReader is read access to registered content.
type CatalogReader interface {
	Item(id string) (ContentItem, bool)
	Items() []ContentItem
}

// SimilarityIndex caches pairwise similarity for users and for content.
// Recompute calls are synchronous: when they return, every pair involving
// the entity reflects its current stored state.
type SimilarityIndex interface {
	RecomputeUser(ctx context.Context, userID string)
	RecomputeContent(ctx context.Context, contentID string)
	Rebuild(ctx context.Context)
	TopSimilarUsers(userID string, k int) []Neighbor
	TopSimilarContent(contentID string, k int) []Neighbor
	Stats() IndexStats
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
