// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	_ "github.com/tomtom215/learnrec/docs"
	"github.com/tomtom215/learnrec/internal/models"
	"github.com/tomtom215/learnrec/internal/recommend"
	"github.com/tomtom215/learnrec/internal/recommend/builder"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func newTestServer(t *testing.T, mw *ChiMiddleware) (http.Handler, *Handler) {
	t.Helper()
	engine, err := builder.NewEngine(recommend.DefaultConfig(), zerolog.Nop(),
		recommend.WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if mw == nil {
		cfg := DefaultChiMiddlewareConfig()
		cfg.RateLimitDisabled = true
		mw = NewChiMiddleware(cfg)
	}
	h := NewHandler(engine, 5*time.Second, zerolog.Nop())
	return NewRouter(h, mw).SetupChi(), h
}

func do(t *testing.T, srv http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (body %s)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
}

const goCourse = `{"id":"go-101","title":"Go Basics","category":"go","difficulty":"beginner","type":"course","popularity":50}`

func TestContentEndpoints(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)

	rec, env := do(t, srv, http.MethodPost, "/api/v1/content", goCourse)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST content status = %d, body %s", rec.Code, rec.Body.String())
	}
	var stored recommend.ContentItem
	decodeData(t, env, &stored)
	if stored.ID != "go-101" || stored.Version == 0 {
		t.Errorf("stored = %+v, want id go-101 with version", stored)
	}

	rec, env = do(t, srv, http.MethodGet, "/api/v1/content/go-101", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET content status = %d", rec.Code)
	}

	rec, env = do(t, srv, http.MethodGet, "/api/v1/content", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("LIST content status = %d", rec.Code)
	}
	var list models.ContentListResponse
	decodeData(t, env, &list)
	if list.Count != 1 {
		t.Errorf("list count = %d, want 1", list.Count)
	}

	rec, env = do(t, srv, http.MethodGet, "/api/v1/content/missing", "")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != models.CodeNotFound {
		t.Errorf("GET missing = %d %+v, want 404 NOT_FOUND", rec.Code, env.Error)
	}

	rec, _ = do(t, srv, http.MethodGet, "/api/v1/content/missing/similar", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("similar of missing = %d, want 404", rec.Code)
	}
}

func TestContentValidation(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"malformed json", `{"id":`, http.StatusBadRequest},
		{"missing type", `{"id":"x","difficulty":"beginner"}`, http.StatusBadRequest},
		{"rating out of range", `{"id":"x","difficulty":"beginner","type":"blog","rating":7}`, http.StatusBadRequest},
		{"bad difficulty", `{"id":"x","difficulty":"expert","type":"blog"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := do(t, srv, http.MethodPost, "/api/v1/content", tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			if env.Status != models.StatusError || env.Error == nil {
				t.Errorf("expected error envelope, got %+v", env)
			}
		})
	}
}

func TestUserEndpoints(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)

	if rec, _ := do(t, srv, http.MethodPost, "/api/v1/content", goCourse); rec.Code != http.StatusCreated {
		t.Fatalf("seed content: %d", rec.Code)
	}

	rec, env := do(t, srv, http.MethodGet, "/api/v1/users/alice/profile", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("profile before upsert = %d, want 404", rec.Code)
	}

	rec, env = do(t, srv, http.MethodPut, "/api/v1/users/alice/profile",
		`{"preferences":{"categories":["go"],"difficulty":"intermediate"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert = %d, body %s", rec.Code, rec.Body.String())
	}
	var profile recommend.UserProfile
	decodeData(t, env, &profile)
	if profile.Preferences.Difficulty != recommend.DifficultyIntermediate {
		t.Errorf("difficulty = %q, want intermediate", profile.Preferences.Difficulty)
	}
	if profile.Preferences.LearningStyle != recommend.StyleVisual {
		t.Errorf("unset fields keep defaults: style = %q", profile.Preferences.LearningStyle)
	}

	rec, _ = do(t, srv, http.MethodPut, "/api/v1/users/alice/profile", `{"preferences":{"difficulty":"expert"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid difficulty = %d, want 400", rec.Code)
	}

	rec, env = do(t, srv, http.MethodPost, "/api/v1/users/alice/events",
		`{"type":"completed","data":{"content_id":"go-101","rating":5}}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("record event = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeData(t, env, &profile)
	if len(profile.Behavior.Completed) != 1 {
		t.Errorf("completed = %d, want 1", len(profile.Behavior.Completed))
	}

	rec, env = do(t, srv, http.MethodGet, "/api/v1/users/alice/insights", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("insights = %d", rec.Code)
	}
	var insights recommend.Insights
	decodeData(t, env, &insights)
	if insights.AverageCompletedRating != 5 || len(insights.TopCategories) != 1 || insights.TopCategories[0] != "go" {
		t.Errorf("insights = %+v", insights)
	}

	rec, _ = do(t, srv, http.MethodGet, "/api/v1/users/alice/similar?k=5", "")
	if rec.Code != http.StatusOK {
		t.Errorf("similar users = %d, want 200", rec.Code)
	}
}

func TestRecordEventRejectsInvalid(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"unknown kind", `{"type":"liked","data":{"content_id":"c"}}`, models.CodeInvalidEvent},
		{"rating above range", `{"type":"completed","data":{"content_id":"c","rating":9}}`, models.CodeInvalidEvent},
		{"missing content id", `{"type":"viewed","data":{"dwell_seconds":3}}`, models.CodeInvalidEvent},
		{"payload of wrong shape", `{"type":"viewed","data":[1,2]}`, models.CodeInvalidEvent},
		{"missing type", `{"data":{"content_id":"c"}}`, models.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := do(t, srv, http.MethodPost, "/api/v1/users/bob/events", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestRecommendationEndpoints(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)

	for _, body := range []string{
		`{"id":"a","category":"go","difficulty":"advanced","type":"course","popularity":30}`,
		`{"id":"b","category":"go","difficulty":"advanced","type":"course","popularity":20}`,
		`{"id":"c","category":"go","difficulty":"advanced","type":"course","popularity":10}`,
	} {
		if rec, _ := do(t, srv, http.MethodPost, "/api/v1/content", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed content: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec, env := do(t, srv, http.MethodGet, "/api/v1/recommendations/popular?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("popular = %d", rec.Code)
	}
	var resp models.RecommendationsResponse
	decodeData(t, env, &resp)
	if resp.Count != 2 || resp.Recommendations[0].ContentID != "a" || resp.Recommendations[1].ContentID != "b" {
		t.Errorf("popular = %+v, want a,b", resp.Recommendations)
	}

	rec, env = do(t, srv, http.MethodGet, "/api/v1/users/newbie/recommendations", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("personalized = %d", rec.Code)
	}
	decodeData(t, env, &resp)
	if resp.Strategy != recommend.StrategyPersonalized {
		t.Errorf("strategy = %q, want personalized", resp.Strategy)
	}
	for _, r := range resp.Recommendations {
		if r.Category != recommend.CategoryPopular && r.Category != recommend.CategoryTrending {
			t.Errorf("unknown user got %s recommendation %s", r.Category, r.ContentID)
		}
	}

	for _, strategy := range []string{"hybrid", "collaborative", "content-based", "trending"} {
		rec, env = do(t, srv, http.MethodGet, "/api/v1/users/newbie/recommendations?strategy="+strategy, "")
		if rec.Code != http.StatusOK {
			t.Errorf("strategy %s = %d", strategy, rec.Code)
			continue
		}
		decodeData(t, env, &resp)
		if resp.Recommendations == nil {
			t.Errorf("strategy %s returned null recommendations", strategy)
		}
	}

	rec, env = do(t, srv, http.MethodGet, "/api/v1/users/newbie/recommendations?strategy=magic", "")
	if rec.Code != http.StatusBadRequest || env.Error == nil {
		t.Errorf("unknown strategy = %d, want 400", rec.Code)
	}

	rec, _ = do(t, srv, http.MethodGet, "/api/v1/recommendations/trending?user_id=newbie&limit=-3", "")
	if rec.Code != http.StatusOK {
		t.Errorf("trending with negative limit = %d, want 200", rec.Code)
	}
}

func TestHealthAndStats(t *testing.T) {
	t.Parallel()
	srv, h := newTestServer(t, nil)

	rec, _ := do(t, srv, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Errorf("live = %d", rec.Code)
	}

	h.RegisterHealthCheck("store", func(context.Context) error { return nil })
	rec, _ = do(t, srv, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Errorf("ready = %d, want 200", rec.Code)
	}

	h.RegisterHealthCheck("nats", func(context.Context) error { return errors.New("disconnected") })
	rec, env := do(t, srv, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready with failing check = %d, want 503", rec.Code)
	}
	var health models.HealthResponse
	decodeData(t, env, &health)
	if health.Status != "degraded" || health.Checks["nats"].Healthy || !health.Checks["store"].Healthy {
		t.Errorf("health = %+v", health)
	}

	rec, env = do(t, srv, http.MethodGet, "/api/v1/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats = %d", rec.Code)
	}
	var stats recommend.Stats
	decodeData(t, env, &stats)
	if stats.Profiles != 0 || stats.Content != 0 {
		t.Errorf("stats = %+v, want empty engine", stats)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mrec := httptest.NewRecorder()
	srv.ServeHTTP(mrec, req)
	if mrec.Code != http.StatusOK || !strings.Contains(mrec.Body.String(), "learnrec_") {
		t.Errorf("metrics = %d, want 200 with learnrec_ series", mrec.Code)
	}
}

type countingTrigger struct {
	calls    int
	accepted bool
}

func (c *countingTrigger) Trigger() bool {
	c.calls++
	return c.accepted
}

func TestRebuildIndexEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("rebuilds inline without a trigger", func(t *testing.T) {
		t.Parallel()
		srv, _ := newTestServer(t, nil)
		do(t, srv, http.MethodPost, "/api/v1/content", goCourse)
		do(t, srv, http.MethodPost, "/api/v1/content",
			`{"id":"go-201","title":"Go Concurrency","category":"go","difficulty":"beginner","type":"course"}`)

		rec, env := do(t, srv, http.MethodPost, "/api/v1/index/rebuild", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("rebuild = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp models.IndexRebuildResponse
		decodeData(t, env, &resp)
		if resp.Status != "completed" || resp.Index.ContentPairs != 1 {
			t.Errorf("response = %+v, want completed with 1 content pair", resp)
		}
	})

	t.Run("queues through the trigger", func(t *testing.T) {
		t.Parallel()
		srv, h := newTestServer(t, nil)
		trigger := &countingTrigger{accepted: true}
		h.SetIndexRebuildTrigger(trigger)

		rec, env := do(t, srv, http.MethodPost, "/api/v1/index/rebuild", "")
		if rec.Code != http.StatusAccepted {
			t.Fatalf("rebuild = %d, want 202", rec.Code)
		}
		var resp models.IndexRebuildResponse
		decodeData(t, env, &resp)
		if resp.Status != "queued" || trigger.calls != 1 {
			t.Errorf("response = %+v, calls = %d", resp, trigger.calls)
		}

		trigger.accepted = false
		_, env = do(t, srv, http.MethodPost, "/api/v1/index/rebuild", "")
		decodeData(t, env, &resp)
		if resp.Status != "already_queued" {
			t.Errorf("status = %q, want already_queued", resp.Status)
		}
	})

	t.Run("rejects GET", func(t *testing.T) {
		t.Parallel()
		srv, _ := newTestServer(t, nil)
		rec, _ := do(t, srv, http.MethodGet, "/api/v1/index/rebuild", "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("GET rebuild = %d, want 405", rec.Code)
		}
	})
}

func TestSwaggerDocs(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json = %d", rec.Code)
	}

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode doc.json: %v", err)
	}
	if doc.Info.Title != "Learnrec API" || doc.BasePath != "/api/v1" {
		t.Errorf("info = %+v, basePath = %q", doc.Info, doc.BasePath)
	}
	for _, path := range []string{"/users/{userID}/recommendations", "/content", "/index/rebuild"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("doc.json missing path %s", path)
		}
	}

	req = httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "swagger-ui") {
		t.Errorf("index.html = %d", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)

	rec, env := do(t, srv, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound || env.Error == nil {
		t.Errorf("unknown route = %d %+v", rec.Code, env.Error)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID on every response")
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	srv, _ := newTestServer(t, NewChiMiddleware(cfg))

	for i := 0; i < 2; i++ {
		if rec, _ := do(t, srv, http.MethodGet, "/api/v1/stats", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i, rec.Code)
		}
	}
	rec, env := do(t, srv, http.MethodGet, "/api/v1/stats", "")
	if rec.Code != http.StatusTooManyRequests || env.Error == nil || env.Error.Code != models.CodeRateLimited {
		t.Errorf("third request = %d %+v, want 429", rec.Code, env.Error)
	}

	if rec, _ := do(t, srv, http.MethodGet, "/api/v1/health/live", ""); rec.Code != http.StatusOK {
		t.Errorf("health is not rate limited: %d", rec.Code)
	}
}
