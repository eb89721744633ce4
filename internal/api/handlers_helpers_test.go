// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/learnrec/internal/recommend"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"plain":        "plain",
		"line\nbreak":  "line\\x0abreak",
		"tab\there":    "tab\\x09here",
		"del\x7f":      "del\\x7f",
		"unicode café": "unicode café",
	}
	for in, want := range tests {
		if got := sanitizeLogValue(in); got != want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRespondEngineErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("profile %q: %w", "x", recommend.ErrNotFound), http.StatusNotFound},
		{"invalid event", fmt.Errorf("%w: bad", recommend.ErrInvalidEvent), http.StatusBadRequest},
		{"invalid content", fmt.Errorf("%w: bad", recommend.ErrInvalidContent), http.StatusBadRequest},
		{"cancelled", context.Canceled, statusClientClosedRequest},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			respondEngineError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestGetIntParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  int
	}{
		{"", 7},
		{"limit=3", 3},
		{"limit=-2", -2},
		{"limit=abc", 7},
		{"limit=%205%20", 5},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		if got := getIntParam(r, "limit", 7); got != tt.want {
			t.Errorf("getIntParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
