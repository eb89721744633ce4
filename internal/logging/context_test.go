// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGeneratedIDs(t *testing.T) {
	t.Parallel()

	if got := len(GenerateCorrelationID()); got != 8 {
		t.Errorf("correlation id length = %d, want 8", got)
	}
	if got := len(GenerateRequestID()); got != 36 {
		t.Errorf("request id length = %d, want 36", got)
	}
	if GenerateRequestID() == GenerateRequestID() {
		t.Error("request ids should be unique")
	}
}

func TestContextIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if CorrelationIDFromContext(ctx) != "" || RequestIDFromContext(ctx) != "" {
		t.Fatal("empty context should carry no ids")
	}

	ctx = ContextWithCorrelationID(ctx, "abc12345")
	ctx = ContextWithRequestID(ctx, "req-1")
	if got := CorrelationIDFromContext(ctx); got != "abc12345" {
		t.Errorf("correlation id = %q", got)
	}
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("request id = %q", got)
	}
}

func TestEnrich(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := NewTestLogger(&buf).With().Str("component", "api").Logger()

	ctx := ContextWithRequestID(context.Background(), "req-9")
	Enrich(ctx, base).Info().Msg("served")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-9"`) {
		t.Errorf("missing request id in %q", out)
	}
	if !strings.Contains(out, `"component":"api"`) {
		t.Errorf("component field lost in %q", out)
	}
	if strings.Contains(out, "correlation_id") {
		t.Errorf("unexpected correlation id in %q", out)
	}
}

func TestEnrich_NilContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := NewTestLogger(&buf).With().Str("component", "engine").Logger()

	//nolint:staticcheck // nil context is part of the contract
	Enrich(nil, base).Warn().Msg("no context")

	out := buf.String()
	if !strings.Contains(out, `"component":"engine"`) || !strings.Contains(out, "no context") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "request_id") {
		t.Errorf("unexpected request id in %q", out)
	}
}
