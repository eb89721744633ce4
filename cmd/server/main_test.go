// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package main

import (
	"testing"
	"time"

	"github.com/tomtom215/learnrec/internal/config"
)

func TestTreeConfig(t *testing.T) {
	cfg := config.SupervisorConfig{
		FailureThreshold: 7,
		FailureDecay:     45,
		FailureBackoff:   20 * time.Second,
		ShutdownTimeout:  5 * time.Second,
	}

	got := treeConfig(&cfg)
	if got.FailureThreshold != 7 || got.FailureDecay != 45 {
		t.Errorf("failure settings = %v/%v, want 7/45", got.FailureThreshold, got.FailureDecay)
	}
	if got.FailureBackoff != 20*time.Second {
		t.Errorf("FailureBackoff = %v, want 20s", got.FailureBackoff)
	}
	if got.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", got.ShutdownTimeout)
	}
}
