// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

type mockRebuilder struct {
	calls atomic.Int32
	err   error
	done  chan struct{}
}

func newMockRebuilder(err error) *mockRebuilder {
	return &mockRebuilder{err: err, done: make(chan struct{}, 16)}
}

func (m *mockRebuilder) RebuildIndex(ctx context.Context) error {
	m.calls.Add(1)
	m.done <- struct{}{}
	if m.err != nil {
		return m.err
	}
	return ctx.Err()
}

func (m *mockRebuilder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for rebuild")
	}
}

var _ suture.Service = (*IndexRebuildService)(nil)

func TestNewIndexRebuildService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewIndexRebuildService(newMockRebuilder(nil), IndexRebuildConfig{}, zerolog.Nop())
	if svc.config.Timeout != 10*time.Minute {
		t.Errorf("Timeout = %v, want 10m", svc.config.Timeout)
	}
	if svc.String() != "index-rebuild" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestIndexRebuildService_NoRebuildWithoutTrigger(t *testing.T) {
	t.Parallel()

	engine := newMockRebuilder(nil)
	svc := NewIndexRebuildService(engine, IndexRebuildConfig{}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
	if engine.calls.Load() != 0 {
		t.Errorf("calls = %d, want 0", engine.calls.Load())
	}
}

func TestIndexRebuildService_Trigger(t *testing.T) {
	t.Parallel()

	t.Run("coalesces pending requests", func(t *testing.T) {
		t.Parallel()
		svc := NewIndexRebuildService(newMockRebuilder(nil), IndexRebuildConfig{}, zerolog.Nop())
		if !svc.Trigger() {
			t.Fatal("first Trigger() = false, want true")
		}
		if svc.Trigger() {
			t.Error("second Trigger() while pending = true, want false")
		}
	})

	t.Run("runs each accepted request", func(t *testing.T) {
		t.Parallel()
		engine := newMockRebuilder(nil)
		svc := NewIndexRebuildService(engine, IndexRebuildConfig{}, zerolog.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		svc.Trigger()
		engine.wait(t)
		for !svc.Trigger() {
			time.Sleep(time.Millisecond)
		}
		engine.wait(t)

		cancel()
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
		if engine.calls.Load() != 2 {
			t.Errorf("calls = %d, want 2", engine.calls.Load())
		}
	})

	t.Run("keeps serving after a failed rebuild", func(t *testing.T) {
		t.Parallel()
		engine := newMockRebuilder(errors.New("index busy"))
		svc := NewIndexRebuildService(engine, IndexRebuildConfig{Timeout: time.Second}, zerolog.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		svc.Trigger()
		engine.wait(t)
		for !svc.Trigger() {
			time.Sleep(time.Millisecond)
		}
		engine.wait(t)

		cancel()
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	})
}
