// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"blogsmith/internal/cache"
	"blogsmith/internal/model"
	"blogsmith/internal/store"
	"blogsmith/internal/writer"
)

type fakeRunner struct {
	mu      sync.Mutex
	calls   int
	block   chan struct{}
	summary writer.Summary
	err     error
}

func (f *fakeRunner) Run(ctx context.Context) (writer.Summary, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.summary, f.err
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestScheduler(t *testing.T, runner *fakeRunner) (*Scheduler, cache.Cacher, *store.Queries) {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	pageCache := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = pageCache.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(runner, pageCache, db, "0 6 * * *", logger), pageCache, store.New(db)
}

func TestRunOnceClearsCacheAndRecordsEvent(t *testing.T) {
	runner := &fakeRunner{summary: writer.Summary{Selected: 5, Created: 3, Skipped: 1, Failed: 1}}
	s, pageCache, queries := newTestScheduler(t, runner)
	ctx := context.Background()

	if err := pageCache.Set(ctx, "page:/", []byte("stale"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	s.RunOnce(ctx)

	if runner.callCount() != 1 {
		t.Fatalf("runner calls = %d, want 1", runner.callCount())
	}
	if _, err := pageCache.Get(ctx, "page:/"); !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("cache not cleared after run: %v", err)
	}

	events, err := queries.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("listing events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Category != model.EventCategoryWriter {
		t.Errorf("event category = %q", events[0].Category)
	}
}

func TestRunOnceKeepsCacheWhenNothingCreated(t *testing.T) {
	runner := &fakeRunner{summary: writer.Summary{Selected: 5, Skipped: 5}}
	s, pageCache, _ := newTestScheduler(t, runner)
	ctx := context.Background()

	if err := pageCache.Set(ctx, "page:/", []byte("current"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	s.RunOnce(ctx)

	if _, err := pageCache.Get(ctx, "page:/"); err != nil {
		t.Errorf("cache cleared although no posts were created: %v", err)
	}
}

func TestRunOnceSkipsOverlap(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{})}
	s, _, _ := newTestScheduler(t, runner)

	done := make(chan struct{})
	go func() {
		s.RunOnce(context.Background())
		close(done)
	}()

	// Wait for the first run to be in flight
	for runner.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	s.RunOnce(context.Background())
	if runner.callCount() != 1 {
		t.Errorf("overlapping run executed, calls = %d", runner.callCount())
	}

	close(runner.block)
	<-done
}

func TestRunOnceErrorNoEvent(t *testing.T) {
	runner := &fakeRunner{err: errors.New("selector failed")}
	s, _, queries := newTestScheduler(t, runner)

	s.RunOnce(context.Background())

	events, err := queries.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("listing events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0 for failed run", len(events))
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	runner := &fakeRunner{}
	s, _, _ := newTestScheduler(t, runner)
	s.spec = "not a cron spec"

	if err := s.Start(); err == nil {
		s.Stop()
		t.Error("Start accepted an invalid cron spec")
	}
}
