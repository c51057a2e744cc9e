// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"blogsmith/internal/model"
	"blogsmith/internal/store"
)

func newTestLogger(t *testing.T) (*slog.Logger, *store.Queries) {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	inner := slog.NewTextHandler(io.Discard, nil)
	return slog.New(NewEventLogHandler(inner, db)), store.New(db)
}

func TestWarnRecordsEvent(t *testing.T) {
	logger, queries := newTestLogger(t)

	logger.Warn("skipping topic, slug already exists", "slug", "some-slug")

	events, err := queries.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("listing events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	e := events[0]
	if e.Level != model.EventLevelWarning {
		t.Errorf("level = %q, want %q", e.Level, model.EventLevelWarning)
	}
	if e.Category != model.EventCategoryWriter {
		t.Errorf("category = %q, want %q", e.Category, model.EventCategoryWriter)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(e.Metadata), &meta); err != nil {
		t.Fatalf("metadata is not valid JSON: %v", err)
	}
	if meta["slug"] != "some-slug" {
		t.Errorf("metadata slug = %q, want %q", meta["slug"], "some-slug")
	}
}

func TestInfoNotRecorded(t *testing.T) {
	logger, queries := newTestLogger(t)

	logger.Info("created post", "slug", "whatever")

	events, err := queries.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("listing events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("got %d events, want 0", len(events))
	}
}

func TestExplicitCategoryWins(t *testing.T) {
	logger, queries := newTestLogger(t)

	logger.Error("something went wrong", "category", model.EventCategoryHTTP)

	events, err := queries.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("listing events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Category != model.EventCategoryHTTP {
		t.Errorf("category = %q, want %q", events[0].Category, model.EventCategoryHTTP)
	}
	if events[0].Level != model.EventLevelError {
		t.Errorf("level = %q, want %q", events[0].Level, model.EventLevelError)
	}
}
