// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the content writer on a cron schedule.
package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"blogsmith/internal/cache"
	"blogsmith/internal/model"
	"blogsmith/internal/store"
	"blogsmith/internal/writer"
)

// WriterRunner is the part of the writer the scheduler drives.
type WriterRunner interface {
	Run(ctx context.Context) (writer.Summary, error)
}

// Scheduler triggers writer runs on a cron expression and invalidates the
// page cache after each run so new posts appear immediately.
type Scheduler struct {
	runner    WriterRunner
	pageCache cache.Cacher
	queries   *store.Queries
	cron      *cron.Cron
	spec      string
	logger    *slog.Logger
	running   atomic.Bool
}

// New creates a scheduler. spec is a standard five-field cron expression.
func New(runner WriterRunner, pageCache cache.Cacher, db *sql.DB, spec string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:    runner,
		pageCache: pageCache,
		queries:   store.New(db),
		cron:      cron.New(),
		spec:      spec,
		logger:    logger,
	}
}

// Start registers the writer job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "category", model.EventCategorySystem, "spec", s.spec)
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped", "category", model.EventCategorySystem)
}

// RunOnce executes a single writer run. Overlapping runs are skipped: a
// run still in progress when the next tick fires wins.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("skipping writer run, previous run still in progress",
			"category", model.EventCategoryWriter)
		return
	}
	defer s.running.Store(false)

	started := time.Now()
	summary, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("writer run failed",
			"category", model.EventCategoryWriter, "error", err)
		return
	}

	s.logger.Info("writer run finished",
		"category", model.EventCategoryWriter,
		"selected", summary.Selected,
		"created", summary.Created,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"duration", time.Since(started).Round(time.Millisecond).String(),
	)

	if summary.Created > 0 {
		if err := s.pageCache.Clear(ctx); err != nil {
			s.logger.Warn("page cache clear failed",
				"category", model.EventCategoryWriter, "error", err)
		}
	}

	s.recordRun(summary, started)
}

// recordRun writes a run summary into the event log.
func (s *Scheduler) recordRun(summary writer.Summary, started time.Time) {
	metadata, _ := json.Marshal(map[string]any{
		"selected":    summary.Selected,
		"created":     summary.Created,
		"skipped":     summary.Skipped,
		"failed":      summary.Failed,
		"started_at":  started.Format(time.RFC3339),
		"finished_at": time.Now().Format(time.RFC3339),
	})

	_, err := s.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:     model.EventLevelInfo,
		Category:  model.EventCategoryWriter,
		Message:   "writer run completed",
		Metadata:  string(metadata),
		CreatedAt: time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to record writer run",
			"category", model.EventCategoryWriter, "error", err)
	}
}
