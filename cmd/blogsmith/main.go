// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"blogsmith/internal/cache"
	"blogsmith/internal/config"
	"blogsmith/internal/handler"
	"blogsmith/internal/imaging"
	"blogsmith/internal/logging"
	"blogsmith/internal/middleware"
	"blogsmith/internal/render"
	"blogsmith/internal/scheduler"
	"blogsmith/internal/service"
	"blogsmith/internal/store"
	"blogsmith/internal/version"
	"blogsmith/internal/writer"
	"blogsmith/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	writeOnce := flag.Bool("write", false, "Run one writer batch and exit")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "blogsmith - automated blog with a scheduled content writer\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGSMITH_OPENAI_API_KEY  OpenAI API key (required for the writer)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGSMITH_DB_PATH         SQLite database path (default: ./data/blogsmith.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGSMITH_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGSMITH_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGSMITH_SITE_URL        Public site URL (default: http://localhost:8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGSMITH_WRITER_CRON     Writer schedule (default: 0 6 * * *)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGSMITH_AUTO_PUBLISH    Publish directly instead of drafting (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGSMITH_REDIS_URL       Redis URL for the page cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("blogsmith %s\n", info)
		os.Exit(0)
	}

	if err := run(*writeOnce); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(writeOnce bool) error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting blogsmith",
		"version", version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}.String(),
		"env", cfg.Env,
	)

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.UploadsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade the logger to tee WARN and ERROR records into the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	// Writer pipeline
	processor := imaging.NewProcessor(cfg.UploadsDir)
	gateway := service.NewContent(db, processor, logger)

	var runner *writer.Runner
	if cfg.OpenAIAPIKey != "" {
		client := writer.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.TextModel, cfg.ImageModel)
		generator := writer.NewGenerator(client, client, logger)
		runner = writer.NewRunner(generator, gateway, logger, writer.Options{
			PostsPerRun: cfg.PostsPerRun,
			TopicDelay:  time.Duration(cfg.TopicDelaySec) * time.Second,
			AutoPublish: cfg.AutoPublish,
			AuthorName:  cfg.AuthorName,
		})
	}

	if writeOnce {
		if runner == nil {
			return fmt.Errorf("BLOGSMITH_OPENAI_API_KEY is required for -write")
		}
		summary, err := runner.Run(context.Background())
		if err != nil {
			return fmt.Errorf("writer run: %w", err)
		}
		slog.Info("writer run finished",
			"selected", summary.Selected,
			"created", summary.Created,
			"skipped", summary.Skipped,
			"failed", summary.Failed,
		)
		return nil
	}

	// Page cache
	pageCache, err := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initializing page cache: %w", err)
	}
	defer func() { _ = pageCache.Close() }()
	if cfg.UseRedisCache() {
		slog.Info("page cache using redis", "prefix", cfg.CachePrefix)
	}

	renderer, err := render.New(web.Templates)
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	frontend := handler.NewFrontend(db, renderer, pageCache, web.Static, logger, handler.FrontendConfig{
		SiteName:        cfg.SiteTitle,
		SiteURL:         cfg.SiteURL,
		SiteDescription: cfg.SiteDescription,
		UploadsDir:      cfg.UploadsDir,
		CacheTTL:        time.Duration(cfg.CacheTTL) * time.Second,
		IsDevelopment:   cfg.IsDevelopment(),
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	frontend.Routes(r)

	// Scheduler
	var sched *scheduler.Scheduler
	if runner != nil {
		sched = scheduler.New(runner, pageCache, db, cfg.WriterCron, logger)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer sched.Stop()
	} else {
		slog.Warn("writer disabled, BLOGSMITH_OPENAI_API_KEY not set")
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.ServerAddr(), "site_url", cfg.SiteURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
