// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"BLOGSMITH_DB_PATH" envDefault:"./data/blogsmith.db"`
	ServerHost string `env:"BLOGSMITH_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"BLOGSMITH_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"BLOGSMITH_ENV" envDefault:"development"`
	LogLevel   string `env:"BLOGSMITH_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"BLOGSMITH_UPLOADS_DIR" envDefault:"./uploads"`

	// Site metadata
	SiteURL         string `env:"BLOGSMITH_SITE_URL" envDefault:"http://localhost:8080"`
	SiteTitle       string `env:"BLOGSMITH_SITE_TITLE" envDefault:"blogsmith"`
	SiteDescription string `env:"BLOGSMITH_SITE_DESCRIPTION" envDefault:"Notes on infrastructure and automation"`

	// Writer pipeline configuration
	OpenAIAPIKey  string `env:"BLOGSMITH_OPENAI_API_KEY"`
	TextModel     string `env:"BLOGSMITH_TEXT_MODEL" envDefault:"gpt-4o"`
	ImageModel    string `env:"BLOGSMITH_IMAGE_MODEL" envDefault:"dall-e-3"`
	AuthorName    string `env:"BLOGSMITH_AUTHOR_NAME" envDefault:"AI-GPT-4o"`
	PostsPerRun   int    `env:"BLOGSMITH_POSTS_PER_RUN" envDefault:"5"`
	TopicDelaySec int    `env:"BLOGSMITH_TOPIC_DELAY_SEC" envDefault:"2"`
	AutoPublish   bool   `env:"BLOGSMITH_AUTO_PUBLISH" envDefault:"false"`
	WriterCron    string `env:"BLOGSMITH_WRITER_CRON" envDefault:"0 6 * * *"`

	// Cache configuration
	RedisURL     string `env:"BLOGSMITH_REDIS_URL"`                         // Optional Redis URL for the page cache
	CachePrefix  string `env:"BLOGSMITH_CACHE_PREFIX" envDefault:"bsmith:"` // Redis key prefix
	CacheTTL     int    `env:"BLOGSMITH_CACHE_TTL" envDefault:"300"`        // Page cache TTL in seconds
	CacheMaxSize int    `env:"BLOGSMITH_CACHE_MAX_SIZE" envDefault:"1000"`  // Max memory cache entries
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.PostsPerRun < 1 {
		return nil, fmt.Errorf("BLOGSMITH_POSTS_PER_RUN must be at least 1, got %d", cfg.PostsPerRun)
	}
	if cfg.TopicDelaySec < 0 {
		return nil, fmt.Errorf("BLOGSMITH_TOPIC_DELAY_SEC must not be negative, got %d", cfg.TopicDelaySec)
	}

	return cfg, nil
}
