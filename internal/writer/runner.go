// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package writer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"blogsmith/internal/model"
	"blogsmith/internal/util"
)

// DefaultCategory is used when the generated document carries no category.
const DefaultCategory = "General"

// ContentStore is the gateway the runner writes through. Implementations
// are assumed to be the sole writer to the store while a run is in flight.
type ContentStore interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	UploadImage(ctx context.Context, data []byte, filename string) (model.Asset, error)
	EnsureAuthor(ctx context.Context, name string) (string, error)
	EnsureCategory(ctx context.Context, title string) (string, error)
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
}

// BlogGenerator produces blog documents and thumbnails for topics.
type BlogGenerator interface {
	GenerateBlog(ctx context.Context, topic string) (*GeneratedBlog, error)
	GenerateThumbnail(ctx context.Context, topic string) ([]byte, error)
}

// Options configures a run.
type Options struct {
	Topics      []string      // topic pool; DefaultTopics if empty
	PostsPerRun int           // topics selected per run
	TopicDelay  time.Duration // pause between topics
	AutoPublish bool          // create published documents instead of drafts
	AuthorName  string        // author reference for every created post
}

// Summary reports the outcome of a run.
type Summary struct {
	Selected int
	Created  int
	Skipped  int
	Failed   int
}

// Runner sequences the pipeline per selected topic. Topics are processed
// strictly sequentially; one topic's failure never aborts the run.
type Runner struct {
	gen     BlogGenerator
	store   ContentStore
	logger  *slog.Logger
	opts    Options
	limiter *rate.Limiter
	now     func() time.Time
}

// NewRunner creates a Runner. The inter-topic delay is enforced with a rate
// limiter so the pause is cancellable through the context.
func NewRunner(gen BlogGenerator, store ContentStore, logger *slog.Logger, opts Options) *Runner {
	if len(opts.Topics) == 0 {
		opts.Topics = DefaultTopics
	}
	if opts.PostsPerRun <= 0 {
		opts.PostsPerRun = 5
	}
	if opts.TopicDelay <= 0 {
		opts.TopicDelay = 2 * time.Second
	}
	if opts.AuthorName == "" {
		opts.AuthorName = "AI-GPT-4o"
	}

	limiter := rate.NewLimiter(rate.Every(opts.TopicDelay), 1)
	// Drain the initial token so the first Wait blocks for a full interval.
	limiter.Allow()

	return &Runner{
		gen:     gen,
		store:   store,
		logger:  logger,
		opts:    opts,
		limiter: limiter,
		now:     time.Now,
	}
}

// Run selects today's topics and processes each in order. It returns a
// non-nil error only for failures outside the per-topic loop (cancellation,
// or an empty topic pool); per-topic failures are logged and counted.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	if len(r.opts.Topics) == 0 {
		return sum, errors.New("no topics configured")
	}

	selected := SelectTopics(r.now(), r.opts.Topics, r.opts.PostsPerRun)
	sum.Selected = len(selected)
	r.logger.Info("writer run started", "topics", selected)

	for i, topic := range selected {
		err := r.processTopic(ctx, topic)
		switch {
		case err == nil:
			sum.Created++
		case errors.Is(err, ErrDuplicateSlug):
			sum.Skipped++
			r.logger.Warn("skipping topic, slug already exists", "topic", topic, "error", err)
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return sum, err
		default:
			sum.Failed++
			r.logger.Error("topic failed", "topic", topic, "error", err)
		}

		// Pause before the next topic to respect API rate limits.
		if i < len(selected)-1 {
			if err := r.limiter.Wait(ctx); err != nil {
				return sum, err
			}
		}
	}

	r.logger.Info("writer run finished",
		"selected", sum.Selected,
		"created", sum.Created,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
	)
	return sum, nil
}

// processTopic runs the full pipeline for one topic: generate text, check
// slug uniqueness, generate and upload the thumbnail, link author and
// category references, convert the body, and create the post document.
func (r *Runner) processTopic(ctx context.Context, topic string) error {
	blog, err := r.gen.GenerateBlog(ctx, topic)
	if err != nil {
		return err
	}

	slug := util.Slugify(blog.Slug)
	if slug == "" {
		slug = util.Slugify(blog.Title)
	}
	if slug == "" {
		return &SchemaError{Err: errors.New("document has no usable slug")}
	}

	exists, err := r.store.SlugExists(ctx, slug)
	if err != nil {
		return &StoreError{Op: "slug check", Err: err}
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSlug, slug)
	}

	imageData, err := r.gen.GenerateThumbnail(ctx, topic)
	if err != nil {
		return err
	}

	asset, err := r.store.UploadImage(ctx, imageData, slug+".png")
	if err != nil {
		return &StoreError{Op: "image upload", Err: err}
	}

	authorID, err := r.store.EnsureAuthor(ctx, r.opts.AuthorName)
	if err != nil {
		return &StoreError{Op: "ensure author", Err: err}
	}

	category := blog.Category
	if category == "" {
		category = DefaultCategory
	}
	categoryID, err := r.store.EnsureCategory(ctx, category)
	if err != nil {
		return &StoreError{Op: "ensure category", Err: err}
	}

	now := r.now()
	post := model.Post{
		Title:       blog.Title,
		Slug:        slug,
		Excerpt:     blog.Excerpt,
		PublishedAt: now,
		AuthorID:    authorID,
		CategoryIDs: []string{categoryID},
		ImageID:     asset.ID,
		Body:        BlocksFromSections(blog.Content),
		SEO: model.SEOMeta{
			MetaTitle:       blog.SEOTitle,
			MetaDescription: blog.SEODescription,
		},
	}
	if !r.opts.AutoPublish {
		// The draft id is derived from the slug, which the pre-check above
		// guarantees is fresh.
		post.ID = model.DraftID(slug)
	}

	created, err := r.store.CreatePost(ctx, post)
	if err != nil {
		return &StoreError{Op: "create post", Err: err}
	}

	r.logger.Info("post created",
		"title", created.Title,
		"id", created.ID,
		"draft", created.IsDraft(),
	)
	return nil
}
