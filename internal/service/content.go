// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service contains the content gateway: a thin layer over the store
// exposing the operations the writer pipeline and the site need.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"blogsmith/internal/imaging"
	"blogsmith/internal/model"
	"blogsmith/internal/store"
	"blogsmith/internal/util"
)

// Content is the gateway over the content store. Find-or-create operations
// are a read followed by a conditional write; they are safe because the
// writer runs single-threaded and is the store's only writer.
type Content struct {
	db        *sql.DB
	queries   *store.Queries
	processor *imaging.Processor
	logger    *slog.Logger
}

// NewContent creates the content gateway.
func NewContent(db *sql.DB, processor *imaging.Processor, logger *slog.Logger) *Content {
	return &Content{
		db:        db,
		queries:   store.New(db),
		processor: processor,
		logger:    logger,
	}
}

// SlugExists reports whether any post document (draft or published) already
// uses the given slug.
func (c *Content) SlugExists(ctx context.Context, slug string) (bool, error) {
	n, err := c.queries.CountPostsBySlug(ctx, slug)
	if err != nil {
		return false, fmt.Errorf("counting posts by slug: %w", err)
	}
	return n > 0, nil
}

// UploadImage stores raw image bytes as an asset: the processed original and
// its sized variants are written under the uploads directory and an asset
// record is created.
func (c *Content) UploadImage(ctx context.Context, data []byte, filename string) (model.Asset, error) {
	id := uuid.NewString()
	c.logger.Info("uploading image", "filename", filename, "asset_id", id)

	result, err := c.processor.ProcessImage(data, id, filename)
	if err != nil {
		return model.Asset{}, fmt.Errorf("processing image: %w", err)
	}

	if _, err := c.processor.CreateAllVariants(result.FilePath, id, filename); err != nil {
		// Variants are a rendering nicety; the original is already saved
		c.logger.Warn("failed to create image variants", "asset_id", id, "error", err)
	}

	asset, err := c.queries.CreateAsset(ctx, store.CreateAssetParams{
		ID:        id,
		Filename:  filename,
		MimeType:  result.MimeType,
		Size:      result.Size,
		Width:     int64(result.Width),
		Height:    int64(result.Height),
		FilePath:  result.FilePath,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return model.Asset{}, fmt.Errorf("recording asset: %w", err)
	}
	return asset, nil
}

// EnsureAuthor returns the id of the author document with the slugified
// name, creating it if absent.
func (c *Content) EnsureAuthor(ctx context.Context, name string) (string, error) {
	slug := util.Slugify(name)
	if slug == "" {
		return "", fmt.Errorf("author name %q produces an empty slug", name)
	}

	author, err := c.queries.GetAuthorBySlug(ctx, slug)
	if err == nil {
		return author.ID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("finding author: %w", err)
	}

	c.logger.Info("creating author", "name", name)
	created, err := c.queries.CreateAuthor(ctx, store.CreateAuthorParams{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("creating author: %w", err)
	}
	return created.ID, nil
}

// EnsureCategory returns the id of the category document with the exact
// title, creating it if absent. Lookup is by title, not slug, so retitled
// categories with matching slugs stay distinct.
func (c *Content) EnsureCategory(ctx context.Context, title string) (string, error) {
	category, err := c.queries.GetCategoryByTitle(ctx, title)
	if err == nil {
		return category.ID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("finding category: %w", err)
	}

	c.logger.Info("creating category", "title", title)
	created, err := c.queries.CreateCategory(ctx, store.CreateCategoryParams{
		ID:        uuid.NewString(),
		Title:     title,
		Slug:      util.Slugify(title),
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("creating category: %w", err)
	}
	return created.ID, nil
}

// CreatePost persists a post document and its category links in one
// transaction. A post arriving without an id gets a store-assigned one,
// which makes it published; draft ids are set by the caller.
func (c *Content) CreatePost(ctx context.Context, post model.Post) (model.Post, error) {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}

	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Post{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := c.queries.WithTx(tx)
	created, err := qtx.CreatePost(ctx, store.CreatePostParams{
		ID:              post.ID,
		Title:           post.Title,
		Slug:            post.Slug,
		Excerpt:         post.Excerpt,
		PublishedAt:     post.PublishedAt,
		AuthorID:        post.AuthorID,
		ImageID:         post.ImageID,
		Body:            post.Body,
		MetaTitle:       post.SEO.MetaTitle,
		MetaDescription: post.SEO.MetaDescription,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	})
	if err != nil {
		return model.Post{}, err
	}

	for i, categoryID := range post.CategoryIDs {
		if err := qtx.AddPostCategory(ctx, created.ID, categoryID, i); err != nil {
			return model.Post{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Post{}, fmt.Errorf("committing post: %w", err)
	}

	created.CategoryIDs = post.CategoryIDs
	return created, nil
}
