// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"blogsmith/internal/imaging"
	"blogsmith/internal/model"
	"blogsmith/internal/store"
)

func newTestContent(t *testing.T) *Content {
	t.Helper()

	dir := t.TempDir()
	db, err := store.NewDB(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))

	processor := imaging.NewProcessor(filepath.Join(dir, "uploads"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewContent(db, processor, logger)
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSlugExists(t *testing.T) {
	c := newTestContent(t)
	ctx := context.Background()

	exists, err := c.SlugExists(ctx, "nothing-here")
	require.NoError(t, err)
	require.False(t, exists)

	authorID, err := c.EnsureAuthor(ctx, "AI-GPT-4o")
	require.NoError(t, err)

	_, err = c.CreatePost(ctx, model.Post{
		ID:          model.DraftID("taken-slug"),
		Title:       "Taken",
		Slug:        "taken-slug",
		PublishedAt: time.Now(),
		AuthorID:    authorID,
	})
	require.NoError(t, err)

	// Drafts count toward slug uniqueness too
	exists, err = c.SlugExists(ctx, "taken-slug")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestEnsureAuthorIdempotent(t *testing.T) {
	c := newTestContent(t)
	ctx := context.Background()

	first, err := c.EnsureAuthor(ctx, "AI-GPT-4o")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := c.EnsureAuthor(ctx, "AI-GPT-4o")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureAuthorEmptyName(t *testing.T) {
	c := newTestContent(t)

	_, err := c.EnsureAuthor(context.Background(), "!!!")
	require.Error(t, err)
}

func TestEnsureCategoryIdempotent(t *testing.T) {
	c := newTestContent(t)
	ctx := context.Background()

	first, err := c.EnsureCategory(ctx, "Cloud Infrastructure")
	require.NoError(t, err)

	second, err := c.EnsureCategory(ctx, "Cloud Infrastructure")
	require.NoError(t, err)
	require.Equal(t, first, second)

	other, err := c.EnsureCategory(ctx, "Observability")
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestUploadImage(t *testing.T) {
	c := newTestContent(t)
	ctx := context.Background()

	asset, err := c.UploadImage(ctx, testPNG(t, 640, 360), "cover.png")
	require.NoError(t, err)
	require.NotEmpty(t, asset.ID)
	require.Equal(t, "cover.png", asset.Filename)
	require.Equal(t, model.MimeTypePNG, asset.MimeType)
	require.Equal(t, int64(640), asset.Width)
	require.Equal(t, int64(360), asset.Height)

	// Original landed on disk under the uploads dir
	_, err = os.Stat(filepath.Join(c.processor.UploadDir(), asset.FilePath))
	require.NoError(t, err)

	stored, err := store.New(c.db).GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	require.Equal(t, asset.FilePath, stored.FilePath)
}

func TestUploadImageRejectsGarbage(t *testing.T) {
	c := newTestContent(t)

	_, err := c.UploadImage(context.Background(), []byte("not an image"), "bad.png")
	require.Error(t, err)
}

func TestCreatePostWithCategories(t *testing.T) {
	c := newTestContent(t)
	ctx := context.Background()

	authorID, err := c.EnsureAuthor(ctx, "AI-GPT-4o")
	require.NoError(t, err)
	categoryID, err := c.EnsureCategory(ctx, "General")
	require.NoError(t, err)

	created, err := c.CreatePost(ctx, model.Post{
		Title:       "Understanding Raft",
		Slug:        "understanding-raft",
		Excerpt:     "A short look at leader election.",
		PublishedAt: time.Now(),
		AuthorID:    authorID,
		CategoryIDs: []string{categoryID},
		Body: []model.Block{
			{Key: "k1", Type: model.BlockTypeBlock, Style: model.StyleNormal,
				Children: []model.Span{{Key: "s1", Type: model.SpanTypeSpan, Text: "Hello", Marks: []string{}}},
				MarkDefs: []string{}},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.IsDraft())

	got, err := store.New(c.db).GetPublishedPostBySlug(ctx, "understanding-raft")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, []string{categoryID}, got.CategoryIDs)
	require.Len(t, got.Body, 1)
	require.Equal(t, "Hello", got.Body[0].PlainText())
}

func TestCreatePostKeepsDraftID(t *testing.T) {
	c := newTestContent(t)
	ctx := context.Background()

	authorID, err := c.EnsureAuthor(ctx, "AI-GPT-4o")
	require.NoError(t, err)

	created, err := c.CreatePost(ctx, model.Post{
		ID:          model.DraftID("still-a-draft"),
		Title:       "Still a Draft",
		Slug:        "still-a-draft",
		PublishedAt: time.Now(),
		AuthorID:    authorID,
	})
	require.NoError(t, err)
	require.True(t, created.IsDraft())

	_, err = store.New(c.db).GetPublishedPostBySlug(ctx, "still-a-draft")
	require.Error(t, err)
}
