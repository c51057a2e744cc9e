// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers for the public site.
package handler

import (
	"database/sql"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"blogsmith/internal/cache"
	"blogsmith/internal/model"
	"blogsmith/internal/render"
	"blogsmith/internal/seo"
	"blogsmith/internal/store"
)

// homeListLimit caps the number of posts on the homepage and in the feed.
const homeListLimit = 20

// pageCachePrefix namespaces rendered pages in the shared cache so they
// can be invalidated together after a writer run.
const pageCachePrefix = "page:"

// FrontendConfig holds the site settings the frontend needs.
type FrontendConfig struct {
	SiteName        string
	SiteURL         string
	SiteDescription string
	UploadsDir      string
	CacheTTL        time.Duration
	IsDevelopment   bool
}

// Frontend serves the public blog pages.
type Frontend struct {
	queries   *store.Queries
	renderer  *render.Renderer
	pageCache cache.Cacher
	logger    *slog.Logger
	cfg       FrontendConfig
	static    fs.FS
}

// NewFrontend creates the public site handler. static is the embedded
// static asset filesystem rooted at "static".
func NewFrontend(db *sql.DB, renderer *render.Renderer, pageCache cache.Cacher, static fs.FS, logger *slog.Logger, cfg FrontendConfig) *Frontend {
	return &Frontend{
		queries:   store.New(db),
		renderer:  renderer,
		pageCache: pageCache,
		logger:    logger,
		cfg:       cfg,
		static:    static,
	}
}

// Routes mounts the public routes on the router.
func (h *Frontend) Routes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/posts/{slug}", h.Post)
	r.Get("/category/{slug}", h.Category)
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
	r.Get("/feed.xml", h.Feed)
	r.Get("/healthz", h.Health)

	r.Handle("/static/*", http.FileServer(http.FS(h.static)))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(h.cfg.UploadsDir))))
}

type siteData struct {
	SiteName string
	Year     int
}

type postView struct {
	Title       string
	Slug        string
	URL         string
	Excerpt     string
	BodyHTML    template.HTML
	PublishedAt time.Time
	AuthorName  string
	ImageURL    string
	Categories  []categoryView
}

type categoryView struct {
	Title string
	Slug  string
	URL   string
}

type homeData struct {
	Meta  seo.Meta
	Site  siteData
	Posts []postView
}

type postPageData struct {
	Meta   seo.Meta
	Site   siteData
	Post   postView
	Schema template.JS
}

type categoryPageData struct {
	Meta     seo.Meta
	Site     siteData
	Category categoryView
	Posts    []postView
}

func (h *Frontend) site() siteData {
	return siteData{SiteName: h.cfg.SiteName, Year: time.Now().Year()}
}

func (h *Frontend) seoSite() seo.SiteConfig {
	return seo.SiteConfig{
		SiteName:        h.cfg.SiteName,
		SiteURL:         h.cfg.SiteURL,
		SiteDescription: h.cfg.SiteDescription,
	}
}

// servePage writes a cached page if present, otherwise builds it, caches
// it, and writes it. Cache errors are logged and never fail the request.
func (h *Frontend) servePage(w http.ResponseWriter, r *http.Request, contentType string, build func() ([]byte, error)) {
	ctx := r.Context()
	key := pageCachePrefix + r.URL.Path

	if body, err := h.pageCache.Get(ctx, key); err == nil {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Cache", "HIT")
		_, _ = w.Write(body)
		return
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		h.logger.Warn("page cache read failed", "category", model.EventCategoryHTTP, "key", key, "error", err)
	}

	body, err := build()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("page render failed", "category", model.EventCategoryHTTP, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.pageCache.Set(ctx, key, body, h.cfg.CacheTTL); err != nil {
		h.logger.Warn("page cache write failed", "category", model.EventCategoryHTTP, "key", key, "error", err)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Cache", "MISS")
	_, _ = w.Write(body)
}

// Home renders the post list.
func (h *Frontend) Home(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "text/html; charset=utf-8", func() ([]byte, error) {
		posts, err := h.queries.ListPublishedPosts(r.Context(), homeListLimit)
		if err != nil {
			return nil, err
		}

		views := make([]postView, 0, len(posts))
		for i := range posts {
			views = append(views, h.cardView(r, &posts[i]))
		}

		return h.renderer.RenderToBytes("home", homeData{
			Meta:  seo.BuildSiteMeta("", h.seoSite()),
			Site:  h.site(),
			Posts: views,
		})
	})
}

// Post renders a single published post.
func (h *Frontend) Post(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	h.servePage(w, r, "text/html; charset=utf-8", func() ([]byte, error) {
		post, err := h.queries.GetPublishedPostBySlug(r.Context(), slug)
		if err != nil {
			return nil, err
		}

		view := h.fullView(r, &post)
		postData := seo.PostData{
			Title:           post.Title,
			Slug:            post.Slug,
			Excerpt:         post.Excerpt,
			MetaTitle:       post.SEO.MetaTitle,
			MetaDescription: post.SEO.MetaDescription,
			ImageURL:        view.ImageURL,
			PublishedAt:     post.PublishedAt,
			UpdatedAt:       post.UpdatedAt,
			AuthorName:      view.AuthorName,
		}

		return h.renderer.RenderToBytes("post", postPageData{
			Meta:   seo.BuildPostMeta(postData, h.seoSite()),
			Site:   h.site(),
			Post:   view,
			Schema: seo.BuildArticleSchema(postData, h.seoSite()),
		})
	})
}

// Category renders the archive page for one category.
func (h *Frontend) Category(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	h.servePage(w, r, "text/html; charset=utf-8", func() ([]byte, error) {
		category, err := h.queries.GetCategoryBySlug(r.Context(), slug)
		if err != nil {
			return nil, err
		}

		posts, err := h.queries.ListPublishedPostsByCategory(r.Context(), category.ID)
		if err != nil {
			return nil, err
		}

		views := make([]postView, 0, len(posts))
		for i := range posts {
			views = append(views, h.cardView(r, &posts[i]))
		}

		return h.renderer.RenderToBytes("category", categoryPageData{
			Meta:     seo.BuildSiteMeta(category.Title+" - "+h.cfg.SiteName, h.seoSite()),
			Site:     h.site(),
			Category: categoryView{Title: category.Title, Slug: category.Slug, URL: "/category/" + category.Slug},
			Posts:    views,
		})
	})
}

// Sitemap serves sitemap.xml built from published content.
func (h *Frontend) Sitemap(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "application/xml; charset=utf-8", func() ([]byte, error) {
		posts, err := h.queries.ListPublishedPosts(r.Context(), 1000)
		if err != nil {
			return nil, err
		}
		categories, err := h.queries.ListCategories(r.Context())
		if err != nil {
			return nil, err
		}

		sitemapPosts := make([]seo.SitemapPost, 0, len(posts))
		for _, p := range posts {
			sitemapPosts = append(sitemapPosts, seo.SitemapPost{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
		}
		sitemapCategories := make([]seo.SitemapCategory, 0, len(categories))
		for _, c := range categories {
			sitemapCategories = append(sitemapCategories, seo.SitemapCategory{Slug: c.Slug})
		}

		return seo.GenerateSitemap(h.cfg.SiteURL, sitemapPosts, sitemapCategories)
	})
}

// Robots serves robots.txt. Staging deployments block all crawlers.
func (h *Frontend) Robots(w http.ResponseWriter, r *http.Request) {
	builder := seo.NewRobotsBuilder(seo.RobotsConfig{
		SiteURL:     h.cfg.SiteURL,
		DisallowAll: h.cfg.IsDevelopment,
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(builder.Build()))
}

// Feed serves the RSS feed of recent posts.
func (h *Frontend) Feed(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "application/rss+xml; charset=utf-8", func() ([]byte, error) {
		posts, err := h.queries.ListPublishedPosts(r.Context(), homeListLimit)
		if err != nil {
			return nil, err
		}

		items := make([]seo.FeedItem, 0, len(posts))
		for _, p := range posts {
			description := p.SEO.MetaDescription
			if description == "" {
				description = p.Excerpt
			}
			items = append(items, seo.FeedItem{
				Title:       p.Title,
				Slug:        p.Slug,
				Description: description,
				PublishedAt: p.PublishedAt,
			})
		}

		return seo.GenerateFeed(seo.FeedConfig{
			Title:       h.cfg.SiteName,
			SiteURL:     h.cfg.SiteURL,
			Description: h.cfg.SiteDescription,
		}, items)
	})
}

// Health reports liveness for load balancers.
func (h *Frontend) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// cardView builds a post view for list pages, using the medium image
// variant for cards.
func (h *Frontend) cardView(r *http.Request, post *model.Post) postView {
	view := postView{
		Title:       post.Title,
		Slug:        post.Slug,
		URL:         "/posts/" + post.Slug,
		Excerpt:     post.Excerpt,
		PublishedAt: post.PublishedAt,
	}
	view.AuthorName = h.authorName(r, post.AuthorID)
	if post.ImageID != "" {
		if asset, err := h.queries.GetAssetByID(r.Context(), post.ImageID); err == nil {
			view.ImageURL = "/uploads/" + path.Join(model.VariantMedium, asset.ID, asset.Filename)
		}
	}
	return view
}

// fullView builds a post view for the post page, with the rendered body
// and the original image.
func (h *Frontend) fullView(r *http.Request, post *model.Post) postView {
	view := postView{
		Title:       post.Title,
		Slug:        post.Slug,
		URL:         "/posts/" + post.Slug,
		Excerpt:     post.Excerpt,
		BodyHTML:    render.RenderBlocks(post.Body),
		PublishedAt: post.PublishedAt,
	}
	view.AuthorName = h.authorName(r, post.AuthorID)
	if post.ImageID != "" {
		if asset, err := h.queries.GetAssetByID(r.Context(), post.ImageID); err == nil {
			view.ImageURL = "/uploads/" + filepath.ToSlash(asset.FilePath)
		}
	}

	if len(post.CategoryIDs) > 0 {
		categories, err := h.queries.ListCategories(r.Context())
		if err == nil {
			byID := make(map[string]model.Category, len(categories))
			for _, c := range categories {
				byID[c.ID] = c
			}
			for _, id := range post.CategoryIDs {
				if c, ok := byID[id]; ok {
					view.Categories = append(view.Categories, categoryView{
						Title: c.Title, Slug: c.Slug, URL: "/category/" + c.Slug,
					})
				}
			}
		}
	}

	return view
}

func (h *Frontend) authorName(r *http.Request, authorID string) string {
	if authorID == "" {
		return ""
	}
	author, err := h.queries.GetAuthorByID(r.Context(), authorID)
	if err != nil {
		return ""
	}
	return author.Name
}
