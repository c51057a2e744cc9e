// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"html/template"
	"strings"
	"time"
)

// Meta holds the SEO meta tag data for one page.
type Meta struct {
	Title         string // <title> content
	Description   string // meta description
	Canonical     string // canonical URL
	OGTitle       string // Open Graph title
	OGDescription string // Open Graph description
	OGImage       string // Open Graph image URL (absolute)
	OGType        string // Open Graph type (website, article)
	OGSiteName    string // Open Graph site name
	OGURL         string // Open Graph URL
	TwitterCard   string // Twitter card type
}

// PostData contains the post fields used for building meta tags.
type PostData struct {
	Title           string
	Slug            string
	Excerpt         string
	MetaTitle       string
	MetaDescription string
	ImageURL        string
	PublishedAt     time.Time
	UpdatedAt       time.Time
	AuthorName      string
}

// SiteConfig contains site-wide settings for SEO.
type SiteConfig struct {
	SiteName        string
	SiteURL         string
	SiteDescription string
}

// BuildPostMeta creates meta tags for a post page, preferring the post's
// own meta fields over derived ones.
func BuildPostMeta(post PostData, site SiteConfig) Meta {
	meta := Meta{
		OGType:      "article",
		OGSiteName:  site.SiteName,
		TwitterCard: "summary_large_image",
	}

	if post.MetaTitle != "" {
		meta.Title = post.MetaTitle
	} else {
		meta.Title = post.Title
	}
	meta.OGTitle = meta.Title

	if post.MetaDescription != "" {
		meta.Description = post.MetaDescription
	} else {
		meta.Description = truncateText(post.Excerpt, 160)
	}
	meta.OGDescription = meta.Description

	if post.ImageURL != "" {
		meta.OGImage = makeAbsoluteURL(post.ImageURL, site.SiteURL)
	}

	meta.Canonical = strings.TrimSuffix(site.SiteURL, "/") + "/posts/" + post.Slug
	meta.OGURL = meta.Canonical

	return meta
}

// BuildSiteMeta creates meta tags for the homepage and archive pages.
func BuildSiteMeta(title string, site SiteConfig) Meta {
	if title == "" {
		title = site.SiteName
	}
	return Meta{
		Title:         title,
		Description:   site.SiteDescription,
		Canonical:     site.SiteURL,
		OGTitle:       title,
		OGDescription: site.SiteDescription,
		OGType:        "website",
		OGSiteName:    site.SiteName,
		OGURL:         site.SiteURL,
		TwitterCard:   "summary_large_image",
	}
}

// ArticleSchema represents JSON-LD Article structured data.
type ArticleSchema struct {
	Context          string        `json:"@context"`
	Type             string        `json:"@type"`
	Headline         string        `json:"headline"`
	Description      string        `json:"description,omitempty"`
	Image            string        `json:"image,omitempty"`
	DatePublished    string        `json:"datePublished,omitempty"`
	DateModified     string        `json:"dateModified,omitempty"`
	Author           *PersonSchema `json:"author,omitempty"`
	Publisher        *OrgSchema    `json:"publisher,omitempty"`
	MainEntityOfPage string        `json:"mainEntityOfPage,omitempty"`
}

// PersonSchema represents JSON-LD Person structured data.
type PersonSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// OrgSchema represents JSON-LD Organization structured data.
type OrgSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// BuildArticleSchema creates JSON-LD Article structured data for a post.
func BuildArticleSchema(post PostData, site SiteConfig) template.JS {
	article := ArticleSchema{
		Context:          "https://schema.org",
		Type:             "Article",
		Headline:         post.Title,
		Description:      post.MetaDescription,
		MainEntityOfPage: strings.TrimSuffix(site.SiteURL, "/") + "/posts/" + post.Slug,
	}

	if post.ImageURL != "" {
		article.Image = makeAbsoluteURL(post.ImageURL, site.SiteURL)
	}
	if !post.PublishedAt.IsZero() {
		article.DatePublished = post.PublishedAt.Format(time.RFC3339)
	}
	if !post.UpdatedAt.IsZero() {
		article.DateModified = post.UpdatedAt.Format(time.RFC3339)
	}
	if post.AuthorName != "" {
		article.Author = &PersonSchema{Type: "Person", Name: post.AuthorName}
	}
	article.Publisher = &OrgSchema{Type: "Organization", Name: site.SiteName}

	return marshalJSONLD(article)
}

func marshalJSONLD(v any) template.JS {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return template.JS(data)
}

// truncateText truncates text to maxLen characters at a word boundary.
func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}

	truncated := text[:maxLen]
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "..."
}

// makeAbsoluteURL prepends the site URL to relative paths.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
