// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// DraftIDPrefix marks a document as an unpublished draft. Documents whose id
// carries this prefix are never served publicly; stripping the prefix (or
// creating the document without it) publishes it. The convention must match
// the store exactly, so it is defined once here.
const DraftIDPrefix = "drafts."

// SEOMeta is the search-engine metadata sub-object of a post.
type SEOMeta struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

// Post is the unit persisted to the content store.
type Post struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	PublishedAt time.Time `json:"publishedAt"`
	AuthorID    string    `json:"author"`
	CategoryIDs []string  `json:"categories"`
	ImageID     string    `json:"mainImage"`
	Body        []Block   `json:"body"`
	SEO         SEOMeta   `json:"seo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsDraft returns true if the post id carries the draft prefix.
func (p *Post) IsDraft() bool {
	return strings.HasPrefix(p.ID, DraftIDPrefix)
}

// DraftID builds the document id for an unpublished draft of the given slug.
func DraftID(slug string) string {
	return DraftIDPrefix + slug
}
