// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"testing"
	"time"
)

func TestGenerateFeed(t *testing.T) {
	published := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	data, err := GenerateFeed(
		FeedConfig{
			Title:       "Example Blog",
			SiteURL:     "https://example.com/",
			Description: "Notes on infrastructure.",
		},
		[]FeedItem{
			{Title: "Understanding Raft", Slug: "understanding-raft", Description: "Leader election.", PublishedAt: published},
			{Title: "Older Post", Slug: "older-post", PublishedAt: published.Add(-24 * time.Hour)},
		},
	)
	if err != nil {
		t.Fatalf("GenerateFeed: %v", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}

	if feed.Version != "2.0" {
		t.Errorf("version = %q", feed.Version)
	}
	if feed.Channel.Title != "Example Blog" {
		t.Errorf("channel title = %q", feed.Channel.Title)
	}
	if feed.Channel.Link != "https://example.com" {
		t.Errorf("channel link = %q", feed.Channel.Link)
	}
	if len(feed.Channel.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(feed.Channel.Items))
	}

	item := feed.Channel.Items[0]
	if item.Link != "https://example.com/posts/understanding-raft" {
		t.Errorf("item link = %q", item.Link)
	}
	if item.GUID != item.Link {
		t.Errorf("guid = %q, want link", item.GUID)
	}
	if item.PubDate != published.Format(time.RFC1123Z) {
		t.Errorf("pubDate = %q", item.PubDate)
	}
	if feed.Channel.LastBuildDate != item.PubDate {
		t.Errorf("lastBuildDate = %q, want newest item date", feed.Channel.LastBuildDate)
	}
}

func TestGenerateFeedEmpty(t *testing.T) {
	data, err := GenerateFeed(FeedConfig{Title: "Empty", SiteURL: "https://example.com"}, nil)
	if err != nil {
		t.Fatalf("GenerateFeed: %v", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}
	if len(feed.Channel.Items) != 0 {
		t.Errorf("got %d items, want 0", len(feed.Channel.Items))
	}
	if feed.Channel.LastBuildDate != "" {
		t.Errorf("lastBuildDate = %q, want empty", feed.Channel.LastBuildDate)
	}
}
