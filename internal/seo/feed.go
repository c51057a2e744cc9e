// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"time"
)

// FeedConfig holds the channel-level fields of the RSS feed.
type FeedConfig struct {
	Title       string
	SiteURL     string
	Description string
}

// FeedItem is a single entry in the RSS feed.
type FeedItem struct {
	Title       string
	Slug        string
	Description string
	PublishedAt time.Time
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// GenerateFeed builds an RSS 2.0 document for the given items. Items are
// expected newest-first; the first item's date becomes lastBuildDate.
func GenerateFeed(cfg FeedConfig, items []FeedItem) ([]byte, error) {
	base := strings.TrimSuffix(cfg.SiteURL, "/")

	rssItems := make([]rssItem, 0, len(items))
	for _, item := range items {
		postURL := base + "/posts/" + item.Slug
		rssItems = append(rssItems, rssItem{
			Title:       item.Title,
			Link:        postURL,
			Description: item.Description,
			PubDate:     item.PublishedAt.Format(time.RFC1123Z),
			GUID:        postURL,
		})
	}

	var lastBuild string
	if len(items) > 0 {
		lastBuild = items[0].PublishedAt.Format(time.RFC1123Z)
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:         cfg.Title,
			Link:          base,
			Description:   cfg.Description,
			LastBuildDate: lastBuild,
			Items:         rssItems,
		},
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
