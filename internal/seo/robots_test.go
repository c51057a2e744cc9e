// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
)

func TestRobotsDefault(t *testing.T) {
	b := NewRobotsBuilder(RobotsConfig{SiteURL: "https://example.com/"})
	out := b.Build()

	if !strings.Contains(out, "User-agent: *\n") {
		t.Error("missing User-agent line")
	}
	if !strings.Contains(out, "Allow: /\n") {
		t.Error("missing Allow line")
	}
	if !strings.Contains(out, "Sitemap: https://example.com/sitemap.xml\n") {
		t.Errorf("missing or wrong Sitemap line:\n%s", out)
	}
}

func TestRobotsDisallowAll(t *testing.T) {
	b := NewRobotsBuilder(RobotsConfig{SiteURL: "https://example.com", DisallowAll: true})
	out := b.Build()

	if !strings.Contains(out, "Disallow: /\n") {
		t.Error("missing Disallow line")
	}
	if strings.Contains(out, "Sitemap:") {
		t.Error("staging robots.txt should not advertise the sitemap")
	}
}

func TestRobotsDisallowPaths(t *testing.T) {
	b := NewRobotsBuilder(RobotsConfig{
		SiteURL:       "https://example.com",
		DisallowPaths: []string{"/drafts"},
	})
	out := b.Build()

	if !strings.Contains(out, "Disallow: /drafts\n") {
		t.Errorf("missing Disallow path:\n%s", out)
	}
}
