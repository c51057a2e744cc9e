// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"blogsmith/internal/model"
)

func block(style, text string) model.Block {
	return model.Block{
		Key:   "k-" + text,
		Type:  model.BlockTypeBlock,
		Style: style,
		Children: []model.Span{
			{Key: "s-" + text, Type: model.SpanTypeSpan, Text: text, Marks: []string{}},
		},
		MarkDefs: []string{},
	}
}

func TestRenderBlocks(t *testing.T) {
	out := string(RenderBlocks([]model.Block{
		block(model.StyleHeading, "Getting Started"),
		block(model.StyleNormal, "Plain paragraph text."),
	}))

	if !strings.Contains(out, "<h2>Getting Started</h2>") {
		t.Errorf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, "<p>Plain paragraph text.</p>") {
		t.Errorf("missing paragraph:\n%s", out)
	}
}

func TestRenderBlocksInlineMarkdown(t *testing.T) {
	out := string(RenderBlocks([]model.Block{
		block(model.StyleNormal, "Use `kubectl get pods` to list **running** pods."),
	}))

	if !strings.Contains(out, "<code>kubectl get pods</code>") {
		t.Errorf("inline code not rendered:\n%s", out)
	}
	if !strings.Contains(out, "<strong>running</strong>") {
		t.Errorf("bold not rendered:\n%s", out)
	}
}

func TestRenderBlocksSanitizesScript(t *testing.T) {
	out := string(RenderBlocks([]model.Block{
		block(model.StyleNormal, `Before <script>alert("x")</script> after.`),
	}))

	if strings.Contains(out, "<script>") {
		t.Errorf("script tag survived sanitization:\n%s", out)
	}
}

func TestRenderBlocksEscapesHeading(t *testing.T) {
	out := string(RenderBlocks([]model.Block{
		block(model.StyleHeading, `A <b>bold</b> claim`),
	}))

	if strings.Contains(out, "<b>") {
		t.Errorf("heading HTML not escaped:\n%s", out)
	}
}

func TestRenderBlocksSkipsEmpty(t *testing.T) {
	out := string(RenderBlocks([]model.Block{
		block(model.StyleNormal, ""),
		block(model.StyleHeading, ""),
	}))

	if out != "" {
		t.Errorf("empty blocks produced output: %q", out)
	}
}
