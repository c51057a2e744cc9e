// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"blogsmith/internal/model"
)

// htmlSanitizer strips anything dangerous from rendered paragraph HTML.
// The generated text is model output, so it gets the same treatment as
// user-generated content.
var htmlSanitizer = bluemonday.UGCPolicy()

// RenderBlocks converts a rich-text body into HTML. Heading blocks become
// <h2> elements; normal blocks are rendered as markdown paragraphs so
// inline formatting in the generated text survives, then sanitized.
func RenderBlocks(blocks []model.Block) template.HTML {
	var sb strings.Builder

	for _, block := range blocks {
		text := block.PlainText()
		if text == "" {
			continue
		}

		if block.IsHeading() {
			sb.WriteString("<h2>")
			sb.WriteString(html.EscapeString(text))
			sb.WriteString("</h2>\n")
			continue
		}

		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(text), &buf); err != nil {
			// Fall back to an escaped paragraph
			sb.WriteString("<p>")
			sb.WriteString(html.EscapeString(text))
			sb.WriteString("</p>\n")
			continue
		}
		sb.Write(htmlSanitizer.SanitizeBytes(buf.Bytes()))
	}

	return template.HTML(sb.String()) //nolint:gosec // sanitized above
}
