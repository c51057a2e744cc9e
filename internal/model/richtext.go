// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content document types persisted to the store.
package model

// Block types and styles used in rich-text bodies.
const (
	BlockTypeBlock = "block"
	SpanTypeSpan   = "span"

	StyleNormal  = "normal"
	StyleHeading = "h2"
)

// Span is a run of text inside a rich-text block. Marks are kept for
// format compatibility with portable-text consumers; this system never
// emits any.
type Span struct {
	Key   string   `json:"_key"`
	Type  string   `json:"_type"`
	Marks []string `json:"marks"`
	Text  string   `json:"text"`
}

// Block is one unit of rich text: a heading or a paragraph with its child
// spans. Blocks are immutable once built and embedded verbatim into the
// post document body.
type Block struct {
	Key      string   `json:"_key"`
	Type     string   `json:"_type"`
	Style    string   `json:"style"`
	Children []Span   `json:"children"`
	MarkDefs []string `json:"markDefs"`
}

// IsHeading returns true if the block renders as a section heading.
func (b Block) IsHeading() bool {
	return b.Style == StyleHeading
}

// PlainText returns the concatenated text of the block's spans.
func (b Block) PlainText() string {
	if len(b.Children) == 1 {
		return b.Children[0].Text
	}
	var s string
	for _, c := range b.Children {
		s += c.Text
	}
	return s
}
