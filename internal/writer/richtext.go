// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package writer

import (
	"github.com/google/uuid"

	"blogsmith/internal/model"
)

// BlocksFromSections converts generated sections into the store's flat
// rich-text block sequence. For each section a heading block is emitted if
// the heading is non-empty, followed by one paragraph block per paragraph.
// Order is preserved; a section with no heading and no paragraphs
// contributes nothing.
func BlocksFromSections(sections []Section) []model.Block {
	size := 0
	for _, s := range sections {
		if s.Heading != "" {
			size++
		}
		size += len(s.Paragraphs)
	}

	blocks := make([]model.Block, 0, size)
	for _, s := range sections {
		if s.Heading != "" {
			blocks = append(blocks, newBlock(model.StyleHeading, s.Heading))
		}
		for _, para := range s.Paragraphs {
			blocks = append(blocks, newBlock(model.StyleNormal, para))
		}
	}
	return blocks
}

// newBlock builds a single-span block with fresh keys.
func newBlock(style, text string) model.Block {
	return model.Block{
		Key:   uuid.NewString(),
		Type:  model.BlockTypeBlock,
		Style: style,
		Children: []model.Span{{
			Key:   uuid.NewString(),
			Type:  model.SpanTypeSpan,
			Marks: []string{},
			Text:  text,
		}},
		MarkDefs: []string{},
	}
}
