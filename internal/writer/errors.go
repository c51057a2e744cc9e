// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package writer

import "errors"

// ErrDuplicateSlug short-circuits a topic when its slug is already taken by
// an existing post. It is a control-flow signal, not a failure: the runner
// logs it as a skip and moves on.
var ErrDuplicateSlug = errors.New("slug already exists")

// GenerationError indicates the text or image API returned an error, empty
// output, or an undecodable payload.
type GenerationError struct {
	Kind string // "text" or "image"
	Err  error
}

func (e *GenerationError) Error() string {
	return "generating " + e.Kind + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }

// SchemaError indicates the model returned JSON that does not decode into
// the expected document shape.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return "generated document schema: " + e.Err.Error()
}

func (e *SchemaError) Unwrap() error { return e.Err }

// StoreError indicates a content-store read or write failed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "content store " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }
