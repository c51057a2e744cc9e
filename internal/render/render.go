// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the site templates and renders pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

// Renderer holds the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// New creates a Renderer with all page templates parsed against the base
// layout.
func New(templatesFS fs.FS) (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}
	if err := r.parseTemplates(templatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	baseLayout := "templates/layouts/base.html"

	pages, err := fs.ReadDir(templatesFS, "templates/pages")
	if err != nil {
		return fmt.Errorf("reading page templates: %w", err)
	}

	for _, entry := range pages {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".html")
		files := []string{baseLayout, path.Join("templates/pages", entry.Name())}

		tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		r.templates[name] = tmpl
	}

	return nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"truncate": func(s string, length int) string {
			if len(s) <= length {
				return s
			}
			return s[:length] + "..."
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	}
}

// Render executes the named page template into the response. The template
// runs into a buffer first so errors never leave a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, name string, data any) error {
	buf, err := r.RenderToBytes(name, data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = w.Write(buf)
	return err
}

// RenderToBytes executes the named page template and returns the output,
// for callers that cache rendered pages.
func (r *Renderer) RenderToBytes(name string, data any) ([]byte, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
