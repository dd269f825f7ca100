// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package render

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"text/template"
)

// Engine renders named templates, organized by target family, through a
// shared FuncMap. Safe for concurrent Render calls once templates are
// loaded; not safe to call Load concurrently with Render.
type Engine struct {
	tmpl *template.Template
}

// NewEngine returns an Engine with no templates loaded yet.
func NewEngine() *Engine {
	return &Engine{tmpl: template.New("root").Funcs(FuncMap())}
}

// LoadDir parses every file matching pattern (e.g. "*.tmpl") under root,
// recursively, registering each as a named template keyed by its path
// relative to root with forward slashes, so "backend/model.go.tmpl" and
// "frontend/model.go.tmpl" never collide. Directories are walked in
// sorted order for reproducible parse-error reporting.
func (e *Engine) LoadDir(fsys fs.FS, root, pattern string) error {
	var paths []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		matched, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if matched {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("render: walk template dir %q: %w", root, err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("render: read template %q: %w", path, err)
		}
		name, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("render: relativize template path %q: %w", path, err)
		}
		name = filepath.ToSlash(name)

		if _, err := e.tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("render: parse template %q: %w", name, err)
		}
	}
	return nil
}

// LoadString registers one template by name from an in-memory string.
func (e *Engine) LoadString(name, content string) error {
	if _, err := e.tmpl.New(name).Parse(content); err != nil {
		return fmt.Errorf("render: parse template %q: %w", name, err)
	}
	return nil
}

// Render executes the named template against data and returns the
// rendered bytes.
func (e *Engine) Render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render: execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Names returns every loaded template name, sorted.
func (e *Engine) Names() []string {
	var names []string
	for _, t := range e.tmpl.Templates() {
		if t.Name() == "root" {
			continue
		}
		names = append(names, t.Name())
	}
	sort.Strings(names)
	return names
}
