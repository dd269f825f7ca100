// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package stage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Classification tags a GeneratedFile by what kind of artifact it is.
type Classification string

const (
	ClassModel          Classification = "model"
	ClassEnum           Classification = "enum"
	ClassSchema         Classification = "schema"
	ClassOperation      Classification = "operation"
	ClassFrontendConfig Classification = "frontend_config"
	ClassValidation     Classification = "validation"
	ClassHandlerStub    Classification = "handler_stub"
)

// GeneratedFile is one rendered target file, still owned by the Stager
// until it is promoted to the active tree by the Applier.
type GeneratedFile struct {
	Path           string
	Content        []byte
	Classification Classification
}

// Stager writes GeneratedFiles into a staging tree and produces the
// manifest the Validator and Applier consume.
type Stager struct {
	root   string
	hasher Hasher
}

// NewStager returns a Stager rooted at root.
func NewStager(root string, hasher Hasher) *Stager {
	if hasher == nil {
		hasher = NewSHA256Hasher(0)
	}
	return &Stager{root: root, hasher: hasher}
}

// Reset atomically clears the staging tree by renaming it aside and
// deleting the old copy, then recreating an empty root. If root does not
// exist yet, it is created directly.
func (s *Stager) Reset() error {
	if _, err := os.Stat(s.root); err == nil {
		aside := s.root + fmt.Sprintf(".stale-%d", time.Now().UnixNano())
		if err := os.Rename(s.root, aside); err != nil {
			return fmt.Errorf("stage: move aside staging root: %w", err)
		}
		if err := os.RemoveAll(aside); err != nil {
			return fmt.Errorf("stage: remove stale staging root: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stage: stat staging root: %w", err)
	}
	return os.MkdirAll(s.root, 0750)
}

// Write renders files into the staging tree in path order and returns
// the resulting manifest. Paths are forward-slash-normalized, newline
// endings are normalized to "\n", and content is written as UTF-8.
func (s *Stager) Write(files []GeneratedFile) (*Manifest, error) {
	manifest := NewManifest(s.root)

	sorted := make([]GeneratedFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for _, file := range sorted {
		relPath := normalizePath(file.Path)
		content := normalizeNewlines(file.Content)
		absPath := filepath.Join(s.root, filepath.FromSlash(relPath))

		if err := os.MkdirAll(filepath.Dir(absPath), 0750); err != nil {
			return nil, fmt.Errorf("stage: create directory for %s: %w", relPath, err)
		}
		if err := os.WriteFile(absPath, content, 0640); err != nil {
			return nil, fmt.Errorf("stage: write %s: %w", relPath, err)
		}

		entry := FileEntry{
			Path: relPath,
			Hash: s.hasher.HashBytes(content),
			Size: int64(len(content)),
		}
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("stage: invalid entry for %s: %w", relPath, err)
		}
		manifest.Files[relPath] = entry
	}

	return manifest, nil
}

func normalizePath(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "\\", "/")
}

func normalizeNewlines(content []byte) []byte {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
	return content
}

// ScanManifest walks root and builds a Manifest from the files actually on
// disk, for comparing the active tree against a freshly staged one.
func ScanManifest(root string, hasher Hasher) (*Manifest, error) {
	manifest := NewManifest(root)

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return manifest, nil
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		hash, err := hasher.HashFile(path)
		if err != nil {
			return fmt.Errorf("stage: hash %s: %w", rel, err)
		}
		relPath := normalizePath(rel)
		manifest.Files[relPath] = FileEntry{
			Path: relPath,
			Hash: hash,
			Size: info.Size(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return manifest, nil
}
