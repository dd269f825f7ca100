// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package specs

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// Config locates the canonical source directories. Per the two-copies Open
// Question, node specs and query specs are each read from exactly one
// directory — the loader never merges candidate directories.
type Config struct {
	NodeSpecDir    string
	NodeSpecGlob   string // e.g. "*.spec.ts"
	QuerySpecDir   string
	QuerySpecGlob  string // e.g. "*.ts"
}

// DefaultConfig matches the canonical source tree layout.
func DefaultConfig(root string) Config {
	return Config{
		NodeSpecDir:   filepath.Join(root, "models", "src", "specifications", "nodes"),
		NodeSpecGlob:  "*.spec.ts",
		QuerySpecDir:  filepath.Join(root, "models", "src", "frontend", "query-definitions"),
		QuerySpecGlob: "*.ts",
	}
}

// Decoder turns one source file's content into a NodeSpec or QuerySpec. The
// concrete decoding strategy (e.g. walking astx declarations for a known
// factory-call shape) is supplied by the caller, keeping this package
// agnostic of any particular TS authoring convention.
type NodeDecoder func(path string, content []byte) (*NodeSpec, error)
type QueryDecoder func(path string, content []byte) (*QuerySpec, error)

// DiscoverFiles returns every file under dir matching glob, sorted by
// canonical path, so downstream ordering is reproducible regardless of
// filesystem iteration order.
func DiscoverFiles(dir, glob string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		matched, matchErr := filepath.Match(glob, d.Name())
		if matchErr != nil {
			return matchErr
		}
		if matched {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("specs: discover %s: %w", dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadNodeSpecs discovers and decodes every node spec file, returning them
// in canonical-path order. read supplies file content for a path.
func LoadNodeSpecs(cfg Config, decode NodeDecoder, read func(string) ([]byte, error)) ([]NodeSpec, error) {
	paths, err := DiscoverFiles(cfg.NodeSpecDir, cfg.NodeSpecGlob)
	if err != nil {
		return nil, err
	}

	specList := make([]NodeSpec, 0, len(paths))
	for _, path := range paths {
		content, err := read(path)
		if err != nil {
			return nil, fmt.Errorf("specs: read %s: %w", path, err)
		}
		spec, err := decode(path, content)
		if err != nil {
			return nil, fmt.Errorf("specs: decode %s: %w", path, err)
		}
		spec.SourcePath = path
		specList = append(specList, *spec)
	}
	return specList, nil
}

// LoadQuerySpecs discovers and decodes every query spec file, in canonical
// path order.
func LoadQuerySpecs(cfg Config, decode QueryDecoder, read func(string) ([]byte, error)) ([]QuerySpec, error) {
	paths, err := DiscoverFiles(cfg.QuerySpecDir, cfg.QuerySpecGlob)
	if err != nil {
		return nil, err
	}

	specList := make([]QuerySpec, 0, len(paths))
	for _, path := range paths {
		content, err := read(path)
		if err != nil {
			return nil, fmt.Errorf("specs: read %s: %w", path, err)
		}
		spec, err := decode(path, content)
		if err != nil {
			return nil, fmt.Errorf("specs: decode %s: %w", path, err)
		}
		spec.SourcePath = path
		specList = append(specList, *spec)
	}
	return specList, nil
}
