// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/dipeo/codegen/internal/astcache"
	"github.com/dipeo/codegen/internal/astx"
	"golang.org/x/sync/errgroup"
)

// extract reads and parses every path in sourcePaths, consulting the AST
// cache before re-extracting each one. Extraction is bounded-parallel
// across files, the same errgroup.SetLimit(runtime.NumCPU()) shape the
// teacher uses for bounded enricher fan-out.
func (p *Pipeline) extract(ctx context.Context, sourcePaths []string, read SourceReader) (map[string]*astx.File, error) {
	var mu sync.Mutex
	files := make(map[string]*astx.File, len(sourcePaths))
	var errs []error

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, path := range sourcePaths {
		path := path
		g.Go(func() error {
			file, err := p.extractOne(gCtx, path, read)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("extract %s: %w", path, err))
				return nil
			}
			files[path] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, phaseErr("extract", errs)
	}
	return files, nil
}

func (p *Pipeline) extractOne(ctx context.Context, path string, read SourceReader) (*astx.File, error) {
	content, err := read(path)
	if err != nil {
		return nil, err
	}

	contentHash := p.deps.Hasher.HashBytes(content)

	if cached, err := p.deps.Cache.Get(ctx, path, contentHash); err == nil {
		return cached, nil
	} else if !errors.Is(err, astcache.ErrEntryNotFound) {
		p.log.Warn("ast cache lookup failed, re-extracting", "path", path, "error", err)
	}

	file, err := p.deps.Extractor.ExtractFile(ctx, path, content)
	if err != nil {
		return nil, err
	}

	if err := p.deps.Cache.Put(ctx, path, contentHash, file); err != nil {
		p.log.Warn("ast cache write failed, continuing without caching", "path", path, "error", err)
	}

	return file, nil
}
