// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pipeline

import (
	"fmt"

	"github.com/dipeo/codegen/internal/astx"
	"github.com/dipeo/codegen/internal/ir"
	"github.com/dipeo/codegen/internal/specs"
)

// buildResult carries every IR tree one generation run needs to render.
type buildResult struct {
	backend  *ir.Backend
	frontend *ir.Frontend
	schema   *ir.Schema
}

// build loads Node and Query Specifications from the configured spec
// directories (a separate source tree from the domain-interface files
// already parsed into files, per the two-diverging-directories design
// note) and folds them together with the AST-derived enum registry into
// the three IR trees.
func (p *Pipeline) build(files map[string]*astx.File, read SourceReader) (*buildResult, error) {
	nodeSpecs, err := specs.LoadNodeSpecs(p.deps.SpecConfig, p.deps.NodeDecode, read)
	if err != nil {
		return nil, fmt.Errorf("load node specs: %w", err)
	}
	querySpecs, err := specs.LoadQuerySpecs(p.deps.SpecConfig, p.deps.QueryDecode, read)
	if err != nil {
		return nil, fmt.Errorf("load query specs: %w", err)
	}

	if err := specs.Validate(nodeSpecs); err != nil {
		return nil, err
	}

	registry := ir.BuildEnumRegistry(files)

	backend, err := ir.BuildBackend(nodeSpecs, registry, p.deps.Overrides)
	if err != nil {
		return nil, err
	}

	frontend, err := ir.BuildFrontend(nodeSpecs, querySpecs, registry, p.deps.Overrides)
	if err != nil {
		return nil, err
	}

	schema, err := ir.BuildSchema(backend, frontend)
	if err != nil {
		return nil, err
	}

	return &buildResult{backend: backend, frontend: frontend, schema: schema}, nil
}
