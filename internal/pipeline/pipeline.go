// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package pipeline drives the phase-sequential generation run: AST
// extraction, AST caching, spec loading, IR building, template rendering,
// staging, validation, and applying. Phases run in the order the package
// name implies. Only extraction runs its units (one source file each)
// concurrently, bounded by runtime.NumCPU() with the teacher's
// errgroup-bounded fan-out pattern; the other phases work sequentially.
package pipeline

import (
	"context"
	"time"

	"github.com/dipeo/codegen/internal/apply"
	"github.com/dipeo/codegen/internal/astcache"
	"github.com/dipeo/codegen/internal/astx"
	"github.com/dipeo/codegen/internal/obs/logging"
	"github.com/dipeo/codegen/internal/render"
	"github.com/dipeo/codegen/internal/specs"
	"github.com/dipeo/codegen/internal/stage"
	"github.com/dipeo/codegen/internal/typemap"
)

// TreeValidator matches internal/validate.Validator's ValidateTree method,
// kept local so this package doesn't need to import internal/validate
// just to name the type (the same structural-typing seam internal/apply
// already uses for the same interface).
type TreeValidator interface {
	ValidateTree(root string, syntaxOnly bool) error
}

// SourceReader reads one source file's content. Satisfied by os.ReadFile
// directly; a distinct type only so tests can substitute an in-memory
// fixture set without touching disk.
type SourceReader func(path string) ([]byte, error)

// Dependencies wires every phase's collaborator. All fields are required
// except Logger (defaults to logging.Default()) and Overrides (defaults to
// an empty table).
type Dependencies struct {
	Extractor   *astx.Extractor
	Cache       *astcache.Cache
	Hasher      stage.Hasher
	SpecConfig  specs.Config
	NodeDecode  specs.NodeDecoder
	QueryDecode specs.QueryDecoder
	Overrides   typemap.OverrideTable
	Engine      *render.Engine
	Stager      *stage.Stager
	Validator   TreeValidator
	Applier     *apply.Applier
	Logger      *logging.Logger

	// ActiveRoot is the tree Apply promotes into; StagingRoot is managed by
	// Stager and read back here for ScanManifest-based diffing.
	ActiveRoot  string
	StagingRoot string

	// BackendDir, SchemaDir, FrontendDir are the staging-relative output
	// roots the render phase writes generated paths under.
	BackendDir  string
	SchemaDir   string
	FrontendDir string
}

// Pipeline runs a full generation cycle over one set of Dependencies.
type Pipeline struct {
	deps Dependencies
	log  *logging.Logger
}

// New returns a ready-to-run Pipeline. It panics if any required
// dependency is nil, the same fail-fast constructor contract the
// teacher's analyzer constructors use.
func New(deps Dependencies) *Pipeline {
	switch {
	case deps.Extractor == nil:
		panic("pipeline: Extractor must not be nil")
	case deps.Cache == nil:
		panic("pipeline: Cache must not be nil")
	case deps.Hasher == nil:
		panic("pipeline: Hasher must not be nil")
	case deps.NodeDecode == nil:
		panic("pipeline: NodeDecode must not be nil")
	case deps.QueryDecode == nil:
		panic("pipeline: QueryDecode must not be nil")
	case deps.Engine == nil:
		panic("pipeline: Engine must not be nil")
	case deps.Stager == nil:
		panic("pipeline: Stager must not be nil")
	case deps.Validator == nil:
		panic("pipeline: Validator must not be nil")
	case deps.Applier == nil:
		panic("pipeline: Applier must not be nil")
	}

	log := deps.Logger
	if log == nil {
		log = logging.Default()
	}

	return &Pipeline{deps: deps, log: log.With("component", "pipeline")}
}

// Generate runs every phase in order and returns the run's Report. A
// phase that fails stops the run there: a phase downstream of a broken
// one (rendering after a failed build, say) would only manufacture
// confusing secondary failures on top of the real one.
func (p *Pipeline) Generate(ctx context.Context, sourcePaths []string, read SourceReader, mode apply.Mode) (*Report, error) {
	report := NewReport()
	log := p.log.With("run_id", report.RunID)
	log.Info("generation run started", "mode", mode)

	start := time.Now()
	files, err := p.extract(ctx, sourcePaths, read)
	report.recordPhase("extract", time.Since(start), phaseErrorCount(err))
	if err != nil {
		return p.fail(report, log, err)
	}

	if ctx.Err() != nil {
		return p.fail(report, log, ctx.Err())
	}

	start = time.Now()
	built, err := p.build(files, read)
	report.recordPhase("build", time.Since(start), phaseErrorCount(err))
	if err != nil {
		return p.fail(report, log, err)
	}

	if ctx.Err() != nil {
		return p.fail(report, log, ctx.Err())
	}

	start = time.Now()
	generated, err := p.renderAll(built)
	report.recordPhase("render", time.Since(start), phaseErrorCount(err))
	if err != nil {
		return p.fail(report, log, err)
	}

	if ctx.Err() != nil {
		return p.fail(report, log, ctx.Err())
	}

	start = time.Now()
	manifest, err := p.writeStaged(generated)
	report.recordPhase("stage", time.Since(start), phaseErrorCount(err))
	if err != nil {
		return p.fail(report, log, err)
	}
	report.FilesStaged = len(manifest.Files)

	if ctx.Err() != nil {
		return p.fail(report, log, ctx.Err())
	}

	start = time.Now()
	syntaxOnly := mode == apply.ModeSyntaxOnly || mode == apply.ModeDryRun
	err = p.deps.Validator.ValidateTree(p.deps.StagingRoot, syntaxOnly)
	report.recordPhase("validate", time.Since(start), phaseErrorCount(err))
	if err != nil {
		return p.fail(report, log, err)
	}
	report.FilesValidated = len(manifest.Files)

	if ctx.Err() != nil {
		return p.fail(report, log, ctx.Err())
	}

	start = time.Now()
	result, err := p.deps.Applier.Apply(p.deps.StagingRoot, p.deps.ActiveRoot, mode)
	report.recordPhase("apply", time.Since(start), phaseErrorCount(err))
	if err != nil {
		return p.fail(report, log, err)
	}
	if result != nil {
		report.FilesApplied = result.FilesWritten
		report.FilesDeleted = result.FilesDeleted
	}

	report.finish(true)
	log.Info("generation run finished", "duration_ms", report.DurationMs)
	return report, nil
}

// fail finishes the report as unsuccessful and logs the failure exactly
// once, here at the driver boundary — every phase function below only
// returns an error, it never logs one itself.
func (p *Pipeline) fail(report *Report, log *logging.Logger, err error) (*Report, error) {
	report.finish(false)
	log.Error("generation run failed", "error", err)
	return report, err
}

func phaseErrorCount(err error) int {
	if err == nil {
		return 0
	}
	type unwrapper interface{ Unwrap() []error }
	if u, ok := err.(unwrapper); ok {
		return len(u.Unwrap())
	}
	return 1
}
