// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pipeline

import (
	"fmt"

	"github.com/dipeo/codegen/internal/apply"
	"github.com/dipeo/codegen/internal/stage"
)

// writeStaged resets the staging tree and writes every generated file
// into it, producing the manifest the validate and apply phases consume.
func (p *Pipeline) writeStaged(files []stage.GeneratedFile) (*stage.Manifest, error) {
	if err := p.deps.Stager.Reset(); err != nil {
		return nil, fmt.Errorf("reset staging tree: %w", err)
	}
	manifest, err := p.deps.Stager.Write(files)
	if err != nil {
		return nil, fmt.Errorf("write staging tree: %w", err)
	}
	return manifest, nil
}

// ValidateStaged re-validates the already-staged tree without running any
// other phase, for the `codegen validate-staged` command.
func (p *Pipeline) ValidateStaged(syntaxOnly bool) error {
	return p.deps.Validator.ValidateTree(p.deps.StagingRoot, syntaxOnly)
}

// DiffStaged computes the Changes between the active tree and whatever is
// currently staged, for the `codegen diff-staged` command. Neither tree is
// modified.
func (p *Pipeline) DiffStaged() (*stage.Changes, error) {
	stagingManifest, err := stage.ScanManifest(p.deps.StagingRoot, p.deps.Hasher)
	if err != nil {
		return nil, fmt.Errorf("scan staging tree: %w", err)
	}
	activeManifest, err := stage.ScanManifest(p.deps.ActiveRoot, p.deps.Hasher)
	if err != nil {
		return nil, fmt.Errorf("scan active tree: %w", err)
	}
	return stage.Diff(activeManifest, stagingManifest), nil
}

// DryRunSummary is the would-add/would-modify/would-delete count distinct
// from DiffStaged's per-path output, for the `codegen dry-run` command.
type DryRunSummary struct {
	Changes     *stage.Changes
	WouldAdd    int
	WouldModify int
	WouldDelete int
}

// DryRun reuses the identical diff computation DiffStaged uses, plus a
// one-line summary count, so `dry-run` and `diff-staged` share one diff
// engine rather than diverging on what "the diff" means.
func (p *Pipeline) DryRun() (*DryRunSummary, error) {
	changes, err := p.DiffStaged()
	if err != nil {
		return nil, err
	}
	return &DryRunSummary{
		Changes:     changes,
		WouldAdd:    len(changes.Added),
		WouldModify: len(changes.Modified),
		WouldDelete: len(changes.Deleted),
	}, nil
}

// ApplyStaged promotes the already-staged tree into the active tree, for
// the `codegen apply` command, without re-running extract/build/render.
func (p *Pipeline) ApplyStaged(mode apply.Mode) (*apply.Result, error) {
	return p.deps.Applier.Apply(p.deps.StagingRoot, p.deps.ActiveRoot, mode)
}
