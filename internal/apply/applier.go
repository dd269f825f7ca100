// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package apply

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dipeo/codegen/internal/stage"
)

// Mode selects how far Apply goes.
type Mode int

const (
	// ModeFull runs the validator (syntax + optional type checks) before applying.
	ModeFull Mode = iota
	// ModeSyntaxOnly skips the static type checker but still validates syntax.
	ModeSyntaxOnly
	// ModeDryRun computes the diff and stops; nothing is written.
	ModeDryRun
)

// TreeValidator re-validates a tree before promotion is trusted and after
// it completes. Satisfied by internal/validate.Validator without either
// package importing the other.
type TreeValidator interface {
	ValidateTree(root string, syntaxOnly bool) error
}

// Applier promotes a staging tree to the active tree.
type Applier struct {
	backups   BackupManager
	validator TreeValidator
	hasher    stage.Hasher
}

// NewApplier returns an Applier using the given backup manager and
// validator. hasher may be nil to use the default SHA256Hasher.
func NewApplier(backups BackupManager, validator TreeValidator, hasher stage.Hasher) *Applier {
	if hasher == nil {
		hasher = stage.NewSHA256Hasher(0)
	}
	return &Applier{backups: backups, validator: validator, hasher: hasher}
}

// Result reports what an Apply run did.
type Result struct {
	Changes      *stage.Changes
	BackupPath   string
	RolledBack   bool
	FilesWritten int
	FilesDeleted int
}

// Apply diffs stagingRoot against activeRoot, and — unless mode is
// ModeDryRun — backs up activeRoot, writes every staged file into it,
// removes the deleted paths, and re-validates. On
// post-apply verification failure it restores from backup and returns an
// error; activeRoot is left exactly as it was before Apply was called.
func (a *Applier) Apply(stagingRoot, activeRoot string, mode Mode) (*Result, error) {
	stagingManifest, err := stage.ScanManifest(stagingRoot, a.hasher)
	if err != nil {
		return nil, fmt.Errorf("apply: scan staging tree: %w", err)
	}
	activeManifest, err := stage.ScanManifest(activeRoot, a.hasher)
	if err != nil {
		return nil, fmt.Errorf("apply: scan active tree: %w", err)
	}

	changes := stage.Diff(activeManifest, stagingManifest)
	result := &Result{Changes: changes}

	if mode == ModeDryRun {
		return result, nil
	}

	if mode == ModeFull || mode == ModeSyntaxOnly {
		if a.validator != nil {
			if err := a.validator.ValidateTree(stagingRoot, mode == ModeSyntaxOnly); err != nil {
				return nil, fmt.Errorf("apply: staging validation failed, apply aborted: %w", err)
			}
		}
	}

	if !changes.HasChanges() {
		return result, nil
	}

	var backupPath string
	if a.backups != nil {
		backupPath, err = a.backups.BackupTree(activeRoot)
		if err != nil {
			return nil, fmt.Errorf("apply: backup active tree: %w", err)
		}
		result.BackupPath = backupPath
	}

	if err := a.writeChanges(stagingRoot, activeRoot, stagingManifest, changes); err != nil {
		if backupPath != "" {
			_ = a.backups.RestoreBackup(backupPath, activeRoot)
			result.RolledBack = true
		}
		return nil, fmt.Errorf("apply: write changes: %w", err)
	}
	result.FilesWritten = len(stagingManifest.Files)
	result.FilesDeleted = len(changes.Deleted)

	if a.validator != nil {
		if err := a.validator.ValidateTree(activeRoot, mode == ModeSyntaxOnly); err != nil {
			if backupPath != "" {
				if restoreErr := a.backups.RestoreBackup(backupPath, activeRoot); restoreErr != nil {
					return nil, fmt.Errorf("apply: post-apply verification failed (%v) and rollback failed: %w", err, restoreErr)
				}
				result.RolledBack = true
			}
			return result, fmt.Errorf("apply: post-apply verification failed, rolled back: %w", err)
		}
	}

	return result, nil
}

func (a *Applier) writeChanges(stagingRoot, activeRoot string, stagingManifest *stage.Manifest, changes *stage.Changes) error {
	for _, rel := range stagingManifest.SortedPaths() {
		src := filepath.Join(stagingRoot, filepath.FromSlash(rel))
		dst := filepath.Join(activeRoot, filepath.FromSlash(rel))
		content, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("read staged %s: %w", rel, err)
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
			return fmt.Errorf("create directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(dst, content, 0640); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
	}

	for _, rel := range changes.Deleted {
		dst := filepath.Join(activeRoot, filepath.FromSlash(rel))
		if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete %s: %w", rel, err)
		}
	}

	return nil
}
