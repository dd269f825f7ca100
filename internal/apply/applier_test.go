// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package apply

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dipeo/codegen/internal/stage"
)

type stubValidator struct {
	err        error
	calledWith []string
}

func (v *stubValidator) ValidateTree(root string, syntaxOnly bool) error {
	v.calledWith = append(v.calledWith, root)
	return v.err
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0640))
	}
}

func TestApplier_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	staging := filepath.Join(dir, "staging")
	active := filepath.Join(dir, "active")
	writeTree(t, staging, map[string]string{"a.py": "content"})

	applier := NewApplier(nil, nil, stage.NewSHA256Hasher(0))
	result, err := applier.Apply(staging, active, ModeDryRun)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, result.Changes.Added)

	_, err = os.Stat(filepath.Join(active, "a.py"))
	assert.True(t, os.IsNotExist(err))
}

func TestApplier_FullApplyWritesAndDeletes(t *testing.T) {
	dir := t.TempDir()
	staging := filepath.Join(dir, "staging")
	active := filepath.Join(dir, "active")
	writeTree(t, staging, map[string]string{"keep.py": "v2", "new.py": "new"})
	writeTree(t, active, map[string]string{"keep.py": "v1", "stale.py": "stale"})

	validator := &stubValidator{}
	backups := NewBackupManager(DefaultBackupConfig())
	applier := NewApplier(backups, validator, stage.NewSHA256Hasher(0))

	result, err := applier.Apply(staging, active, ModeFull)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"new.py"}, result.Changes.Added)
	assert.ElementsMatch(t, []string{"keep.py"}, result.Changes.Modified)
	assert.ElementsMatch(t, []string{"stale.py"}, result.Changes.Deleted)
	assert.NotEmpty(t, result.BackupPath)

	content, err := os.ReadFile(filepath.Join(active, "keep.py"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(content))

	_, err = os.Stat(filepath.Join(active, "stale.py"))
	assert.True(t, os.IsNotExist(err))

	assert.Len(t, validator.calledWith, 2)
}

func TestApplier_NoChangesSkipsBackup(t *testing.T) {
	dir := t.TempDir()
	staging := filepath.Join(dir, "staging")
	active := filepath.Join(dir, "active")
	writeTree(t, staging, map[string]string{"a.py": "same"})
	writeTree(t, active, map[string]string{"a.py": "same"})

	applier := NewApplier(NewBackupManager(DefaultBackupConfig()), &stubValidator{}, stage.NewSHA256Hasher(0))
	result, err := applier.Apply(staging, active, ModeFull)
	require.NoError(t, err)
	assert.False(t, result.Changes.HasChanges())
	assert.Empty(t, result.BackupPath)
}

func TestApplier_PostApplyFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	staging := filepath.Join(dir, "staging")
	active := filepath.Join(dir, "active")
	writeTree(t, staging, map[string]string{"a.py": "new-broken"})
	writeTree(t, active, map[string]string{"a.py": "original"})

	validator := &stubValidator{}
	backups := NewBackupManager(DefaultBackupConfig())
	applier := NewApplier(backups, validator, stage.NewSHA256Hasher(0))

	callCount := 0
	failingValidator := validatorFunc(func(root string, syntaxOnly bool) error {
		callCount++
		if callCount == 1 {
			return nil // staging validation passes
		}
		return assertError("post-apply syntax error")
	})
	_ = applier
	applier2 := NewApplier(backups, failingValidator, stage.NewSHA256Hasher(0))

	result, err := applier2.Apply(staging, active, ModeFull)
	require.Error(t, err)
	assert.True(t, result.RolledBack)

	content, err := os.ReadFile(filepath.Join(active, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
}

type validatorFunc func(root string, syntaxOnly bool) error

func (f validatorFunc) ValidateTree(root string, syntaxOnly bool) error { return f(root, syntaxOnly) }

type assertError string

func (e assertError) Error() string { return string(e) }

func TestApplier_StagingValidationFailureAbortsBeforeBackup(t *testing.T) {
	dir := t.TempDir()
	staging := filepath.Join(dir, "staging")
	active := filepath.Join(dir, "active")
	writeTree(t, staging, map[string]string{"a.py": "broken"})
	writeTree(t, active, map[string]string{"a.py": "original"})

	failingValidator := validatorFunc(func(root string, syntaxOnly bool) error {
		return assertError("syntax error in staging")
	})
	applier := NewApplier(NewBackupManager(DefaultBackupConfig()), failingValidator, stage.NewSHA256Hasher(0))

	result, err := applier.Apply(staging, active, ModeFull)
	require.Error(t, err)
	assert.Nil(t, result)

	content, err := os.ReadFile(filepath.Join(active, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
}
