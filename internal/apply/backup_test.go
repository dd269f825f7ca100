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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBackupConfig(t *testing.T) {
	cfg := DefaultBackupConfig()
	assert.Equal(t, 5, cfg.MaxBackups)
	assert.Equal(t, ".backup", cfg.BackupSuffix)
	assert.NotEmpty(t, cfg.TimeFormat)
}

func TestNewBackupManager_FillsZeroValues(t *testing.T) {
	mgr := NewBackupManager(BackupConfig{})
	assert.Equal(t, 5, mgr.config.MaxBackups)
	assert.Equal(t, ".backup", mgr.config.BackupSuffix)
}

func TestBackupTree_NonexistentPathIsNoop(t *testing.T) {
	mgr := NewBackupManager(DefaultBackupConfig())
	backupPath, err := mgr.BackupTree(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, backupPath)
}

func TestBackupTree_AndRestore(t *testing.T) {
	dir := t.TempDir()
	active := filepath.Join(dir, "active")
	require.NoError(t, os.MkdirAll(active, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(active, "file.txt"), []byte("original"), 0640))

	mgr := NewBackupManager(DefaultBackupConfig())
	backupPath, err := mgr.BackupTree(active)
	require.NoError(t, err)
	require.NotEmpty(t, backupPath)

	_, err = os.Stat(active)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, os.MkdirAll(active, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(active, "file.txt"), []byte("corrupted"), 0640))

	require.NoError(t, mgr.RestoreBackup(backupPath, active))
	content, err := os.ReadFile(filepath.Join(active, "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
}

func TestListBackups_SortedNewestFirst(t *testing.T) {
	dir := t.TempDir()
	active := filepath.Join(dir, "active")
	mgr := NewBackupManager(DefaultBackupConfig())

	for i := 0; i < 3; i++ {
		require.NoError(t, os.MkdirAll(active, 0750))
		require.NoError(t, os.WriteFile(filepath.Join(active, "f.txt"), []byte("v"), 0640))
		_, err := mgr.BackupTree(active)
		require.NoError(t, err)
		time.Sleep(1100 * time.Millisecond)
	}

	backups, err := mgr.ListBackups(active)
	require.NoError(t, err)
	require.Len(t, backups, 3)
	for i := 0; i < len(backups)-1; i++ {
		assert.True(t, backups[i].CreatedAt.After(backups[i+1].CreatedAt) || backups[i].CreatedAt.Equal(backups[i+1].CreatedAt))
	}
}

func TestRotateBackups_RespectsMaxBackups(t *testing.T) {
	dir := t.TempDir()
	active := filepath.Join(dir, "active")
	mgr := NewBackupManager(BackupConfig{MaxBackups: 2, BackupSuffix: ".backup", TimeFormat: "2006-01-02_150405.000000000"})

	for i := 0; i < 4; i++ {
		require.NoError(t, os.MkdirAll(active, 0750))
		require.NoError(t, os.WriteFile(filepath.Join(active, "f.txt"), []byte("v"), 0640))
		_, err := mgr.BackupTree(active)
		require.NoError(t, err)
	}

	backups, err := mgr.ListBackups(active)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(backups), 2)
}

func TestCleanOldBackups_RemovesOlderThanMaxAge(t *testing.T) {
	dir := t.TempDir()
	active := filepath.Join(dir, "active")
	mgr := NewBackupManager(DefaultBackupConfig())

	require.NoError(t, os.MkdirAll(active, 0750))
	_, err := mgr.BackupTree(active)
	require.NoError(t, err)

	removed, err := mgr.CleanOldBackups(active, -time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}
