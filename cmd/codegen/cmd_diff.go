// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dipeo/codegen/internal/stage"
)

var diffContent bool

var diffStagedCmd = &cobra.Command{
	Use:   "diff-staged",
	Short: "Show which paths differ between the active tree and the staged tree",
	Long: `diff-staged lists every added, modified, and deleted path between the
active tree and the staging tree. With --content it instead renders a
line-level unified diff (plus a hunk/add/remove count) for every
modified path; added and deleted paths are not listed in that mode.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := buildPipeline(cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		changes, err := p.DiffStaged()
		if err != nil {
			return fmt.Errorf("diff staged tree: %w", err)
		}
		if !diffContent {
			return printChanges(changes, flagJSON)
		}
		return printContentDiffs(changes)
	},
}

func init() {
	diffStagedCmd.Flags().BoolVar(&diffContent, "content", false,
		"Render a line-level unified diff for every modified path")
}

// printContentDiffs renders a unified diff and hunk stat for every
// modified path in changes, reading both the active and staged copies
// off disk directly rather than going through the manifest again.
func printContentDiffs(changes *stage.Changes) error {
	stats := make([]fileDiffStat, 0, len(changes.Modified))
	for _, path := range changes.Modified {
		oldContent, err := os.ReadFile(filepath.Join(cfg.ActiveDir, path))
		if err != nil {
			return fmt.Errorf("read active copy of %s: %w", path, err)
		}
		newContent, err := os.ReadFile(filepath.Join(cfg.StagingDir, path))
		if err != nil {
			return fmt.Errorf("read staged copy of %s: %w", path, err)
		}

		text, err := unifiedFileDiff(path, oldContent, newContent)
		if err != nil {
			return fmt.Errorf("diff %s: %w", path, err)
		}
		stat, err := statUnifiedDiff(path, text)
		if err != nil {
			return err
		}
		stats = append(stats, stat)

		if flagJSON {
			continue
		}
		fmt.Printf("--- %s (%d hunks, +%d/-%d)\n", path, stat.HunkCount, stat.LinesAdded, stat.LinesRemoved)
		fmt.Print(text)
	}
	if flagJSON {
		return printJSON(stats)
	}
	return nil
}
