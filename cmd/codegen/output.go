// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pmezard/go-difflib/difflib"
	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/dipeo/codegen/internal/pipeline"
	"github.com/dipeo/codegen/internal/stage"
)

// stdoutIsTerminal reports whether stdout is an interactive terminal. No
// command currently consults it; human output has a single flat form.
func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printReport renders a generation Report either as JSON or as a short
// human summary, depending only on the --json flag.
func printReport(report *pipeline.Report, asJSON bool) error {
	if asJSON {
		return printJSON(report)
	}

	status := "SUCCEEDED"
	if !report.Succeeded {
		status = "FAILED"
	}
	fmt.Printf("generation run %s — %s in %dms\n", report.RunID, status, report.DurationMs)
	for _, phase := range report.Phases {
		marker := ""
		if phase.ErrorCount > 0 {
			marker = fmt.Sprintf(" (%d errors)", phase.ErrorCount)
		}
		fmt.Printf("  %-10s %6dms%s\n", phase.Name, phase.DurationMs, marker)
	}
	fmt.Printf("staged=%d validated=%d applied=%d deleted=%d\n",
		report.FilesStaged, report.FilesValidated, report.FilesApplied, report.FilesDeleted)
	return nil
}

// printChanges renders a stage.Changes set either as JSON or as a flat,
// git-status-style path listing.
func printChanges(changes *stage.Changes, asJSON bool) error {
	if asJSON {
		return printJSON(changes)
	}

	for _, path := range changes.Added {
		fmt.Printf("A  %s\n", path)
	}
	for _, path := range changes.Modified {
		fmt.Printf("M  %s\n", path)
	}
	for _, path := range changes.Deleted {
		fmt.Printf("D  %s\n", path)
	}
	if !changes.HasChanges() {
		fmt.Println("no changes")
	}
	return nil
}

// printDryRunSummary renders a DryRunSummary either as JSON or as a
// human-readable count line followed by the same path listing
// printChanges produces.
func printDryRunSummary(summary *pipeline.DryRunSummary, asJSON bool) error {
	if asJSON {
		return printJSON(summary)
	}
	fmt.Printf("would add %d, modify %d, delete %d\n",
		summary.WouldAdd, summary.WouldModify, summary.WouldDelete)
	return printChanges(summary.Changes, false)
}

// unifiedFileDiff renders a line-level unified diff between two file
// contents for one modified path, for --content inspection of a single
// changed file.
func unifiedFileDiff(path string, oldContent, newContent []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(oldContent)),
		B:        difflib.SplitLines(string(newContent)),
		FromFile: "active/" + path,
		ToFile:   "staged/" + path,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// fileDiffStat is the hunk-count summary printed above a --content diff's
// raw text, computed by re-parsing the unified diff generator's own
// output rather than recounting lines by hand.
type fileDiffStat struct {
	Path         string `json:"path"`
	HunkCount    int    `json:"hunk_count"`
	LinesAdded   int    `json:"lines_added"`
	LinesRemoved int    `json:"lines_removed"`
}

// statUnifiedDiff parses a unified diff string back into structured hunks
// to report add/remove counts, the same parse-what-you-just-generated
// step the teacher's own diff tooling performs before rendering a patch
// summary.
func statUnifiedDiff(path, unifiedDiff string) (fileDiffStat, error) {
	stat := fileDiffStat{Path: path}
	if unifiedDiff == "" {
		return stat, nil
	}

	fileDiffs, err := godiff.ParseMultiFileDiff([]byte(unifiedDiff))
	if err != nil {
		return stat, fmt.Errorf("parse unified diff for %s: %w", path, err)
	}
	for _, fd := range fileDiffs {
		stat.HunkCount += len(fd.Hunks)
		for _, h := range fd.Hunks {
			for _, line := range splitHunkBodyLines(h.Body) {
				switch {
				case len(line) > 0 && line[0] == '+':
					stat.LinesAdded++
				case len(line) > 0 && line[0] == '-':
					stat.LinesRemoved++
				}
			}
		}
	}
	return stat, nil
}

func splitHunkBodyLines(body []byte) []string {
	lines := []string{}
	start := 0
	for i, b := range body {
		if b == '\n' {
			lines = append(lines, string(body[start:i]))
			start = i + 1
		}
	}
	if start < len(body) {
		lines = append(lines, string(body[start:]))
	}
	return lines
}
