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

	"github.com/spf13/cobra"

	"github.com/dipeo/codegen/internal/apply"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full pipeline through staging and validation",
	Long: `generate extracts, builds, renders, stages, and validates every target
file. It never promotes staging into the active tree — that is what
'codegen apply' does once staging is known good. Internally this runs
the Applier in dry-run mode purely to compute the staged-vs-active diff
the report's file counts are drawn from; the active tree is never
written by this command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := buildPipeline(cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		sourcePaths, err := sourceFilePaths(cfg)
		if err != nil {
			return fmt.Errorf("discover source files: %w", err)
		}

		report, err := p.Generate(cmd.Context(), sourcePaths, os.ReadFile, apply.ModeDryRun)
		if report != nil {
			if printErr := printReport(report, flagJSON); printErr != nil {
				return printErr
			}
		}
		if err != nil {
			return err
		}
		if !report.Succeeded {
			return fmt.Errorf("generation run %s failed", report.RunID)
		}
		return nil
	},
}
