// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dryRunCmd = &cobra.Command{
	Use:   "dry-run",
	Short: "Report what apply would add, modify, and delete without changing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := buildPipeline(cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		summary, err := p.DryRun()
		if err != nil {
			return fmt.Errorf("dry run: %w", err)
		}
		return printDryRunSummary(summary, flagJSON)
	},
}
