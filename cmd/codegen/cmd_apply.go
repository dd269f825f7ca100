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

	"github.com/dipeo/codegen/internal/apply"
)

var applySyntaxOnly bool

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Promote the already-staged tree into the active tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := buildPipeline(cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		mode := apply.ModeFull
		if applySyntaxOnly {
			mode = apply.ModeSyntaxOnly
		}

		result, err := p.ApplyStaged(mode)
		if err != nil {
			return fmt.Errorf("apply staged tree: %w", err)
		}
		if flagJSON {
			return printJSON(result)
		}
		fmt.Printf("applied: wrote %d, deleted %d\n", result.FilesWritten, result.FilesDeleted)
		return nil
	},
}

func init() {
	applyCmd.Flags().BoolVar(&applySyntaxOnly, "syntax-only", false,
		"Skip the static type checker and validate syntax only before applying")
}
