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

var validateSyntaxOnly bool

var validateStagedCmd = &cobra.Command{
	Use:   "validate-staged",
	Short: "Re-validate the staged tree without re-running extract/build/render",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := buildPipeline(cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := p.ValidateStaged(validateSyntaxOnly); err != nil {
			return fmt.Errorf("validate staged tree: %w", err)
		}
		fmt.Println("staged tree is valid")
		return nil
	},
}

func init() {
	validateStagedCmd.Flags().BoolVar(&validateSyntaxOnly, "syntax-only", false,
		"Skip the static type checker and validate syntax only")
}
