// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dipeo/codegen/internal/config"
	"github.com/dipeo/codegen/internal/obs/logging"
)

var (
	flagConfigPath   string
	flagSourceRoot   string
	flagJSON         bool
	flagLogLevel     string
	flagMetricsAddr  string
	flagTargetLang   string
	flagTemplateDir  string
	flagOverrideFile string
)

var cfg config.Config
var log *logging.Logger

var rootCmd = &cobra.Command{
	Use:   "codegen",
	Short: "Generate backend models, GraphQL schema, and frontend configs from Node/Query Specifications",
	Long: `codegen drives the model-driven generation pipeline: it extracts
TypeScript domain declarations, loads Node and Query Specifications,
builds backend/schema/frontend intermediate representations, renders
them through templates, stages the result, validates it, and applies it
to the active generated tree.

Run 'codegen generate' first; 'diff-staged', 'validate-staged', 'apply',
and 'dry-run' all operate on whatever is currently staged.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "codegen.yaml",
		"Path to the codegen config file")
	rootCmd.PersistentFlags().StringVar(&flagSourceRoot, "root", ".",
		"Project root the default config paths are rooted under (paths set in the config file are used as written)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false,
		"Emit machine-readable JSON instead of human-readable output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "",
		"Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "",
		"Override the configured metrics address (stored in the config only; no command starts a metrics listener)")
	rootCmd.PersistentFlags().StringVar(&flagTargetLang, "target-language", "",
		"Override the configured backend target language")
	rootCmd.PersistentFlags().StringVar(&flagTemplateDir, "template-dir", "",
		"Override the configured template directory")
	rootCmd.PersistentFlags().StringVar(&flagOverrideFile, "override-file", "",
		"Override the configured type-override YAML path")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfigPath, flagSourceRoot)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		overrides := config.FlagOverrides{}
		if cmd.Flags().Changed("log-level") {
			overrides.LogLevel = &flagLogLevel
		}
		if cmd.Flags().Changed("metrics-addr") {
			overrides.MetricsAddr = &flagMetricsAddr
		}
		if cmd.Flags().Changed("target-language") {
			overrides.TargetLanguage = &flagTargetLang
		}
		if cmd.Flags().Changed("template-dir") {
			overrides.TemplateDir = &flagTemplateDir
		}
		if cmd.Flags().Changed("override-file") {
			overrides.OverrideFile = &flagOverrideFile
		}
		cfg = overrides.Apply(loaded)

		log = logging.New(logging.Config{
			Level:   parseLevel(cfg.LogLevel),
			LogDir:  cfg.LogDir,
			Service: "codegen",
			JSON:    flagJSON,
			Quiet:   false,
		})
		return nil
	}

	rootCmd.AddCommand(generateCmd, diffStagedCmd, validateStagedCmd, applyCmd, dryRunCmd)
}

func parseLevel(level string) logging.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
