// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads codegen.yaml into a Config, following the teacher's
// read-whole-file-then-yaml.Unmarshal bootstrap pattern. Cobra persistent
// flags layer on top as overrides; this package has no cobra dependency
// itself, it only exposes the fields a command's flag binding can write to.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceConfig locates the TypeScript source files a generation run reads.
type SourceConfig struct {
	Root          string `yaml:"root"`
	NodeSpecDir   string `yaml:"node_spec_dir"`
	NodeSpecGlob  string `yaml:"node_spec_glob"`
	QuerySpecDir  string `yaml:"query_spec_dir"`
	QuerySpecGlob string `yaml:"query_spec_glob"`
}

// OutputConfig locates the three target trees a generation run writes.
type OutputConfig struct {
	BackendDir  string `yaml:"backend_dir"`
	SchemaDir   string `yaml:"schema_dir"`
	FrontendDir string `yaml:"frontend_dir"`
}

// Config is the full set of tunables a generation run needs, loaded from
// codegen.yaml and overridable by cobra persistent flags.
type Config struct {
	Source          SourceConfig `yaml:"source"`
	Output          OutputConfig `yaml:"output"`
	TargetLanguage  string       `yaml:"target_language"`
	OverrideFile    string       `yaml:"override_file"`
	CacheDir        string       `yaml:"cache_dir"`
	ActiveDir       string       `yaml:"active_dir"`
	StagingDir      string       `yaml:"staging_dir"`
	TemplateDir     string       `yaml:"template_dir"`
	LogLevel        string       `yaml:"log_level"`
	LogDir          string       `yaml:"log_dir"`
	MetricsAddr     string       `yaml:"metrics_addr"`
}

// Default returns a Config with every directory rooted under root, matching
// the canonical source tree layout (internal/specs.DefaultConfig covers only
// the Source half of this). The Output directories are relative to the
// active and staging trees, which are separate directories under root.
func Default(root string) Config {
	return Config{
		Source: SourceConfig{
			Root:          root,
			NodeSpecDir:   filepath.Join(root, "models", "src", "specifications", "nodes"),
			NodeSpecGlob:  "*.spec.ts",
			QuerySpecDir:  filepath.Join(root, "models", "src", "frontend", "query-definitions"),
			QuerySpecGlob: "*.ts",
		},
		Output: OutputConfig{
			BackendDir:  "backend",
			SchemaDir:   "schema",
			FrontendDir: "frontend",
		},
		TargetLanguage: "typescript",
		OverrideFile:   filepath.Join(root, "codegen-overrides.yaml"),
		CacheDir:       filepath.Join(root, ".codegen-cache"),
		ActiveDir:      filepath.Join(root, "generated"),
		StagingDir:     filepath.Join(root, ".codegen-staging"),
		TemplateDir:    filepath.Join(root, "codegen-templates"),
		LogLevel:       "info",
	}
}

// Load reads path and unmarshals it over a Default(root) base, so a
// codegen.yaml only needs to name the fields it overrides.
func Load(path, root string) (Config, error) {
	cfg := Default(root)

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
