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

	"github.com/dipeo/codegen/internal/apply"
	"github.com/dipeo/codegen/internal/astcache"
	"github.com/dipeo/codegen/internal/astx"
	"github.com/dipeo/codegen/internal/config"
	"github.com/dipeo/codegen/internal/obs/logging"
	"github.com/dipeo/codegen/internal/pipeline"
	"github.com/dipeo/codegen/internal/render"
	"github.com/dipeo/codegen/internal/specs"
	"github.com/dipeo/codegen/internal/stage"
	"github.com/dipeo/codegen/internal/typemap"
	"github.com/dipeo/codegen/internal/validate"
)

// buildPipeline wires every collaborator named by cfg into a ready-to-run
// pipeline.Pipeline, the same assembly cmd/aleutian/main.go's
// PersistentPreRun performs for its own service dependencies.
func buildPipeline(cfg config.Config, log *logging.Logger) (*pipeline.Pipeline, func() error, error) {
	extractor := astx.NewExtractor()

	dbConfig := astcache.DefaultConfig()
	dbConfig.Path = cfg.CacheDir
	db, err := astcache.OpenDB(dbConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("open AST cache at %s: %w", cfg.CacheDir, err)
	}
	cache := astcache.New(db)

	hasher := stage.NewSHA256Hasher(0)

	overrides, err := typemap.LoadOverrides(cfg.OverrideFile)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("load type overrides: %w", err)
	}

	engine := render.NewEngine()
	if err := engine.LoadDir(os.DirFS(cfg.TemplateDir), ".", "*.tmpl"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("load templates from %s: %w", cfg.TemplateDir, err)
	}

	stager := stage.NewStager(cfg.StagingDir, hasher)
	validator := validate.NewValidator()
	applier := apply.NewApplier(apply.NewBackupManager(apply.DefaultBackupConfig()), validator, hasher)

	deps := pipeline.Dependencies{
		Extractor: extractor,
		Cache:     cache,
		Hasher:    hasher,
		SpecConfig: specs.Config{
			NodeSpecDir:   cfg.Source.NodeSpecDir,
			NodeSpecGlob:  cfg.Source.NodeSpecGlob,
			QuerySpecDir:  cfg.Source.QuerySpecDir,
			QuerySpecGlob: cfg.Source.QuerySpecGlob,
		},
		NodeDecode:  decodeNodeSpec,
		QueryDecode: decodeQuerySpec,
		Overrides:   overrides,
		Engine:      engine,
		Stager:      stager,
		Validator:   validator,
		Applier:     applier,
		Logger:      log,
		ActiveRoot:  cfg.ActiveDir,
		StagingRoot: cfg.StagingDir,
		BackendDir:  cfg.Output.BackendDir,
		SchemaDir:   cfg.Output.SchemaDir,
		FrontendDir: cfg.Output.FrontendDir,
	}

	p := pipeline.New(deps)
	return p, db.Close, nil
}

// sourceFilePaths discovers every domain-interface TS file under
// cfg.Source.Root's models/src tree — the same tree the AST extraction
// phase parses for the enum registry, distinct from the Node/Query
// Specification directories build() reads separately.
func sourceFilePaths(cfg config.Config) ([]string, error) {
	root := filepath.Join(cfg.Source.Root, "models", "src")
	return specs.DiscoverFiles(root, "*.ts")
}
