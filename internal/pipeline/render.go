// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/iancoleman/strcase"

	"github.com/dipeo/codegen/internal/pipelineerr"
	"github.com/dipeo/codegen/internal/stage"
)

// Template names the render phase looks up by convention. A caller wires
// its own template set via Dependencies.Engine (LoadDir/LoadString); these
// constants are the contract between that template set and this package.
const (
	tmplBackendModel       = "backend/model.go.tmpl"
	tmplBackendEnum        = "backend/enum.go.tmpl"
	tmplBackendHandlerStub = "backend/handler_stub.go.tmpl"
	tmplBackendRegistry    = "backend/registry.go.tmpl"
	tmplSchemaTypes        = "schema/schema.graphql.tmpl"
	tmplSchemaOperations   = "schema/operations.graphql.tmpl"
	tmplFrontendFieldCfg   = "frontend/field_config.ts.tmpl"
	tmplFrontendNodeModel  = "frontend/node_model.ts.tmpl"
	tmplFrontendRegistry   = "frontend/registry.ts.tmpl"
)

// renderAll turns every record in built's three IR trees into a
// GeneratedFile, aggregating every render failure rather than stopping at
// the first missing template or template-execution error.
func (p *Pipeline) renderAll(built *buildResult) ([]stage.GeneratedFile, error) {
	var files []stage.GeneratedFile
	var errs []error

	emit := func(tmpl, outPath string, class stage.Classification, data any) {
		content, err := p.renderOne(tmpl, data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s -> %s: %w", tmpl, outPath, err))
			return
		}
		files = append(files, stage.GeneratedFile{Path: outPath, Content: content, Classification: class})
	}

	for _, model := range built.backend.Models {
		outPath := filepath.Join(p.deps.BackendDir, "models", snake(model.NodeType)+".go")
		emit(tmplBackendModel, outPath, stage.ClassModel, model)
	}
	for _, enum := range built.backend.Enums {
		outPath := filepath.Join(p.deps.BackendDir, "enums", snake(enum.Name)+".go")
		emit(tmplBackendEnum, outPath, stage.ClassEnum, enum)
	}
	for _, stub := range built.backend.HandlerStubs {
		outPath := filepath.Join(p.deps.BackendDir, "handlers", snake(stub.NodeType)+".go")
		emit(tmplBackendHandlerStub, outPath, stage.ClassHandlerStub, stub)
	}
	emit(tmplBackendRegistry, filepath.Join(p.deps.BackendDir, "registry.go"), stage.ClassModel, built.backend)

	emit(tmplSchemaTypes, filepath.Join(p.deps.SchemaDir, "schema.graphql"), stage.ClassSchema, built.schema)
	emit(tmplSchemaOperations, filepath.Join(p.deps.SchemaDir, "operations.graphql"), stage.ClassOperation, built.schema)

	for _, record := range built.frontend.FieldConfigs {
		outPath := filepath.Join(p.deps.FrontendDir, "field-configs", kebab(record.NodeType)+".ts")
		emit(tmplFrontendFieldCfg, outPath, stage.ClassFrontendConfig, record)
	}
	for _, record := range built.frontend.NodeModels {
		outPath := filepath.Join(p.deps.FrontendDir, "node-models", kebab(record.NodeType)+".ts")
		emit(tmplFrontendNodeModel, outPath, stage.ClassFrontendConfig, record)
	}
	emit(tmplFrontendRegistry, filepath.Join(p.deps.FrontendDir, "registry.ts"), stage.ClassFrontendConfig, built.frontend)

	if len(errs) > 0 {
		return nil, phaseErr("render", errs)
	}
	return files, nil
}

func (p *Pipeline) renderOne(tmpl string, data any) ([]byte, error) {
	if !containsName(p.deps.Engine.Names(), tmpl) {
		return nil, fmt.Errorf("%s: %w", tmpl, pipelineerr.ErrNoTemplateForRecord)
	}
	return p.deps.Engine.Render(tmpl, data)
}

func containsName(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}

func snake(s string) string { return strcase.ToSnake(s) }
func kebab(s string) string { return strcase.ToKebab(s) }
