// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ir

import (
	"fmt"

	"github.com/dipeo/codegen/internal/specs"
	"github.com/dipeo/codegen/internal/typemap"
)

// BuildBackend folds node specs into the backend IR: one data model per
// spec, enum declarations from the registry, GraphQL type declarations
// mirroring the data models, and handler stub metadata. specList must
// already be sorted by canonical path (the Spec Loader guarantees this),
// so model order here is reproducible run to run.
func BuildBackend(specList []specs.NodeSpec, registry typemap.EnumRegistry, overrides typemap.OverrideTable) (*Backend, error) {
	buildErr := &BuildError{}
	backend := &Backend{
		Enums: sortedEnumDecls(registry),
	}

	for _, spec := range specList {
		model := DataModel{
			Name:       modelName(spec.NodeType),
			NodeType:   spec.NodeType,
			SourcePath: spec.SourcePath,
		}

		for _, field := range spec.Fields {
			fieldModel, err := mapFieldSpec(spec.NodeType, field, registry, overrides)
			if err != nil {
				buildErr.add(spec.NodeType, field.Name, err.Error())
				continue
			}
			model.Fields = append(model.Fields, fieldModel)
		}

		backend.Models = append(backend.Models, model)
		backend.GraphQLTypes = append(backend.GraphQLTypes, graphQLTypeForModel(model))

		stub, registryEntry := handlerStubFor(spec)
		if stub != nil {
			backend.HandlerStubs = append(backend.HandlerStubs, *stub)
		}
		backend.Registry = append(backend.Registry, registryEntry)
	}

	for _, decl := range backend.Enums {
		backend.GraphQLTypes = append(backend.GraphQLTypes, GraphQLTypeDecl{
			Name:       decl.Name,
			Kind:       GraphQLEnumType,
			EnumValues: decl.Values,
		})
	}

	return backend, buildErr.errOrNil()
}

func modelName(nodeType string) string {
	return nodeType
}

func mapFieldSpec(nodeType string, field specs.FieldSpec, registry typemap.EnumRegistry, overrides typemap.OverrideTable) (FieldModel, error) {
	mapped, err := typemap.MapField(field, nodeType, registry, overrides)
	if err != nil {
		return FieldModel{}, err
	}

	fm := FieldModel{
		Name:               field.Name,
		LangType:           mapped.LangType,
		GQLType:            mapped.GQLType,
		ValidationFragment: mapped.ValidationFragment,
		Optional:           mapped.Optional || !field.Required,
		Required:           field.Required,
		Description:        field.Description,
	}
	if field.DefaultValue != nil {
		fm.DefaultValue = field.DefaultValue
		fm.HasDefault = true
	}
	return fm, nil
}

func graphQLTypeForModel(model DataModel) GraphQLTypeDecl {
	decl := GraphQLTypeDecl{Name: model.Name, Kind: GraphQLObjectType}
	for _, field := range model.Fields {
		gqlType := field.GQLType
		if !field.Optional {
			gqlType = gqlType + "!"
		}
		decl.Fields = append(decl.Fields, GraphQLFieldDecl{Name: field.Name, Type: gqlType})
	}
	return decl
}

// handlerStubFor derives a HandlerStub (nil when skip_generation suppresses
// emission, or when no handler metadata is present at all) plus the
// registry entry, which is always produced regardless of skip_generation.
func handlerStubFor(spec specs.NodeSpec) (*HandlerStub, BackendRegistryEntry) {
	if spec.Handler == nil {
		return nil, BackendRegistryEntry{NodeType: spec.NodeType}
	}

	entry := BackendRegistryEntry{
		NodeType:       spec.NodeType,
		ModulePath:     spec.Handler.ModulePath,
		ClassName:      spec.Handler.ClassName,
		SkipGeneration: spec.Handler.SkipGeneration,
	}

	if spec.Handler.SkipGeneration {
		return nil, entry
	}

	return &HandlerStub{
		NodeType:      spec.NodeType,
		ModulePath:    spec.Handler.ModulePath,
		ClassName:     defaultClassName(spec),
		Mixins:        spec.Handler.Mixins,
		ServiceKeys:   spec.Handler.ServiceKeys,
		CustomImports: spec.Handler.CustomImports,
	}, entry
}

func defaultClassName(spec specs.NodeSpec) string {
	if spec.Handler.ClassName != "" {
		return spec.Handler.ClassName
	}
	return fmt.Sprintf("%sHandler", modelName(spec.NodeType))
}
