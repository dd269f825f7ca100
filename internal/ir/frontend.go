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

// BuildFrontend folds node specs and query specs into the frontend IR: a
// field configuration and node model record per spec, per-entity GraphQL
// operation documents, and a node-type registry. specList and queryList
// must already be sorted by canonical path.
func BuildFrontend(specList []specs.NodeSpec, queryList []specs.QuerySpec, registry typemap.EnumRegistry, overrides typemap.OverrideTable) (*Frontend, error) {
	buildErr := &BuildError{}
	frontend := &Frontend{}

	for _, spec := range specList {
		fieldConfig := FieldConfigRecord{NodeType: spec.NodeType}
		defaults := make(map[string]any)

		for _, field := range spec.Fields {
			mapped, err := typemap.MapField(field, spec.NodeType, registry, overrides)
			if err != nil {
				buildErr.add(spec.NodeType, field.Name, err.Error())
				continue
			}

			entry := FieldConfigEntry{
				Name:               field.Name,
				ValidationFragment: mapped.ValidationFragment,
			}
			if field.UI != nil {
				entry.Widget = field.UI.InputWidget
				entry.Placeholder = field.UI.Placeholder
				entry.Column = field.UI.Column
				entry.Rows = field.UI.Rows
				entry.Options = field.UI.Options
				entry.Hidden = field.UI.Hidden
				entry.Collapsible = field.UI.Collapsible
				entry.Adjustable = field.UI.Adjustable
			}
			if field.Conditional != nil {
				entry.Conditional = &ConditionalDisplay{
					Field:  field.Conditional.Field,
					Values: field.Conditional.Values,
				}
			}
			fieldConfig.Fields = append(fieldConfig.Fields, entry)

			if field.DefaultValue != nil {
				defaults[field.Name] = field.DefaultValue
			}
		}

		frontend.FieldConfigs = append(frontend.FieldConfigs, fieldConfig)

		if spec.PrimaryDisplayField != "" && !hasField(spec.Fields, spec.PrimaryDisplayField) {
			buildErr.add(spec.NodeType, "primary_display_field", fmt.Sprintf("does not resolve to a declared field: %q", spec.PrimaryDisplayField))
		}

		frontend.NodeModels = append(frontend.NodeModels, NodeModelRecord{
			NodeType:            spec.NodeType,
			DisplayName:         spec.DisplayName,
			Category:            spec.Category,
			Icon:                spec.Icon,
			Color:               spec.Color,
			Description:         spec.Description,
			PrimaryDisplayField: spec.PrimaryDisplayField,
		})

		modulePath := ""
		className := ""
		if spec.Handler != nil {
			modulePath = spec.Handler.ModulePath
			className = spec.Handler.ClassName
		}
		frontend.Registry = append(frontend.Registry, NodeRegistryEntry{
			NodeType:        spec.NodeType,
			ModulePath:       modulePath,
			FieldConfigName: fieldConfigName(spec.NodeType, className),
			Defaults:        defaults,
		})
	}

	for _, query := range queryList {
		for _, op := range query.Operations {
			frontend.Operations = append(frontend.Operations, OperationDocument{
				Entity:    query.Entity,
				Name:      op.Name,
				Kind:      op.Kind,
				Variables: op.Variables,
				Selection: op.Selection,
			})
		}
	}

	return frontend, buildErr.errOrNil()
}

func hasField(fields []specs.FieldSpec, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func fieldConfigName(nodeType, className string) string {
	if className != "" {
		return className + "FieldConfig"
	}
	return nodeType + "FieldConfig"
}
