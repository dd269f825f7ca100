// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package typemap

import (
	"fmt"
	"strings"

	"github.com/dipeo/codegen/internal/specs"
)

// MapField maps a Node Specification field to its three target
// representations. Unlike Map, which takes a raw TS type_text, MapField
// understands the field categories a Field Specification actually
// authors: the literal "enum" category carries its members in
// AllowedValues rather than a named registry entry, "array" carries its
// element type in ItemType, and "object" carries its shape in
// NestedFields. Every other Type value (string, number, boolean, a
// branded type name, or a domain interface name) is passed straight
// through to Map.
func MapField(field specs.FieldSpec, specName string, registry EnumRegistry, overrides OverrideTable) (Mapped, error) {
	mapped, err := mapFieldByCategory(field, specName, registry, overrides)
	if err != nil {
		return Mapped{}, err
	}

	if entry, ok := overrides.Lookup(specName, field.Name); ok {
		if entry.TargetType != "" {
			mapped.LangType = entry.TargetType
		}
		if entry.GQLType != "" {
			mapped.GQLType = entry.GQLType
		}
	}
	if !field.Required {
		mapped.Optional = true
	}
	return mapped, nil
}

func mapFieldByCategory(field specs.FieldSpec, specName string, registry EnumRegistry, overrides OverrideTable) (Mapped, error) {
	switch field.Type {
	case "enum":
		return mapEnumField(field)
	case "array":
		return mapArrayField(field, specName, registry, overrides)
	case "object":
		return mapObjectField(field)
	default:
		return mapTypeText(field.Type, registry)
	}
}

func mapEnumField(field specs.FieldSpec) (Mapped, error) {
	if len(field.AllowedValues) == 0 {
		return Mapped{}, &UnresolvedTypeError{TypeText: field.Name, Reason: "field has type \"enum\" but no allowed_values"}
	}
	name := enumTypeName(field.Name)
	return Mapped{
		LangType:           name,
		GQLType:            name,
		ValidationFragment: fmt.Sprintf("enum(%s)", strings.Join(field.AllowedValues, ", ")),
	}, nil
}

func mapArrayField(field specs.FieldSpec, specName string, registry EnumRegistry, overrides OverrideTable) (Mapped, error) {
	if field.ItemType == "" {
		return Mapped{}, &UnresolvedTypeError{TypeText: field.Name, Reason: "field has type \"array\" but no item_type"}
	}
	elem, err := mapFieldByCategory(specs.FieldSpec{Name: field.Name, Type: field.ItemType, Required: true}, specName, registry, overrides)
	if err != nil {
		return Mapped{}, err
	}
	return Mapped{
		LangType:           "[]" + elem.LangType,
		GQLType:            "[" + elem.GQLType + "!]",
		ValidationFragment: fmt.Sprintf("array of %s", elem.ValidationFragment),
	}, nil
}

// mapObjectField maps a nested-object field to a JSON-ish catch-all: this
// IR pass does not flatten NestedFields into a distinct generated type,
// matching how the rest of the pipeline treats free-form nested
// authoring data.
func mapObjectField(field specs.FieldSpec) (Mapped, error) {
	return Mapped{
		LangType:           "map[string]any",
		GQLType:            "JSON",
		ValidationFragment: "object",
	}, nil
}

func enumTypeName(fieldName string) string {
	parts := strings.Split(fieldName, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}
