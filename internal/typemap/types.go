// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package typemap translates TypeScript type text and field specifications
// into target-language types, GraphQL types, and validation schema
// fragments. Every exported mapping function is pure: the same inputs always
// produce the same outputs, with no hidden state beyond what is passed in.
// LoadOverrides is the exception, as it reads the override file from disk.
package typemap

import "fmt"

// Mapped is the result of mapping one TS type into all three target
// representations.
type Mapped struct {
	LangType           string
	GQLType            string
	ValidationFragment string
	Optional           bool
}

// EnumRegistry maps a TS enum or string-literal-union type name to its
// ordered member names, built from AST extraction before type mapping runs.
type EnumRegistry map[string][]string

// OverrideKey identifies one (spec, field) pair eligible for a manual
// override.
type OverrideKey struct {
	SpecName  string `yaml:"spec"`
	FieldName string `yaml:"field"`
}

// OverrideEntry replaces some or all of the automatic mapping for one
// field. Empty fields fall through to the automatic result.
type OverrideEntry struct {
	TargetDefault string `yaml:"target_default,omitempty"`
	TargetType    string `yaml:"target_type,omitempty"`
	GQLType       string `yaml:"gql_type,omitempty"`
}

// overrideFile is the on-disk YAML shape: a flat list, not a map, since
// (spec_name, field_name) pairs don't round-trip as YAML map keys.
type overrideFile struct {
	Overrides []struct {
		Spec          string `yaml:"spec"`
		Field         string `yaml:"field"`
		TargetDefault string `yaml:"target_default,omitempty"`
		TargetType    string `yaml:"target_type,omitempty"`
		GQLType       string `yaml:"gql_type,omitempty"`
	} `yaml:"overrides"`
}

// OverrideTable is the loaded, queryable form of the override file.
type OverrideTable map[OverrideKey]OverrideEntry

// Lookup returns the override for (specName, fieldName), if any.
func (t OverrideTable) Lookup(specName, fieldName string) (OverrideEntry, bool) {
	entry, ok := t[OverrideKey{SpecName: specName, FieldName: fieldName}]
	return entry, ok
}

// UnresolvedTypeError reports a TS type that no rule or registry entry
// could map.
type UnresolvedTypeError struct {
	TypeText string
	Reason   string
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("typemap: cannot resolve %q: %s", e.TypeText, e.Reason)
}
