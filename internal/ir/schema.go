// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ir

import (
	"fmt"
	"strings"
)

// builtinScalars are the GraphQL scalars the pipeline never expects an
// explicit type declaration for.
var builtinScalars = map[string]bool{
	"String": true, "Int": true, "Float": true, "Boolean": true, "ID": true,
	"JSON": true, "Void": true,
}

// BuildSchema derives the single authoritative Schema IR from Backend's
// GraphQL type declarations and Frontend's operation documents: types are
// de-duplicated by name (first occurrence wins, Backend's own ordering is
// preserved since it was built from specs already sorted by canonical
// path), and every type referenced by a field or operation variable must
// resolve to either a builtin scalar or a declared type.
func BuildSchema(backend *Backend, frontend *Frontend) (*Schema, error) {
	buildErr := &BuildError{}

	schema := &Schema{Operations: append([]OperationDocument{}, frontend.Operations...)}

	seen := make(map[string]bool)
	for _, decl := range backend.GraphQLTypes {
		if seen[decl.Name] {
			continue
		}
		seen[decl.Name] = true
		schema.Types = append(schema.Types, decl)
	}

	declared := make(map[string]bool, len(schema.Types))
	for _, decl := range schema.Types {
		declared[decl.Name] = true
	}

	for _, decl := range schema.Types {
		for _, field := range decl.Fields {
			baseName := baseTypeName(field.Type)
			if !builtinScalars[baseName] && !declared[baseName] {
				buildErr.add(decl.Name, field.Name, fmt.Sprintf("references undefined GraphQL type %q", baseName))
			}
		}
	}

	for _, op := range schema.Operations {
		for _, v := range op.Variables {
			baseName := baseTypeName(v.GQLType)
			if !builtinScalars[baseName] && !declared[baseName] {
				buildErr.add(op.Entity+"."+op.Name, v.Name, fmt.Sprintf("references undefined GraphQL type %q", baseName))
			}
		}
	}

	return schema, buildErr.errOrNil()
}

// baseTypeName strips GraphQL list and non-null wrappers to the underlying
// named type: "[String!]!" -> "String".
func baseTypeName(gqlType string) string {
	name := strings.TrimSpace(gqlType)
	name = strings.TrimSuffix(name, "!")
	name = strings.TrimPrefix(name, "[")
	name = strings.TrimSuffix(name, "]")
	name = strings.TrimSuffix(name, "!")
	return name
}
