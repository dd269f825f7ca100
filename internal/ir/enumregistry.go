// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ir

import (
	"sort"

	"github.com/dipeo/codegen/internal/astx"
	"github.com/dipeo/codegen/internal/typemap"
)

// BuildEnumRegistry scans every extracted declaration for TS enums and
// enum-like string-literal type aliases, returning the registry the Type
// Mapper and IR builders resolve enum field references against. Files are
// walked in path order so that a name collision between two files always
// resolves the same way across runs.
func BuildEnumRegistry(files map[string]*astx.File) typemap.EnumRegistry {
	registry := make(typemap.EnumRegistry)

	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		file := files[path]
		for _, decl := range file.Declarations {
			switch decl.Kind {
			case astx.DeclEnum:
				values := make([]string, 0, len(decl.Members))
				for _, member := range decl.Members {
					if member.Value != "" {
						values = append(values, member.Value)
					} else {
						values = append(values, member.Name)
					}
				}
				registry[decl.Name] = values
			case astx.DeclTypeAlias:
				if members, ok := typemap.EnumMembersFromLiteralUnion(decl.TypeText); ok {
					registry[decl.Name] = members
				}
			}
		}
	}

	return registry
}

// sortedEnumDecls renders registry as EnumDecl in sorted name order, for
// deterministic Backend IR output.
func sortedEnumDecls(registry typemap.EnumRegistry) []EnumDecl {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	decls := make([]EnumDecl, 0, len(names))
	for _, name := range names {
		decls = append(decls, EnumDecl{Name: name, Values: registry[name]})
	}
	return decls
}
