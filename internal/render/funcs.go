// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package render turns IR trees into target-language source text through
// named text/template templates, organized by target family (backend/,
// frontend/, schema/) and sharing one FuncMap of naming, pluralization,
// default-value, and doc-wrapping filters. Every filter here is pure and
// wall-clock/random-free, so the same IR always renders byte-identical
// output.
package render

import (
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"
)

// FuncMap returns the filter set every template family shares.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"snake_case":  strcase.ToSnake,
		"camel_case":  strcase.ToLowerCamel,
		"pascal_case": strcase.ToCamel,
		"kebab_case":  strcase.ToKebab,
		"pluralize":   Pluralize,
		"join":        strings.Join,
		"wrap_doc":    WrapDoc,
		"default_expr": func(langType string, value any) string {
			return RenderDefault(langType, value).Expr
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	}
}
