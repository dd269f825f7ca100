// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Default is a rendered default-value expression for one field.
type Default struct {
	// Expr constructs a fresh value each time it evaluates.
	Expr string
	// IsContainer marks slice/map defaults: a package-level var initialized
	// from Expr would share one backing array/map across every caller, so
	// templates emitting a container default must wrap Expr in a factory
	// function (func DefaultXxx() []T { return Expr }) rather than a
	// shared var.
	IsContainer bool
}

// RenderDefault renders value (already known to be present, i.e. the
// field's HasDefault is true) as a Go expression appropriate for langType.
// A nil value renders the type's zero value; a value of any other
// unrecognized Go type is formatted with %v.
func RenderDefault(langType string, value any) Default {
	switch v := value.(type) {
	case nil:
		return Default{
			Expr:        zeroValue(langType),
			IsContainer: strings.HasPrefix(langType, "[]") || strings.HasPrefix(langType, "map["),
		}
	case string:
		return Default{Expr: strconv.Quote(v)}
	case bool:
		return Default{Expr: strconv.FormatBool(v)}
	case float64:
		return Default{Expr: formatNumber(v)}
	case int:
		return Default{Expr: strconv.Itoa(v)}
	case []any:
		return renderSliceDefault(langType, v)
	case map[string]any:
		return renderMapDefault(v)
	default:
		return Default{Expr: fmt.Sprintf("%v", v)}
	}
}

func renderSliceDefault(langType string, items []any) Default {
	elemType := strings.TrimPrefix(langType, "[]")
	if elemType == langType {
		elemType = "any"
	}

	rendered := make([]string, len(items))
	for i, item := range items {
		rendered[i] = RenderDefault(elemType, item).Expr
	}

	return Default{
		Expr:        fmt.Sprintf("[]%s{%s}", elemType, strings.Join(rendered, ", ")),
		IsContainer: true,
	}
}

func renderMapDefault(m map[string]any) Default {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]string, len(keys))
	for i, k := range keys {
		entries[i] = fmt.Sprintf("%s: %s", strconv.Quote(k), RenderDefault("any", m[k]).Expr)
	}

	return Default{
		Expr:        fmt.Sprintf("map[string]any{%s}", strings.Join(entries, ", ")),
		IsContainer: true,
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func zeroValue(langType string) string {
	switch {
	case strings.HasPrefix(langType, "[]"):
		return langType + "{}"
	case strings.HasPrefix(langType, "map["):
		return langType + "{}"
	case langType == "string":
		return `""`
	case langType == "bool":
		return "false"
	case langType == "float64", langType == "int":
		return "0"
	default:
		return "nil"
	}
}
