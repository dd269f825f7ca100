// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package typemap

import (
	"fmt"
	"regexp"
	"strings"
)

var brandedTypePattern = regexp.MustCompile(`^string\s*&\s*\{\s*__brand\s*:\s*'([A-Za-z_][A-Za-z0-9_]*)'\s*\}$`)

// Map translates one TS type_text into its target-language type, GraphQL
// type, and validation fragment. specName/fieldName identify the override
// lookup key; pass "" for either when mapping a type with no owning field
// (e.g. an array element type).
func Map(typeText, specName, fieldName string, registry EnumRegistry, overrides OverrideTable) (Mapped, error) {
	if entry, ok := overrides.Lookup(specName, fieldName); ok {
		mapped, err := mapTypeText(typeText, registry)
		if err != nil {
			return Mapped{}, err
		}
		if entry.TargetType != "" {
			mapped.LangType = entry.TargetType
		}
		if entry.GQLType != "" {
			mapped.GQLType = entry.GQLType
		}
		return mapped, nil
	}
	return mapTypeText(typeText, registry)
}

func mapTypeText(typeText string, registry EnumRegistry) (Mapped, error) {
	text := strings.TrimSpace(typeText)

	if optional, inner, ok := stripNullable(text); ok {
		mapped, err := mapTypeText(inner, registry)
		if err != nil {
			return Mapped{}, err
		}
		mapped.Optional = mapped.Optional || optional
		return mapped, nil
	}

	if m := brandedTypePattern.FindStringSubmatch(text); m != nil {
		brandName := m[1]
		return Mapped{
			LangType:           brandName,
			GQLType:            brandName,
			ValidationFragment: "string, non-empty",
		}, nil
	}

	if inner, ok := stripArray(text); ok {
		elem, err := mapTypeText(inner, registry)
		if err != nil {
			return Mapped{}, err
		}
		return Mapped{
			LangType:           "[]" + elem.LangType,
			GQLType:            "[" + elem.GQLType + "!]",
			ValidationFragment: fmt.Sprintf("array of %s", elem.ValidationFragment),
		}, nil
	}

	if inner, ok := stripRecord(text); ok {
		elem, err := mapTypeText(inner, registry)
		if err != nil {
			return Mapped{}, err
		}
		return Mapped{
			LangType:           "map[string]" + elem.LangType,
			GQLType:            "JSON",
			ValidationFragment: fmt.Sprintf("object of %s", elem.ValidationFragment),
		}, nil
	}

	if members, ok := registry[text]; ok {
		return Mapped{
			LangType:           text,
			GQLType:            text,
			ValidationFragment: fmt.Sprintf("enum(%s)", strings.Join(members, ", ")),
		}, nil
	}

	if mapped, ok := primitiveMapping(text); ok {
		return mapped, nil
	}

	if isLiteralUnion(text) {
		return Mapped{}, &UnresolvedTypeError{TypeText: text, Reason: "string-literal union has no enum registry entry; extractor should have registered it"}
	}

	if isIdentifier(text) {
		return Mapped{
			LangType:           text,
			GQLType:            text,
			ValidationFragment: fmt.Sprintf("nested %s", text),
		}, nil
	}

	return Mapped{}, &UnresolvedTypeError{TypeText: text, Reason: "no mapping rule matched"}
}

func primitiveMapping(text string) (Mapped, bool) {
	switch text {
	case "string":
		return Mapped{LangType: "string", GQLType: "String", ValidationFragment: "string"}, true
	case "number":
		return Mapped{LangType: "float64", GQLType: "Float", ValidationFragment: "number"}, true
	case "boolean":
		return Mapped{LangType: "bool", GQLType: "Boolean", ValidationFragment: "boolean"}, true
	case "any", "unknown":
		return Mapped{LangType: "any", GQLType: "JSON", ValidationFragment: "any"}, true
	case "void", "undefined", "null":
		return Mapped{LangType: "struct{}", GQLType: "Void", ValidationFragment: "none"}, true
	}
	return Mapped{}, false
}

// stripNullable strips every "null" or "undefined" union member, marking
// the remainder optional (T | null, T | undefined, T | null | undefined).
func stripNullable(text string) (optional bool, inner string, matched bool) {
	parts := splitUnion(text)
	if len(parts) < 2 {
		return false, text, false
	}

	var kept []string
	found := false
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "null" || trimmed == "undefined" {
			found = true
			continue
		}
		kept = append(kept, trimmed)
	}
	if !found {
		return false, text, false
	}
	return true, strings.Join(kept, " | "), true
}

func splitUnion(text string) []string {
	depth := 0
	var parts []string
	var current strings.Builder
	for _, r := range text {
		switch r {
		case '<', '{', '(', '[':
			depth++
		case '>', '}', ')', ']':
			depth--
		}
		if r == '|' && depth == 0 {
			parts = append(parts, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}
	parts = append(parts, current.String())
	return parts
}

func stripArray(text string) (inner string, ok bool) {
	if strings.HasPrefix(text, "Array<") && strings.HasSuffix(text, ">") {
		return strings.TrimSpace(text[len("Array<") : len(text)-1]), true
	}
	if strings.HasSuffix(text, "[]") {
		return strings.TrimSpace(strings.TrimSuffix(text, "[]")), true
	}
	return "", false
}

func stripRecord(text string) (valueType string, ok bool) {
	const prefix = "Record<"
	if !strings.HasPrefix(text, prefix) || !strings.HasSuffix(text, ">") {
		return "", false
	}
	inner := text[len(prefix) : len(text)-1]
	parts := splitTopLevelComma(inner)
	if len(parts) != 2 {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func splitTopLevelComma(text string) []string {
	depth := 0
	var parts []string
	var current strings.Builder
	for _, r := range text {
		switch r {
		case '<', '{', '(', '[':
			depth++
		case '>', '}', ')', ']':
			depth--
		}
		if r == ',' && depth == 0 {
			parts = append(parts, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}
	parts = append(parts, current.String())
	return parts
}

func isLiteralUnion(text string) bool {
	parts := splitUnion(text)
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if !strings.HasPrefix(trimmed, "'") && !strings.HasPrefix(trimmed, "\"") {
			return false
		}
	}
	return true
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func isIdentifier(text string) bool {
	return identifierPattern.MatchString(text)
}

// EnumMembersFromLiteralUnion extracts the literal string values from a
// union of string literals (`"active" | "inactive"`), preserving order, for
// callers building an EnumRegistry entry from a type alias declaration.
func EnumMembersFromLiteralUnion(typeText string) ([]string, bool) {
	if !isLiteralUnion(typeText) {
		return nil, false
	}
	parts := splitUnion(typeText)
	members := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `'"`)
		members = append(members, trimmed)
	}
	return members, true
}
