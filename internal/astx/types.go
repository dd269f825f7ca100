// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package astx extracts language-neutral AST records from TypeScript source
// files using tree-sitter. Declarations preserve source order and carry their
// original type expressions verbatim in TypeText, so downstream type mapping
// can distinguish syntactically different but semantically similar types.
package astx

import "fmt"

// DeclKind tags the kind of a top-level TypeScript declaration.
type DeclKind string

const (
	DeclInterface DeclKind = "interface"
	DeclTypeAlias DeclKind = "type_alias"
	DeclEnum      DeclKind = "enum"
	DeclClass     DeclKind = "class"
	DeclFunction  DeclKind = "function"
	DeclConstant  DeclKind = "constant"
)

// Property is one interface/class property.
type Property struct {
	Name     string `json:"name"`
	TypeText string `json:"type_text"`
	Optional bool   `json:"optional"`
	Readonly bool   `json:"readonly"`
	JSDoc    string `json:"jsdoc,omitempty"`
}

// EnumMember is one member of a TS enum.
type EnumMember struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// Parameter is one function/method parameter.
type Parameter struct {
	Name         string `json:"name"`
	TypeText     string `json:"type_text"`
	Optional     bool   `json:"optional"`
	DefaultValue string `json:"default_value,omitempty"`
}

// Method is one class method.
type Method struct {
	Name           string      `json:"name"`
	Parameters     []Parameter `json:"parameters"`
	ReturnTypeText string      `json:"return_type_text,omitempty"`
	IsAsync        bool        `json:"is_async"`
	JSDoc          string      `json:"jsdoc,omitempty"`
}

// Declaration is one top-level TypeScript declaration, tagged by Kind. Only
// the fields relevant to Kind are populated; the rest hold their zero value.
type Declaration struct {
	Kind     DeclKind `json:"kind"`
	Name     string   `json:"name"`
	JSDoc    string   `json:"jsdoc,omitempty"`
	Exported bool     `json:"exported"`

	// interface / class
	Properties []Property `json:"properties,omitempty"`
	Extends    []string   `json:"extends,omitempty"`

	// type_alias: right-hand side, verbatim.
	TypeText string `json:"type_text,omitempty"`

	// enum
	Members []EnumMember `json:"members,omitempty"`

	// class
	Methods []Method `json:"methods,omitempty"`

	// function / constant
	Signature      string `json:"signature,omitempty"`
	ReturnTypeText string `json:"return_type_text,omitempty"`

	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// File is the extracted record for one TypeScript source file.
type File struct {
	Path          string        `json:"path"`
	Hash          string        `json:"hash"`
	Language      string        `json:"language"`
	Declarations  []Declaration `json:"declarations"`
	ParsedAtMilli int64         `json:"parsed_at_milli"`
}

// ParseError describes a failure to extract one source file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}
