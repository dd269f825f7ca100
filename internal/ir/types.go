// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ir folds AST records and specs into three coordinated
// intermediate representations: Backend, Frontend, and Schema. Every
// builder here is a pure function of its inputs — identical AST records,
// specs, and type mapping configuration always produce byte-identical IR,
// which is what lets the renderer and the diff-based Applier trust staged
// output.
package ir

import "github.com/dipeo/codegen/internal/specs"

// EnumDecl is one enum or enum-like string-literal union, in source order.
type EnumDecl struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// FieldModel is one data-model field mapped to all three target
// representations.
type FieldModel struct {
	Name                string `json:"name"`
	LangType            string `json:"lang_type"`
	GQLType             string `json:"gql_type"`
	ValidationFragment  string `json:"validation_fragment"`
	Optional            bool   `json:"optional"`
	Required            bool   `json:"required"`
	DefaultValue        any    `json:"default_value,omitempty"`
	HasDefault          bool   `json:"has_default"`
	Description         string `json:"description,omitempty"`
}

// DataModel is one backend data class, one per node spec.
type DataModel struct {
	Name       string       `json:"name"`
	NodeType   string       `json:"node_type"`
	SourcePath string       `json:"source_path"`
	Fields     []FieldModel `json:"fields"`
}

// GraphQLKind distinguishes the four declaration shapes the Schema IR ever
// emits.
type GraphQLKind string

const (
	GraphQLObjectType GraphQLKind = "type"
	GraphQLInputType  GraphQLKind = "input"
	GraphQLEnumType   GraphQLKind = "enum"
	GraphQLScalarType GraphQLKind = "scalar"
)

// GraphQLFieldDecl is one field of a GraphQL object or input type.
type GraphQLFieldDecl struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// GraphQLTypeDecl is one GraphQL type/input/enum/scalar declaration.
type GraphQLTypeDecl struct {
	Name       string             `json:"name"`
	Kind       GraphQLKind        `json:"kind"`
	Fields     []GraphQLFieldDecl `json:"fields,omitempty"`
	EnumValues []string           `json:"enum_values,omitempty"`
}

// RootOperationField is one field on the Query/Mutation/Subscription root
// type, derived from a Query Specification's operations.
type RootOperationField struct {
	Name       string               `json:"name"`
	Kind       specs.OperationKind  `json:"kind"`
	Entity     string               `json:"entity"`
	Variables  []specs.Variable     `json:"variables,omitempty"`
	ReturnType string               `json:"return_type"`
}

// HandlerStub is the generated handler scaffold for one node type. Omitted
// from emission (but not from Registry) when the owning spec sets
// handler_metadata.skip_generation.
type HandlerStub struct {
	NodeType      string   `json:"node_type"`
	ModulePath    string   `json:"module_path"`
	ClassName     string   `json:"class_name"`
	Mixins        []string `json:"mixins,omitempty"`
	ServiceKeys   []string `json:"service_keys,omitempty"`
	CustomImports []string `json:"custom_imports,omitempty"`
}

// BackendRegistryEntry maps a node type to its handler regardless of
// whether a stub file was emitted for it.
type BackendRegistryEntry struct {
	NodeType       string `json:"node_type"`
	ModulePath     string `json:"module_path,omitempty"`
	ClassName      string `json:"class_name,omitempty"`
	SkipGeneration bool   `json:"skip_generation"`
}

// Backend is the code-generation IR for the statically-typed backend
// target: enums, data models, mirrored GraphQL type declarations, root
// operation fields, and handler stubs/registry.
type Backend struct {
	Enums          []EnumDecl             `json:"enums"`
	Models         []DataModel            `json:"models"`
	GraphQLTypes   []GraphQLTypeDecl      `json:"graphql_types"`
	RootOperations []RootOperationField   `json:"root_operations"`
	HandlerStubs   []HandlerStub          `json:"handler_stubs"`
	Registry       []BackendRegistryEntry `json:"registry"`
}

// ConditionalDisplay mirrors specs.ConditionSpec in the rendering contract.
type ConditionalDisplay struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

// FieldConfigEntry is one field's frontend authoring/display configuration.
type FieldConfigEntry struct {
	Name               string               `json:"name"`
	Widget             string               `json:"widget,omitempty"`
	Placeholder        string               `json:"placeholder,omitempty"`
	Column             int                  `json:"column,omitempty"`
	Rows               int                  `json:"rows,omitempty"`
	Options            []string             `json:"options,omitempty"`
	Hidden             bool                 `json:"hidden,omitempty"`
	Collapsible        bool                 `json:"collapsible,omitempty"`
	Adjustable         bool                 `json:"adjustable,omitempty"`
	Conditional        *ConditionalDisplay  `json:"conditional,omitempty"`
	ValidationFragment string               `json:"validation_fragment"`
}

// FieldConfigRecord is the ordered field configuration for one node type.
type FieldConfigRecord struct {
	NodeType string             `json:"node_type"`
	Fields   []FieldConfigEntry `json:"fields"`
}

// NodeModelRecord is the frontend-facing description of one node type.
type NodeModelRecord struct {
	NodeType             string `json:"node_type"`
	DisplayName          string `json:"display_name"`
	Category             string `json:"category,omitempty"`
	Icon                 string `json:"icon,omitempty"`
	Color                string `json:"color,omitempty"`
	Description          string `json:"description,omitempty"`
	PrimaryDisplayField  string `json:"primary_display_field,omitempty"`
}

// OperationDocument is one GraphQL operation, ready to render as `.graphql`.
type OperationDocument struct {
	Entity    string              `json:"entity"`
	Name      string              `json:"name"`
	Kind      specs.OperationKind `json:"kind"`
	Variables []specs.Variable    `json:"variables,omitempty"`
	Selection []specs.SelectionField `json:"selection"`
}

// NodeRegistryEntry maps a node type to the frontend module and defaults
// that load it.
type NodeRegistryEntry struct {
	NodeType        string         `json:"node_type"`
	ModulePath      string         `json:"module_path,omitempty"`
	FieldConfigName string         `json:"field_config_name"`
	Defaults        map[string]any `json:"defaults,omitempty"`
}

// Frontend is the code-generation IR for the web client: field
// configuration, node models, aggregated GraphQL operations, and registry.
type Frontend struct {
	FieldConfigs []FieldConfigRecord  `json:"field_configs"`
	NodeModels   []NodeModelRecord    `json:"node_models"`
	Operations   []OperationDocument  `json:"operations"`
	Registry     []NodeRegistryEntry  `json:"registry"`
}

// Schema is the single authoritative GraphQL schema IR: the de-duplicated
// union of Backend's GraphQL type declarations and Frontend's operation
// documents.
type Schema struct {
	Types      []GraphQLTypeDecl   `json:"types"`
	Operations []OperationDocument `json:"operations"`
}
