// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package specs discovers and validates Node Specifications and Query
// Specifications authored as TypeScript source. Discovery is glob-based:
// every matching file under the configured directory is accepted, there is
// no manual registry to keep in sync.
package specs

// FieldSpec is one field of a Node Specification.
type FieldSpec struct {
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	Required      bool           `json:"required"`
	DefaultValue  any            `json:"default_value,omitempty"`
	Description   string         `json:"description,omitempty"`
	MinValue      *float64       `json:"min,omitempty"`
	MaxValue      *float64       `json:"max,omitempty"`
	MinLength     *int           `json:"min_length,omitempty"`
	MaxLength     *int           `json:"max_length,omitempty"`
	Pattern       string         `json:"pattern,omitempty"`
	AllowedValues []string       `json:"allowed_values,omitempty"`
	ItemType      string         `json:"item_type,omitempty"`
	UI            *UIConfig      `json:"ui,omitempty"`
	NestedFields  []FieldSpec    `json:"nested_fields,omitempty"`
	Conditional   *ConditionSpec `json:"conditional,omitempty"`
}

// UIConfig carries authoring hints for the frontend field configuration.
type UIConfig struct {
	InputWidget string   `json:"input_widget,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Column      int      `json:"column,omitempty"`
	Rows        int      `json:"rows,omitempty"`
	Options     []string `json:"options,omitempty"`
	Hidden      bool     `json:"hidden,omitempty"`
	Collapsible bool     `json:"collapsible,omitempty"`
	Adjustable  bool     `json:"adjustable,omitempty"`
}

// ConditionSpec shows a field only when a sibling field holds one of Values.
type ConditionSpec struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

// HandleConfig names the node's input and output ports.
type HandleConfig struct {
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

// PortSpec is a typed port contract.
type PortSpec struct {
	ContentType string `json:"content_type"`
	Required    bool   `json:"required"`
}

// OutputSpec describes one entry of a node's outputs map.
type OutputSpec struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// ExecutionConfig carries per-node execution policy.
type ExecutionConfig struct {
	TimeoutSeconds   int      `json:"timeout_seconds,omitempty"`
	Retryable        bool     `json:"retryable,omitempty"`
	MaxRetries       int      `json:"max_retries,omitempty"`
	RequiredServices []string `json:"required_services,omitempty"`
}

// HandlerMetadata points at the backend handler implementing a node type.
type HandlerMetadata struct {
	ModulePath     string   `json:"module_path,omitempty"`
	ClassName      string   `json:"class_name,omitempty"`
	Mixins         []string `json:"mixins,omitempty"`
	ServiceKeys    []string `json:"service_keys,omitempty"`
	SkipGeneration bool     `json:"skip_generation,omitempty"`
	CustomImports  []string `json:"custom_imports,omitempty"`
}

// Example is a named sample configuration for a node type.
type Example struct {
	Name   string         `json:"name"`
	Values map[string]any `json:"values"`
}

// NodeSpec is the authoring surface for one node type in the visual language.
type NodeSpec struct {
	// SourcePath is the canonical file this spec was loaded from.
	SourcePath string `json:"source_path"`

	NodeType            string              `json:"node_type"`
	DisplayName         string              `json:"display_name"`
	Category            string              `json:"category,omitempty"`
	Icon                string              `json:"icon,omitempty"`
	Color               string              `json:"color,omitempty"`
	Description         string              `json:"description,omitempty"`
	PrimaryDisplayField string              `json:"primary_display_field,omitempty"`
	Fields              []FieldSpec         `json:"fields"`
	Handles             HandleConfig        `json:"handles"`
	InputPorts          map[string]PortSpec `json:"input_ports,omitempty"`
	Outputs             map[string]OutputSpec `json:"outputs,omitempty"`
	Execution           ExecutionConfig     `json:"execution,omitempty"`
	Handler             *HandlerMetadata    `json:"handler,omitempty"`
	Examples            []Example           `json:"examples,omitempty"`
}

// Variable is one operation variable in a Query Specification.
type Variable struct {
	Name     string `json:"name"`
	GQLType  string `json:"gql_type"`
	Required bool   `json:"required"`
}

// SelectionField is one field in a Query Specification's selection set.
type SelectionField struct {
	Name     string           `json:"name"`
	Children []SelectionField `json:"children,omitempty"`
}

// OperationKind is the GraphQL operation type.
type OperationKind string

const (
	OperationQuery        OperationKind = "query"
	OperationMutation     OperationKind = "mutation"
	OperationSubscription OperationKind = "subscription"
)

// Operation is one named operation in a Query Specification.
type Operation struct {
	Name      string           `json:"name"`
	Kind      OperationKind    `json:"kind"`
	Variables []Variable       `json:"variables,omitempty"`
	Selection []SelectionField `json:"selection"`
}

// QuerySpec is the set of GraphQL operations authored for one domain entity.
type QuerySpec struct {
	SourcePath string      `json:"source_path"`
	Entity     string      `json:"entity"`
	Operations []Operation `json:"operations"`
}
