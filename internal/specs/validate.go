// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package specs

import "fmt"

// Violation is one broken invariant, naming the offending spec.
type Violation struct {
	SourcePath string
	NodeType   string
	Message    string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s (%s): %s", v.SourcePath, v.NodeType, v.Message)
}

// ValidationError aggregates every Violation found in one pass, so a
// validation failure reports all offending specs together.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("specs: %d invariant violation(s)", len(e.Violations))
}

// Unwrap exposes the individual violations for errors.Is/As and for
// aggregated-error rendering upstream.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Violations))
	for i, v := range e.Violations {
		errs[i] = v
	}
	return errs
}

// Validate checks every invariant from the Node Specification data model
// across the full set of specs: node-type uniqueness, per-spec field-name
// uniqueness, conditional-field references, enum default membership, and
// primary-display-field resolution. Every violation across every spec is
// collected before returning; none short-circuits the others.
func Validate(specList []NodeSpec) error {
	var violations []Violation

	seenNodeTypes := make(map[string]string) // node_type -> first source path
	for _, spec := range specList {
		if spec.NodeType == "" {
			violations = append(violations, Violation{spec.SourcePath, spec.NodeType, "missing node_type"})
			continue
		}
		if first, exists := seenNodeTypes[spec.NodeType]; exists {
			violations = append(violations, Violation{
				spec.SourcePath, spec.NodeType,
				fmt.Sprintf("duplicate node_type, first defined in %s", first),
			})
		} else {
			seenNodeTypes[spec.NodeType] = spec.SourcePath
		}

		violations = append(violations, validateOneSpec(spec)...)
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func validateOneSpec(spec NodeSpec) []Violation {
	var violations []Violation

	fieldNames := make(map[string]bool, len(spec.Fields))
	fieldsByName := make(map[string]FieldSpec, len(spec.Fields))
	for _, field := range spec.Fields {
		if fieldNames[field.Name] {
			violations = append(violations, Violation{
				spec.SourcePath, spec.NodeType,
				fmt.Sprintf("duplicate field name %q", field.Name),
			})
		}
		fieldNames[field.Name] = true
		fieldsByName[field.Name] = field
	}

	for _, field := range spec.Fields {
		if field.Conditional != nil {
			if _, ok := fieldsByName[field.Conditional.Field]; !ok {
				violations = append(violations, Violation{
					spec.SourcePath, spec.NodeType,
					fmt.Sprintf("field %q has conditional reference to undeclared sibling %q", field.Name, field.Conditional.Field),
				})
			}
		}

		if field.Type == "enum" && field.DefaultValue != nil && len(field.AllowedValues) > 0 {
			defaultStr, ok := field.DefaultValue.(string)
			if !ok {
				violations = append(violations, Violation{
					spec.SourcePath, spec.NodeType,
					fmt.Sprintf("field %q default_value is not a string enum member", field.Name),
				})
			} else if !contains(field.AllowedValues, defaultStr) {
				violations = append(violations, Violation{
					spec.SourcePath, spec.NodeType,
					fmt.Sprintf("field %q default_value %q is not in allowed_values", field.Name, defaultStr),
				})
			}
		}
	}

	if spec.PrimaryDisplayField != "" {
		if _, ok := fieldsByName[spec.PrimaryDisplayField]; !ok {
			violations = append(violations, Violation{
				spec.SourcePath, spec.NodeType,
				fmt.Sprintf("primary_display_field %q does not name a declared field", spec.PrimaryDisplayField),
			})
		}
	}

	return violations
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
