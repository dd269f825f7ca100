// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ir

import "fmt"

// Problem is one unresolved reference, mapping failure, or invariant breach
// encountered while building an IR.
type Problem struct {
	NodeType string
	Field    string
	Message  string
}

func (p Problem) Error() string {
	if p.Field != "" {
		return fmt.Sprintf("%s.%s: %s", p.NodeType, p.Field, p.Message)
	}
	return fmt.Sprintf("%s: %s", p.NodeType, p.Message)
}

// BuildError aggregates every Problem found while building one IR, so a
// build failure reports all of them in a single structured error rather
// than stopping at the first.
type BuildError struct {
	Problems []Problem
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("ir: %d problem(s) building IR", len(e.Problems))
}

// Unwrap exposes the individual problems for errors.Is/As.
func (e *BuildError) Unwrap() []error {
	errs := make([]error, len(e.Problems))
	for i, p := range e.Problems {
		errs[i] = p
	}
	return errs
}

func (e *BuildError) add(nodeType, field, message string) {
	e.Problems = append(e.Problems, Problem{NodeType: nodeType, Field: field, Message: message})
}

func (e *BuildError) errOrNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
