// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dipeo/codegen/internal/specs"
)

// decodeNodeSpec and decodeQuerySpec are the concrete
// internal/specs.NodeDecoder/QueryDecoder this binary wires into the
// pipeline. Each spec file's body must be a single `export default { ...
// } satisfies NodeSpecDefinition;` (or QuerySpecDefinition) statement
// whose object literal is JSON-compatible; internal/astx has no visibility
// into initializer expressions, so the literal is sliced out of the raw
// source text by brace balance and decoded directly as JSON, reusing
// NodeSpec/QuerySpec's existing json tags.
func decodeNodeSpec(path string, content []byte) (*specs.NodeSpec, error) {
	literal, err := extractDefaultObjectLiteral(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var spec specs.NodeSpec
	if err := json.Unmarshal(literal, &spec); err != nil {
		return nil, fmt.Errorf("%s: decode node spec: %w", path, err)
	}
	return &spec, nil
}

func decodeQuerySpec(path string, content []byte) (*specs.QuerySpec, error) {
	literal, err := extractDefaultObjectLiteral(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var spec specs.QuerySpec
	if err := json.Unmarshal(literal, &spec); err != nil {
		return nil, fmt.Errorf("%s: decode query spec: %w", path, err)
	}
	return &spec, nil
}

// extractDefaultObjectLiteral finds the first top-level `{` after the
// literal text `export default` and returns the brace-balanced slice
// through its matching `}`, ignoring braces that appear inside string
// literals. Anchoring on `export default` (rather than the file's first
// `{` outright) is required because a spec file's leading `import type {
// NodeSpecDefinition } from "..."` line also contains a balanced brace
// pair, and would otherwise be mistaken for the object literal itself.
func extractDefaultObjectLiteral(content []byte) ([]byte, error) {
	const marker = "export default"
	markerIdx := bytes.Index(content, []byte(marker))
	if markerIdx == -1 {
		return nil, fmt.Errorf("no %q statement found", marker)
	}

	start := -1
	for i := markerIdx + len(marker); i < len(content); i++ {
		if content[i] == '{' {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, fmt.Errorf("no object literal found after %q", marker)
	}

	depth := 0
	var inString byte
	for i := start; i < len(content); i++ {
		c := content[i]
		if inString != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == inString {
				inString = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			inString = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1], nil
			}
		}
	}
	return nil, fmt.Errorf("unbalanced object literal")
}
