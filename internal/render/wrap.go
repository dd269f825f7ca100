// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package render

import "strings"

// DefaultWrapWidth is the column width templates wrap JSDoc/docstring
// comment text to when no explicit width is given.
const DefaultWrapWidth = 77

// WrapDoc wraps text into lines no longer than width (a template-supplied
// value of 0 or less falls back to DefaultWrapWidth), each prefixed with
// prefix (e.g. "// " or " * "), joined with newlines. Used by templates
// rendering JSDoc blocks as target-language doc comments.
func WrapDoc(text string, width int, prefix string) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	words := strings.Fields(text)
	var lines []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			lines = append(lines, prefix+current.String())
			current.Reset()
		}
	}

	for _, word := range words {
		candidateLen := current.Len() + len(word)
		if current.Len() > 0 {
			candidateLen++
		}
		if candidateLen > width && current.Len() > 0 {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	flush()

	return strings.Join(lines, "\n")
}
