// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralize_RegularWord(t *testing.T) {
	assert.Equal(t, "nodes", Pluralize("node"))
}

func TestPluralize_SibilantSuffix(t *testing.T) {
	assert.Equal(t, "boxes", Pluralize("box"))
	assert.Equal(t, "statuses", Pluralize("status"))
}

func TestPluralize_ConsonantY(t *testing.T) {
	assert.Equal(t, "queries", Pluralize("query"))
}

func TestPluralize_VowelYUnchangedRule(t *testing.T) {
	assert.Equal(t, "keys", Pluralize("key"))
}

func TestPluralize_Irregular(t *testing.T) {
	assert.Equal(t, "people", Pluralize("person"))
	assert.Equal(t, "Children", Pluralize("Child"))
}

func TestPluralize_EmptyString(t *testing.T) {
	assert.Equal(t, "", Pluralize(""))
}
