// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dipeo/codegen/internal/specs"
)

func TestMapField_PlainStringPassesThroughToMap(t *testing.T) {
	field := specs.FieldSpec{Name: "title", Type: "string", Required: true}
	mapped, err := MapField(field, "Note", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "string", mapped.LangType)
	assert.False(t, mapped.Optional)
}

func TestMapField_NotRequiredMarksOptional(t *testing.T) {
	field := specs.FieldSpec{Name: "title", Type: "string", Required: false}
	mapped, err := MapField(field, "Note", nil, nil)
	require.NoError(t, err)
	assert.True(t, mapped.Optional)
}

func TestMapField_EnumCategoryUsesAllowedValues(t *testing.T) {
	field := specs.FieldSpec{
		Name:          "priority",
		Type:          "enum",
		Required:      true,
		AllowedValues: []string{"low", "medium", "high"},
	}
	mapped, err := MapField(field, "Task", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Priority", mapped.LangType)
	assert.Equal(t, "Priority", mapped.GQLType)
	assert.Contains(t, mapped.ValidationFragment, "medium")
}

func TestMapField_EnumCategoryWithoutAllowedValuesFails(t *testing.T) {
	field := specs.FieldSpec{Name: "priority", Type: "enum", Required: true}
	_, err := MapField(field, "Task", nil, nil)
	require.Error(t, err)
}

func TestMapField_ArrayCategoryWrapsItemType(t *testing.T) {
	field := specs.FieldSpec{Name: "tags", Type: "array", ItemType: "string", Required: true}
	mapped, err := MapField(field, "Task", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]string", mapped.LangType)
	assert.Equal(t, "[String!]", mapped.GQLType)
}

func TestMapField_ArrayCategoryWithoutItemTypeFails(t *testing.T) {
	field := specs.FieldSpec{Name: "tags", Type: "array", Required: true}
	_, err := MapField(field, "Task", nil, nil)
	require.Error(t, err)
}

func TestMapField_ObjectCategoryMapsToJSON(t *testing.T) {
	field := specs.FieldSpec{Name: "metadata", Type: "object", Required: true}
	mapped, err := MapField(field, "Task", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "map[string]any", mapped.LangType)
	assert.Equal(t, "JSON", mapped.GQLType)
}

func TestMapField_BrandedNamePassesThroughAsIdentifier(t *testing.T) {
	field := specs.FieldSpec{Name: "personId", Type: "PersonID", Required: true}
	mapped, err := MapField(field, "Employment", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "PersonID", mapped.LangType)
}

func TestMapField_OverrideAppliesOnTopOfCategory(t *testing.T) {
	overrides := OverrideTable{
		OverrideKey{SpecName: "Task", FieldName: "priority"}: {GQLType: "TaskPriority"},
	}
	field := specs.FieldSpec{Name: "priority", Type: "enum", Required: true, AllowedValues: []string{"low", "high"}}
	mapped, err := MapField(field, "Task", nil, overrides)
	require.NoError(t, err)
	assert.Equal(t, "TaskPriority", mapped.GQLType)
	assert.Equal(t, "Priority", mapped.LangType)
}

func TestMapField_ArrayOverrideDoesNotClobberListWrapper(t *testing.T) {
	overrides := OverrideTable{
		OverrideKey{SpecName: "Task", FieldName: "tags"}: {TargetType: "[]CustomTag"},
	}
	field := specs.FieldSpec{Name: "tags", Type: "array", ItemType: "string", Required: true}
	mapped, err := MapField(field, "Task", nil, overrides)
	require.NoError(t, err)
	assert.Equal(t, "[]CustomTag", mapped.LangType)
}
