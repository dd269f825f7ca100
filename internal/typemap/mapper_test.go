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
)

func TestMap_PlainString(t *testing.T) {
	mapped, err := Map("string", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "string", mapped.LangType)
	assert.Equal(t, "String", mapped.GQLType)
	assert.False(t, mapped.Optional)
}

func TestMap_NullableUnwrapsAndMarksOptional(t *testing.T) {
	mapped, err := Map("string | null", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "string", mapped.LangType)
	assert.True(t, mapped.Optional)
}

func TestMap_UndefinedUnionMarksOptional(t *testing.T) {
	mapped, err := Map("number | undefined", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "float64", mapped.LangType)
	assert.Equal(t, "Float", mapped.GQLType)
	assert.True(t, mapped.Optional)
}

func TestMap_ArrayOfPrimitive(t *testing.T) {
	mapped, err := Map("string[]", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]string", mapped.LangType)
	assert.Equal(t, "[String!]", mapped.GQLType)
}

func TestMap_ArrayGenericSyntax(t *testing.T) {
	mapped, err := Map("Array<number>", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]float64", mapped.LangType)
	assert.Equal(t, "[Float!]", mapped.GQLType)
}

func TestMap_NullableArray(t *testing.T) {
	mapped, err := Map("string[] | null", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]string", mapped.LangType)
	assert.True(t, mapped.Optional)
}

func TestMap_RecordOfPrimitive(t *testing.T) {
	mapped, err := Map("Record<string, number>", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "map[string]float64", mapped.LangType)
	assert.Equal(t, "JSON", mapped.GQLType)
}

func TestMap_RecordOfAny(t *testing.T) {
	mapped, err := Map("Record<string, any>", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "map[string]any", mapped.LangType)
	assert.Equal(t, "JSON", mapped.GQLType)
}

func TestMap_BrandedType(t *testing.T) {
	mapped, err := Map("string & { __brand: 'PersonID' }", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "PersonID", mapped.LangType)
	assert.Equal(t, "PersonID", mapped.GQLType)
	assert.Equal(t, "string, non-empty", mapped.ValidationFragment)
}

func TestMap_BrandedTypeNullable(t *testing.T) {
	mapped, err := Map("string & { __brand: 'PersonID' } | null", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "PersonID", mapped.LangType)
	assert.True(t, mapped.Optional)
}

func TestMap_EnumReferenceResolvesViaRegistry(t *testing.T) {
	registry := EnumRegistry{"EmploymentStatus": {"active", "inactive", "on_leave"}}
	mapped, err := Map("EmploymentStatus", "", "", registry, nil)
	require.NoError(t, err)
	assert.Equal(t, "EmploymentStatus", mapped.LangType)
	assert.Equal(t, "EmploymentStatus", mapped.GQLType)
	assert.Contains(t, mapped.ValidationFragment, "active")
}

func TestMap_UnresolvedLiteralUnionFails(t *testing.T) {
	_, err := Map("'active' | 'inactive'", "", "", EnumRegistry{}, nil)
	require.Error(t, err)
	var unresolved *UnresolvedTypeError
	require.ErrorAs(t, err, &unresolved)
}

func TestMap_UnresolvedJunkTypeFails(t *testing.T) {
	_, err := Map("#$%not-a-type", "", "", nil, nil)
	require.Error(t, err)
}

func TestMap_NestedIdentifierPassesThrough(t *testing.T) {
	mapped, err := Map("Address", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Address", mapped.LangType)
	assert.Equal(t, "Address", mapped.GQLType)
}

func TestMap_OverrideReplacesTargetType(t *testing.T) {
	overrides := OverrideTable{
		OverrideKey{SpecName: "Person", FieldName: "id"}: {TargetType: "PersonID", GQLType: "ID"},
	}
	mapped, err := Map("string", "Person", "id", nil, overrides)
	require.NoError(t, err)
	assert.Equal(t, "PersonID", mapped.LangType)
	assert.Equal(t, "ID", mapped.GQLType)
}

func TestMap_OverridePartialLeavesOtherFieldsAutomatic(t *testing.T) {
	overrides := OverrideTable{
		OverrideKey{SpecName: "Person", FieldName: "id"}: {TargetType: "PersonID"},
	}
	mapped, err := Map("string", "Person", "id", nil, overrides)
	require.NoError(t, err)
	assert.Equal(t, "PersonID", mapped.LangType)
	assert.Equal(t, "String", mapped.GQLType)
}

func TestMap_NoOverrideForFieldFallsThroughToAutomatic(t *testing.T) {
	overrides := OverrideTable{
		OverrideKey{SpecName: "Person", FieldName: "id"}: {TargetType: "PersonID"},
	}
	mapped, err := Map("string", "Person", "name", nil, overrides)
	require.NoError(t, err)
	assert.Equal(t, "string", mapped.LangType)
}

func TestEnumMembersFromLiteralUnion_ExtractsInOrder(t *testing.T) {
	members, ok := EnumMembersFromLiteralUnion(`'active' | 'inactive' | 'on_leave'`)
	require.True(t, ok)
	assert.Equal(t, []string{"active", "inactive", "on_leave"}, members)
}

func TestEnumMembersFromLiteralUnion_RejectsMixedUnion(t *testing.T) {
	_, ok := EnumMembersFromLiteralUnion(`'active' | null`)
	assert.False(t, ok)
}

// End-to-end scenarios mirroring the minimal, enum, and branded-ID node
// spec examples: a required plain string, a field typed by a registered
// enum, and a branded identifier field.
func TestMap_EndToEnd_MinimalRequiredStringField(t *testing.T) {
	mapped, err := Map("string", "SimpleNote", "text", nil, nil)
	require.NoError(t, err)
	assert.False(t, mapped.Optional)
	assert.Equal(t, "string", mapped.LangType)
	assert.Equal(t, "String", mapped.GQLType)
}

func TestMap_EndToEnd_RegisteredEnumField(t *testing.T) {
	registry := EnumRegistry{"Priority": {"low", "medium", "high"}}
	mapped, err := Map("Priority", "Task", "priority", registry, nil)
	require.NoError(t, err)
	assert.Equal(t, "Priority", mapped.LangType)
	assert.Equal(t, "Priority", mapped.GQLType)
}

func TestMap_EndToEnd_BrandedIDField(t *testing.T) {
	mapped, err := Map("string & { __brand: 'PersonID' }", "Employment", "personId", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "PersonID", mapped.LangType)
	assert.Equal(t, "PersonID", mapped.GQLType)
}

func TestLoadOverrides_MissingFileReturnsEmptyTable(t *testing.T) {
	table, err := LoadOverrides("/nonexistent/overrides.yaml")
	require.NoError(t, err)
	assert.Empty(t, table)
}
