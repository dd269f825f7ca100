// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package render

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_LoadStringAndRender(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.LoadString("greet", "Hello, {{.Name}}!"))

	out, err := e.Render("greet", struct{ Name string }{Name: "Person"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Person!", string(out))
}

func TestEngine_RenderUsesNamingFilters(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.LoadString("names", "{{snake_case .}} {{pascal_case .}} {{kebab_case .}}"))

	out, err := e.Render("names", "employment status")
	require.NoError(t, err)
	assert.Equal(t, "employment_status EmploymentStatus employment-status", string(out))
}

func TestEngine_RenderUsesPluralizeAndJoin(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.LoadString("plural", "{{pluralize .A}}/{{join .B \", \"}}"))

	out, err := e.Render("plural", struct {
		A string
		B []string
	}{A: "person", B: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "people/a, b", string(out))
}

func TestEngine_LoadDirNamesByRelativePath(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/backend/model.go.tmpl":   {Data: []byte("package backend\n")},
		"templates/frontend/model.go.tmpl":  {Data: []byte("// frontend model\n")},
		"templates/frontend/ignore.txt":     {Data: []byte("ignored")},
	}

	e := NewEngine()
	require.NoError(t, e.LoadDir(fsys, "templates", "*.tmpl"))

	names := e.Names()
	assert.Contains(t, names, "backend/model.go.tmpl")
	assert.Contains(t, names, "frontend/model.go.tmpl")
	assert.NotContains(t, names, "frontend/ignore.txt")
}

func TestEngine_RenderUnknownTemplateFails(t *testing.T) {
	e := NewEngine()
	_, err := e.Render("missing", nil)
	assert.Error(t, err)
}

func TestEngine_RenderUsesDefaultExprFilter(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.LoadString("default", `{{default_expr "string" .}}`))

	out, err := e.Render("default", "active")
	require.NoError(t, err)
	assert.Equal(t, `"active"`, string(out))
}
