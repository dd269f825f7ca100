// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

import (
	"context"
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"

	sitter "github.com/smacker/go-tree-sitter"
)

// ValidateGoSyntax re-parses Go source content with go/parser, the
// target-language syntax check for the statically-typed backend family
// (model structs, enums, handler stubs). A successful parse is the only
// guarantee required here; semantic/type checking is a separate,
// optional pass (see typecheck.go).
func ValidateGoSyntax(path string, content []byte) []Issue {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, path, content, parser.AllErrors)
	if err == nil {
		return nil
	}

	var issues []Issue
	if list, ok := err.(scanner.ErrorList); ok {
		for _, e := range list {
			issues = append(issues, Issue{
				File:     path,
				Line:     e.Pos.Line,
				Column:   e.Pos.Column,
				Message:  e.Msg,
				Severity: SeverityError,
			})
		}
		return issues
	}

	return []Issue{{File: path, Message: err.Error(), Severity: SeverityError}}
}

// ValidateTreeSitterSyntax re-parses content with the grammar for
// language and reports whether the resulting tree contains any ERROR
// nodes, the same HasError() check internal/astx uses when extracting
// TypeScript sources. Used for any generated target-language family this
// pipeline renders that isn't Go (frontend TS/TSX configs, for instance).
func ValidateTreeSitterSyntax(ctx context.Context, path string, content []byte, language *sitter.Language) []Issue {
	p := sitter.NewParser()
	p.SetLanguage(language)

	tree, err := p.ParseCtx(ctx, nil, content)
	if err != nil {
		return []Issue{{File: path, Message: fmt.Sprintf("parse failed: %v", err), Severity: SeverityError}}
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}
	return []Issue{{File: path, Message: "syntax error in generated source", Severity: SeverityError}}
}
