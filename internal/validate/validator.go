// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validate

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Validator walks a generated tree and checks every file it recognizes,
// satisfying internal/apply's TreeValidator contract. The zero value is
// ready to use.
type Validator struct {
	// ExternalTools run only when ValidateTree is called with
	// syntaxOnly=false. Defaults to GoVet() and GofmtCheck over the
	// tree's .go files when left nil.
	ExternalTools []ExternalTool
}

// NewValidator returns a Validator wired with the default external
// tool set (go vet, gofmt -l).
func NewValidator() *Validator {
	return &Validator{}
}

// treeSitterLanguageFor returns the grammar to re-parse a generated
// non-Go target file with, or nil if the extension isn't one this
// pipeline's frontend target family emits.
func treeSitterLanguageFor(path string) *sitter.Language {
	switch filepath.Ext(path) {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts":
		return typescript.GetLanguage()
	default:
		return nil
	}
}

// ValidateTree walks root, syntax-checks every file it recognizes by
// extension, and — unless syntaxOnly is set — additionally shells out to
// the external type-checkers. All issues across the whole tree are
// aggregated into one *TreeError; a tree with only warnings still
// returns nil, matching the Applier's "block on errors, not on style"
// expectation.
func (v *Validator) ValidateTree(root string, syntaxOnly bool) error {
	ctx := context.Background()
	var all []Issue
	var goFiles []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			all = append(all, Issue{File: rel, Message: readErr.Error(), Severity: SeverityError})
			return nil
		}

		switch filepath.Ext(path) {
		case ".go":
			goFiles = append(goFiles, path)
			all = append(all, relocate(ValidateGoSyntax(rel, content), rel)...)
		case ".graphql", ".gql":
			all = append(all, relocate(ValidateGraphQLSyntax(rel, content), rel)...)
		default:
			if language := treeSitterLanguageFor(path); language != nil {
				all = append(all, relocate(ValidateTreeSitterSyntax(ctx, rel, content, language), rel)...)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !syntaxOnly {
		tools := v.ExternalTools
		if tools == nil && len(goFiles) > 0 {
			tools = []ExternalTool{GoVet(), GofmtCheck(goFiles)}
		}
		for _, tool := range tools {
			issues, runErr := tool.Run(context.Background(), root)
			if runErr != nil {
				all = append(all, Issue{Message: runErr.Error(), Severity: SeverityWarning})
				continue
			}
			all = append(all, issues...)
		}
	}

	treeErr := &TreeError{Issues: all}
	if !treeErr.HasErrors() {
		return nil
	}
	return treeErr
}

// relocate rewrites each Issue's File field to rel, since the syntax
// checkers above only ever see the path they were handed directly.
func relocate(issues []Issue, rel string) []Issue {
	for i := range issues {
		issues[i].File = rel
	}
	return issues
}
