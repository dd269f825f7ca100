// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package astx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrFileTooLarge is returned when a source file exceeds the configured limit.
var ErrFileTooLarge = fmt.Errorf("astx: file too large")

// ErrInvalidContent is returned when source content is not valid UTF-8.
var ErrInvalidContent = fmt.Errorf("astx: content is not valid UTF-8")

const defaultMaxFileSize = 5 << 20 // 5 MiB

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxFileSize overrides the default per-file size limit.
func WithMaxFileSize(bytes int64) Option {
	return func(e *Extractor) { e.maxFileSize = bytes }
}

// WithIncludeJSDoc controls whether JSDoc comments are attached to
// declarations. Defaults to true.
func WithIncludeJSDoc(include bool) Option {
	return func(e *Extractor) { e.includeJSDoc = include }
}

// Extractor turns TypeScript source files into Files using tree-sitter.
// A new tree-sitter parser instance is created per call, so an Extractor is
// safe for concurrent use.
type Extractor struct {
	maxFileSize  int64
	includeJSDoc bool
}

// NewExtractor builds an Extractor with the given options.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		maxFileSize:  defaultMaxFileSize,
		includeJSDoc: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFile parses one TypeScript source file into a File.
//
// Declarations preserve source order. type_text is the literal TS expression,
// unsimplified. Purely internal (non-exported) declarations are included with
// Exported=false.
func (e *Extractor) ExtractFile(ctx context.Context, path string, content []byte) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: canceled before start: %w", path, err)
	}
	if int64(len(content)) > e.maxFileSize {
		return nil, fmt.Errorf("%s: %w: size %d exceeds limit %d", path, ErrFileTooLarge, len(content), e.maxFileSize)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidContent)
	}

	hash := sha256.Sum256(content)

	parser := sitter.NewParser()
	if strings.HasSuffix(path, ".tsx") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, &ParseError{Path: path, Message: fmt.Sprintf("tree-sitter parse failed: %v", err)}
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: canceled after parse: %w", path, err)
	}

	root := tree.RootNode()
	if root == nil {
		return nil, &ParseError{Path: path, Message: "tree-sitter returned nil root node"}
	}
	if root.HasError() {
		return nil, &ParseError{
			Path:    path,
			Line:    int(root.StartPoint().Row) + 1,
			Message: "source contains syntax errors",
		}
	}

	x := &extraction{content: content, path: path, includeJSDoc: e.includeJSDoc}
	decls := x.extractDeclarations(root)

	return &File{
		Path:          path,
		Hash:          hex.EncodeToString(hash[:]),
		Language:      "typescript",
		Declarations:  decls,
		ParsedAtMilli: time.Now().UnixMilli(),
	}, nil
}

// ExtractAll extracts every path in paths, in the order given. It never
// returns a partial result: if any file fails to parse, all ParseErrors are
// collected and returned together with a nil map.
func (e *Extractor) ExtractAll(ctx context.Context, paths []string, read func(path string) ([]byte, error)) (map[string]*File, []*ParseError) {
	files := make(map[string]*File, len(paths))
	var errs []*ParseError

	for _, path := range paths {
		content, err := read(path)
		if err != nil {
			errs = append(errs, &ParseError{Path: path, Message: err.Error()})
			continue
		}
		file, err := e.ExtractFile(ctx, path, content)
		if err != nil {
			var pe *ParseError
			if asParseError(err, &pe) {
				errs = append(errs, pe)
			} else {
				errs = append(errs, &ParseError{Path: path, Message: err.Error()})
			}
			continue
		}
		files[path] = file
	}

	if len(errs) > 0 {
		sort.Slice(errs, func(i, j int) bool { return errs[i].Path < errs[j].Path })
		return nil, errs
	}
	return files, nil
}

func asParseError(err error, target **ParseError) bool {
	if pe, ok := err.(*ParseError); ok {
		*target = pe
		return true
	}
	return false
}

// extraction holds per-file mutable state while walking the tree.
type extraction struct {
	content      []byte
	path         string
	includeJSDoc bool
}

func (x *extraction) text(n *sitter.Node) string {
	return string(x.content[n.StartByte():n.EndByte()])
}

func (x *extraction) extractDeclarations(root *sitter.Node) []Declaration {
	var decls []Declaration
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "export_statement":
			decls = append(decls, x.processExportStatement(child)...)
		case "interface_declaration":
			if d := x.processInterface(child, false); d != nil {
				decls = append(decls, *d)
			}
		case "type_alias_declaration":
			if d := x.processTypeAlias(child, false); d != nil {
				decls = append(decls, *d)
			}
		case "enum_declaration":
			if d := x.processEnum(child, false); d != nil {
				decls = append(decls, *d)
			}
		case "class_declaration", "abstract_class_declaration":
			if d := x.processClass(child, false); d != nil {
				decls = append(decls, *d)
			}
		case "function_declaration":
			if d := x.processFunction(child, false); d != nil {
				decls = append(decls, *d)
			}
		case "lexical_declaration":
			decls = append(decls, x.processLexicalDeclaration(child, false)...)
		}
	}
	return decls
}

func (x *extraction) processExportStatement(node *sitter.Node) []Declaration {
	var decls []Declaration
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "interface_declaration":
			if d := x.processInterface(child, true); d != nil {
				decls = append(decls, *d)
			}
		case "type_alias_declaration":
			if d := x.processTypeAlias(child, true); d != nil {
				decls = append(decls, *d)
			}
		case "enum_declaration":
			if d := x.processEnum(child, true); d != nil {
				decls = append(decls, *d)
			}
		case "class_declaration", "abstract_class_declaration":
			if d := x.processClass(child, true); d != nil {
				decls = append(decls, *d)
			}
		case "function_declaration":
			if d := x.processFunction(child, true); d != nil {
				decls = append(decls, *d)
			}
		case "lexical_declaration":
			decls = append(decls, x.processLexicalDeclaration(child, true)...)
		}
	}
	return decls
}

func (x *extraction) processInterface(node *sitter.Node, exported bool) *Declaration {
	var name string
	var body *sitter.Node
	var extends []string

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "type_identifier":
			name = x.text(child)
		case "extends_type_clause":
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				if gc.Type() == "type_identifier" || gc.Type() == "generic_type" {
					extends = append(extends, x.text(gc))
				}
			}
		case "interface_body", "object_type":
			body = child
		}
	}
	if name == "" {
		return nil
	}

	d := &Declaration{
		Kind:      DeclInterface,
		Name:      name,
		JSDoc:     x.precedingComment(node),
		Exported:  exported,
		Extends:   extends,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
	if body != nil {
		d.Properties = x.extractProperties(body)
	}
	return d
}

func (x *extraction) extractProperties(body *sitter.Node) []Property {
	var props []Property
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Type() {
		case "property_signature", "public_field_definition":
			if p := x.processPropertySignature(child); p != nil {
				props = append(props, *p)
			}
		}
	}
	return props
}

func (x *extraction) processPropertySignature(node *sitter.Node) *Property {
	var name, typeText string
	var readonly, optional bool

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "readonly":
			readonly = true
		case "property_identifier":
			name = x.text(child)
		case "?":
			optional = true
		case "type_annotation":
			typeText = x.extractTypeAnnotation(child)
		}
	}
	if name == "" {
		return nil
	}
	return &Property{
		Name:     name,
		TypeText: typeText,
		Optional: optional,
		Readonly: readonly,
		JSDoc:    x.precedingComment(node),
	}
}

func (x *extraction) extractTypeAnnotation(node *sitter.Node) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != ":" {
			return x.text(child)
		}
	}
	return ""
}

func (x *extraction) processTypeAlias(node *sitter.Node, exported bool) *Declaration {
	var name, typeDef string

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "type_identifier":
			if name == "" {
				name = x.text(child)
			}
		case "type", "=", ";", "type_parameters":
			// skip
		default:
			if typeDef == "" && name != "" {
				typeDef = x.text(child)
			}
		}
	}
	if name == "" {
		return nil
	}
	return &Declaration{
		Kind:      DeclTypeAlias,
		Name:      name,
		TypeText:  typeDef,
		JSDoc:     x.precedingComment(node),
		Exported:  exported,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
}

func (x *extraction) processEnum(node *sitter.Node, exported bool) *Declaration {
	var name string
	var body *sitter.Node

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			name = x.text(child)
		case "enum_body":
			body = child
		}
	}
	if name == "" {
		return nil
	}

	d := &Declaration{
		Kind:      DeclEnum,
		Name:      name,
		JSDoc:     x.precedingComment(node),
		Exported:  exported,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
	if body != nil {
		d.Members = x.extractEnumMembers(body)
	}
	return d
}

func (x *extraction) extractEnumMembers(body *sitter.Node) []EnumMember {
	var members []EnumMember
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Type() {
		case "enum_assignment":
			var name, value string
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				switch gc.Type() {
				case "property_identifier":
					name = x.text(gc)
				case "string":
					value = x.extractStringContent(gc)
				case "number":
					value = x.text(gc)
				}
			}
			if name != "" {
				members = append(members, EnumMember{Name: name, Value: value})
			}
		case "property_identifier":
			members = append(members, EnumMember{Name: x.text(child)})
		}
	}
	return members
}

func (x *extraction) extractStringContent(node *sitter.Node) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "string_fragment" {
			return x.text(child)
		}
	}
	return strings.Trim(x.text(node), `"'`)
}

func (x *extraction) processClass(node *sitter.Node, exported bool) *Declaration {
	var name string
	var body *sitter.Node
	var extends []string

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "type_identifier", "identifier":
			if name == "" {
				name = x.text(child)
			}
		case "class_heritage":
			extends = x.extractClassHeritage(child)
		case "class_body":
			body = child
		}
	}
	if name == "" {
		return nil
	}

	d := &Declaration{
		Kind:      DeclClass,
		Name:      name,
		JSDoc:     x.precedingComment(node),
		Exported:  exported,
		Extends:   extends,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
	if body != nil {
		x.extractClassMembers(body, d)
	}
	return d
}

func (x *extraction) extractClassHeritage(node *sitter.Node) []string {
	var names []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "extends_clause", "implements_clause":
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				if gc.Type() == "identifier" || gc.Type() == "type_identifier" || gc.Type() == "generic_type" {
					names = append(names, x.text(gc))
				}
			}
		}
	}
	return names
}

func (x *extraction) extractClassMembers(body *sitter.Node, d *Declaration) {
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Type() {
		case "public_field_definition":
			if p := x.processPropertySignature(child); p != nil {
				d.Properties = append(d.Properties, *p)
			}
		case "method_definition":
			if m := x.processMethod(child); m != nil {
				d.Methods = append(d.Methods, *m)
			}
		}
	}
}

func (x *extraction) processMethod(node *sitter.Node) *Method {
	var name, returnType string
	var isAsync bool
	var params []Parameter

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "async":
			isAsync = true
		case "property_identifier":
			name = x.text(child)
		case "formal_parameters":
			params = x.extractParameters(child)
		case "type_annotation":
			returnType = x.extractTypeAnnotation(child)
		}
	}
	if name == "" {
		return nil
	}
	return &Method{
		Name:           name,
		Parameters:     params,
		ReturnTypeText: returnType,
		IsAsync:        isAsync,
		JSDoc:          x.precedingComment(node),
	}
}

func (x *extraction) extractParameters(node *sitter.Node) []Parameter {
	var params []Parameter
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "required_parameter", "optional_parameter":
			p := Parameter{Optional: child.Type() == "optional_parameter"}
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				switch gc.Type() {
				case "identifier":
					p.Name = x.text(gc)
				case "type_annotation":
					p.TypeText = x.extractTypeAnnotation(gc)
				}
			}
			if p.Name != "" {
				params = append(params, p)
			}
		case "identifier":
			params = append(params, Parameter{Name: x.text(child)})
		}
	}
	return params
}

func (x *extraction) processFunction(node *sitter.Node, exported bool) *Declaration {
	var name, returnType string
	var isAsync bool
	var params []Parameter

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "async":
			isAsync = true
		case "identifier":
			name = x.text(child)
		case "formal_parameters":
			params = x.extractParameters(child)
		case "type_annotation":
			returnType = x.extractTypeAnnotation(child)
		}
	}
	if name == "" {
		return nil
	}

	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Name)
	}
	prefix := "function "
	if isAsync {
		prefix = "async function "
	}
	sig := prefix + name + "(" + strings.Join(parts, ", ") + ")"

	return &Declaration{
		Kind:           DeclFunction,
		Name:           name,
		Signature:      sig,
		ReturnTypeText: returnType,
		JSDoc:          x.precedingComment(node),
		Exported:       exported,
		StartLine:      int(node.StartPoint().Row) + 1,
		EndLine:        int(node.EndPoint().Row) + 1,
	}
}

func (x *extraction) processLexicalDeclaration(node *sitter.Node, exported bool) []Declaration {
	var decls []Declaration
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "variable_declarator" {
			if d := x.processVariableDeclarator(child, exported); d != nil {
				decls = append(decls, *d)
			}
		}
	}
	return decls
}

func (x *extraction) processVariableDeclarator(node *sitter.Node, exported bool) *Declaration {
	var name, typeText string

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			name = x.text(child)
		case "type_annotation":
			typeText = x.extractTypeAnnotation(child)
		}
	}
	if name == "" {
		return nil
	}

	return &Declaration{
		Kind:      DeclConstant,
		Name:      name,
		TypeText:  typeText,
		JSDoc:     x.precedingComment(node),
		Exported:  exported,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
}

// precedingComment looks for a JSDoc comment immediately before node, or
// immediately before node's export_statement parent when node is wrapped.
func (x *extraction) precedingComment(node *sitter.Node) string {
	if !x.includeJSDoc || node == nil {
		return ""
	}

	if prev := node.PrevSibling(); prev != nil && prev.Type() == "comment" {
		comment := x.text(prev)
		if strings.HasPrefix(comment, "/**") {
			return comment
		}
	}

	if parent := node.Parent(); parent != nil && parent.Type() == "export_statement" {
		if parentPrev := parent.PrevSibling(); parentPrev != nil && parentPrev.Type() == "comment" {
			comment := x.text(parentPrev)
			if strings.HasPrefix(comment, "/**") {
				return comment
			}
		}
	}

	return ""
}
