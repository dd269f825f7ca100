package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGraphQLSyntax_BalancedReturnsNil(t *testing.T) {
	src := []byte(`
type Person {
  id: ID!
  name: String
}

type Query {
  person(id: ID!): Person
}
`)
	issues := ValidateGraphQLSyntax("schema.graphql", src)
	assert.Empty(t, issues)
}

func TestValidateGraphQLSyntax_UnclosedBraceReported(t *testing.T) {
	src := []byte("type Person {\n  id: ID!\n")
	issues := ValidateGraphQLSyntax("schema.graphql", src)
	require.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Message, "unclosed")
}

func TestValidateGraphQLSyntax_UnexpectedClosingReported(t *testing.T) {
	src := []byte("type Person { id: ID! }\n}\n")
	issues := ValidateGraphQLSyntax("schema.graphql", src)
	require.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Message, "unexpected closing")
}

func TestValidateGraphQLSyntax_UnterminatedStringReported(t *testing.T) {
	src := []byte(`"""This is a doc comment that never ends
type Person { id: ID! }
`)
	issues := ValidateGraphQLSyntax("schema.graphql", src)
	require.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Message, "unterminated string")
}

func TestValidateGraphQLSyntax_IgnoresComments(t *testing.T) {
	src := []byte("# a comment with a { brace\ntype Person { id: ID! }\n")
	issues := ValidateGraphQLSyntax("schema.graphql", src)
	assert.Empty(t, issues)
}

func TestValidateGraphQLSyntax_IgnoresBracketsInsideStrings(t *testing.T) {
	src := []byte(`type Query { person(id: ID! = "{not a brace}"): Person }` + "\n")
	issues := ValidateGraphQLSyntax("schema.graphql", src)
	assert.Empty(t, issues)
}
