package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
}

func TestIssue_Error_IncludesPosition(t *testing.T) {
	issue := Issue{File: "foo.go", Line: 3, Column: 5, Message: "unexpected token", Severity: SeverityError}
	assert.Equal(t, "foo.go:3:5: error: unexpected token", issue.Error())
}

func TestIssue_Error_NoLineOmitsPosition(t *testing.T) {
	issue := Issue{File: "foo.go", Message: "not gofmt-formatted", Severity: SeverityWarning}
	assert.Equal(t, "foo.go: warning: not gofmt-formatted", issue.Error())
}

func TestTreeError_HasErrors(t *testing.T) {
	onlyWarnings := &TreeError{Issues: []Issue{{Severity: SeverityWarning}}}
	assert.False(t, onlyWarnings.HasErrors())

	withError := &TreeError{Issues: []Issue{{Severity: SeverityWarning}, {Severity: SeverityError}}}
	assert.True(t, withError.HasErrors())
}

func TestTreeError_UnwrapExposesIssues(t *testing.T) {
	issue := Issue{File: "a.go", Message: "boom", Severity: SeverityError}
	treeErr := &TreeError{Issues: []Issue{issue}}

	var target Issue
	require.True(t, errors.As(treeErr, &target))
	assert.Equal(t, issue, target)
}
