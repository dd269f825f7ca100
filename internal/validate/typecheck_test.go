package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGoVetOutput_ParsesPositionAndMessage(t *testing.T) {
	output := []byte("foo.go:12:3: unreachable code\nbar.go:4:1: composite literal uses unkeyed fields\n")
	issues := parseGoVetOutput(output)
	require.Len(t, issues, 2)
	assert.Equal(t, Issue{File: "foo.go", Line: 12, Column: 3, Message: "unreachable code", Severity: SeverityError}, issues[0])
	assert.Equal(t, "bar.go", issues[1].File)
}

func TestParseGoVetOutput_SkipsPackageHeaderLines(t *testing.T) {
	output := []byte("# example.com/foo\nfoo.go:1:1: bad\n")
	issues := parseGoVetOutput(output)
	require.Len(t, issues, 1)
	assert.Equal(t, "foo.go", issues[0].File)
}

func TestParseGofmtOutput_OneIssuePerFile(t *testing.T) {
	output := []byte("foo.go\nbar.go\n")
	issues := parseGofmtOutput(output)
	require.Len(t, issues, 2)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Equal(t, "foo.go", issues[0].File)
}

func TestParseGofmtOutput_EmptyOutputNoIssues(t *testing.T) {
	assert.Empty(t, parseGofmtOutput([]byte("")))
}

func TestExternalTool_Run_UnknownCommandErrors(t *testing.T) {
	tool := ExternalTool{Command: "definitely-not-a-real-tool-xyz", Parse: parseGoVetOutput}
	_, err := tool.Run(context.Background(), ".")
	assert.Error(t, err)
}
