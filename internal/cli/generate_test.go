package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGenerate(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newGenerateCmd()
	cmd.SetIn(strings.NewReader(stdin))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGenerateFromStdin(t *testing.T) {
	state := `{"table":"users","filters":[{"column":"age","operator":">","value":"25"}]}`

	out, _, err := runGenerate(t, state)
	require.NoError(t, err)
	assert.Equal(t, "SELECT *\nFROM \"users\"\nWHERE \"age\" > 25;\n", out)
}

func TestGenerateMySQLDialect(t *testing.T) {
	out, _, err := runGenerate(t, `{"table":"users"}`, "--dialect", "mysql")
	require.NoError(t, err)
	assert.Equal(t, "SELECT *\nFROM `users`;\n", out)
}

func TestGenerateRejectsInvalidState(t *testing.T) {
	_, errOut, err := runGenerate(t, `{"table":""}`)
	require.Error(t, err)
	assert.Contains(t, errOut, "table name is required")
}

func TestGenerateNoValidateRendersAnyway(t *testing.T) {
	out, _, err := runGenerate(t, `{"table":""}`, "--no-validate")
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT *")
}

func TestGenerateRejectsUnknownDialect(t *testing.T) {
	_, _, err := runGenerate(t, `{"table":"t"}`, "--dialect", "oracle")
	assert.Error(t, err)
}
