package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, err := execute(t, "translate", "--format", "xml", "SELECT * FROM users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestTranslateCommand_Text(t *testing.T) {
	out, err := execute(t, "translate", "SELECT name FROM users WHERE age > 21 LIMIT 5")
	require.NoError(t, err)

	assert.Contains(t, out, "collection: users")
	assert.Contains(t, out, "columns:    name")
	assert.Contains(t, out, "limit:      5")
}

func TestTranslateCommand_JSON(t *testing.T) {
	out, err := execute(t, "translate", "--format", "json", "SELECT * FROM users WHERE age >= 18")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "users", body["collection"])
	assert.Equal(t, true, body["star"])
	assert.Equal(t, map[string]any{"age": map[string]any{"$gte": float64(18)}}, body["filter"])
}

func TestTranslateCommand_SyntaxErrorCaret(t *testing.T) {
	_, err := execute(t, "translate", "SELECT * FROM users WHERE age = ")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "^")
	assert.Contains(t, err.Error(), "syntax error")
}

func TestTranslateCommand_Unsupported(t *testing.T) {
	_, err := execute(t, "translate", "SELECT * FROM users WHERE name LIKE 'a%'")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "LIKE")
}

func TestTranslateCommand_WrongArgCount(t *testing.T) {
	_, err := execute(t, "translate")
	require.Error(t, err)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "outer", errors.New("inner"))))
}

func TestExitError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := WrapExitError(ExitCommandError, "outer", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "outer")
	assert.Contains(t, err.Error(), "inner")
}

func TestOutputFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}
	require.NoError(t, f.Success(map[string]any{"a": 1}))
	assert.JSONEq(t, `{"a": 1}`, buf.String())

	buf.Reset()
	f.Format = "text"
	require.NoError(t, f.Success("hello"))
	assert.Equal(t, "hello\n", buf.String())
}
