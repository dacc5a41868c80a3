package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	cmd.SetIn(bytes.NewBufferString(stdin))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommandReprintsCompact(t *testing.T) {
	out, err := run(t, `{ "a" : 1 }`, "parse", "-")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", out)
}

func TestParseCommandIndent(t *testing.T) {
	out, err := run(t, `[1,2]`, "parse", "-", "--indent", "2")
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  2\n]\n", out)
}

func TestParseCommandAllowComments(t *testing.T) {
	out, err := run(t, "// hi\n{\"a\":1}", "parse", "-", "--allow-comments")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", out)
}

func TestPullCommandPrintsEventTrace(t *testing.T) {
	out, err := run(t, `[1,"s"]`, "pull", "-")
	require.NoError(t, err)
	assert.Equal(t, "start_array\ninteger 1\nstring \"s\"\nend_array\n", out)
}

func TestParseCommandSkipsLeadingBOM(t *testing.T) {
	out, err := run(t, "\xEF\xBB\xBF"+`{"a":1}`, "parse", "-")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", out)
}

func TestDOMCommandRoundTrips(t *testing.T) {
	out, err := run(t, `{"a":[1,2]}`, "dom", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `{"a":[1,2]}`)
}
