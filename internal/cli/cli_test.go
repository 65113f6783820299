package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrompt(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	c := New(nil, strings.NewReader("a@b.com\n"), out)

	got, err := c.prompt("Email")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", got)
	require.Equal(t, "Email: ", out.String())
}

func TestPromptSecretFallsBackOffTerminal(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	c := New(nil, strings.NewReader("s3cret99\n"), out)

	got, err := c.promptSecret("Password")
	require.NoError(t, err)
	require.Equal(t, "s3cret99", got)
}
