package shell

import (
	"context"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
}

func TestExecRunnerExitCode(t *testing.T) {
	skipOnWindows(t)

	var tests = []struct {
		script   string
		expected int
	}{
		{"exit 0", 0},
		{"exit 1", 1},
		{"exit 42", 42},
	}

	r := NewExecRunner(zerolog.Nop())

	for _, test := range tests {
		result, err := r.Run(context.Background(), "sh", []string{"-c", test.script}, Options{})
		require.NoError(t, err, test.script)

		assert.Equal(t, test.expected, result.ExitCode, test.script)
	}
}

func TestExecRunnerOutputAndEnv(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()

	result, err := NewExecRunner(zerolog.Nop()).Run(
		context.Background(),
		"sh",
		[]string{"-c", `echo "$GREETING"; pwd; echo oops >&2`},
		Options{Dir: dir, Env: map[string]string{"GREETING": "hello"}},
	)
	require.NoError(t, err)

	assert.Contains(t, result.Stdout, "hello")
	assert.Contains(t, result.Stdout, dir)
	assert.Contains(t, result.Stderr, "oops")
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, err := NewExecRunner(zerolog.Nop()).Run(context.Background(), "surely-not-a-real-binary-5e1f", nil, Options{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCommandFailed)
}

func TestCheck(t *testing.T) {
	skipOnWindows(t)

	r := NewExecRunner(zerolog.Nop())

	_, err := Check(context.Background(), r, "sh", []string{"-c", "echo broken >&2; exit 3"}, Options{})
	require.ErrorIs(t, err, ErrCommandFailed)

	var cmdErr *CommandError

	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Contains(t, err.Error(), "broken")
	assert.Contains(t, err.Error(), `"sh -c echo broken >&2; exit 3"`)

	_, err = Check(context.Background(), r, "sh", []string{"-c", "exit 0"}, Options{})
	assert.NoError(t, err)
}
