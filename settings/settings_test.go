package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
owner = "Octo Cat"
gh-username = "octo"
gh-email = "octo@example.com"
license = "Apache-2.0"
linter = "eslint"
test-framework = "jest"
test-directory = "spec"
markdown-viewer = false
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Octo Cat", s.Owner)
	assert.Equal(t, "octo", s.GitHubUsername)
	assert.Equal(t, "octo@example.com", s.GitHubEmail)
	assert.Equal(t, "Apache-2.0", s.License)
	assert.Equal(t, "eslint", s.Linter)
	assert.Equal(t, "jest", s.TestFramework)
	assert.Equal(t, "spec", s.TestDirectory)
	assert.Empty(t, s.SrcDirectory)
	require.NotNil(t, s.MarkdownViewer)
	assert.False(t, *s.MarkdownViewer)
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "owner = \"x\"\ncolour = \"blue\"\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.ErrorContains(t, err, "colour")
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "owner = \n")

	_, err := Load(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownKey)
}

func TestResolveExplicit(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "linter = \"standard\"\n")

	s, got, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, path, got)
	assert.Equal(t, "standard", s.Linter)

	_, _, err = Resolve(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
