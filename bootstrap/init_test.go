package bootstrap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kxue43/nodestarter/license"
	"github.com/kxue43/nodestarter/manifest"
	"github.com/kxue43/nodestarter/vcs"
)

func TestInitCmdNonInteractive(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "my-lib")
	configPath := filepath.Join(root, "config.toml")

	require.NoError(t, os.WriteFile(configPath, []byte("owner = \"Octo Cat\"\ngh-username = \"octo\"\nflow = \"quick\"\n"), 0o644))

	var stdout, stderr bytes.Buffer

	npm := &fakeNPM{fs: osfs.New(dir)}

	cmd := &InitCmd{
		Path:        dir,
		Locale:      "en",
		Yes:         true,
		DumpAnswers: true,
		Config:      configPath,
		runner:      npm,
		stdout:      &stdout,
		stderr:      &stderr,
		now:         func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) },
	}

	require.NoError(t, cmd.AfterApply())
	assert.Equal(t, FlowQuick, cmd.flow.Name)

	require.NoError(t, cmd.Run())

	fs := osfs.New(dir)
	m := readManifest(t, fs)

	assert.Equal(t, "my-lib", m.Name())
	assert.Equal(t, "MIT", m.License())
	assert.Equal(t, "./node_modules/.bin/eslint .", m.Scripts()["lint"])
	assert.Equal(t, "./node_modules/.bin/markdown-viewer -b", m.Scripts()["view-readme"])
	assert.True(t, m.Dependencies()["markdown-viewer"])

	licenseText := readFile(t, fs, license.FileName)
	assert.Contains(t, licenseText, "2026")
	assert.Contains(t, licenseText, "Octo Cat")

	id, err := vcs.LocalIdentity(fs)
	require.NoError(t, err)
	assert.Equal(t, "octo", id.Name)

	assert.Contains(t, stderr.String(), KeyGitHubUsername)
	assert.Contains(t, stdout.String(), dir)
	assert.Contains(t, stdout.String(), "Write README.md")
}

func TestInitCmdRejectsUnknownFlow(t *testing.T) {
	cmd := &InitCmd{Path: t.TempDir(), Flow: "express", Yes: true, Config: writeEmptyConfig(t)}

	assert.ErrorIs(t, cmd.AfterApply(), ErrUnknownFlow)
}

func TestInitCmdMalformedManifest(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.FileName), []byte("{"), 0o644))

	var stdout bytes.Buffer

	npm := &fakeNPM{fs: osfs.New(dir)}
	cmd := &InitCmd{Path: dir, Locale: "en", Yes: true, Config: writeEmptyConfig(t), runner: npm, stdout: &stdout}

	require.NoError(t, cmd.AfterApply())

	err := cmd.Run()
	assert.ErrorIs(t, err, manifest.ErrMalformedManifest)
	assert.Empty(t, npm.calls)
	assert.NoDirExists(t, filepath.Join(dir, vcs.DirName))
}

func writeEmptyConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("owner = \"Octo Cat\"\n"), 0o644))

	return path
}
