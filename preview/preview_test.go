package preview

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	source := []byte("# demo\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n~~old~~ <script>alert(1)</script>\n")

	html, err := Render(source, "demo & co", "fr")
	require.NoError(t, err)

	out := string(html)

	assert.Contains(t, out, `<html lang="fr">`)
	assert.Contains(t, out, "<title>demo &amp; co</title>")
	assert.Contains(t, out, `<h1 id="demo">demo</h1>`)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<del>old</del>")
	assert.NotContains(t, out, "<script>")
}

func TestReadmeCmd(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# my-lib\n"), 0o644))

	var opened bytes.Buffer

	cmd := &ReadmeCmd{Path: dir, Lang: "en", open: func(r io.Reader) error {
		_, err := io.Copy(&opened, r)

		return err
	}}

	require.NoError(t, cmd.AfterApply())
	require.NoError(t, cmd.Run())

	assert.Contains(t, opened.String(), `<h1 id="my-lib">my-lib</h1>`)
	assert.Contains(t, opened.String(), "<title>"+filepath.Base(dir)+"</title>")
}

func TestReadmeCmdMissingFile(t *testing.T) {
	cmd := &ReadmeCmd{Path: filepath.Join(t.TempDir(), "nope")}

	assert.Error(t, cmd.AfterApply())
}
