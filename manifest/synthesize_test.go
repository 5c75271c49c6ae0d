package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioOptions() Options {
	return Options{
		Linter:        LinterStandard,
		SrcDirectory:  "src",
		TestFramework: FrameworkMocha,
		TestDirectory: "tests",
		TestExtension: ".test.js",
		Description:   "A demo project",
		License:       "MIT",
		GitHubURL:     "https://github.com/octo/demo.git",
	}
}

func nestedURL(t *testing.T, m *Manifest, key string) string {
	t.Helper()

	child, err := m.doc.Object(key)
	require.NoError(t, err)

	return child.String("url")
}

func TestSynthesizeFresh(t *testing.T) {
	m, err := Synthesize(nil, scenarioOptions())
	require.NoError(t, err)

	scripts := m.Scripts()

	assert.Equal(t, "standard src", scripts["lint"])
	assert.Equal(t, "npm run lint", scripts["pretest"])
	assert.Equal(t, "npm run lint -- --fix", scripts["lint:fix"])
	assert.Equal(t, "run-script-os", scripts["test"])
	assert.Contains(t, scripts["test:nix"], `mocha tests/"{,/**/}*.test.js"`)
	assert.True(t, strings.HasPrefix(scripts["test:nix"], "NODE_ENV=test "))
	assert.Equal(t, `set NODE_ENV=test& mocha tests/"{,/**/}*.test.js"`, scripts["test:win32"])
	assert.Equal(t, "npm test -- -w", scripts["test:watch"])
	assert.Equal(t, "nyc npm test", scripts["test:coverage"])
	assert.Equal(t, "npm run test:coverage", scripts["prerelease"])
	assert.Equal(t, "git-cz", scripts["commit"])
	assert.Equal(t, "standard-version", scripts["release"])
	assert.Equal(t, "npm run release -- --first-release && git push origin --tags", scripts["first-release"])
	assert.Equal(t, "npm run release -- --dry-run", scripts["release:dry-run"])

	assert.Equal(t, "A demo project", m.Description())
	assert.Equal(t, "MIT", m.License())
	assert.Equal(t, "https://github.com/octo/demo.git", nestedURL(t, m, "repository"))
	assert.Equal(t, "https://github.com/octo/demo/issues", nestedURL(t, m, "bugs"))
	assert.Equal(t, "https://github.com/octo/demo#readme", m.doc.String("homepage"))

	commitizen, err := m.Config().Object("commitizen")
	require.NoError(t, err)
	assert.Equal(t, "node_modules/cz-conventional-changelog", commitizen.String("path"))

	ghooks, err := m.Config().Object("ghooks")
	require.NoError(t, err)
	assert.Equal(t, "npm run lint && npm run test:coverage", ghooks.String("pre-commit"))
}

func TestSynthesizeKeepsUserDescriptionAndLicense(t *testing.T) {
	existing, err := Parse([]byte(`{"name": "demo", "description": "Mine", "license": "Apache-2.0"}`))
	require.NoError(t, err)

	for _, opts := range []Options{scenarioOptions(), {Description: "other", License: "ISC"}, {}} {
		m, err := Synthesize(existing, opts)
		require.NoError(t, err)

		assert.Equal(t, "Mine", m.Description())
		assert.Equal(t, "Apache-2.0", m.License())
	}
}

func TestSynthesizeFillsEmptyFields(t *testing.T) {
	existing, err := Parse([]byte(`{"description": "  ", "license": null}`))
	require.NoError(t, err)

	m, err := Synthesize(existing, scenarioOptions())
	require.NoError(t, err)

	assert.Equal(t, "A demo project", m.Description())
	assert.Equal(t, "MIT", m.License())
}

func TestSynthesizeWithoutLinter(t *testing.T) {
	existing, err := Parse([]byte(`{"scripts": {"lint": "standard", "pretest": "npm run lint", "lint:fix": "x", "start": "node ."}}`))
	require.NoError(t, err)

	for _, linter := range []string{"", LinterNone, "jshint"} {
		opts := scenarioOptions()
		opts.Linter = linter

		for _, base := range []*Manifest{nil, existing} {
			m, err := Synthesize(base, opts)
			require.NoError(t, err)

			scripts := m.Scripts()

			assert.NotContains(t, scripts, "lint", linter)
			assert.NotContains(t, scripts, "pretest", linter)
			assert.NotContains(t, scripts, "lint:fix", linter)

			ghooks, err := m.Config().Object("ghooks")
			require.NoError(t, err)
			assert.Equal(t, "npm run test:coverage", ghooks.String("pre-commit"))
		}
	}

	m, err := Synthesize(existing, Options{})
	require.NoError(t, err)
	assert.Equal(t, "node .", m.Scripts()["start"])
}

func TestSynthesizeOverwritesManagedScriptsOnly(t *testing.T) {
	existing, err := Parse([]byte(`{
		"name": "demo",
		"scripts": {"start": "node index.js", "test": "echo no tests", "lint": "eslint old"},
		"config": {"commitizen": {"path": "old"}, "other-tool": {"x": 1}}
	}`))
	require.NoError(t, err)

	m, err := Synthesize(existing, scenarioOptions())
	require.NoError(t, err)

	scripts := m.Scripts()

	assert.Equal(t, "node index.js", scripts["start"])
	assert.Equal(t, "run-script-os", scripts["test"])
	assert.Equal(t, "standard src", scripts["lint"])
	names, err := m.doc.Object("scripts")
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "test", "lint"}, names.Keys()[:3])

	assert.True(t, m.Config().Has("other-tool"))

	commitizen, err := m.Config().Object("commitizen")
	require.NoError(t, err)
	assert.Equal(t, "node_modules/cz-conventional-changelog", commitizen.String("path"))

	assert.Equal(t, "echo no tests", existing.Scripts()["test"], "existing manifest must not change")
}

func TestSynthesizeGitHubSetOnce(t *testing.T) {
	existing, err := Parse([]byte(`{"repository": "github:octo/original", "homepage": "https://octo.dev"}`))
	require.NoError(t, err)

	m, err := Synthesize(existing, scenarioOptions())
	require.NoError(t, err)

	assert.Equal(t, "github:octo/original", m.doc.String("repository"))
	assert.Equal(t, "https://octo.dev", m.doc.String("homepage"))
	assert.Equal(t, "https://github.com/octo/demo/issues", nestedURL(t, m, "bugs"))
}

func TestSynthesizeMarkdownViewer(t *testing.T) {
	existing, err := Parse([]byte(`{"scripts": {"view-readme": "custom"}}`))
	require.NoError(t, err)

	opts := scenarioOptions()
	opts.MarkdownViewer = true

	m, err := Synthesize(existing, opts)
	require.NoError(t, err)

	assert.Equal(t, "custom", m.Scripts()["view-readme"])
	assert.Equal(t, "./node_modules/.bin/markdown-viewer -f LICENSE.md -b", m.Scripts()["view-license"])
}

func TestSynthesizeIsStable(t *testing.T) {
	once, err := Synthesize(nil, scenarioOptions())
	require.NoError(t, err)

	twice, err := Synthesize(once, scenarioOptions())
	require.NoError(t, err)

	a, err := once.Bytes()
	require.NoError(t, err)

	b, err := twice.Bytes()
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
}

func TestSynthesizeRejectsWrongTypes(t *testing.T) {
	existing := New()
	require.NoError(t, existing.doc.Set("scripts", []string{"not", "an", "object"}))

	_, err := Synthesize(existing, scenarioOptions())
	assert.ErrorIs(t, err, ErrMalformedManifest)
}

func TestGitHubURLs(t *testing.T) {
	var tests = []struct {
		raw  string
		repo string
	}{
		{"https://github.com/octo/demo", "https://github.com/octo/demo.git"},
		{"https://github.com/octo/demo.git", "https://github.com/octo/demo.git"},
		{"https://github.com/octo/demo.git.git", "https://github.com/octo/demo.git"},
		{"https://github.com/octo/demo/", "https://github.com/octo/demo.git"},
		{"github.com/octo/demo.git", "https://github.com/octo/demo.git"},
		{"git+https://github.com/octo/demo.git", "https://github.com/octo/demo.git"},
		{"git@github.com:octo/demo.git", "https://github.com/octo/demo.git"},
		{"git+ssh://git@github.com/octo/demo.git", "https://github.com/octo/demo.git"},
		{"git://github.com/octo/demo", "https://github.com/octo/demo.git"},
	}

	for _, test := range tests {
		repo, bugs, homepage, ok := GitHubURLs(test.raw)
		require.True(t, ok, test.raw)

		assert.Equal(t, test.repo, repo, test.raw)
		assert.Equal(t, 1, strings.Count(repo, ".git"), test.raw)
		assert.Equal(t, "https://github.com/octo/demo/issues", bugs, test.raw)
		assert.Equal(t, "https://github.com/octo/demo#readme", homepage, test.raw)
	}

	_, _, _, ok := GitHubURLs("  ")
	assert.False(t, ok)
}

func TestLintCommand(t *testing.T) {
	assert.Equal(t, "./node_modules/.bin/eslint src", LintCommand("ESLint", "./src/"))
	assert.Equal(t, "./node_modules/.bin/eslint .", LintCommand("eslint", ""))
	assert.Equal(t, "standard", LintCommand("Standard", ""))
	assert.Equal(t, "", LintCommand("none", "src"))
}

func TestTestCommandsJest(t *testing.T) {
	scripts := TestCommands(FrameworkJest, "", "spec.ts")

	assert.Equal(t, `NODE_ENV=test jest --roots test --testMatch "**/*.spec.ts"`, scripts["test:nix"])
	assert.Equal(t, "npm test -- --coverage", scripts["test:coverage"])
	assert.Equal(t, "npm test -- --watch", scripts["test:watch"])
}
