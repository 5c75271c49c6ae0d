package manifest

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kxue43/nodestarter/jsonstream"
)

type (
	// Options are the synthesizer inputs derived from the collected answers.
	Options struct {
		Linter         string
		SrcDirectory   string
		TestFramework  string
		TestDirectory  string
		TestExtension  string
		Description    string
		License        string
		GitHubURL      string
		MarkdownViewer bool
	}
)

const (
	LinterESLint   = "eslint"
	LinterStandard = "standard"
	LinterNone     = "none"

	FrameworkMocha = "mocha"
	FrameworkJest  = "jest"

	DefaultTestDirectory = "test"
	DefaultTestExtension = ".test.js"

	commitizenPath = "node_modules/cz-conventional-changelog"
)

var (
	// managedScripts are recomputed on every run, whatever the manifest held before.
	managedScripts = []string{
		"pretest",
		"lint",
		"lint:fix",
		"test",
		"test:nix",
		"test:win32",
		"test:watch",
		"test:coverage",
		"prerelease",
		"commit",
		"release",
		"first-release",
		"release:dry-run",
		"first-release:dry-run",
	}

	lintScripts = []string{"pretest", "lint", "lint:fix"}
)

// LintCommand returns the lint invocation for linter, or "" when the lint step is omitted.
func LintCommand(linter, srcDir string) string {
	srcDir = cleanDir(srcDir)

	switch strings.ToLower(strings.TrimSpace(linter)) {
	case LinterESLint:
		if srcDir == "" {
			srcDir = "."
		}

		return "./node_modules/.bin/eslint " + srcDir
	case LinterStandard:
		if srcDir == "" {
			return "standard"
		}

		return "standard " + srcDir
	default:
		return ""
	}
}

// TestCommands returns the test scripts for framework: the run-script-os dispatcher, the POSIX and
// Windows variants and the watch and coverage variants derived from them.
func TestCommands(framework, testDir, ext string) map[string]string {
	testDir = cleanDir(testDir)
	if testDir == "" {
		testDir = DefaultTestDirectory
	}

	ext = NormalizeExtension(ext)

	var base, watch, coverage string

	switch strings.ToLower(strings.TrimSpace(framework)) {
	case FrameworkJest:
		base = fmt.Sprintf(`jest --roots %s --testMatch "**/*%s"`, testDir, ext)
		watch = "npm test -- --watch"
		coverage = "npm test -- --coverage"
	default:
		base = fmt.Sprintf(`mocha %s/"{,/**/}*%s"`, testDir, ext)
		watch = "npm test -- -w"
		coverage = "nyc npm test"
	}

	return map[string]string{
		"test":          "run-script-os",
		"test:nix":      "NODE_ENV=test " + base,
		"test:win32":    "set NODE_ENV=test& " + base,
		"test:watch":    watch,
		"test:coverage": coverage,
	}
}

// NormalizeExtension turns "test.js" or "spec.ts" into ".test.js" and ".spec.ts".
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return DefaultTestExtension
	}

	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}

func cleanDir(dir string) string {
	dir = strings.TrimSpace(dir)
	dir = strings.TrimPrefix(dir, "./")

	return strings.TrimRight(dir, "/")
}

// GitHubURLs derives repository, bugs and homepage URLs from a GitHub URL. npm's "git+" prefix is
// dropped and ssh forms such as git@github.com:owner/repo become https. A trailing ".git" or "/" is
// dropped too, so the repository URL always ends in exactly one ".git".
func GitHubURLs(raw string) (repository, bugs, homepage string, ok bool) {
	base := strings.TrimPrefix(strings.TrimSpace(raw), "git+")
	if base == "" {
		return "", "", "", false
	}

	// scp-like syntax: user@host:path
	if user, rest, found := strings.Cut(base, "@"); found && !strings.Contains(user, "/") && !strings.Contains(rest, "://") {
		if host, path, found := strings.Cut(rest, ":"); found && host != "" {
			base = "https://" + host + "/" + strings.TrimPrefix(path, "/")
		}
	}

	if !strings.Contains(base, "://") {
		base = "https://" + base
	}

	for {
		trimmed := strings.TrimSuffix(strings.TrimRight(base, "/"), ".git")
		if trimmed == base {
			break
		}

		base = trimmed
	}

	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return "", "", "", false
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		u.Scheme, u.User = "https", nil
		base = u.String()
	}

	return base + ".git", base + "/issues", base + "#readme", true
}

func scriptsFor(opts Options) map[string]string {
	scripts := TestCommands(opts.TestFramework, opts.TestDirectory, opts.TestExtension)

	if lint := LintCommand(opts.Linter, opts.SrcDirectory); lint != "" {
		scripts["lint"] = lint
		scripts["lint:fix"] = "npm run lint -- --fix"
		scripts["pretest"] = "npm run lint"
	}

	scripts["prerelease"] = "npm run test:coverage"
	scripts["commit"] = "git-cz"
	scripts["release"] = "standard-version"
	scripts["first-release"] = "npm run release -- --first-release && git push origin --tags"
	scripts["release:dry-run"] = "npm run release -- --dry-run"
	scripts["first-release:dry-run"] = "npm run first-release -- --dry-run"

	return scripts
}

func preCommitHook(opts Options) string {
	if LintCommand(opts.Linter, opts.SrcDirectory) == "" {
		return "npm run test:coverage"
	}

	return "npm run lint && npm run test:coverage"
}

// Synthesize computes the next manifest from existing (nil for none) and opts. existing is not
// modified.
//
// Tool-managed scripts and config entries are always overwritten. Description, license, repository,
// bugs and homepage are only filled in when absent or empty, and every other member is left alone.
// Non-nil returned error wraps [ErrMalformedManifest].
func Synthesize(existing *Manifest, opts Options) (*Manifest, error) {
	next := New()
	if existing != nil {
		next = existing.Clone()
	}

	doc := next.doc

	if err := mergeScripts(doc, opts); err != nil {
		return nil, err
	}

	if err := mergeConfig(doc, opts); err != nil {
		return nil, err
	}

	if err := setIfEmpty(doc, "description", opts.Description); err != nil {
		return nil, err
	}

	if err := setIfEmpty(doc, "license", opts.License); err != nil {
		return nil, err
	}

	if err := mergeGitHub(doc, opts.GitHubURL); err != nil {
		return nil, err
	}

	return next, nil
}

func mergeScripts(doc *jsonstream.Object, opts Options) error {
	scripts, err := doc.Object("scripts")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedManifest, err)
	}

	computed := scriptsFor(opts)

	// Fixed order so a fresh manifest reads the same on every run.
	for _, name := range managedScripts {
		value, ok := computed[name]
		if !ok {
			continue
		}

		if err = scripts.Set(name, value); err != nil {
			return err
		}
	}

	if _, ok := computed["lint"]; !ok {
		for _, name := range lintScripts {
			scripts.Delete(name)
		}
	}

	if opts.MarkdownViewer {
		if _, err = scripts.SetDefault("view-readme", "./node_modules/.bin/markdown-viewer -b"); err != nil {
			return err
		}

		if _, err = scripts.SetDefault("view-license", "./node_modules/.bin/markdown-viewer -f LICENSE.md -b"); err != nil {
			return err
		}
	}

	return doc.Set("scripts", scripts)
}

func mergeConfig(doc *jsonstream.Object, opts Options) error {
	config, err := doc.Object("config")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedManifest, err)
	}

	commitizen, err := config.Object("commitizen")
	if err != nil {
		return fmt.Errorf("%w: config: %w", ErrMalformedManifest, err)
	}

	ghooks, err := config.Object("ghooks")
	if err != nil {
		return fmt.Errorf("%w: config: %w", ErrMalformedManifest, err)
	}

	if err = commitizen.Set("path", commitizenPath); err != nil {
		return err
	}

	if err = ghooks.Set("pre-commit", preCommitHook(opts)); err != nil {
		return err
	}

	if err = config.Set("commitizen", commitizen); err != nil {
		return err
	}

	if err = config.Set("ghooks", ghooks); err != nil {
		return err
	}

	return doc.Set("config", config)
}

func setIfEmpty(doc *jsonstream.Object, key, value string) error {
	if value == "" {
		return nil
	}

	var current any

	if ok, _ := doc.Get(key, &current); ok && current != nil {
		if s, isString := current.(string); !isString || strings.TrimSpace(s) != "" {
			return nil
		}
	}

	return doc.Set(key, value)
}

func mergeGitHub(doc *jsonstream.Object, githubURL string) error {
	repository, bugs, homepage, ok := GitHubURLs(githubURL)
	if !ok {
		return nil
	}

	if !hasValue(doc, "repository", "url") {
		repo := jsonstream.NewObject()

		if err := repo.Set("type", "git"); err != nil {
			return err
		}

		if err := repo.Set("url", repository); err != nil {
			return err
		}

		if err := doc.Set("repository", repo); err != nil {
			return err
		}
	}

	if !hasValue(doc, "bugs", "url") {
		b := jsonstream.NewObject()

		if err := b.Set("url", bugs); err != nil {
			return err
		}

		if err := doc.Set("bugs", b); err != nil {
			return err
		}
	}

	return setIfEmpty(doc, "homepage", homepage)
}

// hasValue reports whether doc[key] is a non-empty string or an object with a non-empty field.
func hasValue(doc *jsonstream.Object, key, field string) bool {
	var s string

	if ok, err := doc.Get(key, &s); ok && err == nil {
		return strings.TrimSpace(s) != ""
	}

	child, err := doc.Object(key)
	if err != nil {
		return doc.Has(key)
	}

	return strings.TrimSpace(child.String(field)) != ""
}
