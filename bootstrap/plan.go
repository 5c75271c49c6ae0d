package bootstrap

import (
	"fmt"
	"path"
	"strings"

	"github.com/kxue43/nodestarter/license"
	"github.com/kxue43/nodestarter/manifest"
	"github.com/kxue43/nodestarter/prompt"
	"github.com/kxue43/nodestarter/vcs"
)

type (
	// Plan is the bootstrap input derived once from the collected answers.
	Plan struct {
		Fresh           bool
		Identity        vcs.Identity
		ProjectName     string
		GitHubUsername  string
		License         license.Selection
		Manifest        manifest.Options
		Dependencies    []prompt.Dependency
		DevDependencies []prompt.Dependency
	}
)

var (
	baseDevDependencies = []string{
		"commitizen",
		"cz-conventional-changelog",
		"ghooks",
		"run-script-os",
		"standard-version",
	}
)

// DevDependencyCatalog lists the development dependencies the generated scripts rely on.
func DevDependencyCatalog(framework, linter string, markdownViewer bool) []string {
	deps := append([]string(nil), baseDevDependencies...)

	switch framework {
	case manifest.FrameworkJest:
		deps = append(deps, "jest")
	default:
		deps = append(deps, "chai", "mocha", "nyc")
	}

	switch linter {
	case manifest.LinterESLint, manifest.LinterStandard:
		deps = append(deps, linter)
	}

	if markdownViewer {
		deps = append(deps, "markdown-viewer")
	}

	return deps
}

func normalizeChoice(value string, choices []string, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))

	for _, c := range choices {
		if value == c {
			return c
		}
	}

	return fallback
}

// NewPlan derives the bootstrap input from answers. Questions the flow did not ask take the same
// defaults the full flow would offer; in particular the license defaults to MIT owned by the GitHub
// user, and falls back to UNLICENSED when nobody can own it.
// Non-nil returned error wraps [prompt.ErrBadDependency] or [license.ErrUnknownLicense].
func NewPlan(a prompt.Answers, env Environment, year int) (p Plan, err error) {
	s := env.Settings

	p.Fresh = !a.Has(KeyIsFresh) || a.Bool(KeyIsFresh)
	p.GitHubUsername = orDefault(a.String(KeyGitHubUsername), s.GitHubUsername)
	p.ProjectName = orDefault(a.String(KeyProjectName), env.ProjectName())

	p.Identity = vcs.Identity{
		Name:  strings.TrimSpace(a.String(KeyGitHubUsername)),
		Email: strings.TrimSpace(a.String(KeyGitHubEmail)),
	}

	licenseID := orDefault(a.String(KeyLicense), canonicalOrEmpty(s.License), license.IDs[0])

	if licenseID, err = license.Canonical(licenseID); err != nil {
		return p, err
	}

	p.License = license.Selection{
		ID:    licenseID,
		Owner: orDefault(a.String(KeyOwner), s.Owner, p.GitHubUsername),
		Year:  year,
	}

	if !a.Has(KeyLicense) && !p.License.Unlicensed() && p.License.Owner == "" {
		p.License.ID = license.Unlicensed
	}

	if err = p.License.Validate(); err != nil {
		return p, err
	}

	framework := normalizeChoice(orDefault(a.String(KeyTestFramework), s.TestFramework), frameworks, manifest.FrameworkMocha)
	linter := normalizeChoice(orDefault(a.String(KeyLinter), s.Linter), linters, linters[0])

	markdownViewer := a.Bool(KeyMarkdownViewer)
	if !a.Has(KeyMarkdownViewer) && s.MarkdownViewer != nil {
		markdownViewer = *s.MarkdownViewer
	}

	p.Manifest = manifest.Options{
		Linter:         linter,
		SrcDirectory:   cleanPath(orDefault(a.String(KeySrcDirectory), s.SrcDirectory)),
		TestFramework:  framework,
		TestDirectory:  cleanPath(orDefault(a.String(KeyTestDirectory), s.TestDirectory, manifest.DefaultTestDirectory)),
		TestExtension:  manifest.NormalizeExtension(orDefault(a.String(KeyTestExtension), s.TestExtension)),
		Description:    strings.TrimSpace(a.String(KeyDescription)),
		License:        p.License.ID,
		GitHubURL:      strings.TrimSpace(a.String(KeyGitHubURL)),
		MarkdownViewer: markdownViewer,
	}

	if p.Dependencies, err = prompt.ParseDependencies(a.List(KeyDependencies)); err != nil {
		return p, err
	}

	// User entries come last so their version pins win over the catalog.
	devRaw := append(DevDependencyCatalog(framework, linter, markdownViewer), a.List(KeyDevDependencies)...)

	devDeps, err := prompt.ParseDependencies(devRaw)
	if err != nil {
		return p, err
	}

	runtime := make(map[string]bool, len(p.Dependencies))

	for _, dep := range p.Dependencies {
		runtime[dep.Name] = true
	}

	p.DevDependencies = prompt.Without(devDeps, runtime)

	return p, nil
}

func cleanPath(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ""
	}

	dir = path.Clean(strings.ReplaceAll(dir, `\`, "/"))
	if dir == "." {
		return ""
	}

	return dir
}

// requirePath is the path a sample test uses to require the package entry point.
func (p Plan) requirePath() string {
	rel := ".."

	for range strings.Count(p.Manifest.TestDirectory, "/") {
		rel += "/.."
	}

	if p.Manifest.SrcDirectory != "" {
		rel += "/" + p.Manifest.SrcDirectory
	}

	return rel
}

func (p Plan) String() string {
	return fmt.Sprintf("%s (%s, %s, %s)", p.ProjectName, p.License.ID, p.Manifest.TestFramework, p.Manifest.Linter)
}
