// Package bootstrap turns collected answers into a project on disk.
//
// An [Orchestrator] runs a fixed table of steps. Every step has a skip predicate evaluated right before
// the step runs, so re-running a bootstrap on a half-finished directory picks up where the last run
// stopped. The first failing step aborts the run; nothing is rolled back.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"

	"github.com/kxue43/nodestarter/fsutil"
	"github.com/kxue43/nodestarter/i18n"
	"github.com/kxue43/nodestarter/license"
	"github.com/kxue43/nodestarter/manifest"
	"github.com/kxue43/nodestarter/prompt"
	"github.com/kxue43/nodestarter/render"
	"github.com/kxue43/nodestarter/shell"
	"github.com/kxue43/nodestarter/vcs"
)

type (
	// Orchestrator runs the bootstrap steps against one project directory.
	Orchestrator struct {
		fs       billy.Filesystem
		dir      string
		runner   shell.Runner
		licenses license.Generator
		renderer *render.Renderer
		messages i18n.Messages
		reporter Reporter
		logger   zerolog.Logger
		steps    []step
	}

	Config struct {
		// FS is rooted at the project directory.
		FS billy.Filesystem
		// Dir is the project directory on the host, used as the working directory of commands.
		Dir      string
		Runner   shell.Runner
		Licenses license.Generator
		Messages i18n.Messages
		Reporter Reporter
		Logger   zerolog.Logger
	}

	// StepError reports the step that aborted a run and, for failed commands, the command line.
	StepError struct {
		Step    string
		Command string
		Err     error
	}

	step struct {
		name  string
		title i18n.Key
		// skip returns a non-empty reason when the step has nothing to do.
		skip func(r *run) (string, error)
		do   func(ctx context.Context, r *run) error
	}

	run struct {
		*Orchestrator
		plan     Plan
		handle   *manifest.Handle
		current  string
		freshDir bool
	}
)

const (
	StepVersionControlInit    = "version-control-init"
	StepManifestInit          = "manifest-init"
	StepSourceDirectoryCreate = "source-directory-create"
	StepTestDirectoryCreate   = "test-directory-create"
	StepDependencyInstall     = "dependency-install"
	StepManifestUpdate        = "manifest-update"
	StepReadmeWrite           = "readme-write"
	StepIgnoreFileWrite       = "ignore-file-write"
	StepLicenseGenerate       = "license-generate"
	StepLintToolScaffold      = "lint-tool-scaffold"
	StepSampleTestsCreate     = "sample-tests-create"
	StepCoverageConfigWrite   = "coverage-config-write"
)

const (
	ReadmeFile    = "README.md"
	GitIgnoreFile = ".gitignore"
	ESLintFile    = ".eslintrc.json"
	CoverageFile  = ".nycrc.yml"

	dirPerm  = 0o750
	filePerm = 0o644
)

var (
	eslintConfigs   = []string{".eslintrc", ESLintFile, ".eslintrc.js", ".eslintrc.cjs", ".eslintrc.yml", ".eslintrc.yaml", "eslint.config.js", "eslint.config.mjs"}
	coverageConfigs = []string{".nycrc", ".nycrc.json", CoverageFile, ".nycrc.yaml"}
)

func New(cfg Config) *Orchestrator {
	o := &Orchestrator{
		fs:       cfg.FS,
		dir:      cfg.Dir,
		runner:   cfg.Runner,
		licenses: cfg.Licenses,
		renderer: render.New(cfg.Messages),
		messages: cfg.Messages,
		reporter: cfg.Reporter,
		logger:   cfg.Logger.With().Str("component", "bootstrap").Logger(),
	}

	if o.reporter == nil {
		o.reporter = NopReporter{}
	}

	o.steps = []step{
		{StepVersionControlInit, i18n.StepVersionControlInit, skipVersionControlInit, doVersionControlInit},
		{StepManifestInit, i18n.StepManifestInit, skipIfExists(manifest.FileName), doManifestInit},
		{StepSourceDirectoryCreate, i18n.StepSourceDirectoryCreate, skipDirectory(srcDirectory), doDirectory(srcDirectory)},
		{StepTestDirectoryCreate, i18n.StepTestDirectoryCreate, skipDirectory(testDirectory), doDirectory(testDirectory)},
		{StepDependencyInstall, i18n.StepDependencyInstall, skipDependencyInstall, doDependencyInstall},
		{StepManifestUpdate, i18n.StepManifestUpdate, never, doManifestUpdate},
		{StepReadmeWrite, i18n.StepReadmeWrite, never, doReadmeWrite},
		{StepIgnoreFileWrite, i18n.StepIgnoreFileWrite, skipIfExists(GitIgnoreFile), doIgnoreFileWrite},
		{StepLicenseGenerate, i18n.StepLicenseGenerate, skipLicenseGenerate, doLicenseGenerate},
		{StepLintToolScaffold, i18n.StepLintToolScaffold, skipLintToolScaffold, doLintToolScaffold},
		{StepSampleTestsCreate, i18n.StepSampleTestsCreate, skipSampleTests, doSampleTests},
		{StepCoverageConfigWrite, i18n.StepCoverageConfigWrite, skipCoverageConfig, doCoverageConfig},
	}

	return o
}

// Steps lists the step names in execution order.
func (o *Orchestrator) Steps() []string {
	names := make([]string, len(o.steps))

	for i, s := range o.steps {
		names[i] = s.name
	}

	return names
}

func (e *StepError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("step %s failed running %q: %s", e.Step, e.Command, e.Err.Error())
	}

	return fmt.Sprintf("step %s failed: %s", e.Step, e.Err.Error())
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepError(name string, err error) *StepError {
	se := &StepError{Step: name, Err: err}

	var cmdErr *shell.CommandError
	if errors.As(err, &cmdErr) {
		se.Command = cmdErr.Command
	}

	return se
}

// Run bootstraps the project described by plan. The manifest is read and validated before anything is
// written, so a malformed package.json aborts the run with the directory untouched.
// Non-nil returned error is a [*StepError], or wraps [manifest.ErrMalformedManifest].
func (o *Orchestrator) Run(ctx context.Context, plan Plan) error {
	handle, err := manifest.Open(o.fs, manifest.FileName)
	if err != nil {
		return fmt.Errorf("failed to load project manifest: %w", err)
	}

	if _, err = manifest.Synthesize(handle.Manifest(), plan.Manifest); err != nil {
		return fmt.Errorf("failed to load project manifest: %w", err)
	}

	r := &run{Orchestrator: o, plan: plan, handle: handle}

	// Evaluated once, before any step can add files to the directory.
	if r.freshDir, err = fsutil.IsEmptyDir(o.fs, testDirectory(plan)); err != nil {
		return stepError(StepSampleTestsCreate, err)
	}

	o.logger.Info().Stringer("plan", plan).Bool("freshTestDirectory", r.freshDir).Msg("Starting bootstrap")

	for _, s := range o.steps {
		if err = ctx.Err(); err != nil {
			return stepError(s.name, err)
		}

		r.current = s.name
		title := o.messages.Get(s.title)

		reason, err := s.skip(r)
		if err != nil {
			o.reporter.StepFailed(s.name, title, err)

			return stepError(s.name, err)
		}

		if reason != "" {
			o.logger.Debug().Str("step", s.name).Str("reason", reason).Msg("Skipping step")
			o.reporter.StepSkipped(s.name, title, reason)

			continue
		}

		o.reporter.StepStarted(s.name, title)

		if err = s.do(ctx, r); err != nil {
			o.logger.Error().Err(err).Str("step", s.name).Msg("Step failed")
			o.reporter.StepFailed(s.name, title, err)

			return stepError(s.name, err)
		}

		o.reporter.StepDone(s.name, title)
	}

	return nil
}

func (r *run) progress(message string) {
	r.reporter.Progress(r.current, message)
}

func never(*run) (string, error) {
	return "", nil
}

func skipIfExists(name string) func(*run) (string, error) {
	return func(r *run) (string, error) {
		ok, err := fsutil.Exists(r.fs, name)
		if err != nil || !ok {
			return "", err
		}

		return r.messages.Get(i18n.SkipExists, name), nil
	}
}

func skipVersionControlInit(r *run) (string, error) {
	if !r.plan.Fresh {
		return r.messages.Get(i18n.SkipNotRequested), nil
	}

	return skipIfExists(vcs.DirName)(r)
}

func doVersionControlInit(_ context.Context, r *run) error {
	return vcs.Init(r.fs, r.plan.Identity)
}

func doManifestInit(_ context.Context, r *run) error {
	m, err := manifest.Initial(r.plan.ProjectName)
	if err != nil {
		return err
	}

	r.handle.Replace(m)

	return r.handle.Save()
}

func srcDirectory(p Plan) string {
	return p.Manifest.SrcDirectory
}

func testDirectory(p Plan) string {
	if p.Manifest.TestDirectory == "" {
		return manifest.DefaultTestDirectory
	}

	return p.Manifest.TestDirectory
}

func skipDirectory(dir func(Plan) string) func(*run) (string, error) {
	return func(r *run) (string, error) {
		if dir(r.plan) == "" {
			return r.messages.Get(i18n.SkipNotRequested), nil
		}

		return skipIfExists(dir(r.plan))(r)
	}
}

func doDirectory(dir func(Plan) string) func(context.Context, *run) error {
	return func(_ context.Context, r *run) error {
		name := dir(r.plan)

		r.progress(r.messages.Get(i18n.ProgressCreatingDir, name))

		if err := r.fs.MkdirAll(name, dirPerm); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", name, err)
		}

		r.progress(r.messages.Get(i18n.ProgressCreatedDir, name))

		return nil
	}
}

// pending splits the planned dependencies into the runtime and development batches still missing from
// the manifest.
func (r *run) pending() (runtime, dev []prompt.Dependency) {
	declared := r.handle.Manifest().Dependencies()

	return prompt.Without(r.plan.Dependencies, declared), prompt.Without(r.plan.DevDependencies, declared)
}

func skipDependencyInstall(r *run) (string, error) {
	if runtime, dev := r.pending(); len(runtime) == 0 && len(dev) == 0 {
		return r.messages.Get(i18n.SkipNothingToInstall), nil
	}

	return "", nil
}

func doDependencyInstall(ctx context.Context, r *run) error {
	runtime, dev := r.pending()

	for _, batch := range []struct {
		flag string
		deps []prompt.Dependency
	}{
		{"--save", runtime},
		{"--save-dev", dev},
	} {
		for _, dep := range batch.deps {
			r.progress(r.messages.Get(i18n.ProgressInstalling, dep.String()))

			_, err := shell.Check(ctx, r.runner, shell.NPM(), []string{"install", batch.flag, dep.String()}, shell.Options{Dir: r.dir})
			if err != nil {
				return fmt.Errorf("failed to install %s: %w", dep.Name, err)
			}
		}
	}

	// npm rewrote package.json.
	return r.handle.Refresh()
}

func doManifestUpdate(_ context.Context, r *run) error {
	next, err := manifest.Synthesize(r.handle.Manifest(), r.plan.Manifest)
	if err != nil {
		return err
	}

	r.handle.Replace(next)

	return r.handle.Save()
}

func (r *run) tags() render.Tags {
	m := r.handle.Manifest()

	tags := render.Tags{
		render.TagProjectName:    orDefault(m.Name(), r.plan.ProjectName),
		render.TagDescription:    m.Description(),
		render.TagGitHubUsername: r.plan.GitHubUsername,
		render.TagLicense:        orDefault(m.License(), r.plan.License.ID),
		render.TagOwner:          r.plan.License.Owner,
		render.TagYear:           strconv.Itoa(r.plan.License.Year),
		render.TagTestCommand:    "npm test",
	}

	badges := r.renderer.Badges(render.BadgeOptions{
		GitHubUsername: r.plan.GitHubUsername,
		ProjectName:    tags[render.TagProjectName],
		License:        tags[render.TagLicense],
		Linter:         r.plan.Manifest.Linter,
	}, (license.Selection{ID: tags[render.TagLicense]}).Unlicensed())

	for k, v := range badges {
		tags[k] = v
	}

	return tags
}

func (r *run) writeTemplate(name, dest string) error {
	text, err := r.renderer.RenderTemplate(name, r.tags())
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(r.fs, dest, []byte(text), filePerm)
}

func doReadmeWrite(_ context.Context, r *run) error {
	return r.writeTemplate(render.Readme, ReadmeFile)
}

func doIgnoreFileWrite(_ context.Context, r *run) error {
	return r.writeTemplate(render.IgnoreFile, GitIgnoreFile)
}

// selection is the license to generate: the one the manifest ends up declaring when the catalog knows
// it, otherwise the one that was asked for.
func (r *run) selection() license.Selection {
	sel := r.plan.License

	if id, err := license.Canonical(r.handle.Manifest().License()); err == nil {
		sel.ID = id
	}

	return sel
}

func skipLicenseGenerate(r *run) (string, error) {
	if r.plan.License.Unlicensed() || r.selection().Unlicensed() {
		return r.messages.Get(i18n.SkipUnlicensed), nil
	}

	return skipIfExists(license.FileName)(r)
}

func doLicenseGenerate(_ context.Context, r *run) error {
	text, err := r.licenses.Generate(r.selection())
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(r.fs, license.FileName, []byte(text), filePerm)
}

func skipLintToolScaffold(r *run) (string, error) {
	switch r.plan.Manifest.Linter {
	case manifest.LinterESLint:
	case manifest.LinterStandard:
		return r.messages.Get(i18n.SkipNoLinterConfig, manifest.LinterStandard), nil
	default:
		return r.messages.Get(i18n.SkipNotRequested), nil
	}

	found, err := fsutil.AnyExists(r.fs, eslintConfigs...)
	if err != nil || found == "" {
		return "", err
	}

	return r.messages.Get(i18n.SkipExists, found), nil
}

func doLintToolScaffold(_ context.Context, r *run) error {
	data, err := eslintConfig(r.plan)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(r.fs, ESLintFile, data, filePerm)
}

func skipSampleTests(r *run) (string, error) {
	if !r.freshDir {
		return r.messages.Get(i18n.SkipNotEmpty, testDirectory(r.plan)), nil
	}

	return "", nil
}

func doSampleTests(_ context.Context, r *run) error {
	return writeSamples(r.fs, testDirectory(r.plan), r.plan)
}

func skipCoverageConfig(r *run) (string, error) {
	if r.plan.Manifest.TestFramework != manifest.FrameworkMocha {
		return r.messages.Get(i18n.SkipNoCoverageTool, r.plan.Manifest.TestFramework), nil
	}

	found, err := fsutil.AnyExists(r.fs, coverageConfigs...)
	if err != nil || found == "" {
		return "", err
	}

	return r.messages.Get(i18n.SkipExists, found), nil
}

func doCoverageConfig(_ context.Context, r *run) error {
	data, err := coverageConfig(r.plan)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(r.fs, CoverageFile, data, filePerm)
}
