package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kxue43/nodestarter/fsutil"
	"github.com/kxue43/nodestarter/i18n"
	"github.com/kxue43/nodestarter/jsonstream"
	"github.com/kxue43/nodestarter/license"
	"github.com/kxue43/nodestarter/logging"
	"github.com/kxue43/nodestarter/manifest"
	"github.com/kxue43/nodestarter/prompt"
	"github.com/kxue43/nodestarter/settings"
	"github.com/kxue43/nodestarter/shell"
	"github.com/kxue43/nodestarter/tui"
	"github.com/kxue43/nodestarter/vcs"
)

type (
	InitCmd struct {
		Path        string `arg:"" optional:"" default:"." type:"path" help:"Project directory, created when it does not exist."`
		Flow        string `name:"flow" help:"Question set: full or quick. Defaults to the settings file, then full."`
		Locale      string `name:"locale" help:"Language of prompts, progress and templates, e.g. fr or en_US.UTF-8."`
		Yes         bool   `short:"y" name:"yes" help:"Accept every default without prompting."`
		DumpAnswers bool   `name:"dump-answers" help:"Print the collected answers to stderr before bootstrapping."`
		Config      string `name:"config" type:"path" help:"Settings file. Defaults to $XDG_CONFIG_HOME/nodestarter/config.toml."`

		dir       string
		flow      Flow
		settings  settings.Settings
		messages  i18n.Messages
		collector prompt.Collector
		runner    shell.Runner
		stdout    io.Writer
		stderr    io.Writer
		logger    zerolog.Logger
		now       func() time.Time

		settingsPath string
	}
)

func (c *InitCmd) AfterApply() (err error) {
	c.settings, c.settingsPath, err = settings.Resolve(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if c.flow, err = FlowByName(orDefault(c.Flow, c.settings.Flow)); err != nil {
		return err
	}

	c.messages = i18n.For(orDefault(c.Locale, c.settings.Locale, os.Getenv("LC_ALL"), os.Getenv("LANG")))

	if c.dir, err = filepath.Abs(c.Path); err != nil {
		return fmt.Errorf("failed to resolve %q: %w", c.Path, err)
	}

	if c.stdout == nil {
		c.stdout = os.Stdout
	}

	if c.stderr == nil {
		c.stderr = os.Stderr
	}

	if c.now == nil {
		c.now = time.Now
	}

	if c.collector == nil {
		if c.Yes {
			c.collector = prompt.Defaults{}
		} else {
			c.collector = tui.NewCollector(c.messages)
		}
	}

	return nil
}

// manifestName reads the "name" of an existing package.json, or "".
func manifestName(ctx context.Context, fs billy.Filesystem) string {
	fd, err := fs.Open(manifest.FileName)
	if err != nil {
		return ""
	}

	defer func() { _ = fd.Close() }()

	angler, err := jsonstream.NewAngler(fd, ".name")
	if err != nil {
		return ""
	}

	name, err := angler.LandString(ctx)
	if err != nil {
		return ""
	}

	return name
}

func (c *InitCmd) environment(ctx context.Context, fs billy.Filesystem) (Environment, error) {
	hasRepo, err := fsutil.Exists(fs, vcs.DirName)
	if err != nil {
		return Environment{}, err
	}

	return Environment{
		DirName:       filepath.Base(c.dir),
		ManifestName:  manifestName(ctx, fs),
		HasRepository: hasRepo,
		Settings:      c.settings,
	}, nil
}

// setupLogging binds the command to the global logger, which main configures after parsing.
func (c *InitCmd) setupLogging() {
	c.logger = logging.Component("init")

	if c.runner == nil {
		c.runner = shell.NewExecRunner(log.Logger)
	}

	c.logger.Debug().
		Str("dir", c.dir).
		Str("flow", c.flow.Name).
		Stringer("locale", c.messages.Tag()).
		Str("settings", c.settingsPath).
		Msg("Init command configured")
}

func (c *InitCmd) Run() error {
	ctx := context.Background()

	c.setupLogging()

	if _, err := os.Stat(c.dir); errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(c.dir, dirPerm); err != nil {
			return fmt.Errorf("failed to create the project directory %q: %w", c.dir, err)
		}

		_, _ = fmt.Fprintln(c.stdout, c.messages.Get(i18n.ProgressCreatedDir, c.dir))
	}

	fs := osfs.New(c.dir)

	env, err := c.environment(ctx, fs)
	if err != nil {
		return err
	}

	answers, err := c.collector.Ask(ctx, c.flow.Questions(c.messages, env))
	if err != nil {
		return fmt.Errorf("failed to collect answers: %w", err)
	}

	if c.DumpAnswers {
		spew.Fdump(c.stderr, answers.Map())
	}

	plan, err := NewPlan(answers, env, c.now().Year())
	if err != nil {
		return fmt.Errorf("failed to plan the bootstrap: %w", err)
	}

	catalog, err := license.NewCatalog()
	if err != nil {
		return err
	}

	orchestrator := New(Config{
		FS:       fs,
		Dir:      c.dir,
		Runner:   c.runner,
		Licenses: catalog,
		Messages: c.messages,
		Reporter: NewTerminalReporter(c.stdout, c.messages),
		Logger:   c.logger,
	})

	return orchestrator.Run(ctx, plan)
}
