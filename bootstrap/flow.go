package bootstrap

import (
	"errors"
	"fmt"
	"net/mail"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kxue43/nodestarter/i18n"
	"github.com/kxue43/nodestarter/license"
	"github.com/kxue43/nodestarter/manifest"
	"github.com/kxue43/nodestarter/prompt"
	"github.com/kxue43/nodestarter/settings"
)

type (
	// Flow is a named selection of questions. Questions a flow leaves out fall back to the defaults
	// applied by [NewPlan].
	Flow struct {
		Name string
		Keys []string
	}

	// Environment is what the questions know about the target directory and the user before asking.
	Environment struct {
		DirName       string
		ManifestName  string
		HasRepository bool
		Settings      settings.Settings
	}
)

const (
	KeyIsFresh         = "is-fresh"
	KeyGitHubUsername  = "gh-username"
	KeyGitHubEmail     = "gh-email"
	KeyProjectName     = "project-name"
	KeyDescription     = "description"
	KeyGitHubURL       = "gh-url"
	KeyLicense         = "license"
	KeyOwner           = "owner"
	KeySrcDirectory    = "src-directory"
	KeyTestDirectory   = "test-directory"
	KeyTestFramework   = "test-framework"
	KeyTestExtension   = "test-extension"
	KeyLinter          = "linter"
	KeyDependencies    = "dependencies"
	KeyDevDependencies = "dev-dependencies"
	KeyMarkdownViewer  = "markdown-viewer"
)

const (
	FlowFull  = "full"
	FlowQuick = "quick"
)

var (
	Full = Flow{
		Name: FlowFull,
		Keys: []string{
			KeyIsFresh,
			KeyGitHubUsername,
			KeyGitHubEmail,
			KeyProjectName,
			KeyDescription,
			KeyGitHubURL,
			KeyLicense,
			KeyOwner,
			KeySrcDirectory,
			KeyTestDirectory,
			KeyTestFramework,
			KeyTestExtension,
			KeyLinter,
			KeyDependencies,
			KeyDevDependencies,
			KeyMarkdownViewer,
		},
	}

	Quick = Flow{
		Name: FlowQuick,
		Keys: []string{
			KeyIsFresh,
			KeyGitHubUsername,
			KeyGitHubEmail,
			KeyTestDirectory,
			KeyLinter,
			KeyMarkdownViewer,
		},
	}

	ErrUnknownFlow = errors.New("unknown flow")

	linters    = []string{manifest.LinterESLint, manifest.LinterStandard, manifest.LinterNone}
	frameworks = []string{manifest.FrameworkMocha, manifest.FrameworkJest}
)

// FlowByName returns the flow called name; "" selects [Full].
// Non-nil returned error wraps [ErrUnknownFlow].
func FlowByName(name string) (Flow, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FlowFull:
		return Full, nil
	case FlowQuick:
		return Quick, nil
	default:
		return Flow{}, fmt.Errorf("%w: %q", ErrUnknownFlow, name)
	}
}

func (e Environment) ProjectName() string {
	if e.ManifestName != "" {
		return e.ManifestName
	}

	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(e.DirName), " ", "-"))
}

func (f Flow) Questions(m i18n.Messages, env Environment) []prompt.Question {
	all := questions(m, env)

	selected := make([]prompt.Question, 0, len(f.Keys))

	for _, q := range all {
		if slices.Contains(f.Keys, q.Key) {
			selected = append(selected, q)
		}
	}

	return selected
}

func constant(s string) func(prompt.Answers) string {
	return func(prompt.Answers) string { return s }
}

func orDefault(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}

func yesNo(b bool) string {
	if b {
		return prompt.Yes
	}

	return prompt.No
}

func questions(m i18n.Messages, env Environment) []prompt.Question {
	s := env.Settings

	isFresh := func(a prompt.Answers) bool { return !a.Has(KeyIsFresh) || a.Bool(KeyIsFresh) }

	projectName := func(a prompt.Answers) string {
		return orDefault(a.String(KeyProjectName), env.ProjectName())
	}

	markdownViewer := true
	if s.MarkdownViewer != nil {
		markdownViewer = *s.MarkdownViewer
	}

	return []prompt.Question{
		{
			Key:     KeyIsFresh,
			Kind:    prompt.Confirm,
			Message: constant(m.Get(i18n.QuestionIsFresh)),
			Default: constant(yesNo(!env.HasRepository)),
		},
		{
			Key:     KeyGitHubUsername,
			Kind:    prompt.Input,
			Message: constant(m.Get(i18n.QuestionGitHubUsername)),
			Default: constant(s.GitHubUsername),
			When:    isFresh,
		},
		{
			Key:      KeyGitHubEmail,
			Kind:     prompt.Input,
			Message:  constant(m.Get(i18n.QuestionGitHubEmail)),
			Default:  constant(s.GitHubEmail),
			When:     isFresh,
			Validate: validateEmail(m),
		},
		{
			Key:      KeyProjectName,
			Kind:     prompt.Input,
			Message:  constant(m.Get(i18n.QuestionProjectName)),
			Default:  constant(env.ProjectName()),
			Validate: validateProjectName(m),
		},
		{
			Key:     KeyDescription,
			Kind:    prompt.Input,
			Message: constant(m.Get(i18n.QuestionDescription)),
		},
		{
			Key:     KeyGitHubURL,
			Kind:    prompt.Input,
			Message: constant(m.Get(i18n.QuestionGitHubURL)),
			Default: func(a prompt.Answers) string {
				user := orDefault(a.String(KeyGitHubUsername), s.GitHubUsername)
				if user == "" {
					return ""
				}

				return fmt.Sprintf("https://github.com/%s/%s", user, projectName(a))
			},
			Validate: validateGitHubURL(m),
		},
		{
			Key:     KeyLicense,
			Kind:    prompt.Select,
			Message: constant(m.Get(i18n.QuestionLicense)),
			Default: constant(orDefault(canonicalOrEmpty(s.License), license.IDs[0])),
			Choices: license.Choices(),
		},
		{
			Key:  KeyOwner,
			Kind: prompt.Input,
			Message: func(a prompt.Answers) string {
				return m.Get(i18n.QuestionOwner, a.String(KeyLicense))
			},
			Default: func(a prompt.Answers) string {
				return orDefault(s.Owner, a.String(KeyGitHubUsername), s.GitHubUsername)
			},
			When: func(a prompt.Answers) bool {
				return !(license.Selection{ID: a.String(KeyLicense)}).Unlicensed()
			},
			Validate: validateRequired(m),
		},
		{
			Key:      KeySrcDirectory,
			Kind:     prompt.Input,
			Message:  constant(m.Get(i18n.QuestionSrcDirectory)),
			Default:  constant(s.SrcDirectory),
			Validate: validateDirectory(m, false),
		},
		{
			Key:      KeyTestDirectory,
			Kind:     prompt.Input,
			Message:  constant(m.Get(i18n.QuestionTestDirectory)),
			Default:  constant(orDefault(s.TestDirectory, manifest.DefaultTestDirectory)),
			Validate: validateDirectory(m, true),
		},
		{
			Key:     KeyTestFramework,
			Kind:    prompt.Select,
			Message: constant(m.Get(i18n.QuestionTestFramework)),
			Default: constant(choiceOr(frameworks, s.TestFramework)),
			Choices: frameworks,
		},
		{
			Key:     KeyTestExtension,
			Kind:    prompt.Input,
			Message: constant(m.Get(i18n.QuestionTestExtension)),
			Default: constant(orDefault(s.TestExtension, manifest.DefaultTestExtension)),
		},
		{
			Key:     KeyLinter,
			Kind:    prompt.Select,
			Message: constant(m.Get(i18n.QuestionLinter)),
			Default: constant(choiceOr(linters, s.Linter)),
			Choices: linters,
		},
		{
			Key:      KeyDependencies,
			Kind:     prompt.Input,
			Message:  constant(m.Get(i18n.QuestionDependencies)),
			Validate: validateDependencies(m),
		},
		{
			Key:      KeyDevDependencies,
			Kind:     prompt.Input,
			Message:  constant(m.Get(i18n.QuestionDevDependencies)),
			Validate: validateDependencies(m),
		},
		{
			Key:     KeyMarkdownViewer,
			Kind:    prompt.Confirm,
			Message: constant(m.Get(i18n.QuestionMarkdownViewer)),
			Default: constant(yesNo(markdownViewer)),
		},
	}
}

func canonicalOrEmpty(id string) string {
	if id == "" {
		return ""
	}

	canonical, err := license.Canonical(id)
	if err != nil {
		return ""
	}

	return canonical
}

// choiceOr returns the choice matching preferred case-insensitively, or the first choice.
func choiceOr(choices []string, preferred string) string {
	for _, c := range choices {
		if strings.EqualFold(c, strings.TrimSpace(preferred)) {
			return c
		}
	}

	return choices[0]
}

func validateRequired(m i18n.Messages) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(m.Get(i18n.ValidationRequired))
		}

		return nil
	}
}

func validateEmail(m i18n.Messages) func(string) error {
	return func(value string) error {
		if value = strings.TrimSpace(value); value == "" {
			return nil
		}

		if addr, err := mail.ParseAddress(value); err != nil || addr.Address != value {
			return errors.New(m.Get(i18n.ValidationEmail, value))
		}

		return nil
	}
}

func validateProjectName(m i18n.Messages) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(m.Get(i18n.ValidationRequired))
		}

		dep, err := prompt.ParseDependency(value)
		if err != nil || dep.Version != "" {
			return errors.New(m.Get(i18n.ValidationDependency, value))
		}

		return nil
	}
}

func validateGitHubURL(m i18n.Messages) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return nil
		}

		if _, _, _, ok := manifest.GitHubURLs(value); !ok {
			return errors.New(m.Get(i18n.ValidationChoice, "https://github.com/<user>/<repo>"))
		}

		return nil
	}
}

func validateDirectory(m i18n.Messages, required bool) func(string) error {
	return func(value string) error {
		value = strings.TrimSpace(value)

		if value == "" {
			if required {
				return errors.New(m.Get(i18n.ValidationRequired))
			}

			return nil
		}

		if !filepath.IsLocal(filepath.FromSlash(value)) {
			return errors.New(m.Get(i18n.ValidationDirectory, value))
		}

		return nil
	}
}

func validateDependencies(m i18n.Messages) func(string) error {
	return func(value string) error {
		for _, raw := range prompt.NewAnswers(map[string]string{"v": value}).List("v") {
			if _, err := prompt.ParseDependency(raw); err != nil {
				return errors.New(m.Get(i18n.ValidationDependency, raw))
			}
		}

		return nil
	}
}
