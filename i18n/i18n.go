// Package i18n holds the user-facing strings of nodestarter.
// Each locale is a fixed-size table indexed by [Key], so a missing entry is a compile error rather
// than a runtime lookup miss.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

type (
	Key int

	table [keyCount]string

	// Messages resolves keys for one locale. The zero value is not usable; get one from [For] or
	// [English].
	Messages struct {
		tag     language.Tag
		primary *table
	}
)

const (
	QuestionIsFresh Key = iota
	QuestionGitHubUsername
	QuestionGitHubEmail
	QuestionProjectName
	QuestionDescription
	QuestionGitHubURL
	QuestionLicense
	QuestionOwner
	QuestionSrcDirectory
	QuestionTestDirectory
	QuestionTestFramework
	QuestionTestExtension
	QuestionLinter
	QuestionDependencies
	QuestionDevDependencies
	QuestionMarkdownViewer

	ValidationRequired
	ValidationChoice
	ValidationEmail
	ValidationDirectory
	ValidationDependency

	StepVersionControlInit
	StepManifestInit
	StepSourceDirectoryCreate
	StepTestDirectoryCreate
	StepDependencyInstall
	StepManifestUpdate
	StepReadmeWrite
	StepIgnoreFileWrite
	StepLicenseGenerate
	StepLintToolScaffold
	StepSampleTestsCreate
	StepCoverageConfigWrite

	StatusRunning
	StatusDone
	StatusSkipped
	StatusFailed

	SkipExists
	SkipNotRequested
	SkipNotEmpty
	SkipNothingToInstall
	SkipUnlicensed
	SkipNoLinterConfig
	SkipNoCoverageTool

	ProgressInstalling
	ProgressCreatingDir
	ProgressCreatedDir

	HelpNavigate
	HelpSubmit
	HelpAbort
	HelpToggle
	ReadmeInstallation
	ReadmeTesting
	ReadmeLicense

	keyCount
)

var (
	supported = []language.Tag{language.English, language.French}

	tables = []*table{&english, &french}

	matcher = language.NewMatcher(supported)
)

// English returns the default messages.
func English() Messages {
	return Messages{tag: language.English, primary: &english}
}

// For picks the closest supported locale for a BCP 47 string such as "fr-CA" or "en_US.UTF-8".
// Unparseable or unsupported input yields English.
func For(locale string) Messages {
	if locale == "" {
		return English()
	}

	tag, err := language.Parse(normalize(locale))
	if err != nil {
		return English()
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return English()
	}

	return Messages{tag: supported[index], primary: tables[index]}
}

// normalize strips POSIX locale decorations ("fr_FR.UTF-8@euro") down to a BCP 47 form.
func normalize(locale string) string {
	for i, r := range locale {
		if r == '.' || r == '@' {
			locale = locale[:i]

			break
		}
	}

	b := []byte(locale)

	for i := range b {
		if b[i] == '_' {
			b[i] = '-'
		}
	}

	return string(b)
}

func (m Messages) Tag() language.Tag {
	return m.tag
}

// Get returns the message for k, falling back to English for untranslated entries.
// Arguments are applied with fmt.Sprintf when present.
func (m Messages) Get(k Key, args ...any) string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("!(i18n key %d)", int(k))
	}

	s := ""

	if m.primary != nil {
		s = m.primary[k]
	}

	if s == "" {
		s = english[k]
	}

	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}

	return s
}
