// Package render substitutes {tag-name} placeholders in text templates.
//
// A placeholder is a brace-enclosed tag name, optionally padded with whitespace: "{project-name}",
// "{ Project-Name }". Only tags from the renderer's vocabulary are substituted; a vocabulary tag with no
// value renders as the empty string, anything else in braces is left exactly as written. Rendering is
// therefore idempotent as long as no value itself contains a vocabulary placeholder.
package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/kxue43/nodestarter/i18n"
)

type (
	// Tags maps tag names to values. Names are matched case-insensitively.
	Tags map[string]string

	Renderer struct {
		messages   i18n.Messages
		vocabulary map[string]bool
	}
)

const (
	TagProjectName              = "project-name"
	TagDescription              = "description"
	TagLicenseBadge             = "license-badge"
	TagConventionalCommitsBadge = "conventional-commits-badge"
	TagJSStyleGuideBadge        = "js-style-guide-badge"
	TagGitHubUsername           = "gh-username"
	TagLicense                  = "license"
	TagYear                     = "year"
	TagOwner                    = "owner"
	TagTestCommand              = "test-command"

	tagHeadingInstallation = "heading-installation"
	tagHeadingTesting      = "heading-testing"
	tagHeadingLicense      = "heading-license"
)

const (
	Readme     = "README.md"
	IgnoreFile = "gitignore"
)

var (
	//go:embed "templates"
	templatesFS embed.FS

	placeholderRegex = regexp.MustCompile(`\{\s*([A-Za-z][A-Za-z0-9-]*)\s*\}`)

	defaultVocabulary = []string{
		TagProjectName,
		TagDescription,
		TagLicenseBadge,
		TagConventionalCommitsBadge,
		TagJSStyleGuideBadge,
		TagGitHubUsername,
		TagLicense,
		TagYear,
		TagOwner,
		TagTestCommand,
		tagHeadingInstallation,
		tagHeadingTesting,
		tagHeadingLicense,
	}

	ErrNoTemplate = errors.New("no such template")
)

// New returns a renderer for the given locale. With no extra tags the default vocabulary applies.
func New(messages i18n.Messages, extra ...string) *Renderer {
	r := &Renderer{messages: messages, vocabulary: make(map[string]bool, len(defaultVocabulary)+len(extra))}

	for _, tag := range slices.Concat(defaultVocabulary, extra) {
		r.vocabulary[strings.ToLower(tag)] = true
	}

	return r
}

func (t Tags) lookup(name string) string {
	if v, ok := t[name]; ok {
		return v
	}

	for k, v := range t {
		if strings.EqualFold(k, name) {
			return v
		}
	}

	return ""
}

// Render replaces every vocabulary placeholder in text.
func (r *Renderer) Render(text string, tags Tags) string {
	return placeholderRegex.ReplaceAllStringFunc(text, func(match string) string {
		name := strings.ToLower(placeholderRegex.FindStringSubmatch(match)[1])

		if !r.vocabulary[name] {
			return match
		}

		return tags.lookup(name)
	})
}

// Template returns the raw text of a named template for the renderer's locale, falling back to English.
// Non-nil returned error wraps [ErrNoTemplate].
func (r *Renderer) Template(name string) (string, error) {
	for _, dir := range []string{r.messages.Tag().String(), "en"} {
		contents, err := fs.ReadFile(templatesFS, path.Join("templates", dir, name))
		if err == nil {
			return string(contents), nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read template %q: %w", name, err)
		}
	}

	return "", fmt.Errorf("%w: %q", ErrNoTemplate, name)
}

// RenderTemplate renders a named embedded template with the localized section headings added to tags.
// Non-nil returned error wraps [ErrNoTemplate].
func (r *Renderer) RenderTemplate(name string, tags Tags) (string, error) {
	text, err := r.Template(name)
	if err != nil {
		return "", err
	}

	withHeadings := make(Tags, len(tags)+3)

	for k, v := range tags {
		withHeadings[strings.ToLower(k)] = v
	}

	withHeadings[tagHeadingInstallation] = r.messages.Get(i18n.ReadmeInstallation)
	withHeadings[tagHeadingTesting] = r.messages.Get(i18n.ReadmeTesting)
	withHeadings[tagHeadingLicense] = r.messages.Get(i18n.ReadmeLicense)

	return r.Render(text, withHeadings), nil
}
