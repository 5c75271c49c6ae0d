package render

import "strings"

type (
	BadgeOptions struct {
		GitHubUsername string
		ProjectName    string
		License        string
		Linter         string
	}
)

const (
	licenseBadge             = "[![License](https://img.shields.io/github/license/{gh-username}/{project-name})](https://github.com/{gh-username}/{project-name}/blob/master/LICENSE.md)"
	conventionalCommitsBadge = "[![Conventional commits](https://img.shields.io/badge/Conventional%20Commits-1.0.0-brightgreen.svg)](https://conventionalcommits.org)"
	standardBadge            = "[![JavaScript Style Guide](https://img.shields.io/badge/code_style-standard-brightgreen.svg)](https://standardjs.com)"
)

// Badges computes the badge tags for README.md. The license badge needs a GitHub username and a real
// license; the style guide badge only applies to the standard linter.
func (r *Renderer) Badges(opts BadgeOptions, unlicensed bool) Tags {
	tags := Tags{
		TagConventionalCommitsBadge: conventionalCommitsBadge,
		TagLicenseBadge:             "",
		TagJSStyleGuideBadge:        "",
	}

	if opts.GitHubUsername != "" && opts.License != "" && !unlicensed {
		tags[TagLicenseBadge] = r.Render(licenseBadge, Tags{
			TagGitHubUsername: opts.GitHubUsername,
			TagProjectName:    opts.ProjectName,
		})
	}

	if strings.EqualFold(opts.Linter, "standard") {
		tags[TagJSStyleGuideBadge] = standardBadge
	}

	return tags
}
