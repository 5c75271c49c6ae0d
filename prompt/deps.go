package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

type (
	// Dependency is an npm package identifier with an optional version specifier.
	Dependency struct {
		Name    string
		Version string
	}
)

var (
	ErrBadDependency = errors.New("invalid dependency identifier")

	depNameRegex = regexp.MustCompile(`^(@[a-z0-9][a-z0-9._~-]*/)?[a-z0-9][a-z0-9._~-]*$`)

	exactVersionRegex = regexp.MustCompile(`^v?\d`)
)

// ParseDependency parses "name", "name@range" and "@scope/name@range".
// Exact versions such as "1.2.3" must be valid semantic versions; ranges and dist-tags pass through.
// Non-nil returned error wraps [ErrBadDependency].
func ParseDependency(raw string) (Dependency, error) {
	raw = strings.TrimSpace(raw)

	name, version := raw, ""

	if i := strings.LastIndex(raw, "@"); i > 0 {
		name, version = raw[:i], raw[i+1:]

		if version == "" {
			return Dependency{}, fmt.Errorf("%w: %q has an empty version", ErrBadDependency, raw)
		}
	}

	if !depNameRegex.MatchString(name) {
		return Dependency{}, fmt.Errorf("%w: %q", ErrBadDependency, raw)
	}

	if exactVersionRegex.MatchString(version) && !strings.ContainsAny(version, " x*|<>=") {
		if !semver.IsValid("v" + strings.TrimPrefix(version, "v")) {
			return Dependency{}, fmt.Errorf("%w: %q is not a semantic version", ErrBadDependency, version)
		}
	}

	return Dependency{Name: name, Version: version}, nil
}

func (d Dependency) String() string {
	if d.Version == "" {
		return d.Name
	}

	return d.Name + "@" + d.Version
}

// ParseDependencies parses a list answer into a deduplicated list sorted by name.
// When a name appears more than once, the last occurrence wins.
// Non-nil returned error wraps [ErrBadDependency].
func ParseDependencies(raws []string) ([]Dependency, error) {
	byName := make(map[string]Dependency, len(raws))

	for _, raw := range raws {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		dep, err := ParseDependency(raw)
		if err != nil {
			return nil, err
		}

		byName[dep.Name] = dep
	}

	deps := make([]Dependency, 0, len(byName))

	for _, dep := range byName {
		deps = append(deps, dep)
	}

	slices.SortFunc(deps, func(a, b Dependency) int {
		return strings.Compare(a.Name, b.Name)
	})

	return deps, nil
}

// Without drops dependencies whose name is in declared.
func Without(deps []Dependency, declared map[string]bool) []Dependency {
	kept := make([]Dependency, 0, len(deps))

	for _, dep := range deps {
		if !declared[dep.Name] {
			kept = append(kept, dep)
		}
	}

	return kept
}
