// Package settings reads the user's defaults file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/nodestarter/config.toml unless a path is given
// explicitly. Every field is optional; set fields become prompt defaults.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

type (
	Settings struct {
		Owner          string `toml:"owner"`
		GitHubUsername string `toml:"gh-username"`
		GitHubEmail    string `toml:"gh-email"`
		License        string `toml:"license"`
		Linter         string `toml:"linter"`
		TestFramework  string `toml:"test-framework"`
		TestDirectory  string `toml:"test-directory"`
		TestExtension  string `toml:"test-extension"`
		SrcDirectory   string `toml:"src-directory"`
		Locale         string `toml:"locale"`
		Flow           string `toml:"flow"`
		MarkdownViewer *bool  `toml:"markdown-viewer"`
	}
)

const (
	RelPath = "nodestarter/config.toml"
)

var (
	ErrUnknownKey = errors.New("unknown settings key")
)

// Load decodes the file at path.
// Non-nil returned error wraps [ErrUnknownKey] when the file has keys Settings does not know.
func Load(path string) (s Settings, err error) {
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return s, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))

		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return s, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}

	return s, nil
}

// Resolve loads an explicit path when given, otherwise the XDG defaults file if one exists.
// The returned path is empty when no file was found.
func Resolve(explicit string) (s Settings, path string, err error) {
	if explicit != "" {
		s, err = Load(explicit)

		return s, explicit, err
	}

	path, err = xdg.SearchConfigFile(RelPath)
	if err != nil {
		return s, "", nil
	}

	if _, err = os.Stat(path); err != nil {
		return s, "", nil
	}

	s, err = Load(path)

	return s, path, err
}
