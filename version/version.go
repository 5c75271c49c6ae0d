// Package version reports how the running binary was built.
package version

import (
	"fmt"
	"runtime/debug"
)

const unavailable = "unavailable"

// FromBuildInfo describes the binary for --version: the module version when installed with
// "go install", the VCS revision when built from a checkout.
func FromBuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unavailable
	}

	return describe(info)
}

func describe(info *debug.BuildInfo) string {
	var vcs, revision, ts string

	modified := false

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs":
			vcs = s.Value
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			ts = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if revision == "" {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}

		return unavailable
	}

	if modified {
		revision += "-dirty"
	}

	if ts == "" {
		return fmt.Sprintf("built from %s revision %s", vcs, revision)
	}

	return fmt.Sprintf("built from %s revision %s at %s", vcs, revision, ts)
}
