// Package version reports which paleta build is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/jmylchreest/paleta/internal/version.<Name>=...".
// Builds without ldflags (go install) fall back to the VCS stamp in the
// binary's build info.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Short returns the bare version, used for --version and the HTTP user agent.
func Short() string {
	return Version
}

// String returns the line printed by "paleta version".
func String() string {
	commit, date := stamp(debug.ReadBuildInfo)
	platform := runtime.GOOS + "/" + runtime.GOARCH
	if commit == "" {
		return fmt.Sprintf("paleta version %s (%s, %s)", Version, runtime.Version(), platform)
	}
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("paleta version %s (commit: %s, built: %s, %s, %s)",
		Version, commit, date, runtime.Version(), platform)
}

// stamp resolves the commit and build date, preferring ldflags values.
// Commits are abbreviated to 8 characters.
func stamp(read func() (*debug.BuildInfo, bool)) (commit, date string) {
	commit, date = Commit, Date
	if commit == "" {
		if info, ok := read(); ok {
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					commit = s.Value
				case "vcs.time":
					if date == "" {
						date = s.Value
					}
				}
			}
		}
	}
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return commit, date
}
