// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

// Package version reports which decom build is running. Release builds set
// the values via ldflags; other builds fall back to the VCS stamp the Go
// toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the release of decom (set by ldflags)
	Version = "dev"

	// Commit is the git commit hash (set by ldflags)
	Commit = "unknown"

	// BuildTime is the build timestamp (set by ldflags)
	BuildTime = "unknown"
)

// Build is the resolved build stamp.
type Build struct {
	Version   string
	Commit    string
	BuildTime string
	Modified  bool
}

// Current resolves the running binary's build stamp.
func Current() Build {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
}

func resolve(bi *debug.BuildInfo) Build {
	b := Build{Version: Version, Commit: Commit, BuildTime: BuildTime}
	if bi == nil {
		return b
	}
	if b.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		b.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "unknown" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.BuildTime == "unknown" {
				b.BuildTime = s.Value
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	return b
}

// Info returns the line printed by `decom version`.
func Info() string {
	b := Current()
	commit := b.Commit
	if b.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("decom %s (commit: %s, built: %s, go: %s)",
		b.Version, commit, b.BuildTime, runtime.Version())
}

// Short returns just the version number
func Short() string {
	return Current().Version
}
