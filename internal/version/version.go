// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set at build time using ldflags.
var (
	// Version is the semantic version (e.g., "0.1.0").
	Version = "dev"
	// Commit is the git commit SHA.
	Commit = "none"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	if Commit == "none" {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
				Commit = setting.Value[:7]
			}
		}
	}
}

// String returns the full version description.
func String() string {
	return fmt.Sprintf("crashpipe %s (%s) %s/%s", Version, Commit, runtime.GOOS, runtime.GOARCH)
}
