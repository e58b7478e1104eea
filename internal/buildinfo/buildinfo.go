// Package buildinfo holds the pantry build stamp, set with -ldflags "-X".
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Stamp values; the defaults mark a local build.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

// Summary renders the stamp as printed by `pantry version`.
func Summary() string {
	return fmt.Sprintf("pantry %s (commit %s, branch %s, built %s)", ResolvedVersion(), GitCommit, GitBranch, BuildDate)
}

// ResolvedVersion returns Version, falling back to the module version
// recorded by `go install` when no ldflags were given.
func ResolvedVersion() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}
