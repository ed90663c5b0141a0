// Package buildinfo carries the build stamp set by the linker, e.g.
//
//	-ldflags "-X tally/internal/buildinfo.Version=v0.3.0 -X tally/internal/buildinfo.Commit=abc123"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for the window title and the
// boot banner.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// String describes the build in one line.
func String() string {
	return fmt.Sprintf("tally %s (commit %s, built %s)", Short(), Commit, Date)
}
