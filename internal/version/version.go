// Package version exposes build metadata stamped at link time.
package version

import "fmt"

// Set via -ldflags at build time.
var (
	Version = "2.0.0-dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the full human-readable version line.
func String() string {
	return fmt.Sprintf("snag %s (commit %s, built %s)", Version, Commit, Date)
}
