// Package version holds build information set by the linker.
package version

import "fmt"

// Build information set by ldflags, e.g.
// -X github.com/arthur-debert/reslot/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the build information as printed by `reslot version`.
func Info() string {
	return fmt.Sprintf("reslot version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
