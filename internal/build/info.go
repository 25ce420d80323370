// Package build exposes version metadata stamped into the binary.
package build

import "fmt"

// Name is the binary name shown in version output.
const Name = "kundeploy"

// Stamped via -ldflags, e.g.
//
//	-X github.com/shaharia-lab/kundeploy/internal/build.Version=v1.2.0
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// String returns the version line printed by --version.
func String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", Name, Version, CommitSHA, BuildDate)
}
