package version

import "fmt"

// These variables are set at build time using -ldflags
// Example: go build -ldflags "-X github.com/dexterlegrand/threejs-asets-sub009/internal/version.Version=1.0.0"
var (
	// Version is the semantic version of the application
	Version = "0.3.0"

	// BuildTime is the time the binary was built (set via ldflags)
	BuildTime = "unknown"

	// GitCommit is the git commit hash (set via ldflags)
	GitCommit = "unknown"

	// Year of release
	Year = "2026"
)

// String returns the one-line version banner.
func String() string {
	return fmt.Sprintf("pipemodel v%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
