package version

import "fmt"

// Version is stamped at link time:
// go build -ldflags "-X git.home.luguber.info/inful/devlog/internal/version.Version=v0.3.0".
var Version = "dev"

// Build metadata, also set through ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by `devlog --version`.
func String() string {
	return fmt.Sprintf("devlog %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
