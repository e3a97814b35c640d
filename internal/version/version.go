package version

import (
	"fmt"
	"runtime/debug"
)

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/apisite/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String renders the version line printed by --version. When no version was
// injected at build time, the module version recorded by the Go toolchain is
// used instead.
func String() string {
	v := Version
	if v == "unknown" {
		if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	if GitCommit == "unknown" {
		return v
	}
	return fmt.Sprintf("%s (commit %s, built %s)", v, GitCommit, BuildTime)
}
