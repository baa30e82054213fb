package version

import (
	"fmt"
	"runtime"
)

// These variables are set via ldflags during build
var (
	// Version is the semantic version (e.g., v0.1.0)
	Version = "dev"

	// Commit is the git commit hash
	Commit = "unknown"

	// Date is the build date
	Date = "unknown"

	// BuiltBy indicates who built the binary
	BuiltBy = "unknown"
)

// Name is the program name shown in version output and report metadata
const Name = "srcmatch"

// Info returns version information as a formatted string
func Info() string {
	return fmt.Sprintf(
		"%s %s\nCommit: %s\nBuilt: %s by %s\nGo: %s\nOS/Arch: %s/%s",
		Name,
		Version,
		Commit,
		Date,
		BuiltBy,
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// Short returns just the version string
func Short() string {
	return Version
}
