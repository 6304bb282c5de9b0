package version

import (
	"fmt"
	"runtime"
)

// Build information injected at build time via ldflags
var (
	Version   = "dev"     // Semantic version or "dev"
	Commit    = "unknown" // Git commit hash
	Date      = "unknown" // Build date (RFC3339)
	GoVersion = runtime.Version()
)

// Info returns formatted version information
func Info(binary string) string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, go: %s)",
		binary, Version, Commit, Date, GoVersion)
}
