// Package version exposes build metadata injected at link time:
//
//	go build -ldflags "-X github.com/Sumatoshi-tech/intensity/pkg/version.Version=v1.2.3"
package version

// Build metadata. Overridden with -ldflags -X.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the one-line version banner printed by the CLI.
func String(binary string) string {
	return binary + " " + Version + " (commit: " + Commit + ", built: " + Date + ")"
}
