// Package version carries build metadata stamped by the linker.
package version

// Populated via -ldflags at build time; the zero build is "dev".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String returns the full version line the CLI prints.
func String() string {
	return Version + " (" + CommitHash + ", " + BuildDate + ")"
}
