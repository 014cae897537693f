// Package version exposes the build version string.
package version

// Version is set at build time via
// -ldflags "-X github.com/mousewarp/mousewarp/pkg/version.Version=...".
var Version = "dev"

// Get returns the build version.
func Get() string {
	return Version
}
