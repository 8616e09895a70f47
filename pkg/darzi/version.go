// Package darzi holds build metadata shared by the binary and its packages.
package darzi

// Version is the application version stamped into backups. Overridden at
// build time with -ldflags "-X github.com/mesh-intelligence/darzi/pkg/darzi.Version=...".
var Version = "1.0.0"
