// Package version carries the build version, overridden at link time with
// -ldflags "-X github.com/RobboC1980/AGF-sub000/pkg/version.Version=...".
package version

var Version = "dev"
