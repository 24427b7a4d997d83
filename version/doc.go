// Package version provides build version information for the devportal
// binary and the User-Agent it sends upstream.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/devportal/version.Version=1.0.0"
package version
