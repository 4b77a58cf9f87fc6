// Package env holds build information injected with -ldflags.
package env

const AppName = "splash"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
