// Package version holds build metadata injected via ldflags.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// UserAgent is sent to the inventory backend on every request.
func UserAgent() string {
	return "inventory-bff/" + Version + " (" + Commit + ")"
}
