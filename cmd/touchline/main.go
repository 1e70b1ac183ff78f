// Command touchline is a terminal dashboard for football fixtures, live
// matches, standings and teams.
package main

// Set by the release build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	Execute()
}
