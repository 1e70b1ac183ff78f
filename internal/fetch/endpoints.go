package fetch

import "net/url"

// Endpoint names, relative to the client's base URL.
const (
	Competitions    = "competitions"
	UpcomingMatches = "upcoming-matches"
	LiveMatches     = "live-matches"
)

// Standings returns the league table endpoint for a competition code.
func Standings(code string) string {
	return "standings/" + url.PathEscape(code)
}

// Teams returns the team list endpoint for a competition code.
func Teams(code string) string {
	return "teams/" + url.PathEscape(code)
}
