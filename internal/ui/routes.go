package ui

import (
	"net/url"
	"strings"
)

// RouteKind is the screen a route addresses.
type RouteKind int

const (
	RouteHome RouteKind = iota
	RouteStandings
	RouteTeams
)

// Route is a parsed navigation path. Code is the competition code for the
// standings and teams screens, "" for home.
type Route struct {
	Kind RouteKind
	Code string
}

// Home is the root route.
var Home = Route{Kind: RouteHome}

// StandingsRoute addresses /standings/:code.
func StandingsRoute(code string) Route { return Route{Kind: RouteStandings, Code: code} }

// TeamsRoute addresses /teams/:code.
func TeamsRoute(code string) Route { return Route{Kind: RouteTeams, Code: code} }

// ParseRoute parses "/", "/standings/:code" or "/teams/:code". A trailing
// slash is ignored and the code is unescaped.
func ParseRoute(path string) (Route, bool) {
	p := strings.Trim(strings.TrimSpace(path), "/")
	if p == "" {
		return Home, true
	}
	parts := strings.Split(p, "/")
	if len(parts) != 2 || parts[1] == "" {
		return Route{}, false
	}
	code, err := url.PathUnescape(parts[1])
	if err != nil || code == "" {
		return Route{}, false
	}
	switch parts[0] {
	case "standings":
		return StandingsRoute(code), true
	case "teams":
		return TeamsRoute(code), true
	}
	return Route{}, false
}

// Path is the inverse of ParseRoute.
func (r Route) Path() string {
	switch r.Kind {
	case RouteStandings:
		return "/standings/" + url.PathEscape(r.Code)
	case RouteTeams:
		return "/teams/" + url.PathEscape(r.Code)
	default:
		return "/"
	}
}

func (r Route) String() string { return r.Path() }
