package ui

import "testing"

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		want Route
		ok   bool
	}{
		{"/", Home, true},
		{"", Home, true},
		{"/standings/PL", StandingsRoute("PL"), true},
		{"/standings/PL/", StandingsRoute("PL"), true},
		{"standings/PD", StandingsRoute("PD"), true},
		{"/teams/BL1", TeamsRoute("BL1"), true},
		{"/teams/A%20B", TeamsRoute("A B"), true},
		{"/standings", Route{}, false},
		{"/standings/", Route{}, false},
		{"/fixtures/PL", Route{}, false},
		{"/teams/PL/extra", Route{}, false},
	}
	for _, tc := range tests {
		got, ok := ParseRoute(tc.path)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseRoute(%q) = %v, %v; want %v, %v", tc.path, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRoutePathRoundTrip(t *testing.T) {
	for _, r := range []Route{Home, StandingsRoute("PL"), TeamsRoute("A B")} {
		got, ok := ParseRoute(r.Path())
		if !ok || got != r {
			t.Errorf("ParseRoute(%q) = %v, %v", r.Path(), got, ok)
		}
	}
}

func TestStepCode(t *testing.T) {
	codes := []string{"PL", "PD", "BL1"}

	if got, ok := stepCode(codes, "PL", 1); !ok || got != "PD" {
		t.Errorf("next of PL = %q, %v", got, ok)
	}
	if got, ok := stepCode(codes, "PL", -1); !ok || got != "BL1" {
		t.Errorf("previous of PL should wrap, got %q, %v", got, ok)
	}
	if got, ok := stepCode(codes, "BL1", 1); !ok || got != "PL" {
		t.Errorf("next of BL1 should wrap, got %q, %v", got, ok)
	}
	if _, ok := stepCode(codes, "SA", 1); ok {
		t.Error("unknown code should not step")
	}
	if _, ok := stepCode([]string{"PL"}, "PL", 1); ok {
		t.Error("single code has nowhere to go")
	}
}
