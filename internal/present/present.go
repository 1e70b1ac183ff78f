// Package present turns raw records into display strings. Every function is
// pure: it reads its arguments and returns a new value.
package present

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StyleToken names the visual treatment of a match status.
type StyleToken string

const (
	StyleLive     StyleToken = "live"
	StyleFinished StyleToken = "finished"
	StyleUpcoming StyleToken = "upcoming"
	StyleNeutral  StyleToken = "neutral"
)

const (
	kickoffLayout = "03:04 PM"
	fixtureLayout = "Monday, January 2, 2006 at 03:04 PM"
)

// Layouts accepted for kickoff timestamps, most specific first.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISO parses an ISO-8601 timestamp. Timestamps without a zone are UTC.
func ParseISO(iso string) (time.Time, bool) {
	s := strings.TrimSpace(iso)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func in(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc)
}

// FormatKickoffTime renders the clock time of iso in loc (nil means local
// time), e.g. "07:30 PM". Input that does not parse is returned unchanged.
func FormatKickoffTime(iso string, loc *time.Location) string {
	t, ok := ParseISO(iso)
	if !ok {
		return iso
	}
	return in(t, loc).Format(kickoffLayout)
}

// FormatFixtureDate renders weekday, month, day, year and time, e.g.
// "Saturday, August 16, 2025 at 03:00 PM". Input that does not parse is
// returned unchanged.
func FormatFixtureDate(iso string, loc *time.Location) string {
	t, ok := ParseISO(iso)
	if !ok {
		return iso
	}
	return in(t, loc).Format(fixtureLayout)
}

// KickoffCountdown describes iso relative to now, e.g. "3 hours from now".
// It returns "" when iso does not parse.
func KickoffCountdown(iso string, now time.Time) string {
	t, ok := ParseISO(iso)
	if !ok {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatStageLabel turns an API stage constant into a label:
// "GROUP_STAGE" -> "Group Stage", "ROUND_OF_16" -> "Round Of 16".
func FormatStageLabel(stage string) string {
	// A Caser is stateful; build one per call.
	return cases.Title(language.English).String(strings.ReplaceAll(stage, "_", " "))
}

// StatusStyleClass maps a match status to its style, case-insensitively.
// Unknown and empty statuses are neutral.
func StatusStyleClass(status string) StyleToken {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "live":
		return StyleLive
	case "finished":
		return StyleFinished
	case "upcoming":
		return StyleUpcoming
	default:
		return StyleNeutral
	}
}

// Initial is the placeholder shown instead of a missing crest: the first letter
// of name, or fallback when name is blank.
func Initial(name, fallback string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return fallback
}

// ScoreLine is the score to print, "- : -" when there is none yet.
func ScoreLine(score string) string {
	if strings.TrimSpace(score) == "" {
		return "- : -"
	}
	return score
}

// ScoreCaption is the label under the score.
func ScoreCaption(status string) string {
	if StatusStyleClass(status) == StyleLive {
		return "LIVE"
	}
	return "Score"
}

// StageLine joins the stage label and group, e.g. "Group Stage • Group A".
func StageLine(stage, group string) string {
	label := FormatStageLabel(stage)
	if group == "" {
		return label
	}
	g := FormatStageLabel(group)
	if label == "" {
		return g
	}
	return label + " • " + g
}
