package ui

import (
	"github.com/abelbrown/touchline/internal/present"
	"github.com/charmbracelet/lipgloss"
)

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorLive      = lipgloss.Color("196") // Red
	colorUpcoming  = lipgloss.Color("39")  // Blue
)

// Header is the top bar with the app name and current route.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// SectionTitle heads each feed on a screen.
var SectionTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	MarginTop(1).
	Padding(0, 1)

// FocusedTitle marks the section that receives feed keys.
var FocusedTitle = SectionTitle.
	Underline(true)

// Card frames a single match or team.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// SelectedItem style for the highlighted competition.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected rows.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// Muted is for secondary text: dates, captions, counts.
var Muted = lipgloss.NewStyle().
	Foreground(colorSecondary)

// MoreToggle renders the "+N" and "show less" controls.
var MoreToggle = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Padding(0, 1)

// EmptyState for successful loads with nothing to show.
var EmptyState = lipgloss.NewStyle().
	Foreground(colorMuted).
	Italic(true).
	Padding(0, 1)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// Crest is the placeholder badge drawn in place of a crest or emblem.
var Crest = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// HelpStyle for the key hints at the bottom.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 1, 0, 1)

// FilterBar style for the teams filter input.
var FilterBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

var badgeBase = lipgloss.NewStyle().
	Bold(true).
	Padding(0, 1)

// StatusBadge renders a match status in the colour of its style token.
func StatusBadge(status string) string {
	if status == "" {
		return ""
	}
	return statusStyle(present.StatusStyleClass(status)).Render(status)
}

func statusStyle(token present.StyleToken) lipgloss.Style {
	switch token {
	case present.StyleLive:
		return badgeBase.Foreground(lipgloss.Color("255")).Background(colorLive)
	case present.StyleFinished:
		return badgeBase.Foreground(lipgloss.Color("232")).Background(colorSuccess)
	case present.StyleUpcoming:
		return badgeBase.Foreground(lipgloss.Color("255")).Background(colorUpcoming)
	default:
		return badgeBase.Foreground(colorSecondary).Background(lipgloss.Color("236"))
	}
}

// DebugPanel frames the request overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle heads each overlay section.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)
