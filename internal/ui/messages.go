// Package ui provides the Bubble Tea TUI for touchline.
package ui

import tea "github.com/charmbracelet/bubbletea"

// NavigateMsg asks the root model to mount the screen for Route. Codes, when
// set, is the ordered competition list the new screen steps through with [ and ].
type NavigateMsg struct {
	Route Route
	Codes []string
}

// navigate returns a command that emits a NavigateMsg.
func navigate(r Route, codes []string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: r, Codes: codes}
	}
}
