package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/touchline/internal/fetch"
)

// AttemptLog is the in-memory request history the debug overlay reads.
// *fetch.Ring satisfies it.
type AttemptLog interface {
	Last(n int) []fetch.Attempt
	Stats() map[fetch.Outcome]int
	Len() int
	Cap() int
}

// debugPanelChrome is the number of lines DebugPanel's border and padding use.
const debugPanelChrome = 4

// debugOverlay renders request stats and the most recent attempts.
// Returns "" when there is no log.
func debugOverlay(log AttemptLog, now time.Time, width, height int) string {
	if log == nil {
		return ""
	}

	stats := log.Stats()
	lines := []string{
		DebugHeaderStyle.Render("Requests"),
		fmt.Sprintf("  ok %d  network %d  server %d  parse %d",
			stats[fetch.OutcomeOK], stats[fetch.OutcomeNetwork], stats[fetch.OutcomeServer], stats[fetch.OutcomeParse]),
		fmt.Sprintf("  Buffer: %d / %d", log.Len(), log.Cap()),
		"",
		DebugHeaderStyle.Render("Recent"),
	}

	recent := log.Last(20)
	for i := len(recent) - 1; i >= 0; i-- {
		a := recent[i]
		line := fmt.Sprintf("  %6s  %-7s %-24s %5s", compactAge(now.Sub(a.At)), a.Outcome, truncate(a.Endpoint, 24), compactAge(a.Duration))
		if a.Status != 0 {
			line += fmt.Sprintf("  %d", a.Status)
		}
		if len(a.RequestID) >= 8 {
			line += "  " + a.RequestID[:8]
		}
		lines = append(lines, line)
	}

	maxHeight := max(height-debugPanelChrome, 1)
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panelWidth := min(84, width-4)
	panelWidth = max(panelWidth, 20)
	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// compactAge formats a duration as "850ms", "4.2s" or "3m". Negative values
// from clock skew clamp to "0ms".
func compactAge(d time.Duration) string {
	switch {
	case d < 0:
		return "0ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
