package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/touchline/internal/feed"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// env is what every screen needs to issue fetches and format times.
type env struct {
	ctx        context.Context
	getter     feed.Getter
	loc        *time.Location
	now        func() time.Time
	windowSize int
}

// screen is one mounted route. A screen owns its feed controllers; Detach is
// called when the root model replaces it.
type screen interface {
	mount() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	render(width int, spin string) string
	route() Route
	capturing() bool
	help() []key.Binding
	detach()
}

// feedStatus renders every lifecycle except a non-empty success: a spinner
// while loading, the error with a retry hint, or the empty message. It reports
// false when the records themselves should be drawn.
func feedStatus[T any](c *feed.Controller[T], spin, empty string) (string, bool) {
	switch c.Lifecycle() {
	case feed.Idle, feed.Loading:
		return Muted.Render(spin + " Loading..."), true
	case feed.Error:
		return ErrorStyle.Render(c.Err()) + "\n" + Muted.Render("  press r to retry"), true
	}
	if c.Empty() {
		return EmptyState.Render(empty), true
	}
	return "", false
}

// renderFeed draws the windowed records of c followed by the show more/less
// control, or its status when there are no records to draw.
func renderFeed[T any](c *feed.Controller[T], spin, empty string, item func(T) string) string {
	if status, ok := feedStatus(c, spin, empty); ok {
		return status
	}

	var b strings.Builder
	for i, rec := range c.Visible() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(item(rec))
	}
	if c.Togglable() {
		b.WriteString("\n")
		if c.Window().Expanded() {
			b.WriteString(MoreToggle.Render("show less (m)"))
		} else {
			b.WriteString(MoreToggle.Render(fmt.Sprintf("+%d more (m)", c.Hidden())))
		}
	}
	return b.String()
}

// stepCode returns the code delta places from cur in codes, wrapping around.
// It reports false when cur is not in codes or there is nowhere to go.
func stepCode(codes []string, cur string, delta int) (string, bool) {
	if len(codes) < 2 {
		return "", false
	}
	for i, c := range codes {
		if c == cur {
			n := len(codes)
			return codes[((i+delta)%n+n)%n], true
		}
	}
	return "", false
}
