package ui

import (
	"strconv"

	"github.com/abelbrown/touchline/internal/feed"
	"github.com/abelbrown/touchline/internal/fetch"
	"github.com/abelbrown/touchline/internal/football"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var standingsColumns = []table.Column{
	{Title: "#", Width: 3},
	{Title: "Team", Width: 26},
	{Title: "Points", Width: 6},
	{Title: "Won", Width: 4},
	{Title: "Draw", Width: 4},
	{Title: "Lost", Width: 4},
}

// standingsView is /standings/:code. The whole table is shown; it is never
// windowed.
type standingsView struct {
	env   *env
	rows  feed.Keyed[football.StandingRow]
	codes []string
	code  string
	table table.Model
}

func newStandingsView(e *env, code string, codes []string) *standingsView {
	t := table.New(
		table.WithColumns(standingsColumns),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("255")).
		Background(colorPrimary)
	t.SetStyles(styles)

	return &standingsView{
		env:   e,
		rows:  feed.NewKeyed[football.StandingRow]("standings", fetch.Standings),
		codes: codes,
		code:  code,
		table: t,
	}
}

func (v *standingsView) mount() tea.Cmd { return v.observe(v.code) }

// observe moves the view to code, fetching only when the code changed.
func (v *standingsView) observe(code string) tea.Cmd {
	v.code = code
	t, ok := v.rows.Observe(code)
	if !ok {
		return nil
	}
	return feed.Fetch(v.env.ctx, v.env.getter, t, football.DecodeStandings)
}

func (v *standingsView) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case feed.Resolved[football.StandingRow]:
		if v.rows.Resolve(msg) {
			v.syncTable()
		}
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Reload):
			t, ok := v.rows.Reload()
			if !ok {
				return nil
			}
			return feed.Fetch(v.env.ctx, v.env.getter, t, football.DecodeStandings)
		case key.Matches(msg, keys.Prev):
			return v.step(-1)
		case key.Matches(msg, keys.Next):
			return v.step(1)
		}
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return cmd
	}
	return nil
}

func (v *standingsView) step(delta int) tea.Cmd {
	code, ok := stepCode(v.codes, v.code, delta)
	if !ok {
		return nil
	}
	return v.observe(code)
}

func (v *standingsView) syncTable() {
	items := v.rows.Items()
	rows := make([]table.Row, 0, len(items))
	for i, r := range items {
		pos := r.Position
		if pos == 0 {
			pos = i + 1
		}
		rows = append(rows, table.Row{
			strconv.Itoa(pos),
			teamName(r.Team, "-"),
			strconv.Itoa(r.Points),
			strconv.Itoa(r.Won),
			strconv.Itoa(r.Draw),
			strconv.Itoa(r.Lost),
		})
	}
	v.table.SetRows(rows)
	// Room for the header and its border so every row fits.
	v.table.SetHeight(len(rows) + 3)
	v.table.GotoTop()
}

func (v *standingsView) route() Route        { return StandingsRoute(v.code) }
func (v *standingsView) capturing() bool     { return false }
func (v *standingsView) help() []key.Binding { return standingsHelp() }
func (v *standingsView) detach()             { v.rows.Detach() }

func (v *standingsView) render(width int, spin string) string {
	title := SectionTitle.Render("Standings · " + v.code)
	if status, ok := feedStatus(&v.rows.Controller, spin, "No Standings Available"); ok {
		return lipgloss.JoinVertical(lipgloss.Left, title, status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, v.table.View())
}
