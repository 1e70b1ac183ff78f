package ui

import (
	"sort"
	"strings"

	"github.com/abelbrown/touchline/internal/feed"
	"github.com/abelbrown/touchline/internal/fetch"
	"github.com/abelbrown/touchline/internal/football"
	"github.com/abelbrown/touchline/internal/present"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const teamCardWidth = 26

// teamsView is /teams/:code: a grid of the competition's teams with a fuzzy
// name filter.
type teamsView struct {
	env    *env
	teams  feed.Keyed[football.Team]
	codes  []string
	code   string
	filter textinput.Model
}

func newTeamsView(e *env, code string, codes []string) *teamsView {
	ti := textinput.New()
	ti.Placeholder = "Filter teams..."
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	ti.CharLimit = 32

	return &teamsView{
		env:    e,
		teams:  feed.NewKeyed[football.Team]("teams", fetch.Teams),
		codes:  codes,
		code:   code,
		filter: ti,
	}
}

func (v *teamsView) mount() tea.Cmd { return v.observe(v.code) }

func (v *teamsView) observe(code string) tea.Cmd {
	v.code = code
	t, ok := v.teams.Observe(code)
	if !ok {
		return nil
	}
	return feed.Fetch(v.env.ctx, v.env.getter, t, football.DecodeTeams)
}

func (v *teamsView) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case feed.Resolved[football.Team]:
		v.teams.Resolve(msg)
		return nil

	case tea.KeyMsg:
		if v.filter.Focused() {
			return v.updateFilter(msg)
		}
		switch {
		case key.Matches(msg, keys.Filter):
			return v.filter.Focus()
		case key.Matches(msg, keys.Reload):
			t, ok := v.teams.Reload()
			if !ok {
				return nil
			}
			return feed.Fetch(v.env.ctx, v.env.getter, t, football.DecodeTeams)
		case key.Matches(msg, keys.Prev):
			return v.step(-1)
		case key.Matches(msg, keys.Next):
			return v.step(1)
		}
		return nil
	}

	if v.filter.Focused() {
		var cmd tea.Cmd
		v.filter, cmd = v.filter.Update(msg)
		return cmd
	}
	return nil
}

// updateFilter handles keys while the filter has focus. esc clears it, enter
// keeps the query and returns focus to the grid.
func (v *teamsView) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		v.filter.SetValue("")
		v.filter.Blur()
		return nil
	case key.Matches(msg, keys.Accept):
		v.filter.Blur()
		return nil
	}
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	return cmd
}

func (v *teamsView) step(delta int) tea.Cmd {
	code, ok := stepCode(v.codes, v.code, delta)
	if !ok {
		return nil
	}
	return v.observe(code)
}

// visible returns the teams matching the filter, best match first. With no
// query the API order is kept.
func (v *teamsView) visible() []football.Team {
	items := v.teams.Items()
	query := strings.TrimSpace(v.filter.Value())
	if query == "" {
		return items
	}
	names := make([]string, len(items))
	for i, t := range items {
		names[i] = t.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)
	out := make([]football.Team, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, items[r.OriginalIndex])
	}
	return out
}

func (v *teamsView) route() Route        { return TeamsRoute(v.code) }
func (v *teamsView) capturing() bool     { return v.filter.Focused() }
func (v *teamsView) help() []key.Binding { return teamsHelp() }
func (v *teamsView) detach()             { v.teams.Detach() }

func (v *teamsView) render(width int, spin string) string {
	parts := []string{SectionTitle.Render("Teams · " + v.code)}
	if v.filter.Focused() || v.filter.Value() != "" {
		parts = append(parts, FilterBar.Render(v.filter.View()))
	}
	if status, ok := feedStatus(&v.teams.Controller, spin, "No Teams Available"); ok {
		return lipgloss.JoinVertical(lipgloss.Left, append(parts, status)...)
	}

	teams := v.visible()
	if len(teams) == 0 {
		parts = append(parts, EmptyState.Render("No teams match \""+v.filter.Value()+"\""))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, append(parts, teamGrid(teams, width))...)
}

// teamGrid lays the cards out in as many columns as width allows.
func teamGrid(teams []football.Team, width int) string {
	if width <= 0 {
		width = 80
	}
	cols := max(width/(teamCardWidth+2), 1)

	var rows []string
	for start := 0; start < len(teams); start += cols {
		end := min(start+cols, len(teams))
		cards := make([]string, 0, end-start)
		for _, t := range teams[start:end] {
			cards = append(cards, teamCard(t))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func teamCard(t football.Team) string {
	badge := present.Initial(t.Name, "?")
	if t.Crest != "" && t.TLA != "" {
		badge = t.TLA
	}
	name := t.Name
	if name == "" {
		name = "Unknown team"
	}
	body := Crest.Render(badge) + " " + name
	if t.ShortName != "" && t.ShortName != t.Name {
		body += "\n" + Muted.Render(t.ShortName)
	}
	return Card.Width(teamCardWidth).Render(body)
}
