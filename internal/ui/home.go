package ui

import (
	"strings"

	"github.com/abelbrown/touchline/internal/feed"
	"github.com/abelbrown/touchline/internal/fetch"
	"github.com/abelbrown/touchline/internal/football"
	"github.com/abelbrown/touchline/internal/present"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type panel int

const (
	panelUpcoming panel = iota
	panelLive
	panelCompetitions
	panelCount
)

// homeView is "/": upcoming fixtures, live matches and the competition list,
// each on its own feed.
type homeView struct {
	env      *env
	upcoming feed.Controller[football.Match]
	live     feed.Controller[football.Match]
	comps    feed.Controller[football.Competition]
	focus    panel
	cursor   int
}

func newHomeView(e *env) *homeView {
	h := &homeView{
		env:      e,
		upcoming: feed.NewController[football.Match]("upcoming"),
		live:     feed.NewController[football.Match]("live"),
		comps:    feed.NewController[football.Competition]("competitions"),
	}
	h.upcoming.SetWindowLimit(e.windowSize)
	h.live.SetWindowLimit(e.windowSize)
	return h
}

func (h *homeView) mount() tea.Cmd { return h.load() }

// load starts all three feeds.
func (h *homeView) load() tea.Cmd {
	var cmds []tea.Cmd
	if t, ok := h.upcoming.Start(fetch.UpcomingMatches); ok {
		cmds = append(cmds, feed.Fetch(h.env.ctx, h.env.getter, t, football.DecodeMatches))
	}
	if t, ok := h.live.Start(fetch.LiveMatches); ok {
		cmds = append(cmds, feed.Fetch(h.env.ctx, h.env.getter, t, football.DecodeMatches))
	}
	if t, ok := h.comps.Start(fetch.Competitions); ok {
		cmds = append(cmds, feed.Fetch(h.env.ctx, h.env.getter, t, football.DecodeCompetitions))
	}
	return tea.Batch(cmds...)
}

func (h *homeView) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case feed.Resolved[football.Match]:
		switch {
		case h.upcoming.Owns(msg.Ticket):
			h.upcoming.Resolve(msg)
		case h.live.Owns(msg.Ticket):
			h.live.Resolve(msg)
		}

	case feed.Resolved[football.Competition]:
		if h.comps.Resolve(msg) {
			h.cursor = 0
		}

	case tea.KeyMsg:
		return h.handleKey(msg)
	}
	return nil
}

func (h *homeView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Reload):
		return h.load()

	case key.Matches(msg, keys.Focus):
		h.focus = (h.focus + 1) % panelCount

	case key.Matches(msg, keys.FocusRev):
		h.focus = (h.focus + panelCount - 1) % panelCount

	case key.Matches(msg, keys.More):
		switch h.focus {
		case panelUpcoming:
			h.upcoming.ToggleWindow()
		case panelLive:
			h.live.ToggleWindow()
		}

	case key.Matches(msg, keys.Up):
		if h.focus == panelCompetitions && h.cursor > 0 {
			h.cursor--
		}

	case key.Matches(msg, keys.Down):
		if h.focus == panelCompetitions && h.cursor < len(h.comps.Items())-1 {
			h.cursor++
		}

	case key.Matches(msg, keys.Open):
		if code, ok := h.selectedCode(); ok {
			return navigate(StandingsRoute(code), h.codes())
		}

	case key.Matches(msg, keys.Teams):
		if code, ok := h.selectedCode(); ok {
			return navigate(TeamsRoute(code), h.codes())
		}
	}
	return nil
}

func (h *homeView) selectedCode() (string, bool) {
	items := h.comps.Items()
	if h.focus != panelCompetitions || h.cursor >= len(items) {
		return "", false
	}
	code := items[h.cursor].Code
	return code, code != ""
}

func (h *homeView) codes() []string {
	var codes []string
	for _, c := range h.comps.Items() {
		if c.Code != "" {
			codes = append(codes, c.Code)
		}
	}
	return codes
}

func (h *homeView) route() Route        { return Home }
func (h *homeView) capturing() bool     { return false }
func (h *homeView) help() []key.Binding { return homeHelp() }

func (h *homeView) detach() {
	h.upcoming.Detach()
	h.live.Detach()
	h.comps.Detach()
}

func (h *homeView) render(width int, spin string) string {
	sections := []string{
		h.title("Upcoming Matches", panelUpcoming),
		renderFeed(&h.upcoming, spin, "No Upcoming Matches", h.upcomingCard),
		h.title("Live Matches", panelLive),
		renderFeed(&h.live, spin, "No Live Matches", h.liveCard),
		h.title("Competitions", panelCompetitions),
		h.competitionList(spin),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (h *homeView) title(text string, p panel) string {
	if h.focus == p {
		return FocusedTitle.Render(text)
	}
	return SectionTitle.Render(text)
}

func (h *homeView) upcomingCard(m football.Match) string {
	head := Muted.Render(m.CompetitionName())
	if stage := present.StageLine(m.Stage, m.Group); stage != "" {
		head += Muted.Render("  " + stage)
	}
	when := present.FormatFixtureDate(m.Kickoff, h.env.loc)
	if in := present.KickoffCountdown(m.Kickoff, h.env.now()); in != "" {
		when += Muted.Render(" (" + in + ")")
	}
	return Card.Render(strings.Join([]string{
		head,
		teamName(m.HomeTeam, "Home") + " vs " + teamName(m.AwayTeam, "Away"),
		when,
	}, "\n"))
}

func (h *homeView) liveCard(m football.Match) string {
	head := StatusBadge(m.Status)
	if kickoff := present.FormatKickoffTime(m.Kickoff, h.env.loc); kickoff != "" {
		head += " " + Muted.Render(kickoff)
	}
	if present.StatusStyleClass(m.Status) == present.StyleLive {
		head += " " + statusStyle(present.StyleLive).Render("Live Now")
	}
	lines := []string{head}
	if name := m.CompetitionName(); name != "" {
		lines = append(lines, Muted.Render(name))
	}
	lines = append(lines,
		teamName(m.HomeTeam, "Home")+"  "+present.ScoreLine(string(m.Score))+"  "+teamName(m.AwayTeam, "Away"),
		Muted.Render(present.ScoreCaption(m.Status)),
	)
	return Card.Render(strings.Join(lines, "\n"))
}

// competitionList shows every competition; it is a menu, not a windowed feed.
func (h *homeView) competitionList(spin string) string {
	if status, ok := feedStatus(&h.comps, spin, "No Competitions Available"); ok {
		return status
	}
	lines := make([]string, 0, len(h.comps.Items()))
	for i, c := range h.comps.Items() {
		text := c.Name
		if c.Area.Name != "" {
			text += " " + Muted.Render("("+c.Area.Name+")")
		}
		badge := Crest.Render(present.Initial(c.Name, "?"))
		if c.Code != "" {
			badge = Crest.Render(c.Code)
		}
		style := NormalItem
		if h.focus == panelCompetitions && i == h.cursor {
			style = SelectedItem
		}
		lines = append(lines, badge+style.Render(text))
	}
	return strings.Join(lines, "\n")
}

func teamName(t football.TeamRef, fallback string) string {
	if strings.TrimSpace(t.Name) == "" {
		return fallback
	}
	return t.Name
}
