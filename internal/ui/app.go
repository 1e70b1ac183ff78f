package ui

import (
	"context"
	"time"

	"github.com/abelbrown/touchline/internal/feed"
	"github.com/abelbrown/touchline/internal/logging"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options configures the App.
type Options struct {
	// Start is the first route mounted. The zero value is home.
	Start Route
	// WindowSize is how many matches a collapsed feed shows (default 3).
	WindowSize int
	// Location kickoff times are shown in; nil means local time.
	Location *time.Location
	// Now is the clock for kickoff countdowns; nil means time.Now.
	Now func() time.Time
	// Requests, when set, backs the D overlay of recent API requests.
	Requests AttemptLog
}

// App is the root Bubble Tea model. It owns the current route and mounts one
// screen at a time; the screen owns the feed controllers.
// IMPORTANT: App does NOT hold *fetch.Client. It issues requests through feed.Getter.
type App struct {
	env      *env
	screen   screen
	spinner  spinner.Model
	help     help.Model
	showHelp bool
	requests AttemptLog
	debug    bool
	width    int
	height   int
}

// NewApp creates an App that fetches through getter. ctx bounds every request.
func NewApp(ctx context.Context, getter feed.Getter, opts Options) App {
	if opts.WindowSize <= 0 {
		opts.WindowSize = feed.DefaultLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	e := &env{
		ctx:        ctx,
		getter:     getter,
		loc:        opts.Location,
		now:        opts.Now,
		windowSize: opts.WindowSize,
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	return App{
		env:      e,
		screen:   build(e, opts.Start, nil),
		spinner:  s,
		help:     help.New(),
		requests: opts.Requests,
	}
}

func build(e *env, r Route, codes []string) screen {
	switch r.Kind {
	case RouteStandings:
		return newStandingsView(e, r.Code, codes)
	case RouteTeams:
		return newTeamsView(e, r.Code, codes)
	default:
		return newHomeView(e)
	}
}

// Route is the route currently mounted.
func (a App) Route() Route { return a.screen.route() }

// Init mounts the first screen.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.screen.mount())
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case NavigateMsg:
		return a.navigate(msg.Route, msg.Codes)
	}

	return a, a.screen.update(msg)
}

// handleKeyMsg processes keyboard input. A screen that is capturing text gets
// every key except ctrl+c.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.screen.capturing() {
		return a, a.screen.update(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		return a, nil
	case key.Matches(msg, keys.Debug):
		if a.requests != nil {
			a.debug = !a.debug
		}
		return a, nil
	case key.Matches(msg, keys.Back):
		if a.screen.route().Kind != RouteHome {
			return a.navigate(Home, nil)
		}
		return a, nil
	}
	return a, a.screen.update(msg)
}

// navigate unmounts the current screen and mounts r. Results still in flight
// for the old screen are dropped by its detached controllers.
func (a App) navigate(r Route, codes []string) (tea.Model, tea.Cmd) {
	logging.Debug("navigate", "from", a.screen.route().Path(), "to", r.Path())
	a.screen.detach()
	a.screen = build(a.env, r, codes)
	return a, a.screen.mount()
}

// View renders the App.
func (a App) View() string {
	header := Header.Render("touchline") + " " + Muted.Render(a.screen.route().Path())
	var body string
	if a.debug {
		body = debugOverlay(a.requests, a.env.now(), a.width, a.height)
	} else {
		body = a.screen.render(a.width, a.spinner.View())
	}

	global := []key.Binding{keys.Help}
	if a.requests != nil {
		global = append(global, keys.Debug)
	}
	var hints string
	if a.showHelp {
		hints = a.help.FullHelpView([][]key.Binding{a.screen.help(), global})
	} else {
		hints = a.help.ShortHelpView(append(a.screen.help(), global...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, HelpStyle.Render(hints))
}
