package ui

import "github.com/charmbracelet/bubbles/key"

// Key bindings
var keys = struct {
	Quit     key.Binding
	Help     key.Binding
	Back     key.Binding
	Reload   key.Binding
	Focus    key.Binding
	FocusRev key.Binding
	More     key.Binding
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Teams    key.Binding
	Prev     key.Binding
	Next     key.Binding
	Filter   key.Binding
	Accept   key.Binding
	Debug    key.Binding
}{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
	FocusRev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev panel")),
	More:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "more/less")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:     key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter/s", "standings")),
	Teams:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "teams")),
	Prev:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev competition")),
	Next:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next competition")),
	Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Accept:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Debug:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "requests")),
}

func homeHelp() []key.Binding {
	return []key.Binding{keys.Focus, keys.More, keys.Up, keys.Down, keys.Open, keys.Teams, keys.Reload, keys.Quit}
}

func standingsHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Prev, keys.Next, keys.Reload, keys.Back, keys.Quit}
}

func teamsHelp() []key.Binding {
	return []key.Binding{keys.Filter, keys.Prev, keys.Next, keys.Reload, keys.Back, keys.Quit}
}
