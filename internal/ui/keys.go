package ui

import "github.com/charmbracelet/bubbles/key"

// browserKeys are the section browser bindings
type browserKeys struct {
	Up      key.Binding
	Down    key.Binding
	Prev    key.Binding
	Next    key.Binding
	First   key.Binding
	Jump    key.Binding
	Search  key.Binding
	Filters key.Binding
	Clear   key.Binding
	Reload  key.Binding
	Detail  key.Binding
	Export  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newBrowserKeys() browserKeys {
	return browserKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Prev:    key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←/p", "prev page")),
		Next:    key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→/n", "next page")),
		First:   key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
		Jump:    key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "go to page")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filters: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		Clear:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Detail:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export page")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k browserKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Search, k.Filters, k.Detail, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k browserKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail},
		{k.Prev, k.Next, k.First, k.Jump},
		{k.Search, k.Filters, k.Clear, k.Reload},
		{k.Export, k.Help, k.Quit},
	}
}
