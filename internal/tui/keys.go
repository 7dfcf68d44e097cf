package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mmcdole/filmfusion/internal/tui/components"
)

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Screens
	Home      key.Binding
	Movies    key.Binding
	Favorites key.Binding
	NextTab   key.Binding

	// Browsing
	Open     key.Binding
	Search   key.Binding
	Sort     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Refresh  key.Binding

	// Details
	Favorite key.Binding
	Poster   key.Binding
	Escape   key.Binding

	// Account
	Login  key.Binding
	Signup key.Binding

	// Actions
	Quit key.Binding
	Help key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Movies: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "movies"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "favorites"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next screen"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "prev page"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Poster: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open poster"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log in/out"),
		),
		Signup: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "sign up"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Sort, k.Open, k.Login, k.Help, k.Quit}
}

// FullHelp returns the bindings shown on the help screen, one column per group
func (k KeyMap) FullHelp() [][]key.Binding {
	g := components.DefaultGridKeyMap()
	return [][]key.Binding{
		{k.Home, k.Movies, k.Favorites, k.NextTab},
		{g.Up, g.Down, g.Left, g.Right, g.Home, g.End, k.Open},
		{k.Search, k.Sort, k.NextPage, k.PrevPage, k.Refresh},
		{k.Favorite, k.Poster, k.Escape, k.Login, k.Signup, k.Help, k.Quit},
	}
}

// Keys is the global keymap instance
var Keys = DefaultKeyMap()
