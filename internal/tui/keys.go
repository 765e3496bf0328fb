package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings of the board screen.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Pane   key.Binding
	Select key.Binding

	// Items
	Add        key.Binding
	Edit       key.Binding
	Toggle     key.Binding
	Detail     key.Binding
	Countdown  key.Binding
	DeleteItem key.Binding

	// Lists
	NewList     key.Binding
	ListOptions key.Binding

	// Search
	Search      key.Binding
	Tags        key.Binding
	ClearSearch key.Binding

	// Forms
	Confirm key.Binding
	Cancel  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Left    key.Binding
	Right   key.Binding
	Remove  key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Pane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Select: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle tag"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add item"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit title"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "toggle done"),
		),
		Detail: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "details"),
		),
		Countdown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete (countdown)"),
		),
		DeleteItem: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete now"),
		),

		NewList: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new list"),
		),
		ListOptions: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "list options"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search title"),
		),
		Tags: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "filter tags"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear search"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-tab", "prev field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next"),
		),
		Remove: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "delete"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Detail, k.Search, k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Pane},
		{k.Add, k.Edit, k.Toggle, k.Detail},
		{k.Countdown, k.DeleteItem},
		{k.NewList, k.ListOptions},
		{k.Search, k.Tags, k.ClearSearch},
		{k.Help, k.Quit},
	}
}
