// Package keymap defines keybindings for the console.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the console.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list or table.
	Up key.Binding

	// Down navigates down in a list or table.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Search focuses the global table filter.
	Search key.Binding

	// Filter cycles the per-column filter target.
	Filter key.Binding

	// Sort cycles the sort column.
	Sort key.Binding

	// Reverse toggles the sort direction.
	Reverse key.Binding

	// Detail toggles the detail card of the highlighted row.
	Detail key.Binding

	// Actions opens the row action menu.
	Actions key.Binding

	// Follow opens the user linked from the highlighted row.
	Follow key.Binding

	// Reload reloads the table from storage.
	Reload key.Binding

	// New opens the subscription form.
	New key.Binding

	// Save submits a form.
	Save key.Binding

	// NextField moves focus to the next form field.
	NextField key.Binding

	// PrevField moves focus to the previous form field.
	PrevField key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter column"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "reverse"),
		),
		Detail: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "details"),
		),
		Actions: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "actions"),
		),
		Follow: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "open user"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new subscription"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// TableHelp returns keybindings for table views.
func (k *KeyMap) TableHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.Sort, k.Reverse, k.Detail, k.Actions, k.Follow, k.Reload, k.Back}
}

// FormHelp returns keybindings for the subscription form.
func (k *KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Select, k.Save, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		k.TableHelp(),
		{k.New, k.Save, k.NextField, k.PrevField},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
