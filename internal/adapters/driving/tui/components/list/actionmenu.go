// Package list provides list display components for the console.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
)

// Item is one entry of an action menu.
type Item struct {
	ID    string
	Label string
}

// ActionMenu is a small navigable menu, used for per-row table actions.
type ActionMenu struct {
	title    string
	items    []Item
	selected int
	styles   *styles.Styles
}

// NewActionMenu creates a new action menu component.
func NewActionMenu(s *styles.Styles) *ActionMenu {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ActionMenu{styles: s}
}

// Init initialises the menu.
func (a *ActionMenu) Init() tea.Cmd {
	return nil
}

// Update handles menu navigation messages.
func (a *ActionMenu) Update(msg tea.Msg) (*ActionMenu, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			a.MoveUp()
		case "down", "j":
			a.MoveDown()
		}
	}
	return a, nil
}

// View renders the menu.
func (a *ActionMenu) View() string {
	if len(a.items) == 0 {
		return a.styles.Muted.Render("No actions")
	}

	lines := make([]string, 0, len(a.items)+1)
	if a.title != "" {
		lines = append(lines, a.styles.Subtitle.Render(a.title))
	}
	for i, item := range a.items {
		if i == a.selected {
			lines = append(lines, a.styles.Selected.Render("> "+item.Label))
		} else {
			lines = append(lines, a.styles.Normal.Render("  "+item.Label))
		}
	}
	return a.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetItems replaces the menu entries and selects the first one.
func (a *ActionMenu) SetItems(title string, items []Item) {
	a.title = title
	a.items = items
	a.selected = 0
}

// Items returns the menu entries.
func (a *ActionMenu) Items() []Item {
	return a.items
}

// Selected returns the index of the selected entry.
func (a *ActionMenu) Selected() int {
	return a.selected
}

// SelectedItem returns the selected entry, or false when the menu is empty.
func (a *ActionMenu) SelectedItem() (Item, bool) {
	if a.selected < 0 || a.selected >= len(a.items) {
		return Item{}, false
	}
	return a.items[a.selected], true
}

// MoveUp moves selection up.
func (a *ActionMenu) MoveUp() {
	if a.selected > 0 {
		a.selected--
	}
}

// MoveDown moves selection down.
func (a *ActionMenu) MoveDown() {
	if a.selected < len(a.items)-1 {
		a.selected++
	}
}
