// Package menu provides the main navigation menu view for the console.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label string
	// Path is the link path opened when the item is chosen.
	Path string
	Quit bool // If true, selecting this item quits the app
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Subscriptions", Path: "/subscriptions"},
			{Label: "Users", Path: "/users"},
			{Label: "Vehicles", Path: "/vehicles"},
			{Label: "New subscription", Path: "/subscriptions/new"},
			{Label: "Settings", Path: "/settings"},
			{Label: "Help", Path: "/help"},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			return v, v.choose(v.items[v.selected])

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	path := item.Path
	return func() tea.Msg {
		return messages.Navigate{Path: path}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Fleetdesk"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Vehicle subscription console"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}
		b.WriteString(cursor + style.Render(item.Label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}
