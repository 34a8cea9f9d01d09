// Package help renders the keybinding reference.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
)

// View lists every keybinding grouped by context.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model
	width  int
	height int
}

// NewView creates a new help view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	h := help.New()
	h.ShowAll = true
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		help:   h,
		width:  80,
		height: 24,
	}
}

// Init implements the view lifecycle.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		k := msg.String()
		if keymap.Matches(k, v.keymap.Back) || keymap.Matches(k, v.keymap.Help) {
			return v, func() tea.Msg { return messages.Navigate{Path: "/"} }
		}
	}
	return v, nil
}

// View renders the help view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(v.help.View(v.keymap))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Tables: the filter applies as you type, enter keeps it, esc clears it."))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Typeaheads: type to narrow, ↑/↓ then enter or click to choose."))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width
}
