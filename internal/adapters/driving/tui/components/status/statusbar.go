// Package status provides status bar components for the console.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
)

// State represents what the active view is doing.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateTable   State = "table"
)

// Bar displays status, row counts and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	notice   string
	rowCount int
	total    int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	var left string
	switch s.state {
	case StateLoading:
		left = s.styles.Muted.Render("Loading...")
	case StateError:
		if s.message != "" {
			left = s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		} else {
			left = s.styles.Error.Render("Error")
		}
	case StateTable:
		if s.rowCount == s.total {
			left = s.styles.Normal.Render(fmt.Sprintf("%d rows", s.rowCount))
		} else {
			left = s.styles.Normal.Render(fmt.Sprintf("%d of %d rows", s.rowCount, s.total))
		}
	default:
		left = s.styles.Muted.Render("Ready")
	}
	if s.notice != "" {
		left += "  " + s.styles.Success.Render(s.notice)
	}
	return left
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateTable {
		bindings = s.keymap.TableHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// Bindings returns the hints shown for the current state.
func (s *Bar) Bindings() []key.Binding {
	if s.state == StateTable {
		return s.keymap.TableHelp()
	}
	return s.keymap.ShortHelp()
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetNotice sets a transient notice such as "Subscription cancelled".
func (s *Bar) SetNotice(notice string) {
	s.notice = notice
}

// Notice returns the current notice.
func (s *Bar) Notice() string {
	return s.notice
}

// SetRows sets the visible and total row counts and switches to the table state.
func (s *Bar) SetRows(visible, total int) {
	s.rowCount = visible
	s.total = total
	s.state = StateTable
}

// RowCount returns the visible row count.
func (s *Bar) RowCount() int {
	return s.rowCount
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.notice = ""
	s.rowCount = 0
	s.total = 0
}
