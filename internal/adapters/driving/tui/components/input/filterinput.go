// Package input provides text input components for the console.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
)

// FilterInput is the one-line input used for table filters. It starts
// blurred; tables focus it on "/" or "f".
type FilterInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewFilterInput creates a new filter input component.
func NewFilterInput(s *styles.Styles) *FilterInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.CharLimit = 128
	ti.Width = 40

	return &FilterInput{
		textinput: ti,
		styles:    s,
		label:     "Search",
		width:     50,
	}
}

// Init initialises the filter input.
func (f *FilterInput) Init() tea.Cmd {
	return nil
}

// Update handles input messages.
func (f *FilterInput) Update(msg tea.Msg) (*FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and input.
func (f *FilterInput) View() string {
	label := f.styles.Title.Render(f.label + ": ")
	style := f.styles.InputField
	if f.textinput.Focused() {
		style = f.styles.FocusedInput
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, style.Render(f.textinput.View()))
}

// SetLabel sets the text shown before the input, such as "Filter user".
func (f *FilterInput) SetLabel(label string) {
	f.label = label
}

// Label returns the current label.
func (f *FilterInput) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *FilterInput) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *FilterInput) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *FilterInput) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *FilterInput) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *FilterInput) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *FilterInput) SetWidth(width int) {
	f.width = width
	// label, border and padding
	inputWidth := width - lipgloss.Width(f.label) - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *FilterInput) Width() int {
	return f.width
}

// Reset clears the input.
func (f *FilterInput) Reset() {
	f.textinput.Reset()
}
