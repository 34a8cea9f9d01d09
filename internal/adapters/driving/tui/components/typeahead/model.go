package typeahead

import (
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
)

const (
	defaultWidth   = 40
	defaultMaxRows = 6

	// inputHeight is the bordered input box: top border, text, bottom border.
	inputHeight = 3
	// rowsOffset is the first option row below the component origin: the
	// input box plus the dropdown's top border.
	rowsOffset = inputHeight + 1

	selectedMarker = "✓ "
	rowIndent      = "  "
	loadingText    = "Loading…"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// blurMsg delivers the blur scheduled after a selection.
type blurMsg struct {
	id int
}

// ChangedMsg is emitted after the selection of a typeahead changes.
type ChangedMsg struct {
	ID     int
	Option Option
}

// Model is the Bubble Tea component for a typeahead.
type Model struct {
	id      int
	machine *Machine
	input   textinput.Model
	spinner spinner.Model
	styles  *styles.Styles

	emptyMessage string

	// highlight indexes the visible options; -1 until the user navigates.
	highlight int
	offset    int
	maxRows   int
	width     int

	originX int
	originY int
}

// New creates a typeahead from cfg.
func New(s *styles.Styles, cfg Config) *Model {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = cfg.Placeholder
	ti.CharLimit = 256

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Muted

	m := &Model{
		id:           nextID(),
		machine:      NewMachine(cfg),
		input:        ti,
		spinner:      sp,
		styles:       s,
		emptyMessage: cfg.EmptyMessage,
		highlight:    -1,
		maxRows:      defaultMaxRows,
	}
	m.SetWidth(defaultWidth)
	m.syncInput()
	return m
}

// ID returns the identifier carried by this typeahead's messages.
func (m *Model) ID() int {
	return m.id
}

// Init starts the spinner when the typeahead mounts while loading.
func (m *Model) Init() tea.Cmd {
	if m.machine.IsLoading() {
		return m.spinner.Tick
	}
	return nil
}

// Update handles keyboard, mouse, spinner and deferred blur messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case blurMsg:
		if msg.id == m.id && m.machine.BlurPending() {
			m.machine.DeferredBlur()
			m.afterBlur()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.machine.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.machine.IsDisabled() {
		return m, nil
	}

	var cmds []tea.Cmd
	if !m.machine.IsOpen() {
		cmds = append(cmds, m.Focus())
	}

	switch msg.String() {
	case "esc":
		m.Blur()
		return m, nil

	case "enter":
		cmds = append(cmds, m.commit())
		return m, tea.Batch(cmds...)

	case "up":
		m.moveHighlight(-1)
		return m, tea.Batch(cmds...)

	case "down":
		m.moveHighlight(1)
		return m, tea.Batch(cmds...)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if after := m.input.Value(); after != before {
		if m.machine.SetInputText(after) {
			m.highlight = -1
			m.offset = 0
		} else {
			m.input.SetValue(before)
		}
	}
	return m, tea.Batch(cmds...)
}

// commit handles enter: an exact label match wins, otherwise the row the
// user navigated to is selected. Only label matching needs text.
func (m *Model) commit() tea.Cmd {
	if m.machine.InputText() != "" {
		if opt, ok := m.machine.Enter(); ok {
			m.highlight = -1
			return m.changed(opt)
		}
	}
	visible := m.Visible()
	if m.highlight >= 0 && m.highlight < len(visible) {
		return m.SelectOption(visible[m.highlight])
	}
	return nil
}

// SelectOption commits opt as a list-row selection and schedules the blur
// for the next turn of the event loop.
func (m *Model) SelectOption(opt Option) tea.Cmd {
	scheduleBlur := m.machine.Select(opt)
	m.syncInput()

	cmds := []tea.Cmd{m.changed(opt)}
	if scheduleBlur {
		id := m.id
		cmds = append(cmds, func() tea.Msg { return blurMsg{id: id} })
	}
	return tea.Batch(cmds...)
}

func (m *Model) changed(opt Option) tea.Cmd {
	id := m.id
	return func() tea.Msg { return ChangedMsg{ID: id, Option: opt} }
}

func (m *Model) handleMouse(msg tea.MouseMsg) (*Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if opt, ok := m.OptionAt(msg.X, msg.Y); ok {
		return m, m.SelectOption(opt)
	}
	if m.inInput(msg.X, msg.Y) {
		return m, m.Focus()
	}
	if m.machine.IsFocused() || m.machine.IsOpen() {
		m.Blur()
	}
	return m, nil
}

// OptionAt returns the option row under screen position (x, y), if any.
func (m *Model) OptionAt(x, y int) (Option, bool) {
	if !m.machine.IsOpen() || m.machine.IsLoading() {
		return Option{}, false
	}
	if x < m.originX || x >= m.originX+m.width {
		return Option{}, false
	}
	row := y - m.originY - rowsOffset
	window := m.window()
	if row < 0 || row >= len(window) {
		return Option{}, false
	}
	return window[row], true
}

func (m *Model) inInput(x, y int) bool {
	return x >= m.originX && x < m.originX+m.width &&
		y >= m.originY && y < m.originY+inputHeight
}

// Focus opens the option list. It has no effect when disabled.
func (m *Model) Focus() tea.Cmd {
	if !m.machine.Focus() {
		return nil
	}
	cmds := []tea.Cmd{m.input.Focus()}
	if m.machine.IsLoading() {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Blur closes the option list and restores the selected label.
func (m *Model) Blur() {
	m.machine.Blur()
	m.afterBlur()
}

func (m *Model) afterBlur() {
	m.input.Blur()
	m.highlight = -1
	m.offset = 0
	m.syncInput()
}

func (m *Model) syncInput() {
	m.input.SetValue(m.machine.InputText())
	m.input.CursorEnd()
}

func (m *Model) moveHighlight(delta int) {
	visible := m.Visible()
	if len(visible) == 0 || m.machine.IsLoading() {
		m.highlight = -1
		return
	}
	next := m.highlight + delta
	if m.highlight < 0 {
		next = 0
		if delta < 0 {
			next = len(visible) - 1
		}
	}
	if next < 0 {
		next = 0
	}
	if next >= len(visible) {
		next = len(visible) - 1
	}
	m.highlight = next

	if m.highlight < m.offset {
		m.offset = m.highlight
	}
	if m.highlight >= m.offset+m.maxRows {
		m.offset = m.highlight - m.maxRows + 1
	}
}

// Visible returns the options matching the current input text.
func (m *Model) Visible() []Option {
	return filterOptions(m.machine.Options(), m.machine.InputText())
}

// window returns the visible options currently scrolled into view.
func (m *Model) window() []Option {
	visible := m.Visible()
	if m.offset > len(visible) {
		m.offset = 0
	}
	end := m.offset + m.maxRows
	if end > len(visible) {
		end = len(visible)
	}
	return visible[m.offset:end]
}

// View renders the input and, when open, the option list below it.
func (m *Model) View() string {
	inputStyle := m.styles.InputField
	if m.machine.IsFocused() {
		inputStyle = m.styles.FocusedInput
	}
	text := m.input.View()
	if m.machine.IsDisabled() {
		text = m.styles.Muted.Render(m.machine.InputText())
	}
	box := inputStyle.Width(m.width - 2).Render(text)

	switch m.machine.State() {
	case Closed:
		return box
	case OpenLoading:
		return lipgloss.JoinVertical(lipgloss.Left, box,
			m.dropdown(m.spinner.View()+" "+m.styles.Muted.Render(loadingText)))
	}

	window := m.window()
	if len(window) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, box,
			m.dropdown(m.styles.Muted.Render(m.emptyMessage)))
	}

	selected, hasSelected := m.machine.Selected()
	labelWidth := m.width - 4 - ansi.StringWidth(rowIndent)
	lines := make([]string, 0, len(window))
	for i, o := range window {
		prefix := rowIndent
		if hasSelected && o.Value == selected.Value {
			prefix = selectedMarker
		}
		line := prefix + ansi.Truncate(o.Label, labelWidth, "…")
		if m.offset+i == m.highlight {
			line = m.styles.Selected.Render(line)
		} else {
			line = m.styles.Normal.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, box, m.dropdown(strings.Join(lines, "\n")))
}

func (m *Model) dropdown(content string) string {
	return m.styles.Dropdown.Width(m.width - 2).Render(content)
}

// SetOptions replaces the option list and resets navigation.
func (m *Model) SetOptions(options []Option) {
	m.machine.SetOptions(options)
	m.highlight = -1
	m.offset = 0
}

// SetLoading sets whether options are being loaded. Turning loading on
// returns the spinner's first tick.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	was := m.machine.IsLoading()
	m.machine.SetLoading(loading)
	if loading && !was {
		return m.spinner.Tick
	}
	return nil
}

// SetDisabled enables or disables the typeahead.
func (m *Model) SetDisabled(disabled bool) {
	m.machine.SetDisabled(disabled)
	if disabled {
		m.afterBlur()
	}
}

// SetValue replaces the selection without firing the change callback.
func (m *Model) SetValue(value *Option) {
	m.machine.SetValue(value)
	if !m.machine.IsFocused() {
		m.syncInput()
	}
}

// SetWidth sets the outer width of the component.
func (m *Model) SetWidth(width int) {
	if width < 12 {
		width = 12
	}
	m.width = width
	m.input.Width = width - 5
}

// SetOrigin records where the component is drawn on screen so that mouse
// presses can be mapped to option rows.
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// Selected returns the current selection, if any.
func (m *Model) Selected() (Option, bool) {
	return m.machine.Selected()
}

// InputText returns the current input text.
func (m *Model) InputText() string {
	return m.machine.InputText()
}

// State returns the component state.
func (m *Model) State() State {
	return m.machine.State()
}

// Focused reports whether the input has focus.
func (m *Model) Focused() bool {
	return m.machine.IsFocused()
}

// Height returns the number of lines View currently renders.
func (m *Model) Height() int {
	return lipgloss.Height(m.View())
}
