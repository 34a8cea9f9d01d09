// Package settings provides the settings view for the console.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driving"
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

var errNoService = errors.New("settings service not available")

// kind controls how a field is edited.
type kind int

const (
	kindChoice kind = iota
	kindText
	kindToggle
)

// field is one editable setting.
type field struct {
	key   string
	label string
	kind  kind
	value func(*domain.AppSettings) string
}

var fields = []field{
	{
		key: "storage.driver", label: "Storage driver", kind: kindChoice,
		value: func(s *domain.AppSettings) string { return s.Storage.Driver.String() },
	},
	{
		key: "storage.data_dir", label: "Data directory", kind: kindText,
		value: func(s *domain.AppSettings) string { return s.Storage.DataDir },
	},
	{
		key: "storage.postgres_dsn", label: "Postgres DSN", kind: kindText,
		value: func(s *domain.AppSettings) string { return s.Storage.PostgresDSN },
	},
	{
		key: "seed.count", label: "Seed users", kind: kindText,
		value: func(s *domain.AppSettings) string { return strconv.Itoa(s.Seed.Count) },
	},
	{
		key: "tui.live_reload", label: "Live reload", kind: kindToggle,
		value: func(s *domain.AppSettings) string { return strconv.FormatBool(s.TUI.LiveReload) },
	},
}

var drivers = []domain.StorageDriver{domain.StorageSQLite, domain.StoragePostgres, domain.StorageMemory}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error

	selected int
	editing  bool
	input    textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	input := textinput.New()
	input.CharLimit = 256

	return &View{
		styles:          s,
		settingsService: settingsService,
		input:           input,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errNoService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) set(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: errNoService}
		}
		return messages.SettingsSaved{Err: v.settingsService.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleKeys(msg)
	}

	return v, nil
}

func (v *View) handleKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg { return messages.Navigate{Path: "/"} }
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(fields)-1 {
			v.selected++
		}
	case keyEnter, " ":
		if v.settings == nil {
			return v, nil
		}
		f := fields[v.selected]
		current := f.value(v.settings)
		switch f.kind {
		case kindChoice:
			return v, v.set(f.key, nextDriver(current))
		case kindToggle:
			return v, v.set(f.key, strconv.FormatBool(current != "true"))
		case kindText:
			v.editing = true
			v.input.SetValue(current)
			v.input.CursorEnd()
			return v, v.input.Focus()
		}
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.stopEditing()
		return v, nil
	case keyEnter:
		value := strings.TrimSpace(v.input.Value())
		v.stopEditing()
		return v, v.set(fields[v.selected].key, value)
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) stopEditing() {
	v.editing = false
	v.input.Blur()
}

func nextDriver(current string) string {
	for i, d := range drivers {
		if d.String() == current {
			return drivers[(i+1)%len(drivers)].String()
		}
	}
	return drivers[0].String()
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	for i, f := range fields {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		value := f.value(v.settings)
		switch {
		case i == v.selected && v.editing:
			value = v.input.View()
		case f.key == "storage.driver":
			value = v.settings.Storage.Driver.Description()
		case value == "":
			value = "(default)"
		}
		line := fmt.Sprintf("%s%-15s %s", indicator, f.label+":", value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Muted.Render("Storage changes apply the next time the console starts."))
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.Width = max(width-30, 20)
	v.ready = true
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.selected = 0
	v.err = nil
	v.stopEditing()
	v.input.SetValue("")
}

// Editing reports whether a text field is being edited.
func (v *View) Editing() bool {
	return v.editing
}
