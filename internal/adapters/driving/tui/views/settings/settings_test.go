package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockSettingsService) Keys() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockSettingsService) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	args := m.Called()
	return args.Get(0).(domain.AppSettings)
}

func createTestSettings() *domain.AppSettings {
	s := domain.DefaultAppSettings()
	return &s
}

func loaded(t *testing.T, svc *MockSettingsService) *View {
	t.Helper()
	v := NewView(nil, svc)
	v.SetDimensions(100, 40)
	v.Update(v.Init()())
	require.NotNil(t, v.settings)
	return v
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_LoadsSettings(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(createTestSettings(), nil)
	svc.On("Validate").Return(nil)

	v := loaded(t, svc)
	out := v.View()

	assert.Contains(t, out, "SQLite (local file)")
	assert.Contains(t, out, "25")
	assert.Contains(t, out, "Configuration is valid")
	svc.AssertExpectations(t)
}

func TestView_LoadError(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(nil, errors.New("config unreadable"))

	v := NewView(nil, svc)
	v.Update(v.Init()())

	assert.Contains(t, v.View(), "config unreadable")
	assert.Contains(t, v.View(), "Loading settings...")
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil)

	msg := v.Init()()

	loadedMsg, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loadedMsg.Err, errNoService)
}

func TestView_EnterCyclesDriver(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(createTestSettings(), nil)
	svc.On("Set", "storage.driver", "postgres").Return(nil).Once()

	v := loaded(t, svc)
	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)

	saved := cmd().(messages.SettingsSaved)
	assert.NoError(t, saved.Err)

	_, reload := v.Update(saved)
	assert.NotNil(t, reload)
	svc.AssertExpectations(t)
}

func TestView_ToggleLiveReload(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(createTestSettings(), nil)
	svc.On("Set", "tui.live_reload", "false").Return(nil).Once()

	v := loaded(t, svc)
	for range 4 {
		v.Update(key("down"))
	}
	_, cmd := v.Update(key(" "))
	require.NotNil(t, cmd)
	cmd()

	svc.AssertExpectations(t)
}

func TestView_EditTextField(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(createTestSettings(), nil)
	svc.On("Set", "seed.count", "250").Return(nil).Once()

	v := loaded(t, svc)
	for range 3 {
		v.Update(key("down"))
	}
	v.Update(key("enter"))
	require.True(t, v.Editing())

	v.Update(key("0"))
	_, cmd := v.Update(key("enter"))

	assert.False(t, v.Editing())
	require.NotNil(t, cmd)
	cmd()
	svc.AssertExpectations(t)
}

func TestView_EditCancel(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(createTestSettings(), nil)

	v := loaded(t, svc)
	v.Update(key("down"))
	v.Update(key("enter"))
	require.True(t, v.Editing())

	_, cmd := v.Update(key("esc"))

	assert.Nil(t, cmd)
	assert.False(t, v.Editing())
	svc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestView_SaveErrorShown(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(createTestSettings(), nil)
	svc.On("Validate").Return(nil)

	v := loaded(t, svc)
	_, cmd := v.Update(messages.SettingsSaved{Err: domain.ErrInvalidInput})

	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), "invalid input")
}

func TestView_ValidationWarning(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(createTestSettings(), nil)
	svc.On("Validate").Return(errors.New("storage.postgres_dsn is required"))

	v := loaded(t, svc)

	assert.Contains(t, v.View(), "Warning: storage.postgres_dsn is required")
}

func TestView_EscNavigatesToMenu(t *testing.T) {
	v := NewView(nil, nil)

	_, cmd := v.Update(key("esc"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.Navigate{Path: "/"}, cmd())
}

func TestNextDriver(t *testing.T) {
	assert.Equal(t, "postgres", nextDriver("sqlite"))
	assert.Equal(t, "memory", nextDriver("postgres"))
	assert.Equal(t, "sqlite", nextDriver("memory"))
	assert.Equal(t, "sqlite", nextDriver("bogus"))
}

func TestView_Reset(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(createTestSettings(), nil)

	v := loaded(t, svc)
	v.Update(key("down"))
	v.Update(key("enter"))

	v.Reset()

	assert.False(t, v.Editing())
	assert.Equal(t, 0, v.selected)
}
