package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
)

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.Len(t, view.Items(), 7)
	assert.Equal(t, 0, view.Selected())
	assert.Nil(t, view.Init())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_ItemPathsAreRoutes(t *testing.T) {
	for _, item := range NewView(nil).Items() {
		if item.Quit {
			continue
		}
		_, ok := messages.ParseRoute(item.Path)
		assert.True(t, ok, item.Path)
	}
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
}

func TestView_Update_Navigate(t *testing.T) {
	view := NewView(nil)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	j := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	for range 10 {
		view.Update(j)
	}
	assert.Equal(t, len(view.Items())-1, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, len(view.Items())-2, view.Selected())

	k := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	for range 10 {
		view.Update(k)
	}
	assert.Equal(t, 0, view.Selected())
}

func TestView_Update_EnterNavigates(t *testing.T) {
	view := NewView(nil)
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.Navigate{Path: "/users"}, cmd())
}

func TestView_Update_EnterQuit(t *testing.T) {
	view := NewView(nil)
	for range len(view.Items()) {
		view.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_Update_Q(t *testing.T) {
	_, cmd := NewView(nil).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_View(t *testing.T) {
	view := NewView(nil)
	assert.Equal(t, "Initialising...", view.View())

	view.SetDimensions(80, 24)
	out := view.View()

	assert.Contains(t, out, "Fleetdesk")
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "Subscriptions")
	assert.Contains(t, out, "New subscription")
	assert.Contains(t, out, "Quit")
}
