package help

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
)

func TestView_ListsBindings(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(200, 40)

	out := ansi.Strip(v.View())

	for _, want := range []string{"Help", "filter column", "reverse", "open user", "new subscription", "ctrl+s"} {
		assert.Contains(t, out, want)
	}
	assert.Nil(t, v.Init())
}

func TestView_EscGoesToMenu(t *testing.T) {
	v := NewView(nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.Navigate{Path: "/"}, cmd())
}

func TestView_OtherKeysIgnored(t *testing.T) {
	_, cmd := NewView(nil).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	assert.Nil(t, cmd)
}
