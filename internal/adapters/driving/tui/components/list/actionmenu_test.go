package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{ID: "cancel", Label: "Cancel subscription"},
		{ID: "edit", Label: "Edit subscription"},
		{ID: "delete", Label: "Delete subscription"},
	}
}

func TestNewActionMenu(t *testing.T) {
	menu := NewActionMenu(nil)

	require.NotNil(t, menu)
	assert.NotNil(t, menu.styles)
	assert.Nil(t, menu.Init())
	_, ok := menu.SelectedItem()
	assert.False(t, ok)
}

func TestActionMenu_Navigation(t *testing.T) {
	menu := NewActionMenu(nil)
	menu.SetItems("Actions", testItems())

	menu.MoveUp()
	assert.Equal(t, 0, menu.Selected())

	menu.Update(tea.KeyMsg{Type: tea.KeyDown})
	menu.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	menu.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, menu.Selected())

	menu.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	item, ok := menu.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "edit", item.ID)
}

func TestActionMenu_SetItemsResetsSelection(t *testing.T) {
	menu := NewActionMenu(nil)
	menu.SetItems("Actions", testItems())
	menu.MoveDown()

	menu.SetItems("Other", testItems()[:1])

	assert.Equal(t, 0, menu.Selected())
	assert.Len(t, menu.Items(), 1)
}

func TestActionMenu_View(t *testing.T) {
	menu := NewActionMenu(nil)
	assert.Contains(t, menu.View(), "No actions")

	menu.SetItems("Row actions", testItems())
	view := menu.View()
	assert.Contains(t, view, "Row actions")
	assert.Contains(t, view, "> Cancel subscription")
	assert.Contains(t, view, "  Delete subscription")
}
