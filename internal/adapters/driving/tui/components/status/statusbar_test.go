package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.RowCount())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
	assert.Nil(t, bar.Init())
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_View(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Bar)
		want  string
	}{
		{name: "ready", setup: func(*Bar) {}, want: "Ready"},
		{name: "loading", setup: func(b *Bar) { b.SetState(StateLoading) }, want: "Loading..."},
		{
			name: "error with message",
			setup: func(b *Bar) {
				b.SetState(StateError)
				b.SetMessage("boom")
			},
			want: "Error: boom",
		},
		{name: "all rows", setup: func(b *Bar) { b.SetRows(3, 3) }, want: "3 rows"},
		{name: "filtered rows", setup: func(b *Bar) { b.SetRows(1, 3) }, want: "1 of 3 rows"},
		{name: "notice", setup: func(b *Bar) { b.SetNotice("Subscription cancelled") }, want: "Subscription cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(200)
			tt.setup(bar)

			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestStatusBar_TableHints(t *testing.T) {
	bar := NewBar(nil, nil)
	km := keymap.DefaultKeyMap()

	assert.Equal(t, len(km.ShortHelp()), len(bar.Bindings()))

	bar.SetRows(2, 2)
	assert.Equal(t, len(km.TableHelp()), len(bar.Bindings()))
}

func TestStatusBar_Width(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	assert.Equal(t, 120, bar.Width())
	assert.Equal(t, 120, lipgloss.Width(bar.View()))
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetRows(5, 10)
	bar.SetNotice("saved")
	bar.SetMessage("x")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Notice())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 0, bar.RowCount())
}
