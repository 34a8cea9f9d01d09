package cli

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui"
)

func TestTUICmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_WantsLiveReload(t *testing.T) {
	assert.Equal(t, "true", tuiCmd.Annotations[annotationWatch])
}

func TestTUICmd_MissingServices(t *testing.T) {
	t.Cleanup(resetCLI)

	_, _, err := execute(t, "tui")

	assert.ErrorIs(t, err, tui.ErrMissingUserService)
}

func TestTUICmd_RequiresTerminal(t *testing.T) {
	useServices(t, newTestServices(t))

	_, _, err := execute(t, "tui")

	assert.ErrorIs(t, err, errNotTerminal)
}

func TestIsTerminal_NonFile(t *testing.T) {
	require.NotNil(t, isTerminal)
	assert.False(t, isTerminal(io.Discard))
}
