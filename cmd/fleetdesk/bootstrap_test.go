package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/cli"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

func writeConfig(t *testing.T, values map[string]any) string {
	t.Helper()
	dir := t.TempDir()
	store, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	for k, v := range values {
		require.NoError(t, store.Set(k, v))
	}
	return dir
}

func TestBootstrap_ConfigOnly(t *testing.T) {
	dir := writeConfig(t, map[string]any{"storage.driver": "postgres"})

	s, err := bootstrap(context.Background(), cli.Options{ConfigDir: dir, ConfigOnly: true})

	require.NoError(t, err)
	assert.NotNil(t, s.Settings)
	assert.Nil(t, s.Users)
	assert.Nil(t, s.Close)
}

func TestBootstrap_Memory(t *testing.T) {
	dir := writeConfig(t, map[string]any{"storage.driver": "memory"})
	ctx := context.Background()

	s, err := bootstrap(ctx, cli.Options{ConfigDir: dir, Watch: true})
	require.NoError(t, err)
	defer func() { assert.NoError(t, s.Close()) }()

	result, err := s.Seeder.Seed(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Users)

	subs, err := s.Subscriptions.ListDetailed(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
	assert.Nil(t, s.Changes)
}

func TestBootstrap_SQLiteWithLiveReload(t *testing.T) {
	dataDir := t.TempDir()
	dir := writeConfig(t, map[string]any{
		"storage.driver":   "sqlite",
		"storage.data_dir": dataDir,
	})

	s, err := bootstrap(context.Background(), cli.Options{ConfigDir: dir, Watch: true})
	require.NoError(t, err)

	assert.NotNil(t, s.Changes)
	_, err = os.Stat(filepath.Join(dataDir, "fleet.db"))
	assert.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestBootstrap_SQLiteLiveReloadOff(t *testing.T) {
	dir := writeConfig(t, map[string]any{
		"storage.driver":   "sqlite",
		"storage.data_dir": t.TempDir(),
		"tui.live_reload":  false,
	})

	s, err := bootstrap(context.Background(), cli.Options{ConfigDir: dir, Watch: true})
	require.NoError(t, err)
	defer s.Close()

	assert.Nil(t, s.Changes)
}

func TestBootstrap_InvalidSettings(t *testing.T) {
	dir := writeConfig(t, map[string]any{"storage.driver": "postgres"})

	_, err := bootstrap(context.Background(), cli.Options{ConfigDir: dir})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
