package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/cli/output"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

var configOnly = map[string]string{annotationConfigOnly: "true"}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.fleetdesk/config.toml.

Keys:
  storage.driver        memory | sqlite | postgres
  storage.data_dir      directory of the SQLite database
  storage.postgres_dsn  connection string for the postgres driver
  seed.count            users generated by 'fleetdesk seed'
  tui.live_reload       reload console tables when the database changes`,
	Annotations: configOnly,
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: configOnly,
	RunE:        runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:         "set [key] [value]",
	Short:       "Change a setting",
	Args:        cobra.ExactArgs(2),
	Annotations: configOnly,
	RunE:        runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingsValues flattens settings into config keys.
func settingsValues(s *domain.AppSettings) map[string]any {
	return map[string]any{
		"storage.driver":       s.Storage.Driver.String(),
		"storage.data_dir":     s.Storage.DataDir,
		"storage.postgres_dsn": maskDSN(s.Storage.PostgresDSN),
		"seed.count":           s.Seed.Count,
		"tui.live_reload":      s.TUI.LiveReload,
	}
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	values := settingsValues(settings)
	table := output.Table{Headers: []string{"KEY", "VALUE"}}
	for _, key := range settingsService.Keys() {
		table.Rows = append(table.Rows, []string{key, fmt.Sprint(values[key])})
	}

	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}
	if err := p.Print(values, table); err != nil {
		return err
	}

	if err := settingsService.Validate(); err != nil {
		cmd.PrintErrf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s.\n", args[0])
	return nil
}

// maskDSN hides the password of a postgres connection string.
func maskDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}
