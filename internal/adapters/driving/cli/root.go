// Package cli provides the fleetdesk command line. It is a driving adapter:
// commands call the core through driving ports injected at startup.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/cli/output"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driving"
	"github.com/custodia-labs/fleetdesk/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Command annotations consulted before services are built.
const (
	// annotationNoServices marks commands that run without storage.
	annotationNoServices = "fleetdesk/no-services"
	// annotationConfigOnly marks commands that only need settings.
	annotationConfigOnly = "fleetdesk/config-only"
	// annotationWatch marks commands that want live reload notifications.
	annotationWatch = "fleetdesk/watch"
)

// Persistent flags.
var (
	configDir    string
	verbose      bool
	outputFormat string
	outputQuery  string
)

// Services injected by SetServices.
var (
	userService         driving.UserService
	vehicleService      driving.VehicleService
	subscriptionService driving.SubscriptionService
	settingsService     driving.SettingsService
	seeder              driving.Seeder
	changes             <-chan struct{}
	closeServices       func() error
)

// Services bundles the driving ports used by commands.
type Services struct {
	Users         driving.UserService
	Vehicles      driving.VehicleService
	Subscriptions driving.SubscriptionService
	Settings      driving.SettingsService
	Seeder        driving.Seeder

	// Changes delivers live reload notifications. Nil when disabled.
	Changes <-chan struct{}

	// Close releases storage connections and watchers. Optional.
	Close func() error
}

// Options tells a Bootstrap what the running command needs.
type Options struct {
	// ConfigDir overrides ~/.fleetdesk.
	ConfigDir string

	// ConfigOnly is set when the command only reads or writes settings,
	// so storage must not be opened.
	ConfigOnly bool

	// Watch asks for live reload notifications.
	Watch bool
}

// Bootstrap builds services once flags are parsed.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var bootstrap Bootstrap

// SetBootstrap registers the function that builds services before a
// command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects services directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	userService = s.Users
	vehicleService = s.Vehicles
	subscriptionService = s.Subscriptions
	settingsService = s.Settings
	seeder = s.Seeder
	changes = s.Changes
	closeServices = s.Close
}

var rootCmd = &cobra.Command{
	Use:   "fleetdesk",
	Short: "Manage vehicle subscriptions from the terminal",
	Long: `fleetdesk is a terminal console for a vehicle subscription business.

Browse users, vehicles and subscriptions in sortable, filterable tables,
create and edit subscriptions, or script the same views from the command
line with --output json and --query.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.fleetdesk)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&outputFormat, "output", "o", "", "output format: text|table|json|ndjson|yaml (default table on a terminal, text otherwise)")
	flags.StringVarP(&outputQuery, "query", "q", "", "jq expression applied to json, ndjson or yaml output")
}

// Execute runs the root command and releases the services it started,
// whether or not the command succeeded.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := teardown(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing storage: %w", closeErr)
	}
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil || cmd.Annotations[annotationNoServices] == "true" {
		return nil
	}

	opts := Options{
		ConfigDir:  configDir,
		ConfigOnly: cmd.Annotations[annotationConfigOnly] == "true",
		Watch:      cmd.Annotations[annotationWatch] == "true",
	}
	logger.Debug("cli: bootstrapping %s (config only: %t, watch: %t)", cmd.Name(), opts.ConfigOnly, opts.Watch)

	s, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("starting fleetdesk: %w", err)
	}
	SetServices(s)
	return nil
}

func teardown() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// newPrinter builds a printer from the persistent output flags.
func newPrinter(cmd *cobra.Command) (*output.Printer, error) {
	format, err := output.ParseFormat(outputFormat, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(cmd.OutOrStdout(), format, outputQuery), nil
}
