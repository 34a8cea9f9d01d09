package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/columns"
)

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "Inspect vehicles",
}

var vehiclesListOpts listOptions

var vehiclesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vehicles with their owner and subscription status",
	Long: `List vehicles with their owner and subscription status.

Columns: vehicle, plate, color, user, subscriptionStatus.
Sort by subscriptionStatus to order active < transferred < overdue < cancelled.`,
	Args: cobra.NoArgs,
	RunE: runVehiclesList,
}

func init() {
	vehiclesListOpts.register(vehiclesListCmd)
	vehiclesCmd.AddCommand(vehiclesListCmd)
	rootCmd.AddCommand(vehiclesCmd)
}

func runVehiclesList(cmd *cobra.Command, _ []string) error {
	if vehicleService == nil {
		return errors.New("vehicle service not configured")
	}
	vehicles, err := vehicleService.ListDetailed(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list vehicles: %w", err)
	}
	return printList(cmd, &vehiclesListOpts, columns.Vehicles(), vehicles)
}
