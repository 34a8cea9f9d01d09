package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/columns"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect users",
}

var usersListOpts listOptions

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users with their vehicles",
	Long: `List users with their vehicles.

Columns: user, email, phone, vehicles.
Filterable: user (name), email, phone, vehicles (any vehicle title).`,
	Args: cobra.NoArgs,
	RunE: runUsersList,
}

func init() {
	usersListOpts.register(usersListCmd)
	usersCmd.AddCommand(usersListCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersList(cmd *cobra.Command, _ []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}
	users, err := userService.ListDetailed(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	return printList(cmd, &usersListOpts, columns.Users(), users)
}
