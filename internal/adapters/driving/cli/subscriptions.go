package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/columns"
)

var subscriptionsCmd = &cobra.Command{
	Use:     "subscriptions",
	Aliases: []string{"subs"},
	Short:   "Inspect and manage subscriptions",
}

var subscriptionsListOpts listOptions

var subscriptionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscriptions",
	Long: `List subscriptions with their vehicle and user.

Columns: vehicle, user, subscriptionStatus, plan, interval, start.
Examples:
  fleetdesk subscriptions list --filter vehicle=corolla
  fleetdesk subscriptions list --sort subscriptionStatus --desc
  fleetdesk subscriptions list -o json -q '.[] | select(.status == "overdue") | .id'`,
	Args: cobra.NoArgs,
	RunE: runSubscriptionsList,
}

var subscriptionsCancelCmd = &cobra.Command{
	Use:   "cancel [subscription-id]",
	Short: "Cancel a subscription",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubscriptionsCancel,
}

var subscriptionsDeleteCmd = &cobra.Command{
	Use:   "delete [subscription-id]",
	Short: "Delete a subscription",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubscriptionsDelete,
}

func init() {
	subscriptionsListOpts.register(subscriptionsListCmd)
	subscriptionsCmd.AddCommand(subscriptionsListCmd)
	subscriptionsCmd.AddCommand(subscriptionsCancelCmd)
	subscriptionsCmd.AddCommand(subscriptionsDeleteCmd)
	rootCmd.AddCommand(subscriptionsCmd)
}

func runSubscriptionsList(cmd *cobra.Command, _ []string) error {
	if subscriptionService == nil {
		return errors.New("subscription service not configured")
	}
	subs, err := subscriptionService.ListDetailed(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return printList(cmd, &subscriptionsListOpts, columns.Subscriptions(columns.SubscriptionActions{}), subs)
}

func runSubscriptionsCancel(cmd *cobra.Command, args []string) error {
	if subscriptionService == nil {
		return errors.New("subscription service not configured")
	}
	if err := subscriptionService.Cancel(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	cmd.Printf("Subscription %s cancelled.\n", args[0])
	return nil
}

func runSubscriptionsDelete(cmd *cobra.Command, args []string) error {
	if subscriptionService == nil {
		return errors.New("subscription service not configured")
	}
	if err := subscriptionService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	cmd.Printf("Subscription %s deleted.\n", args[0])
	return nil
}
