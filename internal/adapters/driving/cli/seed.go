package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/cli/output"
)

var (
	seedCount int
	seedValue uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo users, vehicles and subscriptions",
	Long: `Generate demo data: each user gets one vehicle with an active basic
monthly subscription that started in the past and ends in the future.

The same --seed always generates the same data. Without --count the
seed.count setting is used.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 0, "number of users to generate (default: seed.count setting)")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 0, "random seed (default: time based)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if seeder == nil {
		return errors.New("seeder not configured")
	}

	count := seedCount
	if count <= 0 && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			count = settings.Seed.Count
		}
	}
	if count <= 0 {
		return errors.New("--count must be positive")
	}

	seed := seedValue
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	result, err := seeder.Seed(cmd.Context(), count, seed)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}
	if output.IsStructured(p.Format()) {
		return p.Print(result, output.Table{})
	}
	cmd.Printf("Seeded %d users, %d vehicles and %d subscriptions (seed %d).\n",
		result.Users, result.Vehicles, result.Subscriptions, seed)
	return nil
}
