package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/services"
)

var testStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// newTestServices returns memory-backed services holding three users, each
// with one vehicle and one subscription (active, overdue, cancelled).
func newTestServices(t *testing.T) *Services {
	t.Helper()
	users := memory.NewUserStore()
	vehicles := memory.NewVehicleStore()
	subs := memory.NewSubscriptionStore()
	ctx := context.Background()

	fixture := []struct {
		user    domain.User
		vehicle domain.Vehicle
		status  domain.SubscriptionStatus
	}{
		{
			domain.User{ID: "u1", FullName: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0101"},
			domain.Vehicle{ID: "v1", Make: "Toyota", Model: "Corolla", Year: 2019, LicensePlate: "ABC-1234", Color: "red"},
			domain.StatusActive,
		},
		{
			domain.User{ID: "u2", FullName: "Grace Hopper", Email: "grace@example.com", Phone: "555-0102"},
			domain.Vehicle{ID: "v2", Make: "Volvo", Model: "XC40", Year: 2022, LicensePlate: "XYZ-9876", Color: "blue"},
			domain.StatusOverdue,
		},
		{
			domain.User{ID: "u3", FullName: "Alan Turing", Email: "alan@example.com", Phone: "555-0103"},
			domain.Vehicle{ID: "v3", Make: "Honda", Model: "Civic", Year: 2020, LicensePlate: "TUR-0001", Color: "grey"},
			domain.StatusCancelled,
		},
	}
	for i, f := range fixture {
		f.vehicle.UserID = f.user.ID
		require.NoError(t, users.Save(ctx, f.user))
		require.NoError(t, vehicles.Save(ctx, f.vehicle))
		require.NoError(t, subs.Save(ctx, domain.Subscription{
			ID:        "s" + string(rune('1'+i)),
			VehicleID: f.vehicle.ID,
			Type:      domain.PlanBasic,
			Status:    f.status,
			Interval:  domain.IntervalMonthly,
			StartDate: testStart,
			EndDate:   testStart.AddDate(0, 1, 0),
		}))
	}

	return &Services{
		Users:         services.NewUserService(users, vehicles, subs),
		Vehicles:      services.NewVehicleService(users, vehicles, subs),
		Subscriptions: services.NewSubscriptionService(users, vehicles, subs),
		Settings:      services.NewSettingsService(memory.NewConfigStore()),
		Seeder:        services.NewSeeder(users, vehicles, subs),
	}
}

// useServices injects s for the duration of the test.
func useServices(t *testing.T, s *Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(resetCLI)
}

// resetCLI restores the package state commands write to.
func resetCLI() {
	SetServices(nil)
	SetBootstrap(nil)
	configDir = ""
	verbose = false
	outputFormat = ""
	outputQuery = ""
	usersListOpts.reset()
	vehiclesListOpts.reset()
	subscriptionsListOpts.reset()
	seedCount = 0
	seedValue = 0
	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	err = Execute(context.Background())
	return out.String(), errOut.String(), err
}
