package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// fleet bundles in-memory stores with a small, known data set.
type fleet struct {
	users    *memory.UserStore
	vehicles *memory.VehicleStore
	subs     *memory.SubscriptionStore
}

var testStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func newFleet(t *testing.T) *fleet {
	t.Helper()
	f := &fleet{
		users:    memory.NewUserStore(),
		vehicles: memory.NewVehicleStore(),
		subs:     memory.NewSubscriptionStore(),
	}
	ctx := context.Background()

	require.NoError(t, f.users.Save(ctx, domain.User{ID: "u1", FullName: "Ada Lovelace", Email: "ada@example.com"}))
	require.NoError(t, f.users.Save(ctx, domain.User{ID: "u2", FullName: "Grace Hopper", Email: "grace@example.com"}))

	require.NoError(t, f.vehicles.Save(ctx, domain.Vehicle{
		ID: "v1", Make: "Toyota", Model: "Corolla", Year: 2019, LicensePlate: "ABC-1234", UserID: "u1",
	}))
	require.NoError(t, f.vehicles.Save(ctx, domain.Vehicle{
		ID: "v2", Make: "Ford", Model: "Focus", Year: 2021, LicensePlate: "FF-21", UserID: "u1",
	}))
	require.NoError(t, f.vehicles.Save(ctx, domain.Vehicle{
		ID: "v3", Make: "Volvo", Model: "XC40", Year: 2022, LicensePlate: "VOL-3", UserID: "u2",
	}))

	require.NoError(t, f.subs.Save(ctx, domain.Subscription{
		ID: "s1", VehicleID: "v1", Type: domain.PlanBasic, Status: domain.StatusActive,
		Interval: domain.IntervalMonthly, StartDate: testStart, EndDate: testStart.AddDate(0, 1, 0),
	}))
	require.NoError(t, f.subs.Save(ctx, domain.Subscription{
		ID: "s2", VehicleID: "v2", Type: domain.PlanPremium, Status: domain.StatusOverdue,
		Interval: domain.IntervalYearly, StartDate: testStart.AddDate(0, 1, 0), EndDate: testStart.AddDate(1, 1, 0),
	}))
	require.NoError(t, f.subs.Save(ctx, domain.Subscription{
		ID: "s3", VehicleID: "v3", Type: domain.PlanBasic, Status: domain.StatusCancelled,
		Interval: domain.IntervalMonthly, StartDate: testStart.AddDate(0, 2, 0), EndDate: testStart.AddDate(0, 3, 0),
	}))
	return f
}
