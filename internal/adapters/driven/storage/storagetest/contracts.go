// Package storagetest holds behaviour checks shared by every fleet store
// implementation. Each adapter's tests run them against its own backend.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driven"
)

// Stores groups the three fleet stores of one backend.
type Stores struct {
	Users         driven.UserStore
	Vehicles      driven.VehicleStore
	Subscriptions driven.SubscriptionStore
}

// Factory opens a fresh, empty backend. The cleanup func may be nil.
type Factory func(t *testing.T) (Stores, func())

var epoch = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

// RunFleetStores exercises the store contract against a backend.
func RunFleetStores(t *testing.T, newStores Factory) {
	t.Helper()

	t.Run("users", func(t *testing.T) { runUsers(t, open(t, newStores)) })
	t.Run("vehicles", func(t *testing.T) { runVehicles(t, open(t, newStores)) })
	t.Run("subscriptions", func(t *testing.T) { runSubscriptions(t, open(t, newStores)) })
}

func open(t *testing.T, newStores Factory) Stores {
	t.Helper()
	stores, cleanup := newStores(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}
	return stores
}

func runUsers(t *testing.T, s Stores) {
	ctx := context.Background()

	_, err := s.Users.Get(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Users.Save(ctx, domain.User{ID: "u-b", FullName: "Brook", Role: domain.RoleAdmin, CreatedAt: epoch}))
	require.NoError(t, s.Users.Save(ctx, domain.User{ID: "u-a", FullName: "Alex", CreatedAt: epoch}))

	list, err := s.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alex", list[0].FullName)
	assert.Equal(t, domain.RoleAdmin, list[1].Role)

	require.NoError(t, s.Users.Save(ctx, domain.User{ID: "u-a", FullName: "Alexis", CreatedAt: epoch}))
	got, err := s.Users.Get(ctx, "u-a")
	require.NoError(t, err)
	assert.Equal(t, "Alexis", got.FullName)

	require.NoError(t, s.Users.Delete(ctx, "u-b"))
	list, err = s.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func runVehicles(t *testing.T, s Stores) {
	ctx := context.Background()
	require.NoError(t, s.Users.Save(ctx, domain.User{ID: "u1", FullName: "One", CreatedAt: epoch}))
	require.NoError(t, s.Users.Save(ctx, domain.User{ID: "u2", FullName: "Two", CreatedAt: epoch}))

	require.NoError(t, s.Vehicles.Save(ctx, domain.Vehicle{
		ID: "v1", Make: "Toyota", Model: "Corolla", Year: 2019, LicensePlate: "ABC-1234", Color: "Red", UserID: "u1",
	}))
	require.NoError(t, s.Vehicles.Save(ctx, domain.Vehicle{
		ID: "v2", Make: "Audi", Model: "A4", Year: 2015, LicensePlate: "AUD-1", UserID: "u1",
	}))
	require.NoError(t, s.Vehicles.Save(ctx, domain.Vehicle{
		ID: "v3", Make: "Kia", Model: "Rio", Year: 2020, LicensePlate: "KIA-9", UserID: "u2",
	}))

	got, err := s.Vehicles.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "2019 Toyota Corolla (ABC-1234)", got.Title())
	assert.Equal(t, "Red", got.Color)

	owned, err := s.Vehicles.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "v2", owned[0].ID)

	all, err := s.Vehicles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, s.Vehicles.Delete(ctx, "v3"))
	_, err = s.Vehicles.Get(ctx, "v3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func runSubscriptions(t *testing.T, s Stores) {
	ctx := context.Background()
	require.NoError(t, s.Users.Save(ctx, domain.User{ID: "u1", FullName: "One", CreatedAt: epoch}))
	require.NoError(t, s.Vehicles.Save(ctx, domain.Vehicle{
		ID: "v1", Make: "Toyota", Model: "Corolla", Year: 2019, LicensePlate: "P1", UserID: "u1",
	}))
	require.NoError(t, s.Vehicles.Save(ctx, domain.Vehicle{
		ID: "v2", Make: "Ford", Model: "Focus", Year: 2021, LicensePlate: "P2", UserID: "u1",
	}))

	sub := func(id, vehicleID string, offset int, status domain.SubscriptionStatus) domain.Subscription {
		start := epoch.AddDate(0, offset, 0)
		return domain.Subscription{
			ID: id, VehicleID: vehicleID, Type: domain.PlanBasic, Status: status,
			Interval: domain.IntervalMonthly, StartDate: start, EndDate: start.AddDate(0, 1, 0),
		}
	}
	require.NoError(t, s.Subscriptions.Save(ctx, sub("s3", "v1", 3, domain.StatusActive)))
	require.NoError(t, s.Subscriptions.Save(ctx, sub("s1", "v1", 1, domain.StatusCancelled)))
	require.NoError(t, s.Subscriptions.Save(ctx, sub("s2", "v2", 2, domain.StatusOverdue)))

	all, err := s.Subscriptions.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"s1", "s2", "s3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	forV1, err := s.Subscriptions.ListByVehicle(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, forV1, 2)
	assert.Equal(t, "s3", forV1[1].ID)

	updated := sub("s2", "v2", 2, domain.StatusTransferred)
	require.NoError(t, s.Subscriptions.Save(ctx, updated))
	got, err := s.Subscriptions.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTransferred, got.Status)
	assert.True(t, updated.StartDate.Equal(got.StartDate))

	require.NoError(t, s.Subscriptions.Delete(ctx, "s2"))
	_, err = s.Subscriptions.Get(ctx, "s2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
