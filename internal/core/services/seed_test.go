package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

func newTestSeeder() (*Seeder, *memory.UserStore, *memory.VehicleStore, *memory.SubscriptionStore) {
	users := memory.NewUserStore()
	vehicles := memory.NewVehicleStore()
	subs := memory.NewSubscriptionStore()
	seeder := NewSeeder(users, vehicles, subs)
	seeder.now = func() time.Time { return testStart }
	return seeder, users, vehicles, subs
}

func TestSeeder_Seed_Counts(t *testing.T) {
	seeder, users, vehicles, subs := newTestSeeder()
	ctx := context.Background()

	result, err := seeder.Seed(ctx, 5, 42)

	require.NoError(t, err)
	assert.Equal(t, 5, result.Users)
	assert.Equal(t, 5, result.Vehicles)
	assert.Equal(t, 5, result.Subscriptions)

	allUsers, _ := users.List(ctx)
	allVehicles, _ := vehicles.List(ctx)
	allSubs, _ := subs.List(ctx)
	assert.Len(t, allUsers, 5)
	assert.Len(t, allVehicles, 5)
	assert.Len(t, allSubs, 5)
}

func TestSeeder_Seed_Shape(t *testing.T) {
	seeder, users, vehicles, subs := newTestSeeder()
	ctx := context.Background()

	_, err := seeder.Seed(ctx, 3, 7)
	require.NoError(t, err)

	allSubs, _ := subs.List(ctx)
	for _, sub := range allSubs {
		assert.Equal(t, domain.StatusActive, sub.Status)
		assert.Equal(t, domain.PlanBasic, sub.Type)
		assert.Equal(t, domain.IntervalMonthly, sub.Interval)
		assert.False(t, sub.StartDate.After(testStart), "start date in the past")
		assert.False(t, sub.EndDate.Before(testStart), "end date in the future")

		vehicle, err := vehicles.Get(ctx, sub.VehicleID)
		require.NoError(t, err)
		_, err = users.Get(ctx, vehicle.UserID)
		require.NoError(t, err)
		assert.NotEmpty(t, vehicle.Title())
	}
}

func TestSeeder_Seed_Deterministic(t *testing.T) {
	first, users1, _, _ := newTestSeeder()
	second, users2, _, _ := newTestSeeder()
	ctx := context.Background()

	_, err := first.Seed(ctx, 4, 99)
	require.NoError(t, err)
	_, err = second.Seed(ctx, 4, 99)
	require.NoError(t, err)

	a, _ := users1.List(ctx)
	b, _ := users2.List(ctx)
	assert.Equal(t, a, b)
}

func TestSeeder_Seed_InvalidCount(t *testing.T) {
	seeder, _, _, _ := newTestSeeder()

	_, err := seeder.Seed(context.Background(), 0, 1)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSeeder_Seed_Cancelled(t *testing.T) {
	seeder, _, _, _ := newTestSeeder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := seeder.Seed(ctx, 3, 1)

	assert.ErrorIs(t, err, context.Canceled)
}
