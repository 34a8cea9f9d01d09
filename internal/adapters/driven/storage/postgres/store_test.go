package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/storage/storagetest"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// dsnEnv names a disposable database used by these tests.
const dsnEnv = "FLEETDESK_TEST_POSTGRES_DSN"

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s not set", dsnEnv)
	}
	ctx := context.Background()
	store, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	_, err = store.pool.Exec(ctx, "TRUNCATE users, vehicles, subscriptions CASCADE")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStore_EmptyDSN(t *testing.T) {
	_, err := NewStore(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContract_PostgresStores(t *testing.T) {
	storagetest.RunFleetStores(t, func(t *testing.T) (storagetest.Stores, func()) {
		store := openTestStore(t)
		return storagetest.Stores{
			Users:         store.UserStore(),
			Vehicles:      store.VehicleStore(),
			Subscriptions: store.SubscriptionStore(),
		}, nil
	})
}

func TestVehicleStore_Save_UnknownOwner(t *testing.T) {
	store := openTestStore(t)

	err := store.VehicleStore().Save(context.Background(), domain.Vehicle{
		ID: "v1", Make: "Kia", Model: "Rio", Year: 2020, LicensePlate: "K", UserID: "ghost",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
