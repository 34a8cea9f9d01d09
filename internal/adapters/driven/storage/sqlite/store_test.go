package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/storage/storagetest"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "fleetdesk-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}
	return store, cleanup
}

var start = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

// seedOwner creates a user and a vehicle to satisfy foreign key constraints.
func seedOwner(t *testing.T, store *Store, userID, vehicleID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.UserStore().Save(ctx, domain.User{
		ID: userID, FullName: "Owner " + userID, Email: userID + "@example.com", CreatedAt: start,
	}))
	require.NoError(t, store.VehicleStore().Save(ctx, domain.Vehicle{
		ID: vehicleID, Make: "Toyota", Model: "Corolla", Year: 2019, LicensePlate: "P-" + vehicleID, UserID: userID,
	}))
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, DatabaseFile, filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	tempDir := t.TempDir()

	first, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(tempDir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUserStore_SaveGetUpdate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	users := store.UserStore()

	user := domain.User{ID: "u1", FullName: "Ada Lovelace", Email: "ada@example.com", Phone: "555", CreatedAt: start}
	require.NoError(t, users.Save(ctx, user))

	got, err := users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, domain.RoleUser, got.Role)
	assert.True(t, start.Equal(got.CreatedAt))

	user.FullName = "Ada King"
	require.NoError(t, users.Save(ctx, user))
	got, err = users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada King", got.FullName)
}

func TestUserStore_Get_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.UserStore().Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserStore_List_OrderedByName(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	users := store.UserStore()

	require.NoError(t, users.Save(ctx, domain.User{ID: "2", FullName: "Zed"}))
	require.NoError(t, users.Save(ctx, domain.User{ID: "1", FullName: "Amy"}))

	list, err := users.List(ctx)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Amy", list[0].FullName)
	assert.Equal(t, "Zed", list[1].FullName)
}

func TestVehicleStore_ListByUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	seedOwner(t, store, "u1", "v1")
	seedOwner(t, store, "u2", "v2")
	require.NoError(t, store.VehicleStore().Save(ctx, domain.Vehicle{
		ID: "v3", Make: "Audi", Model: "A4", Year: 2015, LicensePlate: "AUD-1", UserID: "u1",
	}))

	vehicles, err := store.VehicleStore().ListByUser(ctx, "u1")

	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, "2015 Audi A4 (AUD-1)", vehicles[0].Title())
	assert.Equal(t, "v1", vehicles[1].ID)
}

func TestVehicleStore_Save_UnknownOwner(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.VehicleStore().Save(context.Background(), domain.Vehicle{
		ID: "v1", Make: "Kia", Model: "Rio", Year: 2020, LicensePlate: "K", UserID: "ghost",
	})

	assert.Error(t, err)
}

func TestSubscriptionStore_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	seedOwner(t, store, "u1", "v1")
	subs := store.SubscriptionStore()

	sub := domain.Subscription{
		ID: "s1", VehicleID: "v1", Type: domain.PlanPremium, Status: domain.StatusOverdue,
		Interval: domain.IntervalYearly, StartDate: start, EndDate: start.AddDate(1, 0, 0),
	}
	require.NoError(t, subs.Save(ctx, sub))

	got, err := subs.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPremium, got.Type)
	assert.Equal(t, domain.StatusOverdue, got.Status)
	assert.Equal(t, domain.IntervalYearly, got.Interval)
	assert.True(t, sub.StartDate.Equal(got.StartDate))
	assert.True(t, sub.EndDate.Equal(got.EndDate))
}

func TestSubscriptionStore_List_OrderedByStart(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	seedOwner(t, store, "u1", "v1")
	subs := store.SubscriptionStore()

	require.NoError(t, subs.Save(ctx, domain.Subscription{
		ID: "late", VehicleID: "v1", Type: domain.PlanBasic, Status: domain.StatusActive,
		Interval: domain.IntervalMonthly, StartDate: start.AddDate(0, 2, 0), EndDate: start.AddDate(0, 3, 0),
	}))
	require.NoError(t, subs.Save(ctx, domain.Subscription{
		ID: "early", VehicleID: "v1", Type: domain.PlanBasic, Status: domain.StatusCancelled,
		Interval: domain.IntervalMonthly, StartDate: start, EndDate: start.AddDate(0, 1, 0),
	}))

	list, err := subs.ListByVehicle(ctx, "v1")

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "early", list[0].ID)
	assert.Equal(t, "late", list[1].ID)
}

func TestUserStore_Delete_Cascades(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	seedOwner(t, store, "u1", "v1")
	require.NoError(t, store.SubscriptionStore().Save(ctx, domain.Subscription{
		ID: "s1", VehicleID: "v1", Type: domain.PlanBasic, Status: domain.StatusActive,
		Interval: domain.IntervalMonthly, StartDate: start, EndDate: start.AddDate(0, 1, 0),
	}))

	require.NoError(t, store.UserStore().Delete(ctx, "u1"))

	_, err := store.VehicleStore().Get(ctx, "v1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.SubscriptionStore().Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStores_EmptyID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	assert.ErrorIs(t, store.UserStore().Save(ctx, domain.User{}), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.VehicleStore().Save(ctx, domain.Vehicle{}), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SubscriptionStore().Save(ctx, domain.Subscription{}), domain.ErrInvalidInput)
}

func TestContract_SQLiteStores(t *testing.T) {
	storagetest.RunFleetStores(t, func(t *testing.T) (storagetest.Stores, func()) {
		store, cleanup := setupTestStore(t)
		return storagetest.Stores{
			Users:         store.UserStore(),
			Vehicles:      store.VehicleStore(),
			Subscriptions: store.SubscriptionStore(),
		}, cleanup
	})
}
