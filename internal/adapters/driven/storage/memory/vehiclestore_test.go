package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

func TestVehicleStore_ListByUser(t *testing.T) {
	store := NewVehicleStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.Vehicle{ID: "v1", Make: "Volvo", Model: "XC40", UserID: "u1"}))
	require.NoError(t, store.Save(ctx, domain.Vehicle{ID: "v2", Make: "Audi", Model: "A3", UserID: "u1"}))
	require.NoError(t, store.Save(ctx, domain.Vehicle{ID: "v3", Make: "BMW", Model: "i3", UserID: "u2"}))

	vehicles, err := store.ListByUser(ctx, "u1")

	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, "v2", vehicles[0].ID, "sorted by title")
	assert.Equal(t, "v1", vehicles[1].ID)
}

func TestVehicleStore_GetDelete(t *testing.T) {
	store := NewVehicleStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.Vehicle{ID: "v1", LicensePlate: "P-1"}))

	got, err := store.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "P-1", got.LicensePlate)

	require.NoError(t, store.Delete(ctx, "v1"))
	_, err = store.Get(ctx, "v1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleStore_Save_EmptyID(t *testing.T) {
	err := NewVehicleStore().Save(context.Background(), domain.Vehicle{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
