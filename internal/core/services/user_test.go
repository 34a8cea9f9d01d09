package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

func TestUserService_List(t *testing.T) {
	f := newFleet(t)
	svc := NewUserService(f.users, f.vehicles, f.subs)

	users, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_Get_EmptyID(t *testing.T) {
	svc := NewUserService(newFleet(t).users, nil, nil)

	_, err := svc.Get(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserService_ListDetailed(t *testing.T) {
	f := newFleet(t)
	svc := NewUserService(f.users, f.vehicles, f.subs)

	users, err := svc.ListDetailed(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	ada := users[0]
	assert.Equal(t, "Ada Lovelace", ada.FullName)
	assert.Len(t, ada.Vehicles, 2)
	assert.Len(t, ada.Subscriptions, 2)
	grace := users[1]
	assert.Len(t, grace.Vehicles, 1)
	assert.Len(t, grace.Subscriptions, 1)
}

func TestUserService_Detailed(t *testing.T) {
	f := newFleet(t)
	svc := NewUserService(f.users, f.vehicles, f.subs)

	user, err := svc.Detailed(context.Background(), "u2")

	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", user.Email)
	require.Len(t, user.Vehicles, 1)
	assert.Equal(t, "v3", user.Vehicles[0].ID)
	require.Len(t, user.Subscriptions, 1)
	assert.Equal(t, "s3", user.Subscriptions[0].ID)
}

func TestUserService_Delete_Cascades(t *testing.T) {
	f := newFleet(t)
	svc := NewUserService(f.users, f.vehicles, f.subs)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "u1"))

	_, err := f.users.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	vehicles, err := f.vehicles.List(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "v3", vehicles[0].ID)
	subs, err := f.subs.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "s3", subs[0].ID)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	f := newFleet(t)
	svc := NewUserService(f.users, f.vehicles, f.subs)

	err := svc.Delete(context.Background(), "nobody")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
