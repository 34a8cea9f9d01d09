package vehicles

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// MockVehicleService implements driving.VehicleService for testing.
type MockVehicleService struct {
	ListDetailedFunc func(ctx context.Context) ([]domain.DetailedVehicle, error)
}

func (m *MockVehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	return nil, nil
}

func (m *MockVehicleService) ListByUser(ctx context.Context, userID string) ([]domain.Vehicle, error) {
	return nil, nil
}

func (m *MockVehicleService) ListDetailed(ctx context.Context) ([]domain.DetailedVehicle, error) {
	if m.ListDetailedFunc != nil {
		return m.ListDetailedFunc(ctx)
	}
	return nil, nil
}

func (m *MockVehicleService) Delete(ctx context.Context, id string) error {
	return nil
}

func testVehicles() []domain.DetailedVehicle {
	return []domain.DetailedVehicle{
		{
			Vehicle: domain.Vehicle{ID: "v3", Year: 2022, Make: "Volvo", Model: "XC40", LicensePlate: "VOL-3", Color: "Blue"},
			Owner:   domain.User{ID: "u2", FullName: "Grace Hopper"},
		},
		{
			Vehicle:      domain.Vehicle{ID: "v1", Year: 2019, Make: "Toyota", Model: "Corolla", LicensePlate: "ABC-1234"},
			Owner:        domain.User{ID: "u1", FullName: "Ada Lovelace"},
			Subscription: &domain.Subscription{ID: "s1", Status: domain.StatusOverdue, Type: domain.PlanPremium},
		},
	}
}

func TestView_InitLoads(t *testing.T) {
	mock := &MockVehicleService{
		ListDetailedFunc: func(ctx context.Context) ([]domain.DetailedVehicle, error) {
			return testVehicles(), nil
		},
	}
	view := NewView(nil, mock)

	view.Update(view.Init()())

	assert.Len(t, view.Rows(), 2)
	assert.Contains(t, view.View(), "VOL-3")
}

func TestView_LoadError(t *testing.T) {
	mock := &MockVehicleService{
		ListDetailedFunc: func(ctx context.Context) ([]domain.DetailedVehicle, error) {
			return nil, errors.New("db down")
		},
	}
	view := NewView(nil, mock)

	view.Update(view.Init()())

	assert.Contains(t, view.View(), "db down")
}

func TestView_FollowOwner(t *testing.T) {
	view := NewView(nil, &MockVehicleService{})
	view.Update(messages.VehiclesLoaded{Vehicles: testVehicles()})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.Navigate{Path: "/users/u2"}, cmd())
}

func TestView_SortByStatus(t *testing.T) {
	view := NewView(nil, &MockVehicleService{})
	view.Update(messages.VehiclesLoaded{Vehicles: testVehicles()})

	// plate, colour, then status
	for i := 0; i < 3; i++ {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	}

	assert.Equal(t, "v1", view.Rows()[0].ID)
}

func TestView_Detail(t *testing.T) {
	view := NewView(nil, nil)
	rows := testVehicles()

	assert.Contains(t, view.detail(rows[0]), "No subscription")
	assert.Contains(t, view.detail(rows[1]), "overdue")
}
