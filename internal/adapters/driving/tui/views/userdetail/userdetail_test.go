package userdetail

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// MockUserService implements driving.UserService for testing.
type MockUserService struct {
	DetailedFunc func(ctx context.Context, id string) (*domain.DetailedUser, error)
}

func (m *MockUserService) List(ctx context.Context) ([]domain.User, error) {
	return nil, nil
}

func (m *MockUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (m *MockUserService) ListDetailed(ctx context.Context) ([]domain.DetailedUser, error) {
	return nil, nil
}

func (m *MockUserService) Detailed(ctx context.Context, id string) (*domain.DetailedUser, error) {
	if m.DetailedFunc != nil {
		return m.DetailedFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserService) Delete(ctx context.Context, id string) error {
	return nil
}

func ada() *domain.DetailedUser {
	return &domain.DetailedUser{
		User: domain.User{ID: "u1", FullName: "Ada Lovelace", Email: "ada@example.com", Role: domain.RoleUser},
		Vehicles: []domain.Vehicle{
			{ID: "v1", Year: 2019, Make: "Toyota", Model: "Corolla", LicensePlate: "ABC-1234"},
		},
		Subscriptions: []domain.Subscription{
			{ID: "s1", VehicleID: "v1", Status: domain.StatusActive},
			{ID: "s9", VehicleID: "gone", Status: domain.StatusCancelled},
		},
	}
}

func TestRows_JoinsVehicles(t *testing.T) {
	rows := Rows(*ada())

	require.Len(t, rows, 2)
	assert.Equal(t, "Toyota", rows[0].Vehicle.Make)
	assert.Equal(t, "Ada Lovelace", rows[0].User.FullName)
	assert.Empty(t, rows[1].Vehicle.ID)
}

func TestView_LoadsUser(t *testing.T) {
	var asked string
	mock := &MockUserService{
		DetailedFunc: func(ctx context.Context, id string) (*domain.DetailedUser, error) {
			asked = id
			return ada(), nil
		},
	}
	view := NewView(nil, mock)
	view.SetUser("u1")

	view.Update(view.Init()())

	assert.Equal(t, "u1", asked)
	require.NotNil(t, view.User())
	out := view.View()
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "2019 Toyota Corolla (ABC-1234)")
}

func TestView_NotFound(t *testing.T) {
	view := NewView(nil, &MockUserService{})
	view.SetUser("missing")

	view.Update(view.Init()())

	assert.Contains(t, view.View(), "User missing not found")
}

func TestView_IgnoresStaleUser(t *testing.T) {
	view := NewView(nil, &MockUserService{})
	view.SetUser("u2")

	view.Update(messages.UserLoaded{User: ada()})

	assert.Nil(t, view.User())
}

func TestView_EscGoesBackToUsers(t *testing.T) {
	view := NewView(nil, &MockUserService{})
	view.SetUser("u1")
	view.Update(messages.UserLoaded{User: ada()})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.Navigate{Path: "/users"}, cmd())
}

func TestView_NilService(t *testing.T) {
	view := NewView(nil, nil)
	view.SetUser("u1")

	loaded := view.Init()().(messages.UserLoaded)

	assert.ErrorIs(t, loaded.Err, errNoService)
}
