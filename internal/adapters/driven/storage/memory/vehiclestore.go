package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driven"
)

// Ensure VehicleStore implements the interface.
var _ driven.VehicleStore = (*VehicleStore)(nil)

// VehicleStore is an in-memory implementation of driven.VehicleStore.
type VehicleStore struct {
	mu       sync.RWMutex
	vehicles map[string]domain.Vehicle
}

// NewVehicleStore creates a new in-memory vehicle store.
func NewVehicleStore() *VehicleStore {
	return &VehicleStore{
		vehicles: make(map[string]domain.Vehicle),
	}
}

// Save stores or updates a vehicle.
func (s *VehicleStore) Save(_ context.Context, vehicle domain.Vehicle) error {
	if vehicle.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[vehicle.ID] = vehicle
	return nil
}

// Get retrieves a vehicle by ID.
func (s *VehicleStore) Get(_ context.Context, id string) (*domain.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vehicle, ok := s.vehicles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &vehicle, nil
}

// Delete removes a vehicle.
func (s *VehicleStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vehicles, id)
	return nil
}

// List returns all vehicles ordered by title.
func (s *VehicleStore) List(_ context.Context) ([]domain.Vehicle, error) {
	return s.collect(func(domain.Vehicle) bool { return true }), nil
}

// ListByUser returns the vehicles owned by a user.
func (s *VehicleStore) ListByUser(_ context.Context, userID string) ([]domain.Vehicle, error) {
	return s.collect(func(v domain.Vehicle) bool { return v.UserID == userID }), nil
}

func (s *VehicleStore) collect(keep func(domain.Vehicle) bool) []domain.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		if keep(v) {
			result = append(result, v)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		ti, tj := result[i].Title(), result[j].Title()
		if ti != tj {
			return ti < tj
		}
		return result[i].ID < result[j].ID
	})
	return result
}
