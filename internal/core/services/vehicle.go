package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driven"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driving"
)

// Ensure VehicleService implements the interface.
var _ driving.VehicleService = (*VehicleService)(nil)

// VehicleService reads and manages vehicles.
type VehicleService struct {
	userStore    driven.UserStore
	vehicleStore driven.VehicleStore
	subStore     driven.SubscriptionStore
}

// NewVehicleService creates a new vehicle service.
func NewVehicleService(
	userStore driven.UserStore,
	vehicleStore driven.VehicleStore,
	subStore driven.SubscriptionStore,
) *VehicleService {
	return &VehicleService{
		userStore:    userStore,
		vehicleStore: vehicleStore,
		subStore:     subStore,
	}
}

// List returns all vehicles.
func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	if s.vehicleStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.vehicleStore.List(ctx)
}

// ListByUser returns the vehicles owned by a user.
func (s *VehicleService) ListByUser(ctx context.Context, userID string) ([]domain.Vehicle, error) {
	if s.vehicleStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.vehicleStore.ListByUser(ctx, userID)
}

// ListDetailed returns every vehicle with its owner and latest subscription.
func (s *VehicleService) ListDetailed(ctx context.Context) ([]domain.DetailedVehicle, error) {
	if s.userStore == nil || s.vehicleStore == nil || s.subStore == nil {
		return nil, domain.ErrNotImplemented
	}
	vehicles, err := s.vehicleStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	subs, err := s.subStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}

	usersByID := make(map[string]domain.User, len(users))
	for i := range users {
		usersByID[users[i].ID] = users[i]
	}
	// subs are ordered by start date, so the last one seen is the latest.
	latest := make(map[string]domain.Subscription)
	for i := range subs {
		latest[subs[i].VehicleID] = subs[i]
	}

	result := make([]domain.DetailedVehicle, 0, len(vehicles))
	for i := range vehicles {
		dv := domain.DetailedVehicle{Vehicle: vehicles[i], Owner: usersByID[vehicles[i].UserID]}
		if sub, ok := latest[vehicles[i].ID]; ok {
			dv.Subscription = &sub
		}
		result = append(result, dv)
	}
	return result, nil
}

// Delete removes a vehicle together with its subscriptions.
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	if s.vehicleStore == nil {
		return domain.ErrNotImplemented
	}
	if _, err := s.vehicleStore.Get(ctx, id); err != nil {
		return err
	}
	return deleteVehicleCascade(ctx, s.vehicleStore, s.subStore, id)
}
