package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driven"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driving"
	"github.com/custodia-labs/fleetdesk/internal/logger"
)

// Ensure UserService implements the interface.
var _ driving.UserService = (*UserService)(nil)

// UserService reads and manages user accounts.
type UserService struct {
	userStore    driven.UserStore
	vehicleStore driven.VehicleStore
	subStore     driven.SubscriptionStore
}

// NewUserService creates a new user service.
func NewUserService(
	userStore driven.UserStore,
	vehicleStore driven.VehicleStore,
	subStore driven.SubscriptionStore,
) *UserService {
	return &UserService{
		userStore:    userStore,
		vehicleStore: vehicleStore,
		subStore:     subStore,
	}
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	if s.userStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.userStore.List(ctx)
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if s.userStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.userStore.Get(ctx, id)
}

// ListDetailed returns every user with their vehicles and subscriptions.
func (s *UserService) ListDetailed(ctx context.Context) ([]domain.DetailedUser, error) {
	if s.userStore == nil || s.vehicleStore == nil || s.subStore == nil {
		return nil, domain.ErrNotImplemented
	}
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	vehicles, err := s.vehicleStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	subs, err := s.subStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}

	vehiclesByUser := make(map[string][]domain.Vehicle)
	ownerOf := make(map[string]string, len(vehicles))
	for i := range vehicles {
		vehiclesByUser[vehicles[i].UserID] = append(vehiclesByUser[vehicles[i].UserID], vehicles[i])
		ownerOf[vehicles[i].ID] = vehicles[i].UserID
	}
	subsByUser := make(map[string][]domain.Subscription)
	for i := range subs {
		owner, ok := ownerOf[subs[i].VehicleID]
		if !ok {
			logger.Warn("subscription %s references missing vehicle %s", subs[i].ID, subs[i].VehicleID)
			continue
		}
		subsByUser[owner] = append(subsByUser[owner], subs[i])
	}

	result := make([]domain.DetailedUser, 0, len(users))
	for i := range users {
		result = append(result, domain.DetailedUser{
			User:          users[i],
			Vehicles:      vehiclesByUser[users[i].ID],
			Subscriptions: subsByUser[users[i].ID],
		})
	}
	return result, nil
}

// Detailed returns one user with their vehicles and subscriptions.
func (s *UserService) Detailed(ctx context.Context, id string) (*domain.DetailedUser, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.vehicleStore == nil || s.subStore == nil {
		return nil, domain.ErrNotImplemented
	}
	vehicles, err := s.vehicleStore.ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	detailed := &domain.DetailedUser{User: *user, Vehicles: vehicles}
	for i := range vehicles {
		subs, err := s.subStore.ListByVehicle(ctx, vehicles[i].ID)
		if err != nil {
			return nil, fmt.Errorf("listing subscriptions: %w", err)
		}
		detailed.Subscriptions = append(detailed.Subscriptions, subs...)
	}
	return detailed, nil
}

// Delete removes a user together with their vehicles and subscriptions.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if s.userStore == nil {
		return domain.ErrNotImplemented
	}
	if _, err := s.userStore.Get(ctx, id); err != nil {
		return err
	}
	if s.vehicleStore != nil {
		vehicles, err := s.vehicleStore.ListByUser(ctx, id)
		if err != nil {
			return fmt.Errorf("listing vehicles: %w", err)
		}
		for i := range vehicles {
			if err := deleteVehicleCascade(ctx, s.vehicleStore, s.subStore, vehicles[i].ID); err != nil {
				return err
			}
		}
	}
	logger.Debug("deleting user %s", id)
	return s.userStore.Delete(ctx, id)
}

// deleteVehicleCascade removes a vehicle's subscriptions, then the vehicle.
func deleteVehicleCascade(
	ctx context.Context,
	vehicleStore driven.VehicleStore,
	subStore driven.SubscriptionStore,
	vehicleID string,
) error {
	if subStore != nil {
		subs, err := subStore.ListByVehicle(ctx, vehicleID)
		if err != nil {
			return fmt.Errorf("listing subscriptions: %w", err)
		}
		for i := range subs {
			if err := subStore.Delete(ctx, subs[i].ID); err != nil {
				return fmt.Errorf("deleting subscription %s: %w", subs[i].ID, err)
			}
		}
	}
	if err := vehicleStore.Delete(ctx, vehicleID); err != nil {
		return fmt.Errorf("deleting vehicle %s: %w", vehicleID, err)
	}
	return nil
}
