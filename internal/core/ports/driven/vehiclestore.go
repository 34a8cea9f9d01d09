package driven

import (
	"context"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// VehicleStore persists vehicles.
type VehicleStore interface {
	// Save stores or updates a vehicle.
	Save(ctx context.Context, vehicle domain.Vehicle) error

	// Get retrieves a vehicle by ID.
	// Returns domain.ErrNotFound if the vehicle does not exist.
	Get(ctx context.Context, id string) (*domain.Vehicle, error)

	// Delete removes a vehicle.
	Delete(ctx context.Context, id string) error

	// List returns all vehicles.
	List(ctx context.Context) ([]domain.Vehicle, error)

	// ListByUser returns the vehicles owned by a user.
	ListByUser(ctx context.Context, userID string) ([]domain.Vehicle, error)
}
