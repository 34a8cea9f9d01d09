package driving

import (
	"context"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// VehicleService reads and manages vehicles.
type VehicleService interface {
	// List returns all vehicles.
	List(ctx context.Context) ([]domain.Vehicle, error)

	// ListByUser returns the vehicles owned by a user.
	ListByUser(ctx context.Context, userID string) ([]domain.Vehicle, error)

	// ListDetailed returns every vehicle with its owner and latest subscription.
	ListDetailed(ctx context.Context) ([]domain.DetailedVehicle, error)

	// Delete removes a vehicle together with its subscriptions.
	Delete(ctx context.Context, id string) error
}
