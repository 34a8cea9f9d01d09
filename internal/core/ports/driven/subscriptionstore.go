package driven

import (
	"context"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// SubscriptionStore persists subscriptions.
type SubscriptionStore interface {
	// Save stores or updates a subscription.
	Save(ctx context.Context, sub domain.Subscription) error

	// Get retrieves a subscription by ID.
	// Returns domain.ErrNotFound if the subscription does not exist.
	Get(ctx context.Context, id string) (*domain.Subscription, error)

	// Delete removes a subscription.
	Delete(ctx context.Context, id string) error

	// List returns all subscriptions.
	List(ctx context.Context) ([]domain.Subscription, error)

	// ListByVehicle returns the subscriptions of a vehicle.
	ListByVehicle(ctx context.Context, vehicleID string) ([]domain.Subscription, error)
}
