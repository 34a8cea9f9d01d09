package driving

import (
	"context"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// SubscriptionService reads and mutates subscriptions.
type SubscriptionService interface {
	// ListDetailed returns every subscription joined with its vehicle and user.
	ListDetailed(ctx context.Context) ([]domain.DetailedSubscription, error)

	// Get retrieves a subscription joined with its vehicle and user.
	Get(ctx context.Context, id string) (*domain.DetailedSubscription, error)

	// Create stores a new subscription. An empty ID is generated.
	Create(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error)

	// Update replaces an existing subscription.
	Update(ctx context.Context, sub domain.Subscription) error

	// Cancel moves a subscription to the cancelled status.
	Cancel(ctx context.Context, id string) error

	// Delete removes a subscription.
	Delete(ctx context.Context, id string) error
}
