package driving

import (
	"context"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// UserService reads and manages user accounts.
type UserService interface {
	// List returns all users.
	List(ctx context.Context) ([]domain.User, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, id string) (*domain.User, error)

	// ListDetailed returns every user with their vehicles and subscriptions.
	ListDetailed(ctx context.Context) ([]domain.DetailedUser, error)

	// Detailed returns one user with their vehicles and subscriptions.
	Detailed(ctx context.Context, id string) (*domain.DetailedUser, error)

	// Delete removes a user together with their vehicles and subscriptions.
	Delete(ctx context.Context, id string) error
}
