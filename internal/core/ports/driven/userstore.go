package driven

import (
	"context"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// UserStore persists user accounts.
type UserStore interface {
	// Save stores or updates a user.
	Save(ctx context.Context, user domain.User) error

	// Get retrieves a user by ID.
	// Returns domain.ErrNotFound if the user does not exist.
	Get(ctx context.Context, id string) (*domain.User, error)

	// Delete removes a user.
	Delete(ctx context.Context, id string) error

	// List returns all users ordered by name.
	List(ctx context.Context) ([]domain.User, error)
}
