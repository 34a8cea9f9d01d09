package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driven"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

// UserStore is an in-memory implementation of driven.UserStore.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]domain.User),
	}
}

// Save stores or updates a user.
func (s *UserStore) Save(_ context.Context, user domain.User) error {
	if user.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

// Get retrieves a user by ID.
func (s *UserStore) Get(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

// Delete removes a user.
func (s *UserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

// List returns all users ordered by name.
func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FullName != result[j].FullName {
			return result[i].FullName < result[j].FullName
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
