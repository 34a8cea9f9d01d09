package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driven"
)

// Ensure SubscriptionStore implements the interface.
var _ driven.SubscriptionStore = (*SubscriptionStore)(nil)

// SubscriptionStore is an in-memory implementation of driven.SubscriptionStore.
type SubscriptionStore struct {
	mu   sync.RWMutex
	subs map[string]domain.Subscription
}

// NewSubscriptionStore creates a new in-memory subscription store.
func NewSubscriptionStore() *SubscriptionStore {
	return &SubscriptionStore{
		subs: make(map[string]domain.Subscription),
	}
}

// Save stores or updates a subscription.
func (s *SubscriptionStore) Save(_ context.Context, sub domain.Subscription) error {
	if sub.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.ID] = sub
	return nil
}

// Get retrieves a subscription by ID.
func (s *SubscriptionStore) Get(_ context.Context, id string) (*domain.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sub, nil
}

// Delete removes a subscription.
func (s *SubscriptionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
	return nil
}

// List returns all subscriptions, oldest start date first.
func (s *SubscriptionStore) List(_ context.Context) ([]domain.Subscription, error) {
	return s.collect(func(domain.Subscription) bool { return true }), nil
}

// ListByVehicle returns the subscriptions of a vehicle.
func (s *SubscriptionStore) ListByVehicle(_ context.Context, vehicleID string) ([]domain.Subscription, error) {
	return s.collect(func(sub domain.Subscription) bool { return sub.VehicleID == vehicleID }), nil
}

func (s *SubscriptionStore) collect(keep func(domain.Subscription) bool) []domain.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		if keep(sub) {
			result = append(result, sub)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].StartDate.Before(result[j].StartDate)
		}
		return result[i].ID < result[j].ID
	})
	return result
}
