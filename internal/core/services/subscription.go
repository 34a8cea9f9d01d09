package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driven"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driving"
	"github.com/custodia-labs/fleetdesk/internal/logger"
)

// Ensure SubscriptionService implements the interface.
var _ driving.SubscriptionService = (*SubscriptionService)(nil)

// SubscriptionService reads and mutates subscriptions.
type SubscriptionService struct {
	userStore    driven.UserStore
	vehicleStore driven.VehicleStore
	subStore     driven.SubscriptionStore
	now          func() time.Time
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(
	userStore driven.UserStore,
	vehicleStore driven.VehicleStore,
	subStore driven.SubscriptionStore,
) *SubscriptionService {
	return &SubscriptionService{
		userStore:    userStore,
		vehicleStore: vehicleStore,
		subStore:     subStore,
		now:          time.Now,
	}
}

func (s *SubscriptionService) ready() bool {
	return s.userStore != nil && s.vehicleStore != nil && s.subStore != nil
}

// ListDetailed returns every subscription joined with its vehicle and user.
// Subscriptions whose vehicle no longer exists are skipped.
func (s *SubscriptionService) ListDetailed(ctx context.Context) ([]domain.DetailedSubscription, error) {
	if !s.ready() {
		return nil, domain.ErrNotImplemented
	}
	subs, err := s.subStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	vehicles, err := s.vehicleStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	vehiclesByID := make(map[string]domain.Vehicle, len(vehicles))
	for i := range vehicles {
		vehiclesByID[vehicles[i].ID] = vehicles[i]
	}
	usersByID := make(map[string]domain.User, len(users))
	for i := range users {
		usersByID[users[i].ID] = users[i]
	}

	result := make([]domain.DetailedSubscription, 0, len(subs))
	for i := range subs {
		vehicle, ok := vehiclesByID[subs[i].VehicleID]
		if !ok {
			logger.Warn("subscription %s references missing vehicle %s", subs[i].ID, subs[i].VehicleID)
			continue
		}
		result = append(result, domain.DetailedSubscription{
			Subscription: subs[i],
			Vehicle:      vehicle,
			User:         usersByID[vehicle.UserID],
		})
	}
	logger.Debug("loaded %d subscriptions", len(result))
	return result, nil
}

// Get retrieves a subscription joined with its vehicle and user.
func (s *SubscriptionService) Get(ctx context.Context, id string) (*domain.DetailedSubscription, error) {
	if !s.ready() {
		return nil, domain.ErrNotImplemented
	}
	sub, err := s.subStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleStore.Get(ctx, sub.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("loading vehicle %s: %w", sub.VehicleID, err)
	}
	detailed := &domain.DetailedSubscription{Subscription: *sub, Vehicle: *vehicle}
	user, err := s.userStore.Get(ctx, vehicle.UserID)
	if err == nil {
		detailed.User = *user
	}
	return detailed, nil
}

// Create stores a new subscription. Missing fields get defaults: a generated
// ID, active status, basic monthly plan starting now.
func (s *SubscriptionService) Create(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error) {
	if !s.ready() {
		return nil, domain.ErrNotImplemented
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	} else if _, err := s.subStore.Get(ctx, sub.ID); err == nil {
		return nil, domain.ErrAlreadyExists
	}
	if sub.Status == "" {
		sub.Status = domain.StatusActive
	}
	if sub.Type == "" {
		sub.Type = domain.PlanBasic
	}
	if sub.Interval == "" {
		sub.Interval = domain.IntervalMonthly
	}
	if sub.StartDate.IsZero() {
		sub.StartDate = s.now().UTC()
	}
	if sub.EndDate.IsZero() {
		sub.EndDate = endOfTerm(sub.StartDate, sub.Interval)
	}
	if err := s.validate(ctx, sub); err != nil {
		return nil, err
	}
	if err := s.subStore.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("saving subscription: %w", err)
	}
	logger.Info("created subscription %s for vehicle %s", sub.ID, sub.VehicleID)
	return &sub, nil
}

// Update replaces an existing subscription.
func (s *SubscriptionService) Update(ctx context.Context, sub domain.Subscription) error {
	if !s.ready() {
		return domain.ErrNotImplemented
	}
	if sub.ID == "" {
		return domain.ErrInvalidInput
	}
	if _, err := s.subStore.Get(ctx, sub.ID); err != nil {
		return err
	}
	if err := s.validate(ctx, sub); err != nil {
		return err
	}
	if err := s.subStore.Save(ctx, sub); err != nil {
		return fmt.Errorf("saving subscription: %w", err)
	}
	return nil
}

// Cancel moves a subscription to the cancelled status.
func (s *SubscriptionService) Cancel(ctx context.Context, id string) error {
	if !s.ready() {
		return domain.ErrNotImplemented
	}
	sub, err := s.subStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := sub.Cancel(); err != nil {
		return fmt.Errorf("cancelling subscription %s: %w", id, err)
	}
	if err := s.subStore.Save(ctx, *sub); err != nil {
		return fmt.Errorf("saving subscription: %w", err)
	}
	logger.Info("cancelled subscription %s", id)
	return nil
}

// Delete removes a subscription.
func (s *SubscriptionService) Delete(ctx context.Context, id string) error {
	if !s.ready() {
		return domain.ErrNotImplemented
	}
	if _, err := s.subStore.Get(ctx, id); err != nil {
		return err
	}
	logger.Info("deleting subscription %s", id)
	return s.subStore.Delete(ctx, id)
}

func (s *SubscriptionService) validate(ctx context.Context, sub domain.Subscription) error {
	if sub.VehicleID == "" {
		return fmt.Errorf("%w: vehicle is required", domain.ErrInvalidInput)
	}
	if !sub.Status.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownStatus, string(sub.Status))
	}
	if sub.Type != domain.PlanBasic && sub.Type != domain.PlanPremium {
		return fmt.Errorf("%w: plan type %q", domain.ErrInvalidInput, string(sub.Type))
	}
	if sub.Interval != domain.IntervalMonthly && sub.Interval != domain.IntervalYearly {
		return fmt.Errorf("%w: interval %q", domain.ErrInvalidInput, string(sub.Interval))
	}
	if !sub.EndDate.IsZero() && sub.EndDate.Before(sub.StartDate) {
		return fmt.Errorf("%w: end date before start date", domain.ErrInvalidInput)
	}
	if _, err := s.vehicleStore.Get(ctx, sub.VehicleID); err != nil {
		return fmt.Errorf("vehicle %s: %w", sub.VehicleID, err)
	}
	return nil
}

// endOfTerm returns the end of the first billing term.
func endOfTerm(start time.Time, interval domain.BillingInterval) time.Time {
	if interval == domain.IntervalYearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}
