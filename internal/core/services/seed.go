package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driven"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driving"
	"github.com/custodia-labs/fleetdesk/internal/logger"
)

// Ensure Seeder implements the interface.
var _ driving.Seeder = (*Seeder)(nil)

// Seeder generates demo users, vehicles and subscriptions.
type Seeder struct {
	userStore    driven.UserStore
	vehicleStore driven.VehicleStore
	subStore     driven.SubscriptionStore
	now          func() time.Time
}

// NewSeeder creates a new seeder writing through the given stores.
func NewSeeder(
	userStore driven.UserStore,
	vehicleStore driven.VehicleStore,
	subStore driven.SubscriptionStore,
) *Seeder {
	return &Seeder{
		userStore:    userStore,
		vehicleStore: vehicleStore,
		subStore:     subStore,
		now:          time.Now,
	}
}

// Seed generates count users, one vehicle per user and one active basic
// monthly subscription per vehicle.
func (s *Seeder) Seed(ctx context.Context, count int, seed uint64) (*driving.SeedResult, error) {
	if s.userStore == nil || s.vehicleStore == nil || s.subStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be positive", domain.ErrInvalidInput)
	}

	logger.Section("Seed")
	faker := gofakeit.New(seed)
	now := s.now().UTC().Truncate(time.Second)
	ids := uuidSource(faker)
	result := &driving.SeedResult{}

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		user := domain.User{
			ID:        ids(),
			FullName:  faker.Name(),
			Email:     faker.Email(),
			Phone:     faker.Phone(),
			Role:      domain.RoleUser,
			CreatedAt: faker.DateRange(now.AddDate(-1, 0, 0), now).UTC(),
		}
		if err := s.userStore.Save(ctx, user); err != nil {
			return result, fmt.Errorf("saving user: %w", err)
		}
		result.Users++

		vehicle := domain.Vehicle{
			ID:           ids(),
			LicensePlate: strings.ToUpper(faker.LetterN(3)) + "-" + faker.DigitN(4),
			Make:         faker.CarMaker(),
			Model:        faker.CarModel(),
			Year:         faker.DateRange(now.AddDate(-15, 0, 0), now).Year(),
			Color:        faker.Color(),
			UserID:       user.ID,
		}
		if err := s.vehicleStore.Save(ctx, vehicle); err != nil {
			return result, fmt.Errorf("saving vehicle: %w", err)
		}
		result.Vehicles++

		sub := domain.Subscription{
			ID:        ids(),
			VehicleID: vehicle.ID,
			Type:      domain.PlanBasic,
			Status:    domain.StatusActive,
			Interval:  domain.IntervalMonthly,
			StartDate: faker.DateRange(now.AddDate(-1, 0, 0), now).UTC(),
			EndDate:   faker.DateRange(now, now.AddDate(1, 0, 0)).UTC(),
		}
		if err := s.subStore.Save(ctx, sub); err != nil {
			return result, fmt.Errorf("saving subscription: %w", err)
		}
		result.Subscriptions++
	}

	logger.Info("seeded %d users, %d vehicles, %d subscriptions",
		result.Users, result.Vehicles, result.Subscriptions)
	return result, nil
}

// uuidSource returns a generator of UUIDs drawn from the faker's random
// stream, so a seed reproduces the same identifiers.
func uuidSource(faker *gofakeit.Faker) func() string {
	return func() string {
		var b [16]byte
		for i := range b {
			b[i] = byte(faker.Number(0, 255))
		}
		id, err := uuid.FromBytes(b[:])
		if err != nil {
			return uuid.New().String()
		}
		// Stamp version 4 / RFC 4122 variant bits.
		id[6] = (id[6] & 0x0f) | 0x40
		id[8] = (id[8] & 0x3f) | 0x80
		return id.String()
	}
}
