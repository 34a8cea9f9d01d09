package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/storage/postgres/migrations"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driven"
)

// foreignKeyViolation is the SQLSTATE for a foreign key violation.
const foreignKeyViolation = "23503"

// Store is a Postgres-backed storage that hands out the fleet store
// interfaces over one connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the database at dsn and applies pending migrations.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres dsn is empty", domain.ErrInvalidInput)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx, migrations.FS); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// UserStore returns a UserStore interface backed by this store.
func (s *Store) UserStore() driven.UserStore {
	return &userStore{pool: s.pool}
}

// VehicleStore returns a VehicleStore interface backed by this store.
func (s *Store) VehicleStore() driven.VehicleStore {
	return &vehicleStore{pool: s.pool}
}

// SubscriptionStore returns a SubscriptionStore interface backed by this store.
func (s *Store) SubscriptionStore() driven.SubscriptionStore {
	return &subscriptionStore{pool: s.pool}
}

func (s *Store) migrate(ctx context.Context, fsys fs.FS) error {
	if _, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.pool.QueryRow(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(content)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version)
			return err
		})
		if err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
	}
	return nil
}

// mapWriteError turns constraint violations into domain errors.
func mapWriteError(err error) error {
	var pe *pgconn.PgError
	if errors.As(err, &pe) && pe.Code == foreignKeyViolation {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, pe.ConstraintName)
	}
	return err
}

// ==================== User Store ====================

type userStore struct {
	pool *pgxpool.Pool
}

var _ driven.UserStore = (*userStore)(nil)

const userColumns = "id, full_name, email, phone, role, created_at"

func (s *userStore) Save(ctx context.Context, user domain.User) error {
	if user.ID == "" {
		return domain.ErrInvalidInput
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			role = EXCLUDED.role
	`, user.ID, user.FullName, user.Email, user.Phone, string(user.Role), user.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

func (s *userStore) Get(ctx context.Context, id string) (*domain.User, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return user, nil
}

func (s *userStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

func (s *userStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY full_name, id")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
		u, err := scanUser(row)
		if err != nil {
			return domain.User{}, err
		}
		return *u, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning users: %w", err)
	}
	return users, nil
}

// ==================== Vehicle Store ====================

type vehicleStore struct {
	pool *pgxpool.Pool
}

var _ driven.VehicleStore = (*vehicleStore)(nil)

const vehicleColumns = "id, license_plate, make, model, year, color, user_id"

const vehicleOrder = " ORDER BY year, make, model, license_plate, id"

func (s *vehicleStore) Save(ctx context.Context, v domain.Vehicle) error {
	if v.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO vehicles (`+vehicleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			license_plate = EXCLUDED.license_plate,
			make = EXCLUDED.make,
			model = EXCLUDED.model,
			year = EXCLUDED.year,
			color = EXCLUDED.color,
			user_id = EXCLUDED.user_id
	`, v.ID, v.LicensePlate, v.Make, v.Model, v.Year, v.Color, v.UserID)
	if err != nil {
		return fmt.Errorf("saving vehicle: %w", mapWriteError(err))
	}
	return nil
}

func (s *vehicleStore) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+vehicleColumns+" FROM vehicles WHERE id = $1", id)
	v, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning vehicle: %w", err)
	}
	return v, nil
}

func (s *vehicleStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM vehicles WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting vehicle: %w", err)
	}
	return nil
}

func (s *vehicleStore) List(ctx context.Context) ([]domain.Vehicle, error) {
	return s.query(ctx, "SELECT "+vehicleColumns+" FROM vehicles"+vehicleOrder)
}

func (s *vehicleStore) ListByUser(ctx context.Context, userID string) ([]domain.Vehicle, error) {
	return s.query(ctx, "SELECT "+vehicleColumns+" FROM vehicles WHERE user_id = $1"+vehicleOrder, userID)
}

func (s *vehicleStore) query(ctx context.Context, sql string, args ...any) ([]domain.Vehicle, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying vehicles: %w", err)
	}
	vehicles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Vehicle, error) {
		v, err := scanVehicle(row)
		if err != nil {
			return domain.Vehicle{}, err
		}
		return *v, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning vehicles: %w", err)
	}
	return vehicles, nil
}

// ==================== Subscription Store ====================

type subscriptionStore struct {
	pool *pgxpool.Pool
}

var _ driven.SubscriptionStore = (*subscriptionStore)(nil)

const subscriptionColumns = "id, vehicle_id, type, status, billing_interval, start_date, end_date"

const subscriptionOrder = " ORDER BY start_date, id"

func (s *subscriptionStore) Save(ctx context.Context, sub domain.Subscription) error {
	if sub.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO subscriptions (`+subscriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			vehicle_id = EXCLUDED.vehicle_id,
			type = EXCLUDED.type,
			status = EXCLUDED.status,
			billing_interval = EXCLUDED.billing_interval,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date
	`, sub.ID, sub.VehicleID, string(sub.Type), string(sub.Status), string(sub.Interval),
		sub.StartDate.UTC(), sub.EndDate.UTC())
	if err != nil {
		return fmt.Errorf("saving subscription: %w", mapWriteError(err))
	}
	return nil
}

func (s *subscriptionStore) Get(ctx context.Context, id string) (*domain.Subscription, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+subscriptionColumns+" FROM subscriptions WHERE id = $1", id)
	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning subscription: %w", err)
	}
	return sub, nil
}

func (s *subscriptionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM subscriptions WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}
	return nil
}

func (s *subscriptionStore) List(ctx context.Context) ([]domain.Subscription, error) {
	return s.query(ctx, "SELECT "+subscriptionColumns+" FROM subscriptions"+subscriptionOrder)
}

func (s *subscriptionStore) ListByVehicle(ctx context.Context, vehicleID string) ([]domain.Subscription, error) {
	return s.query(ctx,
		"SELECT "+subscriptionColumns+" FROM subscriptions WHERE vehicle_id = $1"+subscriptionOrder, vehicleID)
}

func (s *subscriptionStore) query(ctx context.Context, sql string, args ...any) ([]domain.Subscription, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying subscriptions: %w", err)
	}
	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Subscription, error) {
		sub, err := scanSubscription(row)
		if err != nil {
			return domain.Subscription{}, err
		}
		return *sub, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning subscriptions: %w", err)
	}
	return subs, nil
}

// ==================== Helper Functions ====================

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := row.Scan(&v.ID, &v.LicensePlate, &v.Make, &v.Model, &v.Year, &v.Color, &v.UserID); err != nil {
		return nil, err
	}
	return &v, nil
}

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	var sub domain.Subscription
	var typ, status, interval string
	if err := row.Scan(&sub.ID, &sub.VehicleID, &typ, &status, &interval, &sub.StartDate, &sub.EndDate); err != nil {
		return nil, err
	}
	sub.Type = domain.PlanType(typ)
	sub.Status = domain.SubscriptionStatus(status)
	sub.Interval = domain.BillingInterval(interval)
	sub.StartDate = sub.StartDate.UTC()
	sub.EndDate = sub.EndDate.UTC()
	return &sub, nil
}
