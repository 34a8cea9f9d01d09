package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driven"
)

// DatabaseFile is the name of the database inside the data directory.
const DatabaseFile = "fleet.db"

// Store is a unified SQLite-based storage that provides access to
// all fleet store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.fleetdesk/data/fleet.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".fleetdesk", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets the console read while a CLI command writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// UserStore returns a UserStore interface backed by this store.
func (s *Store) UserStore() driven.UserStore {
	return &userStore{store: s}
}

// VehicleStore returns a VehicleStore interface backed by this store.
func (s *Store) VehicleStore() driven.VehicleStore {
	return &vehicleStore{store: s}
}

// SubscriptionStore returns a SubscriptionStore interface backed by this store.
func (s *Store) SubscriptionStore() driven.SubscriptionStore {
	return &subscriptionStore{store: s}
}

// migrate applies every embedded NNN_name.up.sql file newer than the
// recorded schema version, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("starting migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== User Store ====================

// userStore implements driven.UserStore.
type userStore struct {
	store *Store
}

var _ driven.UserStore = (*userStore)(nil)

const userColumns = "id, full_name, email, phone, role, created_at"

// Save stores or updates a user.
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

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			email = excluded.email,
			phone = excluded.phone,
			role = excluded.role
	`, user.ID, user.FullName, user.Email, user.Phone, string(user.Role), user.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// Get retrieves a user by ID.
func (s *userStore) Get(ctx context.Context, id string) (*domain.User, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return user, nil
}

// Delete removes a user. Vehicles and subscriptions cascade.
func (s *userStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// List returns all users ordered by name.
func (s *userStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY full_name, id")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []domain.User //nolint:prealloc // size unknown from query
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// ==================== Vehicle Store ====================

// vehicleStore implements driven.VehicleStore.
type vehicleStore struct {
	store *Store
}

var _ driven.VehicleStore = (*vehicleStore)(nil)

const vehicleColumns = "id, license_plate, make, model, year, color, user_id"

// vehicleOrder matches the ordering of VehicleTitle.
const vehicleOrder = " ORDER BY year, make, model, license_plate, id"

// Save stores or updates a vehicle.
func (s *vehicleStore) Save(ctx context.Context, vehicle domain.Vehicle) error {
	if vehicle.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO vehicles (`+vehicleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			license_plate = excluded.license_plate,
			make = excluded.make,
			model = excluded.model,
			year = excluded.year,
			color = excluded.color,
			user_id = excluded.user_id
	`, vehicle.ID, vehicle.LicensePlate, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.Color, vehicle.UserID)
	if err != nil {
		return fmt.Errorf("saving vehicle: %w", err)
	}
	return nil
}

// Get retrieves a vehicle by ID.
func (s *vehicleStore) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+vehicleColumns+" FROM vehicles WHERE id = ?", id)
	vehicle, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning vehicle: %w", err)
	}
	return vehicle, nil
}

// Delete removes a vehicle. Subscriptions cascade.
func (s *vehicleStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM vehicles WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting vehicle: %w", err)
	}
	return nil
}

// List returns all vehicles.
func (s *vehicleStore) List(ctx context.Context) ([]domain.Vehicle, error) {
	return s.query(ctx, "SELECT "+vehicleColumns+" FROM vehicles"+vehicleOrder)
}

// ListByUser returns the vehicles owned by a user.
func (s *vehicleStore) ListByUser(ctx context.Context, userID string) ([]domain.Vehicle, error) {
	return s.query(ctx, "SELECT "+vehicleColumns+" FROM vehicles WHERE user_id = ?"+vehicleOrder, userID)
}

func (s *vehicleStore) query(ctx context.Context, query string, args ...any) ([]domain.Vehicle, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle //nolint:prealloc // size unknown from query
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, *vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vehicles: %w", err)
	}
	return vehicles, nil
}

// ==================== Subscription Store ====================

// subscriptionStore implements driven.SubscriptionStore.
type subscriptionStore struct {
	store *Store
}

var _ driven.SubscriptionStore = (*subscriptionStore)(nil)

const subscriptionColumns = "id, vehicle_id, type, status, billing_interval, start_date, end_date"

// subscriptionOrder keeps the latest subscription of a vehicle last.
const subscriptionOrder = " ORDER BY start_date, id"

// Save stores or updates a subscription.
func (s *subscriptionStore) Save(ctx context.Context, sub domain.Subscription) error {
	if sub.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO subscriptions (`+subscriptionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			vehicle_id = excluded.vehicle_id,
			type = excluded.type,
			status = excluded.status,
			billing_interval = excluded.billing_interval,
			start_date = excluded.start_date,
			end_date = excluded.end_date
	`, sub.ID, sub.VehicleID, string(sub.Type), string(sub.Status), string(sub.Interval),
		sub.StartDate.UTC(), sub.EndDate.UTC())
	if err != nil {
		return fmt.Errorf("saving subscription: %w", err)
	}
	return nil
}

// Get retrieves a subscription by ID.
func (s *subscriptionStore) Get(ctx context.Context, id string) (*domain.Subscription, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+subscriptionColumns+" FROM subscriptions WHERE id = ?", id)
	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning subscription: %w", err)
	}
	return sub, nil
}

// Delete removes a subscription.
func (s *subscriptionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM subscriptions WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}
	return nil
}

// List returns all subscriptions ordered by start date.
func (s *subscriptionStore) List(ctx context.Context) ([]domain.Subscription, error) {
	return s.query(ctx, "SELECT "+subscriptionColumns+" FROM subscriptions"+subscriptionOrder)
}

// ListByVehicle returns the subscriptions of a vehicle ordered by start date.
func (s *subscriptionStore) ListByVehicle(ctx context.Context, vehicleID string) ([]domain.Subscription, error) {
	return s.query(ctx,
		"SELECT "+subscriptionColumns+" FROM subscriptions WHERE vehicle_id = ?"+subscriptionOrder, vehicleID)
}

func (s *subscriptionStore) query(ctx context.Context, query string, args ...any) ([]domain.Subscription, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Subscription //nolint:prealloc // size unknown from query
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subscriptions: %w", err)
	}
	return subs, nil
}

// ==================== Helper Functions ====================

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*domain.User, error) {
	var user domain.User
	var role string
	var createdAt sql.NullTime
	if err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Phone, &role, &createdAt); err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	if createdAt.Valid {
		user.CreatedAt = createdAt.Time.UTC()
	}
	return &user, nil
}

func scanVehicle(row scanner) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := row.Scan(&v.ID, &v.LicensePlate, &v.Make, &v.Model, &v.Year, &v.Color, &v.UserID); err != nil {
		return nil, err
	}
	return &v, nil
}

func scanSubscription(row scanner) (*domain.Subscription, error) {
	var sub domain.Subscription
	var typ, status, interval string
	var start, end sql.NullTime
	if err := row.Scan(&sub.ID, &sub.VehicleID, &typ, &status, &interval, &start, &end); err != nil {
		return nil, err
	}
	sub.Type = domain.PlanType(typ)
	sub.Status = domain.SubscriptionStatus(status)
	sub.Interval = domain.BillingInterval(interval)
	if start.Valid {
		sub.StartDate = start.Time.UTC()
	}
	if end.Valid {
		sub.EndDate = end.Time.UTC()
	}
	return &sub, nil
}
