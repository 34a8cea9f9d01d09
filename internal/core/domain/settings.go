package domain

const unknownDescription = "Unknown"

// StorageDriver selects the persistence backend.
type StorageDriver string

// Available storage drivers.
const (
	// StorageMemory keeps data in process; useful for demos and tests.
	StorageMemory StorageDriver = "memory"

	// StorageSQLite stores data in a local SQLite file.
	StorageSQLite StorageDriver = "sqlite"

	// StoragePostgres connects to a PostgreSQL database.
	StoragePostgres StorageDriver = "postgres"
)

// IsValid returns true if the driver is recognised.
func (d StorageDriver) IsValid() bool {
	switch d {
	case StorageMemory, StorageSQLite, StoragePostgres:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d StorageDriver) String() string {
	return string(d)
}

// Description returns a human-readable description of the driver.
func (d StorageDriver) Description() string {
	switch d {
	case StorageMemory:
		return "In-memory (lost on exit)"
	case StorageSQLite:
		return "SQLite (local file)"
	case StoragePostgres:
		return "PostgreSQL"
	default:
		return unknownDescription
	}
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// Driver is the storage backend.
	Driver StorageDriver

	// DataDir is where the SQLite database lives. Empty means ~/.fleetdesk/data.
	DataDir string

	// PostgresDSN is the connection string for the postgres driver.
	PostgresDSN string
}

// SeedSettings holds seed data generation defaults.
type SeedSettings struct {
	// Count is the number of users to generate.
	Count int
}

// TUISettings holds terminal console behaviour.
type TUISettings struct {
	// LiveReload reloads tables when the database changes on disk.
	LiveReload bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage StorageSettings
	Seed    SeedSettings
	TUI     TUISettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Driver: StorageSQLite,
		},
		Seed: SeedSettings{
			Count: 25,
		},
		TUI: TUISettings{
			LiveReload: true,
		},
	}
}
