package driven

// ConfigStore provides access to flat, dotted-key configuration such as
// "storage.driver". Implementations handle persistence and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" when missing or mistyped.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 when missing or mistyped.
	GetInt(key string) int

	// GetBool retrieves a boolean value.
	// The second result is false when the key is missing or mistyped.
	GetBool(key string) (bool, bool)

	// Set stores a configuration value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
