package driving

import "github.com/custodia-labs/fleetdesk/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its config key, e.g. "storage.driver".
	Set(key, value string) error

	// Keys returns the recognised config keys.
	Keys() []string

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
