package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driven"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStorageDriver = "storage.driver"
	KeyDataDir       = "storage.data_dir"
	KeyPostgresDSN   = "storage.postgres_dsn"
	KeySeedCount     = "seed.count"
	KeyLiveReload    = "tui.live_reload"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling gaps with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Driver:      domain.StorageDriver(s.getString(KeyStorageDriver, defaults.Storage.Driver.String())),
			DataDir:     s.configStore.GetString(KeyDataDir),
			PostgresDSN: s.configStore.GetString(KeyPostgresDSN),
		},
		Seed: domain.SeedSettings{
			Count: s.getInt(KeySeedCount, defaults.Seed.Count),
		},
		TUI: domain.TUISettings{
			LiveReload: s.getBool(KeyLiveReload, defaults.TUI.LiveReload),
		},
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if settings == nil {
		return domain.ErrInvalidInput
	}
	values := []struct {
		key string
		val any
	}{
		{KeyStorageDriver, settings.Storage.Driver.String()},
		{KeyDataDir, settings.Storage.DataDir},
		{KeyPostgresDSN, settings.Storage.PostgresDSN},
		{KeySeedCount, int64(settings.Seed.Count)},
		{KeyLiveReload, settings.TUI.LiveReload},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.val); err != nil {
			return fmt.Errorf("saving %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting by its config key. The value is parsed
// according to the key's type.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	switch key {
	case KeyStorageDriver:
		if !domain.StorageDriver(value).IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrUnsupportedDriver, value)
		}
		return s.configStore.Set(key, value)
	case KeyDataDir, KeyPostgresDSN:
		return s.configStore.Set(key, value)
	case KeySeedCount:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, int64(n))
	case KeyLiveReload:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, b)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Keys returns the recognised config keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{KeyStorageDriver, KeyDataDir, KeyPostgresDSN, KeySeedCount, KeyLiveReload}
	sort.Strings(keys)
	return keys
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if !settings.Storage.Driver.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedDriver, settings.Storage.Driver)
	}
	if settings.Storage.Driver == domain.StoragePostgres && settings.Storage.PostgresDSN == "" {
		return fmt.Errorf("%w: %s is required for the postgres driver", domain.ErrInvalidInput, KeyPostgresDSN)
	}
	if settings.Seed.Count < 1 {
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, KeySeedCount)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	b, ok := s.configStore.GetBool(key)
	if !ok {
		return defaultVal
	}
	return b
}
