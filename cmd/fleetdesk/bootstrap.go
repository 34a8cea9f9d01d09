package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/storage/watch"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/cli"
	"github.com/custodia-labs/fleetdesk/internal/core/domain"
	"github.com/custodia-labs/fleetdesk/internal/core/ports/driven"
	"github.com/custodia-labs/fleetdesk/internal/core/services"
	"github.com/custodia-labs/fleetdesk/internal/logger"
)

// stores is the storage backend selected by settings.
type stores struct {
	users         driven.UserStore
	vehicles      driven.VehicleStore
	subscriptions driven.SubscriptionStore
	// path is the SQLite database file, empty for other drivers.
	path  string
	close func() error
}

// bootstrap builds the services a command needs from the settings in
// opts.ConfigDir.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	if opts.ConfigOnly {
		return &cli.Services{Settings: settingsService}, nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if err := settingsService.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings (see 'fleetdesk settings'): %w", err)
	}

	st, err := openStores(ctx, settings.Storage)
	if err != nil {
		return nil, err
	}
	logger.Debug("bootstrap: storage driver %s", settings.Storage.Driver)

	s := &cli.Services{
		Users:         services.NewUserService(st.users, st.vehicles, st.subscriptions),
		Vehicles:      services.NewVehicleService(st.users, st.vehicles, st.subscriptions),
		Subscriptions: services.NewSubscriptionService(st.users, st.vehicles, st.subscriptions),
		Settings:      settingsService,
		Seeder:        services.NewSeeder(st.users, st.vehicles, st.subscriptions),
		Close:         st.close,
	}

	if opts.Watch && settings.TUI.LiveReload && st.path != "" {
		w, err := watch.New(st.path, watch.DefaultInterval)
		if err != nil {
			// The console still works without live reload.
			logger.Warn("bootstrap: live reload disabled: %v", err)
			return s, nil
		}
		watchCtx, cancel := context.WithCancel(ctx)
		go func() {
			if err := w.Run(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("bootstrap: watcher stopped: %v", err)
			}
		}()
		s.Changes = w.Changes()
		s.Close = func() error {
			cancel()
			return errors.Join(w.Close(), st.close())
		}
	}

	return s, nil
}

func openStores(ctx context.Context, cfg domain.StorageSettings) (*stores, error) {
	switch cfg.Driver {
	case domain.StorageMemory:
		return &stores{
			users:         memory.NewUserStore(),
			vehicles:      memory.NewVehicleStore(),
			subscriptions: memory.NewSubscriptionStore(),
			close:         func() error { return nil },
		}, nil
	case domain.StoragePostgres:
		pg, err := postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		return &stores{
			users:         pg.UserStore(),
			vehicles:      pg.VehicleStore(),
			subscriptions: pg.SubscriptionStore(),
			close:         pg.Close,
		}, nil
	case domain.StorageSQLite:
		db, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		return &stores{
			users:         db.UserStore(),
			vehicles:      db.VehicleStore(),
			subscriptions: db.SubscriptionStore(),
			path:          db.Path(),
			close:         db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedDriver, cfg.Driver)
	}
}
