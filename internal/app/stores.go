package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/opsdeck/qcdesk-backend/internal/data/db"
	"github.com/opsdeck/qcdesk-backend/internal/data/repos"
	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

// wireStore builds the persistence backend for the configured mode and
// returns the gorm handle the auth/session tables live on. In the composite
// mode session data follows the reachable database so a remote outage does
// not lock everyone out.
func wireStore(cfg Config, log *logger.Logger) (store.Backend, *gorm.DB, error) {
	openRemote := func() (*gorm.DB, store.Backend, error) {
		pg, err := db.OpenPostgres(log)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.AutoMigrateAll(pg); err != nil {
			return nil, nil, fmt.Errorf("postgres automigrate: %w", err)
		}
		return pg, store.NewGormBackend("remote", pg, repos.NewSet(pg, log), log), nil
	}
	openLocal := func() (*gorm.DB, store.Backend, error) {
		lite, err := db.OpenSQLite(log)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := db.AutoMigrateAll(lite); err != nil {
			return nil, nil, fmt.Errorf("sqlite automigrate: %w", err)
		}
		return lite, store.NewGormBackend("local", lite, repos.NewSet(lite, log), log), nil
	}

	switch cfg.PersistenceMode {
	case "remote":
		pg, backend, err := openRemote()
		return backend, pg, err

	case "local":
		lite, backend, err := openLocal()
		return backend, lite, err

	case "memory":
		// Dev-only: everything evaporates on restart, including sessions.
		lite, _, err := openLocal()
		if err != nil {
			return nil, nil, err
		}
		return store.NewMemory(), lite, nil

	case "remote_then_local":
		lite, localBackend, err := openLocal()
		if err != nil {
			return nil, nil, err
		}
		pg, remoteBackend, err := openRemote()
		if err != nil {
			log.Warn("remote store unavailable at startup, running local-only", "error", err)
			return localBackend, lite, nil
		}
		return store.NewRemoteThenLocal(remoteBackend, localBackend, log), pg, nil

	default:
		return nil, nil, fmt.Errorf("unknown PERSISTENCE_MODE %q", cfg.PersistenceMode)
	}
}
