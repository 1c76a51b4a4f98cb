package db

import (
	"fmt"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/opsdeck/qcdesk-backend/internal/platform/envutil"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

// OpenSQLite opens the local fallback store, a single file the service can
// keep serving from when the remote is unreachable.
func OpenSQLite(logg *logger.Logger) (*gorm.DB, error) {
	path := envutil.Str("LOCAL_STORE_PATH", "qcdesk-local.db")
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store %s: %w", path, err)
	}
	if logg != nil {
		abs, _ := filepath.Abs(path)
		logg.Info("opened local store", "path", abs)
	}
	return gdb, nil
}
