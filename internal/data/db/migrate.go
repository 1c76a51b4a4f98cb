package db

import (
	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"gorm.io/gorm"
)

// AutoMigrateAll is run against both the remote and the local store so the
// fallback can hold the full record set.
func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		// Identity + auth
		&types.Account{},
		&types.AccountToken{},

		// Audits
		&types.EvaluationRecord{},

		// Production tracking
		&types.ProductionLog{},
		&types.ProjectTarget{},
	)
}
