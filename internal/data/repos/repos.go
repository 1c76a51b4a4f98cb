package repos

import (
	"gorm.io/gorm"

	"github.com/opsdeck/qcdesk-backend/internal/data/repos/accountrepo"
	"github.com/opsdeck/qcdesk-backend/internal/data/repos/authrepo"
	"github.com/opsdeck/qcdesk-backend/internal/data/repos/evaluationrepo"
	"github.com/opsdeck/qcdesk-backend/internal/data/repos/productionrepo"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

type AccountRepo = accountrepo.AccountRepo
type AccountTokenRepo = authrepo.AccountTokenRepo
type RecordRepo = evaluationrepo.RecordRepo
type ProductionLogRepo = productionrepo.LogRepo
type ProjectTargetRepo = productionrepo.TargetRepo

// Set bundles one backing database's repos; the remote and local stores each
// carry their own Set over the same schema.
type Set struct {
	Accounts       AccountRepo
	Tokens         AccountTokenRepo
	Records        RecordRepo
	ProductionLogs ProductionLogRepo
	ProjectTargets ProjectTargetRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set {
	return Set{
		Accounts:       accountrepo.NewAccountRepo(db, baseLog),
		Tokens:         authrepo.NewAccountTokenRepo(db, baseLog),
		Records:        evaluationrepo.NewRecordRepo(db, baseLog),
		ProductionLogs: productionrepo.NewLogRepo(db, baseLog),
		ProjectTargets: productionrepo.NewTargetRepo(db, baseLog),
	}
}
