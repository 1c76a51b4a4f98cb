package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opsdeck/qcdesk-backend/internal/data/repos"
	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/apierr"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

// gormBackend serves one database (remote postgres or local sqlite) through
// the shared repo set. Failures surface as transport errors so the composite
// can tell them apart from domain errors.
type gormBackend struct {
	name  string
	db    *gorm.DB
	repos repos.Set
	log   *logger.Logger
}

func NewGormBackend(name string, db *gorm.DB, reposet repos.Set, baseLog *logger.Logger) Backend {
	return &gormBackend{
		name:  name,
		db:    db,
		repos: reposet,
		log:   baseLog.With("backend", name),
	}
}

func (b *gormBackend) wrap(err error) error {
	if err == nil {
		return nil
	}
	return apierr.Transport(err)
}

func (b *gormBackend) Ping(ctx context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return b.wrap(err)
	}
	return b.wrap(sqlDB.PingContext(ctx))
}

func (b *gormBackend) ListAccounts(ctx context.Context) ([]*types.Account, error) {
	results, err := b.repos.Accounts.List(ctx, nil)
	return results, b.wrap(err)
}

func (b *gormBackend) UpsertAccount(ctx context.Context, acct *types.Account) error {
	return b.wrap(b.repos.Accounts.Upsert(ctx, nil, acct))
}

func (b *gormBackend) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return b.wrap(b.repos.Accounts.DeleteByID(ctx, nil, id))
}

func (b *gormBackend) ListEvaluationRecords(ctx context.Context) ([]*types.EvaluationRecord, error) {
	results, err := b.repos.Records.List(ctx, nil)
	return results, b.wrap(err)
}

func (b *gormBackend) UpsertEvaluationRecord(ctx context.Context, record *types.EvaluationRecord) error {
	return b.wrap(b.repos.Records.Upsert(ctx, nil, record))
}

func (b *gormBackend) DeleteEvaluationRecord(ctx context.Context, id uuid.UUID) error {
	return b.wrap(b.repos.Records.DeleteByID(ctx, nil, id))
}

func (b *gormBackend) ListProductionLogs(ctx context.Context) ([]*types.ProductionLog, error) {
	results, err := b.repos.ProductionLogs.List(ctx, nil)
	return results, b.wrap(err)
}

func (b *gormBackend) UpsertProductionLog(ctx context.Context, plog *types.ProductionLog) error {
	return b.wrap(b.repos.ProductionLogs.Upsert(ctx, nil, plog))
}

func (b *gormBackend) DeleteProductionLog(ctx context.Context, id uuid.UUID) error {
	return b.wrap(b.repos.ProductionLogs.DeleteByID(ctx, nil, id))
}

func (b *gormBackend) ListProjectTargets(ctx context.Context) ([]*types.ProjectTarget, error) {
	results, err := b.repos.ProjectTargets.List(ctx, nil)
	return results, b.wrap(err)
}

func (b *gormBackend) UpsertProjectTarget(ctx context.Context, target *types.ProjectTarget) error {
	return b.wrap(b.repos.ProjectTargets.Upsert(ctx, nil, target))
}
