package productionrepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

type LogRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.ProductionLog, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ProductionLog, error)
	Upsert(ctx context.Context, tx *gorm.DB, plog *types.ProductionLog) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type logRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLogRepo(db *gorm.DB, baseLog *logger.Logger) LogRepo {
	repoLog := baseLog.With("repo", "ProductionLogRepo")
	return &logRepo{db: db, log: repoLog}
}

func (lr *logRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.ProductionLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.ProductionLog
	if err := transaction.WithContext(ctx).
		Order("date desc, created_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *logRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ProductionLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.ProductionLog
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *logRepo) Upsert(ctx context.Context, tx *gorm.DB, plog *types.ProductionLog) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).Save(plog).Error
}

func (lr *logRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.ProductionLog{}).Error
}
