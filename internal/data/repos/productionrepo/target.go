package productionrepo

import (
	"context"

	"gorm.io/gorm"

	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

type TargetRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.ProjectTarget, error)
	GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.ProjectTarget, error)
	Upsert(ctx context.Context, tx *gorm.DB, target *types.ProjectTarget) error
}

type targetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTargetRepo(db *gorm.DB, baseLog *logger.Logger) TargetRepo {
	repoLog := baseLog.With("repo", "ProjectTargetRepo")
	return &targetRepo{db: db, log: repoLog}
}

func (tr *targetRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.ProjectTarget, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.ProjectTarget
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *targetRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.ProjectTarget, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.ProjectTarget
	if len(names) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("name IN ?", names).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *targetRepo) Upsert(ctx context.Context, tx *gorm.DB, target *types.ProjectTarget) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).Save(target).Error
}
