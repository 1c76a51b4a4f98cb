package evaluationrepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

type RecordRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.EvaluationRecord, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.EvaluationRecord, error)
	Upsert(ctx context.Context, tx *gorm.DB, record *types.EvaluationRecord) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type recordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecordRepo(db *gorm.DB, baseLog *logger.Logger) RecordRepo {
	repoLog := baseLog.With("repo", "RecordRepo")
	return &recordRepo{db: db, log: repoLog}
}

func (rr *recordRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.EvaluationRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.EvaluationRecord
	if err := transaction.WithContext(ctx).
		Order("created_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recordRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.EvaluationRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.EvaluationRecord
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

func (rr *recordRepo) Upsert(ctx context.Context, tx *gorm.DB, record *types.EvaluationRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Save(record).Error
}

// DeleteByID is a hard remove; audit records are never soft-deleted.
func (rr *recordRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.EvaluationRecord{}).Error
}
