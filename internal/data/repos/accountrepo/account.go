package accountrepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

type AccountRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Account, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Account, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.Account, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	Upsert(ctx context.Context, tx *gorm.DB, acct *types.Account) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	repoLog := baseLog.With("repo", "AccountRepo")
	return &accountRepo{db: db, log: repoLog}
}

func (ar *accountRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Account
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *accountRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Account
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

func (ar *accountRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Account
	if len(emails) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("email IN ?", emails).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *accountRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *accountRepo) Upsert(ctx context.Context, tx *gorm.DB, acct *types.Account) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).Save(acct).Error
}

func (ar *accountRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Account{}).Error
}
