package authrepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

type AccountTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tokens []*types.AccountToken) ([]*types.AccountToken, error)
	GetByAccountIDs(ctx context.Context, tx *gorm.DB, accountIDs []uuid.UUID) ([]*types.AccountToken, error)
	GetByAccessTokens(ctx context.Context, tx *gorm.DB, accessTokens []string) ([]*types.AccountToken, error)
	GetByRefreshTokens(ctx context.Context, tx *gorm.DB, refreshTokens []string) ([]*types.AccountToken, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type accountTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountTokenRepo(db *gorm.DB, baseLog *logger.Logger) AccountTokenRepo {
	repoLog := baseLog.With("repo", "AccountTokenRepo")
	return &accountTokenRepo{db: db, log: repoLog}
}

func (tr *accountTokenRepo) Create(ctx context.Context, tx *gorm.DB, tokens []*types.AccountToken) ([]*types.AccountToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(tokens) == 0 {
		return []*types.AccountToken{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (tr *accountTokenRepo) GetByAccountIDs(ctx context.Context, tx *gorm.DB, accountIDs []uuid.UUID) ([]*types.AccountToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.AccountToken
	if len(accountIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("account_id IN ?", accountIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *accountTokenRepo) GetByAccessTokens(ctx context.Context, tx *gorm.DB, accessTokens []string) ([]*types.AccountToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.AccountToken
	if len(accessTokens) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("access_token IN ?", accessTokens).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *accountTokenRepo) GetByRefreshTokens(ctx context.Context, tx *gorm.DB, refreshTokens []string) ([]*types.AccountToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.AccountToken
	if len(refreshTokens) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("refresh_token IN ?", refreshTokens).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *accountTokenRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.AccountToken{}).Error
}
