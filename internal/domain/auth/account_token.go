package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/qcdesk-backend/internal/domain/account"
)

type AccountToken struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID    uuid.UUID        `gorm:"index;not null" json:"account_id"`
	Account      *account.Account `gorm:"constraint:OnDelete:CASCADE;foreignKey:AccountID;references:ID" json:"account,omitempty"`
	AccessToken  string           `gorm:"uniqueIndex;not null;column:access_token" json:"access_token"`
	RefreshToken string           `gorm:"uniqueIndex;not null;column:refresh_token" json:"refresh_token"`
	ExpiresAt    time.Time        `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt    time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"not null" json:"updated_at"`
}

func (AccountToken) TableName() string { return "account_token" }
