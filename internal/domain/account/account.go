package account

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleQC      = "qc"
	RoleAgent   = "agent"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleQC, RoleAgent:
		return true
	default:
		return false
	}
}

// Elevated roles may touch other agents' production logs and project targets.
func Elevated(role string) bool {
	return role == RoleAdmin || role == RoleManager
}

// Account rows are hard-deleted so a removed account's email frees up
// for reuse under the unique index.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null;column:name" json:"name"`
	Role         string    `gorm:"not null;index;column:role" json:"role"`
	Gender       string    `gorm:"column:gender" json:"gender"`
	Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash string    `gorm:"not null;column:password_hash" json:"-"`
	PhoneNumber  string    `gorm:"column:phone_number" json:"phone_number"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Account) TableName() string { return "account" }
