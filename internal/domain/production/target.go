package production

import (
	"time"

	"github.com/google/uuid"
)

// Target seeds the target field of a new production log when its project is
// selected. Changing it never retroactively alters existing logs.
type Target struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	DefaultTarget int       `gorm:"not null;column:default_target" json:"default_target"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (Target) TableName() string { return "project_target" }
