package production

import (
	"time"

	"github.com/google/uuid"
)

// Log is one agent's production entry for a day on a project. The entry
// invariant target > 0 => actual <= 2*target is enforced at submission time
// by the production service.
type Log struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AgentName   string    `gorm:"not null;index;column:agent_name" json:"agent_name"`
	Date        string    `gorm:"not null;index;column:date" json:"date"`
	ProjectName string    `gorm:"not null;index;column:project_name" json:"project_name"`
	Target      int       `gorm:"not null;column:target" json:"target"`
	Actual      int       `gorm:"not null;column:actual" json:"actual"`
	LoggedAt    time.Time `gorm:"column:logged_at" json:"logged_at"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Log) TableName() string { return "production_log" }
