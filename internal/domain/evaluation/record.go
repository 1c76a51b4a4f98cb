package evaluation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Record is one audit event. A record is never soft-deleted: deletion is a
// hard remove, and an edit either overwrites in place by ID or forks a new
// record when a regular audit is reclassified as rework.
type Record struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Date           string         `gorm:"not null;index;column:date" json:"date"`
	TimeSlot       string         `gorm:"not null;column:time_slot" json:"time_slot"`
	AgentName      string         `gorm:"not null;index;column:agent_name" json:"agent_name"`
	ProjectName    string         `gorm:"not null;index;column:project_name" json:"project_name"`
	TaskName       string         `gorm:"not null;column:task_name" json:"task_name"`
	TeamLeadName   string         `gorm:"not null;column:team_lead_name" json:"team_lead_name"`
	QCCheckerName  string         `gorm:"not null;column:qc_checker_name" json:"qc_checker_name"`
	Classification Classification `gorm:"not null;index;column:classification" json:"classification"`

	Score          int            `gorm:"column:score" json:"score"`
	ReworkScore    *int           `gorm:"column:rework_score" json:"rework_score,omitempty"`
	ManualQC       bool           `gorm:"column:manual_qc" json:"manual_qc"`
	ManualErrors   datatypes.JSON `gorm:"column:manual_errors" json:"manual_errors"`
	ManualFeedback string         `gorm:"column:manual_feedback" json:"manual_feedback"`
	Samples        datatypes.JSON `gorm:"column:samples" json:"samples"`
	RangeStart     string         `gorm:"column:range_start" json:"range_start"`
	RangeEnd       string         `gorm:"column:range_end" json:"range_end"`

	Notes string `gorm:"not null;column:notes" json:"notes"`

	// CreatedAt is the submission timestamp and the sole ordering key for
	// most-recent-first listings. Overwrites keep the original value.
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Record) TableName() string { return "evaluation_record" }
