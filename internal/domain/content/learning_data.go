package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	FeedbackPositive = "positive"
	FeedbackNegative = "negative"
	FeedbackEdit     = "edit"

	LearningSourceManual    = "manual_feedback"
	LearningSourceAggregate = "aggregate_analysis"
)

// LearningDataRecord is a unit of reusable knowledge fed back into prompt
// construction. Rows come from admin feedback or scheduled high-performer
// analysis and are append-only.
type LearningDataRecord struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	ContentItemID *uuid.UUID   `gorm:"type:uuid;index" json:"content_item_id,omitempty"`
	ContentItem   *ContentItem `gorm:"constraint:OnDelete:SET NULL;foreignKey:ContentItemID;references:ID" json:"content_item,omitempty"`

	SourceType   string `gorm:"type:text;not null;index" json:"source_type"`              // manual_feedback|aggregate_analysis
	FeedbackType string `gorm:"type:text;not null;default:''" json:"feedback_type"`       // positive|edit (manual rows only)
	Locale       string `gorm:"type:text;not null;default:'';index" json:"locale"`
	Category     string `gorm:"type:text;not null;default:'';index" json:"category"`

	Pattern string `gorm:"type:text;not null;default:''" json:"pattern"`
	// Structured observation backing the pattern (title length, section
	// counts, sampled item ids, ...).
	Observation datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"observation"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (LearningDataRecord) TableName() string { return "learning_data_record" }
