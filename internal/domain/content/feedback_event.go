package content

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackEvent is the audit trail of admin feedback. Every submission is
// recorded here, including negative feedback that produces no learning data.
type FeedbackEvent struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	ContentItemID uuid.UUID  `gorm:"type:uuid;not null;index" json:"content_item_id"`
	FeedbackType  string     `gorm:"type:text;not null" json:"feedback_type"` // positive|negative|edit
	Notes         string     `gorm:"type:text;not null;default:''" json:"notes"`
	AdminID       *uuid.UUID `gorm:"type:uuid;index" json:"admin_id,omitempty"`

	LearningDataID *uuid.UUID `gorm:"type:uuid" json:"learning_data_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (FeedbackEvent) TableName() string { return "feedback_event" }
