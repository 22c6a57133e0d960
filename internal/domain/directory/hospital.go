package directory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Hospital is a directory entry used as factual grounding for generated
// articles. Managed by the admin CRUD surface outside this service.
type Hospital struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Slug string `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Name string `gorm:"type:text;not null" json:"name"`
	City string `gorm:"type:text;not null;default:''" json:"city"`

	Specialties    datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"specialties"` // []string category keys
	Accreditations datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"accreditations"`
	Languages      datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"languages"`

	Rating      float64 `gorm:"type:double precision;not null;default:0" json:"rating"`
	ReviewCount int     `gorm:"not null;default:0" json:"review_count"`
	Description string  `gorm:"type:text;not null;default:''" json:"description"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Hospital) TableName() string { return "hospital" }
