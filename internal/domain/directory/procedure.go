package directory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Procedure is a medical procedure with indicative pricing, used to ground
// pricing/comparison articles in verifiable numbers.
type Procedure struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Slug     string `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Name     string `gorm:"type:text;not null" json:"name"`
	Category string `gorm:"type:text;not null;index" json:"category"`

	PriceMinUSD  int `gorm:"not null;default:0" json:"price_min_usd"`
	PriceMaxUSD  int `gorm:"not null;default:0" json:"price_max_usd"`
	RecoveryDays int `gorm:"not null;default:0" json:"recovery_days"`

	Description string `gorm:"type:text;not null;default:''" json:"description"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Procedure) TableName() string { return "procedure" }
