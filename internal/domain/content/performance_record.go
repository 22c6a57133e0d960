package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TierTop = "top"
	TierMid = "mid"
	TierLow = "low"
)

// PerformanceRecord is one search-performance measurement of a content item
// over an inclusive calendar date range. At most one row exists per
// (content_item_id, range_start, range_end); collection runs upsert on that
// key and history across ranges is retained.
type PerformanceRecord struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	ContentItemID uuid.UUID    `gorm:"type:uuid;not null;index;index:idx_performance_record_range,unique,priority:1" json:"content_item_id"`
	ContentItem   *ContentItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContentItemID;references:ID" json:"content_item,omitempty"`

	RangeStart datatypes.Date `gorm:"not null;index:idx_performance_record_range,unique,priority:2" json:"range_start"`
	RangeEnd   datatypes.Date `gorm:"not null;index:idx_performance_record_range,unique,priority:3" json:"range_end"`

	Impressions int64   `gorm:"not null;default:0" json:"impressions"`
	Clicks      int64   `gorm:"not null;default:0" json:"clicks"`
	CTR         float64 `gorm:"column:ctr;type:double precision;not null;default:0" json:"ctr"`
	// Impression-weighted average position across queries; 1 is the top result.
	AvgPosition float64 `gorm:"type:double precision;not null;default:0" json:"avg_position"`

	Tier            string `gorm:"type:text;not null;default:'low';index" json:"tier"` // top|mid|low
	IsHighPerformer bool   `gorm:"not null;default:false;index" json:"is_high_performer"`

	// Per-query breakdown from the analytics provider, kept for inspection.
	TopQueries datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"top_queries"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (PerformanceRecord) TableName() string { return "performance_record" }
