package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentItem is a published blog article. Authoring happens outside this
// service; we only read items to resolve URLs and categories.
type ContentItem struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Slug   string `gorm:"type:text;not null;index:idx_content_item_locale_slug,unique,priority:2" json:"slug"`
	Locale string `gorm:"type:text;not null;index:idx_content_item_locale_slug,unique,priority:1" json:"locale"`

	Category string `gorm:"type:text;not null;index" json:"category"`
	Keyword  string `gorm:"type:text;not null;default:''" json:"keyword"`

	Title string `gorm:"type:text;not null;default:''" json:"title"`
	Body  string `gorm:"type:text;not null;default:''" json:"body"`

	Status      string     `gorm:"type:text;not null;default:'draft';index" json:"status"` // draft|published
	PublishedAt *time.Time `gorm:"index" json:"published_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContentItem) TableName() string { return "content_item" }

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)
