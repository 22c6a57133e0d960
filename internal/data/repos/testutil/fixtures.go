package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/getcarekorea/content-engine/internal/domain"
)

func PtrUUID(id uuid.UUID) *uuid.UUID { return &id }

func SeedContentItem(tb testing.TB, tx *gorm.DB, locale, slug, category string) *types.ContentItem {
	tb.Helper()
	now := time.Now().UTC()
	item := &types.ContentItem{
		ID:          uuid.New(),
		Slug:        slug,
		Locale:      locale,
		Category:    category,
		Title:       slug,
		Status:      types.StatusPublished,
		PublishedAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.Create(item).Error; err != nil {
		tb.Fatalf("seed content item: %v", err)
	}
	return item
}
