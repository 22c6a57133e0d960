package db

import (
	"gorm.io/gorm"

	types "github.com/getcarekorea/content-engine/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.ContentItem{},
		&types.PerformanceRecord{},
		&types.LearningDataRecord{},
		&types.FeedbackEvent{},

		&types.Hospital{},
		&types.Procedure{},
	)
}
