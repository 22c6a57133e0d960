package repos

import (
	"gorm.io/gorm"

	"github.com/getcarekorea/content-engine/internal/data/repos/content"
	"github.com/getcarekorea/content-engine/internal/data/repos/directory"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

type ContentItemRepo = content.ContentItemRepo
type PerformanceRecordRepo = content.PerformanceRecordRepo
type LearningDataRepo = content.LearningDataRepo
type FeedbackEventRepo = content.FeedbackEventRepo

type HospitalRepo = directory.HospitalRepo
type ProcedureRepo = directory.ProcedureRepo

type TierCount = content.TierCount

func NewContentItemRepo(db *gorm.DB, baseLog *logger.Logger) ContentItemRepo {
	return content.NewContentItemRepo(db, baseLog)
}
func NewPerformanceRecordRepo(db *gorm.DB, baseLog *logger.Logger) PerformanceRecordRepo {
	return content.NewPerformanceRecordRepo(db, baseLog)
}
func NewLearningDataRepo(db *gorm.DB, baseLog *logger.Logger) LearningDataRepo {
	return content.NewLearningDataRepo(db, baseLog)
}
func NewFeedbackEventRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackEventRepo {
	return content.NewFeedbackEventRepo(db, baseLog)
}

func NewHospitalRepo(db *gorm.DB, baseLog *logger.Logger) HospitalRepo {
	return directory.NewHospitalRepo(db, baseLog)
}
func NewProcedureRepo(db *gorm.DB, baseLog *logger.Logger) ProcedureRepo {
	return directory.NewProcedureRepo(db, baseLog)
}
