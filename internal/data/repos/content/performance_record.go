package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

type TierCount struct {
	Tier  string `json:"tier"`
	Count int64  `json:"count"`
}

type PerformanceRecordRepo interface {
	GetByKey(dbc dbctx.Context, contentItemID uuid.UUID, rangeStart, rangeEnd datatypes.Date) (*types.PerformanceRecord, error)
	Upsert(dbc dbctx.Context, row *types.PerformanceRecord) error
	ListByContentItem(dbc dbctx.Context, contentItemID uuid.UUID) ([]*types.PerformanceRecord, error)
	// ListHighPerformers returns high-performer records joined with their
	// content items, locale required, category optional ("" = any).
	ListHighPerformers(dbc dbctx.Context, locale, category string, since time.Time, limit int) ([]*types.PerformanceRecord, error)
	CountByTier(dbc dbctx.Context, locale, category string) ([]TierCount, error)
}

type performanceRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPerformanceRecordRepo(db *gorm.DB, baseLog *logger.Logger) PerformanceRecordRepo {
	return &performanceRecordRepo{db: db, log: baseLog.With("repo", "PerformanceRecordRepo")}
}

func (r *performanceRecordRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *performanceRecordRepo) GetByKey(dbc dbctx.Context, contentItemID uuid.UUID, rangeStart, rangeEnd datatypes.Date) (*types.PerformanceRecord, error) {
	if contentItemID == uuid.Nil {
		return nil, nil
	}
	out := &types.PerformanceRecord{}
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("content_item_id = ? AND range_start = ? AND range_end = ?", contentItemID, rangeStart, rangeEnd).
		First(out).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert inserts or updates the measurement for the record's
// (content_item_id, range_start, range_end) key. Concurrent collection runs
// targeting the same range resolve last-write-wins through the conflict
// clause.
func (r *performanceRecordRepo) Upsert(dbc dbctx.Context, row *types.PerformanceRecord) error {
	if row == nil || row.ContentItemID == uuid.Nil {
		return nil
	}
	now := time.Now().UTC()
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	return r.dbx(dbc).WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "content_item_id"},
				{Name: "range_start"},
				{Name: "range_end"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"impressions", "clicks", "ctr", "avg_position",
				"tier", "is_high_performer", "top_queries", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *performanceRecordRepo) ListByContentItem(dbc dbctx.Context, contentItemID uuid.UUID) ([]*types.PerformanceRecord, error) {
	out := []*types.PerformanceRecord{}
	if contentItemID == uuid.Nil {
		return out, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("content_item_id = ?", contentItemID).
		Order("range_end DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *performanceRecordRepo) ListHighPerformers(dbc dbctx.Context, locale, category string, since time.Time, limit int) ([]*types.PerformanceRecord, error) {
	out := []*types.PerformanceRecord{}
	locale = strings.TrimSpace(strings.ToLower(locale))
	if locale == "" {
		return out, nil
	}
	if limit <= 0 {
		limit = 20
	}

	q := r.dbx(dbc).WithContext(dbc.Ctx).
		Joins("JOIN content_item ON content_item.id = performance_record.content_item_id").
		Where("performance_record.is_high_performer = ?", true).
		Where("content_item.locale = ?", locale).
		Where("content_item.deleted_at IS NULL")
	if category = strings.TrimSpace(category); category != "" {
		q = q.Where("content_item.category = ?", category)
	}
	if !since.IsZero() {
		q = q.Where("performance_record.range_end >= ?", datatypes.Date(since))
	}

	if err := q.
		Preload("ContentItem").
		Order("performance_record.ctr DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *performanceRecordRepo) CountByTier(dbc dbctx.Context, locale, category string) ([]TierCount, error) {
	out := []TierCount{}
	q := r.dbx(dbc).WithContext(dbc.Ctx).
		Model(&types.PerformanceRecord{}).
		Joins("JOIN content_item ON content_item.id = performance_record.content_item_id").
		Select("performance_record.tier AS tier, COUNT(*) AS count").
		Group("performance_record.tier")
	if locale = strings.TrimSpace(strings.ToLower(locale)); locale != "" {
		q = q.Where("content_item.locale = ?", locale)
	}
	if category = strings.TrimSpace(category); category != "" {
		q = q.Where("content_item.category = ?", category)
	}
	if err := q.Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
