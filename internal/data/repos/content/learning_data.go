package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

type LearningDataRepo interface {
	Create(dbc dbctx.Context, rows []*types.LearningDataRecord) ([]*types.LearningDataRecord, error)
	// ListRecent returns newest-first learning rows for a locale, category
	// optional ("" = any).
	ListRecent(dbc dbctx.Context, locale, category string, limit int) ([]*types.LearningDataRecord, error)
	CountBySource(dbc dbctx.Context, sourceType string) (int64, error)
}

type learningDataRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningDataRepo(db *gorm.DB, baseLog *logger.Logger) LearningDataRepo {
	return &learningDataRepo{db: db, log: baseLog.With("repo", "LearningDataRepo")}
}

func (r *learningDataRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *learningDataRepo) Create(dbc dbctx.Context, rows []*types.LearningDataRecord) ([]*types.LearningDataRecord, error) {
	if len(rows) == 0 {
		return rows, nil
	}
	now := time.Now().UTC()
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		row.UpdatedAt = now
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).Create(rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *learningDataRepo) ListRecent(dbc dbctx.Context, locale, category string, limit int) ([]*types.LearningDataRecord, error) {
	out := []*types.LearningDataRecord{}
	if limit <= 0 {
		limit = 20
	}
	q := r.dbx(dbc).WithContext(dbc.Ctx)
	if locale = strings.TrimSpace(strings.ToLower(locale)); locale != "" {
		q = q.Where("locale = ?", locale)
	}
	if category = strings.TrimSpace(category); category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *learningDataRepo) CountBySource(dbc dbctx.Context, sourceType string) (int64, error) {
	var n int64
	q := r.dbx(dbc).WithContext(dbc.Ctx).Model(&types.LearningDataRecord{})
	if sourceType = strings.TrimSpace(sourceType); sourceType != "" {
		q = q.Where("source_type = ?", sourceType)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
