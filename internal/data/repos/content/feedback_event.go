package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

type FeedbackEventRepo interface {
	Create(dbc dbctx.Context, row *types.FeedbackEvent) error
	ListByContentItem(dbc dbctx.Context, contentItemID uuid.UUID) ([]*types.FeedbackEvent, error)
}

type feedbackEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackEventRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackEventRepo {
	return &feedbackEventRepo{db: db, log: baseLog.With("repo", "FeedbackEventRepo")}
}

func (r *feedbackEventRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *feedbackEventRepo) Create(dbc dbctx.Context, row *types.FeedbackEvent) error {
	if row == nil || row.ContentItemID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).Create(row).Error
}

func (r *feedbackEventRepo) ListByContentItem(dbc dbctx.Context, contentItemID uuid.UUID) ([]*types.FeedbackEvent, error) {
	out := []*types.FeedbackEvent{}
	if contentItemID == uuid.Nil {
		return out, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("content_item_id = ?", contentItemID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
