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

type ContentItemRepo interface {
	Create(dbc dbctx.Context, rows []*types.ContentItem) ([]*types.ContentItem, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ContentItem, error)
	GetBySlug(dbc dbctx.Context, locale, slug string) (*types.ContentItem, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.ContentItem, error)
	ListPublished(dbc dbctx.Context) ([]*types.ContentItem, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]interface{}) error
}

type contentItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentItemRepo(db *gorm.DB, baseLog *logger.Logger) ContentItemRepo {
	return &contentItemRepo{db: db, log: baseLog.With("repo", "ContentItemRepo")}
}

func (r *contentItemRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *contentItemRepo) Create(dbc dbctx.Context, rows []*types.ContentItem) ([]*types.ContentItem, error) {
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

func (r *contentItemRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ContentItem, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	out := &types.ContentItem{}
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("id = ?", id).First(out).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *contentItemRepo) GetBySlug(dbc dbctx.Context, locale, slug string) (*types.ContentItem, error) {
	locale = strings.TrimSpace(strings.ToLower(locale))
	slug = strings.TrimSpace(slug)
	if locale == "" || slug == "" {
		return nil, nil
	}
	out := &types.ContentItem{}
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("locale = ? AND slug = ?", locale, slug).First(out).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *contentItemRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.ContentItem, error) {
	out := []*types.ContentItem{}
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *contentItemRepo) ListPublished(dbc dbctx.Context) ([]*types.ContentItem, error) {
	out := []*types.ContentItem{}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("status = ?", types.StatusPublished).
		Order("published_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *contentItemRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]interface{}) error {
	if id == uuid.Nil || len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Model(&types.ContentItem{}).
		Where("id = ?", id).
		Updates(fields).Error
}
