package directory

import (
	"strings"

	"gorm.io/gorm"

	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

type ProcedureRepo interface {
	Create(dbc dbctx.Context, rows []*types.Procedure) ([]*types.Procedure, error)
	ListByCategory(dbc dbctx.Context, category string, limit int) ([]*types.Procedure, error)
}

type procedureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProcedureRepo(db *gorm.DB, baseLog *logger.Logger) ProcedureRepo {
	return &procedureRepo{db: db, log: baseLog.With("repo", "ProcedureRepo")}
}

func (r *procedureRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *procedureRepo) Create(dbc dbctx.Context, rows []*types.Procedure) ([]*types.Procedure, error) {
	if len(rows) == 0 {
		return rows, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).Create(rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *procedureRepo) ListByCategory(dbc dbctx.Context, category string, limit int) ([]*types.Procedure, error) {
	out := []*types.Procedure{}
	category = strings.TrimSpace(category)
	if category == "" {
		return out, nil
	}
	if limit <= 0 {
		limit = 5
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("category = ?", category).
		Order("name ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
