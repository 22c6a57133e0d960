package directory

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

type HospitalRepo interface {
	Create(dbc dbctx.Context, rows []*types.Hospital) ([]*types.Hospital, error)
	// ListBySpecialty returns hospitals whose specialties array contains the
	// category key, best-rated first.
	ListBySpecialty(dbc dbctx.Context, category string, limit int) ([]*types.Hospital, error)
}

type hospitalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHospitalRepo(db *gorm.DB, baseLog *logger.Logger) HospitalRepo {
	return &hospitalRepo{db: db, log: baseLog.With("repo", "HospitalRepo")}
}

func (r *hospitalRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *hospitalRepo) Create(dbc dbctx.Context, rows []*types.Hospital) ([]*types.Hospital, error) {
	if len(rows) == 0 {
		return rows, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).Create(rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *hospitalRepo) ListBySpecialty(dbc dbctx.Context, category string, limit int) ([]*types.Hospital, error) {
	out := []*types.Hospital{}
	category = strings.TrimSpace(category)
	if category == "" {
		return out, nil
	}
	if limit <= 0 {
		limit = 5
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where(datatypes.JSONArrayQuery("specialties").Contains(category)).
		Order("rating DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
