package directory

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/getcarekorea/content-engine/internal/data/repos/testutil"
	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
)

func TestHospitalListBySpecialty(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewHospitalRepo(gdb, testutil.Logger(t))
	if _, err := repo.Create(dbc, []*types.Hospital{
		{
			Slug:        "bright-dental",
			Name:        "Bright Dental",
			Specialties: datatypes.JSON([]byte(`["dental"]`)),
			Rating:      4.2,
		},
		{
			Slug:        "seoul-derm",
			Name:        "Seoul Derm",
			Specialties: datatypes.JSON([]byte(`["dermatology"]`)),
			Rating:      4.9,
		},
		{
			Slug:        "grand-multi",
			Name:        "Grand Multi",
			Specialties: datatypes.JSON([]byte(`["dental","dermatology"]`)),
			Rating:      4.7,
		},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.ListBySpecialty(dbc, "dental", 10)
	if err != nil {
		t.Fatalf("ListBySpecialty: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Slug != "grand-multi" {
		t.Fatalf("best-rated first, got %q", rows[0].Slug)
	}
}

func TestProcedureListByCategory(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewProcedureRepo(gdb, testutil.Logger(t))
	if _, err := repo.Create(dbc, []*types.Procedure{
		{Slug: "implant", Name: "Dental Implant", Category: "dental", PriceMinUSD: 1500, PriceMaxUSD: 3000},
		{Slug: "lasik", Name: "LASIK", Category: "ophthalmology", PriceMinUSD: 1200, PriceMaxUSD: 2200},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.ListByCategory(dbc, "dental", 10)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(rows) != 1 || rows[0].Slug != "implant" {
		t.Fatalf("category filter failed: %d rows", len(rows))
	}
}
