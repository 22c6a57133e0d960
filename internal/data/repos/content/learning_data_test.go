package content

import (
	"context"
	"testing"

	"github.com/getcarekorea/content-engine/internal/data/repos/testutil"
	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
)

func TestLearningDataCreateAndListRecent(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewLearningDataRepo(gdb, testutil.Logger(t))
	item := testutil.SeedContentItem(t, tx, "en", "learn-src", "dental")

	rows := []*types.LearningDataRecord{
		{
			ContentItemID: testutil.PtrUUID(item.ID),
			SourceType:    types.LearningSourceManual,
			FeedbackType:  types.FeedbackPositive,
			Locale:        "en",
			Category:      "dental",
			Pattern:       "Lead with the package price.",
		},
		{
			SourceType: types.LearningSourceAggregate,
			Locale:     "en",
			Category:   "dermatology",
			Pattern:    "Short titles with numbers win.",
		},
		{
			SourceType: types.LearningSourceAggregate,
			Locale:     "ko",
			Category:   "dental",
			Pattern:    "가격 비교 표를 상단에 배치.",
		},
	}
	created, err := repo.Create(dbc, rows)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, row := range created {
		if row.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Fatalf("row id not assigned")
		}
	}

	got, err := repo.ListRecent(dbc, "en", "dental", 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 1 || got[0].Pattern != "Lead with the package price." {
		t.Fatalf("locale+category filter failed: %d rows", len(got))
	}

	got, err = repo.ListRecent(dbc, "en", "", 10)
	if err != nil {
		t.Fatalf("ListRecent(all categories): %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("locale-wide rows = %d, want 2", len(got))
	}

	manual, err := repo.CountBySource(dbc, types.LearningSourceManual)
	if err != nil {
		t.Fatalf("CountBySource: %v", err)
	}
	if manual != 1 {
		t.Fatalf("manual count = %d, want 1", manual)
	}
}

func TestFeedbackEventCreateAndList(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewFeedbackEventRepo(gdb, testutil.Logger(t))
	item := testutil.SeedContentItem(t, tx, "en", "fb-item", "dental")

	for _, ft := range []string{types.FeedbackPositive, types.FeedbackNegative} {
		if err := repo.Create(dbc, &types.FeedbackEvent{ContentItemID: item.ID, FeedbackType: ft}); err != nil {
			t.Fatalf("Create(%s): %v", ft, err)
		}
	}

	events, err := repo.ListByContentItem(dbc, item.ID)
	if err != nil {
		t.Fatalf("ListByContentItem: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
}
