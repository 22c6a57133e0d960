package content

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/getcarekorea/content-engine/internal/data/repos/testutil"
	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
)

func TestContentItemCreateAndLookup(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewContentItemRepo(gdb, testutil.Logger(t))

	created, err := repo.Create(dbc, []*types.ContentItem{{
		Slug:     "implant-guide",
		Locale:   "en",
		Category: "dental",
		Keyword:  "dental implant korea",
		Title:    "Dental Implant Guide",
		Status:   types.StatusDraft,
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created[0].ID
	if id == uuid.Nil {
		t.Fatalf("id not assigned")
	}

	got, err := repo.GetByID(dbc, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Slug != "implant-guide" {
		t.Fatalf("GetByID = %+v", got)
	}

	got, err = repo.GetBySlug(dbc, "en", "implant-guide")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got == nil || got.ID != id {
		t.Fatalf("GetBySlug mismatch")
	}

	// Same slug in another locale is a different article.
	if got, err = repo.GetBySlug(dbc, "ko", "implant-guide"); err != nil || got != nil {
		t.Fatalf("cross-locale slug lookup = %+v / %v", got, err)
	}
}

func TestContentItemListPublishedExcludesDrafts(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewContentItemRepo(gdb, testutil.Logger(t))
	published := testutil.SeedContentItem(t, tx, "en", "pub-1", "dental")
	if _, err := repo.Create(dbc, []*types.ContentItem{{
		Slug:   "draft-1",
		Locale: "en",
		Title:  "Draft",
		Status: types.StatusDraft,
	}}); err != nil {
		t.Fatalf("Create draft: %v", err)
	}

	items, err := repo.ListPublished(dbc)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	for _, it := range items {
		if it.Status != types.StatusPublished {
			t.Fatalf("draft leaked into published list: %+v", it)
		}
	}
	found := false
	for _, it := range items {
		if it.ID == published.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("published item missing from list")
	}
}

func TestContentItemUpdateFields(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewContentItemRepo(gdb, testutil.Logger(t))
	item := testutil.SeedContentItem(t, tx, "en", "upd-1", "dental")

	if err := repo.UpdateFields(dbc, item.ID, map[string]interface{}{
		"title":  "Updated Title",
		"status": types.StatusDraft,
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	got, err := repo.GetByID(dbc, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Updated Title" || got.Status != types.StatusDraft {
		t.Fatalf("fields not updated: %+v", got)
	}
}
