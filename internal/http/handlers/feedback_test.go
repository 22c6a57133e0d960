package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/learning"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

type stubItemRepo struct {
	item *types.ContentItem
}

func (f *stubItemRepo) Create(dbc dbctx.Context, rows []*types.ContentItem) ([]*types.ContentItem, error) {
	return rows, nil
}

func (f *stubItemRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ContentItem, error) {
	if f.item != nil && f.item.ID == id {
		return f.item, nil
	}
	return nil, nil
}

func (f *stubItemRepo) GetBySlug(dbc dbctx.Context, locale, slug string) (*types.ContentItem, error) {
	return nil, nil
}

func (f *stubItemRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.ContentItem, error) {
	return nil, nil
}

func (f *stubItemRepo) ListPublished(dbc dbctx.Context) ([]*types.ContentItem, error) {
	return nil, nil
}

func (f *stubItemRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]interface{}) error {
	return nil
}

type stubLearnRepo struct {
	rows []*types.LearningDataRecord
}

func (f *stubLearnRepo) Create(dbc dbctx.Context, rows []*types.LearningDataRecord) ([]*types.LearningDataRecord, error) {
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	f.rows = append(f.rows, rows...)
	return rows, nil
}

func (f *stubLearnRepo) ListRecent(dbc dbctx.Context, locale, category string, limit int) ([]*types.LearningDataRecord, error) {
	return nil, nil
}

func (f *stubLearnRepo) CountBySource(dbc dbctx.Context, sourceType string) (int64, error) {
	return 0, nil
}

type stubAuditRepo struct{}

func (f *stubAuditRepo) Create(dbc dbctx.Context, row *types.FeedbackEvent) error { return nil }

func (f *stubAuditRepo) ListByContentItem(dbc dbctx.Context, contentItemID uuid.UUID) ([]*types.FeedbackEvent, error) {
	return nil, nil
}

func newFeedbackRouter(t *testing.T, item *types.ContentItem) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	processor := learning.NewProcessor(log, &stubItemRepo{item: item}, &stubLearnRepo{}, &stubAuditRepo{})
	h := NewFeedbackHandler(log, processor)
	r := gin.New()
	r.POST("/api/admin/feedback", h.Submit)
	return r
}

func postFeedback(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/feedback", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestFeedbackSubmitSuccessEnvelope(t *testing.T) {
	item := &types.ContentItem{
		ID:       uuid.New(),
		Slug:     "implant-guide",
		Locale:   "en",
		Category: "dental",
		Title:    "Implant Guide",
		Body:     "Implants in Korea cost less than in the US.",
		Status:   types.StatusPublished,
	}
	r := newFeedbackRouter(t, item)

	w := postFeedback(r, fmt.Sprintf(`{"contentItemId":%q,"feedbackType":"positive","notes":"good"}`, item.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			LearningDataID *uuid.UUID `json:"learningDataId"`
			FeedbackType   string     `json:"feedbackType"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatalf("success = false, body = %s", w.Body.String())
	}
	if resp.Data.FeedbackType != "positive" {
		t.Fatalf("data.feedbackType = %q", resp.Data.FeedbackType)
	}
	if resp.Data.LearningDataID == nil || *resp.Data.LearningDataID == uuid.Nil {
		t.Fatalf("data.learningDataId missing, body = %s", w.Body.String())
	}
}

func TestFeedbackSubmitValidationError(t *testing.T) {
	r := newFeedbackRouter(t, nil)

	w := postFeedback(r, fmt.Sprintf(`{"contentItemId":%q,"feedbackType":"bogus"}`, uuid.New()))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Code != "validation_error" {
		t.Fatalf("error.code = %q", resp.Error.Code)
	}
}
