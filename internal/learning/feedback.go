package learning

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/getcarekorea/content-engine/internal/data/repos"
	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/apierr"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

const excerptLimit = 400

type FeedbackInput struct {
	ContentItemID uuid.UUID  `json:"contentItemId"`
	FeedbackType  string     `json:"feedbackType"`
	EditedContent string     `json:"editedContent,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	AdminID       *uuid.UUID `json:"-"`
}

type FeedbackResult struct {
	LearningDataID *uuid.UUID `json:"learningDataId,omitempty"`
	FeedbackType   string     `json:"feedbackType"`
}

// Processor converts admin feedback into learning rows. Negative feedback is
// acknowledged and audited but deliberately produces no learning data, so bad
// patterns are never reinforced.
type Processor struct {
	log     *logger.Logger
	items   repos.ContentItemRepo
	learned repos.LearningDataRepo
	audit   repos.FeedbackEventRepo
}

func NewProcessor(
	log *logger.Logger,
	items repos.ContentItemRepo,
	learned repos.LearningDataRepo,
	audit repos.FeedbackEventRepo,
) *Processor {
	return &Processor{
		log:     log.With("service", "FeedbackProcessor"),
		items:   items,
		learned: learned,
		audit:   audit,
	}
}

func validationError(msg string) error {
	return apierr.New(http.StatusBadRequest, "validation_error", fmt.Errorf("%s", msg))
}

func (p *Processor) Process(ctx context.Context, in FeedbackInput) (*FeedbackResult, error) {
	if in.ContentItemID == uuid.Nil {
		return nil, validationError("contentItemId is required")
	}
	feedbackType := strings.TrimSpace(strings.ToLower(in.FeedbackType))
	switch feedbackType {
	case types.FeedbackPositive, types.FeedbackNegative, types.FeedbackEdit:
	default:
		return nil, validationError("feedbackType must be positive, negative or edit")
	}
	if feedbackType == types.FeedbackEdit && strings.TrimSpace(in.EditedContent) == "" {
		return nil, validationError("editedContent is required for edit feedback")
	}

	dbc := dbctx.New(ctx)
	item, err := p.items.GetByID(dbc, in.ContentItemID)
	if err != nil {
		return nil, fmt.Errorf("load content item: %w", err)
	}
	if item == nil {
		return nil, validationError("contentItemId does not reference a known article")
	}

	var learningID *uuid.UUID
	if feedbackType != types.FeedbackNegative {
		row, err := p.buildLearningRow(item, feedbackType, in)
		if err != nil {
			return nil, err
		}
		created, err := p.learned.Create(dbc, []*types.LearningDataRecord{row})
		if err != nil {
			return nil, fmt.Errorf("persist learning data: %w", err)
		}
		learningID = &created[0].ID
	}

	p.bestEffortAudit(dbc, item.ID, feedbackType, in, learningID)

	p.log.Info("processed feedback",
		"content_item_id", item.ID,
		"feedback_type", feedbackType,
		"learning_row_created", learningID != nil)

	return &FeedbackResult{LearningDataID: learningID, FeedbackType: feedbackType}, nil
}

func (p *Processor) buildLearningRow(item *types.ContentItem, feedbackType string, in FeedbackInput) (*types.LearningDataRecord, error) {
	var pattern string
	observation := map[string]any{
		"title": item.Title,
		"notes": strings.TrimSpace(in.Notes),
	}

	switch feedbackType {
	case types.FeedbackPositive:
		pattern = fmt.Sprintf("Reinforced example: %q (%s/%s) confirmed effective by admin review.",
			item.Title, item.Locale, item.Category)
		observation["excerpt"] = excerpt(item.Body)
	case types.FeedbackEdit:
		pattern = fmt.Sprintf("Admin-preferred revision of %q (%s/%s); follow the edited structure over the original.",
			item.Title, item.Locale, item.Category)
		observation["edited_excerpt"] = excerpt(in.EditedContent)
		observation["edited_content"] = in.EditedContent
	}

	raw, err := json.Marshal(observation)
	if err != nil {
		return nil, err
	}
	return &types.LearningDataRecord{
		ContentItemID: &item.ID,
		SourceType:    types.LearningSourceManual,
		FeedbackType:  feedbackType,
		Locale:        item.Locale,
		Category:      item.Category,
		Pattern:       pattern,
		Observation:   datatypes.JSON(raw),
		CreatedBy:     in.AdminID,
	}, nil
}

// bestEffortAudit records who gave feedback and when. Audit failures are
// logged and swallowed; they never fail the feedback operation itself.
func (p *Processor) bestEffortAudit(dbc dbctx.Context, itemID uuid.UUID, feedbackType string, in FeedbackInput, learningID *uuid.UUID) {
	event := &types.FeedbackEvent{
		ContentItemID:  itemID,
		FeedbackType:   feedbackType,
		Notes:          strings.TrimSpace(in.Notes),
		AdminID:        in.AdminID,
		LearningDataID: learningID,
	}
	if err := p.audit.Create(dbc, event); err != nil {
		p.log.Warn("feedback audit write failed", "content_item_id", itemID, "error", err)
	}
}

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= excerptLimit {
		return s
	}
	return string(runes[:excerptLimit]) + "…"
}
