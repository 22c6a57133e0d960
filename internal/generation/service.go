package generation

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"

	anthropicclient "github.com/getcarekorea/content-engine/internal/clients/anthropic"
	"github.com/getcarekorea/content-engine/internal/data/repos"
	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/apierr"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
	"github.com/getcarekorea/content-engine/internal/prompt"
)

type GenerateInput struct {
	Keyword               string `json:"keyword"`
	Locale                string `json:"locale"`
	Category              string `json:"category"`
	TargetWordCount       int    `json:"targetWordCount,omitempty"`
	IncludeLearning       bool   `json:"includeLearning"`
	IncludeFactualContext bool   `json:"includeFactualContext"`
}

type GenerateResult struct {
	ContentItemID uuid.UUID       `json:"contentItemId"`
	Slug          string          `json:"slug"`
	Title         string          `json:"title"`
	WordCount     int             `json:"wordCount"`
	Metadata      prompt.Metadata `json:"metadata"`
}

// Service runs the generation tail of the pipeline: assemble the augmented
// prompt, call the model, store the result as a draft article.
type Service struct {
	log    *logger.Logger
	bridge *prompt.Bridge
	llm    anthropicclient.Client
	items  repos.ContentItemRepo
}

func NewService(log *logger.Logger, bridge *prompt.Bridge, llm anthropicclient.Client, items repos.ContentItemRepo) *Service {
	return &Service{
		log:    log.With("service", "GenerationService"),
		bridge: bridge,
		llm:    llm,
		items:  items,
	}
}

func (s *Service) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	if s.llm == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "generation_unconfigured",
			fmt.Errorf("generation model client is not configured"))
	}

	pc, err := s.bridge.Assemble(ctx, prompt.AssembleInput{
		Keyword:               in.Keyword,
		Locale:                in.Locale,
		Category:              in.Category,
		TargetWordCount:       in.TargetWordCount,
		IncludeLearning:       in.IncludeLearning,
		IncludeFactualContext: in.IncludeFactualContext,
	})
	if err != nil {
		return nil, err
	}

	body, err := s.llm.GenerateText(ctx, pc.SystemPrompt, pc.UserPrompt)
	if err != nil {
		return nil, fmt.Errorf("generate article: %w", err)
	}

	title := extractTitle(body, pc.Metadata.Keyword)
	slug, err := s.resolveSlug(ctx, pc.Metadata.Locale, pc.Metadata.Keyword)
	if err != nil {
		return nil, err
	}

	item := &types.ContentItem{
		Slug:     slug,
		Locale:   pc.Metadata.Locale,
		Category: pc.Metadata.Category,
		Keyword:  pc.Metadata.Keyword,
		Title:    title,
		Body:     body,
		Status:   types.StatusDraft,
	}
	created, err := s.items.Create(dbctx.New(ctx), []*types.ContentItem{item})
	if err != nil {
		return nil, fmt.Errorf("store draft article: %w", err)
	}

	s.log.Info("generated draft article",
		"content_item_id", created[0].ID,
		"slug", slug,
		"locale", pc.Metadata.Locale,
		"content_type", pc.Metadata.ContentType,
		"learning_applied", pc.Metadata.LearningApplied)

	return &GenerateResult{
		ContentItemID: created[0].ID,
		Slug:          slug,
		Title:         title,
		WordCount:     len(strings.Fields(body)),
		Metadata:      pc.Metadata,
	}, nil
}

// resolveSlug slugifies the keyword and appends a short random suffix when
// the slug is already taken in that locale.
func (s *Service) resolveSlug(ctx context.Context, locale, keyword string) (string, error) {
	slug := Slugify(keyword)
	if slug == "" {
		slug = "article"
	}
	existing, err := s.items.GetBySlug(dbctx.New(ctx), locale, slug)
	if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if existing == nil {
		return slug, nil
	}
	return slug + "-" + uuid.NewString()[:8], nil
}

var nonSlugRe = regexp.MustCompile(`[^a-z0-9\p{Hangul}\p{Han}\p{Hiragana}\p{Katakana}]+`)

// Slugify lowercases and dash-joins a keyword, keeping CJK characters so
// localized slugs stay readable.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// extractTitle pulls the first markdown H1, falling back to the keyword.
func extractTitle(body, keyword string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return titleCase(keyword)
}

func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		r := []rune(f)
		if len(r) > 0 {
			fields[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(fields, " ")
}
