package prompt

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/getcarekorea/content-engine/internal/learning"
	"github.com/getcarekorea/content-engine/internal/platform/apierr"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

const defaultTargetWordCount = 1500

// LearningProvider supplies performance-derived writing guidance. Satisfied
// by the learning extractor.
type LearningProvider interface {
	BuildLearningContext(ctx context.Context, keyword, locale, category string) learning.ContextV1
}

// FactsProvider supplies verifiable reference data (hospital and procedure
// facts) for the factual-context block.
type FactsProvider interface {
	FactualContext(ctx context.Context, locale, category string) (string, error)
}

type AssembleInput struct {
	Keyword               string `json:"keyword"`
	Locale                string `json:"locale"`
	Category              string `json:"category"`
	TargetWordCount       int    `json:"targetWordCount,omitempty"`
	IncludeLearning       bool   `json:"includeLearning"`
	IncludeFactualContext bool   `json:"includeFactualContext"`
}

type Metadata struct {
	Keyword         string `json:"keyword"`
	Locale          string `json:"locale"`
	Category        string `json:"category"`
	ContentType     string `json:"contentType"`
	SearchIntent    string `json:"searchIntent"`
	TargetWordCount int    `json:"targetWordCount"`
	LearningApplied bool   `json:"learningApplied"`
}

// PromptContext is the assembled prompt pair plus metadata. Ephemeral; it is
// never persisted.
type PromptContext struct {
	SystemPrompt string   `json:"systemPrompt"`
	UserPrompt   string   `json:"userPrompt"`
	Metadata     Metadata `json:"metadata"`
}

// Bridge assembles generation prompts. Reference blocks are placed before
// task instructions and tagged by source so the model can attribute claims.
// Provider failures degrade to omitting that block; assembly itself only
// fails on invalid input.
type Bridge struct {
	log      *logger.Logger
	learning LearningProvider
	facts    FactsProvider
}

func NewBridge(log *logger.Logger, learningProvider LearningProvider, facts FactsProvider) *Bridge {
	return &Bridge{
		log:      log.With("service", "PromptBridge"),
		learning: learningProvider,
		facts:    facts,
	}
}

func (b *Bridge) Assemble(ctx context.Context, in AssembleInput) (*PromptContext, error) {
	keyword := strings.TrimSpace(in.Keyword)
	locale := strings.TrimSpace(strings.ToLower(in.Locale))
	category := strings.TrimSpace(strings.ToLower(in.Category))
	if keyword == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_error", fmt.Errorf("keyword is required"))
	}
	if locale == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_error", fmt.Errorf("locale is required"))
	}
	wordCount := in.TargetWordCount
	if wordCount <= 0 {
		wordCount = defaultTargetWordCount
	}

	contentType := ClassifyContentType(keyword)
	meta := Metadata{
		Keyword:         keyword,
		Locale:          locale,
		Category:        category,
		ContentType:     contentType,
		SearchIntent:    SearchIntent(contentType),
		TargetWordCount: wordCount,
	}

	var blocks []string
	if in.IncludeFactualContext && b.facts != nil {
		text, err := b.facts.FactualContext(ctx, locale, category)
		if err != nil {
			b.log.Warn("factual-context provider failed, omitting block",
				"locale", locale, "category", category, "error", err)
		} else if text = strings.TrimSpace(text); text != "" {
			blocks = append(blocks, taggedBlock("factual-context", text))
		}
	}
	if in.IncludeLearning && b.learning != nil {
		lc := b.learning.BuildLearningContext(ctx, keyword, locale, category)
		if !lc.Empty() {
			blocks = append(blocks, taggedBlock("learning-context", lc.LearningContext))
			meta.LearningApplied = true
		}
	}
	blocks = append(blocks, taggedBlock("category-knowledge", CategoryKnowledge(category)))
	blocks = append(blocks, taggedBlock("locale-guidelines", LocaleGuidelines(locale)))

	return &PromptContext{
		SystemPrompt: systemPrompt(locale),
		UserPrompt:   userPrompt(blocks, meta),
		Metadata:     meta,
	}, nil
}

func taggedBlock(tag, body string) string {
	return fmt.Sprintf("<%s>\n%s\n</%s>", tag, strings.TrimSpace(body), tag)
}

func systemPrompt(locale string) string {
	return strings.Join([]string{
		"You are a senior medical-tourism content writer for GetCareKorea.",
		"You write accurate, conservative, SEO-optimized articles about medical treatment in Korea.",
		fmt.Sprintf("Write the entire article in the %q locale's language.", locale),
		"Only state facts supported by the reference blocks; where reference data is missing, use hedged general statements.",
		"Never invent clinic names, prices, or statistics.",
	}, " ")
}

// userPrompt renders reference blocks first, then the task instructions.
func userPrompt(blocks []string, meta Metadata) string {
	var b strings.Builder
	if len(blocks) > 0 {
		b.WriteString("Reference material, tagged by source:\n\n")
		for _, block := range blocks {
			b.WriteString(block)
			b.WriteString("\n\n")
		}
	}
	fmt.Fprintf(&b, "Task: write a %s article (search intent: %s) targeting the keyword %q.\n",
		meta.ContentType, meta.SearchIntent, meta.Keyword)
	fmt.Fprintf(&b, "Target length: about %d words. Category: %s. Locale: %s.\n",
		meta.TargetWordCount, orAny(meta.Category), meta.Locale)
	b.WriteString("Structure: compelling H1 title, short intro answering the searcher's question, ")
	b.WriteString("H2 sections, and a closing section inviting a free consultation. ")
	b.WriteString("Return Markdown only.")
	return b.String()
}

func orAny(s string) string {
	if s == "" {
		return "general"
	}
	return s
}
