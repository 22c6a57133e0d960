package anthropic

import (
	"context"
	"fmt"
	"os"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/getcarekorea/content-engine/internal/platform/envutil"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

const defaultModel = "claude-sonnet-4-20250514"

// Client is the text-generation dependency of the article pipeline.
type Client interface {
	GenerateText(ctx context.Context, system, user string) (string, error)
}

type client struct {
	log      *logger.Logger
	api      sdk.Client
	model    string
	maxToken int64
}

// NewClient reads ANTHROPIC_API_KEY. Model and token ceiling are
// overridable through ANTHROPIC_MODEL and ANTHROPIC_MAX_TOKENS.
func NewClient(log *logger.Logger) (Client, error) {
	key := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if key == "" {
		return nil, fmt.Errorf("missing ANTHROPIC_API_KEY")
	}
	return &client{
		log:      log.With("client", "Anthropic"),
		api:      sdk.NewClient(option.WithAPIKey(key)),
		model:    envutil.String("ANTHROPIC_MODEL", defaultModel),
		maxToken: int64(envutil.Int("ANTHROPIC_MAX_TOKENS", 4096)),
	}, nil
}

func (c *client) GenerateText(ctx context.Context, system, user string) (string, error) {
	msg, err := c.api.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxToken,
		System:    []sdk.TextBlockParam{{Text: system}},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages.new: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("anthropic returned no text content")
	}
	c.log.Debug("generation complete", "model", c.model, "output_chars", len(out))
	return out, nil
}
