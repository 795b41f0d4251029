package inference

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"aramesh-server/services/therapy-api/internal/config"
	"aramesh-server/services/therapy-api/internal/domain/chat"
	"aramesh-server/services/therapy-api/internal/domain/conversation"
	"aramesh-server/services/therapy-api/internal/utils/functional"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

// Client relays assembled prompts to an OpenAI-compatible chat completions
// endpoint.
type Client struct {
	api        *openai.Client
	model      string
	callBudget time.Duration
	configured bool
	logger     zerolog.Logger
}

// NewClient builds the provider client. A missing API key does not fail
// startup; it surfaces as an INTERNAL error on the first call so the rest of
// the service (auth, moods, journals) stays usable.
func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	c := &Client{
		model:      cfg.AIModelName,
		callBudget: cfg.AICallBudget,
		logger:     logger,
	}
	if strings.TrimSpace(cfg.AIAPIKey) == "" {
		logger.Warn().Msg("AI_API_KEY is not set; chat completions will fail until configured")
		return c
	}

	clientConfig := openai.DefaultConfig(cfg.AIAPIKey)
	if cfg.AIBaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.AIBaseURL, "/")
	}
	c.api = openai.NewClientWithConfig(clientConfig)
	c.configured = true
	return c
}

var _ chat.GenerationClient = (*Client)(nil)

// Complete sends the prompt and returns the first choice plus usage.
func (c *Client) Complete(ctx context.Context, entries []chat.PromptEntry) (*chat.Completion, error) {
	if !c.configured {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "AI provider is not configured", nil, "0a2b4c6d-8e0f-4a2b-9c4d-6e8f0a2b4c6d")
	}

	if c.callBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callBudget)
		defer cancel()
	}

	messages := functional.Map(entries, func(e chat.PromptEntry) openai.ChatCompletionMessage {
		return openai.ChatCompletionMessage{Role: e.Role, Content: e.Content}
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "chat completion request failed", err, "2c4d6e8f-0a1b-4c3d-8e5f-7a9b1c3d5e7f")
	}

	if len(resp.Choices) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "provider returned no choices", nil, "4e6f8a0b-2c3d-4e5f-a7b9-c1d3e5f7a9b1")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "provider returned empty message content", nil, "6a8c0e2f-4b5d-4e6f-8a0b-2c4d6e8f0a1b")
	}

	// Usage is attributed to the configured model name, not whatever alias
	// the provider echoes back.
	completion := &chat.Completion{
		Text:  content,
		Model: c.model,
	}

	// Zero-valued usage from the provider still counts as reported usage;
	// only a fully absent block is treated as missing.
	if resp.Usage.PromptTokens != 0 || resp.Usage.CompletionTokens != 0 || resp.Usage.TotalTokens != 0 {
		total := resp.Usage.TotalTokens
		if total == 0 {
			total = resp.Usage.PromptTokens + resp.Usage.CompletionTokens
		}
		completion.Usage = &conversation.TokenCount{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      total,
		}
	}

	return completion, nil
}
