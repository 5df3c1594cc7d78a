package enrich

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/deusflow/aifeed/internal/feed"
	"github.com/deusflow/aifeed/internal/logger"
	"github.com/deusflow/aifeed/internal/retry"
)

const openaiSystemPrompt = "You are an editor for a daily AI news digest read by engineers, " +
	"product managers and founders. You write short, concrete, hype-free copy. " +
	"Respond with JSON only."

// OpenAIEnricher generates summaries through the chat completions API.
type OpenAIEnricher struct {
	client   *openai.Client
	model    string
	retryCfg retry.Config
}

func NewOpenAIEnricher(apiKey, model string, retryAttempts int, retryDelay time.Duration) *OpenAIEnricher {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIEnricher{
		client: openai.NewClient(apiKey),
		model:  model,
		retryCfg: retry.Config{
			MaxAttempts: retryAttempts,
			Delay:       retryDelay,
			Backoff:     true,
		},
	}
}

func (e *OpenAIEnricher) Name() string { return "openai" }

func (e *OpenAIEnricher) EnrichSection(ctx context.Context, sectionSlug string, articles []*feed.Article) (map[string]Enrichment, error) {
	prompt, err := buildUserPrompt(sectionSlug, articles)
	if err != nil {
		return nil, err
	}

	var content string
	err = retry.Do(ctx, e.retryCfg, func() error {
		resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       e.model,
			Temperature: 0.2,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: openaiSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return fmt.Errorf("openai chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("openai returned no choices")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("openai enrichment response received", "section", sectionSlug, "chars", len(content))
	return parseItemsResponse(stripCodeFences(content))
}
