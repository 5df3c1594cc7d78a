package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/deusflow/aifeed/internal/feed"
	"github.com/deusflow/aifeed/internal/logger"
	"github.com/deusflow/aifeed/internal/retry"
)

// GeminiEnricher is the alternate provider, used when only a Gemini key
// is configured.
type GeminiEnricher struct {
	apiKey   string
	model    string
	retryCfg retry.Config
}

func NewGeminiEnricher(apiKey string, retryAttempts int, retryDelay time.Duration) *GeminiEnricher {
	return &GeminiEnricher{
		apiKey: apiKey,
		model:  "gemini-1.5-flash",
		retryCfg: retry.Config{
			MaxAttempts: retryAttempts,
			Delay:       retryDelay,
			Backoff:     true,
		},
	}
}

func (e *GeminiEnricher) Name() string { return "gemini" }

func (e *GeminiEnricher) EnrichSection(ctx context.Context, sectionSlug string, articles []*feed.Article) (map[string]Enrichment, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	prompt, err := buildUserPrompt(sectionSlug, articles)
	if err != nil {
		return nil, err
	}
	prompt = openaiSystemPrompt + "\n\n" + prompt

	model := client.GenerativeModel(e.model)
	model.SetTemperature(0.2)

	var content string
	err = retry.Do(ctx, e.retryCfg, func() error {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return fmt.Errorf("gemini generate: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return fmt.Errorf("gemini returned no candidates")
		}
		var builder strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok {
				builder.WriteString(string(text))
			}
		}
		content = builder.String()
		if content == "" {
			return fmt.Errorf("gemini returned empty content")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("gemini enrichment response received", "section", sectionSlug, "chars", len(content))
	return parseItemsResponse(stripCodeFences(content))
}

// stripCodeFences removes markdown fencing that models sometimes wrap
// around JSON even when asked not to.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
