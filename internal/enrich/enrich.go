// Package enrich fills every curated article's SummaryText and WhyItMatters,
// by an LLM provider when one is configured and by a deterministic local
// fallback in every other case. The fallback never fails and never touches
// the network, so rendering always has copy to work with.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deusflow/aifeed/internal/config"
	"github.com/deusflow/aifeed/internal/feed"
	"github.com/deusflow/aifeed/internal/logger"
	"github.com/deusflow/aifeed/internal/metrics"
	"github.com/deusflow/aifeed/internal/ratelimit"
	"github.com/deusflow/aifeed/internal/textutil"
)

const (
	summaryMaxChars = 260
	whyMaxChars     = 180
	inputMaxChars   = 360

	// A hung provider must not stall the run; the fallback covers whatever
	// the provider failed to return within this window.
	sectionCallTimeout = 90 * time.Second
)

// Enrichment is the generated copy for one article.
type Enrichment struct {
	Summary      string `json:"summary"`
	WhyItMatters string `json:"why_it_matters"`
}

// Enricher is the capability boundary to a generation service. A provider
// may return a partial map or fail outright; callers must fall back for
// every article the result does not cover.
type Enricher interface {
	Name() string
	EnrichSection(ctx context.Context, sectionSlug string, articles []*feed.Article) (map[string]Enrichment, error)
}

// Unavailable is the no-credentials implementation: every call fails, so
// every article takes the fallback path.
type Unavailable struct{}

func (Unavailable) Name() string { return "unavailable" }

func (Unavailable) EnrichSection(context.Context, string, []*feed.Article) (map[string]Enrichment, error) {
	return nil, fmt.Errorf("no enrichment provider configured")
}

// Apply runs the provider per section and guarantees that afterwards every
// article has non-empty enrichment fields.
func Apply(ctx context.Context, enricher Enricher, budget *ratelimit.Budget, sections map[string][]*feed.Article) {
	for _, section := range config.Sections {
		articles := sections[section.Slug]
		if len(articles) == 0 {
			continue
		}

		var generated map[string]Enrichment
		if err := budget.Allow(enricher.Name()); err != nil {
			logger.Warn("skipping enrichment call", "section", section.Slug, "reason", err)
		} else {
			metrics.Global.IncrementEnrichmentCalls()
			callCtx, cancel := context.WithTimeout(ctx, sectionCallTimeout)
			result, err := enricher.EnrichSection(callCtx, section.Slug, articles)
			cancel()
			if err != nil {
				metrics.Global.IncrementEnrichmentFailures()
				logger.Warn("enrichment failed, using fallback", "section", section.Slug, "provider", enricher.Name(), "error", err)
			} else {
				generated = result
			}
		}

		for _, article := range articles {
			if enrichment, ok := generated[article.ID]; ok && enrichment.Summary != "" {
				article.SummaryText = textutil.SafeSentence(enrichment.Summary, summaryMaxChars)
				article.WhyItMatters = textutil.SafeSentence(enrichment.WhyItMatters, whyMaxChars)
				continue
			}
			article.SummaryText, article.WhyItMatters = Fallback(article, section.Slug)
		}
	}
}

// Fallback derives copy from the article's own text: a capped summary plus
// a "why it matters" sentence templated from the section lens and source.
func Fallback(article *feed.Article, sectionSlug string) (string, string) {
	sourceText := article.Summary
	if sourceText == "" {
		sourceText = article.Title
	}
	summary := textutil.SafeSentence(sourceText, 220)

	lens := "why this matters"
	if section, ok := config.SectionBySlug[sectionSlug]; ok && section.Lens != "" {
		lens = section.Lens
	}
	why := textutil.SafeSentence(
		fmt.Sprintf("This matters for %s, based on this update from %s.", lens, article.SourceName),
		160,
	)
	return summary, why
}

// promptPayload is what providers see per article: enough to summarize,
// small enough to keep prompts bounded.
type promptPayload struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Source       string `json:"source"`
	URL          string `json:"url"`
	SummaryInput string `json:"summary_input"`
}

func buildPayload(articles []*feed.Article) []promptPayload {
	payload := make([]promptPayload, 0, len(articles))
	for _, article := range articles {
		payload = append(payload, promptPayload{
			ID:           article.ID,
			Title:        article.Title,
			Source:       article.SourceName,
			URL:          article.URL,
			SummaryInput: textutil.SafeSentence(article.Summary, inputMaxChars),
		})
	}
	return payload
}

func buildUserPrompt(sectionSlug string, articles []*feed.Article) (string, error) {
	lens := "why it matters"
	if section, ok := config.SectionBySlug[sectionSlug]; ok && section.Lens != "" {
		lens = section.Lens
	}
	payload, err := json.Marshal(buildPayload(articles))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"Section: %s\n"+
			"For each item, create:\n"+
			"1) \"summary\" = <= 45 words, factual.\n"+
			"2) \"why_it_matters\" = <= 28 words, actionable.\n"+
			"Focus lens: %s.\n"+
			"Input JSON:\n%s\n\n"+
			"Return JSON object with exact shape:\n"+
			"{\"items\":[{\"id\":\"...\",\"summary\":\"...\",\"why_it_matters\":\"...\"}]}",
		sectionSlug, lens, payload,
	), nil
}

// parseItemsResponse decodes the providers' shared response shape.
func parseItemsResponse(content string) (map[string]Enrichment, error) {
	var parsed struct {
		Items []struct {
			ID           string `json:"id"`
			Summary      string `json:"summary"`
			WhyItMatters string `json:"why_it_matters"`
		} `json:"items"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("parse enrichment response: %w", err)
	}
	result := make(map[string]Enrichment, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.ID == "" {
			continue
		}
		result[item.ID] = Enrichment{
			Summary:      item.Summary,
			WhyItMatters: item.WhyItMatters,
		}
	}
	return result, nil
}
