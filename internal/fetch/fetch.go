// Package fetch pulls raw items from every configured source and normalizes
// them into feed.Article values. Each source is fetched independently; one
// source failing never aborts the run.
package fetch

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"

	"github.com/deusflow/aifeed/internal/canonical"
	"github.com/deusflow/aifeed/internal/config"
	"github.com/deusflow/aifeed/internal/feed"
	"github.com/deusflow/aifeed/internal/logger"
	"github.com/deusflow/aifeed/internal/metrics"
	"github.com/deusflow/aifeed/internal/retry"
	"github.com/deusflow/aifeed/internal/textutil"
)

const userAgent = "aifeed-bot/1.0 (+https://github.com/deusflow/aifeed)"

type Client struct {
	http     *http.Client
	retryCfg retry.Config
}

func NewClient(timeout time.Duration, attempts int, delay time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
		retryCfg: retry.Config{
			MaxAttempts: attempts,
			Delay:       delay,
			Backoff:     true,
		},
	}
}

// FetchAll fans out one worker per source and merges the per-worker slices
// only after every worker is done, so no collection is written concurrently.
func (c *Client) FetchAll(ctx context.Context, sources []config.Source) []*feed.Article {
	results := make([][]*feed.Article, len(sources))
	var wg sync.WaitGroup

	for i, source := range sources {
		wg.Add(1)
		go func(i int, source config.Source) {
			defer wg.Done()
			articles, err := c.fetchSource(ctx, source)
			metrics.Global.AddSourceResult(len(articles), err)
			if err != nil {
				logger.Warn("source fetch failed", "source", source.ID, "type", source.Type, "error", err)
				return
			}
			logger.Info("source fetched", "source", source.ID, "items", len(articles))
			results[i] = articles
		}(i, source)
	}
	wg.Wait()

	var all []*feed.Article
	for _, articles := range results {
		all = append(all, articles...)
	}
	return all
}

func (c *Client) fetchSource(ctx context.Context, source config.Source) ([]*feed.Article, error) {
	switch strings.ToLower(source.Type) {
	case "rss":
		return c.fetchRSS(ctx, source)
	case "hackernews":
		return c.fetchHackerNews(ctx, source)
	case "arxiv":
		return c.fetchArxiv(ctx, source)
	case "x":
		return c.fetchX(ctx, source)
	case "linkedin":
		return c.fetchLinkedIn(ctx, source)
	default:
		logger.Warn("skipping unsupported source type", "type", source.Type, "source", source.ID)
		return nil, nil
	}
}

// makeArticle normalizes one raw item. Items with no title are dropped by
// the callers before reaching here.
func makeArticle(source config.Source, title, rawURL, summary string, publishedAt *time.Time, itemMetrics map[string]float64) *feed.Article {
	canonicalURL := canonical.URL(rawURL)
	name := source.Name
	if name == "" {
		name = source.ID
	}
	if itemMetrics == nil {
		itemMetrics = map[string]float64{}
	}
	return &feed.Article{
		ID:          canonical.StableID(firstNonEmpty(canonicalURL, title), title),
		Title:       textutil.StripHTML(title),
		URL:         canonicalURL,
		Summary:     textutil.StripHTML(summary),
		SourceName:  name,
		SourceType:  source.Type,
		Domain:      canonical.Domain(canonicalURL),
		PublishedAt: publishedAt,
		Priority:    source.Priority,
		Tags:        source.Tags,
		SectionHint: source.SectionHint,
		Metrics:     itemMetrics,
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// parseTime handles the loose timestamp formats the social APIs return:
// RFC3339-ish strings via dateparse, plus unix seconds or milliseconds.
func parseTime(value interface{}) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		parsed, err := dateparse.ParseAny(v)
		if err != nil {
			return nil
		}
		utc := parsed.UTC()
		return &utc
	case float64:
		if v > 1_000_000_000_000 {
			v = v / 1000.0
		}
		t := time.Unix(int64(v), 0).UTC()
		return &t
	case int64:
		return parseTime(float64(v))
	}
	return nil
}

// buildSocialTitle turns post text into a capped headline. The cap counts
// runes so a cut never lands inside a multibyte character.
func buildSocialTitle(prefix, content string) string {
	const maxChars = 120
	cleaned := textutil.StripHTML(content)
	if cleaned == "" {
		return prefix
	}
	runes := []rune(cleaned)
	if len(runes) <= maxChars {
		return prefix + ": " + cleaned
	}
	return prefix + ": " + strings.TrimRight(string(runes[:maxChars-4]), " ") + "..."
}

func maxItemsOrDefault(source config.Source, fallback int) int {
	if source.MaxItems > 0 {
		return source.MaxItems
	}
	return fallback
}
