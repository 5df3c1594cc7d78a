// Package app wires the daily pipeline: fetch, filter, dedupe, curate,
// enrich, render, remember.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/deusflow/aifeed/internal/config"
	"github.com/deusflow/aifeed/internal/curation"
	"github.com/deusflow/aifeed/internal/enrich"
	"github.com/deusflow/aifeed/internal/feed"
	"github.com/deusflow/aifeed/internal/fetch"
	"github.com/deusflow/aifeed/internal/logger"
	"github.com/deusflow/aifeed/internal/metrics"
	"github.com/deusflow/aifeed/internal/ratelimit"
	"github.com/deusflow/aifeed/internal/render"
	"github.com/deusflow/aifeed/internal/scraper"
	"github.com/deusflow/aifeed/internal/seen"
	"github.com/deusflow/aifeed/internal/telegram"
)

// Options are the per-invocation knobs layered over config.
type Options struct {
	// Date overrides the feed date (YYYY-MM-DD). Empty means today in the
	// configured timezone.
	Date string
	// Sample replaces all network fetching with the built-in corpus.
	Sample bool
}

// Run executes one full pipeline pass and publishes the site.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	started := time.Now()

	feedTime, feedDate, err := resolveFeedTime(cfg.Timezone, opts.Date)
	if err != nil {
		return err
	}
	logger.Info("starting run", "date", feedDate, "sample", opts.Sample)

	articles, err := collect(ctx, cfg, opts)
	if err != nil {
		return err
	}
	logger.Info("articles collected", "count", len(articles))

	articles = dropStale(articles, feedTime, cfg.MaxItemAge)

	store := seen.Open(cfg)
	defer store.Close()
	articles = dropAlreadyFeatured(articles, store)

	before := len(articles)
	articles = curation.Dedupe(articles)
	metrics.Global.AddDuplicatesFiltered(before - len(articles))

	if len(articles) == 0 {
		return fmt.Errorf("no articles survived filtering, refusing to publish an empty feed")
	}

	sections := curation.Curate(articles, cfg.MinPerSection, cfg.MaxPerSection, feedTime)
	logCurated(sections)

	if !opts.Sample {
		upgradeTopStories(ctx, cfg, sections)
	}

	budget := ratelimit.NewBudget(cfg.MaxEnrichRequests, cfg.MaxEnrichRequests, cfg.MaxEnrichRequests)
	enrich.Apply(ctx, pickEnricher(cfg), budget, sections)

	daily := &feed.DailyFeed{
		Date:        feedDate,
		GeneratedAt: feedTime,
		Title:       "AI Daily Feed",
		Intro:       "A curated read of today's AI news for engineers, product people and founders.",
		Sections:    sections,
	}

	renderer, err := render.NewRenderer(cfg.OutputDir)
	if err != nil {
		return err
	}
	if err := renderer.Render(daily); err != nil {
		return fmt.Errorf("render site: %w", err)
	}

	if err := recordFeatured(store, sections, feedTime); err != nil {
		logger.Warn("failed to record featured items", "error", err)
	}

	if cfg.TelegramToken != "" {
		notifier := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, cfg.RetryAttempts, cfg.RetryDelay)
		if err := notifier.SendDigest(ctx, daily); err != nil {
			logger.Warn("telegram digest failed", "error", err)
		}
	}

	metrics.Global.RecordRun(time.Since(started))
	logger.Info("run complete", "duration", time.Since(started).Round(time.Millisecond), "date", feedDate)
	return nil
}

// resolveFeedTime pins the run to a wall-clock date in the feed's timezone.
func resolveFeedTime(timezone, dateOverride string) (time.Time, string, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	now := time.Now().In(location)
	if dateOverride == "" {
		return now, now.Format("2006-01-02"), nil
	}
	if _, err := time.ParseInLocation("2006-01-02", dateOverride, location); err != nil {
		return time.Time{}, "", fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", dateOverride, err)
	}
	return now, dateOverride, nil
}

func collect(ctx context.Context, cfg *config.Config, opts Options) ([]*feed.Article, error) {
	if opts.Sample {
		return fetch.SampleArticles(), nil
	}
	sources, err := config.LoadSources(cfg.SourcesConfigPath, cfg.FeedsRegistryPath)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources configured")
	}
	client := fetch.NewClient(cfg.RequestTimeout, cfg.RetryAttempts, cfg.RetryDelay)
	return client.FetchAll(ctx, sources), nil
}

// dropStale removes items older than the cutoff. Items with no timestamp
// stay in; unknown age is not the same as stale.
func dropStale(articles []*feed.Article, feedTime time.Time, maxAge time.Duration) []*feed.Article {
	if maxAge <= 0 {
		return articles
	}
	cutoff := feedTime.Add(-maxAge)
	fresh := articles[:0]
	dropped := 0
	for _, article := range articles {
		if article.PublishedAt != nil && article.PublishedAt.Before(cutoff) {
			dropped++
			continue
		}
		fresh = append(fresh, article)
	}
	if dropped > 0 {
		metrics.Global.AddStaleFiltered(dropped)
		logger.Info("stale articles dropped", "count", dropped)
	}
	return fresh
}

func dropAlreadyFeatured(articles []*feed.Article, store seen.Store) []*feed.Article {
	kept := articles[:0]
	dropped := 0
	for _, article := range articles {
		if store.Has(seen.Hash(article)) {
			dropped++
			continue
		}
		kept = append(kept, article)
	}
	if dropped > 0 {
		metrics.Global.AddAlreadyFeatured(dropped)
		logger.Info("already-featured articles dropped", "count", dropped)
	}
	return kept
}

// upgradeTopStories replaces thin feed blurbs with scraped article text
// for the best story of each section, so enrichment has real material.
func upgradeTopStories(ctx context.Context, cfg *config.Config, sections map[string][]*feed.Article) {
	byURL := make(map[string]*feed.Article)
	var urls []string
	for _, section := range config.Sections {
		for i, article := range sections[section.Slug] {
			if i > 0 || article.URL == "" {
				continue
			}
			if _, ok := byURL[article.URL]; ok {
				continue
			}
			byURL[article.URL] = article
			urls = append(urls, article.URL)
		}
	}
	if len(urls) == 0 {
		return
	}

	extractor := scraper.NewExtractor(cfg.RequestTimeout)
	extracted := extractor.ExtractAll(ctx, urls, cfg.ScrapeMaxArticles)
	for pageURL, content := range extracted {
		if article := byURL[pageURL]; article != nil && len(content.Content) > len(article.Summary) {
			article.Summary = content.Content
		}
	}
	logger.Info("top stories upgraded with full text", "requested", len(urls), "extracted", len(extracted))
}

func pickEnricher(cfg *config.Config) enrich.Enricher {
	switch {
	case cfg.OpenAIAPIKey != "":
		return enrich.NewOpenAIEnricher(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.RetryAttempts, cfg.RetryDelay)
	case cfg.GeminiAPIKey != "":
		return enrich.NewGeminiEnricher(cfg.GeminiAPIKey, cfg.RetryAttempts, cfg.RetryDelay)
	default:
		logger.Warn("no AI provider configured, summaries use the local fallback")
		return enrich.Unavailable{}
	}
}

func recordFeatured(store seen.Store, sections map[string][]*feed.Article, feedTime time.Time) error {
	var hashes []string
	for _, articles := range sections {
		for _, article := range articles {
			hashes = append(hashes, seen.Hash(article))
		}
	}
	if len(hashes) == 0 {
		return nil
	}
	return store.MarkAll(hashes, feedTime)
}

func logCurated(sections map[string][]*feed.Article) {
	total := 0
	for _, section := range config.Sections {
		count := len(sections[section.Slug])
		total += count
		logger.Debug("section filled", "section", section.Slug, "items", count)
	}
	logger.Info("curation complete", "total_selected", total)
}
