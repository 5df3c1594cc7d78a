package fetch

import (
	"fmt"
	"time"

	"github.com/deusflow/aifeed/internal/canonical"
	"github.com/deusflow/aifeed/internal/feed"
)

// SampleArticles builds a deterministic 30-item corpus spread across all
// six sections, for offline runs and tests. No network access.
func SampleArticles() []*feed.Article {
	now := time.Now().UTC()
	templates := []struct {
		title string
		hint  string
	}{
		{"Major model provider launches multimodal coding agent", "big-announcements"},
		{"Engineering team replaces flaky tests with AI-generated fixtures", "engineering"},
		{"PM team ships weekly experiments with AI-generated specs", "product-development"},
		{"Solo founder reaches $42k MRR with AI-native support desk", "business"},
		{"Tiny blog shows 10x prompt compression trick for retrieval", "under-the-radar"},
		{"AI turns childhood doodles into playable arcade games", "for-fun"},
	}

	articles := make([]*feed.Article, 0, 30)
	for idx := 0; idx < 30; idx++ {
		tpl := templates[idx%len(templates)]
		url := fmt.Sprintf("https://example.com/post-%d", idx)
		published := now
		articles = append(articles, &feed.Article{
			ID:          canonical.StableID(url, tpl.title),
			Title:       fmt.Sprintf("%s (%d)", tpl.title, idx+1),
			URL:         url,
			Summary:     fmt.Sprintf("Sample content for %s.", tpl.hint),
			SourceName:  "Sample Source",
			SourceType:  "sample",
			Domain:      "example.com",
			PublishedAt: &published,
			Priority:    5.0,
			Tags:        []string{tpl.hint},
			SectionHint: tpl.hint,
			Metrics:     map[string]float64{},
		})
	}
	return articles
}
