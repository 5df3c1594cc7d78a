package fetch

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/deusflow/aifeed/internal/config"
	"github.com/deusflow/aifeed/internal/feed"
)

// The arXiv export API returns Atom, so it goes through the same feed
// parser as RSS sources.
func (c *Client) fetchArxiv(ctx context.Context, source config.Source) ([]*feed.Article, error) {
	query := source.Query
	if query == "" {
		query = "cat:cs.AI+OR+cat:cs.LG"
	}
	maxItems := maxItemsOrDefault(source, 40)
	url := fmt.Sprintf(
		"http://export.arxiv.org/api/query?search_query=%s&sortBy=submittedDate&sortOrder=descending&start=0&max_results=%d",
		query, maxItems,
	)

	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = c.http

	parsed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse arxiv query %q: %w", query, err)
	}

	var articles []*feed.Article
	for _, item := range parsed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		articles = append(articles, makeArticle(source, item.Title, item.Link, item.Description, published, nil))
	}
	return articles, nil
}
