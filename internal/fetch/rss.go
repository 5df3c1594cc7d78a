package fetch

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/deusflow/aifeed/internal/config"
	"github.com/deusflow/aifeed/internal/feed"
)

func (c *Client) fetchRSS(ctx context.Context, source config.Source) ([]*feed.Article, error) {
	if source.URL == "" {
		return nil, nil
	}
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = c.http

	parsed, err := parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", source.URL, err)
	}

	maxItems := maxItemsOrDefault(source, 20)
	var articles []*feed.Article
	for _, item := range parsed.Items {
		if len(articles) >= maxItems {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		summary := item.Description
		if summary == "" && item.Content != "" {
			summary = item.Content
		}
		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		article := makeArticle(source, item.Title, item.Link, summary, published, nil)
		if article.URL == "" {
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}
