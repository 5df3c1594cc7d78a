package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/deusflow/aifeed/internal/config"
	"github.com/deusflow/aifeed/internal/feed"
	"github.com/deusflow/aifeed/internal/retry"
)

const hackerNewsAPI = "https://hacker-news.firebaseio.com/v0"

type hackerNewsItem struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Time        int64  `json:"time"`
}

func (c *Client) fetchHackerNews(ctx context.Context, source config.Source) ([]*feed.Article, error) {
	endpoint := strings.ToLower(strings.TrimSpace(source.Endpoint))
	if endpoint == "" {
		endpoint = "top"
	}
	maxItems := maxItemsOrDefault(source, 120)
	keywords := make([]string, 0, len(source.Keywords))
	for _, keyword := range source.Keywords {
		keywords = append(keywords, strings.ToLower(keyword))
	}

	var storyIDs []int64
	listURL := fmt.Sprintf("%s/%sstories.json", hackerNewsAPI, endpoint)
	err := retry.Do(ctx, c.retryCfg, func() error {
		return c.getJSON(ctx, listURL, nil, &storyIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch story ids: %w", err)
	}
	if len(storyIDs) > maxItems {
		storyIDs = storyIDs[:maxItems]
	}

	var articles []*feed.Article
	for _, storyID := range storyIDs {
		var item hackerNewsItem
		itemURL := fmt.Sprintf("%s/item/%d.json", hackerNewsAPI, storyID)
		// One flaky story is not worth failing the whole source.
		if err := c.getJSON(ctx, itemURL, nil, &item); err != nil {
			continue
		}
		if item.Type != "story" || item.Title == "" || item.URL == "" {
			continue
		}
		if len(keywords) > 0 && !matchesAnyKeyword(item.Title+" "+item.Text, keywords) {
			continue
		}
		var published *time.Time
		if item.Time > 0 {
			t := time.Unix(item.Time, 0).UTC()
			published = &t
		}
		itemMetrics := map[string]float64{
			"points":   float64(item.Score),
			"comments": float64(item.Descendants),
		}
		articles = append(articles, makeArticle(source, item.Title, item.URL, item.Text, published, itemMetrics))
	}
	return articles, nil
}

func matchesAnyKeyword(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// getJSON performs one GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, url string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
