package fetch

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/deusflow/aifeed/internal/config"
	"github.com/deusflow/aifeed/internal/feed"
	"github.com/deusflow/aifeed/internal/logger"
	"github.com/deusflow/aifeed/internal/textutil"
)

const defaultLinkedInEndpoint = "https://api.linkedin.com/rest/posts"

func (c *Client) fetchLinkedIn(ctx context.Context, source config.Source) ([]*feed.Article, error) {
	accessToken := os.Getenv("LINKEDIN_ACCESS_TOKEN")
	if accessToken == "" {
		logger.Warn("skipping LinkedIn source: LINKEDIN_ACCESS_TOKEN is not set", "source", source.ID)
		return nil, nil
	}
	if source.AuthorURN == "" {
		logger.Warn("skipping LinkedIn source: missing author_urn", "source", source.ID)
		return nil, nil
	}

	maxItems := maxItemsOrDefault(source, 20)
	if maxItems < 5 {
		maxItems = 5
	}
	if maxItems > 100 {
		maxItems = 100
	}
	endpoint := source.Endpoint
	if endpoint == "" {
		endpoint = defaultLinkedInEndpoint
	}
	apiVersion := os.Getenv("LINKEDIN_API_VERSION")
	if apiVersion == "" {
		apiVersion = source.APIVersion
	}
	if apiVersion == "" {
		apiVersion = "202503"
	}

	params := url.Values{}
	params.Set("q", "author")
	params.Set("author", source.AuthorURN)
	params.Set("count", strconv.Itoa(maxItems))
	params.Set("sortBy", "LAST_MODIFIED")

	headers := map[string]string{
		"Authorization":             "Bearer " + accessToken,
		"LinkedIn-Version":          apiVersion,
		"X-Restli-Protocol-Version": "2.0.0",
	}
	// The posts API payload shape varies by version, so rows are decoded
	// loosely and mined for text.
	var payload map[string]interface{}
	if err := c.getJSON(ctx, endpoint+"?"+params.Encode(), headers, &payload); err != nil {
		return nil, fmt.Errorf("linkedin posts: %w", err)
	}

	rows := firstList(payload, "elements", "data", "results")
	var articles []*feed.Article
	for _, raw := range rows {
		row, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		text := textutil.StripHTML(extractText(row))
		if text == "" {
			continue
		}
		postID := firstString(row, "id", "urn", "entityUrn")
		published := parseTime(firstValue(row, "publishedAt", "lastModifiedAt", "createdAt", "firstPublishedAt"))
		postURL := firstString(row, "permalink", "url")
		if postURL == "" {
			postURL = buildLinkedInURL(postID)
		}
		itemMetrics := map[string]float64{
			"points":   firstNumber(socialStats(row), "numLikes", "likeCount", "numImpressions"),
			"comments": firstNumber(socialStats(row), "numComments", "commentCount"),
		}
		articles = append(articles, makeArticle(source, buildSocialTitle("LinkedIn", text), postURL, text, published, itemMetrics))
	}
	return articles, nil
}

func buildLinkedInURL(postID string) string {
	if postID == "" {
		return "https://www.linkedin.com/"
	}
	return "https://www.linkedin.com/feed/update/" + url.PathEscape(postID) + "/"
}

func socialStats(row map[string]interface{}) map[string]interface{} {
	for _, key := range []string{"socialDetail", "statistics"} {
		if stats, ok := row[key].(map[string]interface{}); ok {
			return stats
		}
	}
	return nil
}

// extractText digs through the loosely-typed post payload for the first
// non-empty human text, preferring commentary-like fields.
func extractText(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []interface{}:
		for _, item := range v {
			if found := extractText(item); found != "" {
				return found
			}
		}
	case map[string]interface{}:
		preferred := []string{"text", "commentary", "shareCommentary", "description", "title", "message"}
		for _, key := range preferred {
			if child, ok := v[key]; ok {
				if found := extractText(child); found != "" {
					return found
				}
			}
		}
		for _, child := range v {
			if found := extractText(child); found != "" {
				return found
			}
		}
	}
	return ""
}

func firstList(payload map[string]interface{}, keys ...string) []interface{} {
	for _, key := range keys {
		if list, ok := payload[key].([]interface{}); ok {
			return list
		}
	}
	return nil
}

func firstValue(row map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if value, ok := row[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

func firstString(row map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := row[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func firstNumber(row map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		if value, ok := row[key].(float64); ok && value != 0 {
			return value
		}
	}
	return 0
}
