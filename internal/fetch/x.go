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

const defaultXEndpoint = "https://api.x.com/2/tweets/search/recent"

type xSearchResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		AuthorID      string `json:"author_id"`
		CreatedAt     string `json:"created_at"`
		PublicMetrics struct {
			LikeCount    float64 `json:"like_count"`
			ReplyCount   float64 `json:"reply_count"`
			RetweetCount float64 `json:"retweet_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	} `json:"includes"`
}

func (c *Client) fetchX(ctx context.Context, source config.Source) ([]*feed.Article, error) {
	bearerToken := os.Getenv("X_BEARER_TOKEN")
	if bearerToken == "" {
		logger.Warn("skipping X source: X_BEARER_TOKEN is not set", "source", source.ID)
		return nil, nil
	}
	query := source.Query
	if query == "" {
		logger.Warn("skipping X source: missing query", "source", source.ID)
		return nil, nil
	}

	maxItems := maxItemsOrDefault(source, 25)
	if maxItems < 10 {
		maxItems = 10
	}
	if maxItems > 100 {
		maxItems = 100
	}
	endpoint := source.Endpoint
	if endpoint == "" {
		endpoint = defaultXEndpoint
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(maxItems))
	params.Set("tweet.fields", "created_at,public_metrics,author_id,lang")
	params.Set("user.fields", "username,name,verified")
	params.Set("expansions", "author_id")

	var payload xSearchResponse
	headers := map[string]string{"Authorization": "Bearer " + bearerToken}
	if err := c.getJSON(ctx, endpoint+"?"+params.Encode(), headers, &payload); err != nil {
		return nil, fmt.Errorf("x search: %w", err)
	}

	usernames := make(map[string]string, len(payload.Includes.Users))
	for _, user := range payload.Includes.Users {
		usernames[user.ID] = user.Username
	}

	var articles []*feed.Article
	for _, tweet := range payload.Data {
		text := textutil.StripHTML(tweet.Text)
		if tweet.ID == "" || text == "" {
			continue
		}
		username := usernames[tweet.AuthorID]
		if username == "" {
			username = source.Username
		}
		postURL := "https://x.com/i/web/status/" + tweet.ID
		titlePrefix := "X post"
		sourceName := "X"
		if username != "" {
			postURL = fmt.Sprintf("https://x.com/%s/status/%s", username, tweet.ID)
			titlePrefix = "@" + username
			sourceName = "X @" + username
		}
		itemMetrics := map[string]float64{
			"points":   tweet.PublicMetrics.LikeCount,
			"comments": tweet.PublicMetrics.ReplyCount,
			"reposts":  tweet.PublicMetrics.RetweetCount,
		}
		article := makeArticle(source, buildSocialTitle(titlePrefix, text), postURL, text, parseTime(tweet.CreatedAt), itemMetrics)
		article.SourceName = sourceName
		articles = append(articles, article)
	}
	return articles, nil
}
