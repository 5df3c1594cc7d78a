// Package telegram posts a short digest of the day's top stories to a
// chat or channel after the site is published.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/deusflow/aifeed/internal/config"
	"github.com/deusflow/aifeed/internal/feed"
	"github.com/deusflow/aifeed/internal/retry"
)

const telegramAPI = "https://api.telegram.org/bot%s/sendMessage"

type Notifier struct {
	token    string
	chatID   string
	http     *http.Client
	retryCfg retry.Config
}

func NewNotifier(token, chatID string, retryAttempts int, retryDelay time.Duration) *Notifier {
	return &Notifier{
		token:  token,
		chatID: chatID,
		http:   &http.Client{Timeout: 30 * time.Second},
		retryCfg: retry.Config{
			MaxAttempts: retryAttempts,
			Delay:       retryDelay,
			Backoff:     true,
		},
	}
}

// SendDigest posts the day's headline picks, one top story per section.
func (n *Notifier) SendDigest(ctx context.Context, daily *feed.DailyFeed) error {
	text := buildDigest(daily)
	if text == "" {
		return fmt.Errorf("digest is empty")
	}
	return retry.Do(ctx, n.retryCfg, func() error {
		return n.sendMessage(ctx, text)
	})
}

func (n *Notifier) sendMessage(ctx context.Context, text string) error {
	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf(telegramAPI, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
	}
	return nil
}

func buildDigest(daily *feed.DailyFeed) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<b>%s</b>\n%s\n", html.EscapeString(daily.Title), html.EscapeString(daily.Date))

	for _, section := range config.Sections {
		articles := daily.Sections[section.Slug]
		if len(articles) == 0 {
			continue
		}
		top := articles[0]
		fmt.Fprintf(&buf, "\n<b>%s</b>\n<a href=\"%s\">%s</a>\n",
			html.EscapeString(section.Label),
			html.EscapeString(top.URL),
			html.EscapeString(top.Title),
		)
	}
	return buf.String()
}
