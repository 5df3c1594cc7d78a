// Package scraper upgrades top stories with fuller article text before
// enrichment, so summaries are generated from more than a feed blurb.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/deusflow/aifeed/internal/logger"
)

// ArticleContent is the extracted body of one page.
type ArticleContent struct {
	Title   string
	Content string
	URL     string
}

const maxContentChars = 1800

type Extractor struct {
	http *http.Client
}

func NewExtractor(timeout time.Duration) *Extractor {
	return &Extractor{http: &http.Client{Timeout: timeout}}
}

// Extract fetches one page and pulls its main text: common article
// selectors first, readability as the fallback for unusual layouts.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*ArticleContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	content := extractBySelectors(doc)
	if content == "" {
		content = extractWithReadability(doc, pageURL)
	}
	content = CleanContent(content)
	if content == "" {
		return nil, fmt.Errorf("no usable content")
	}

	return &ArticleContent{
		Title:   extractTitle(doc),
		Content: content,
		URL:     pageURL,
	}, nil
}

// ExtractAll fetches up to limit URLs sequentially with a small pause
// between requests. Failures are skipped; the result maps URL to content.
func (e *Extractor) ExtractAll(ctx context.Context, urls []string, limit int) map[string]*ArticleContent {
	result := make(map[string]*ArticleContent)
	for i, pageURL := range urls {
		if i >= limit {
			break
		}
		article, err := e.Extract(ctx, pageURL)
		if err != nil {
			logger.Debug("article extraction failed", "url", pageURL, "error", err)
			continue
		}
		if len(article.Content) > 100 {
			result[pageURL] = article
		}
		select {
		case <-ctx.Done():
			return result
		case <-time.After(500 * time.Millisecond):
		}
	}
	return result
}

// extractBySelectors walks the usual article containers, most specific
// first, and takes the first selector that yields real paragraphs.
func extractBySelectors(doc *goquery.Document) string {
	selectors := []string{
		"article p",
		".article-body p",
		".post-content p",
		".entry-content p",
		".content p",
		"main p",
	}

	var paragraphs []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
		paragraphs = paragraphs[:0]
	}
	return strings.Join(paragraphs, "\n\n")
}

func extractWithReadability(doc *goquery.Document, pageURL string) string {
	html, err := doc.Html()
	if err != nil {
		return ""
	}
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		logger.Debug("readability fallback failed", "url", pageURL, "error", err)
		return ""
	}
	return article.TextContent
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range []string{"h1", "title", ".article-title", ".headline", ".entry-title"} {
		title := strings.TrimSpace(doc.Find(selector).First().Text())
		if title != "" {
			return title
		}
	}
	return ""
}

// CleanContent drops boilerplate lines and caps length on a paragraph
// boundary.
func CleanContent(content string) string {
	if content == "" {
		return ""
	}

	junkIndicators := []string{
		"cookie", "gdpr", "subscribe", "newsletter", "sign up", "log in",
		"read more", "click here", "follow us", "share this", "privacy policy",
	}

	var paragraphs []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 30 {
			continue
		}
		lower := strings.ToLower(line)
		junk := false
		for _, indicator := range junkIndicators {
			if strings.Contains(lower, indicator) {
				junk = true
				break
			}
		}
		if junk {
			continue
		}
		paragraphs = append(paragraphs, line)
	}

	result := strings.Join(paragraphs, "\n\n")
	if len(result) <= maxContentChars {
		return result
	}

	var kept []string
	total := 0
	for _, paragraph := range paragraphs {
		if total+len(paragraph) >= maxContentChars {
			break
		}
		kept = append(kept, paragraph)
		total += len(paragraph) + 2
	}
	if len(kept) == 0 {
		return result[:maxContentChars]
	}
	return strings.Join(kept, "\n\n")
}
