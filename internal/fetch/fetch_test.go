package fetch

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/aifeed/internal/config"
)

func TestBuildSocialTitle_ShortContentKeptWhole(t *testing.T) {
	got := buildSocialTitle("@someone", "shipped a new eval harness")
	assert.Equal(t, "@someone: shipped a new eval harness", got)
}

func TestBuildSocialTitle_LongContentIsCapped(t *testing.T) {
	got := buildSocialTitle("@someone", strings.Repeat("word ", 60))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), len("@someone: ")+120)
}

func TestBuildSocialTitle_MultibyteContentStaysValidUTF8(t *testing.T) {
	got := buildSocialTitle("@someone", strings.Repeat("日本語テキスト", 40))

	assert.True(t, utf8.ValidString(got), "truncation produced invalid UTF-8: %q", got)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestBuildSocialTitle_EmptyContentFallsBackToPrefix(t *testing.T) {
	assert.Equal(t, "LinkedIn", buildSocialTitle("LinkedIn", "  <p></p> "))
}

func TestParseTime_HandlesStringsAndUnix(t *testing.T) {
	got := parseTime("2026-08-27T10:30:00Z")
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.August, got.Month())

	seconds := parseTime(float64(1_700_000_000))
	require.NotNil(t, seconds)
	millis := parseTime(float64(1_700_000_000_000))
	require.NotNil(t, millis)
	assert.True(t, seconds.Equal(*millis))
}

func TestParseTime_BadInputReturnsNil(t *testing.T) {
	assert.Nil(t, parseTime(nil))
	assert.Nil(t, parseTime(""))
	assert.Nil(t, parseTime("not a timestamp"))
}

func TestMatchesAnyKeyword(t *testing.T) {
	keywords := []string{"llm", "agent"}
	assert.True(t, matchesAnyKeyword("New LLM benchmark released", keywords))
	assert.True(t, matchesAnyKeyword("coding AGENTS are everywhere", keywords))
	assert.False(t, matchesAnyKeyword("database migration guide", keywords))
}

func TestMakeArticle_NormalizesFields(t *testing.T) {
	source := config.Source{
		ID:          "test-rss",
		Type:        "rss",
		Name:        "Test Feed",
		Priority:    3.5,
		SectionHint: "engineering",
	}

	article := makeArticle(source,
		"<b>Big</b> release",
		"https://Example.com/story?utm_source=rss",
		"<p>Some &amp; summary</p>",
		nil, nil)

	assert.Equal(t, "Big release", article.Title)
	assert.Equal(t, "https://example.com/story", article.URL)
	assert.Equal(t, "Some & summary", article.Summary)
	assert.Equal(t, "example.com", article.Domain)
	assert.Equal(t, "Test Feed", article.SourceName)
	assert.Equal(t, 3.5, article.Priority)
	assert.Equal(t, "engineering", article.SectionHint)
	assert.NotNil(t, article.Metrics)
	assert.Len(t, article.ID, 16)
}

func TestMakeArticle_FallsBackToSourceID(t *testing.T) {
	article := makeArticle(config.Source{ID: "bare"}, "Title", "", "", nil, nil)
	assert.Equal(t, "bare", article.SourceName)
}

func TestSampleArticles_CoversEverySection(t *testing.T) {
	articles := SampleArticles()
	require.Len(t, articles, 30)

	hints := make(map[string]int)
	ids := make(map[string]bool)
	for _, article := range articles {
		hints[article.SectionHint]++
		assert.False(t, ids[article.ID], "duplicate id %s", article.ID)
		ids[article.ID] = true
	}
	for _, section := range config.Sections {
		assert.Equal(t, 5, hints[section.Slug], "section %s", section.Slug)
	}
}

func TestMaxItemsOrDefault(t *testing.T) {
	assert.Equal(t, 50, maxItemsOrDefault(config.Source{MaxItems: 50}, 20))
	assert.Equal(t, 20, maxItemsOrDefault(config.Source{}, 20))
}
