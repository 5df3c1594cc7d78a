package enrich

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/aifeed/internal/feed"
	"github.com/deusflow/aifeed/internal/ratelimit"
)

func enrichArticle(id, title, summary string) *feed.Article {
	return &feed.Article{
		ID:         id,
		Title:      title,
		Summary:    summary,
		SourceName: "Test Source",
	}
}

func TestFallback_UsesSummaryAndSectionLens(t *testing.T) {
	article := enrichArticle("a1", "Some title", "A short factual summary of the story.")

	summary, why := Fallback(article, "engineering")

	assert.Equal(t, "A short factual summary of the story.", summary)
	assert.Contains(t, why, "Test Source")
	assert.NotEmpty(t, why)
}

func TestFallback_UsesTitleWhenSummaryEmpty(t *testing.T) {
	article := enrichArticle("a1", "Only a title", "")

	summary, _ := Fallback(article, "business")

	assert.Equal(t, "Only a title", summary)
}

func TestFallback_IsDeterministic(t *testing.T) {
	article := enrichArticle("a1", "Title", "Summary text.")

	s1, w1 := Fallback(article, "for-fun")
	s2, w2 := Fallback(article, "for-fun")

	assert.Equal(t, s1, s2)
	assert.Equal(t, w1, w2)
}

func TestFallback_TruncatesLongSummaries(t *testing.T) {
	article := enrichArticle("a1", "Title", strings.Repeat("x", 600))

	summary, _ := Fallback(article, "engineering")

	assert.LessOrEqual(t, len(summary), 223)
}

func TestApply_UnavailableProviderStillFillsEveryArticle(t *testing.T) {
	sections := map[string][]*feed.Article{
		"engineering": {
			enrichArticle("a1", "First", "First summary."),
			enrichArticle("a2", "Second", ""),
		},
		"business": {
			enrichArticle("a3", "Third", "Third summary."),
		},
	}

	budget := ratelimit.NewBudget(0, 0, 0)
	Apply(context.Background(), Unavailable{}, budget, sections)

	for _, articles := range sections {
		for _, article := range articles {
			assert.NotEmpty(t, article.SummaryText, "article %s", article.ID)
			assert.NotEmpty(t, article.WhyItMatters, "article %s", article.ID)
		}
	}
}

type stubEnricher struct {
	result map[string]Enrichment
}

func (stubEnricher) Name() string { return "openai" }

func (s stubEnricher) EnrichSection(context.Context, string, []*feed.Article) (map[string]Enrichment, error) {
	return s.result, nil
}

func TestApply_ProviderResultWinsAndIsCapped(t *testing.T) {
	article := enrichArticle("a1", "Title", "Original summary.")
	sections := map[string][]*feed.Article{"engineering": {article}}

	provider := stubEnricher{result: map[string]Enrichment{
		"a1": {
			Summary:      strings.Repeat("s", 400),
			WhyItMatters: "Because it changes inference costs.",
		},
	}}

	Apply(context.Background(), provider, ratelimit.NewBudget(0, 0, 0), sections)

	assert.LessOrEqual(t, len(article.SummaryText), 262)
	assert.Equal(t, "Because it changes inference costs.", article.WhyItMatters)
}

func TestApply_PartialProviderResultFallsBackForMissing(t *testing.T) {
	covered := enrichArticle("a1", "Covered", "Covered summary.")
	missed := enrichArticle("a2", "Missed", "Missed summary.")
	sections := map[string][]*feed.Article{"business": {covered, missed}}

	provider := stubEnricher{result: map[string]Enrichment{
		"a1": {Summary: "Generated summary.", WhyItMatters: "Generated why."},
	}}

	Apply(context.Background(), provider, ratelimit.NewBudget(0, 0, 0), sections)

	assert.Equal(t, "Generated summary.", covered.SummaryText)
	assert.Equal(t, "Missed summary.", missed.SummaryText)
	assert.NotEmpty(t, missed.WhyItMatters)
}

type deadlineCapture struct {
	deadline time.Time
	ok       bool
}

func (*deadlineCapture) Name() string { return "openai" }

func (d *deadlineCapture) EnrichSection(ctx context.Context, _ string, _ []*feed.Article) (map[string]Enrichment, error) {
	d.deadline, d.ok = ctx.Deadline()
	return nil, nil
}

func TestApply_ProviderCallsCarryADeadline(t *testing.T) {
	sections := map[string][]*feed.Article{
		"engineering": {enrichArticle("a1", "Title", "Summary.")},
	}

	capture := &deadlineCapture{}
	Apply(context.Background(), capture, ratelimit.NewBudget(0, 0, 0), sections)

	assert.True(t, capture.ok, "provider call has no deadline")
	assert.True(t, capture.deadline.After(time.Now()))
	assert.True(t, capture.deadline.Before(time.Now().Add(sectionCallTimeout+time.Minute)))
}

func TestParseItemsResponse_DecodesAndSkipsEmptyIDs(t *testing.T) {
	content := `{"items":[
		{"id":"a1","summary":"S1","why_it_matters":"W1"},
		{"id":"","summary":"ignored","why_it_matters":"ignored"},
		{"id":"a2","summary":"S2","why_it_matters":"W2"}
	]}`

	result, err := parseItemsResponse(content)
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, Enrichment{Summary: "S1", WhyItMatters: "W1"}, result["a1"])
	assert.Equal(t, Enrichment{Summary: "S2", WhyItMatters: "W2"}, result["a2"])
}

func TestParseItemsResponse_RejectsMalformedJSON(t *testing.T) {
	_, err := parseItemsResponse("not json at all")
	assert.Error(t, err)
}

func TestStripCodeFences(t *testing.T) {
	fenced := "```json\n{\"items\":[]}\n```"
	assert.Equal(t, `{"items":[]}`, stripCodeFences(fenced))
	assert.Equal(t, `{"items":[]}`, stripCodeFences(`{"items":[]}`))
}
