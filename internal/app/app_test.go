package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/aifeed/internal/feed"
)

func timedArticle(id string, publishedAt *time.Time) *feed.Article {
	return &feed.Article{ID: id, Title: id, PublishedAt: publishedAt}
}

func TestDropStale_KeepsFreshAndUnknown(t *testing.T) {
	now := time.Now().UTC()
	fresh := now.Add(-2 * time.Hour)
	old := now.Add(-48 * time.Hour)

	articles := []*feed.Article{
		timedArticle("fresh", &fresh),
		timedArticle("old", &old),
		timedArticle("unknown", nil),
	}

	kept := dropStale(articles, now, 24*time.Hour)

	require.Len(t, kept, 2)
	assert.Equal(t, "fresh", kept[0].ID)
	assert.Equal(t, "unknown", kept[1].ID)
}

func TestDropStale_ZeroMaxAgeDisablesFilter(t *testing.T) {
	now := time.Now().UTC()
	old := now.Add(-1000 * time.Hour)
	articles := []*feed.Article{timedArticle("old", &old)}

	assert.Len(t, dropStale(articles, now, 0), 1)
}

func TestResolveFeedTime_DefaultsToToday(t *testing.T) {
	feedTime, feedDate, err := resolveFeedTime("UTC", "")
	require.NoError(t, err)
	assert.Equal(t, feedTime.Format("2006-01-02"), feedDate)
}

func TestResolveFeedTime_AcceptsOverride(t *testing.T) {
	_, feedDate, err := resolveFeedTime("UTC", "2026-08-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", feedDate)
}

func TestResolveFeedTime_RejectsBadInput(t *testing.T) {
	_, _, err := resolveFeedTime("UTC", "01-08-2026")
	assert.Error(t, err)

	_, _, err = resolveFeedTime("Not/AZone", "")
	assert.Error(t, err)
}
