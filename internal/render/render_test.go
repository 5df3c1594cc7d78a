package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/aifeed/internal/feed"
)

func testFeed(date string) *feed.DailyFeed {
	published := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	return &feed.DailyFeed{
		Date:        date,
		GeneratedAt: published,
		Title:       "AI Daily Feed",
		Intro:       "Test intro.",
		Sections: map[string][]*feed.Article{
			"big-announcements": {
				{
					ID:           "a1",
					Title:        "Frontier model released",
					URL:          "https://example.com/release",
					SourceName:   "Example Blog",
					SourceType:   "rss",
					PublishedAt:  &published,
					SectionScore: 9.5,
					SummaryText:  "A new frontier model is out.",
					WhyItMatters: "Raises the bar for everyone.",
				},
			},
			"engineering": {
				{
					ID:           "a2",
					Title:        "Cutting inference latency in half",
					URL:          "https://example.com/latency",
					SourceName:   "Eng Notes",
					SourceType:   "rss",
					SectionScore: 7.2,
					SummaryText:  "Latency work pays off.",
					WhyItMatters: "Cheaper serving for production teams.",
				},
			},
		},
	}
}

func TestRender_WritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	renderer, err := NewRenderer(dir)
	require.NoError(t, err)

	require.NoError(t, renderer.Render(testFeed("2026-08-27")))

	for _, name := range []string{
		"index.html",
		"style.css",
		".nojekyll",
		filepath.Join("archive", "2026-08-27.html"),
		filepath.Join("data", "2026-08-27.json"),
		filepath.Join("data", "archive.json"),
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "missing %s", name)
	}

	html, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Frontier model released")
	assert.Contains(t, string(html), "Big Announcements")
	// empty sections are left out entirely
	assert.NotContains(t, string(html), `id="for-fun"`)
}

func TestRender_DayPayloadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	renderer, err := NewRenderer(dir)
	require.NoError(t, err)
	require.NoError(t, renderer.Render(testFeed("2026-08-27")))

	data, err := os.ReadFile(filepath.Join(dir, "data", "2026-08-27.json"))
	require.NoError(t, err)

	var decoded feed.DailyFeed
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2026-08-27", decoded.Date)
	require.Len(t, decoded.Sections["big-announcements"], 1)
	assert.Equal(t, "Frontier model released", decoded.Sections["big-announcements"][0].Title)
}

func TestRender_ArchiveIndexIsIdempotentAndSorted(t *testing.T) {
	dir := t.TempDir()
	renderer, err := NewRenderer(dir)
	require.NoError(t, err)

	require.NoError(t, renderer.Render(testFeed("2026-08-26")))
	require.NoError(t, renderer.Render(testFeed("2026-08-27")))
	// rerun of an existing date replaces its entry, not appends
	require.NoError(t, renderer.Render(testFeed("2026-08-26")))

	data, err := os.ReadFile(filepath.Join(dir, "data", "archive.json"))
	require.NoError(t, err)

	var entries []ArchiveEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-08-27", entries[0].Date)
	assert.Equal(t, "2026-08-26", entries[1].Date)
	assert.Equal(t, 2, entries[0].ItemCount)
}

func TestRender_CorruptArchiveIndexIsRebuilt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "archive.json"), []byte("{broken"), 0o644))

	renderer, err := NewRenderer(dir)
	require.NoError(t, err)
	require.NoError(t, renderer.Render(testFeed("2026-08-27")))

	data, err := os.ReadFile(filepath.Join(dir, "data", "archive.json"))
	require.NoError(t, err)

	var entries []ArchiveEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-08-27", entries[0].Date)
}
