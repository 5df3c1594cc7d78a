package seen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/aifeed/internal/feed"
)

func TestFileStore_MarkAndLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	store, err := NewFileStore(path, 72)
	require.NoError(t, err)

	assert.False(t, store.Has("h1"))
	require.NoError(t, store.MarkAll([]string{"h1", "h2"}, time.Now().UTC()))
	assert.True(t, store.Has("h1"))
	assert.True(t, store.Has("h2"))
	assert.False(t, store.Has("h3"))
}

func TestFileStore_SurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	store, err := NewFileStore(path, 72)
	require.NoError(t, err)
	require.NoError(t, store.MarkAll([]string{"h1"}, time.Now().UTC()))

	reloaded, err := NewFileStore(path, 72)
	require.NoError(t, err)
	assert.True(t, reloaded.Has("h1"))
}

func TestFileStore_ExpiredEntriesAreDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	store, err := NewFileStore(path, 1)
	require.NoError(t, err)
	require.NoError(t, store.MarkAll([]string{"old"}, time.Now().UTC().Add(-2*time.Hour)))

	assert.False(t, store.Has("old"))

	reloaded, err := NewFileStore(path, 1)
	require.NoError(t, err)
	assert.False(t, reloaded.Has("old"))
}

func TestFileStore_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := NewFileStore(path, 72)
	assert.Error(t, err)
}

func TestHash_PrefersCanonicalURL(t *testing.T) {
	a := &feed.Article{URL: "https://example.com/story?utm_source=rss", Title: "A title", Domain: "example.com"}
	b := &feed.Article{URL: "https://example.com/story", Title: "Different title", Domain: "example.com"}
	assert.Equal(t, Hash(a), Hash(b))

	c := &feed.Article{Title: "  Same   Title ", Domain: "example.com"}
	d := &feed.Article{Title: "Same Title", Domain: "example.com"}
	assert.Equal(t, Hash(c), Hash(d))
	assert.NotEqual(t, Hash(a), Hash(c))
}
