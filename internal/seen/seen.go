// Package seen remembers which stories were already featured so reruns on
// the same day, or runs on following days, do not publish repeats.
package seen

import (
	"strings"
	"time"

	"github.com/deusflow/aifeed/internal/canonical"
	"github.com/deusflow/aifeed/internal/config"
	"github.com/deusflow/aifeed/internal/feed"
	"github.com/deusflow/aifeed/internal/logger"
	"github.com/deusflow/aifeed/internal/textutil"
)

// Store is the persistence boundary for featured-story hashes. Entries
// expire after the configured TTL so long-running topics can resurface.
type Store interface {
	Has(hash string) bool
	MarkAll(hashes []string, featuredAt time.Time) error
	Close() error
}

// Hash identifies a story across sources and URL variants: the canonical
// URL when one exists, otherwise normalized title plus domain.
func Hash(article *feed.Article) string {
	if article.URL != "" {
		return canonical.StableID(canonical.URL(article.URL))
	}
	title := strings.ToLower(textutil.NormalizeWhitespace(article.Title))
	return canonical.StableID(title, article.Domain)
}

// Open picks the backing store: Postgres when a database URL is
// configured, the JSON file store otherwise. Errors fall back to the file
// store so a bad database never blocks a run.
func Open(cfg *config.Config) Store {
	if cfg.DatabaseURL != "" {
		store, err := NewPostgresStore(cfg.DatabaseURL, cfg.SeenTTLHours)
		if err == nil {
			logger.Info("using postgres seen store")
			return store
		}
		logger.Warn("postgres seen store unavailable, falling back to file", "error", err)
	}
	store, err := NewFileStore(cfg.SeenFilePath, cfg.SeenTTLHours)
	if err != nil {
		logger.Warn("file seen store unavailable, duplicates may repeat", "error", err)
		return noopStore{}
	}
	return store
}

type noopStore struct{}

func (noopStore) Has(string) bool                   { return false }
func (noopStore) MarkAll([]string, time.Time) error { return nil }
func (noopStore) Close() error                      { return nil }
