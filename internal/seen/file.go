package seen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps featured hashes in a small JSON file next to the
// generated site. Expired entries are dropped on load.
type FileStore struct {
	mu      sync.Mutex
	path    string
	ttl     time.Duration
	entries map[string]time.Time
}

func NewFileStore(path string, ttlHours int) (*FileStore, error) {
	store := &FileStore{
		path:    path,
		ttl:     time.Duration(ttlHours) * time.Hour,
		entries: make(map[string]time.Time),
	}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read seen file: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse seen file: %w", err)
	}

	cutoff := time.Now().UTC().Add(-s.ttl)
	for hash, stamp := range raw {
		featuredAt, err := time.Parse(time.RFC3339, stamp)
		if err != nil || featuredAt.Before(cutoff) {
			continue
		}
		s.entries[hash] = featuredAt
	}
	return nil
}

func (s *FileStore) Has(hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	featuredAt, ok := s.entries[hash]
	if !ok {
		return false
	}
	return featuredAt.After(time.Now().UTC().Add(-s.ttl))
}

// MarkAll records the hashes and rewrites the file in one pass. The write
// goes through a temp file so a crash never leaves a truncated store.
func (s *FileStore) MarkAll(hashes []string, featuredAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, hash := range hashes {
		s.entries[hash] = featuredAt.UTC()
	}

	raw := make(map[string]string, len(s.entries))
	cutoff := time.Now().UTC().Add(-s.ttl)
	for hash, stamp := range s.entries {
		if stamp.Before(cutoff) {
			continue
		}
		raw[hash] = stamp.Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create seen dir: %w", err)
	}
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write seen file: %w", err)
	}
	return os.Rename(tmpPath, s.path)
}

func (s *FileStore) Close() error { return nil }
