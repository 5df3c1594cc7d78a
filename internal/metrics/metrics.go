package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	SourcesFetched     int64
	SourcesFailed      int64
	ItemsFetched       int64
	DuplicatesFiltered int64
	StaleFiltered      int64
	AlreadyFeatured    int64
	EnrichmentCalls    int64
	EnrichmentFailures int64
	FeedsPublished     int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddSourceResult(items int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.SourcesFailed++
		return
	}
	m.SourcesFetched++
	m.ItemsFetched += int64(items)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) AddStaleFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StaleFiltered += int64(n)
}

func (m *Metrics) AddAlreadyFeatured(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AlreadyFeatured += int64(n)
}

func (m *Metrics) IncrementEnrichmentCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnrichmentCalls++
}

func (m *Metrics) IncrementEnrichmentFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnrichmentFailures++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.LastRunTime = time.Now()
	m.FeedsPublished++
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"sources_fetched":      m.SourcesFetched,
		"sources_failed":       m.SourcesFailed,
		"items_fetched":        m.ItemsFetched,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"stale_filtered":       m.StaleFiltered,
		"already_featured":     m.AlreadyFeatured,
		"enrichment_calls":     m.EnrichmentCalls,
		"enrichment_failures":  m.EnrichmentFailures,
		"feeds_published":      m.FeedsPublished,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
