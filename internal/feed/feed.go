// Package feed defines the normalized article model that flows through the
// pipeline, and the assembled daily feed handed to the renderer.
package feed

import (
	"strings"
	"time"
)

// Article is one ingested item. Constructed once per run by a fetcher,
// mutated by scoring and enrichment, then discarded after rendering.
type Article struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary,omitempty"`

	SourceName string `json:"source_name"`
	SourceType string `json:"source_type"`
	Domain     string `json:"domain,omitempty"`

	// PublishedAt is nil when the source gave no usable timestamp. That is
	// a valid state (unknown recency), not an error.
	PublishedAt *time.Time `json:"published_at,omitempty"`

	// Priority is the source-level trust weight, constant after ingestion.
	Priority    float64  `json:"priority"`
	Tags        []string `json:"tags,omitempty"`
	SectionHint string   `json:"section_hint,omitempty"`

	// Metrics holds engagement counters keyed by name ("points",
	// "comments", ...). Default empty.
	Metrics map[string]float64 `json:"metrics,omitempty"`

	// Scores maps section slug to affinity, fully replaced on each scoring
	// pass. After scoring it has one entry per defined section.
	Scores          map[string]float64 `json:"scores,omitempty"`
	AssignedSection string             `json:"assigned_section,omitempty"`
	SectionScore    float64            `json:"section_score"`

	// Enrichment output. Always populated before rendering, by the
	// provider or by the deterministic fallback.
	SummaryText  string `json:"summary_text"`
	WhyItMatters string `json:"why_it_matters"`
}

// CanonicalText is the blob the scorer matches keywords against.
func (a *Article) CanonicalText() string {
	return strings.TrimSpace(a.Title + "\n" + a.Summary)
}

// Points returns the primary engagement proxy.
func (a *Article) Points() float64 {
	return a.Metrics["points"]
}

// DailyFeed is the renderer handoff: the day's sections in taxonomy order.
type DailyFeed struct {
	Date        string                `json:"date"`
	GeneratedAt time.Time             `json:"generated_at"`
	Title       string                `json:"title"`
	Intro       string                `json:"intro"`
	Sections    map[string][]*Article `json:"sections"`
}
