// Package ratelimit bounds how many paid AI calls a single run may make.
package ratelimit

import (
	"fmt"
	"sync"
)

// Budget tracks per-provider and total enrichment request counts for one
// run. Zero limits mean unlimited.
type Budget struct {
	mu          sync.Mutex
	openaiCount int
	geminiCount int
	totalCount  int
	maxOpenAI   int
	maxGemini   int
	maxTotal    int
}

func NewBudget(maxOpenAI, maxGemini, maxTotal int) *Budget {
	return &Budget{
		maxOpenAI: maxOpenAI,
		maxGemini: maxGemini,
		maxTotal:  maxTotal,
	}
}

// Allow reserves one request slot for the provider, or reports why not.
func (b *Budget) Allow(provider string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxTotal > 0 && b.totalCount >= b.maxTotal {
		return fmt.Errorf("total AI request budget exhausted (%d)", b.maxTotal)
	}

	switch provider {
	case "openai":
		if b.maxOpenAI > 0 && b.openaiCount >= b.maxOpenAI {
			return fmt.Errorf("openai request budget exhausted (%d)", b.maxOpenAI)
		}
		b.openaiCount++
	case "gemini":
		if b.maxGemini > 0 && b.geminiCount >= b.maxGemini {
			return fmt.Errorf("gemini request budget exhausted (%d)", b.maxGemini)
		}
		b.geminiCount++
	default:
		return fmt.Errorf("unknown provider: %s", provider)
	}

	b.totalCount++
	return nil
}

// Used reports how many requests each provider has consumed.
func (b *Budget) Used() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return map[string]int{
		"openai": b.openaiCount,
		"gemini": b.geminiCount,
		"total":  b.totalCount,
	}
}
