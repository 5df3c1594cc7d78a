// Package curation is the scoring and selection engine: it collapses
// duplicate articles, scores every survivor against every section, and
// fills each section within its target band while keeping source diversity.
package curation

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/deusflow/aifeed/internal/canonical"
	"github.com/deusflow/aifeed/internal/config"
	"github.com/deusflow/aifeed/internal/feed"
	"github.com/deusflow/aifeed/internal/textutil"
)

const (
	// Recency decays exponentially with a 24h constant from a max of 4.0;
	// articles with no timestamp get a moderate default instead of zero.
	recencyMax        = 4.0
	recencyDecayHours = 24.0
	unknownRecency    = 0.8

	keywordHitWeight   = 1.5
	sectionHintBonus   = 4.5
	bigDomainBonus     = 2.2
	underRadarBonus    = 1.6
	mainstreamPenalty  = 0.8
	engagementBonusMax = 2.0
	engineeringDivisor = 150.0
	businessDivisor    = 220.0
	primaryDomainCap   = 2
	backfillDomainCap  = 3
)

// Dedupe collapses articles sharing a canonical URL (or, lacking one, a
// normalized title). The copy with the higher composite score wins; ties
// keep the first-seen copy. Output preserves first-seen key order.
func Dedupe(articles []*feed.Article) []*feed.Article {
	unique := make(map[string]*feed.Article, len(articles))
	var order []string
	for _, article := range articles {
		key := canonical.URL(article.URL)
		if key == "" {
			key = strings.ToLower(textutil.NormalizeWhitespace(article.Title))
		}
		existing, ok := unique[key]
		if !ok {
			unique[key] = article
			order = append(order, key)
			continue
		}
		if compositeScore(article) > compositeScore(existing) {
			unique[key] = article
		}
	}
	result := make([]*feed.Article, 0, len(order))
	for _, key := range order {
		result = append(result, unique[key])
	}
	return result
}

// compositeScore ranks duplicate copies of the same story: source trust
// plus a small engagement nudge.
func compositeScore(article *feed.Article) float64 {
	return article.Priority + article.Points()*0.01
}

func keywordHits(text string, keywords []string) int {
	hits := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			hits++
		}
	}
	return hits
}

func recencyScore(article *feed.Article, feedTime time.Time) float64 {
	if article.PublishedAt == nil {
		return unknownRecency
	}
	deltaHours := feedTime.Sub(*article.PublishedAt).Hours()
	if deltaHours < 0 {
		// Future timestamps clamp to zero elapsed, not to a penalty.
		deltaHours = 0
	}
	return recencyMax * math.Exp(-deltaHours/recencyDecayHours)
}

// Score fills every article's per-section score map and its argmax
// assignment. The map is fully replaced, so repeated calls with the same
// feedTime are idempotent. Ties resolve to the lowest-ordered section.
func Score(articles []*feed.Article, feedTime time.Time) {
	for _, article := range articles {
		text := strings.ToLower(article.CanonicalText())
		base := article.Priority + recencyScore(article, feedTime)

		scores := make(map[string]float64, len(config.Sections))
		topSection := ""
		topScore := 0.0
		for _, section := range config.Sections {
			score := base
			score += float64(keywordHits(text, config.SectionKeywords[section.Slug])) * keywordHitWeight
			if article.SectionHint == section.Slug {
				score += sectionHintBonus
			}
			switch section.Slug {
			case "big-announcements":
				if config.BigAnnouncementDomains[article.Domain] {
					score += bigDomainBonus
				}
			case "under-the-radar":
				if config.MainstreamDomains[article.Domain] {
					score -= mainstreamPenalty
				} else {
					score += underRadarBonus
				}
			case "engineering", "product-development":
				score += math.Min(engagementBonusMax, article.Points()/engineeringDivisor)
			case "business":
				score += math.Min(engagementBonusMax, article.Points()/businessDivisor)
			}
			score = round3(score)
			scores[section.Slug] = score
			if topSection == "" || score > topScore {
				topSection = section.Slug
				topScore = score
			}
		}
		article.Scores = scores
		article.AssignedSection = topSection
		article.SectionScore = topScore
	}
}

// round3 keeps scores reproducible across runs and platforms.
func round3(value float64) float64 {
	return math.Round(value*1000) / 1000
}

// pickCandidates greedily takes the highest scorers for one section,
// skipping globally picked articles and enforcing the per-domain cap.
func pickCandidates(candidates []*feed.Article, slug string, picked map[string]bool, maxItems, domainCap int) []*feed.Article {
	sorted := make([]*feed.Article, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Scores[slug] > sorted[j].Scores[slug]
	})

	var selected []*feed.Article
	domainCounts := make(map[string]int)
	for _, article := range sorted {
		if len(selected) >= maxItems {
			break
		}
		if picked[article.ID] {
			continue
		}
		if domainCounts[article.Domain] >= domainCap {
			continue
		}
		selected = append(selected, article)
		picked[article.ID] = true
		domainCounts[article.Domain]++
	}
	return selected
}

// Curate scores all articles and fills each section. Phase 1 takes up to
// maxPerSection positive-scoring items per section in taxonomy order; an
// article placed once is never reconsidered elsewhere. Phase 2 backfills
// under-filled sections from the whole remaining pool with a relaxed domain
// cap, even when the best remaining score is not positive. A complete
// section beats strict relevance.
func Curate(articles []*feed.Article, minPerSection, maxPerSection int, feedTime time.Time) map[string][]*feed.Article {
	Score(articles, feedTime)

	sections := make(map[string][]*feed.Article, len(config.Sections))
	picked := make(map[string]bool)

	bySection := make(map[string][]*feed.Article, len(config.Sections))
	for _, article := range articles {
		for _, section := range config.Sections {
			if article.Scores[section.Slug] > 0 {
				bySection[section.Slug] = append(bySection[section.Slug], article)
			}
		}
	}

	for _, section := range config.Sections {
		sections[section.Slug] = pickCandidates(bySection[section.Slug], section.Slug, picked, maxPerSection, primaryDomainCap)
	}

	for _, section := range config.Sections {
		if len(sections[section.Slug]) >= minPerSection {
			continue
		}
		needed := minPerSection - len(sections[section.Slug])
		fallbacks := pickCandidates(articles, section.Slug, picked, needed, backfillDomainCap)
		sections[section.Slug] = append(sections[section.Slug], fallbacks...)
	}

	return sections
}
