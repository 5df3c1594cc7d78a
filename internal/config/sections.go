package config

// Section is one bucket of the fixed taxonomy. The set is static per
// deployment and never mutated at runtime; Order drives both display and
// score tie-breaking.
type Section struct {
	Order       int
	Slug        string
	Label       string
	Description string

	// Lens is the short phrase the enrichment fallback templates
	// "why it matters" sentences from.
	Lens string
}

var Sections = []Section{
	{
		Order:       0,
		Slug:        "big-announcements",
		Label:       "Big Announcements",
		Description: "Major announcements, launches, policy moves, and high-signal market shifts.",
		Lens:        "what changed and who it impacts",
	},
	{
		Order:       1,
		Slug:        "engineering",
		Label:       "Engineering",
		Description: "How engineers use AI in daily workflows: agents, tooling, benchmarks, and workforce impact.",
		Lens:        "practical engineering workflow impact",
	},
	{
		Order:       2,
		Slug:        "product-development",
		Label:       "Product Development",
		Description: "How PMs and product teams ship faster with AI and redesign team workflows.",
		Lens:        "product workflow and shipping velocity impact",
	},
	{
		Order:       3,
		Slug:        "business",
		Label:       "Software Development",
		Description: "Actionable software development workflows: agents, skills, and how-to implementation patterns.",
		Lens:        "business model and monetization impact",
	},
	{
		Order:       4,
		Slug:        "under-the-radar",
		Label:       "Under the Radar",
		Description: "Small blogs, low-key launches, and overlooked ideas that matter.",
		Lens:        "why this overlooked signal matters early",
	},
	{
		Order:       5,
		Slug:        "for-fun",
		Label:       "For Fun",
		Description: "Creative, weird, and playful AI experiments worth sharing.",
		Lens:        "why this is creative and interesting",
	},
}

var SectionBySlug = func() map[string]Section {
	index := make(map[string]Section, len(Sections))
	for _, section := range Sections {
		index[section.Slug] = section
	}
	return index
}()

// SectionKeywords feed the scorer's keyword-overlap term. Matching is
// lowercase substring, so multi-word phrases work as written.
var SectionKeywords = map[string][]string{
	"big-announcements": {
		"announce", "launch", "release", "introduce", "partnership",
		"acquisition", "merger", "policy", "regulation", "executive order",
		"funding", "raised", "series", "military", "defense", "white house",
	},
	"engineering": {
		"agent", "sdk", "api", "benchmark", "eval", "framework",
		"open source", "repo", "repository", "copilot", "code", "devops",
		"prompt engineering", "compiler", "testing", "deployment",
	},
	"product-development": {
		"product", "pm", "roadmap", "user research", "prototype",
		"experimentation", "retention", "activation", "onboarding",
		"feature design", "ux", "ui", "product ops",
	},
	"business": {
		"agent", "coding agent", "workflow", "playbook", "runbook", "how to",
		"tutorial", "guide", "implementation", "code generation", "debugging",
		"refactor", "test", "ci", "pull request", "developer productivity",
		"automation", "stack", "toolchain", "repo", "sdk", "api", "prompt",
	},
	"under-the-radar": {
		"notes", "journal", "small model", "tiny", "niche", "case study",
		"field notes", "quietly", "overlooked", "indie", "solo",
	},
	"for-fun": {
		"game", "music", "art", "meme", "comic", "movie", "robot dance",
		"simulation", "toy", "fun", "weird", "hackathon",
	},
}

// MainstreamDomains mark well-covered outlets; under-the-radar penalizes
// them and rewards everything else.
var MainstreamDomains = map[string]bool{
	"openai.com":      true,
	"anthropic.com":   true,
	"google.com":      true,
	"deepmind.google": true,
	"microsoft.com":   true,
	"meta.com":        true,
	"apple.com":       true,
	"amazon.com":      true,
	"aws.amazon.com":  true,
	"techcrunch.com":  true,
	"theverge.com":    true,
	"wired.com":       true,
	"venturebeat.com": true,
	"bloomberg.com":   true,
	"reuters.com":     true,
	"nytimes.com":     true,
	"wsj.com":         true,
	"ft.com":          true,
}

// BigAnnouncementDomains are first-party, high-authority sources that get a
// bonus in the big-announcements section.
var BigAnnouncementDomains = map[string]bool{
	"openai.com":      true,
	"anthropic.com":   true,
	"deepmind.google": true,
	"ai.google":       true,
	"microsoft.com":   true,
	"meta.com":        true,
	"apple.com":       true,
	"aws.amazon.com":  true,
	"nvidia.com":      true,
	"whitehouse.gov":  true,
	"defense.gov":     true,
}
