package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source describes one upstream to fetch. Which fields matter depends on
// Type: rss uses URL, hackernews uses Endpoint and Keywords, arxiv uses
// Query, x uses Query, linkedin uses AuthorURN.
type Source struct {
	ID          string   `yaml:"id"`
	Type        string   `yaml:"type"`
	Name        string   `yaml:"name"`
	URL         string   `yaml:"url"`
	Endpoint    string   `yaml:"endpoint"`
	Query       string   `yaml:"query"`
	Username    string   `yaml:"username"`
	AuthorURN   string   `yaml:"author_urn"`
	APIVersion  string   `yaml:"api_version"`
	Priority    float64  `yaml:"priority"`
	SectionHint string   `yaml:"section_hint"`
	MaxItems    int      `yaml:"max_items"`
	Keywords    []string `yaml:"keywords"`
	Tags        []string `yaml:"tags"`
}

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the YAML source list and merges in the markdown feed
// registry. Registry RSS URLs already present in the YAML are skipped so a
// feed listed in both places is fetched once.
func LoadSources(yamlPath, registryPath string) ([]Source, error) {
	f, err := os.Open(yamlPath)
	if err != nil {
		return nil, fmt.Errorf("open sources config: %w", err)
	}
	defer f.Close()

	var payload sourcesFile
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse sources config: %w", err)
	}
	sources := payload.Sources
	for i := range sources {
		if sources[i].Priority == 0 {
			sources[i].Priority = 1.0
		}
	}

	if registryPath != "" {
		registry, err := parseFeedsRegistry(registryPath)
		if err != nil {
			return nil, err
		}
		sources = mergeRegistry(sources, registry)
	}
	return sources, nil
}

func mergeRegistry(sources, registry []Source) []Source {
	knownRSS := make(map[string]bool)
	for _, source := range sources {
		if source.Type == "rss" && source.URL != "" {
			knownRSS[source.URL] = true
		}
	}
	for _, entry := range registry {
		if entry.Type == "rss" {
			if knownRSS[entry.URL] {
				continue
			}
			knownRSS[entry.URL] = true
		}
		sources = append(sources, entry)
	}
	return sources
}

// parseFeedsRegistry reads the markdown registry. Expected shape:
//
//	## 1. URLs
//	- https://example.com/feed.xml | name=Example | section=engineering
//	## 2. LinkedIN users
//	- urn:li:organization:12345 | name=Example Org
//	## 3. X users
//	- @example_ai
//
// A missing file is not an error; the registry is optional.
func parseFeedsRegistry(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open feeds registry: %w", err)
	}
	defer f.Close()

	var sources []Source
	section := ""
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			heading := strings.ToLower(line)
			switch {
			case strings.Contains(heading, "url"):
				section = "rss"
			case strings.Contains(heading, "linkedin"):
				section = "linkedin"
			case strings.Contains(heading, "x user"):
				section = "x"
			default:
				section = ""
			}
			continue
		}
		if !strings.HasPrefix(line, "-") {
			continue
		}
		value, attrs := parseRegistryEntry(strings.TrimSpace(strings.TrimPrefix(line, "-")))
		if value == "" {
			continue
		}
		switch section {
		case "rss":
			sources = append(sources, registryRSSSource(value, attrs))
		case "linkedin":
			// Only URNs are valid; profile links can't be queried by the API.
			if !strings.HasPrefix(value, "urn:") {
				continue
			}
			sources = append(sources, registryLinkedInSource(value, attrs))
		case "x":
			handle := strings.TrimPrefix(value, "@")
			if handle == "" || strings.Contains(handle, "/") {
				continue
			}
			sources = append(sources, registryXSource(handle, attrs))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read feeds registry: %w", err)
	}
	return sources, nil
}

// parseRegistryEntry splits "value | key=value | key=value" lines.
func parseRegistryEntry(entry string) (string, map[string]string) {
	parts := strings.Split(entry, "|")
	value := strings.TrimSpace(parts[0])
	attrs := make(map[string]string)
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if idx := strings.Index(part, "="); idx > 0 {
			attrs[strings.TrimSpace(part[:idx])] = strings.TrimSpace(part[idx+1:])
		}
	}
	return value, attrs
}

func registryRSSSource(url string, attrs map[string]string) Source {
	name := attrs["name"]
	if name == "" {
		name = url
	}
	return Source{
		ID:          "registry-rss-" + name,
		Type:        "rss",
		Name:        name,
		URL:         url,
		Priority:    1.0,
		SectionHint: attrs["section"],
	}
}

func registryLinkedInSource(urn string, attrs map[string]string) Source {
	name := attrs["name"]
	if name == "" {
		name = "LinkedIn"
	}
	return Source{
		ID:          "registry-linkedin-" + urn,
		Type:        "linkedin",
		Name:        name,
		AuthorURN:   urn,
		Priority:    1.0,
		SectionHint: attrs["section"],
	}
}

func registryXSource(handle string, attrs map[string]string) Source {
	return Source{
		ID:          "registry-x-" + handle,
		Type:        "x",
		Name:        "X @" + handle,
		Username:    handle,
		Query:       fmt.Sprintf("from:%s -is:retweet -is:reply lang:en", handle),
		Priority:    1.0,
		SectionHint: attrs["section"],
	}
}
