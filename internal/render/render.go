// Package render turns a daily feed into the published artifacts: the
// front page, a per-day JSON payload, the archive index and a per-day
// archive page. Everything is generated in memory first and only written
// once all of it succeeded, so a failed run never leaves a half-updated
// site behind.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"

	"github.com/deusflow/aifeed/internal/config"
	"github.com/deusflow/aifeed/internal/feed"
	"github.com/deusflow/aifeed/internal/logger"
)

type Renderer struct {
	outputDir string
	page      *template.Template
}

func NewRenderer(outputDir string) (*Renderer, error) {
	page, err := template.New("page").Funcs(template.FuncMap{
		"score": formatScore,
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{outputDir: outputDir, page: page}, nil
}

// sectionView is a section with its articles in display order, prepared
// for the template.
type sectionView struct {
	Slug        string
	Label       string
	Description string
	Articles    []*feed.Article
}

type pageData struct {
	Feed     *feed.DailyFeed
	Sections []sectionView
	IsToday  bool
}

// Render writes the full site for one day. The archive index is updated
// idempotently: rendering the same date twice replaces its entry.
func (r *Renderer) Render(daily *feed.DailyFeed) error {
	sections := orderedSections(daily)

	files := make(map[string][]byte)

	indexHTML, err := r.renderPage(pageData{Feed: daily, Sections: sections, IsToday: true})
	if err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	files["index.html"] = indexHTML

	archiveHTML, err := r.renderPage(pageData{Feed: daily, Sections: sections, IsToday: false})
	if err != nil {
		return fmt.Errorf("render archive page: %w", err)
	}
	files[filepath.Join("archive", daily.Date+".html")] = archiveHTML

	dayJSON, err := json.MarshalIndent(daily, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal day payload: %w", err)
	}
	files[filepath.Join("data", daily.Date+".json")] = dayJSON

	archiveJSON, err := r.updatedArchiveIndex(daily)
	if err != nil {
		return fmt.Errorf("update archive index: %w", err)
	}
	files[filepath.Join("data", "archive.json")] = archiveJSON

	files["style.css"] = []byte(styleCSS)
	// GitHub Pages would otherwise run the output through Jekyll.
	files[".nojekyll"] = []byte{}

	for name, content := range files {
		path := filepath.Join(r.outputDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	logger.Info("site rendered", "output_dir", r.outputDir, "date", daily.Date, "files", len(files))
	return nil
}

func (r *Renderer) renderPage(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// orderedSections lays the feed's sections out in taxonomy order,
// skipping empty ones.
func orderedSections(daily *feed.DailyFeed) []sectionView {
	var views []sectionView
	for _, section := range config.Sections {
		articles := daily.Sections[section.Slug]
		if len(articles) == 0 {
			continue
		}
		views = append(views, sectionView{
			Slug:        section.Slug,
			Label:       section.Label,
			Description: section.Description,
			Articles:    articles,
		})
	}
	return views
}

// ArchiveEntry is one line of the archive index.
type ArchiveEntry struct {
	Date      string `json:"date"`
	Title     string `json:"title"`
	ItemCount int    `json:"item_count"`
}

func (r *Renderer) updatedArchiveIndex(daily *feed.DailyFeed) ([]byte, error) {
	entries, err := loadArchiveIndex(filepath.Join(r.outputDir, "data", "archive.json"))
	if err != nil {
		return nil, err
	}

	itemCount := 0
	for _, articles := range daily.Sections {
		itemCount += len(articles)
	}
	updated := ArchiveEntry{Date: daily.Date, Title: daily.Title, ItemCount: itemCount}

	replaced := false
	for i, entry := range entries {
		if entry.Date == daily.Date {
			entries[i] = updated
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, updated)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return json.MarshalIndent(entries, "", "  ")
}

func loadArchiveIndex(path string) ([]ArchiveEntry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read archive index: %w", err)
	}
	var entries []ArchiveEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt index should not block publishing today's feed.
		logger.Warn("archive index unreadable, rebuilding from scratch", "error", err)
		return nil, nil
	}
	return entries, nil
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}
