package render

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Feed.Title}}</title>
<link rel="stylesheet" href="{{if .IsToday}}style.css{{else}}../style.css{{end}}">
</head>
<body>
<header class="site-header">
  <h1>{{.Feed.Title}}</h1>
  <p class="intro">{{.Feed.Intro}}</p>
  <p class="meta">{{.Feed.Date}} &middot; generated {{.Feed.GeneratedAt.Format "15:04 MST"}}</p>
</header>
<main>
{{range .Sections}}
  <section class="feed-section" id="{{.Slug}}">
    <h2>{{.Label}}</h2>
    <p class="section-description">{{.Description}}</p>
    <div class="cards">
    {{range .Articles}}
      <article class="card">
        <h3><a href="{{.URL}}" rel="noopener" target="_blank">{{.Title}}</a></h3>
        <p class="summary">{{.SummaryText}}</p>
        {{if .WhyItMatters}}<p class="why">{{.WhyItMatters}}</p>{{end}}
        <div class="card-footer">
          <span class="badge badge-{{.SourceType}}">{{.SourceName}}</span>
          <span class="score" title="relevance">{{score .SectionScore}}</span>
        </div>
      </article>
    {{end}}
    </div>
  </section>
{{end}}
</main>
<footer class="site-footer">
  <a href="{{if .IsToday}}data/archive.json{{else}}../data/archive.json{{end}}">archive</a>
</footer>
</body>
</html>
`

const styleCSS = `:root {
  --bg: #0f1117;
  --card: #181b24;
  --text: #e6e8ee;
  --muted: #9aa0b0;
  --accent: #5b8cff;
  --badge: #242836;
}
* { box-sizing: border-box; }
body {
  margin: 0;
  background: var(--bg);
  color: var(--text);
  font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
  line-height: 1.5;
}
.site-header {
  max-width: 960px;
  margin: 0 auto;
  padding: 2.5rem 1rem 1rem;
}
.site-header h1 { margin: 0 0 0.5rem; font-size: 1.8rem; }
.intro { color: var(--muted); margin: 0 0 0.25rem; }
.meta { color: var(--muted); font-size: 0.85rem; margin: 0; }
main { max-width: 960px; margin: 0 auto; padding: 0 1rem 3rem; }
.feed-section { margin-top: 2.5rem; }
.feed-section h2 { margin: 0 0 0.25rem; font-size: 1.3rem; }
.section-description { color: var(--muted); font-size: 0.9rem; margin: 0 0 1rem; }
.cards { display: grid; gap: 1rem; grid-template-columns: repeat(auto-fill, minmax(280px, 1fr)); }
.card {
  background: var(--card);
  border-radius: 10px;
  padding: 1rem;
  display: flex;
  flex-direction: column;
}
.card h3 { margin: 0 0 0.5rem; font-size: 1rem; }
.card a { color: var(--text); text-decoration: none; }
.card a:hover { color: var(--accent); }
.summary { margin: 0 0 0.5rem; font-size: 0.9rem; }
.why { margin: 0; font-size: 0.85rem; color: var(--accent); }
.card-footer {
  margin-top: auto;
  padding-top: 0.75rem;
  display: flex;
  justify-content: space-between;
  align-items: center;
}
.badge {
  background: var(--badge);
  color: var(--muted);
  border-radius: 6px;
  padding: 0.15rem 0.5rem;
  font-size: 0.75rem;
}
.score { color: var(--muted); font-size: 0.75rem; }
.site-footer {
  max-width: 960px;
  margin: 0 auto;
  padding: 1rem;
  color: var(--muted);
  font-size: 0.85rem;
}
.site-footer a { color: var(--muted); }
`
