package extractor

import (
	"strings"
	"testing"
	"time"

	"github.com/newechoes/necmp/internal/indexmodel"
)

func TestExtractArticle(t *testing.T) {
	html := `<html><head><title>My Post</title>
<meta property="og:type" content="article">
<meta property="article:published_time" content="2025-06-01T00:00:00Z">
<meta name="article:tag" content="go, wasm">
</head><body><article><h1>My Post</h1><p>This is a reasonably long paragraph of article body content for testing extraction.</p>
<h2>Details</h2><p>More detail text goes here to pad out the content length comfortably.</p></article></body></html>`

	article, err := Extract(strings.NewReader(html), "posts/my-post.html", Options{Now: time.Now()})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if article == nil {
		t.Fatal("Extract() = nil, want an article")
	}
	if article.Title != "My Post" {
		t.Errorf("Title = %q, want \"My Post\"", article.Title)
	}
	if article.PageType != indexmodel.PageTypeArticle {
		t.Errorf("PageType = %q, want article", article.PageType)
	}
	if article.ID != "posts/my-post" {
		t.Errorf("ID = %q, want \"posts/my-post\"", article.ID)
	}
	if len(article.Tags) != 2 || article.Tags[0] != "go" || article.Tags[1] != "wasm" {
		t.Errorf("Tags = %v, want [go wasm]", article.Tags)
	}
	if len(article.Headings) != 2 {
		t.Fatalf("got %d headings, want 2", len(article.Headings))
	}
	wantDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !article.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", article.Date, wantDate)
	}
}

func TestExtractSkipsSystemFiles(t *testing.T) {
	article, err := Extract(strings.NewReader("<html></html>"), "404.html", Options{})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if article != nil {
		t.Errorf("Extract(404.html) = %+v, want nil", article)
	}
}

func TestExtractSkipsPageTypeUnlessIndexAll(t *testing.T) {
	html := `<html><head><title>A Page</title>
<meta property="og:type" content="page"></head>
<body><main><p>Some page content long enough to pass the minimum length threshold check.</p></main></body></html>`

	article, err := Extract(strings.NewReader(html), "about.html", Options{})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if article != nil {
		t.Error("expected page-typed document to be skipped without IndexAll")
	}

	article, err = Extract(strings.NewReader(html), "about.html", Options{IndexAll: true})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if article == nil {
		t.Error("expected page-typed document to be kept with IndexAll")
	}
}

func TestExtractSkipsShortContent(t *testing.T) {
	html := `<html><head><title>Too Short</title>
<meta property="og:type" content="article"></head>
<body><article><p>short</p></article></body></html>`

	article, err := Extract(strings.NewReader(html), "x.html", Options{})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if article != nil {
		t.Error("expected too-short content to be skipped")
	}
}

func TestExtractContentSkipsChromeElements(t *testing.T) {
	html := `<html><head><title>Chrome Test</title>
<meta property="og:type" content="article"></head>
<body><article>
<nav class="sidebar">navigation links that should not appear</nav>
<p>This is the real article body content which must survive extraction intact.</p>
</article></body></html>`

	article, err := Extract(strings.NewReader(html), "x.html", Options{})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if article == nil {
		t.Fatal("Extract() = nil, want an article")
	}
	if strings.Contains(article.Content, "navigation links") {
		t.Errorf("Content = %q, should not include nav chrome text", article.Content)
	}
}

func TestExtractHeadingsSkipChromeElements(t *testing.T) {
	html := `<html><head><title>Chrome Heading Test</title>
<meta property="og:type" content="article"></head>
<body><article>
<div class="sidebar"><h3>Related Posts</h3></div>
<h1>Real Heading</h1>
<p>This is the real article body content which must survive extraction intact.</p>
</article></body></html>`

	article, err := Extract(strings.NewReader(html), "x.html", Options{})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if article == nil {
		t.Fatal("Extract() = nil, want an article")
	}
	for _, h := range article.Headings {
		if h.Text == "Related Posts" {
			t.Errorf("Headings = %v, should not include a heading from sidebar chrome", article.Headings)
		}
	}
}
