// Package extractor walks rendered HTML pages with golang.org/x/net/html and
// recovers the ArticleMetadata records that feed the filter and search index
// builders.
package extractor

import (
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/newechoes/necmp/internal/indexmodel"
)

// nonContentTags are skipped entirely when walking for body content or
// heading structure: scripts/styles, metadata elements, and semantic
// chrome (nav/header/footer/aside) that never carries article prose.
var nonContentTags = map[string]struct{}{
	"script": {}, "style": {},
	"head": {}, "meta": {}, "link": {},
	"header": {}, "footer": {}, "nav": {}, "aside": {},
	"noscript": {}, "iframe": {}, "svg": {}, "path": {},
	"button": {}, "input": {}, "form": {}, "select": {}, "option": {}, "textarea": {},
	"template": {}, "dialog": {}, "canvas": {},
}

// Options toggles what ExtractAll indexes.
type Options struct {
	// IndexAll also keeps "page" typed documents; without it only
	// "article" typed documents are kept.
	IndexAll bool
	// Now is the fallback publish date used when a page carries no
	// article:published_time meta tag. Tests supply a fixed instant.
	Now time.Time
}

// Extract parses a single HTML document and returns its ArticleMetadata, or
// (nil, nil) when the document should be skipped (system file, wrong page
// type, empty title, or too little content).
//
// relPath is the document's path relative to the site root, using forward
// slashes; it becomes the article id and URL.
func Extract(r io.Reader, relPath string, opts Options) (*indexmodel.ArticleMetadata, error) {
	if isSystemFile(relPath) {
		return nil, nil
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	meta := extractMetaTags(doc)
	pageType := detectPageType(meta, doc)

	wantArticle := pageType == indexmodel.PageTypeArticle
	wantPage := opts.IndexAll && pageType == indexmodel.PageTypePage
	if !wantArticle && !wantPage {
		return nil, nil
	}

	title := extractTitle(doc)
	if title == "" {
		return nil, nil
	}

	content := extractContent(doc)
	if len(strings.TrimSpace(content)) < 30 {
		return nil, nil
	}

	id := articleID(relPath)
	url := "/" + id
	headings := extractHeadings(doc, content)
	summary := buildSummary(content)
	tags := extractTags(meta)
	date := extractDate(meta, opts.Now)

	return &indexmodel.ArticleMetadata{
		ID:       id,
		Title:    title,
		Summary:  summary,
		Date:     date,
		Tags:     tags,
		URL:      url,
		Content:  content,
		PageType: pageType,
		Headings: headings,
	}, nil
}

// isSystemFile reports whether relPath names a non-content file that is
// always skipped regardless of page type: the 404 page, the search page,
// and the generated robots/sitemap files.
func isSystemFile(relPath string) bool {
	p := strings.ToLower(relPath)
	switch {
	case strings.HasSuffix(p, "404.html"):
		return true
	case strings.Contains(p, "/search/") || strings.HasPrefix(p, "search/"):
		return true
	case strings.HasSuffix(p, "robots.txt"):
		return true
	case strings.HasSuffix(p, "sitemap.xml"):
		return true
	}
	return false
}

// articleID derives the article id from a site-relative HTML path: strip
// the extension, normalize separators, and drop a trailing "index".
func articleID(relPath string) string {
	p := strings.ReplaceAll(relPath, "\\", "/")
	p = strings.TrimSuffix(p, path.Ext(p))
	p = strings.TrimSuffix(p, "index")
	p = strings.TrimSuffix(p, "/")
	return p
}

// detectPageType reads the authoritative og:type meta value, falling back
// to a raw substring scan of the parsed attributes when og:type is absent
// or carries an unrecognized value. It never guesses beyond that.
func detectPageType(meta map[string]string, doc *html.Node) indexmodel.PageType {
	switch meta["og:type"] {
	case "article":
		return indexmodel.PageTypeArticle
	case "page":
		return indexmodel.PageTypePage
	case "directory":
		return indexmodel.PageTypeDirectory
	}

	hasOGType := false
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "meta" {
			return true
		}
		for _, a := range n.Attr {
			if a.Key == "property" && strings.Contains(a.Val, "og:type") {
				hasOGType = true
			}
		}
		return true
	})
	if hasOGType {
		for _, content := range []string{"article", "page", "directory"} {
			if hasMetaContentPair(doc, content) {
				switch content {
				case "article":
					return indexmodel.PageTypeArticle
				case "page":
					return indexmodel.PageTypePage
				case "directory":
					return indexmodel.PageTypeDirectory
				}
			}
		}
	}
	return indexmodel.PageTypeUnknown
}

func hasMetaContentPair(doc *html.Node, content string) bool {
	found := false
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "meta" && getAttr(n, "content") == content {
			found = true
		}
		return true
	})
	return found
}

// extractMetaTags collects every <meta name=.. content=..> and
// <meta property=.. content=..> pair keyed by name/property; when a tag
// carries both a name and a property attribute, it is keyed by name.
func extractMetaTags(doc *html.Node) map[string]string {
	meta := make(map[string]string)
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "meta" {
			return true
		}
		content := getAttr(n, "content")
		if content == "" {
			return true
		}
		if name := getAttr(n, "name"); name != "" {
			meta[name] = content
		} else if prop := getAttr(n, "property"); prop != "" {
			meta[prop] = content
		}
		return true
	})
	return meta
}

// extractTitle prefers <title>, falling back to the first <h1>.
func extractTitle(doc *html.Node) string {
	if n := findElement(doc, "title"); n != nil {
		if t := strings.TrimSpace(collectText(n)); t != "" {
			return t
		}
	}
	if n := findElement(doc, "h1"); n != nil {
		return strings.TrimSpace(collectText(n))
	}
	return ""
}

// extractContent finds the semantic content root - <article>, then <main>,
// then <body> - and collects its text, skipping chrome and directory
// sections, collapsing runs of whitespace.
func extractContent(doc *html.Node) string {
	root := findElement(doc, "article")
	if root == nil {
		root = findElement(doc, "main")
	}
	if root == nil {
		root = findElement(doc, "body")
	}
	if root == nil {
		return ""
	}

	var b strings.Builder
	collectContentText(root, &b)
	return collapseWhitespace(b.String())
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// isExcludedFromContent reports whether n is a non-content tag, a
// table-of-contents section, an sr-only element, or carries chrome-marker
// id/class (nav, sidebar, comments, sharing, ...). Both the plaintext
// extraction and the heading walk apply this same exclusion.
func isExcludedFromContent(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if _, skip := nonContentTags[n.Data]; skip {
		return true
	}
	if n.Data == "section" && isTOCSection(n) {
		return true
	}
	if strings.Contains(getAttr(n, "class"), "sr-only") {
		return true
	}
	return isChromeElement(n)
}

// collectContentText walks n skipping non-content tags, table-of-contents
// sections, sr-only elements, and any element whose id/class suggests
// navigation, comments, or sharing chrome.
func collectContentText(n *html.Node, b *strings.Builder) {
	if isExcludedFromContent(n) {
		return
	}
	if n.Type == html.TextNode {
		if strings.TrimSpace(n.Data) != "" {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectContentText(c, b)
	}
}

func isTOCSection(n *html.Node) bool {
	id := strings.ToLower(getAttr(n, "id"))
	class := strings.ToLower(getAttr(n, "class"))
	return strings.Contains(id, "toc") || strings.Contains(id, "directory") ||
		strings.Contains(class, "toc") || strings.Contains(class, "directory")
}

var chromeMarkers = []string{"nav", "menu", "sidebar", "comment", "related", "share", "toc", "directory"}

func isChromeElement(n *html.Node) bool {
	id := strings.ToLower(getAttr(n, "id"))
	class := strings.ToLower(getAttr(n, "class"))
	for _, m := range chromeMarkers {
		if strings.Contains(id, m) || strings.Contains(class, m) {
			return true
		}
	}
	return false
}

// extractHeadings walks <article>, else <main>, else the whole document,
// with the same exclusions as extractContent, collecting h1-h6 elements in
// document order, deduplicating by text, then
// locating each heading's position in content (first occurrence, case
// insensitive) and deriving its end position from the next heading.
func extractHeadings(doc *html.Node, content string) []indexmodel.Heading {
	root := findElement(doc, "article")
	if root == nil {
		root = findElement(doc, "main")
	}

	var headings []indexmodel.Heading
	seen := make(map[string]struct{})

	if root != nil {
		collectHeadings(root, &headings, seen)
	} else {
		collectHeadingsExcludingChrome(doc, &headings, seen)
	}

	if len(headings) == 0 {
		return headings
	}

	contentLower := strings.ToLower(content)
	located := make([]bool, len(headings))
	for i := range headings {
		textLower := strings.ToLower(headings[i].Text)
		pos := strings.Index(contentLower, textLower)
		if pos < 0 {
			continue
		}
		headings[i].Position = pos
		located[i] = true
	}
	for i := range headings {
		if !located[i] {
			continue
		}
		var end int
		if i < len(headings)-1 {
			end = headings[i+1].Position
		} else {
			end = len(content)
		}
		headings[i].EndPosition = &end
	}
	return headings
}

// collectHeadings walks n applying the same exclusions as collectContentText,
// so a heading inside nav/TOC/sidebar/sr-only chrome is never indexed.
func collectHeadings(n *html.Node, out *[]indexmodel.Heading, seen map[string]struct{}) {
	if isExcludedFromContent(n) {
		return
	}
	if n.Type == html.ElementNode {
		if level, ok := headingLevel(n.Data); ok {
			appendHeading(n, level, out, seen)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectHeadings(c, out, seen)
	}
}

// collectHeadingsExcludingChrome is the fallback used when neither
// <article> nor <main> is present: it walks the whole document with the
// same exclusions as collectContentText (which also skips <head>).
func collectHeadingsExcludingChrome(n *html.Node, out *[]indexmodel.Heading, seen map[string]struct{}) {
	if isExcludedFromContent(n) {
		return
	}
	if n.Type == html.ElementNode {
		if level, ok := headingLevel(n.Data); ok {
			appendHeading(n, level, out, seen)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectHeadingsExcludingChrome(c, out, seen)
	}
}

func appendHeading(n *html.Node, level int, out *[]indexmodel.Heading, seen map[string]struct{}) {
	text := strings.TrimSpace(collectText(n))
	if text == "" {
		return
	}
	if _, dup := seen[text]; dup {
		return
	}
	seen[text] = struct{}{}
	*out = append(*out, indexmodel.Heading{Level: level, Text: text})
}

func headingLevel(tag string) (int, bool) {
	if len(tag) != 2 || tag[0] != 'h' {
		return 0, false
	}
	switch tag[1] {
	case '1', '2', '3', '4', '5', '6':
		return int(tag[1] - '0'), true
	}
	return 0, false
}

// buildSummary takes the first 200 runes of content and appends an ellipsis.
func buildSummary(content string) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)
	if len(runes) > 200 {
		runes = runes[:200]
	}
	return string(runes) + "..."
}

// extractTags merges article:tag and keywords meta values, splitting on
// commas, discarding blanks, and returning a sorted deduplicated list.
func extractTags(meta map[string]string) []string {
	var tags []string
	for _, key := range []string{"article:tag", "keywords"} {
		v, ok := meta[key]
		if !ok {
			continue
		}
		for _, t := range strings.Split(v, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return dedupSorted(tags)
}

func dedupSorted(ss []string) []string {
	out := ss[:0]
	var prev string
	first := true
	for _, s := range ss {
		if !first && s == prev {
			continue
		}
		out = append(out, s)
		prev = s
		first = false
	}
	return out
}

// extractDate reads article:published_time as RFC3339, falling back to now
// when absent or malformed.
func extractDate(meta map[string]string, now time.Time) time.Time {
	if v, ok := meta["article:published_time"]; ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.UTC()
		}
	}
	return now
}

// --- small x/net/html walking helpers, in the teacher's idiom ---

func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(collectText(c))
	}
	return collapseWhitespace(b.String())
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
