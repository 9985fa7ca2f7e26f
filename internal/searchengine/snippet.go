package searchengine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/newechoes/necmp/internal/indexmodel"
	"github.com/newechoes/necmp/internal/utf8safe"
)

const (
	snippetMaxInline = 300
	snippetContext   = 150
)

// matchSpan is a [start,end) byte offset pair found within a paragraph.
type matchSpan struct {
	start, end int
}

// findSpans locates every case-insensitive occurrence of q in paragraph,
// advancing past each match's end (or by one byte if a match made no
// progress).
func findSpans(paragraph, q string) []matchSpan {
	if q == "" {
		return nil
	}
	lower := strings.ToLower(paragraph)
	var spans []matchSpan
	start := 0
	for start < len(lower) {
		idx := strings.Index(lower[start:], q)
		if idx < 0 {
			break
		}
		absStart := start + idx
		absEnd := absStart + len(q)
		validStart := utf8safe.Snap(paragraph, absStart)
		validEnd := utf8safe.Snap(paragraph, absEnd)
		if validEnd > validStart {
			spans = append(spans, matchSpan{start: validStart, end: validEnd})
		}
		if validEnd > start {
			start = validEnd
		} else {
			start++
		}
	}
	return spans
}

// formatMatchedContent renders paragraph with every span wrapped in
// <mark>...</mark>, truncating to a 150-byte context window around the
// first match when the paragraph exceeds 300 bytes.
func formatMatchedContent(paragraph string, spans []matchSpan) string {
	if len(spans) == 0 || paragraph == "" {
		return paragraph
	}

	var out strings.Builder

	if len(paragraph) > snippetMaxInline {
		first := spans[0]
		ctxStart := 0
		if first.start > snippetContext {
			ctxStart = first.start - snippetContext
		}
		ctxStart = utf8safe.Snap(paragraph, ctxStart)
		ctxEnd := first.end + snippetContext
		if ctxEnd > len(paragraph) {
			ctxEnd = len(paragraph)
		}
		ctxEnd = utf8safe.Snap(paragraph, ctxEnd)

		context := paragraph[ctxStart:ctxEnd]
		lastPos := 0
		for _, s := range spans {
			if s.start < ctxStart || s.end > ctxEnd {
				continue
			}
			relStart := utf8safe.Snap(context, s.start-ctxStart)
			relEnd := utf8safe.Snap(context, s.end-ctxStart)
			if relStart > lastPos {
				out.WriteString(context[lastPos:relStart])
			}
			if relEnd > relStart {
				out.WriteString("<mark>")
				out.WriteString(context[relStart:relEnd])
				out.WriteString("</mark>")
			}
			lastPos = relEnd
		}
		if lastPos < len(context) {
			out.WriteString(context[lastPos:])
		}

		result := out.String()
		if ctxStart > 0 {
			result = "..." + result
		}
		if ctxEnd < len(paragraph) {
			result += "..."
		}
		if result == "" {
			end := utf8safe.Snap(paragraph, minInt(len(paragraph), snippetMaxInline))
			return paragraph[:end] + "..."
		}
		return result
	}

	lastPos := 0
	for _, s := range spans {
		start := utf8safe.Snap(paragraph, s.start)
		end := utf8safe.Snap(paragraph, s.end)
		if start > lastPos {
			out.WriteString(paragraph[lastPos:start])
		}
		if end > start {
			out.WriteString("<mark>")
			out.WriteString(paragraph[start:end])
			out.WriteString("</mark>")
		}
		lastPos = end
	}
	if lastPos < len(paragraph) {
		out.WriteString(paragraph[lastPos:])
	}

	result := out.String()
	if result == "" && paragraph != "" {
		end := utf8safe.Snap(paragraph, minInt(len(paragraph), snippetMaxInline))
		return paragraph[:end] + "..."
	}
	return result
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// findMatchesInParagraph slices the portion of article.Content owned by
// heading (applying the start+len(text)+level+1 quirk to every heading,
// including the virtual root whose text is the article title and whose
// level is 0), searches it for q, and returns the highlighted snippet plus
// the deduplicated matched surface forms, or ok=false if there is no match.
func findMatchesInParagraph(content string, startPos, endPos int, headingText string, headingLevel int, q string) (string, []string, bool) {
	contentStart := startPos + len(headingText) + headingLevel + 1
	if contentStart < len(content) {
		contentStart = utf8safe.Snap(content, contentStart)
	}
	contentEnd := endPos
	if contentEnd > len(content) {
		contentEnd = len(content)
	}
	contentEnd = utf8safe.Snap(content, contentEnd)

	if contentStart >= contentEnd || contentStart >= len(content) {
		return "", nil, false
	}

	paragraph := content[contentStart:contentEnd]
	if strings.TrimSpace(paragraph) == "" {
		return "", nil, false
	}

	spans := findSpans(paragraph, q)
	if len(spans) == 0 {
		return "", nil, false
	}

	highlighted := formatMatchedContent(paragraph, spans)
	terms := []string{q}
	return highlighted, terms, true
}

// highlightTitle wraps every case-insensitive occurrence of q in title with
// <mark>, preserving the title's original casing in emitted spans.
func highlightTitle(title, q string) string {
	if title == "" || q == "" {
		return title
	}
	spans := findSpans(title, q)
	if len(spans) == 0 {
		return title
	}
	var out strings.Builder
	lastPos := 0
	for _, s := range spans {
		if s.start > lastPos {
			out.WriteString(title[lastPos:s.start])
		}
		out.WriteString("<mark>")
		out.WriteString(title[s.start:s.end])
		out.WriteString("</mark>")
		lastPos = s.end
	}
	if lastPos < len(title) {
		out.WriteString(title[lastPos:])
	}
	return out.String()
}

// buildHeadingTree assembles the heading-scoped snippet tree for a matched
// article. It returns nil for an empty query or empty content, and for an
// article without headings whose content does not match q; an article with
// headings always gets a tree, whose nodes carry content only where their
// paragraph matches q.
func buildHeadingTree(ordinal int, article indexmodel.ArticleMetadata, idx *indexmodel.SearchIndex, q string) *HeadingNode {
	if q == "" || article.Content == "" {
		return nil
	}

	prefix := strconv.Itoa(ordinal) + ":"
	headings := make(map[string]indexmodel.HeadingIndexEntry)
	for id, entry := range idx.HeadingIndex {
		if strings.HasPrefix(id, prefix) {
			headings[id] = entry
		}
	}

	if len(headings) == 0 {
		content, terms, ok := findMatchesInParagraph(article.Content, 0, len(article.Content), article.Title, 0, q)
		if !ok {
			return nil
		}
		return &HeadingNode{
			ID:           prefix + "root",
			Text:         article.Title,
			Level:        0,
			Content:      strPtr(content),
			MatchedTerms: terms,
			Children:     []*HeadingNode{},
		}
	}

	var roots []indexmodel.HeadingIndexEntry
	for _, entry := range headings {
		if entry.ParentID == nil {
			roots = append(roots, entry)
		}
	}
	if len(roots) == 0 {
		return nil
	}
	sort.SliceStable(roots, func(i, j int) bool { return roots[i].StartPos < roots[j].StartPos })

	root := &HeadingNode{
		ID:       prefix + "root",
		Text:     article.Title,
		Level:    0,
		Children: []*HeadingNode{},
	}
	if content, terms, ok := findMatchesInParagraph(article.Content, 0, len(article.Content), article.Title, 0, q); ok {
		root.Content = strPtr(content)
		root.MatchedTerms = terms
	}

	for _, entry := range roots {
		root.Children = append(root.Children, buildHeadingNode(entry, headings, article.Content, q))
	}

	return root
}

func buildHeadingNode(entry indexmodel.HeadingIndexEntry, headings map[string]indexmodel.HeadingIndexEntry, content, q string) *HeadingNode {
	node := &HeadingNode{
		ID:       entry.ID,
		Text:     entry.Text,
		Level:    entry.Level,
		Children: []*HeadingNode{},
	}
	if c, terms, ok := findMatchesInParagraph(content, entry.StartPos, entry.EndPos, entry.Text, entry.Level, q); ok {
		node.Content = strPtr(c)
		node.MatchedTerms = terms
	}
	for _, childID := range entry.ChildrenIDs {
		if child, ok := headings[childID]; ok {
			node.Children = append(node.Children, buildHeadingNode(child, headings, content, q))
		}
	}
	sortHeadingNodes(node.Children)
	return node
}

func sortHeadingNodes(nodes []*HeadingNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Level != nodes[j].Level {
			return nodes[i].Level < nodes[j].Level
		}
		return nodes[i].Text < nodes[j].Text
	})
}

func strPtr(s string) *string { return &s }
