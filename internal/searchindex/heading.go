package searchindex

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/newechoes/necmp/internal/indexmodel"
)

type extractedHeading struct {
	level    int
	text     string
	position int
}

var headingTagRe = regexp.MustCompile(`<h([1-6])(?:\s[^>]*)?>([\s\S]*?)</h\d>`)
var headingTagFallbackRe = regexp.MustCompile(`<h\d[^>]*>(.*?)</h\d>`)
var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// buildHeadingIndex reconstructs the heading hierarchy for one article and
// returns its entries keyed by id.
func buildHeadingIndex(articleID string, article indexmodel.ArticleMetadata) map[string]indexmodel.HeadingIndexEntry {
	var extracted []extractedHeading

	if len(article.Headings) > 0 {
		for _, h := range article.Headings {
			extracted = append(extracted, extractedHeading{level: h.Level, text: h.Text, position: h.Position})
		}
	} else {
		extracted = regexExtractHeadings(article.Content)
	}

	if len(extracted) == 0 {
		return map[string]indexmodel.HeadingIndexEntry{}
	}

	sort.SliceStable(extracted, func(i, j int) bool { return extracted[i].position < extracted[j].position })

	return buildHeadingHierarchy(articleID, extracted, len(article.Content))
}

// regexExtractHeadings scans raw content for <hN>...</hN> tags when the
// article carries no pre-parsed headings.
func regexExtractHeadings(content string) []extractedHeading {
	var out []extractedHeading

	matches := headingTagRe.FindAllStringSubmatchIndex(content, -1)
	for _, m := range matches {
		level := int(content[m[2]] - '0')
		rawText := content[m[4]:m[5]]
		text := strings.TrimSpace(htmlTagRe.ReplaceAllString(rawText, ""))
		if text == "" {
			continue
		}
		out = append(out, extractedHeading{level: level, text: text, position: m[0]})
	}
	if len(out) > 0 {
		return out
	}

	matches = headingTagFallbackRe.FindAllStringSubmatchIndex(content, -1)
	for _, m := range matches {
		rawText := content[m[2]:m[3]]
		text := strings.TrimSpace(htmlTagRe.ReplaceAllString(rawText, ""))
		if text == "" {
			continue
		}
		out = append(out, extractedHeading{level: 1, text: text, position: m[0]})
	}
	return out
}

// buildHeadingHierarchy walks sorted headings maintaining a stack of
// (id, level) pairs, assigning parent_id/children_ids per spec.
func buildHeadingHierarchy(articleID string, sorted []extractedHeading, contentLen int) map[string]indexmodel.HeadingIndexEntry {
	result := make(map[string]indexmodel.HeadingIndexEntry, len(sorted))
	childrenOf := make(map[string][]string)
	positionOf := make(map[string]int, len(sorted))

	type stackEntry struct {
		id    string
		level int
	}
	var stack []stackEntry

	for i, h := range sorted {
		id := fmt.Sprintf("%s:%d", articleID, i)
		positionOf[id] = h.position

		endPos := contentLen
		if i+1 < len(sorted) {
			endPos = sorted[i+1].position
		}

		var parentID *string
		for len(stack) > 0 && stack[len(stack)-1].level >= h.level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			pid := stack[len(stack)-1].id
			parentID = &pid
			childrenOf[pid] = append(childrenOf[pid], id)
		}

		result[id] = indexmodel.HeadingIndexEntry{
			ID:       id,
			Level:    h.level,
			Text:     h.text,
			StartPos: h.position,
			EndPos:   endPos,
			ParentID: parentID,
		}
		stack = append(stack, stackEntry{id: id, level: h.level})
	}

	for parentID, children := range childrenOf {
		sort.SliceStable(children, func(a, b int) bool {
			return positionOf[children[a]] < positionOf[children[b]]
		})
		entry := result[parentID]
		entry.ChildrenIDs = children
		result[parentID] = entry
	}

	return result
}
