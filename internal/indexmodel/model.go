// Package indexmodel defines the data structures shared by the offline
// index builders and the online query engines.
package indexmodel

import "time"

// PageType classifies a crawled HTML page.
type PageType string

const (
	PageTypeArticle   PageType = "article"
	PageTypePage      PageType = "page"
	PageTypeDirectory PageType = "directory"
	PageTypeUnknown   PageType = "unknown"
)

// Heading is a single extracted heading with its byte position in the
// article's plaintext content.
type Heading struct {
	Level       int    `msgpack:"level" json:"level"`
	Text        string `msgpack:"text" json:"text"`
	Position    int    `msgpack:"position" json:"position"`
	EndPosition *int   `msgpack:"end_position,omitempty" json:"end_position,omitempty"`
}

// ArticleMetadata is the primary record produced by the extractor and
// consumed by both builders.
type ArticleMetadata struct {
	ID       string    `msgpack:"id" json:"id"`
	Title    string    `msgpack:"title" json:"title"`
	Summary  string    `msgpack:"summary" json:"summary"`
	Date     time.Time `msgpack:"date" json:"date"`
	Tags     []string  `msgpack:"tags" json:"tags"`
	URL      string    `msgpack:"url" json:"url"`
	Content  string    `msgpack:"content" json:"content"`
	PageType PageType  `msgpack:"page_type" json:"page_type"`
	Headings []Heading `msgpack:"headings" json:"headings,omitempty"`
}

// FilterIndex is the on-disk artifact consumed by the Filter Engine.
type FilterIndex struct {
	Articles   []ArticleMetadata    `msgpack:"articles"`
	TagIndex   map[string]IntSet    `msgpack:"tag_index"`
	YearIndex  map[int]IntSet       `msgpack:"year_index"`
	MonthIndex map[string]IntSet    `msgpack:"month_index"`
}

// HeadingIndexEntry is the indexed form of a Heading, addressable by a
// stable "<article-ordinal>:<heading-ordinal>" id.
type HeadingIndexEntry struct {
	ID           string   `msgpack:"id"`
	Level        int      `msgpack:"level"`
	Text         string   `msgpack:"text"`
	StartPos     int      `msgpack:"start_position"`
	EndPos       int      `msgpack:"end_position"`
	ParentID     *string  `msgpack:"parent_id,omitempty"`
	ChildrenIDs  []string `msgpack:"children_ids"`
}

// SearchIndex is the on-disk artifact consumed by the Search Engine.
type SearchIndex struct {
	Articles         []ArticleMetadata           `msgpack:"articles"`
	TitleTermIndex   map[string]IntSet           `msgpack:"title_term_index"`
	HeadingIndex     map[string]HeadingIndexEntry `msgpack:"heading_index"`
	HeadingTermIndex map[string]StringSet        `msgpack:"heading_term_index"`
	ContentTermIndex map[string]IntSet           `msgpack:"content_term_index"`
	CommonTerms      map[string]int              `msgpack:"common_terms"`
}

// BuildStats summarizes a completed build for CLI/log reporting; it is not
// part of either on-disk artifact.
type BuildStats struct {
	ArticleCount int
	TagCount     int
	TitleTerms   int
	HeadingCount int
	ContentTerms int
	CommonTerms  int
	CreatedAt    time.Time
}
