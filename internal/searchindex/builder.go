// Package searchindex tokenizes articles, reconstructs their heading
// hierarchy, and assembles the inverted indices consumed by the search
// engine.
package searchindex

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/newechoes/necmp/internal/indexmodel"
)

// Builder accumulates articles before assembling a SearchIndex. Articles
// with page_type "directory" are skipped per spec.
type Builder struct {
	articles []indexmodel.ArticleMetadata
	logger   *slog.Logger
}

// NewBuilder constructs a Builder. A nil logger falls back to slog.Default().
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Add appends an article to the builder, skipping directory-typed pages.
func (b *Builder) Add(article indexmodel.ArticleMetadata) {
	if article.PageType == indexmodel.PageTypeDirectory {
		return
	}
	b.articles = append(b.articles, article)
}

// Build assembles the SearchIndex from the accumulated articles.
func (b *Builder) Build() (indexmodel.SearchIndex, error) {
	if len(b.articles) == 0 {
		return indexmodel.SearchIndex{}, fmt.Errorf("searchindex: %w", indexmodel.ErrEmptyInput)
	}

	titleTermIndex := make(map[string]indexmodel.IntSet)
	headingIndex := make(map[string]indexmodel.HeadingIndexEntry)
	contentTermIndex := make(map[string]indexmodel.IntSet)
	termFrequency := make(map[string]int)

	for i, article := range b.articles {
		ordinal := strconv.Itoa(i)
		for id, entry := range buildHeadingIndex(ordinal, article) {
			headingIndex[id] = entry
		}

		titleTokens := tokenizeSet(article.Title)
		titlePieces := titleWordPieces(article.Title)
		for tok := range titleTokens {
			addOrdinal(titleTermIndex, tok, i)
			if !isStopWord(tok) && len([]rune(tok)) >= 2 {
				termFrequency[tok] += 3
			}
		}
		for _, piece := range titlePieces {
			addOrdinal(titleTermIndex, piece, i)
			if !isStopWord(piece) && len([]rune(piece)) >= 2 {
				termFrequency[piece] += 3
			}
		}

		contentTokenFreq := make(map[string]int)
		for tok := range tokenizeSet(article.Content) {
			if isStopWord(tok) || len([]rune(tok)) < 2 {
				continue
			}
			contentTokenFreq[tok]++
			addOrdinal(contentTermIndex, tok, i)
		}
		for tok, freq := range contentTokenFreq {
			if freq >= 2 {
				termFrequency[tok]++
			}
		}
	}

	headingTermIndex := make(map[string]indexmodel.StringSet)
	for id, entry := range headingIndex {
		for tok := range tokenizeSet(entry.Text) {
			set, ok := headingTermIndex[tok]
			if !ok {
				set = indexmodel.NewStringSet()
				headingTermIndex[tok] = set
			}
			set.Add(id)
		}
	}

	commonTerms := selectCommonTerms(termFrequency, 500)

	b.logger.Info("search index built",
		"articles", len(b.articles),
		"title_terms", len(titleTermIndex),
		"headings", len(headingIndex),
		"content_terms", len(contentTermIndex),
		"common_terms", len(commonTerms),
	)

	return indexmodel.SearchIndex{
		Articles:         append([]indexmodel.ArticleMetadata(nil), b.articles...),
		TitleTermIndex:   titleTermIndex,
		HeadingIndex:     headingIndex,
		HeadingTermIndex: headingTermIndex,
		ContentTermIndex: contentTermIndex,
		CommonTerms:      commonTerms,
	}, nil
}

func addOrdinal(idx map[string]indexmodel.IntSet, term string, ord int) {
	set, ok := idx[term]
	if !ok {
		set = indexmodel.NewIntSet()
		idx[term] = set
	}
	set.Add(ord)
}

// selectCommonTerms sorts term frequencies descending and keeps the top n.
func selectCommonTerms(freq map[string]int, n int) map[string]int {
	type pair struct {
		term string
		freq int
	}
	pairs := make([]pair, 0, len(freq))
	for t, f := range freq {
		pairs = append(pairs, pair{t, f})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].freq != pairs[j].freq {
			return pairs[i].freq > pairs[j].freq
		}
		return pairs[i].term < pairs[j].term
	})
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	out := make(map[string]int, len(pairs))
	for _, p := range pairs {
		out[p.term] = p.freq
	}
	return out
}

// Stats summarizes the built index for CLI status lines.
func Stats(idx indexmodel.SearchIndex) indexmodel.BuildStats {
	return indexmodel.BuildStats{
		ArticleCount: len(idx.Articles),
		TitleTerms:   len(idx.TitleTermIndex),
		HeadingCount: len(idx.HeadingIndex),
		ContentTerms: len(idx.ContentTermIndex),
		CommonTerms:  len(idx.CommonTerms),
	}
}
