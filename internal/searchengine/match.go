package searchengine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/newechoes/necmp/internal/indexmodel"
)

type scoredArticle struct {
	ordinal int
	score   float64
}

// findMatchedArticles runs the seven matching tiers over q (already
// lowercased) and returns matches ordered by descending score, stable
// within a tier. Once an article matches in an earlier tier it is skipped
// in every later one.
func findMatchedArticles(idx *indexmodel.SearchIndex, q string) []scoredArticle {
	var matched []scoredArticle
	seen := make(map[int]struct{})

	add := func(ord int, score float64) {
		if _, ok := seen[ord]; ok {
			return
		}
		seen[ord] = struct{}{}
		matched = append(matched, scoredArticle{ordinal: ord, score: score})
	}

	for i, article := range idx.Articles {
		titleLower := strings.ToLower(article.Title)
		if strings.HasPrefix(titleLower, q) && titleLower != q {
			add(i, 115)
		}
	}
	for i, article := range idx.Articles {
		titleLower := strings.ToLower(article.Title)
		if strings.Contains(titleLower, q) && titleLower != q {
			add(i, 99)
		}
	}
	for i, article := range idx.Articles {
		titleLower := strings.ToLower(article.Title)
		if titleLower == q {
			add(i, 90)
		}
	}
	if ords, ok := idx.TitleTermIndex[q]; ok {
		for _, ord := range ords.Sorted() {
			add(ord, 85)
		}
	}
	if ids, ok := idx.HeadingTermIndex[q]; ok {
		for _, id := range ids.Sorted() {
			if ord, ok := articleOrdinalFromHeadingID(id); ok && ord < len(idx.Articles) {
				add(ord, 80)
			}
		}
	}
	if ords, ok := idx.ContentTermIndex[q]; ok {
		for _, ord := range ords.Sorted() {
			add(ord, 75)
		}
	}
	if len(matched) == 0 {
		for i, article := range idx.Articles {
			if strings.Contains(strings.ToLower(article.Content), q) {
				add(i, 50)
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].score > matched[j].score })
	return matched
}

// articleOrdinalFromHeadingID extracts the leading "<ordinal>:" prefix of a
// heading id.
func articleOrdinalFromHeadingID(id string) (int, bool) {
	colon := strings.IndexByte(id, ':')
	if colon < 0 {
		return 0, false
	}
	ord, err := strconv.Atoi(id[:colon])
	if err != nil {
		return 0, false
	}
	return ord, true
}
