package searchengine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/newechoes/necmp/internal/hostindex"
	"github.com/newechoes/necmp/internal/indexmodel"
)

const (
	defaultPage      = 1
	defaultPageSize  = 10
	autocompleteKind = "autocomplete"
)

// Engine answers search and autocomplete queries against a loaded
// SearchIndex.
type Engine struct {
	handle hostindex.Handle[indexmodel.SearchIndex]
	now    func() time.Time
}

// New constructs an uninitialized Engine.
func New() *Engine {
	return &Engine{now: time.Now}
}

// Init installs idx as the process-wide search index. A second call after a
// successful one is a no-op.
func (e *Engine) Init(idx indexmodel.SearchIndex) {
	e.handle.Init(&idx)
}

// Search executes req against the loaded index.
func (e *Engine) Search(req Request) (Result, error) {
	idx := e.handle.Get()
	if idx == nil {
		return Result{}, fmt.Errorf("searchengine: %w", indexmodel.ErrNotInitialized)
	}

	start := e.now()
	page := req.Page
	if page < 1 {
		page = defaultPage
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	query := strings.ToLower(strings.TrimSpace(req.Query))

	var result Result
	if req.SearchType == autocompleteKind {
		result = e.autocomplete(idx, query)
	} else {
		result = e.search(idx, query, page, pageSize)
	}
	result.TimeMS = time.Since(start).Milliseconds()
	return result, nil
}

func (e *Engine) autocomplete(idx *indexmodel.SearchIndex, query string) Result {
	if query == "" {
		sugs := topCommonTerms(idx, 10)
		return Result{
			Query:       query,
			Page:        1,
			PageSize:    len(sugs),
			TotalPages:  1,
			Suggestions: sugs,
		}
	}
	sugs := suggestions(idx, query)
	return Result{
		Items:       nil,
		Total:       len(sugs),
		Page:        1,
		PageSize:    len(sugs),
		TotalPages:  1,
		Query:       query,
		Suggestions: sugs,
	}
}

func (e *Engine) search(idx *indexmodel.SearchIndex, query string, page, pageSize int) Result {
	if query == "" {
		return Result{Query: query, Page: page, PageSize: pageSize, TotalPages: 0}
	}

	matched := findMatchedArticles(idx, query)

	items := make([]ResultItem, 0, len(matched))
	for _, m := range matched {
		if m.ordinal >= len(idx.Articles) {
			continue
		}
		article := idx.Articles[m.ordinal]
		items = append(items, ResultItem{
			ID:          article.ID,
			Title:       highlightTitle(article.Title, query),
			Summary:     article.Summary,
			URL:         article.URL,
			Score:       m.score,
			HeadingTree: buildHeadingTree(m.ordinal, article, idx, query),
			PageType:    article.PageType,
		})
	}

	total := len(items)
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	startIdx := (page - 1) * pageSize
	endIdx := startIdx + pageSize
	if endIdx > total {
		endIdx = total
	}

	var paged []ResultItem
	if startIdx < total {
		paged = items[startIdx:endIdx]
	}

	return Result{
		Items:       paged,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		Query:       query,
		Suggestions: suggestions(idx, query),
	}
}
