// Package filterengine answers paginated tag/date filter queries against a
// loaded FilterIndex.
package filterengine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/newechoes/necmp/internal/hostindex"
	"github.com/newechoes/necmp/internal/indexmodel"
)

const defaultLimit = 12

// SortMode selects FilterResult ordering.
type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortOldest    SortMode = "oldest"
	SortTitleAsc  SortMode = "title_asc"
	SortTitleDesc SortMode = "title_desc"
)

// Params is a filter query.
type Params struct {
	Tags  []string
	Sort  SortMode
	Page  int
	Limit int
	Date  string // "all", "", or "<startISO>,<endISO>"
}

// Result is the FilterResult shape exposed across the host boundary.
type Result struct {
	Articles   []indexmodel.ArticleMetadata `json:"articles"`
	Total      int                          `json:"total"`
	Page       int                          `json:"page"`
	Limit      int                          `json:"limit"`
	TotalPages int                          `json:"total_pages"`
}

// Engine answers filter queries against a loaded FilterIndex.
type Engine struct {
	handle hostindex.Handle[indexmodel.FilterIndex]
}

// New constructs an uninitialized Engine.
func New() *Engine {
	return &Engine{}
}

// Init installs idx as the process-wide filter index. A second call after a
// successful one is a no-op.
func (e *Engine) Init(idx indexmodel.FilterIndex) {
	e.handle.Init(&idx)
}

// AllTags returns the keys of tag_index.
func (e *Engine) AllTags() ([]string, error) {
	idx := e.handle.Get()
	if idx == nil {
		return nil, fmt.Errorf("filterengine: %w", indexmodel.ErrNotInitialized)
	}
	tags := make([]string, 0, len(idx.TagIndex))
	for t := range idx.TagIndex {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags, nil
}

// Filter applies params against the loaded index.
func (e *Engine) Filter(params Params) (Result, error) {
	idx := e.handle.Get()
	if idx == nil {
		return Result{}, fmt.Errorf("filterengine: %w", indexmodel.ErrNotInitialized)
	}

	candidates := make(indexmodel.IntSet, len(idx.Articles))
	for i := range idx.Articles {
		candidates.Add(i)
	}

	if len(params.Tags) > 0 {
		union := indexmodel.NewIntSet()
		for _, t := range params.Tags {
			if set, ok := idx.TagIndex[t]; ok {
				for ord := range set {
					union.Add(ord)
				}
			}
		}
		candidates = intersect(candidates, union)
	}

	if params.Date != "" && params.Date != "all" {
		start, end, ok := parseDateRange(params.Date)
		if ok {
			candidates = filterByDate(idx.Articles, candidates, start, end)
		}
	}

	ords := candidates.Sorted()
	articles := make([]indexmodel.ArticleMetadata, len(ords))
	for i, ord := range ords {
		articles[i] = idx.Articles[ord]
	}

	sortArticles(articles, params.Sort)

	limit := params.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	total := len(articles)
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Result{
		Articles:   articles[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func intersect(a, b indexmodel.IntSet) indexmodel.IntSet {
	out := indexmodel.NewIntSet()
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	for ord := range small {
		if big.Contains(ord) {
			out.Add(ord)
		}
	}
	return out
}

// parseDateRange splits date on "," and parses each side as a full-day
// RFC3339 bound. An empty or malformed side is treated as absent (an open
// bound), never an error; ok is false only when neither side parsed.
func parseDateRange(date string) (start, end time.Time, ok bool) {
	parts := strings.SplitN(date, ",", 2)
	startStr := parts[0]
	endStr := ""
	if len(parts) > 1 {
		endStr = parts[1]
	}

	var haveStart, haveEnd bool
	if startStr != "" {
		if t, err := time.Parse(time.RFC3339, startStr+"T00:00:00Z"); err == nil {
			start = t
			haveStart = true
		}
	}
	if endStr != "" {
		if t, err := time.Parse(time.RFC3339, endStr+"T23:59:59Z"); err == nil {
			end = t
			haveEnd = true
		}
	}
	if !haveStart {
		start = time.Time{}
	}
	if !haveEnd {
		end = time.Unix(1<<62, 0)
	}
	return start, end, haveStart || haveEnd
}

func filterByDate(articles []indexmodel.ArticleMetadata, candidates indexmodel.IntSet, start, end time.Time) indexmodel.IntSet {
	out := indexmodel.NewIntSet()
	for ord := range candidates {
		d := articles[ord].Date
		if !d.Before(start) && !d.After(end) {
			out.Add(ord)
		}
	}
	return out
}

func sortArticles(articles []indexmodel.ArticleMetadata, mode SortMode) {
	switch mode {
	case SortOldest:
		sort.SliceStable(articles, func(i, j int) bool { return articles[i].Date.Before(articles[j].Date) })
	case SortTitleAsc:
		sort.SliceStable(articles, func(i, j int) bool { return articles[i].Title < articles[j].Title })
	case SortTitleDesc:
		sort.SliceStable(articles, func(i, j int) bool { return articles[i].Title > articles[j].Title })
	default: // "newest" and unset
		sort.SliceStable(articles, func(i, j int) bool { return articles[i].Date.After(articles[j].Date) })
	}
}
