package filterengine

import (
	"testing"
	"time"

	"github.com/newechoes/necmp/internal/filterindex"
	"github.com/newechoes/necmp/internal/indexmodel"
)

func buildTestIndex(t *testing.T) indexmodel.FilterIndex {
	t.Helper()
	b := filterindex.NewBuilder(nil)
	b.Add(indexmodel.ArticleMetadata{Title: "Alpha", Tags: []string{"go"}, Date: date(2025, 1, 10)})
	b.Add(indexmodel.ArticleMetadata{Title: "Beta", Tags: []string{"go", "wasm"}, Date: date(2025, 2, 5)})
	b.Add(indexmodel.ArticleMetadata{Title: "Gamma", Tags: []string{"rust"}, Date: date(2024, 12, 20)})
	idx, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return idx
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEngineNotInitialized(t *testing.T) {
	e := New()
	if _, err := e.Filter(Params{}); err == nil {
		t.Fatal("expected ErrNotInitialized before Init")
	}
	if _, err := e.AllTags(); err == nil {
		t.Fatal("expected ErrNotInitialized before Init")
	}
}

func TestAllTagsSorted(t *testing.T) {
	e := New()
	e.Init(buildTestIndex(t))
	tags, err := e.AllTags()
	if err != nil {
		t.Fatalf("AllTags() error: %v", err)
	}
	want := []string{"go", "rust", "wasm"}
	if len(tags) != len(want) {
		t.Fatalf("AllTags() = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("AllTags() = %v, want %v", tags, want)
		}
	}
}

func TestFilterByTagUnion(t *testing.T) {
	e := New()
	e.Init(buildTestIndex(t))
	result, err := e.Filter(Params{Tags: []string{"go"}, Limit: 10, Page: 1})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("Total = %d, want 2", result.Total)
	}
}

func TestFilterSortNewestDefault(t *testing.T) {
	e := New()
	e.Init(buildTestIndex(t))
	result, err := e.Filter(Params{Limit: 10, Page: 1})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if len(result.Articles) != 3 {
		t.Fatalf("got %d articles, want 3", len(result.Articles))
	}
	if result.Articles[0].Title != "Beta" {
		t.Errorf("newest-first order[0] = %q, want \"Beta\"", result.Articles[0].Title)
	}
}

func TestFilterPaginationLaw(t *testing.T) {
	e := New()
	e.Init(buildTestIndex(t))
	result, err := e.Filter(Params{Limit: 2, Page: 2})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if result.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", result.TotalPages)
	}
	if len(result.Articles) != 1 {
		t.Errorf("page 2 of limit=2 over 3 articles has %d items, want 1", len(result.Articles))
	}
}

func TestFilterByDateRange(t *testing.T) {
	e := New()
	e.Init(buildTestIndex(t))
	result, err := e.Filter(Params{Date: "2025-01-01,2025-01-31", Limit: 10, Page: 1})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if result.Total != 1 || result.Articles[0].Title != "Alpha" {
		t.Errorf("date-range filter = %+v, want just \"Alpha\"", result.Articles)
	}
}

func TestFilterSortTitleAsc(t *testing.T) {
	e := New()
	e.Init(buildTestIndex(t))
	result, err := e.Filter(Params{Sort: SortTitleAsc, Limit: 10, Page: 1})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if result.Articles[0].Title != "Alpha" || result.Articles[2].Title != "Gamma" {
		t.Errorf("title_asc order = %v, want Alpha..Gamma", result.Articles)
	}
}
