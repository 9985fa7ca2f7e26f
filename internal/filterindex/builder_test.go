package filterindex

import (
	"testing"
	"time"

	"github.com/newechoes/necmp/internal/indexmodel"
)

func TestBuilderBuildEmpty(t *testing.T) {
	b := NewBuilder(nil)
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error building an empty index")
	}
}

func TestBuilderTagYearMonthIndexing(t *testing.T) {
	b := NewBuilder(nil)
	b.Add(indexmodel.ArticleMetadata{
		Tags: []string{"go", "wasm"},
		Date: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	b.Add(indexmodel.ArticleMetadata{
		Tags: []string{"go"},
		Date: time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	b.Add(indexmodel.ArticleMetadata{
		Tags: []string{"rust"},
		Date: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
	})

	idx, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if got := idx.TagIndex["go"].Sorted(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("tag_index[\"go\"] = %v, want [0 1]", got)
	}
	if got := idx.TagIndex["rust"].Sorted(); len(got) != 1 || got[0] != 2 {
		t.Errorf("tag_index[\"rust\"] = %v, want [2]", got)
	}
	if got := idx.YearIndex[2025].Sorted(); len(got) != 2 {
		t.Errorf("year_index[2025] = %v, want 2 members", got)
	}
	if got := idx.MonthIndex["2025-03"].Sorted(); len(got) != 2 {
		t.Errorf("month_index[\"2025-03\"] = %v, want 2 members", got)
	}
	if got := idx.MonthIndex["2024-12"].Sorted(); len(got) != 1 || got[0] != 2 {
		t.Errorf("month_index[\"2024-12\"] = %v, want [2]", got)
	}
}

func TestStats(t *testing.T) {
	b := NewBuilder(nil)
	b.Add(indexmodel.ArticleMetadata{Tags: []string{"go"}, Date: time.Now()})
	idx, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	stats := Stats(idx)
	if stats.ArticleCount != 1 || stats.TagCount != 1 {
		t.Errorf("Stats() = %+v, want ArticleCount=1 TagCount=1", stats)
	}
}
