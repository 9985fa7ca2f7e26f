package searchengine

import (
	"testing"

	"github.com/newechoes/necmp/internal/indexmodel"
	"github.com/newechoes/necmp/internal/searchindex"
)

func TestFindMatchedArticlesTierMonotonicity(t *testing.T) {
	b := searchindex.NewBuilder(nil)
	b.Add(indexmodel.ArticleMetadata{ID: "heading-match", Title: "Other",
		Content:  "body text unrelated to the query term here",
		Headings: []indexmodel.Heading{{Level: 1, Text: "query heading", Position: 0}}})
	idx, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	matched := findMatchedArticles(&idx, "query")
	if len(matched) != 1 {
		t.Fatalf("got %d matches, want 1", len(matched))
	}
	if matched[0].score != 80 {
		t.Errorf("score = %v, want 80 (heading-term tier)", matched[0].score)
	}
}

func TestFindMatchedArticlesDedupesAcrossTiers(t *testing.T) {
	b := searchindex.NewBuilder(nil)
	b.Add(indexmodel.ArticleMetadata{ID: "a", Title: "query term appears here",
		Content: "query term also appears in the body content repeatedly"})
	idx, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	matched := findMatchedArticles(&idx, "query")
	if len(matched) != 1 {
		t.Fatalf("got %d matches, want exactly 1 (no duplicate across tiers)", len(matched))
	}
	if matched[0].score != 115 {
		t.Errorf("score = %v, want 115 (title-prefix wins over every later tier)", matched[0].score)
	}
}
