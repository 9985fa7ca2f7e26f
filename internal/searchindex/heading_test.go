package searchindex

import (
	"testing"

	"github.com/newechoes/necmp/internal/indexmodel"
)

func TestBuildHeadingIndexNestedHierarchy(t *testing.T) {
	// H1 Intro / H2 Setup / H2 Usage / H1 Summary - a flat list whose
	// hierarchy must be reconstructed purely from level + position.
	article := indexmodel.ArticleMetadata{
		Content: "intro text setup text usage text summary text",
		Headings: []indexmodel.Heading{
			{Level: 1, Text: "Intro", Position: 0},
			{Level: 2, Text: "Setup", Position: 11},
			{Level: 2, Text: "Usage", Position: 22},
			{Level: 1, Text: "Summary", Position: 33},
		},
	}

	idx := buildHeadingIndex("0", article)
	if len(idx) != 4 {
		t.Fatalf("got %d entries, want 4", len(idx))
	}

	intro := idx["0:0"]
	if intro.ParentID != nil {
		t.Errorf("Intro should be a root, got parent %v", *intro.ParentID)
	}
	if len(intro.ChildrenIDs) != 2 || intro.ChildrenIDs[0] != "0:1" || intro.ChildrenIDs[1] != "0:2" {
		t.Errorf("Intro children = %v, want [0:1 0:2]", intro.ChildrenIDs)
	}

	setup := idx["0:1"]
	if setup.ParentID == nil || *setup.ParentID != "0:0" {
		t.Errorf("Setup parent = %v, want 0:0", setup.ParentID)
	}
	if setup.EndPos != 22 {
		t.Errorf("Setup end_position = %d, want 22 (next heading's position)", setup.EndPos)
	}

	summary := idx["0:3"]
	if summary.ParentID != nil {
		t.Errorf("Summary should be a root (level 1 pops Usage's level-2 stack entry), got parent %v", summary.ParentID)
	}
	if summary.EndPos != len(article.Content) {
		t.Errorf("Summary end_position = %d, want %d (content length)", summary.EndPos, len(article.Content))
	}
}

func TestBuildHeadingIndexRegexFallback(t *testing.T) {
	article := indexmodel.ArticleMetadata{
		Content: `<h1 class="title">Intro</h1><p>body</p><h2>Details</h2><p>more</p>`,
	}
	idx := buildHeadingIndex("3", article)
	if len(idx) != 2 {
		t.Fatalf("got %d entries, want 2", len(idx))
	}
	if idx["3:0"].Text != "Intro" || idx["3:0"].Level != 1 {
		t.Errorf("first heading = %+v, want level 1 \"Intro\"", idx["3:0"])
	}
	if idx["3:1"].Text != "Details" || idx["3:1"].Level != 2 {
		t.Errorf("second heading = %+v, want level 2 \"Details\"", idx["3:1"])
	}
}

func TestBuildHeadingIndexEmpty(t *testing.T) {
	idx := buildHeadingIndex("0", indexmodel.ArticleMetadata{Content: "no headings here"})
	if len(idx) != 0 {
		t.Errorf("got %d entries, want 0", len(idx))
	}
}
