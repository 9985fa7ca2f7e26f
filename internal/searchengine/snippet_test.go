package searchengine

import (
	"strings"
	"testing"
)

func TestFindSpansCaseInsensitive(t *testing.T) {
	spans := findSpans("Hello WASM world", "wasm")
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].start != 6 || spans[0].end != 10 {
		t.Errorf("span = %+v, want {6 10}", spans[0])
	}
}

func TestFormatMatchedContentShortParagraphHighlightsInline(t *testing.T) {
	out := formatMatchedContent("a wasm test", findSpans("a wasm test", "wasm"))
	if out != "a <mark>wasm</mark> test" {
		t.Errorf("got %q", out)
	}
}

func TestFormatMatchedContentLongParagraphTruncatesBothSides(t *testing.T) {
	filler := strings.Repeat("x", 400)
	paragraph := filler + " wasm " + filler
	out := formatMatchedContent(paragraph, findSpans(paragraph, "wasm"))
	if !strings.Contains(out, "<mark>wasm</mark>") {
		t.Fatalf("expected highlighted match, got %q", out[:60])
	}
	if !strings.HasPrefix(out, "...") {
		t.Errorf("expected leading ellipsis, got prefix %q", out[:10])
	}
	if !strings.HasSuffix(out, "...") {
		t.Errorf("expected trailing ellipsis, got suffix %q", out[len(out)-10:])
	}
}

func TestHighlightPreservationStrippingMarkYieldsSubstring(t *testing.T) {
	paragraph := "前端 wasm 编译 test content here"
	out := formatMatchedContent(paragraph, findSpans(paragraph, "wasm"))
	stripped := strings.TrimPrefix(strings.TrimSuffix(out, "..."), "...")
	stripped = strings.ReplaceAll(stripped, "<mark>", "")
	stripped = strings.ReplaceAll(stripped, "</mark>", "")
	if !strings.Contains(paragraph, stripped) {
		t.Errorf("stripped snippet %q is not a substring of original %q", stripped, paragraph)
	}
}

func TestHighlightTitlePreservesCasing(t *testing.T) {
	got := highlightTitle("WASM Guide", "wasm")
	want := "<mark>WASM</mark> Guide"
	if got != want {
		t.Errorf("highlightTitle() = %q, want %q", got, want)
	}
}

func TestFindMatchesInParagraphBoundarySafety(t *testing.T) {
	// A heading whose quirked start offset lands mid-rune must never panic
	// or slice off a byte boundary.
	content := "中文" + strings.Repeat("a", 10) + "wasm" + strings.Repeat("b", 10)
	_, _, _ = findMatchesInParagraph(content, 0, len(content), "中", 0, "wasm")
}
