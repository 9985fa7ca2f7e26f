package searchengine

import (
	"sort"
	"strings"

	"github.com/newechoes/necmp/internal/indexmodel"
)

type candidate struct {
	text string
	score int
	kind  SuggestionType
	freq  int
}

// topCommonTerms returns the n most frequent common_terms entries as
// Completion suggestions with empty matched_text, used for an empty query.
func topCommonTerms(idx *indexmodel.SearchIndex, n int) []Suggestion {
	type pair struct {
		term string
		freq int
	}
	pairs := make([]pair, 0, len(idx.CommonTerms))
	for t, f := range idx.CommonTerms {
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
	out := make([]Suggestion, len(pairs))
	for i, p := range pairs {
		out[i] = Suggestion{Text: p.term, Type: SuggestionCompletion, SuggestionText: p.term}
	}
	return out
}

// suggestions builds the autocomplete/correction candidate list for q (a
// non-empty, already-lowercased query) per the three-stage model.
func suggestions(idx *indexmodel.SearchIndex, q string) []Suggestion {
	var candidates []candidate

	for _, article := range idx.Articles {
		titleLower := strings.ToLower(article.Title)
		switch {
		case titleLower == q:
		case strings.HasPrefix(titleLower, q):
			candidates = append(candidates, candidate{text: article.Title, score: 100, kind: SuggestionCompletion, freq: 100})
		case strings.Contains(titleLower, q):
			candidates = append(candidates, candidate{text: article.Title, score: 90, kind: SuggestionCorrection, freq: 90})
		}
	}

	for term, freq := range idx.CommonTerms {
		termLower := strings.ToLower(term)
		switch {
		case termLower == q:
		case strings.HasPrefix(termLower, q):
			candidates = append(candidates, candidate{text: term, score: 95, kind: SuggestionCompletion, freq: freq})
		case strings.Contains(termLower, q):
			candidates = append(candidates, candidate{text: term, score: 85, kind: SuggestionCorrection, freq: freq})
		}
	}

	if len(candidates) < 5 {
		present := make(map[string]struct{}, len(candidates))
		for _, c := range candidates {
			present[strings.ToLower(c.text)] = struct{}{}
		}
		maxDist := minInt(len([]rune(q)), 3)
		for term, freq := range idx.CommonTerms {
			termLower := strings.ToLower(term)
			if termLower == q {
				continue
			}
			if _, ok := present[termLower]; ok {
				continue
			}
			d := levenshtein(q, termLower)
			if d <= maxDist {
				candidates = append(candidates, candidate{
					text:  term,
					score: 80 - 5*d,
					kind:  SuggestionCorrection,
					freq:  freq,
				})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].freq > candidates[j].freq
	})
	if len(candidates) > 10 {
		candidates = candidates[:10]
	}

	out := make([]Suggestion, len(candidates))
	for i, c := range candidates {
		textLower := strings.ToLower(c.text)
		var matched, rest string
		if c.kind == SuggestionCompletion && strings.HasPrefix(textLower, q) {
			matched = c.text[:len(q)]
			rest = c.text[len(q):]
		} else {
			matched = q
			rest = c.text
		}
		out[i] = Suggestion{
			Text:           c.text,
			Type:           c.kind,
			MatchedText:    matched,
			SuggestionText: rest,
		}
	}
	return out
}

// levenshtein computes the classic single-cost insert/delete/substitute
// edit distance between a and b.
func levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	m, n := len(ar), len(br)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = minInt(minInt(del, ins), sub)
		}
		prev, curr = curr, prev
	}
	return prev[n]
}
