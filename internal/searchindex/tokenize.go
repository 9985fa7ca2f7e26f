package searchindex

import (
	"strings"
	"unicode"
)

// stopWords is the fixed Chinese function-word set excluded from the
// content term index and the common-terms accumulator.
var stopWords = map[string]struct{}{
	"的": {}, "是": {}, "在": {}, "了": {}, "和": {}, "与": {}, "或": {}, "而": {},
	"但": {}, "如果": {}, "因为": {}, "所以": {}, "这": {}, "那": {}, "这个": {},
	"那个": {}, "这些": {}, "那些": {}, "并": {}, "可以": {}, "把": {}, "被": {},
	"将": {}, "已": {}, "就": {}, "也": {}, "很": {}, "到": {}, "上": {}, "下": {},
	"中": {}, "为": {},
}

func isStopWord(s string) bool {
	_, ok := stopWords[s]
	return ok
}

func isLatinTokenRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}

func isBoundaryRune(r rune) bool {
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
		return true
	}
	return isASCIIPunct(r)
}

func isASCIIPunct(r rune) bool {
	switch {
	case r >= '!' && r <= '/':
		return true
	case r >= ':' && r <= '@':
		return true
	case r >= '[' && r <= '`':
		return true
	case r >= '{' && r <= '~':
		return true
	}
	return false
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// tokenizeSet runs the dictionary-free character-class tokenizer over s and
// returns the distinct token set (length >= 2, not purely digits).
func tokenizeSet(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	lower := strings.ToLower(s)

	var latinRun []rune
	var hanRun []rune

	flushLatin := func() {
		if len(latinRun) >= 2 {
			tokens[string(latinRun)] = struct{}{}
		}
		latinRun = latinRun[:0]
	}
	flushHan := func() {
		n := len(hanRun)
		for length := 1; length <= minInt(n, 3); length++ {
			for start := 0; start+length <= n; start++ {
				if length >= 2 {
					tokens[string(hanRun[start:start+length])] = struct{}{}
				}
			}
		}
		hanRun = hanRun[:0]
	}

	for _, r := range lower {
		switch {
		case isLatinTokenRune(r):
			flushHan()
			latinRun = append(latinRun, r)
		case isBoundaryRune(r):
			flushLatin()
			flushHan()
		default:
			flushLatin()
			hanRun = append(hanRun, r)
		}
	}
	flushLatin()
	flushHan()

	for tok := range tokens {
		if isAllDigits(tok) {
			delete(tokens, tok)
		}
	}
	return tokens
}

// tokenizeList returns tokenizeSet's members as a slice, order unspecified.
func tokenizeList(s string) []string {
	set := tokenizeSet(s)
	out := make([]string, 0, len(set))
	for tok := range set {
		out = append(out, tok)
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// titleWordPieces whitespace-splits the lowercased title and trims each
// piece of leading/trailing characters that are not alphanumeric, '_', or
// '-', keeping non-empty length >= 2 pieces.
func titleWordPieces(title string) []string {
	lower := strings.ToLower(title)
	var out []string
	for _, field := range strings.Fields(lower) {
		trimmed := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-'
		})
		if len([]rune(trimmed)) >= 2 {
			out = append(out, trimmed)
		}
	}
	return out
}
