package analyzer

import (
	"unicode"
	"unicode/utf8"
)

// Tokenize splits text into maximal runs of word characters (letters, numbers
// and underscore) in order of appearance. Everything else is a separator.
// Tokens keep their original case.
func Tokenize(text string) []string {
	tokens := make([]string, 0, len(text)/4)
	start := -1

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if isWordRune(r, size) {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			tokens = append(tokens, text[start:i])
			start = -1
		}
		i += size
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}

	return tokens
}

// isWordRune reports whether r belongs to a token. Invalid UTF-8 bytes decode
// to RuneError with size 1 and are treated as separators.
func isWordRune(r rune, size int) bool {
	if r == utf8.RuneError && size <= 1 {
		return false
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// TermCounts is the bag-of-words view of a token sequence.
type TermCounts struct {
	// Order lists distinct terms by first appearance
	Order  []string
	Counts map[string]int
}

// CountTerms builds the bag-of-words for a token sequence.
func CountTerms(tokens []string) TermCounts {
	tc := TermCounts{
		Order:  make([]string, 0, len(tokens)),
		Counts: make(map[string]int, len(tokens)),
	}
	for _, tok := range tokens {
		if _, seen := tc.Counts[tok]; !seen {
			tc.Order = append(tc.Order, tok)
		}
		tc.Counts[tok]++
	}
	return tc
}

// Len returns the number of distinct terms.
func (tc TermCounts) Len() int {
	return len(tc.Order)
}

// Total returns the number of tokens the counts were built from.
func (tc TermCounts) Total() int {
	total := 0
	for _, c := range tc.Counts {
		total += c
	}
	return total
}
