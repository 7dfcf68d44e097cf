package search

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// Highlight returns the rune positions of title matched by term, in order.
// A case-insensitive substring match is preferred; otherwise the letters
// of term are matched in order, skipping gaps. Nil means no match.
func Highlight(term, title string) []int {
	term = strings.TrimSpace(term)
	if term == "" || title == "" {
		return nil
	}

	if idx := substringRunes(term, title); idx != nil {
		return idx
	}

	matches := fuzzy.Find(term, []string{title})
	if len(matches) == 0 {
		return nil
	}
	return byteToRuneIndexes(title, matches[0].MatchedIndexes)
}

// substringRunes finds term in title ignoring case
func substringRunes(term, title string) []int {
	t := []rune(title)
	q := []rune(term)
	for start := 0; start+len(q) <= len(t); start++ {
		if strings.EqualFold(string(t[start:start+len(q)]), term) {
			idx := make([]int, len(q))
			for i := range idx {
				idx[i] = start + i
			}
			return idx
		}
	}
	return nil
}

// byteToRuneIndexes converts byte offsets into title to rune positions
func byteToRuneIndexes(title string, offsets []int) []int {
	out := make([]int, 0, len(offsets))
	for _, off := range offsets {
		if off < 0 || off > len(title) {
			continue
		}
		out = append(out, utf8.RuneCountInString(title[:off]))
	}
	return out
}
