// Package search ranks "did you mean" titles for searches that found
// nothing and locates matches in titles for highlighting.
package search

import (
	"slices"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultLimit is the number of suggestions shown under an empty result
const DefaultLimit = 3

// Suggestion is a title close to a search term
type Suggestion struct {
	Title    string
	Index    int // Index in the source slice
	Distance int // Edit distance (lower = closer)
}

// Suggest returns up to limit titles resembling term, closest first.
//
// Titles containing the term's letters in order are preferred. When there
// are none, every word of the term may match a word of the title with a
// few typos ("matrex" finds "The Matrix").
func Suggest(term string, titles []string, limit int) []Suggestion {
	term = strings.TrimSpace(term)
	if term == "" || limit <= 0 {
		return nil
	}

	var out []Suggestion
	for _, r := range fuzzy.RankFindNormalizedFold(term, titles) {
		out = append(out, Suggestion{Title: r.Target, Index: r.OriginalIndex, Distance: r.Distance})
	}
	if len(out) == 0 {
		out = typoMatches(term, titles)
	}

	slices.SortStableFunc(out, func(a, b Suggestion) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		return len(a.Title) - len(b.Title)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SuggestTitles is Suggest returning only the titles
func SuggestTitles(term string, titles []string, limit int) []string {
	suggestions := Suggest(term, titles, limit)
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Title
	}
	return out
}

// typoMatches keeps titles where every word of term is within
// allowedTypos of a distinct word of the title.
func typoMatches(term string, titles []string) []Suggestion {
	termWords := words(term)
	if len(termWords) == 0 {
		return nil
	}

	var out []Suggestion
	for i, title := range titles {
		titleWords := words(title)
		used := make([]bool, len(titleWords))
		total := 0
		matched := true

		for _, tw := range termWords {
			best, bestIdx := -1, -1
			for j, w := range titleWords {
				if used[j] {
					continue
				}
				d := fuzzy.LevenshteinDistance(tw, w)
				if d <= allowedTypos(len([]rune(tw))) && (best < 0 || d < best) {
					best, bestIdx = d, j
				}
			}
			if bestIdx < 0 {
				matched = false
				break
			}
			used[bestIdx] = true
			total += best
		}

		if matched {
			out = append(out, Suggestion{Title: title, Index: i, Distance: total})
		}
	}
	return out
}

// allowedTypos returns the number of typos allowed for a word length:
// 1-3 chars = 0, 4-6 chars = 1, 7+ chars = 2
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

// words splits text into lowercase letter/digit runs
func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
