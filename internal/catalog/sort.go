package catalog

import (
	"math"
	"slices"
	"strings"

	"github.com/mmcdole/filmfusion/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode selects the ordering of the filtered list
type SortMode int

const (
	SortNone SortMode = iota
	SortTitleAsc
	SortTitleDesc
	SortYearAsc
	SortYearDesc
)

// SortModes returns the modes offered in the sort menu, in display order
func SortModes() []SortMode {
	return []SortMode{SortNone, SortTitleAsc, SortTitleDesc, SortYearAsc, SortYearDesc}
}

// String returns the menu label for the mode
func (m SortMode) String() string {
	switch m {
	case SortNone:
		return "Default"
	case SortTitleAsc:
		return "A–Z"
	case SortTitleDesc:
		return "Z–A"
	case SortYearAsc:
		return "Earliest to Latest"
	case SortYearDesc:
		return "Latest to Earliest"
	default:
		return "Unknown"
	}
}

// Key returns the stable identifier used on the command line
func (m SortMode) Key() string {
	switch m {
	case SortTitleAsc:
		return "az"
	case SortTitleDesc:
		return "za"
	case SortYearAsc:
		return "earliest"
	case SortYearDesc:
		return "latest"
	default:
		return "none"
	}
}

// ParseSortMode parses a command line identifier
func ParseSortMode(s string) (SortMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "default":
		return SortNone, true
	case "az", "title", "title-asc":
		return SortTitleAsc, true
	case "za", "title-desc":
		return SortTitleDesc, true
	case "earliest", "year", "year-asc":
		return SortYearAsc, true
	case "latest", "year-desc":
		return SortYearDesc, true
	default:
		return SortNone, false
	}
}

// Comparator returns the comparison function for the mode, or nil for SortNone.
// The returned function is not safe for concurrent use.
func Comparator(mode SortMode) func(a, b domain.Movie) int {
	switch mode {
	case SortTitleAsc:
		c := newTitleCollator()
		return func(a, b domain.Movie) int { return c.CompareString(a.Title, b.Title) }
	case SortTitleDesc:
		c := newTitleCollator()
		return func(a, b domain.Movie) int { return c.CompareString(b.Title, a.Title) }
	case SortYearAsc:
		return func(a, b domain.Movie) int { return compareNumbers(a.YearValue(), b.YearValue(), false) }
	case SortYearDesc:
		return func(a, b domain.Movie) int { return compareNumbers(a.YearValue(), b.YearValue(), true) }
	default:
		return nil
	}
}

// Sort orders movies in place. The sort is stable; SortNone is a no-op.
func Sort(movies []domain.Movie, mode SortMode) {
	cmp := Comparator(mode)
	if cmp == nil {
		return
	}
	slices.SortStableFunc(movies, cmp)
}

func newTitleCollator() *collate.Collator {
	return collate.New(language.English)
}

// compareNumbers orders numbers with NaN after every real value,
// regardless of direction.
func compareNumbers(a, b float64, desc bool) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	if desc {
		a, b = b, a
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
