// Package catalog turns a fetched movie list into the filtered, sorted and
// paginated view shown by the list screens. Everything here is pure and
// synchronous; the network never appears in this package.
package catalog

import (
	"strings"

	"github.com/mmcdole/filmfusion/internal/domain"
)

// PageSize is the number of movies on one page
const PageSize = 18

// Query describes one view of the list
type Query struct {
	Term string
	Sort SortMode
	Page int // 1-indexed; clamped before use
}

// Result is the derived view for a Query
type Result struct {
	Filtered   []domain.Movie // filtered and sorted, all pages
	TotalPages int
	Page       int            // page actually shown, after clamping
	Items      []domain.Movie // the slice for Page
}

// Empty reports whether no movie matched
func (r Result) Empty() bool {
	return len(r.Filtered) == 0
}

// Filter returns the movies whose title contains term, ignoring case.
// An empty term matches everything. The input slice is never modified.
func Filter(movies []domain.Movie, term string) []domain.Movie {
	needle := strings.ToLower(term)
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if needle == "" || strings.Contains(strings.ToLower(m.Title), needle) {
			out = append(out, m)
		}
	}
	return out
}

// TotalPages returns ceil(n / PageSize)
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// ClampPage forces page into [1, TotalPages(n)]. With no items the page is 1.
func ClampPage(page, n int) int {
	total := TotalPages(n)
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// PageBounds returns the half-open index range [start, end) of a page
// over n items, after clamping the page.
func PageBounds(page, n int) (start, end int) {
	page = ClampPage(page, n)
	start = (page - 1) * PageSize
	end = start + PageSize
	if end > n {
		end = n
	}
	if start > n {
		start = n
	}
	return start, end
}

// View filters, sorts and slices movies for q
func View(movies []domain.Movie, q Query) Result {
	filtered := Filter(movies, q.Term)
	Sort(filtered, q.Sort)

	page := ClampPage(q.Page, len(filtered))
	start, end := PageBounds(page, len(filtered))

	return Result{
		Filtered:   filtered,
		TotalPages: TotalPages(len(filtered)),
		Page:       page,
		Items:      filtered[start:end],
	}
}
