package catalog

import "github.com/mmcdole/filmfusion/internal/domain"

// Browser holds the ephemeral state of a list screen: the source list,
// search term, sort mode, current page and selected movie. The Movies and
// Favorites screens each own one.
type Browser struct {
	source   []domain.Movie
	term     string
	sort     SortMode
	page     int
	selected string

	result Result
}

// NewBrowser creates an empty browser on page 1
func NewBrowser() *Browser {
	b := &Browser{page: 1}
	b.recompute()
	return b
}

// SetSource replaces the movie list. The page is re-clamped and a selection
// that no longer exists is cleared.
func (b *Browser) SetSource(movies []domain.Movie) {
	b.source = movies
	if b.selected != "" && !b.contains(b.selected) {
		b.selected = ""
	}
	b.recompute()
}

// Source returns the unfiltered list
func (b *Browser) Source() []domain.Movie {
	return b.source
}

// SetSearch changes the search term and returns to page 1
func (b *Browser) SetSearch(term string) {
	b.term = term
	b.page = 1
	b.recompute()
}

// Search returns the current search term
func (b *Browser) Search() string {
	return b.term
}

// SetSort changes the sort mode and returns to page 1
func (b *Browser) SetSort(mode SortMode) {
	b.sort = mode
	b.page = 1
	b.recompute()
}

// Sort returns the current sort mode
func (b *Browser) Sort() SortMode {
	return b.sort
}

// Page returns the current page (1-indexed)
func (b *Browser) Page() int {
	return b.result.Page
}

// TotalPages returns the page count for the current filter
func (b *Browser) TotalPages() int {
	return b.result.TotalPages
}

// GoToPage moves to page k. Pages outside [1, TotalPages] are rejected and
// leave the state unchanged.
func (b *Browser) GoToPage(k int) bool {
	if k < 1 || k > b.result.TotalPages {
		return false
	}
	b.page = k
	b.recompute()
	return true
}

// NextPage moves forward one page if possible
func (b *Browser) NextPage() bool {
	return b.GoToPage(b.Page() + 1)
}

// PrevPage moves back one page if possible
func (b *Browser) PrevPage() bool {
	return b.GoToPage(b.Page() - 1)
}

// Select marks the movie with id as selected. Unknown ids are rejected.
func (b *Browser) Select(id string) bool {
	if !b.contains(id) {
		return false
	}
	b.selected = id
	return true
}

// ClearSelection closes the selection
func (b *Browser) ClearSelection() {
	b.selected = ""
}

// Selected returns the selected movie, if any
func (b *Browser) Selected() (domain.Movie, bool) {
	if b.selected == "" {
		return domain.Movie{}, false
	}
	for _, m := range b.source {
		if m.ID == b.selected {
			return m, true
		}
	}
	return domain.Movie{}, false
}

// View returns the derived view for the current state
func (b *Browser) View() Result {
	return b.result
}

func (b *Browser) recompute() {
	b.result = View(b.source, Query{Term: b.term, Sort: b.sort, Page: b.page})
	b.page = b.result.Page
}

func (b *Browser) contains(id string) bool {
	if id == "" {
		return false
	}
	for _, m := range b.source {
		if m.ID == id {
			return true
		}
	}
	return false
}
