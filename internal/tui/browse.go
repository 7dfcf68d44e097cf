package tui

import (
	"github.com/mmcdole/filmfusion/internal/catalog"
	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/mmcdole/filmfusion/internal/search"
	"github.com/mmcdole/filmfusion/internal/tui/components"
)

// listScreen is a searchable, sortable, paginated grid over one movie list.
// The Movies and Favorites screens each own one.
type listScreen struct {
	title       string
	browser     *catalog.Browser
	search      components.SearchBar
	grid        components.MovieGrid
	pager       components.Pagination
	suggestions []string // "did you mean" titles when the search found nothing
}

func newListScreen(title string) *listScreen {
	s := &listScreen{
		title:   title,
		browser: catalog.NewBrowser(),
		search:  components.NewSearchBar(),
		grid:    components.NewMovieGrid(),
		pager:   components.NewPagination(),
	}
	s.sync()
	return s
}

// sync copies the browser's current page into the widgets
func (s *listScreen) sync() {
	r := s.browser.View()
	s.grid.SetMovies(r.Items)
	s.grid.SetHighlight(s.browser.Search())
	s.pager.Sync(r)

	s.suggestions = nil
	if r.Empty() && s.browser.Search() != "" {
		src := s.browser.Source()
		titles := make([]string, len(src))
		for i, m := range src {
			titles[i] = m.Title
		}
		s.suggestions = search.SuggestTitles(s.browser.Search(), titles, search.DefaultLimit)
	}
}

func (s *listScreen) setSource(movies []domain.Movie) {
	s.browser.SetSource(movies)
	s.sync()
}

func (s *listScreen) setSearch(term string) {
	s.browser.SetSearch(term)
	s.grid.Reset()
	s.sync()
}

func (s *listScreen) setSort(mode catalog.SortMode) {
	s.browser.SetSort(mode)
	s.grid.Reset()
	s.sync()
}

func (s *listScreen) nextPage() bool {
	if !s.browser.NextPage() {
		return false
	}
	s.grid.Reset()
	s.sync()
	return true
}

func (s *listScreen) prevPage() bool {
	if !s.browser.PrevPage() {
		return false
	}
	s.grid.Reset()
	s.sync()
	return true
}

// list chrome: title (2), search bar (3), sort line (1), pagination (1), gaps (2)
const listChromeHeight = 9

func (s *listScreen) setSize(width, height int) {
	s.search.SetWidth(min(width, 60))
	s.grid.SetSize(width, max(4, height-listChromeHeight))
}
