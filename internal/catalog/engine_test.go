package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) []domain.Movie {
	movies := make([]domain.Movie, n)
	for i := range movies {
		movies[i] = domain.Movie{ID: fmt.Sprintf("m%d", i+1), Title: fmt.Sprintf("Movie %d", i+1)}
	}
	return movies
}

func titles(movies []domain.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestFilter(t *testing.T) {
	movies := []domain.Movie{
		{ID: "1", Title: "Alpha Movie"},
		{ID: "2", Title: "Beta Movie"},
		{ID: "3", Title: "The ALPHABET"},
	}

	t.Run("Substring", func(t *testing.T) {
		assert.Equal(t, []string{"Beta Movie"}, titles(Filter(movies, "Beta")))
	})

	t.Run("Ignores Case", func(t *testing.T) {
		assert.Equal(t, []string{"Alpha Movie", "The ALPHABET"}, titles(Filter(movies, "alpha")))
	})

	t.Run("Empty Term Matches All", func(t *testing.T) {
		assert.Len(t, Filter(movies, ""), 3)
	})

	t.Run("No Match", func(t *testing.T) {
		assert.Empty(t, Filter(movies, "gamma"))
	})

	t.Run("Partition Property", func(t *testing.T) {
		for _, term := range []string{"a", "MOVIE", "bet", "z", " "} {
			kept := Filter(movies, term)
			keptIDs := map[string]bool{}
			for _, m := range kept {
				keptIDs[m.ID] = true
				assert.True(t, strings.Contains(strings.ToLower(m.Title), strings.ToLower(term)), "term %q title %q", term, m.Title)
			}
			for _, m := range movies {
				if !keptIDs[m.ID] {
					assert.False(t, strings.Contains(strings.ToLower(m.Title), strings.ToLower(term)), "term %q title %q", term, m.Title)
				}
			}
		}
	})

	t.Run("Does Not Alias Input", func(t *testing.T) {
		out := Filter(movies, "")
		out[0].Title = "changed"
		assert.Equal(t, "Alpha Movie", movies[0].Title)
	})
}

func TestPagination(t *testing.T) {
	t.Run("Total Pages", func(t *testing.T) {
		cases := map[int]int{0: 0, 1: 1, 17: 1, 18: 1, 19: 2, 36: 2, 37: 3, 100: 6}
		for n, want := range cases {
			assert.Equal(t, want, TotalPages(n), "n=%d", n)
		}
	})

	t.Run("Bounds", func(t *testing.T) {
		for n := 0; n <= 60; n++ {
			for k := 1; k <= TotalPages(n); k++ {
				start, end := PageBounds(k, n)
				assert.Equal(t, PageSize*(k-1), start)
				assert.Equal(t, min(PageSize*k, n), end)
			}
		}
	})

	t.Run("Clamp", func(t *testing.T) {
		assert.Equal(t, 1, ClampPage(0, 20))
		assert.Equal(t, 2, ClampPage(9, 20))
		assert.Equal(t, 1, ClampPage(3, 0))
	})
}

func TestView(t *testing.T) {
	t.Run("Twenty Movies", func(t *testing.T) {
		movies := numbered(20)

		first := View(movies, Query{Page: 1})
		require.Equal(t, 2, first.TotalPages)
		require.Len(t, first.Items, 18)
		assert.Equal(t, "Movie 1", first.Items[0].Title)
		assert.Equal(t, "Movie 18", first.Items[17].Title)
		assert.NotContains(t, titles(first.Items), "Movie 19")

		second := View(movies, Query{Page: 2})
		assert.Equal(t, []string{"Movie 19", "Movie 20"}, titles(second.Items))
	})

	t.Run("Page Clamped", func(t *testing.T) {
		res := View(numbered(20), Query{Page: 7})
		assert.Equal(t, 2, res.Page)
		assert.Len(t, res.Items, 2)
	})

	t.Run("Empty", func(t *testing.T) {
		res := View(numbered(3), Query{Term: "nothing", Page: 1})
		assert.True(t, res.Empty())
		assert.Equal(t, 0, res.TotalPages)
		assert.Equal(t, 1, res.Page)
		assert.Empty(t, res.Items)
	})

	t.Run("Filter Then Sort", func(t *testing.T) {
		movies := []domain.Movie{
			{ID: "1", Title: "Zeta Movie", Year: "2001"},
			{ID: "2", Title: "Alpha Movie", Year: "1999"},
			{ID: "3", Title: "Other", Year: "2020"},
		}
		res := View(movies, Query{Term: "movie", Sort: SortTitleAsc, Page: 1})
		assert.Equal(t, []string{"Alpha Movie", "Zeta Movie"}, titles(res.Items))
	})
}
