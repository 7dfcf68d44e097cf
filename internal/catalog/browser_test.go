package catalog

import (
	"testing"

	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowser(t *testing.T) {
	t.Run("Next And Previous", func(t *testing.T) {
		b := NewBrowser()
		b.SetSource(numbered(20))
		page1 := titles(b.View().Items)
		require.Len(t, page1, 18)
		assert.Contains(t, page1, "Movie 1")
		assert.NotContains(t, page1, "Movie 19")

		require.True(t, b.NextPage())
		page2 := titles(b.View().Items)
		assert.Contains(t, page2, "Movie 19")
		assert.Contains(t, page2, "Movie 20")
		assert.NotContains(t, page2, "Movie 1")

		require.True(t, b.PrevPage())
		assert.Equal(t, page1, titles(b.View().Items))
	})

	t.Run("Out Of Range Pages Rejected", func(t *testing.T) {
		b := NewBrowser()
		b.SetSource(numbered(20))
		require.True(t, b.GoToPage(2))

		assert.False(t, b.GoToPage(0))
		assert.Equal(t, 2, b.Page())
		assert.False(t, b.GoToPage(3))
		assert.Equal(t, 2, b.Page())
		assert.False(t, b.NextPage())
		assert.Equal(t, 2, b.Page())
	})

	t.Run("Search Resets Page", func(t *testing.T) {
		b := NewBrowser()
		b.SetSource(numbered(40))
		require.True(t, b.GoToPage(3))

		b.SetSearch("movie")
		assert.Equal(t, 1, b.Page())
		assert.Equal(t, "movie", b.Search())
	})

	t.Run("Sort Resets Page", func(t *testing.T) {
		b := NewBrowser()
		b.SetSource(numbered(40))
		require.True(t, b.GoToPage(2))

		b.SetSort(SortTitleDesc)
		assert.Equal(t, 1, b.Page())
		assert.Equal(t, SortTitleDesc, b.Sort())
	})

	t.Run("Search Beta", func(t *testing.T) {
		b := NewBrowser()
		b.SetSource([]domain.Movie{{ID: "a", Title: "Alpha Movie"}, {ID: "b", Title: "Beta Movie"}})
		b.SetSearch("Beta")
		assert.Equal(t, []string{"Beta Movie"}, titles(b.View().Filtered))
	})

	t.Run("Empty Result", func(t *testing.T) {
		b := NewBrowser()
		b.SetSource(numbered(5))
		b.SetSearch("zzz")
		assert.True(t, b.View().Empty())
		assert.Equal(t, 1, b.Page())
		assert.Equal(t, 0, b.TotalPages())
		assert.False(t, b.NextPage())
		assert.False(t, b.GoToPage(1))
	})

	t.Run("Shrinking Source Clamps Page", func(t *testing.T) {
		b := NewBrowser()
		b.SetSource(numbered(40))
		require.True(t, b.GoToPage(3))

		b.SetSource(numbered(20))
		assert.Equal(t, 2, b.Page())
	})

	t.Run("Selection", func(t *testing.T) {
		b := NewBrowser()
		b.SetSource(numbered(3))

		_, ok := b.Selected()
		assert.False(t, ok)

		assert.False(t, b.Select("missing"))
		require.True(t, b.Select("m2"))
		m, ok := b.Selected()
		require.True(t, ok)
		assert.Equal(t, "Movie 2", m.Title)

		b.ClearSelection()
		_, ok = b.Selected()
		assert.False(t, ok)
	})

	t.Run("Selection Dropped When Source Loses Movie", func(t *testing.T) {
		b := NewBrowser()
		b.SetSource(numbered(3))
		require.True(t, b.Select("m3"))

		b.SetSource(numbered(2))
		_, ok := b.Selected()
		assert.False(t, ok)
	})
}

func TestHome(t *testing.T) {
	movies := []domain.Movie{
		{ID: "1", Title: "A", Rating: "7.1", ReleaseDate: "2020-05-01"},
		{ID: "2", Title: "B", Rating: "9.0", Year: "1994"},
		{ID: "3", Title: "C", Rating: "N/A", ReleaseDate: "2023-01-15"},
		{ID: "4", Title: "D", Rating: "8.4"},
		{ID: "5", Title: "E", Rating: "9.0", Year: "2021"},
	}

	t.Run("Top Rated", func(t *testing.T) {
		assert.Equal(t, []string{"B", "E", "D"}, titles(TopRated(movies, 3)))
		assert.Equal(t, []string{"B", "E", "D", "A", "C"}, titles(TopRated(movies, 10)))
	})

	t.Run("Latest", func(t *testing.T) {
		assert.Equal(t, []string{"C", "E", "A", "B", "D"}, titles(Latest(movies, 8)))
	})

	t.Run("Does Not Reorder Input", func(t *testing.T) {
		TopRated(movies, 2)
		assert.Equal(t, "A", movies[0].Title)
	})
}
