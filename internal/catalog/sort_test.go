package catalog

import (
	"testing"

	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sample() []domain.Movie {
	return []domain.Movie{
		{ID: "1", Title: "banana", Year: "2005"},
		{ID: "2", Title: "Apple", Year: "unknown"},
		{ID: "3", Title: "cherry", Year: "1999"},
		{ID: "4", Title: "apple pie", Year: ""},
		{ID: "5", Title: "Date", Year: " 2010 "},
		{ID: "6", Title: "Elder", Year: "1999"},
	}
}

func TestSort(t *testing.T) {
	t.Run("Title Ascending", func(t *testing.T) {
		movies := sample()
		Sort(movies, SortTitleAsc)
		assert.Equal(t, []string{"Apple", "apple pie", "banana", "cherry", "Date", "Elder"}, titles(movies))
	})

	t.Run("Title Descending", func(t *testing.T) {
		movies := sample()
		Sort(movies, SortTitleDesc)
		assert.Equal(t, []string{"Elder", "Date", "cherry", "banana", "apple pie", "Apple"}, titles(movies))
	})

	t.Run("Year Ascending Is Stable With NaN Last", func(t *testing.T) {
		movies := sample()
		Sort(movies, SortYearAsc)
		ids := make([]string, len(movies))
		for i, m := range movies {
			ids[i] = m.ID
		}
		assert.Equal(t, []string{"3", "6", "1", "5", "2", "4"}, ids)
	})

	t.Run("Year Descending Keeps NaN Last", func(t *testing.T) {
		movies := sample()
		Sort(movies, SortYearDesc)
		ids := make([]string, len(movies))
		for i, m := range movies {
			ids[i] = m.ID
		}
		assert.Equal(t, []string{"5", "1", "3", "6", "2", "4"}, ids)
	})

	t.Run("None Keeps Order", func(t *testing.T) {
		movies := sample()
		Sort(movies, SortNone)
		assert.Equal(t, sample(), movies)
	})

	t.Run("Adjacent Pairs Ordered", func(t *testing.T) {
		for _, mode := range SortModes() {
			cmp := Comparator(mode)
			if cmp == nil {
				continue
			}
			movies := sample()
			Sort(movies, mode)
			for i := 1; i < len(movies); i++ {
				assert.LessOrEqual(t, cmp(movies[i-1], movies[i]), 0, "mode %s at %d", mode, i)
			}
		}
	})
}

func TestParseSortMode(t *testing.T) {
	for _, mode := range SortModes() {
		got, ok := ParseSortMode(mode.Key())
		assert.True(t, ok)
		assert.Equal(t, mode, got)
	}

	_, ok := ParseSortMode("sideways")
	assert.False(t, ok)
}
