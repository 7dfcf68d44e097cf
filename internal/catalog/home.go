package catalog

import (
	"math"
	"slices"

	"github.com/mmcdole/filmfusion/internal/domain"
)

// TopRated returns up to n movies with the highest rating.
// Movies without a numeric rating come last.
func TopRated(movies []domain.Movie, n int) []domain.Movie {
	sorted := slices.Clone(movies)
	slices.SortStableFunc(sorted, func(a, b domain.Movie) int {
		return compareNumbers(a.RatingValue(), b.RatingValue(), true)
	})
	return head(sorted, n)
}

// Latest returns up to n movies with the most recent release date.
// Movies with no usable date come last.
func Latest(movies []domain.Movie, n int) []domain.Movie {
	sorted := slices.Clone(movies)
	slices.SortStableFunc(sorted, func(a, b domain.Movie) int {
		return compareNumbers(releaseKey(a), releaseKey(b), true)
	})
	return head(sorted, n)
}

func releaseKey(m domain.Movie) float64 {
	t, ok := m.Released()
	if !ok {
		return math.NaN()
	}
	return float64(t.Unix())
}

func head(movies []domain.Movie, n int) []domain.Movie {
	if n < 0 {
		n = 0
	}
	if len(movies) > n {
		return movies[:n]
	}
	return movies
}
