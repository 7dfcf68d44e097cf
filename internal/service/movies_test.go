package service

import (
	"context"
	"testing"
	"time"

	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/mmcdole/filmfusion/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieService(t *testing.T) {
	ctx := context.Background()
	movies := []domain.Movie{{ID: "a", Title: "Alpha Movie"}, {ID: "b", Title: "Beta Movie"}}

	t.Run("fetch writes through the cache", func(t *testing.T) {
		cache, err := store.NewMovieStore(t.TempDir(), "demo")
		require.NoError(t, err)
		defer cache.Close()

		svc := NewMovieService(&fakeMovies{movies: movies}, cache, nil)
		_, ok := svc.Cached()
		assert.False(t, ok)

		got, err := svc.Fetch(ctx)
		require.NoError(t, err)
		assert.Equal(t, movies, got)

		cached, ok := svc.Cached()
		require.True(t, ok)
		assert.Equal(t, movies, cached)

		at, ok := svc.CachedAt()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now(), at, time.Minute)
	})

	t.Run("failed fetch keeps the cache", func(t *testing.T) {
		cache, err := store.NewMovieStore("", "")
		require.NoError(t, err)
		require.NoError(t, cache.SaveMovies(movies))

		svc := NewMovieService(&fakeMovies{err: domain.ErrBackendUnavailable}, cache, nil)
		_, err = svc.Fetch(ctx)
		assert.ErrorIs(t, err, domain.ErrBackendUnavailable)

		cached, ok := svc.Cached()
		require.True(t, ok)
		assert.Equal(t, movies, cached)
	})

	t.Run("no cache", func(t *testing.T) {
		svc := NewMovieService(&fakeMovies{movies: movies}, nil, nil)
		_, ok := svc.Cached()
		assert.False(t, ok)
		_, ok = svc.CachedAt()
		assert.False(t, ok)
		got, err := svc.Fetch(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
