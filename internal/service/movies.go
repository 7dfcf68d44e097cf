package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/filmfusion/internal/domain"
)

// MovieService loads the movie collection, writing through the local cache
type MovieService struct {
	repo   domain.MovieRepository
	cache  domain.MovieCache
	logger *slog.Logger
}

// NewMovieService creates a new movie service. cache may be nil.
func NewMovieService(repo domain.MovieRepository, cache domain.MovieCache, logger *slog.Logger) *MovieService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MovieService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Cached returns the last fetched collection without touching the network
func (s *MovieService) Cached() ([]domain.Movie, bool) {
	if s.cache == nil {
		return nil, false
	}
	movies, ok := s.cache.GetMovies()
	if ok {
		s.logger.Debug("cache hit", "key", "movies", "count", len(movies))
	}
	return movies, ok
}

// CachedAt returns when the cached collection was fetched
func (s *MovieService) CachedAt() (time.Time, bool) {
	if s.cache == nil {
		return time.Time{}, false
	}
	return s.cache.FetchedAt()
}

// Fetch reads the whole collection from the backend
func (s *MovieService) Fetch(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.repo.ListMovies(ctx)
	if err != nil {
		s.logger.Error("failed to fetch movies", "error", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SaveMovies(movies); err != nil {
			s.logger.Warn("failed to cache movies", "error", err)
		}
	}

	s.logger.Info("loaded movies", "count", len(movies))
	return movies, nil
}
